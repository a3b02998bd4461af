package t2048

import (
	"fmt"
	"sort"
)

// Source is the randomness the spawner draws from. *rand.Rand satisfies it.
type Source interface {
	Intn(n int) int
	Float64() float64
}

// Placement is a spawner decision: put a tile of Value on Cell.
type Placement struct {
	Cell  *Cell
	Value int
}

type weightedValue struct {
	value  int
	weight float64
}

// Spawner picks empty cells and values for new tiles.
// It only computes placements; the Session creates the tiles.
type Spawner struct {
	rng     Source
	weights []weightedValue
	total   float64
}

// NewSpawner creates a spawner over the given value weights.
// Weights are relative and need not sum to 1.
func NewSpawner(rng Source, weights map[int]float64) (*Spawner, error) {
	if err := validateWeights(weights); err != nil {
		return nil, err
	}

	s := &Spawner{rng: rng}
	for v, w := range weights {
		if w == 0 {
			continue
		}
		s.weights = append(s.weights, weightedValue{value: v, weight: w})
		s.total += w
	}
	// Map iteration order is random; the draw must not be.
	sort.Slice(s.weights, func(i, j int) bool {
		return s.weights[i].value < s.weights[j].value
	})
	return s, nil
}

// Spawn selects k distinct cells uniformly from free and draws a value for each.
// Returns ErrNoSpaceToSpawn without placing anything when k exceeds len(free).
func (s *Spawner) Spawn(free []*Cell, k int) ([]Placement, error) {
	if k > len(free) {
		return nil, fmt.Errorf("%w: need %d, have %d", ErrNoSpaceToSpawn, k, len(free))
	}

	pool := make([]*Cell, len(free))
	copy(pool, free)

	// Partial Fisher-Yates: the first k slots become the sample.
	placements := make([]Placement, 0, k)
	for i := range k {
		j := i + s.rng.Intn(len(pool)-i)
		pool[i], pool[j] = pool[j], pool[i]
		placements = append(placements, Placement{
			Cell:  pool[i],
			Value: s.drawValue(),
		})
	}
	return placements, nil
}

// drawValue picks a tile value according to the configured weights.
func (s *Spawner) drawValue() int {
	r := s.rng.Float64() * s.total
	for _, wv := range s.weights {
		if r < wv.weight {
			return wv.value
		}
		r -= wv.weight
	}
	return s.weights[len(s.weights)-1].value
}
