package main

import (
	"io"
	"math/rand"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tile-merge/internal/games/t2048"
)

func TestParseMoves(t *testing.T) {
	dirs, err := parseMoves("ul, dR")
	if err != nil {
		t.Fatalf("parseMoves: %v", err)
	}
	want := []t2048.Direction{t2048.DirUp, t2048.DirLeft, t2048.DirDown, t2048.DirRight}
	if len(dirs) != len(want) {
		t.Fatalf("got %v, want %v", dirs, want)
	}
	for i := range want {
		if dirs[i] != want[i] {
			t.Errorf("dirs[%d] = %s, want %s", i, dirs[i], want[i])
		}
	}

	for _, bad := range []string{"", "ULX", "  "} {
		if _, err := parseMoves(bad); err == nil {
			t.Errorf("parseMoves(%q) should fail", bad)
		}
	}
}

func newSimSession(t *testing.T, seed int64) *t2048.Session {
	t.Helper()
	s, err := t2048.NewSession(t2048.DefaultConfig(), rand.New(rand.NewSource(seed)))
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}
	return s
}

func TestSimulateScriptStopsWhenScriptEnds(t *testing.T) {
	s := newSimSession(t, 3)
	m := &scriptMover{dirs: []t2048.Direction{t2048.DirLeft, t2048.DirRight, t2048.DirUp}}

	// Three turns cannot fill a 4x4 board, so only the script ends the run.
	res := simulate(s, m, 100, log.New(io.Discard))
	if res.Turns != 3 {
		t.Errorf("turns = %d, want 3", res.Turns)
	}
	if res.Stopped != "no moves left to play" {
		t.Errorf("stopped = %q", res.Stopped)
	}
	if len(res.Grid) != 4 || len(res.Grid[0]) != 4 {
		t.Errorf("grid shape = %dx%d, want 4x4", len(res.Grid), len(res.Grid[0]))
	}
}

func TestSimulateTurnLimit(t *testing.T) {
	s := newSimSession(t, 11)
	res := simulate(s, &cycleMover{}, 5, log.New(io.Discard))
	if res.Turns > 5 {
		t.Errorf("turns = %d, want at most 5", res.Turns)
	}
	if res.Turns == 5 && res.Stopped != "turn limit" {
		t.Errorf("stopped = %q, want turn limit", res.Stopped)
	}
}

func TestSimulateIsDeterministic(t *testing.T) {
	for _, seed := range []int64{1, 42, 2048} {
		a := simulate(newSimSession(t, seed), greedyMover{}, 300, log.New(io.Discard))
		b := simulate(newSimSession(t, seed), greedyMover{}, 300, log.New(io.Discard))
		if a.Score != b.Score || a.Turns != b.Turns || a.MaxTile != b.MaxTile {
			t.Errorf("seed %d: runs differ: %+v vs %+v", seed, a, b)
		}
	}
}

func TestSimulateRunsToEnd(t *testing.T) {
	res := simulate(newSimSession(t, 5), &randomMover{rng: rand.New(rand.NewSource(5))}, 100000, log.New(io.Discard))
	if res.Phase != t2048.PhaseLost.String() && res.Phase != t2048.PhaseWon.String() {
		t.Errorf("phase = %s, want a terminal phase", res.Phase)
	}
	if res.Stopped != res.Phase {
		t.Errorf("stopped = %q, want %q", res.Stopped, res.Phase)
	}
}

func TestCheckOutput(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"text", false},
		{"yaml", false},
		{"json", true},
		{"", true},
	}

	for _, tt := range tests {
		if err := checkOutput(tt.format); (err != nil) != tt.wantErr {
			t.Errorf("checkOutput(%q) err = %v, wantErr %v", tt.format, err, tt.wantErr)
		}
	}
}
