package registry

import (
	"testing"

	"github.com/vovakirdan/tile-merge/internal/core"
)

type stubGame struct{ id string }

func (g *stubGame) ID() string { return g.id }
func (g *stubGame) Title() string { return "Stub " + g.id }
func (g *stubGame) Reset(core.RuntimeConfig) {}
func (g *stubGame) Step(core.InputFrame) core.StepResult { return core.StepResult{} }
func (g *stubGame) Render(*core.Screen) {}
func (g *stubGame) State() core.GameState { return core.GameState{} }

func TestRegisterAndCreate(t *testing.T) {
	Register("test_b", func() Game { return &stubGame{id: "test_b"} })
	Register("test_a", func() Game { return &stubGame{id: "test_a"} })

	if !Exists("test_a") || Exists("test_missing") {
		t.Error("Exists reports wrong registrations")
	}

	g, err := Create("test_a")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if g.ID() != "test_a" {
		t.Errorf("ID = %q, want test_a", g.ID())
	}
	if _, err := Create("test_missing"); err == nil {
		t.Error("unknown game should fail")
	}

	var ids []string
	for _, info := range List() {
		if info.ID == "test_a" || info.ID == "test_b" {
			ids = append(ids, info.ID)
			if info.Title != "Stub "+info.ID {
				t.Errorf("title = %q", info.Title)
			}
		}
	}
	if len(ids) != 2 || ids[0] != "test_a" {
		t.Errorf("List order = %v, want sorted", ids)
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	Register("test_dup", func() Game { return &stubGame{id: "test_dup"} })

	defer func() {
		if recover() == nil {
			t.Error("duplicate Register should panic")
		}
	}()
	Register("test_dup", func() Game { return &stubGame{id: "test_dup"} })
}
