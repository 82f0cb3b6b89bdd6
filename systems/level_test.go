package systems

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadLevelYAMLAndJSON(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"yaml", "name: twin\nportals:\n  good:\n    - {x: 1, y: 2}\n  evil:\n    - {x: 7, y: 2}\n    - {x: 7, y: 0}\n"},
		{"json", `{"portals": {"good": [{"x": 1, "y": 2}], "evil": [{"x": 7, "y": 2}, {"x": 7, "y": 0}]}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lvl, err := LoadLevel(strings.NewReader(tt.src))
			if err != nil {
				t.Fatalf("LoadLevel failed: %v", err)
			}
			if len(lvl.Portals.Good) != 1 || len(lvl.Portals.Evil) != 2 {
				t.Fatalf("unexpected portals %+v", lvl.Portals)
			}
			if lvl.Portals.Evil[1] != (GridPos{X: 7, Y: 0}) {
				t.Errorf("unexpected second evil portal %+v", lvl.Portals.Evil[1])
			}
		})
	}
}

func TestApplyLevel(t *testing.T) {
	f, _ := newTestField(t, 9, 5, 0, nil)
	setCell(t, f, 4, 0, SporeEvil, 0.75)

	lvl := &Level{Portals: LevelPortals{
		Good: []GridPos{{X: 0, Y: 0}},
		Evil: []GridPos{{X: 8, Y: 4}, {X: 8, Y: 0}},
	}}
	if err := f.ApplyLevel(lvl); err != nil {
		t.Fatalf("ApplyLevel failed: %v", err)
	}

	if n := f.CountType(SporeGoodPortal); n != 1 {
		t.Errorf("expected 1 good portal, got %d", n)
	}
	if n := f.CountType(SporeEvilPortal); n != 2 {
		t.Errorf("expected 2 evil portals, got %d", n)
	}
	if n := f.CountType(SporeEvil); n != 0 {
		t.Errorf("expected old spores cleared, got %d", n)
	}
	if c := f.CellAtGridPosition(8, 0); c.Type != SporeEvilPortal || c.Size != PortalSize {
		t.Errorf("expected evil portal at (8, 0), got %v", c.Type)
	}
}

func TestApplyLevelRejectsBadPositions(t *testing.T) {
	tests := []struct {
		name string
		lvl  Level
		want error
	}{
		{"out of bounds", Level{Portals: LevelPortals{Good: []GridPos{{X: 0, Y: 0}}, Evil: []GridPos{{X: 9, Y: 0}}}}, ErrOutOfBounds},
		{"deadzone", Level{Portals: LevelPortals{Good: []GridPos{{X: 4, Y: 4}}}}, ErrDeadzone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, _ := newTestField(t, 9, 9, 1, nil)
			before := snapshot(f)

			err := f.ApplyLevel(&tt.lvl)
			if !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
			after := snapshot(f)
			for i := range before {
				if before[i] != after[i] {
					t.Fatalf("cell %d changed after rejected level", i)
				}
			}
		})
	}
}

func TestLoadLevelFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "level.yaml")
	if err := os.WriteFile(path, []byte("portals:\n  good: [{x: 2, y: 2}]\n"), 0644); err != nil {
		t.Fatal(err)
	}

	lvl, err := LoadLevelFile(path)
	if err != nil {
		t.Fatalf("LoadLevelFile failed: %v", err)
	}
	if len(lvl.Portals.Good) != 1 || len(lvl.Portals.Evil) != 0 {
		t.Errorf("unexpected portals %+v", lvl.Portals)
	}

	if _, err := LoadLevelFile(filepath.Join(t.TempDir(), "none.yaml")); err == nil {
		t.Error("expected error for missing level")
	}
}
