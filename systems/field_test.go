package systems

import (
	"errors"
	"math"
	"testing"

	"github.com/pthm-cable/sporefield/components"
)

func TestGenerateGeometry(t *testing.T) {
	f, _ := newTestField(t, 35, 19, 4.5, nil)

	if f.Width() != 35 || f.Height() != 19 {
		t.Fatalf("expected 35x19, got %dx%d", f.Width(), f.Height())
	}
	if len(f.Cells()) != 35*19 {
		t.Fatalf("expected %d cells, got %d", 35*19, len(f.Cells()))
	}

	// Centre column of an odd grid sits on the origin
	c := f.CellAtGridPosition(17, 9)
	if !approxEqual(c.World.X, 0) || !approxEqual(c.World.Y, 0) {
		t.Errorf("expected centre cell at origin, got %+v", c.World)
	}

	first := f.CellAtGridPosition(0, 0)
	wantX := -35*1.3/2 + 1.3/2
	if !approxEqual(first.World.X, float32(wantX)) {
		t.Errorf("expected first cell X %v, got %v", wantX, first.World.X)
	}

	for i, cell := range f.Cells() {
		if cell.Index() != i {
			t.Fatalf("cell %d reports index %d", i, cell.Index())
		}
		if cell.X*f.Height()+cell.Y != i {
			t.Fatalf("cell (%d, %d) stored at %d", cell.X, cell.Y, i)
		}
	}
}

func TestGenerateRejectsBadDimensions(t *testing.T) {
	f, _ := newTestField(t, 5, 5, 0, nil)
	for _, dims := range [][2]int{{0, 5}, {5, 0}, {-1, 3}, {maxFieldCells + 1, 1}, {2, maxFieldCells}, {math.MaxInt, math.MaxInt}} {
		err := f.Generate(dims[0], dims[1])
		if !errors.Is(err, ErrInvalidDimensions) {
			t.Errorf("Generate(%d, %d): expected ErrInvalidDimensions, got %v", dims[0], dims[1], err)
		}
	}
	if f.Width() != 5 || f.Height() != 5 {
		t.Errorf("failed Generate changed dimensions to %dx%d", f.Width(), f.Height())
	}
}

func TestGeneratePlacesPortals(t *testing.T) {
	f, _ := newTestField(t, 35, 19, 4.5, nil)

	good := f.CellAtGridPosition(35/4, 19/2)
	evil := f.CellAtGridPosition(35-1-35/4, 19/2)
	if good.Type != SporeGoodPortal || good.Size != PortalSize {
		t.Errorf("expected good portal at (8, 9), got %v size %v", good.Type, good.Size)
	}
	if evil.Type != SporeEvilPortal || evil.Size != PortalSize {
		t.Errorf("expected evil portal at (26, 9), got %v size %v", evil.Type, evil.Size)
	}
	if n := f.CountType(SporeGoodPortal); n != 1 {
		t.Errorf("expected exactly one good portal, got %d", n)
	}
	if n := f.CountType(SporeEvilPortal); n != 1 {
		t.Errorf("expected exactly one evil portal, got %d", n)
	}
}

func TestGenerateMarksDeadzone(t *testing.T) {
	f, _ := newTestField(t, 35, 19, 4.5, nil)

	for _, c := range f.Cells() {
		dz := f.IsDeadzone(c.X, c.Y)
		if dz != (c.Type == SporeDeadzone) {
			t.Fatalf("cell (%d, %d): IsDeadzone=%v but type %v", c.X, c.Y, dz, c.Type)
		}
	}
	if !f.IsDeadzone(17, 9) {
		t.Error("expected grid centre to be deadzone")
	}
	if f.IsDeadzone(0, 0) {
		t.Error("expected corner to be outside the deadzone")
	}
}

func TestZeroDeadzoneRadiusDisablesDeadzone(t *testing.T) {
	f, _ := newTestField(t, 5, 5, 0, nil)
	if n := f.CountType(SporeDeadzone); n != 0 {
		t.Errorf("expected no deadzone cells, got %d", n)
	}
}

func TestNeighbourLinksStopAtEdges(t *testing.T) {
	f, _ := newTestField(t, 3, 3, 0, nil)

	corner := f.CellAtGridPosition(0, 0)
	present := 0
	for _, ni := range corner.neighbours {
		if ni != noCell {
			present++
		}
	}
	if present != 3 {
		t.Errorf("expected 3 neighbours for a corner, got %d", present)
	}

	centre := f.CellAtGridPosition(1, 1)
	for i, ni := range centre.neighbours {
		if ni == noCell {
			t.Errorf("centre neighbour %d missing", i)
		}
	}
}

func TestClearKeepsDeadzone(t *testing.T) {
	f, _ := newTestField(t, 35, 19, 4.5, nil)
	deadzone := f.CountType(SporeDeadzone)

	setCell(t, f, 0, 0, SporeEvil, 0.75)
	setCell(t, f, 1, 0, SporeEvilDead, 1).DecayTimer = 3

	f.Clear()

	if n := f.CountType(SporeDeadzone); n != deadzone {
		t.Errorf("expected %d deadzone cells after Clear, got %d", deadzone, n)
	}
	if n := f.CountType(SporeEmpty); n != len(f.Cells())-deadzone {
		t.Errorf("expected every other cell empty, got %d empty", n)
	}
	for _, c := range f.Cells() {
		if c.Type == SporeEmpty && (c.Size != 0 || c.DecayTimer != 0) {
			t.Fatalf("cleared cell (%d, %d) kept size %v decay %v", c.X, c.Y, c.Size, c.DecayTimer)
		}
	}
}

func TestPlacePortalErrors(t *testing.T) {
	f, _ := newTestField(t, 9, 9, 1, nil)

	tests := []struct {
		name string
		x, y int
		typ  SporeType
		want error
	}{
		{"out of bounds", 9, 0, SporeGoodPortal, ErrOutOfBounds},
		{"deadzone", 4, 4, SporeEvilPortal, ErrDeadzone},
		{"not a portal", 0, 0, SporeGood, ErrInvalidSporeType},
		{"ok", 0, 0, SporeEvilPortal, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := f.PlacePortal(tt.x, tt.y, tt.typ)
			if !errors.Is(err, tt.want) {
				t.Errorf("PlacePortal(%d, %d, %v) = %v, want %v", tt.x, tt.y, tt.typ, err, tt.want)
			}
		})
	}

	if c := f.CellAtGridPosition(0, 0); c.Type != SporeEvilPortal || c.Size != PortalSize {
		t.Errorf("expected evil portal at (0, 0), got %v size %v", c.Type, c.Size)
	}
}

func TestKillSpore(t *testing.T) {
	f, v := emptyField(t, 3, 3)
	v.EvilDeadSporeLife = 2

	evil := setCell(t, f, 1, 1, SporeEvil, 0.75)
	if !f.KillSpore(evil) {
		t.Fatal("expected evil spore to be killed")
	}
	if evil.Type != SporeEvilDead || evil.Size != PortalSize || evil.DecayTimer != 2 {
		t.Errorf("unexpected dead spore state: %v size %v decay %v", evil.Type, evil.Size, evil.DecayTimer)
	}

	good := setCell(t, f, 0, 0, SporeGood, 0.75)
	if f.KillSpore(good) {
		t.Error("expected good spore to survive")
	}
	if f.KillSpore(nil) {
		t.Error("expected nil cell to be ignored")
	}
}

func TestConvertToPortal(t *testing.T) {
	f, v := emptyField(t, 3, 3)
	v.MaxSporeSize = 0.75

	young := setCell(t, f, 0, 0, SporeGood, 0.5)
	if f.ConvertToPortal(young) {
		t.Error("expected young good spore to refuse conversion")
	}

	grown := setCell(t, f, 1, 0, SporeGood, 0.75)
	if !f.ConvertToPortal(grown) || grown.Type != SporeGoodPortal {
		t.Errorf("expected grown good spore to become a portal, got %v", grown.Type)
	}

	evil := setCell(t, f, 2, 0, SporeEvil, 0.5)
	if !f.ConvertToPortal(evil) || evil.Type != SporeEvilPortal || evil.Size != PortalSize {
		t.Errorf("expected evil spore to become a portal, got %v size %v", evil.Type, evil.Size)
	}

	empty := f.CellAtGridPosition(2, 2)
	if f.ConvertToPortal(empty) {
		t.Error("expected empty cell to refuse conversion")
	}
}

func TestOwnerGoesStaleWhenPortalRemoved(t *testing.T) {
	f, v := emptyField(t, 5, 5)
	v.PortalGrowthSpeedFast = 10

	if err := f.PlacePortal(0, 0, SporeGoodPortal); err != nil {
		t.Fatal(err)
	}
	f.CellAtGridPosition(0, 0).PortalGrowTimer = 0
	f.Update(1, PhaseDay)

	spawned := f.CellAtGridPosition(0, 1)
	if owner := f.Owner(spawned); owner == nil || owner.X != 0 || owner.Y != 0 {
		t.Fatalf("expected owner (0, 0), got %+v", owner)
	}

	f.CellAtGridPosition(0, 0).reset()
	if owner := f.Owner(spawned); owner != nil {
		t.Errorf("expected no owner after portal removal, got (%d, %d)", owner.X, owner.Y)
	}
}

func TestSetCellAtWorldPosition(t *testing.T) {
	f, v := newTestField(t, 9, 9, 1, nil)
	v.MaxSporeSize = 0.75
	v.EvilDeadSporeLife = 1.5

	at := func(x, y int) components.Position { return f.CellAtGridPosition(x, y).World }

	tests := []struct {
		name     string
		pos      components.Position
		typ      SporeType
		wantErr  error
		wantSize float32
	}{
		{"good spore", at(0, 0), SporeGood, nil, 0.75},
		{"evil portal", at(1, 0), SporeEvilPortal, nil, PortalSize},
		{"evil dead", at(2, 0), SporeEvilDead, nil, PortalSize},
		{"empty", at(0, 0), SporeEmpty, nil, 0},
		{"deadzone refuses", at(4, 4), SporeGood, ErrDeadzone, 0},
		{"outside", components.Position{X: 100}, SporeGood, ErrOutOfBounds, 0},
		{"cannot create deadzone", at(0, 1), SporeDeadzone, ErrInvalidSporeType, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := f.SetCellAtWorldPosition(tt.pos, tt.typ)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected error %v, got %v", tt.wantErr, err)
			}
			if err != nil {
				return
			}
			if c.Type != tt.typ || c.Size != tt.wantSize {
				t.Errorf("got %v size %v, want %v size %v", c.Type, c.Size, tt.typ, tt.wantSize)
			}
		})
	}

	if c := f.CellAtGridPosition(2, 0); c.DecayTimer != 1.5 {
		t.Errorf("expected fresh decay timer 1.5, got %v", c.DecayTimer)
	}
}
