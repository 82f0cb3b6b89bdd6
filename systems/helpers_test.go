package systems

import (
	"testing"

	"github.com/pthm-cable/sporefield/config"
)

// fixedRand replays scripted values, then returns zero forever.
// Zero means "roll always succeeds, pick the first candidate".
type fixedRand struct {
	floats []float32
	ints   []int
}

func (r *fixedRand) Float32() float32 {
	if len(r.floats) == 0 {
		return 0
	}
	v := r.floats[0]
	r.floats = r.floats[1:]
	return v
}

func (r *fixedRand) Intn(n int) int {
	if len(r.ints) == 0 {
		return 0
	}
	v := r.ints[0]
	r.ints = r.ints[1:]
	return v % n
}

// newTestField generates a w x h field from the embedded defaults with the
// given deadzone radius. The returned values are the ones the field reads.
func newTestField(t *testing.T, w, h int, deadzone float64, rng Rand) (*PlayingField, *config.Values) {
	t.Helper()

	cfg := config.Default()
	values := cfg.Values
	values.PlayingFieldDeadzone = deadzone
	if rng == nil {
		rng = &fixedRand{}
	}

	f := NewPlayingField(cfg.Field, &values, rng)
	if err := f.Generate(w, h); err != nil {
		t.Fatalf("Generate(%d, %d) failed: %v", w, h, err)
	}
	return f, &values
}

// emptyField is newTestField without deadzone and without starting portals.
func emptyField(t *testing.T, w, h int) (*PlayingField, *config.Values) {
	t.Helper()
	f, v := newTestField(t, w, h, 0, nil)
	f.Clear()
	return f, v
}

func setCell(t *testing.T, f *PlayingField, x, y int, typ SporeType, size float32) *Cell {
	t.Helper()
	c := f.CellAtGridPosition(x, y)
	if c == nil {
		t.Fatalf("no cell at (%d, %d)", x, y)
	}
	c.Type = typ
	c.Size = size
	return c
}

func approxEqual(a, b float32) bool {
	d := a - b
	return d < 1e-5 && d > -1e-5
}

func chebyshev(ax, ay, bx, by int) int {
	dx := ax - bx
	if dx < 0 {
		dx = -dx
	}
	dy := ay - by
	if dy < 0 {
		dy = -dy
	}
	return max(dx, dy)
}
