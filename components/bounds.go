package components

// BoundingBox is an axis-aligned rectangle on the field plane.
// Top is the smaller Y value.
type BoundingBox struct {
	Left, Right, Top, Bottom float32
}

// NewBoundingBox creates a bounding box from its edges.
func NewBoundingBox(left, right, top, bottom float32) BoundingBox {
	return BoundingBox{Left: left, Right: right, Top: top, Bottom: bottom}
}

// Width returns the horizontal extent.
func (b BoundingBox) Width() float32 {
	return b.Right - b.Left
}

// Height returns the vertical extent.
func (b BoundingBox) Height() float32 {
	return b.Bottom - b.Top
}

// AspectRatio returns width / height, or 0 for a degenerate box.
func (b BoundingBox) AspectRatio() float32 {
	h := b.Height()
	if h == 0 {
		return 0
	}
	return b.Width() / h
}

// Inside reports whether pos lies in the box grown by margin.
// The margin is relative to each edge's distance from the origin, so 0.25
// lets a projectile travel a quarter of the half-extent past a centred box.
func (b BoundingBox) Inside(pos Position, margin float32) bool {
	return pos.X >= b.Left-absf(b.Left*margin) &&
		pos.X <= b.Right+absf(b.Right*margin) &&
		pos.Y >= b.Top-absf(b.Top*margin) &&
		pos.Y <= b.Bottom+absf(b.Bottom*margin)
}

func absf(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
