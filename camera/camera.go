// Package camera provides a 2D camera system for viewport control.
package camera

import "github.com/pthm-cable/sporefield/components"

// margin is the share of the viewport left free around the field at fit zoom.
const margin = 0.05

// Camera controls the viewport into the playing field.
// Zoom is in screen pixels per world unit.
type Camera struct {
	// Position is the camera center in world coordinates
	X, Y float32

	Zoom float32

	// Viewport dimensions (screen size)
	ViewportW, ViewportH float32

	// World rectangle the camera is kept over
	Bounds components.BoundingBox

	// Zoom constraints
	MinZoom, MaxZoom float32
}

// New creates a camera centered on the field, zoomed so the whole field fits.
func New(viewportW, viewportH float32, bounds components.BoundingBox) *Camera {
	c := &Camera{
		ViewportW: viewportW,
		ViewportH: viewportH,
		Bounds:    bounds,
	}
	c.updateZoomLimits()
	c.Reset()
	return c
}

// FitZoom returns the zoom at which the whole field fits the viewport.
func (c *Camera) FitZoom() float32 {
	w, h := c.Bounds.Width(), c.Bounds.Height()
	if w <= 0 || h <= 0 {
		return 1
	}
	return min(c.ViewportW/w, c.ViewportH/h) * (1 - 2*margin)
}

func (c *Camera) updateZoomLimits() {
	fit := c.FitZoom()
	c.MinZoom = fit * 0.5
	c.MaxZoom = fit * 8
}

// WorldToScreen converts world coordinates to screen coordinates.
func (c *Camera) WorldToScreen(wx, wy float32) (sx, sy float32) {
	sx = c.ViewportW/2 + (wx-c.X)*c.Zoom
	sy = c.ViewportH/2 + (wy-c.Y)*c.Zoom
	return sx, sy
}

// ScreenToWorld converts screen coordinates to world coordinates.
func (c *Camera) ScreenToWorld(sx, sy float32) (wx, wy float32) {
	wx = c.X + (sx-c.ViewportW/2)/c.Zoom
	wy = c.Y + (sy-c.ViewportH/2)/c.Zoom
	return wx, wy
}

// ScreenToPosition is ScreenToWorld returning a component position.
func (c *Camera) ScreenToPosition(sx, sy float32) components.Position {
	wx, wy := c.ScreenToWorld(sx, sy)
	return components.Position{X: wx, Y: wy}
}

// IsVisible returns true if a circle at (wx, wy) with given radius
// could be visible on screen (conservative check for culling).
func (c *Camera) IsVisible(wx, wy, radius float32) bool {
	halfW := c.ViewportW/(2*c.Zoom) + radius
	halfH := c.ViewportH/(2*c.Zoom) + radius
	return absf(wx-c.X) <= halfW && absf(wy-c.Y) <= halfH
}

// Resize updates viewport dimensions and recalculates zoom constraints.
func (c *Camera) Resize(viewportW, viewportH float32) {
	if viewportW == c.ViewportW && viewportH == c.ViewportH {
		return
	}
	c.ViewportW = viewportW
	c.ViewportH = viewportH
	c.updateZoomLimits()
	c.SetZoom(c.Zoom)
}

// SetBounds replaces the field rectangle, for example after loading a field
// of another size, and resets the view.
func (c *Camera) SetBounds(bounds components.BoundingBox) {
	c.Bounds = bounds
	c.updateZoomLimits()
	c.Reset()
}

// Pan moves the camera by the given delta in screen pixels.
// The camera center never leaves the field.
func (c *Camera) Pan(dx, dy float32) {
	c.X = clamp(c.X+dx/c.Zoom, c.Bounds.Left, c.Bounds.Right)
	c.Y = clamp(c.Y+dy/c.Zoom, c.Bounds.Top, c.Bounds.Bottom)
}

// SetZoom sets the zoom level, clamped to min/max.
func (c *Camera) SetZoom(zoom float32) {
	c.Zoom = clamp(zoom, c.MinZoom, c.MaxZoom)
}

// ZoomBy multiplies the current zoom by the given factor.
func (c *Camera) ZoomBy(factor float32) {
	c.SetZoom(c.Zoom * factor)
}

// Reset centers the camera on the field at fit zoom.
func (c *Camera) Reset() {
	c.X = (c.Bounds.Left + c.Bounds.Right) / 2
	c.Y = (c.Bounds.Top + c.Bounds.Bottom) / 2
	c.Zoom = c.FitZoom()
}

// VisibleWorldBounds returns the world rectangle covered by the viewport.
func (c *Camera) VisibleWorldBounds() components.BoundingBox {
	halfW := c.ViewportW / (2 * c.Zoom)
	halfH := c.ViewportH / (2 * c.Zoom)
	return components.NewBoundingBox(c.X-halfW, c.X+halfW, c.Y-halfH, c.Y+halfH)
}

func absf(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}

func clamp(x, lo, hi float32) float32 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
