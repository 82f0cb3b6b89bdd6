package camera

import (
	"math"
	"testing"

	"github.com/pthm-cable/sporefield/components"
)

// field35x19 is the default field: 35x19 cells at 1.3 spacing.
var field35x19 = components.NewBoundingBox(-22.75, 22.75, -12.35, 12.35)

func near(a, b float32) bool {
	return math.Abs(float64(a-b)) < 0.01
}

func TestNewFitsField(t *testing.T) {
	cam := New(1280, 720, field35x19)

	if cam.X != 0 || cam.Y != 0 {
		t.Errorf("expected camera at origin, got (%f, %f)", cam.X, cam.Y)
	}

	vis := cam.VisibleWorldBounds()
	if vis.Left > field35x19.Left || vis.Right < field35x19.Right ||
		vis.Top > field35x19.Top || vis.Bottom < field35x19.Bottom {
		t.Errorf("field %+v not fully visible in %+v", field35x19, vis)
	}
}

func TestWorldToScreenCentered(t *testing.T) {
	cam := New(1280, 720, field35x19)

	sx, sy := cam.WorldToScreen(0, 0)
	if !near(sx, 640) || !near(sy, 360) {
		t.Errorf("expected screen center (640, 360), got (%f, %f)", sx, sy)
	}

	// Positive Y is further down the screen
	_, below := cam.WorldToScreen(0, 5)
	if below <= 360 {
		t.Errorf("expected y=5 below center, got %f", below)
	}
}

func TestScreenToWorldRoundtrip(t *testing.T) {
	cam := New(1280, 720, field35x19)
	cam.ZoomBy(2)
	cam.Pan(100, -40)

	testCases := []struct{ sx, sy float32 }{
		{640, 360},
		{100, 100},
		{1200, 600},
	}

	for _, tc := range testCases {
		wx, wy := cam.ScreenToWorld(tc.sx, tc.sy)
		sx, sy := cam.WorldToScreen(wx, wy)
		if !near(sx, tc.sx) || !near(sy, tc.sy) {
			t.Errorf("roundtrip failed: (%f,%f) -> (%f,%f) -> (%f,%f)",
				tc.sx, tc.sy, wx, wy, sx, sy)
		}
	}

	pos := cam.ScreenToPosition(640, 360)
	if !near(pos.X, cam.X) || !near(pos.Y, cam.Y) {
		t.Errorf("expected screen center at camera position, got %+v", pos)
	}
}

func TestPanStaysOverField(t *testing.T) {
	cam := New(1280, 720, field35x19)

	cam.Pan(1e6, -1e6)
	if cam.X != field35x19.Right || cam.Y != field35x19.Top {
		t.Errorf("expected pan clamped to (%f, %f), got (%f, %f)",
			field35x19.Right, field35x19.Top, cam.X, cam.Y)
	}
}

func TestZoomClamp(t *testing.T) {
	cam := New(1280, 720, field35x19)

	cam.SetZoom(1e6)
	if cam.Zoom != cam.MaxZoom {
		t.Errorf("expected zoom clamped to max %f, got %f", cam.MaxZoom, cam.Zoom)
	}

	cam.SetZoom(0)
	if cam.Zoom != cam.MinZoom {
		t.Errorf("expected zoom clamped to min %f, got %f", cam.MinZoom, cam.Zoom)
	}
}

func TestResizeKeepsZoomInRange(t *testing.T) {
	cam := New(1280, 720, field35x19)
	cam.SetZoom(cam.MaxZoom)

	cam.Resize(320, 180)
	if cam.Zoom > cam.MaxZoom {
		t.Errorf("zoom %f above new max %f", cam.Zoom, cam.MaxZoom)
	}
}

func TestIsVisible(t *testing.T) {
	cam := New(1280, 720, field35x19)
	cam.SetZoom(cam.MaxZoom)

	if !cam.IsVisible(0, 0, 0.5) {
		t.Error("center should be visible")
	}
	if cam.IsVisible(field35x19.Right, 0, 0.5) {
		t.Error("field edge should be culled when zoomed in")
	}
}

func TestSetBoundsAndReset(t *testing.T) {
	cam := New(1280, 720, field35x19)
	cam.Pan(200, 200)
	cam.ZoomBy(3)

	small := components.NewBoundingBox(-2, 2, -1, 1)
	cam.SetBounds(small)
	if cam.X != 0 || cam.Y != 0 || cam.Zoom != cam.FitZoom() {
		t.Errorf("expected reset view, got (%f, %f) zoom %f", cam.X, cam.Y, cam.Zoom)
	}
	if cam.FitZoom() <= New(1280, 720, field35x19).FitZoom() {
		t.Error("expected a smaller field to fit at higher zoom")
	}
}
