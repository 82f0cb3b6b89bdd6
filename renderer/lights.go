package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/sporefield/camera"
	"github.com/pthm-cable/sporefield/components"
)

// LightRenderer blends light sources additively over the field as radial
// gradients. Light height dims the core: low lights are tight and bright.
type LightRenderer struct {
	Intensity float32 // Alpha of a light's core at height 1
}

// NewLightRenderer creates a light renderer.
func NewLightRenderer() *LightRenderer {
	return &LightRenderer{Intensity: 0.35}
}

// Draw renders all lights.
func (l *LightRenderer) Draw(lights []components.LightSource, cam *camera.Camera) {
	rl.BeginBlendMode(rl.BlendAdditive)
	for i := range lights {
		light := &lights[i]
		if light.Radius <= 0 || !cam.IsVisible(light.Position.X, light.Position.Y, light.Radius) {
			continue
		}
		sx, sy := cam.WorldToScreen(light.Position.X, light.Position.Y)
		alpha := l.Intensity
		if light.Height > 0 {
			alpha = min(l.Intensity/light.Height, 1)
		}
		inner := LightColor(light.Color, alpha)
		outer := LightColor(light.Color, 0)
		rl.DrawCircleGradient(int32(sx), int32(sy), light.Radius*cam.Zoom, inner, outer)
	}
	rl.EndBlendMode()
}
