package ui

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/sporefield/config"
	"github.com/pthm-cable/sporefield/systems"
)

// DebugAction is a button press reported by the debug panel.
type DebugAction int

const (
	ActionNone DebugAction = iota
	ActionDay
	ActionNight
	ActionClear
	ActionSave
	ActionLoad
	ActionSnapshot
	ActionPause
	ActionStep
)

// slider binds a tunable value to a labelled slider.
type slider struct {
	label    string
	min, max float32
	value    func(v *config.Values) *float64
}

var debugSliders = []slider{
	{"Good portal growth", 0.1, 5, func(v *config.Values) *float64 { return &v.PortalGrowthFactorGood }},
	{"Evil portal growth", 0.1, 5, func(v *config.Values) *float64 { return &v.PortalGrowthFactorEvil }},
	{"Growth speed fast", 0, 1, func(v *config.Values) *float64 { return &v.GrowthSpeedFast }},
	{"Growth speed slow", 0, 1, func(v *config.Values) *float64 { return &v.GrowthSpeedSlow }},
	{"Portal grow timer", 0.05, 5, func(v *config.Values) *float64 { return &v.PortalGrowTimer }},
	{"Phase speed", 0, 10, func(v *config.Values) *float64 { return &v.PhaseSpeed }},
	{"Spawner chance", 0, 1, func(v *config.Values) *float64 { return &v.EvilPortalSpawnerSpawnChance }},
	{"Dead spore life", 0.1, 20, func(v *config.Values) *float64 { return &v.EvilDeadSporeLife }},
}

// spawnTools are the spore types the placement tool cycles through.
var spawnTools = []systems.SporeType{
	systems.SporeEmpty,
	systems.SporeGood,
	systems.SporeEvil,
	systems.SporeEvilDead,
	systems.SporeGoodPortal,
	systems.SporeEvilPortal,
}

// DebugPanel exposes live tuning sliders and field tools.
type DebugPanel struct {
	renderer *Renderer
	x, y     float32
	width    float32
	tool     int // Index into spawnTools, -1 when the tool is off
}

// NewDebugPanel creates a debug panel.
func NewDebugPanel(x, y, width float32) *DebugPanel {
	return &DebugPanel{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
		width:    width,
		tool:     -1,
	}
}

// SetPosition updates the panel position.
func (d *DebugPanel) SetPosition(x, y float32) {
	d.x = x
	d.y = y
}

// Tool returns the spore type placed by clicks, if the tool is active.
func (d *DebugPanel) Tool() (systems.SporeType, bool) {
	if d.tool < 0 {
		return 0, false
	}
	return spawnTools[d.tool], true
}

// ToolName returns the active tool label, or "" when off.
func (d *DebugPanel) ToolName() string {
	t, ok := d.Tool()
	if !ok {
		return ""
	}
	return "place " + t.String()
}

// Contains reports whether a screen point lies over the panel.
func (d *DebugPanel) Contains(p rl.Vector2) bool {
	return rl.CheckCollisionPointRec(p, rl.Rectangle{X: d.x, Y: d.y, Width: d.width, Height: d.height()})
}

func (d *DebugPanel) height() float32 {
	return 40 + float32(len(debugSliders))*38 + 5*36
}

// Draw renders the panel, applies slider changes to values and returns the
// button pressed this frame.
func (d *DebugPanel) Draw(values *config.Values, paused bool) DebugAction {
	r := d.renderer
	r.DrawPanel(int32(d.x), int32(d.y), int32(d.width), int32(d.height()))

	x := d.x + float32(r.Theme.Padding)
	y := d.y + float32(r.Theme.Padding)
	inner := d.width - float32(r.Theme.Padding)*2

	rl.DrawText("Debug", int32(x), int32(y), 16, rl.White)
	y += 26

	for _, s := range debugSliders {
		ptr := s.value(values)
		rl.DrawText(s.label, int32(x), int32(y), r.Theme.FontSize, r.Theme.LabelColor)
		y += 14
		v := gui.SliderBar(
			rl.Rectangle{X: x, Y: y, Width: inner - 50, Height: 16},
			"", "",
			float32(*ptr), s.min, s.max,
		)
		if v != float32(*ptr) {
			*ptr = float64(v)
		}
		rl.DrawText(fmt.Sprintf("%.2f", *ptr), int32(x+inner-44), int32(y+2), r.Theme.FontSize, r.Theme.ValueColor)
		y += 24
	}

	half := (inner - 10) / 2
	action := ActionNone
	button := func(col int, label string, a DebugAction) {
		bx := x
		if col == 1 {
			bx += half + 10
		}
		if gui.Button(rl.Rectangle{X: bx, Y: y, Width: half, Height: 26}, label) {
			action = a
		}
	}

	button(0, "Day", ActionDay)
	button(1, "Night", ActionNight)
	y += 36
	button(0, toggleText(paused, "Resume", "Pause"), ActionPause)
	button(1, "Step", ActionStep)
	y += 36
	button(0, "Save", ActionSave)
	button(1, "Load", ActionLoad)
	y += 36
	button(0, "Snapshot", ActionSnapshot)
	button(1, "Clear", ActionClear)
	y += 36

	toolLabel := "Tool: off"
	if name := d.ToolName(); name != "" {
		toolLabel = "Tool: " + name
	}
	if gui.Button(rl.Rectangle{X: x, Y: y, Width: inner, Height: 26}, toolLabel) {
		d.cycleTool()
	}

	return action
}

// cycleTool steps through the spawn tools, then back to off.
func (d *DebugPanel) cycleTool() {
	d.tool++
	if d.tool >= len(spawnTools) {
		d.tool = -1
	}
}

func toggleText(on bool, onText, offText string) string {
	if on {
		return onText
	}
	return offText
}
