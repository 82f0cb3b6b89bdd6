package ui

import (
	"fmt"
	"log/slog"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/sporefield/camera"
	"github.com/pthm-cable/sporefield/components"
	"github.com/pthm-cable/sporefield/game"
	"github.com/pthm-cable/sporefield/renderer"
	"github.com/pthm-cable/sporefield/systems"
	"github.com/pthm-cable/sporefield/telemetry"
)

const controlsLegend = "WASD: move | LMB: shoot | RMB/E: pick up or drop | Space: pause | ,: step | Wheel: zoom | MMB: pan | R: reset view | F1: debug"

// messageTicks is how long a status message stays on the HUD, in frames.
const messageTicks = 180

// AppOptions configures the graphical front end.
type AppOptions struct {
	SavePath    string // Target of the Save and Load buttons
	SnapshotDir string // Target of the Snapshot button
	MaxTicks    int32  // Close the window after N ticks (0 = unlimited)
}

// App draws a game and turns input into game actions.
type App struct {
	game *game.Game
	opts AppOptions

	cam         *camera.Camera
	fieldDraw   *renderer.FieldRenderer
	lightDraw   *renderer.LightRenderer
	projDraw    *renderer.ProjectileRenderer
	overlays    *OverlayRegistry
	hud         *HUD
	stats       *FieldStatsPanel
	inspector   *Inspector
	perf        *PerfPanel
	controls    *ControlsPanel
	debug       *DebugPanel
	sample      telemetry.FieldSample
	message     string
	messageLeft int
}

// NewApp creates the front end. The raylib window must already be open.
func NewApp(g *game.Game, opts AppOptions) *App {
	if opts.SavePath == "" {
		opts.SavePath = "field.sav"
	}
	if opts.SnapshotDir == "" {
		opts.SnapshotDir = "snapshots"
	}

	w := float32(rl.GetScreenWidth())
	h := float32(rl.GetScreenHeight())

	a := &App{
		game:      g,
		opts:      opts,
		cam:       camera.New(w, h, g.Field().Bounds()),
		fieldDraw: renderer.NewFieldRenderer(),
		lightDraw: renderer.NewLightRenderer(),
		projDraw:  renderer.NewProjectileRenderer(),
		overlays:  NewOverlayRegistry(),
		hud:       NewHUD(),
		stats:     NewFieldStatsPanel(10, 130, 240),
		inspector: NewInspector(0, 130, 240),
		perf:      NewPerfPanel(0, 130),
		controls:  NewControlsPanel(0, 10, 220),
		debug:     NewDebugPanel(0, 10, 260),
	}
	a.layout()
	return a
}

// layout positions the right hand panels for the current screen size.
func (a *App) layout() {
	w := float32(rl.GetScreenWidth())
	a.inspector.SetPosition(int32(w)-250, 10)
	a.perf.SetPosition(int32(w)-250, 10)
	a.controls.SetPosition(int32(w)-230, 10)
	a.debug.SetPosition(w-270, 10)
}

// Run drives the window until it is closed or MaxTicks is reached.
func (a *App) Run() {
	for !rl.WindowShouldClose() {
		a.handleInput()
		a.game.Update()
		a.draw()

		if a.opts.MaxTicks > 0 && a.game.Tick() >= a.opts.MaxTicks {
			slog.Info("max ticks reached", "tick", a.game.Tick())
			return
		}
	}
}

func (a *App) notify(format string, args ...any) {
	a.message = fmt.Sprintf(format, args...)
	a.messageLeft = messageTicks
}

func (a *App) mouseWorld() components.Position {
	m := rl.GetMousePosition()
	return a.cam.ScreenToPosition(m.X, m.Y)
}

func (a *App) handleInput() {
	if rl.IsWindowResized() {
		a.cam.Resize(float32(rl.GetScreenWidth()), float32(rl.GetScreenHeight()))
		a.layout()
	}

	a.overlays.HandleInput()
	if rl.IsKeyPressed(rl.KeyH) {
		a.controls.Toggle()
	}

	var dir components.Velocity
	if rl.IsKeyDown(rl.KeyW) {
		dir.Y--
	}
	if rl.IsKeyDown(rl.KeyS) {
		dir.Y++
	}
	if rl.IsKeyDown(rl.KeyA) {
		dir.X--
	}
	if rl.IsKeyDown(rl.KeyD) {
		dir.X++
	}
	a.game.MovePlayer(dir)

	if rl.IsKeyPressed(rl.KeySpace) {
		a.game.TogglePause()
	}
	if rl.IsKeyPressed(rl.KeyComma) && a.game.Paused() {
		a.game.Step()
	}
	if rl.IsKeyPressed(rl.KeyR) {
		a.cam.Reset()
	}

	if wheel := rl.GetMouseWheelMove(); wheel != 0 {
		a.cam.ZoomBy(1 + wheel*0.1)
	}
	if rl.IsMouseButtonDown(rl.MouseButtonMiddle) {
		d := rl.GetMouseDelta()
		a.cam.Pan(-d.X, -d.Y)
	}

	mouse := rl.GetMousePosition()
	if a.overlays.IsEnabled(OverlayDebug) && a.debug.Contains(mouse) {
		return
	}

	if rl.IsMouseButtonPressed(rl.MouseButtonLeft) {
		if t, ok := a.debug.Tool(); ok && a.overlays.IsEnabled(OverlayDebug) {
			if err := a.game.PlaceSpore(a.mouseWorld(), t); err != nil {
				a.notify("place: %v", err)
			}
		} else {
			a.game.Fire(a.mouseWorld())
		}
	}
	if rl.IsMouseButtonPressed(rl.MouseButtonRight) || rl.IsKeyPressed(rl.KeyE) {
		a.game.Interact()
	}
}

func (a *App) applyDebugAction(action DebugAction) {
	switch action {
	case ActionDay:
		a.game.SetPhase(systems.PhaseDay)
	case ActionNight:
		a.game.SetPhase(systems.PhaseNight)
	case ActionPause:
		a.game.TogglePause()
	case ActionStep:
		a.game.Step()
	case ActionClear:
		a.game.ClearField()
		a.notify("field cleared")
	case ActionSave:
		if err := a.game.SaveField(a.opts.SavePath); err != nil {
			a.notify("save: %v", err)
			return
		}
		a.notify("saved %s", a.opts.SavePath)
	case ActionLoad:
		if err := a.game.LoadField(a.opts.SavePath); err != nil {
			a.notify("load: %v", err)
			return
		}
		a.cam.SetBounds(a.game.Field().Bounds())
		a.notify("loaded %s", a.opts.SavePath)
	case ActionSnapshot:
		path, err := a.game.SaveSnapshot(a.opts.SnapshotDir, nil)
		if err != nil {
			a.notify("snapshot: %v", err)
			return
		}
		a.notify("snapshot %s", path)
	}
}

func (a *App) draw() {
	g := a.game
	field := g.Field()
	values := g.State().Values
	player := g.Player()

	rl.BeginDrawing()
	rl.ClearBackground(a.fieldDraw.Palette.Background)

	a.fieldDraw.Draw(field, a.cam, a.overlays.IsEnabled(OverlayGrid))
	a.fieldDraw.DrawBounds(field, a.cam)
	if a.overlays.IsEnabled(OverlayInspector) {
		if c := field.CellAtWorldPosition(a.mouseWorld()); c != nil {
			a.fieldDraw.DrawHighlight(c, field.Spacing(), a.cam, rl.Yellow)
		}
	}
	a.projDraw.Draw(g.Projectiles(), float32(values.GoodSpawnerProjectileSize), float32(values.EvilSpawnerProjectileSize), a.cam)
	if a.overlays.IsEnabled(OverlayAim) {
		a.projDraw.DrawAim(player.Position, a.mouseWorld(), player.FiringCooldown <= 0, a.cam)
	}
	a.projDraw.DrawPlayer(player.Position, player.Carrying, a.cam)
	if a.overlays.IsEnabled(OverlayLights) {
		a.lightDraw.Draw(g.Lights(), a.cam)
	}

	a.drawUI()

	rl.EndDrawing()
}

func (a *App) drawUI() {
	g := a.game
	state := g.State()

	if a.messageLeft > 0 {
		a.messageLeft--
	}
	msg := ""
	if a.messageLeft > 0 {
		msg = a.message
	}

	a.hud.Draw(HUDData{
		Title:         "Spore Field",
		Tick:          g.Tick(),
		FPS:           rl.GetFPS(),
		Phase:         state.Phase,
		PhaseProgress: state.PhaseProgress(),
		Projectiles:   g.Projectiles().Count(),
		Carrying:      g.Player().Carrying,
		Tool:          a.debug.ToolName(),
		Paused:        g.Paused(),
		Message:       msg,
	})
	a.hud.DrawControls(int32(rl.GetScreenHeight()), controlsLegend)

	if a.overlays.IsEnabled(OverlayStats) {
		a.sample = telemetry.SampleField(g.Field(), a.sample)
		a.stats.Draw(a.sample)
	}
	if a.overlays.IsEnabled(OverlayInspector) {
		a.inspector.Draw(InspectorData{
			Cell:  g.Field().CellAtWorldPosition(a.mouseWorld()),
			Field: g.Field(),
		})
	}
	if a.overlays.IsEnabled(OverlayPerf) {
		a.perf.Draw(g.PerfStats())
	}
	if a.overlays.IsEnabled(OverlayDebug) {
		a.applyDebugAction(a.debug.Draw(&state.Values, g.Paused()))
	} else {
		a.controls.Draw(a.overlays)
	}
}
