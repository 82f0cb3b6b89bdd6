package ui

import (
	"fmt"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/sporefield/systems"
	"github.com/pthm-cable/sporefield/telemetry"
)

// HUDData holds all the data needed to render the main HUD.
type HUDData struct {
	Title         string
	Tick          int32
	FPS           int32
	Phase         systems.Phase
	PhaseProgress float32
	Projectiles   int
	Carrying      bool
	Tool          string
	Paused        bool
	Message       string
}

// HUD renders the main heads-up display.
type HUD struct {
	renderer *Renderer
}

// NewHUD creates a new HUD renderer.
func NewHUD() *HUD {
	return &HUD{
		renderer: NewRenderer(),
	}
}

// Draw renders the HUD.
func (h *HUD) Draw(data HUDData) {
	rl.DrawText(data.Title, 10, 10, 20, rl.White)

	phaseColor := rl.Color{R: 255, G: 190, B: 90, A: 255}
	if data.Phase == systems.PhaseNight {
		phaseColor = rl.Color{R: 110, G: 120, B: 255, A: 255}
	}
	rl.DrawText(fmt.Sprintf("%s %3.0f%%", data.Phase, data.PhaseProgress*100), 10, 35, 16, phaseColor)
	rl.DrawRectangle(10, 54, 120, 4, h.renderer.Theme.BarBg)
	rl.DrawRectangle(10, 54, int32(120*data.PhaseProgress), 4, phaseColor)

	rl.DrawText(
		fmt.Sprintf("Tick: %d | FPS: %d | Projectiles: %d", data.Tick, data.FPS, data.Projectiles),
		10, 64, 16, rl.LightGray,
	)

	status := "Running"
	if data.Paused {
		status = "PAUSED"
	}
	if data.Carrying {
		status += " | carrying spawner"
	}
	if data.Tool != "" {
		status += " | tool: " + data.Tool
	}
	rl.DrawText(status, 10, 84, 16, rl.Yellow)

	if data.Message != "" {
		rl.DrawText(data.Message, 10, 104, 14, rl.Orange)
	}
}

// DrawControls renders the control legend at the bottom of the screen.
func (h *HUD) DrawControls(screenHeight int32, controls string) {
	rl.DrawText(controls, 10, screenHeight-25, 14, rl.Gray)
}

// FieldStatsPanel shows cell counts and faction coverage, built from
// section descriptors over telemetry.FieldSample.
type FieldStatsPanel struct {
	renderer *Renderer
	x, y     int32
	width    int32
	sections []SectionDescriptor
}

// NewFieldStatsPanel creates a field stats panel.
func NewFieldStatsPanel(x, y, width int32) *FieldStatsPanel {
	return &FieldStatsPanel{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
		width:    width,
		sections: fieldStatsSections(),
	}
}

// SetPosition updates the panel position.
func (p *FieldStatsPanel) SetPosition(x, y int32) {
	p.x = x
	p.y = y
}

func sampleOf(data any) telemetry.FieldSample {
	return data.(telemetry.FieldSample)
}

func countField(label string, t systems.SporeType) FieldDescriptor {
	return FieldDescriptor{
		ID:     t.String(),
		Label:  label,
		Widget: WidgetText,
		Format: "%.0f",
		Getter: func(d any) float32 { return float32(sampleOf(d).Counts[t]) },
	}
}

func fieldStatsSections() []SectionDescriptor {
	return []SectionDescriptor{
		{
			ID:    "coverage",
			Title: "Coverage",
			Fields: []FieldDescriptor{
				{
					ID:     "good_coverage",
					Label:  "Good",
					Widget: WidgetBar,
					Color:  rl.Color{R: 120, G: 200, B: 90, A: 255},
					Getter: func(d any) float32 { return float32(sampleOf(d).Coverage(systems.SporeGood)) },
				},
				{
					ID:     "evil_coverage",
					Label:  "Evil",
					Widget: WidgetBar,
					Color:  rl.Color{R: 150, G: 60, B: 190, A: 255},
					Getter: func(d any) float32 { return float32(sampleOf(d).Coverage(systems.SporeEvil)) },
				},
			},
		},
		{
			ID:    "cells",
			Title: "Cells",
			Fields: []FieldDescriptor{
				countField("Good", systems.SporeGood),
				countField("Good portals", systems.SporeGoodPortal),
				countField("Evil", systems.SporeEvil),
				countField("Evil portals", systems.SporeEvilPortal),
				countField("Evil dead", systems.SporeEvilDead),
				countField("Empty", systems.SporeEmpty),
				{
					ID:     "good_size",
					Label:  "Good size",
					Widget: WidgetText,
					Visible: func(d any) bool {
						return len(sampleOf(d).GoodSizes) > 0
					},
					TextGetter: func(d any) string {
						mean, _, p50 := telemetry.ComputeSizeStats(sampleOf(d).GoodSizes)
						return fmt.Sprintf("%.2f (p50 %.2f)", mean, p50)
					},
				},
				{
					ID:     "evil_size",
					Label:  "Evil size",
					Widget: WidgetText,
					Visible: func(d any) bool {
						return len(sampleOf(d).EvilSizes) > 0
					},
					TextGetter: func(d any) string {
						mean, _, p50 := telemetry.ComputeSizeStats(sampleOf(d).EvilSizes)
						return fmt.Sprintf("%.2f (p50 %.2f)", mean, p50)
					},
				},
			},
		},
	}
}

// Draw renders the panel for a field sample.
func (p *FieldStatsPanel) Draw(sample telemetry.FieldSample) {
	r := p.renderer
	padding := r.Theme.Padding

	height := padding * 2
	for _, sd := range p.sections {
		height += r.SectionHeight(sd, sample)
	}
	r.DrawPanel(p.x, p.y, p.width, height)

	y := p.y + padding
	for _, sd := range p.sections {
		y = r.DrawSection(p.x+padding, y, sd, sample, p.width-padding*2)
	}
}

// PerfPanel renders per phase tick timing.
type PerfPanel struct {
	renderer *Renderer
	x, y     int32
	phases   []string
}

// NewPerfPanel creates a new performance panel.
func NewPerfPanel(x, y int32) *PerfPanel {
	return &PerfPanel{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
		phases:   telemetry.PerfPhases(),
	}
}

// SetPosition updates the panel position.
func (p *PerfPanel) SetPosition(x, y int32) {
	p.x = x
	p.y = y
}

// Draw renders the performance panel.
func (p *PerfPanel) Draw(stats telemetry.PerfStats) {
	x := p.x
	y := p.y

	rl.DrawText("Tick Performance", x, y, 16, rl.White)
	y += 20

	rl.DrawText(fmt.Sprintf("Avg: %s  Max: %s",
		stats.AvgTickDuration.Round(time.Microsecond), stats.MaxTickDuration.Round(time.Microsecond)),
		x, y, 14, rl.Yellow)
	y += 16

	for _, name := range p.phases {
		pct := stats.PhasePct[name]

		color := rl.LightGray
		if pct > 50 {
			color = rl.Red
		} else if pct > 25 {
			color = rl.Orange
		}

		rl.DrawText(
			fmt.Sprintf("%-12s %8s %5.1f%%", name, stats.PhaseAvg[name].Round(time.Microsecond), pct),
			x, y, 12, color,
		)
		y += 14
	}
}
