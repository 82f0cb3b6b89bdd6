package ui

import (
	"fmt"

	"github.com/pthm-cable/sporefield/systems"
)

// InspectorData holds the cell under inspection and the field it lives in.
type InspectorData struct {
	Cell  *systems.Cell
	Field *systems.PlayingField
}

// Inspector renders the cell inspection panel.
type Inspector struct {
	renderer *Renderer
	x, y     int32
	width    int32
	sections []SectionDescriptor
}

// NewInspector creates a new inspector panel.
func NewInspector(x, y, width int32) *Inspector {
	return &Inspector{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
		width:    width,
		sections: inspectorSections(),
	}
}

// SetPosition updates the inspector position.
func (ins *Inspector) SetPosition(x, y int32) {
	ins.x = x
	ins.y = y
}

func inspected(d any) InspectorData {
	return d.(InspectorData)
}

func isType(types ...systems.SporeType) func(any) bool {
	return func(d any) bool {
		t := inspected(d).Cell.Type
		for _, want := range types {
			if t == want {
				return true
			}
		}
		return false
	}
}

func inspectorSections() []SectionDescriptor {
	return []SectionDescriptor{
		{
			ID:    "cell",
			Title: "Cell",
			Fields: []FieldDescriptor{
				{
					ID: "position", Label: "Grid", Widget: WidgetText,
					TextGetter: func(d any) string {
						c := inspected(d).Cell
						return fmt.Sprintf("(%d, %d)", c.X, c.Y)
					},
				},
				{
					ID: "type", Label: "Type", Widget: WidgetText,
					TextGetter: func(d any) string { return inspected(d).Cell.Type.String() },
				},
				{
					ID: "size", Label: "Size", Widget: WidgetBar,
					Getter: func(d any) float32 { return inspected(d).Cell.Size },
				},
				{
					ID: "stack", Label: "Stack index", Widget: WidgetText, Format: "%.1f",
					Getter: func(d any) float32 { return inspected(d).Cell.StackIndex },
				},
				{
					ID: "decay", Label: "Decay timer", Widget: WidgetText, Format: "%.2f",
					Visible: isType(systems.SporeEvilDead),
					Getter:  func(d any) float32 { return inspected(d).Cell.DecayTimer },
				},
				{
					ID: "grow_timer", Label: "Grow timer", Widget: WidgetText, Format: "%.2f",
					Visible: isType(systems.SporeGoodPortal, systems.SporeEvilPortal),
					Getter:  func(d any) float32 { return inspected(d).Cell.PortalGrowTimer },
				},
				{
					ID: "owner", Label: "Owner", Widget: WidgetText,
					Visible: isType(systems.SporeGood, systems.SporeEvil),
					TextGetter: func(d any) string {
						data := inspected(d)
						owner := data.Field.Owner(data.Cell)
						if owner == nil {
							return "none"
						}
						return fmt.Sprintf("%s (%d, %d)", owner.Type, owner.X, owner.Y)
					},
				},
			},
		},
		{
			ID:      "neighbours",
			Title:   "Grown neighbours",
			Visible: func(d any) bool { return inspected(d).Cell.Type != systems.SporeDeadzone },
			Fields: []FieldDescriptor{
				{
					ID: "good_neighbours", Label: "Good", Widget: WidgetText, Format: "%.0f",
					Getter: func(d any) float32 {
						data := inspected(d)
						return float32(data.Field.CountNeighboursOfType(data.Cell, systems.SporeGood))
					},
				},
				{
					ID: "evil_neighbours", Label: "Evil", Widget: WidgetText, Format: "%.0f",
					Getter: func(d any) float32 {
						data := inspected(d)
						return float32(data.Field.CountNeighboursOfType(data.Cell, systems.SporeEvil))
					},
				},
				{
					ID: "portal_distance", Label: "To good portal", Widget: WidgetText,
					TextGetter: func(d any) string {
						data := inspected(d)
						return formatDistance(data.Field.DistanceToNearestOfType(data.Cell.X, data.Cell.Y, systems.SporeGoodPortal))
					},
				},
				{
					ID: "evil_portal_distance", Label: "To evil portal", Widget: WidgetText,
					TextGetter: func(d any) string {
						data := inspected(d)
						return formatDistance(data.Field.DistanceToNearestOfType(data.Cell.X, data.Cell.Y, systems.SporeEvilPortal))
					},
				},
			},
		},
	}
}

func formatDistance(d float64) string {
	if d > 1e9 {
		return "none"
	}
	return fmt.Sprintf("%.1f", d)
}

// Draw renders the inspector panel for the given data. Nothing is drawn
// without a cell.
func (ins *Inspector) Draw(data InspectorData) int32 {
	if data.Cell == nil {
		return ins.y
	}
	r := ins.renderer
	padding := r.Theme.Padding

	height := padding * 2
	for _, sd := range ins.sections {
		height += r.SectionHeight(sd, data)
	}
	r.DrawPanel(ins.x, ins.y, ins.width, height)

	y := ins.y + padding
	for _, sd := range ins.sections {
		y = r.DrawSection(ins.x+padding, y, sd, data, ins.width-padding*2)
	}
	return y
}
