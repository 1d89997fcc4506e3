package model

import (
	"fmt"
	"time"
)

// PositionKind tells the layout calculator how to read a SlotPosition
type PositionKind string

const (
	// PositionNormalized places the card at X/Y fractions of the usable team area,
	// 0 aligning to the near edge and 1 to the far edge
	PositionNormalized PositionKind = "normalized"
	// PositionGridUnits treats X/Y as column/row. Each axis is divided by its own
	// value, so any non-zero unit lands on the far edge.
	PositionGridUnits PositionKind = "grid_units"
	// PositionInferred picks normalized when both components are <= 1 and grid units
	// otherwise
	PositionInferred PositionKind = "inferred"
)

// SlotPosition describes where a slot sits inside its team area
type SlotPosition struct {
	Kind PositionKind `json:"kind"`
	X    float64      `json:"x"`
	Y    float64      `json:"y"`
}

// Normalized creates a normalized slot position
func Normalized(x, y float64) SlotPosition {
	return SlotPosition{Kind: PositionNormalized, X: x, Y: y}
}

// GridUnits creates a grid-unit slot position
func GridUnits(col, row float64) SlotPosition {
	return SlotPosition{Kind: PositionGridUnits, X: col, Y: row}
}

// Inferred creates a slot position whose interpretation is decided by magnitude
func Inferred(x, y float64) SlotPosition {
	return SlotPosition{Kind: PositionInferred, X: x, Y: y}
}

// Resolve returns the concrete kind after applying the magnitude rule to
// inferred positions
func (p SlotPosition) Resolve() PositionKind {
	switch p.Kind {
	case PositionNormalized, PositionGridUnits:
		return p.Kind
	default:
		if p.X <= 1 && p.Y <= 1 {
			return PositionNormalized
		}
		return PositionGridUnits
	}
}

// Default2x2Layout is used for the first four slots when no layout is given
var Default2x2Layout = []SlotPosition{
	Normalized(0, 0),
	Normalized(1, 0),
	Normalized(0, 1),
	Normalized(1, 1),
}

// Diamond4Layout arranges four slots top, right, bottom, left
var Diamond4Layout = []SlotPosition{
	Normalized(0.5, 0),
	Normalized(1, 0.5),
	Normalized(0.5, 1),
	Normalized(0, 0.5),
}

// Layout names accepted by NamedLayout
const (
	LayoutColumns = "columns" // no explicit layout: 2x2 for the first four, then columns
	LayoutGrid2x2 = "2x2"
	LayoutDiamond = "diamond"
)

// NamedLayout returns a predefined layout by name. The empty name and
// LayoutColumns both mean no explicit layout.
func NamedLayout(name string) ([]SlotPosition, error) {
	switch name {
	case "", LayoutColumns:
		return nil, nil
	case LayoutGrid2x2:
		return Default2x2Layout, nil
	case LayoutDiamond:
		return Diamond4Layout, nil
	default:
		return nil, fmt.Errorf("unknown layout %q", name)
	}
}

// GridConfig holds everything the team grid needs from its caller
type GridConfig struct {
	Columns         int            `json:"columns"`  // fallback column count
	LayoutA         []SlotPosition `json:"layout_a"` // nil uses the 2x2 default then columns
	LayoutB         []SlotPosition `json:"layout_b"`
	CardHeight      float64        `json:"card_height"`
	MinCardWidth    float64        `json:"min_card_width"`
	CardWidthShrink float64        `json:"card_width_shrink"`
	Gap             float64        `json:"gap"`
	RailRatio       float64        `json:"rail_ratio"` // share of container width used by the join rail
	ZoneGap         float64        `json:"zone_gap"`
	TeamABorder     string         `json:"team_a_border"`
	TeamBBorder     string         `json:"team_b_border"`

	DragThreshold  float64       `json:"drag_threshold"`
	ReturnDuration time.Duration `json:"return_duration"`
}

// DefaultGridConfig returns the stock grid configuration
func DefaultGridConfig() GridConfig {
	return GridConfig{
		Columns:         2,
		CardHeight:      92,
		MinCardWidth:    72,
		CardWidthShrink: 16,
		Gap:             12,
		RailRatio:       0.2,
		ZoneGap:         10,
		TeamABorder:     "team-a",
		TeamBBorder:     "team-b",
		DragThreshold:   4,
		ReturnDuration:  250 * time.Millisecond,
	}
}

// Layout returns the explicit layout configured for a team
func (c GridConfig) Layout(team TeamID) []SlotPosition {
	if team == TeamA {
		return c.LayoutA
	}
	return c.LayoutB
}

// BorderID returns the visual border identifier configured for a team
func (c GridConfig) BorderID(team TeamID) string {
	if team == TeamA {
		return c.TeamABorder
	}
	return c.TeamBBorder
}
