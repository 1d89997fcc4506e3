package layout

import (
	"math"

	"github.com/jerrk000/teamify/internal/model"
)

// SlotParams holds the inputs for placing one card inside a team area
type SlotParams struct {
	Index      int
	Count      int
	TeamRect   model.Rect
	CardWidth  float64
	CardHeight float64
	Gap        float64
	// Layout is the caller's explicit slot list. nil selects the 2x2 default for the
	// first four slots.
	Layout  []model.SlotPosition
	Columns int
}

// SlotRect computes the home rectangle of the card at params.Index.
// The result always lies inside params.TeamRect as long as the card fits.
func SlotRect(params SlotParams) model.Rect {
	pos := slotPosition(params.Index, params.Layout, params.Columns)
	fx, fy := fractions(pos)

	freeW := params.TeamRect.Width - params.CardWidth
	freeH := params.TeamRect.Height - params.CardHeight

	x := snap(fx*freeW, params.Gap)
	y := snap(fy*freeH, params.Gap)

	return model.Rect{
		X:      params.TeamRect.X + model.Clamp(x, 0, max(0, freeW)),
		Y:      params.TeamRect.Y + model.Clamp(y, 0, max(0, freeH)),
		Width:  params.CardWidth,
		Height: params.CardHeight,
	}
}

// slotPosition picks the descriptor for an index. An explicit layout that is too
// short falls through to the column grid, never to the 2x2 default.
func slotPosition(index int, layout []model.SlotPosition, columns int) model.SlotPosition {
	if index >= 0 && index < len(layout) {
		return layout[index]
	}
	if layout == nil && index >= 0 && index < len(model.Default2x2Layout) {
		return model.Default2x2Layout[index]
	}
	if columns < 1 {
		columns = 1
	}
	return model.GridUnits(float64(index%columns), float64(index/columns))
}

// fractions maps a descriptor to the share of the free extent on each axis
func fractions(pos model.SlotPosition) (float64, float64) {
	if pos.Resolve() == model.PositionNormalized {
		return pos.X, pos.Y
	}
	return gridFraction(pos.X), gridFraction(pos.Y)
}

// gridFraction divides a grid unit by its own magnitude: 0 stays at the near edge,
// anything from 1 upward lands on the far edge
func gridFraction(v float64) float64 {
	return v / math.Max(1, v)
}

func snap(v, gap float64) float64 {
	if gap <= 0 {
		return v
	}
	return math.Round(v/gap) * gap
}
