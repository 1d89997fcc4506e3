package layout

import (
	"github.com/jerrk000/teamify/internal/model"
)

// GridLayout is the geometry of the whole team grid for one container size
type GridLayout struct {
	Width      float64
	Height     float64
	CardWidth  float64
	CardHeight float64

	TeamARect model.Rect
	TeamBRect model.Rect
	RailRect  model.Rect
	ZoneARect model.Rect
	ZoneBRect model.Rect

	SlotsA []model.Rect
	SlotsB []model.Rect
}

// Compute lays out both teams on the left and the join rail on the right.
// countA and countB are the current team sizes.
func Compute(width, height float64, countA, countB int, cfg model.GridConfig) (GridLayout, error) {
	if !(width > 0) || !(height > 0) || !model.Finite(width, height) {
		return GridLayout{}, model.ErrInvalidContainer
	}

	columns := max(1, cfg.Columns)
	leftW := width * (1 - cfg.RailRatio)
	cardW := max(cfg.MinCardWidth, (leftW-cfg.Gap*float64(columns-1))/float64(columns)-cfg.CardWidthShrink)

	teamH := height/2 - cfg.Gap/2
	g := GridLayout{
		Width:      width,
		Height:     height,
		CardWidth:  cardW,
		CardHeight: cfg.CardHeight,
		TeamARect:  model.Rect{X: 0, Y: 0, Width: leftW, Height: teamH},
		TeamBRect:  model.Rect{X: 0, Y: teamH + cfg.Gap, Width: leftW, Height: teamH},
		RailRect:   model.Rect{X: leftW, Y: 0, Width: width - leftW, Height: height},
	}

	zoneH := (height - cfg.ZoneGap) / 2
	g.ZoneARect = model.Rect{X: g.RailRect.X, Y: 0, Width: g.RailRect.Width, Height: zoneH}
	g.ZoneBRect = model.Rect{X: g.RailRect.X, Y: zoneH + cfg.ZoneGap, Width: g.RailRect.Width, Height: zoneH}

	g.SlotsA = slots(countA, g.TeamARect, cardW, cfg, cfg.LayoutA)
	g.SlotsB = slots(countB, g.TeamBRect, cardW, cfg, cfg.LayoutB)
	return g, nil
}

func slots(count int, team model.Rect, cardW float64, cfg model.GridConfig, layout []model.SlotPosition) []model.Rect {
	rects := make([]model.Rect, count)
	for i := range rects {
		rects[i] = SlotRect(SlotParams{
			Index:      i,
			Count:      count,
			TeamRect:   team,
			CardWidth:  cardW,
			CardHeight: cfg.CardHeight,
			Gap:        cfg.Gap,
			Layout:     layout,
			Columns:    cfg.Columns,
		})
	}
	return rects
}

// Slots returns the slot rectangles of a team
func (g GridLayout) Slots(team model.TeamID) []model.Rect {
	if team == model.TeamA {
		return g.SlotsA
	}
	return g.SlotsB
}

// SlotAt returns the home rectangle for a pointer
func (g GridLayout) SlotAt(ptr model.PlayerPointer) (model.Rect, bool) {
	if !ptr.Team.Valid() {
		return model.Rect{}, false
	}
	slots := g.Slots(ptr.Team)
	if ptr.Index < 0 || ptr.Index >= len(slots) {
		return model.Rect{}, false
	}
	return slots[ptr.Index], true
}

// Zone returns the join zone rectangle of a team
func (g GridLayout) Zone(team model.TeamID) model.Rect {
	if team == model.TeamA {
		return g.ZoneARect
	}
	return g.ZoneBRect
}

// Targets lists every drop target: team A slots, team B slots, zone A, zone B.
// The order is the resolver's tie-break order.
func (g GridLayout) Targets() []model.TargetRect {
	targets := make([]model.TargetRect, 0, len(g.SlotsA)+len(g.SlotsB)+2)
	for _, team := range model.Teams() {
		for i, r := range g.Slots(team) {
			targets = append(targets, model.TargetRect{
				Target: model.SlotTarget(model.PlayerPointer{Team: team, Index: i}),
				Rect:   r,
			})
		}
	}
	for _, team := range model.Teams() {
		targets = append(targets, model.TargetRect{Target: model.ZoneTarget(team), Rect: g.Zone(team)})
	}
	return targets
}
