package resolver

import (
	"github.com/jerrk000/teamify/internal/model"
	"github.com/jerrk000/teamify/internal/services/layout"
)

// Resolve finds the target a card lands on when its home rectangle origin is
// dragged by (dx, dy).
//
// The target with the strictly largest positive overlap wins. When nothing
// overlaps, the target whose center is nearest to the dragged card's center wins.
// Earlier targets win ties in both rules. The result may be the card's own slot;
// callers decide whether that is a no-op. ok is false for an empty target list and
// for a drag or origin that is not made of real numbers.
func Resolve(origin model.Rect, dx, dy float64, targets []model.TargetRect) (target model.DropTarget, ok bool) {
	if len(targets) == 0 || !model.Finite(dx, dy) || !origin.Finite() {
		return model.DropTarget{}, false
	}

	dragged := origin.Translate(dx, dy)

	best := -1
	bestArea := 0.0
	for i, t := range targets {
		if area := model.IntersectionArea(dragged, t.Rect); area > bestArea {
			best = i
			bestArea = area
		}
	}
	if best >= 0 {
		return targets[best].Target, true
	}

	center := dragged.Center()
	best = 0
	bestDist := model.Dist2(center, targets[0].Rect.Center())
	for i := 1; i < len(targets); i++ {
		if d := model.Dist2(center, targets[i].Rect.Center()); d < bestDist {
			best = i
			bestDist = d
		}
	}
	return targets[best].Target, true
}

// ResolveFrom resolves a drag of the card at from against every target in g.
// A pointer with no slot in g resolves to nothing.
func ResolveFrom(g layout.GridLayout, from model.PlayerPointer, dx, dy float64) (model.DropTarget, bool) {
	origin, ok := g.SlotAt(from)
	if !ok {
		return model.DropTarget{}, false
	}
	return Resolve(origin, dx, dy, g.Targets())
}
