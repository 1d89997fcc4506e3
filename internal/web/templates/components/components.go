package components

import (
	"fmt"
	"net/url"
	"slices"
	"strings"

	"github.com/a-h/templ"

	"github.com/jerrk000/teamify/internal/model"
	"github.com/jerrk000/teamify/internal/services/grid"
)

// GridData is everything needed to paint a team grid
type GridData struct {
	Code     model.RosterCode
	Width    float64
	Height   float64
	Revision uint64
	Cards    []grid.CardView
	Zones    []model.TargetRect
}

func gridURL(data GridData) string {
	q := url.Values{}
	q.Set("width", px(data.Width))
	q.Set("height", px(data.Height))
	return "/rosters/" + url.PathEscape(string(data.Code)) + "/grid?" + q.Encode()
}

func containerAttrs(width, height float64) templ.Attributes {
	return templ.Attributes{
		"style": fmt.Sprintf("position:relative;width:%spx;height:%spx", px(width), px(height)),
	}
}

func rectAttrs(r model.Rect) templ.Attributes {
	return templ.Attributes{
		"style": fmt.Sprintf("position:absolute;left:%spx;top:%spx;width:%spx;height:%spx",
			px(r.X), px(r.Y), px(r.Width), px(r.Height)),
	}
}

// px formats a coordinate without trailing zeros
func px(v float64) string {
	return fmt.Sprintf("%g", v)
}

func playerNames(players []model.Player) map[model.PlayerID]string {
	names := make(map[model.PlayerID]string, len(players))
	for _, p := range players {
		names[p.ID] = p.Name
	}
	return names
}

func playerName(id model.PlayerID, names map[model.PlayerID]string) string {
	if name, ok := names[id]; ok {
		return name
	}
	return "(gone)"
}

func joinNames(ids []model.PlayerID, names map[model.PlayerID]string) string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = playerName(id, names)
	}
	return strings.Join(out, ", ")
}

func newestFirst(results []model.MatchResult) []model.MatchResult {
	out := slices.Clone(results)
	slices.Reverse(out)
	return out
}

func teamLabel(team model.TeamID) string {
	if team == model.TeamA {
		return "Team A"
	}
	return "Team B"
}
