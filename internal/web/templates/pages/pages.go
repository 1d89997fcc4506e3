package pages

import (
	"net/url"

	"github.com/jerrk000/teamify/internal/model"
	"github.com/jerrk000/teamify/internal/web/templates/components"
	"github.com/jerrk000/teamify/internal/web/templates/layout"
)

// HomeData is the data for the home page
type HomeData struct {
	layout.PageData
	Names string // echoed back into the textarea after a failed submit
}

// RosterData is the data for a roster's team page
type RosterData struct {
	layout.PageData
	Grid    components.GridData
	Players []model.Player
	Results []model.MatchResult
	Tally   []model.PlayerTally
}

// ErrorData is the data for an error page
type ErrorData struct {
	layout.PageData
	Status  int
	Message string
}

func rosterPath(code model.RosterCode, action string) string {
	return "/rosters/" + url.PathEscape(string(code)) + "/" + action
}
