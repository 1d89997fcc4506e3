package response

import (
	"time"

	"github.com/jerrk000/teamify/internal/model"
	"github.com/jerrk000/teamify/internal/services/grid"
)

// Player represents a player in API responses
type Player struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	AvatarRef string `json:"avatar_ref,omitempty"`
}

// PlayerFromModel converts a model.Player
func PlayerFromModel(p model.Player) Player {
	return Player{ID: string(p.ID), Name: p.Name, AvatarRef: p.AvatarRef}
}

// PlayersFromModel converts a player list, never returning nil
func PlayersFromModel(players []model.Player) []Player {
	out := make([]Player, len(players))
	for i, p := range players {
		out[i] = PlayerFromModel(p)
	}
	return out
}

// Roster represents a roster
type Roster struct {
	Code      string    `json:"code"`
	Players   []Player  `json:"players"`
	Revision  uint64    `json:"revision"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// RosterFromModel converts a model.Roster
func RosterFromModel(r *model.Roster) Roster {
	return Roster{
		Code:      string(r.Code),
		Players:   PlayersFromModel(r.Players),
		Revision:  r.Revision,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

// Card is one positioned player card
type Card struct {
	PlayerID string     `json:"player_id"`
	Team     string     `json:"team"`
	Index    int        `json:"index"`
	Rect     model.Rect `json:"rect"`
	Border   string     `json:"border"`
}

// Zone is a join zone in the rail
type Zone struct {
	Team string     `json:"team"`
	Rect model.Rect `json:"rect"`
}

// Teams is the current partition, with geometry when a container size was given
type Teams struct {
	Code     string   `json:"code"`
	Revision uint64   `json:"revision"`
	TeamA    []Player `json:"team_a"`
	TeamB    []Player `json:"team_b"`
	Cards    []Card   `json:"cards,omitempty"`
	Zones    []Zone   `json:"zones,omitempty"`
}

// TeamsFromModel converts a partition
func TeamsFromModel(code model.RosterCode, revision uint64, p model.Partition) Teams {
	return Teams{
		Code:     string(code),
		Revision: revision,
		TeamA:    PlayersFromModel(p.TeamA),
		TeamB:    PlayersFromModel(p.TeamB),
	}
}

// WithGeometry attaches card and zone rectangles
func (t Teams) WithGeometry(cards []grid.CardView, zones []model.TargetRect) Teams {
	t.Cards = make([]Card, len(cards))
	for i, c := range cards {
		t.Cards[i] = Card{
			PlayerID: string(c.Player.ID),
			Team:     string(c.Team),
			Index:    c.Index,
			Rect:     c.Rect,
			Border:   c.BorderID,
		}
	}
	t.Zones = make([]Zone, len(zones))
	for i, z := range zones {
		t.Zones[i] = Zone{Team: string(z.Target.Team), Rect: z.Rect}
	}
	return t
}

// TeamsChange is returned by operations that may leave the teams unchanged
type TeamsChange struct {
	Changed bool   `json:"changed"`
	Outcome string `json:"outcome,omitempty"`
	Teams   Teams  `json:"teams"`
}

// MatchResult represents a recorded match
type MatchResult struct {
	Winner     string    `json:"winner"`
	TeamA      []string  `json:"team_a"`
	TeamB      []string  `json:"team_b"`
	RecordedAt time.Time `json:"recorded_at"`
}

// MatchResultFromModel converts a model.MatchResult
func MatchResultFromModel(r model.MatchResult) MatchResult {
	return MatchResult{
		Winner:     string(r.Winner),
		TeamA:      idStrings(r.TeamA),
		TeamB:      idStrings(r.TeamB),
		RecordedAt: r.RecordedAt,
	}
}

// MatchResultsFromModel converts a result list, never returning nil
func MatchResultsFromModel(results []model.MatchResult) []MatchResult {
	out := make([]MatchResult, len(results))
	for i, r := range results {
		out[i] = MatchResultFromModel(r)
	}
	return out
}

// PlayerTally represents one player's record across recorded games
type PlayerTally struct {
	PlayerID string `json:"player_id"`
	Played   int    `json:"played"`
	Won      int    `json:"won"`
	Lost     int    `json:"lost"`
}

// TallyFromModel converts a tally, never returning nil
func TallyFromModel(tally []model.PlayerTally) []PlayerTally {
	out := make([]PlayerTally, len(tally))
	for i, t := range tally {
		out[i] = PlayerTally{PlayerID: string(t.PlayerID), Played: t.Played, Won: t.Won, Lost: t.Lost}
	}
	return out
}

func idStrings(ids []model.PlayerID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = string(id)
	}
	return out
}
