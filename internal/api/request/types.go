package request

import "github.com/jerrk000/teamify/internal/model"

// Player is a roster entry in request bodies. ID may be omitted.
type Player struct {
	ID        string `json:"id,omitempty"`
	Name      string `json:"name"`
	AvatarRef string `json:"avatar_ref,omitempty"`
}

// RosterRequest is the body for creating or replacing a roster
type RosterRequest struct {
	Players []Player `json:"players"`
}

// ModelPlayers converts the request players
func (r RosterRequest) ModelPlayers() []model.Player {
	out := make([]model.Player, len(r.Players))
	for i, p := range r.Players {
		out[i] = model.Player{ID: model.PlayerID(p.ID), Name: p.Name, AvatarRef: p.AvatarRef}
	}
	return out
}

// Pointer addresses a slot
type Pointer struct {
	Team  string `json:"team"`
	Index int    `json:"index"`
}

// Model converts the pointer
func (p Pointer) Model() model.PlayerPointer {
	return model.PlayerPointer{Team: model.TeamID(p.Team), Index: p.Index}
}

// SwapRequest is the body for swapping two slots
type SwapRequest struct {
	From Pointer `json:"from"`
	To   Pointer `json:"to"`
}

// MoveRequest is the body for moving a player into a team
type MoveRequest struct {
	From   Pointer `json:"from"`
	ToTeam string  `json:"to_team"`
}

// DropRequest replays a complete drag of one card. DX/DY is the total
// displacement and Width/Height the container the drag happened in.
type DropRequest struct {
	PlayerID string  `json:"player_id"`
	DX       float64 `json:"dx"`
	DY       float64 `json:"dy"`
	Width    float64 `json:"width"`
	Height   float64 `json:"height"`
}

// RecordResultRequest is the body for recording a match winner
type RecordResultRequest struct {
	Winner string `json:"winner"`
}
