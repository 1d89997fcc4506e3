package model

import "time"

// RosterCode is a short human-readable identifier for a roster
type RosterCode string

// OriginExternal tags roster writes that did not come from a team engine
const OriginExternal = "external"

// Roster is the flat, ordered player list that team partitions are derived from
type Roster struct {
	Code    RosterCode `json:"code"`
	Players []Player   `json:"players"`

	// Revision increases by one on every write. Origin names the writer of the
	// current revision so subscribers can recognise their own updates.
	Revision uint64 `json:"revision"`
	Origin   string `json:"origin"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// RosterChange is delivered to subscribers after each roster write
type RosterChange struct {
	Code     RosterCode
	Players  []Player
	Revision uint64
	Origin   string
	Deleted  bool // only reported to SubscribeAll listeners
}

// MatchResult records which team won a game played with a given partition
type MatchResult struct {
	Winner     TeamID     `json:"winner"`
	TeamA      []PlayerID `json:"team_a"`
	TeamB      []PlayerID `json:"team_b"`
	RecordedAt time.Time  `json:"recorded_at"`
}

// PlayerTally counts the recorded games a player took part in
type PlayerTally struct {
	PlayerID PlayerID `json:"player_id"`
	Played   int      `json:"played"`
	Won      int      `json:"won"`
	Lost     int      `json:"lost"`
}
