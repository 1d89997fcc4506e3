package model

import "time"

// EventType identifies the type of event
type EventType string

const (
	EventRosterUpdated  EventType = "roster-update"
	EventRosterDeleted  EventType = "roster-deleted"
	EventResultRecorded EventType = "result-recorded"
)

// Event is pushed to live viewers of a roster
type Event struct {
	Type       EventType  `json:"type"`
	Timestamp  time.Time  `json:"timestamp"`
	RosterCode RosterCode `json:"roster_code"`
	Payload    any        `json:"payload,omitempty"` // type-specific data
}

// RosterUpdatedPayload contains data for roster updated events
type RosterUpdatedPayload struct {
	Revision uint64     `json:"revision"`
	Origin   string     `json:"origin"`
	Players  []PlayerID `json:"players"`
}

// ResultRecordedPayload contains data for result recorded events
type ResultRecordedPayload struct {
	Winner TeamID `json:"winner"`
}
