package sse

import (
	"encoding/json"
	"log/slog"

	"github.com/jerrk000/teamify/internal/dependencies/clock"
	"github.com/jerrk000/teamify/internal/model"
)

// Broadcaster turns roster and result changes into events for live viewers.
// Viewers refetch what they need, so events carry ids rather than markup.
type Broadcaster struct {
	hubManager *HubManager
	clock      clock.Clock
	logger     *slog.Logger
}

// NewBroadcaster creates a new Broadcaster
func NewBroadcaster(hubManager *HubManager, clock clock.Clock, logger *slog.Logger) *Broadcaster {
	return &Broadcaster{
		hubManager: hubManager,
		clock:      clock,
		logger:     logger.With(slog.String("component", "sse-broadcaster")),
	}
}

// RosterChanged is a roster listener. Deletions close the roster's hub after
// telling viewers.
func (b *Broadcaster) RosterChanged(change model.RosterChange) {
	if change.Deleted {
		b.send(change.Code, model.EventRosterDeleted, nil)
		b.hubManager.RemoveHub(change.Code)
		return
	}
	b.send(change.Code, model.EventRosterUpdated, model.RosterUpdatedPayload{
		Revision: change.Revision,
		Origin:   change.Origin,
		Players:  model.PlayerIDs(change.Players),
	})
}

// ResultRecorded announces a new match result
func (b *Broadcaster) ResultRecorded(code model.RosterCode, result *model.MatchResult) {
	b.send(code, model.EventResultRecorded, model.ResultRecordedPayload{Winner: result.Winner})
}

func (b *Broadcaster) send(code model.RosterCode, eventType model.EventType, payload any) {
	hub := b.hubManager.GetHub(code)
	if hub == nil {
		return
	}

	data, err := json.Marshal(model.Event{
		Type:       eventType,
		Timestamp:  b.clock.Now(),
		RosterCode: code,
		Payload:    payload,
	})
	if err != nil {
		b.logger.Error("sse failed to encode event",
			slog.String("roster_code", string(code)),
			slog.String("event", string(eventType)),
			slog.Any("error", err))
		return
	}
	hub.BroadcastEvent(string(eventType), string(data))
}
