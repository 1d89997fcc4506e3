package storage

import (
	"context"

	"github.com/jerrk000/teamify/internal/model"
)

// Storage defines the interface for data persistence
type Storage interface {
	// Roster operations
	SaveRoster(ctx context.Context, roster *model.Roster) error
	GetRoster(ctx context.Context, code model.RosterCode) (*model.Roster, error)
	DeleteRoster(ctx context.Context, code model.RosterCode) error
	RosterExists(ctx context.Context, code model.RosterCode) (bool, error)

	// Match result operations
	AppendMatchResult(ctx context.Context, code model.RosterCode, result *model.MatchResult) error
	GetMatchResults(ctx context.Context, code model.RosterCode) ([]model.MatchResult, error)
}
