package memory

import (
	"context"
	"sync"

	"github.com/jerrk000/teamify/internal/model"
	"github.com/jerrk000/teamify/internal/storage"
)

// Storage is an in-memory implementation of the storage interface.
// Values are copied on the way in and out so callers never share slices with the store.
type Storage struct {
	mu sync.RWMutex

	rosters map[model.RosterCode]*model.Roster
	results map[model.RosterCode][]model.MatchResult
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		rosters: make(map[model.RosterCode]*model.Roster),
		results: make(map[model.RosterCode][]model.MatchResult),
	}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Roster operations

func (s *Storage) SaveRoster(ctx context.Context, roster *model.Roster) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rosters[roster.Code] = copyRoster(roster)
	return nil
}

func (s *Storage) GetRoster(ctx context.Context, code model.RosterCode) (*model.Roster, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	roster, ok := s.rosters[code]
	if !ok {
		return nil, model.ErrRosterNotFound
	}
	return copyRoster(roster), nil
}

func (s *Storage) DeleteRoster(ctx context.Context, code model.RosterCode) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.rosters, code)
	delete(s.results, code)
	return nil
}

func (s *Storage) RosterExists(ctx context.Context, code model.RosterCode) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.rosters[code]
	return ok, nil
}

// Match result operations

func (s *Storage) AppendMatchResult(ctx context.Context, code model.RosterCode, result *model.MatchResult) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.rosters[code]; !ok {
		return model.ErrRosterNotFound
	}
	s.results[code] = append(s.results[code], copyResult(*result))
	return nil
}

func (s *Storage) GetMatchResults(ctx context.Context, code model.RosterCode) ([]model.MatchResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if _, ok := s.rosters[code]; !ok {
		return nil, model.ErrRosterNotFound
	}
	results := make([]model.MatchResult, len(s.results[code]))
	for i, r := range s.results[code] {
		results[i] = copyResult(r)
	}
	return results, nil
}

func copyRoster(r *model.Roster) *model.Roster {
	c := *r
	c.Players = make([]model.Player, len(r.Players))
	copy(c.Players, r.Players)
	return &c
}

func copyResult(r model.MatchResult) model.MatchResult {
	c := r
	c.TeamA = append([]model.PlayerID(nil), r.TeamA...)
	c.TeamB = append([]model.PlayerID(nil), r.TeamB...)
	return c
}
