package results

import (
	"cmp"
	"context"
	"log/slog"
	"slices"

	"github.com/jerrk000/teamify/internal/dependencies/clock"
	"github.com/jerrk000/teamify/internal/model"
	"github.com/jerrk000/teamify/internal/storage"
)

// Service records which team won a game
type Service struct {
	storage storage.Storage
	clock   clock.Clock
	logger  *slog.Logger
}

// New creates a new results Service
func New(storage storage.Storage, clock clock.Clock, logger *slog.Logger) *Service {
	return &Service{
		storage: storage,
		clock:   clock,
		logger:  logger,
	}
}

// Record stores the outcome of a game played with the given teams
func (s *Service) Record(ctx context.Context, code model.RosterCode, teams model.Partition, winner model.TeamID) (*model.MatchResult, error) {
	if !winner.Valid() {
		return nil, model.ErrInvalidTeam
	}

	result := &model.MatchResult{
		Winner:     winner,
		TeamA:      model.PlayerIDs(teams.TeamA),
		TeamB:      model.PlayerIDs(teams.TeamB),
		RecordedAt: s.clock.Now(),
	}

	if err := s.storage.AppendMatchResult(ctx, code, result); err != nil {
		return nil, err
	}

	s.logger.Info("match result recorded",
		slog.String("roster_code", string(code)),
		slog.String("winner", string(winner)),
	)
	return result, nil
}

// History lists a roster's results, oldest first
func (s *Service) History(ctx context.Context, code model.RosterCode) ([]model.MatchResult, error) {
	return s.storage.GetMatchResults(ctx, code)
}

// Tally counts games played, won and lost per player across the roster's
// history. Players who have since left the roster are still counted.
// Most wins come first; ties go to fewer losses, then player ID.
func (s *Service) Tally(ctx context.Context, code model.RosterCode) ([]model.PlayerTally, error) {
	history, err := s.storage.GetMatchResults(ctx, code)
	if err != nil {
		return nil, err
	}

	byPlayer := make(map[model.PlayerID]*model.PlayerTally)
	count := func(ids []model.PlayerID, won bool) {
		for _, id := range ids {
			t, ok := byPlayer[id]
			if !ok {
				t = &model.PlayerTally{PlayerID: id}
				byPlayer[id] = t
			}
			t.Played++
			if won {
				t.Won++
			} else {
				t.Lost++
			}
		}
	}
	for _, r := range history {
		count(r.TeamA, r.Winner == model.TeamA)
		count(r.TeamB, r.Winner == model.TeamB)
	}

	tally := make([]model.PlayerTally, 0, len(byPlayer))
	for _, t := range byPlayer {
		tally = append(tally, *t)
	}
	slices.SortFunc(tally, func(a, b model.PlayerTally) int {
		if c := cmp.Compare(b.Won, a.Won); c != 0 {
			return c
		}
		if c := cmp.Compare(a.Lost, b.Lost); c != 0 {
			return c
		}
		return cmp.Compare(a.PlayerID, b.PlayerID)
	})
	return tally, nil
}
