package teams

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/jerrk000/teamify/internal/dependencies/random"
	"github.com/jerrk000/teamify/internal/model"
)

// PlayerStore is the flat, ordered player list the engine derives teams from
type PlayerStore interface {
	// Items returns the players and the revision they were read at
	Items(ctx context.Context) ([]model.Player, uint64, error)
	// SetItems overwrites the players, tagging the write with origin, and returns
	// the new revision. The write must fail with model.ErrStaleRevision unless the
	// stored revision is still expected. Subscribers are notified once per write.
	SetItems(ctx context.Context, players []model.Player, origin string, expected uint64) (uint64, error)
	// Subscribe registers fn for every write and returns a function to unregister
	Subscribe(fn func(model.RosterChange)) func()
}

// Outcome describes what a drop did
type Outcome string

const (
	OutcomeNone Outcome = "none"
	OutcomeSwap Outcome = "swap"
	OutcomeMove Outcome = "move"
)

// Engine owns the two-team partition of a player store.
//
// Every change is written back to the store tagged with the engine's origin token.
// Notifications carrying that token are the engine's own echo and are dropped.
// Notifications at or below the last revision the engine has seen are stale.
// Anything else means the roster was replaced and the teams are re-seeded.
type Engine struct {
	store  PlayerStore
	random random.Random
	logger *slog.Logger
	origin string

	// writeMu serialises this engine's own read-change-write cycles
	writeMu sync.Mutex

	mu          sync.RWMutex
	partition   model.Partition
	revision    uint64
	closed      bool
	unsubscribe func()
}

// NewEngine mounts an engine on a store and seeds the teams with a 50/50 split
func NewEngine(ctx context.Context, store PlayerStore, random random.Random, logger *slog.Logger) (*Engine, error) {
	e := &Engine{
		store:  store,
		random: random,
		logger: logger,
		origin: uuid.NewString(),
	}

	// Subscribe before the first read so no write can slip between them
	e.unsubscribe = store.Subscribe(e.onChange)

	players, revision, err := store.Items(ctx)
	if err != nil {
		e.unsubscribe()
		return nil, err
	}

	e.mu.Lock()
	if revision >= e.revision {
		e.revision = revision
		e.partition = model.SplitIntoTeams(players)
	}
	e.mu.Unlock()

	return e, nil
}

// Origin returns the token the engine tags its writes with
func (e *Engine) Origin() string {
	return e.origin
}

// Partition returns a copy of the current teams
func (e *Engine) Partition() model.Partition {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.partition.Clone()
}

// Revision returns the store revision the current teams correspond to
func (e *Engine) Revision() uint64 {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.revision
}

// Close detaches the engine from its store. Later operations fail with
// model.ErrSessionClosed.
func (e *Engine) Close() {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return
	}
	e.closed = true
	unsubscribe := e.unsubscribe
	e.mu.Unlock()

	unsubscribe()
}

// SwapAcrossTeams exchanges the players at two pointers, in the same team or
// across teams. Equal or out-of-range pointers leave the teams untouched and
// report false.
func (e *Engine) SwapAcrossTeams(ctx context.Context, from, to model.PlayerPointer) (bool, error) {
	return e.apply(ctx, "swap", func(p model.Partition) (model.Partition, bool) {
		return Swap(p, from, to)
	})
}

// MoveIntoTeam removes the player at from and appends it to toTeam. A pointer
// that is out of range or already in toTeam reports false.
func (e *Engine) MoveIntoTeam(ctx context.Context, from model.PlayerPointer, toTeam model.TeamID) (bool, error) {
	return e.apply(ctx, "move", func(p model.Partition) (model.Partition, bool) {
		return Move(p, from, toTeam)
	})
}

// Randomize shuffles every player and splits them 50/50 again
func (e *Engine) Randomize(ctx context.Context) error {
	_, err := e.apply(ctx, "randomize", func(p model.Partition) (model.Partition, bool) {
		if p.Len() == 0 {
			return p, false
		}
		return Shuffle(p, e.random), true
	})
	return err
}

// Drop commits a resolved drop target for the card at from. Dropping on the
// card's own slot or on its own team's zone does nothing.
func (e *Engine) Drop(ctx context.Context, from model.PlayerPointer, target model.DropTarget) (Outcome, error) {
	outcome := OutcomeNone
	_, err := e.apply(ctx, "drop", func(p model.Partition) (model.Partition, bool) {
		var next model.Partition
		next, outcome = ApplyDrop(p, from, target)
		return next, outcome != OutcomeNone
	})
	if err != nil {
		return OutcomeNone, err
	}
	return outcome, nil
}

// ResolveFunc picks a drop target for the player at from in p
type ResolveFunc func(p model.Partition, from model.PlayerPointer) (model.DropTarget, bool)

// DropPlayer locates a player in the current teams, resolves its target and
// commits the drop as one step, so the pointer can never go stale in between.
// A player that is no longer on the roster does nothing.
func (e *Engine) DropPlayer(ctx context.Context, id model.PlayerID, resolve ResolveFunc) (Outcome, error) {
	outcome := OutcomeNone
	_, err := e.apply(ctx, "drop", func(p model.Partition) (model.Partition, bool) {
		from, ok := p.PointerOf(id)
		if !ok {
			return p, false
		}
		target, ok := resolve(p, from)
		if !ok {
			return p, false
		}
		var next model.Partition
		next, outcome = ApplyDrop(p, from, target)
		return next, outcome != OutcomeNone
	})
	if err != nil {
		return OutcomeNone, err
	}
	return outcome, nil
}

// apply runs op against the current teams and writes the result through to the
// store. The in-memory teams only change once the store accepted the write.
//
// The write is guarded by the revision the teams were derived from. If the roster
// changed underneath, the change wins: the teams are re-seeded from the store and
// op is reported as a no-op.
func (e *Engine) apply(ctx context.Context, name string, op func(model.Partition) (model.Partition, bool)) (bool, error) {
	e.writeMu.Lock()
	defer e.writeMu.Unlock()

	e.mu.RLock()
	closed := e.closed
	current := e.partition.Clone()
	expected := e.revision
	e.mu.RUnlock()

	if closed {
		return false, model.ErrSessionClosed
	}

	next, changed := op(current)
	if !changed {
		return false, nil
	}

	// The store lock is not held here, and our own echo never takes e.mu
	revision, err := e.store.SetItems(ctx, next.Flatten(), e.origin, expected)
	if errors.Is(err, model.ErrStaleRevision) {
		e.logger.Info("roster changed during update, dropping it",
			slog.String("op", name),
			slog.Uint64("expected", expected),
		)
		return false, e.resync(ctx)
	}
	if err != nil {
		e.logger.Error("failed to write teams",
			slog.String("op", name),
			slog.String("error", err.Error()),
		)
		return false, err
	}

	e.mu.Lock()
	if revision > e.revision {
		e.revision = revision
		e.partition = next
	}
	e.mu.Unlock()

	e.logger.Debug("teams updated",
		slog.String("op", name),
		slog.Int("team_a", len(next.TeamA)),
		slog.Int("team_b", len(next.TeamB)),
		slog.Uint64("revision", revision),
	)
	return true, nil
}

// resync re-seeds the teams from the store when it is ahead of the engine
func (e *Engine) resync(ctx context.Context) error {
	players, revision, err := e.store.Items(ctx)
	if err != nil {
		return err
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if revision > e.revision {
		e.revision = revision
		e.partition = model.SplitIntoTeams(players)
	}
	return nil
}

func (e *Engine) onChange(change model.RosterChange) {
	if change.Origin == e.origin {
		return
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed || change.Revision <= e.revision {
		return
	}
	e.revision = change.Revision
	e.partition = model.SplitIntoTeams(change.Players)

	e.logger.Info("roster changed, teams re-seeded",
		slog.String("roster_code", string(change.Code)),
		slog.String("origin", change.Origin),
		slog.Uint64("revision", change.Revision),
		slog.Int("player_count", len(change.Players)),
	)
}
