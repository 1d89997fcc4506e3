package roster

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/jerrk000/teamify/internal/dependencies/clock"
	"github.com/jerrk000/teamify/internal/dependencies/random"
	"github.com/jerrk000/teamify/internal/model"
	"github.com/jerrk000/teamify/internal/storage"
)

const (
	// CodeLength is the length of generated roster codes
	CodeLength = 6
	// CodeAlphabet is the characters used in roster codes (avoid confusing chars)
	CodeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

	maxCodeAttempts = 16
)

// Listener receives roster changes
type Listener func(change model.RosterChange)

// Service is the player store: it owns roster persistence and fans out a change
// notification for every write
type Service struct {
	storage storage.Storage
	clock   clock.Clock
	random  random.Random
	logger  *slog.Logger

	// writeMu serialises read-modify-write of revisions
	writeMu sync.Mutex

	subMu     sync.RWMutex
	listeners map[model.RosterCode]map[int]Listener
	global    map[int]Listener
	nextSubID int
}

// New creates a new roster Service
func New(storage storage.Storage, clock clock.Clock, random random.Random, logger *slog.Logger) *Service {
	return &Service{
		storage:   storage,
		clock:     clock,
		random:    random,
		logger:    logger,
		listeners: make(map[model.RosterCode]map[int]Listener),
		global:    make(map[int]Listener),
	}
}

// Create stores a new roster under a fresh code. Players without an id get one.
func (s *Service) Create(ctx context.Context, players []model.Player) (*model.Roster, error) {
	players, err := normalize(players)
	if err != nil {
		return nil, err
	}

	code, err := s.freeCode(ctx)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	roster := &model.Roster{
		Code:      code,
		Players:   players,
		Revision:  1,
		Origin:    model.OriginExternal,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.storage.SaveRoster(ctx, roster); err != nil {
		s.logger.Error("failed to save roster",
			slog.String("roster_code", string(code)),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	s.logger.Info("roster created",
		slog.String("roster_code", string(code)),
		slog.Int("player_count", len(players)),
	)
	return roster, nil
}

func (s *Service) freeCode(ctx context.Context) (model.RosterCode, error) {
	for range maxCodeAttempts {
		code := model.RosterCode(s.random.String(CodeLength, CodeAlphabet))
		if code == "" {
			continue
		}
		exists, err := s.storage.RosterExists(ctx, code)
		if err != nil {
			return "", err
		}
		if !exists {
			return code, nil
		}
	}
	return "", model.ErrCodeExhausted
}

// Get retrieves a roster by code
func (s *Service) Get(ctx context.Context, code model.RosterCode) (*model.Roster, error) {
	return s.storage.GetRoster(ctx, code)
}

// Items returns the ordered player list and its current revision
func (s *Service) Items(ctx context.Context, code model.RosterCode) ([]model.Player, uint64, error) {
	roster, err := s.storage.GetRoster(ctx, code)
	if err != nil {
		return nil, 0, err
	}
	return roster.Players, roster.Revision, nil
}

// SetItems overwrites the player list, tagging the write with origin. Subscribers
// are notified exactly once, after the write is stored and outside any lock held
// by the service. The new revision is returned.
func (s *Service) SetItems(ctx context.Context, code model.RosterCode, players []model.Player, origin string) (uint64, error) {
	return s.setItems(ctx, code, players, origin, 0)
}

// SetItemsAt is SetItems guarded by the revision the caller last read. If the
// roster has moved on since then nothing is written and model.ErrStaleRevision
// is returned.
func (s *Service) SetItemsAt(ctx context.Context, code model.RosterCode, players []model.Player, origin string, expected uint64) (uint64, error) {
	if expected == 0 {
		return 0, fmt.Errorf("expected revision: %w", model.ErrStaleRevision)
	}
	return s.setItems(ctx, code, players, origin, expected)
}

func (s *Service) setItems(ctx context.Context, code model.RosterCode, players []model.Player, origin string, expected uint64) (uint64, error) {
	players, err := normalize(players)
	if err != nil {
		return 0, err
	}

	change, err := s.write(ctx, code, players, origin, expected)
	if err != nil {
		return 0, err
	}

	s.notify(change)
	return change.Revision, nil
}

// write stores players as the next revision. A non-zero expected revision must
// match the stored one.
func (s *Service) write(ctx context.Context, code model.RosterCode, players []model.Player, origin string, expected uint64) (model.RosterChange, error) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	roster, err := s.storage.GetRoster(ctx, code)
	if err != nil {
		return model.RosterChange{}, err
	}
	if expected != 0 && roster.Revision != expected {
		s.logger.Debug("rejected stale roster write",
			slog.String("roster_code", string(code)),
			slog.String("origin", origin),
			slog.Uint64("expected", expected),
			slog.Uint64("revision", roster.Revision),
		)
		return model.RosterChange{}, model.ErrStaleRevision
	}

	roster.Players = players
	roster.Revision++
	roster.Origin = origin
	roster.UpdatedAt = s.clock.Now()

	if err := s.storage.SaveRoster(ctx, roster); err != nil {
		s.logger.Error("failed to save roster",
			slog.String("roster_code", string(code)),
			slog.String("error", err.Error()),
		)
		return model.RosterChange{}, err
	}

	return model.RosterChange{
		Code:     code,
		Players:  clonePlayers(players),
		Revision: roster.Revision,
		Origin:   origin,
	}, nil
}

// Replace swaps in a whole new player list from outside any team engine, which
// makes every engine on the roster re-seed its teams
func (s *Service) Replace(ctx context.Context, code model.RosterCode, players []model.Player) (*model.Roster, error) {
	if _, err := s.SetItems(ctx, code, players, model.OriginExternal); err != nil {
		return nil, err
	}

	s.logger.Info("roster replaced",
		slog.String("roster_code", string(code)),
		slog.Int("player_count", len(players)),
	)
	return s.storage.GetRoster(ctx, code)
}

// Delete removes a roster and its results
func (s *Service) Delete(ctx context.Context, code model.RosterCode) error {
	if err := s.delete(ctx, code); err != nil {
		return err
	}

	s.logger.Info("roster deleted", slog.String("roster_code", string(code)))
	s.notifyGlobal(model.RosterChange{Code: code, Deleted: true})
	return nil
}

// delete runs under writeMu so a write already past its read cannot store the
// roster again afterwards
func (s *Service) delete(ctx context.Context, code model.RosterCode) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	exists, err := s.storage.RosterExists(ctx, code)
	if err != nil {
		return err
	}
	if !exists {
		return model.ErrRosterNotFound
	}
	return s.storage.DeleteRoster(ctx, code)
}

// Subscribe registers fn for changes to a roster. The returned function removes it.
func (s *Service) Subscribe(code model.RosterCode, fn Listener) func() {
	s.subMu.Lock()
	defer s.subMu.Unlock()

	id := s.nextSubID
	s.nextSubID++
	if s.listeners[code] == nil {
		s.listeners[code] = make(map[int]Listener)
	}
	s.listeners[code][id] = fn

	var once sync.Once
	return func() {
		once.Do(func() {
			s.subMu.Lock()
			defer s.subMu.Unlock()
			delete(s.listeners[code], id)
			if len(s.listeners[code]) == 0 {
				delete(s.listeners, code)
			}
		})
	}
}

// SubscribeAll registers fn for changes to every roster. Unlike Subscribe it
// also hears about deletions, flagged with Deleted.
func (s *Service) SubscribeAll(fn Listener) func() {
	s.subMu.Lock()
	defer s.subMu.Unlock()

	id := s.nextSubID
	s.nextSubID++
	s.global[id] = fn

	var once sync.Once
	return func() {
		once.Do(func() {
			s.subMu.Lock()
			defer s.subMu.Unlock()
			delete(s.global, id)
		})
	}
}

func (s *Service) notify(change model.RosterChange) {
	s.subMu.RLock()
	listeners := make([]Listener, 0, len(s.listeners[change.Code])+len(s.global))
	for _, fn := range s.listeners[change.Code] {
		listeners = append(listeners, fn)
	}
	for _, fn := range s.global {
		listeners = append(listeners, fn)
	}
	s.subMu.RUnlock()

	s.deliver(listeners, change)
}

func (s *Service) notifyGlobal(change model.RosterChange) {
	s.subMu.RLock()
	listeners := make([]Listener, 0, len(s.global))
	for _, fn := range s.global {
		listeners = append(listeners, fn)
	}
	s.subMu.RUnlock()

	s.deliver(listeners, change)
}

func (s *Service) deliver(listeners []Listener, change model.RosterChange) {
	for _, fn := range listeners {
		// each listener gets its own copy
		c := change
		c.Players = clonePlayers(change.Players)
		fn(c)
	}
}

// normalize validates a player list and assigns ids to players that lack one
func normalize(players []model.Player) ([]model.Player, error) {
	out := make([]model.Player, len(players))
	for i, p := range players {
		p.Name = strings.TrimSpace(p.Name)
		if p.Name == "" {
			return nil, fmt.Errorf("player %d: %w", i, model.ErrEmptyPlayerName)
		}
		if p.ID == "" {
			p.ID = model.PlayerID(uuid.NewString())
		}
		out[i] = p
	}
	if model.HasDuplicateIDs(out) {
		return nil, model.ErrDuplicatePlayer
	}
	return out, nil
}

func clonePlayers(players []model.Player) []model.Player {
	out := make([]model.Player, len(players))
	copy(out, players)
	return out
}
