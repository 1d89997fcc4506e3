package grid

import (
	"context"
	"log/slog"
	"sync"

	"github.com/jerrk000/teamify/internal/dependencies/clock"
	"github.com/jerrk000/teamify/internal/dependencies/random"
	"github.com/jerrk000/teamify/internal/model"
	"github.com/jerrk000/teamify/internal/services/gesture"
	"github.com/jerrk000/teamify/internal/services/layout"
	"github.com/jerrk000/teamify/internal/services/resolver"
	"github.com/jerrk000/teamify/internal/services/teams"
)

// CardView is everything a client needs to paint one card
type CardView struct {
	Player   model.Player  `json:"player"`
	Team     model.TeamID  `json:"team"`
	Index    int           `json:"index"`
	Rect     model.Rect    `json:"rect"`
	Offset   model.Point   `json:"offset"`
	State    gesture.State `json:"state"`
	BorderID string        `json:"border_id"`
}

// Session is a mounted team grid: one engine plus one gesture card per player
type Session struct {
	code   model.RosterCode
	engine *teams.Engine
	cfg    model.GridConfig
	clock  clock.Clock
	logger *slog.Logger

	mu     sync.Mutex
	width  float64
	height float64
	cards  map[model.PlayerID]*gesture.Card
}

// NewSession mounts a team engine on store and prepares the grid
func NewSession(
	ctx context.Context,
	code model.RosterCode,
	store teams.PlayerStore,
	cfg model.GridConfig,
	clock clock.Clock,
	random random.Random,
	logger *slog.Logger,
) (*Session, error) {
	engine, err := teams.NewEngine(ctx, store, random, logger)
	if err != nil {
		return nil, err
	}
	return &Session{
		code:   code,
		engine: engine,
		cfg:    cfg,
		clock:  clock,
		logger: logger,
		cards:  make(map[model.PlayerID]*gesture.Card),
	}, nil
}

// Code returns the roster the session is mounted on
func (s *Session) Code() model.RosterCode {
	return s.code
}

// Engine returns the session's team engine
func (s *Session) Engine() *teams.Engine {
	return s.engine
}

// Config returns the grid configuration
func (s *Session) Config() model.GridConfig {
	return s.cfg
}

// Resize sets the container size used for layout and hit testing
func (s *Session) Resize(width, height float64) error {
	if !validSize(width, height) {
		return model.ErrInvalidContainer
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.width, s.height = width, height
	return nil
}

// Layout computes the grid for the current teams at the current size
func (s *Session) Layout() (layout.GridLayout, model.Partition, error) {
	w, h := s.size()
	return s.layoutAt(w, h)
}

func (s *Session) layoutAt(w, h float64) (layout.GridLayout, model.Partition, error) {
	p := s.engine.Partition()
	g, err := layout.Compute(w, h, len(p.TeamA), len(p.TeamB), s.cfg)
	return g, p, err
}

func (s *Session) size() (float64, float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.width, s.height
}

// Cards returns a view of every card in team order at the current size
func (s *Session) Cards() ([]CardView, error) {
	w, h := s.size()
	return s.CardsAt(w, h)
}

// CardsAt is Cards for a container of the given size
func (s *Session) CardsAt(width, height float64) ([]CardView, error) {
	g, p, err := s.layoutAt(width, height)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.pruneLocked(p)

	views := make([]CardView, 0, p.Len())
	for _, team := range model.Teams() {
		slots := g.Slots(team)
		for i, player := range p.Team(team) {
			view := CardView{
				Player:   player,
				Team:     team,
				Index:    i,
				Rect:     slots[i],
				State:    gesture.StateIdle,
				BorderID: s.cfg.BorderID(team),
			}
			if card, ok := s.cards[player.ID]; ok {
				view.Offset = card.Offset()
				view.State = card.State()
			}
			views = append(views, view)
		}
	}
	return views, nil
}

// Zones returns the join zones, A then B
func (s *Session) Zones() ([]model.TargetRect, error) {
	w, h := s.size()
	return s.ZonesAt(w, h)
}

// ZonesAt is Zones for a container of the given size
func (s *Session) ZonesAt(width, height float64) ([]model.TargetRect, error) {
	g, _, err := s.layoutAt(width, height)
	if err != nil {
		return nil, err
	}
	return []model.TargetRect{
		{Target: model.ZoneTarget(model.TeamA), Rect: g.ZoneARect},
		{Target: model.ZoneTarget(model.TeamB), Rect: g.ZoneBRect},
	}, nil
}

// ZonesVisible reports whether the rail shows join zones, which it does while any
// card is being dragged
func (s *Session) ZonesVisible() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, card := range s.cards {
		if card.Dragging() {
			return true
		}
	}
	return false
}

// Touch starts a gesture on a player's card
func (s *Session) Touch(id model.PlayerID) error {
	if _, ok := s.engine.Partition().PointerOf(id); !ok {
		return model.ErrCardNotFound
	}

	s.mu.Lock()
	card, ok := s.cards[id]
	if !ok {
		card = gesture.NewCard(s.clock, gesture.ConfigFromGrid(s.cfg))
		s.cards[id] = card
	}
	s.mu.Unlock()

	card.Touch()
	return nil
}

// Move feeds the cumulative delta since Touch to a player's card
func (s *Session) Move(id model.PlayerID, dx, dy float64) (gesture.State, error) {
	card, err := s.card(id)
	if err != nil {
		return gesture.StateIdle, err
	}
	return card.Move(dx, dy), nil
}

// Release ends a gesture. A drag is resolved against the layout of the teams as
// they are now and committed through the engine; taps do nothing.
func (s *Session) Release(ctx context.Context, id model.PlayerID, dx, dy float64) (teams.Outcome, error) {
	w, h := s.size()
	return s.release(ctx, id, dx, dy, w, h)
}

// DropAt replays a whole touch, move and release of one card in a container of
// the given size. The session's own size is left alone.
func (s *Session) DropAt(ctx context.Context, id model.PlayerID, dx, dy, width, height float64) (teams.Outcome, error) {
	if !validSize(width, height) {
		return teams.OutcomeNone, model.ErrInvalidContainer
	}
	if err := s.Touch(id); err != nil {
		return teams.OutcomeNone, err
	}
	if _, err := s.Move(id, dx, dy); err != nil {
		return teams.OutcomeNone, err
	}
	return s.release(ctx, id, dx, dy, width, height)
}

func (s *Session) release(ctx context.Context, id model.PlayerID, dx, dy, w, h float64) (teams.Outcome, error) {
	card, err := s.card(id)
	if err != nil {
		return teams.OutcomeNone, err
	}
	// a release without a usable position is treated as a cancellation
	if !model.Finite(dx, dy) {
		card.Terminate()
		return teams.OutcomeNone, nil
	}
	if !card.Release(dx, dy) {
		return teams.OutcomeNone, nil
	}

	var layoutErr error
	outcome, err := s.engine.DropPlayer(ctx, id, func(p model.Partition, from model.PlayerPointer) (model.DropTarget, bool) {
		g, err := layout.Compute(w, h, len(p.TeamA), len(p.TeamB), s.cfg)
		if err != nil {
			layoutErr = err
			return model.DropTarget{}, false
		}
		return resolver.ResolveFrom(g, from, dx, dy)
	})
	if err != nil {
		return teams.OutcomeNone, err
	}
	if layoutErr != nil {
		return teams.OutcomeNone, layoutErr
	}

	s.logger.Debug("card dropped",
		slog.String("roster_code", string(s.code)),
		slog.String("player_id", string(id)),
		slog.String("outcome", string(outcome)),
	)
	return outcome, nil
}

// Terminate cancels a player's gesture without committing anything
func (s *Session) Terminate(id model.PlayerID) error {
	card, err := s.card(id)
	if err != nil {
		return err
	}
	card.Terminate()
	return nil
}

// CardState returns the gesture state of a player's card
func (s *Session) CardState(id model.PlayerID) gesture.State {
	card, err := s.card(id)
	if err != nil {
		return gesture.StateIdle
	}
	return card.State()
}

// Close unmounts the engine
func (s *Session) Close() {
	s.engine.Close()
}

func validSize(width, height float64) bool {
	return width > 0 && height > 0 && model.Finite(width, height)
}

func (s *Session) card(id model.PlayerID) (*gesture.Card, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	card, ok := s.cards[id]
	if !ok {
		return nil, model.ErrCardNotFound
	}
	return card, nil
}

// pruneLocked forgets cards whose players have left the roster
func (s *Session) pruneLocked(p model.Partition) {
	for id := range s.cards {
		if _, ok := p.PointerOf(id); !ok {
			delete(s.cards, id)
		}
	}
}
