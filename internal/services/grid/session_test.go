package grid

import (
	"context"
	"fmt"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/jerrk000/teamify/internal/dependencies/mocks"
	"github.com/jerrk000/teamify/internal/model"
	"github.com/jerrk000/teamify/internal/services/gesture"
	"github.com/jerrk000/teamify/internal/services/roster"
	"github.com/jerrk000/teamify/internal/services/teams"
	"github.com/jerrk000/teamify/internal/storage/memory"
	"github.com/jerrk000/teamify/internal/testutil"
)

type SessionSuite struct {
	suite.Suite
	clock   *mocks.MockClock
	random  *mocks.MockRandom
	roster  *roster.Service
	manager *Manager
	session *Session
	ctx     context.Context
}

func TestSessionSuite(t *testing.T) {
	suite.Run(t, new(SessionSuite))
}

func (s *SessionSuite) SetupTest() {
	s.ctx = context.Background()
	s.clock = mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	s.random = mocks.NewMockRandom()
	logger := testutil.NopLogger()
	s.roster = roster.New(memory.New(), s.clock, s.random, logger)

	players := make([]model.Player, 8)
	for i := range players {
		players[i] = model.Player{ID: model.PlayerID(fmt.Sprintf("p%d", i+1)), Name: fmt.Sprintf("Player %d", i+1)}
	}
	s.random.QueueString("ABC123")
	_, err := s.roster.Create(s.ctx, players)
	s.Require().NoError(err)

	s.manager = NewManager(s.roster, model.DefaultGridConfig(), s.clock, s.random, logger)
	s.session, err = s.manager.GetOrCreate(s.ctx, "ABC123")
	s.Require().NoError(err)
	s.Require().NoError(s.session.Resize(500, 400))
}

func (s *SessionSuite) TearDownTest() {
	s.manager.Close()
}

// drag runs a full gesture and returns the outcome
func (s *SessionSuite) drag(id model.PlayerID, dx, dy float64) teams.Outcome {
	s.Require().NoError(s.session.Touch(id))
	_, err := s.session.Move(id, dx/2, dy/2)
	s.Require().NoError(err)
	_, err = s.session.Move(id, dx, dy)
	s.Require().NoError(err)
	outcome, err := s.session.Release(s.ctx, id, dx, dy)
	s.Require().NoError(err)
	return outcome
}

func (s *SessionSuite) teamIDs(team model.TeamID) []model.PlayerID {
	return model.PlayerIDs(s.session.Engine().Partition().Team(team))
}

// Layout tests

func (s *SessionSuite) TestResizeRejectsEmptySize() {
	s.ErrorIs(s.session.Resize(0, 100), model.ErrInvalidContainer)
}

func (s *SessionSuite) TestLayoutNeedsSize() {
	session, err := NewSession(s.ctx, "ABC123", s.roster.Store("ABC123"), model.DefaultGridConfig(), s.clock, s.random, testutil.NopLogger())
	s.Require().NoError(err)
	defer session.Close()

	_, err = session.Cards()
	s.ErrorIs(err, model.ErrInvalidContainer)
}

func (s *SessionSuite) TestCards() {
	cards, err := s.session.Cards()
	s.Require().NoError(err)
	s.Require().Len(cards, 8)

	s.Equal(model.PlayerID("p1"), cards[0].Player.ID)
	s.Equal(model.TeamA, cards[0].Team)
	s.Equal("team-a", cards[0].BorderID)
	s.Equal(model.Rect{X: 0, Y: 0, Width: 178, Height: 92}, cards[0].Rect)
	s.Equal(gesture.StateIdle, cards[0].State)

	s.Equal(model.PlayerID("p6"), cards[5].Player.ID)
	s.Equal(model.TeamB, cards[5].Team)
	s.Equal(1, cards[5].Index)
	s.Equal("team-b", cards[5].BorderID)
	s.Equal(model.Rect{X: 222, Y: 206, Width: 178, Height: 92}, cards[5].Rect)
}

func (s *SessionSuite) TestZones() {
	zones, err := s.session.Zones()
	s.Require().NoError(err)
	s.Require().Len(zones, 2)
	s.Equal(model.ZoneTarget(model.TeamA), zones[0].Target)
	s.Equal(model.Rect{X: 400, Y: 205, Width: 100, Height: 195}, zones[1].Rect)
}

// Gesture tests

func (s *SessionSuite) TestDragOntoOtherTeamSlotSwaps() {
	// A0 lands exactly on B1
	outcome := s.drag("p1", 222, 206)
	s.Equal(teams.OutcomeSwap, outcome)

	s.Equal([]model.PlayerID{"p6", "p2", "p3", "p4"}, s.teamIDs(model.TeamA))
	s.Equal([]model.PlayerID{"p5", "p1", "p7", "p8"}, s.teamIDs(model.TeamB))

	players, _, err := s.roster.Items(s.ctx, "ABC123")
	s.Require().NoError(err)
	s.Equal([]model.PlayerID{"p6", "p2", "p3", "p4", "p5", "p1", "p7", "p8"}, model.PlayerIDs(players))
}

func (s *SessionSuite) TestDragOntoZoneMoves() {
	// A1 sits at (222, 0); push it into the lower half of the rail
	outcome := s.drag("p2", 220, 270)
	s.Equal(teams.OutcomeMove, outcome)

	s.Equal([]model.PlayerID{"p1", "p3", "p4"}, s.teamIDs(model.TeamA))
	s.Equal([]model.PlayerID{"p5", "p6", "p7", "p8", "p2"}, s.teamIDs(model.TeamB))
}

func (s *SessionSuite) TestDropAtReplaysWholeGesture() {
	outcome, err := s.session.DropAt(s.ctx, "p1", 222, 206, 500, 400)
	s.Require().NoError(err)
	s.Equal(teams.OutcomeSwap, outcome)
	s.Equal([]model.PlayerID{"p5", "p1", "p7", "p8"}, s.teamIDs(model.TeamB))
	s.Equal(gesture.StateCommitting, s.session.CardState("p1"))
}

func (s *SessionSuite) TestDropAtKeepsSessionSize() {
	_, err := s.session.DropAt(s.ctx, "p1", 1, 1, 1000, 800)
	s.Require().NoError(err)

	cards, err := s.session.Cards()
	s.Require().NoError(err)
	s.InDelta(178, cards[0].Rect.Width, 0.001)

	wide, err := s.session.CardsAt(1000, 800)
	s.Require().NoError(err)
	s.Greater(wide[0].Rect.Width, cards[0].Rect.Width)
}

func (s *SessionSuite) TestDropAtRejectsEmptyContainer() {
	_, err := s.session.DropAt(s.ctx, "p1", 222, 206, 0, 400)
	s.ErrorIs(err, model.ErrInvalidContainer)
}

func (s *SessionSuite) TestNonFiniteContainerIsRejected() {
	before := s.session.Engine().Partition()

	for _, size := range [][2]float64{{math.NaN(), 400}, {500, math.NaN()}, {math.Inf(1), 400}} {
		_, err := s.session.DropAt(s.ctx, "p7", 10, 0, size[0], size[1])
		s.ErrorIs(err, model.ErrInvalidContainer)

		_, err = s.session.CardsAt(size[0], size[1])
		s.ErrorIs(err, model.ErrInvalidContainer)

		_, err = s.session.ZonesAt(size[0], size[1])
		s.ErrorIs(err, model.ErrInvalidContainer)

		s.ErrorIs(s.session.Resize(size[0], size[1]), model.ErrInvalidContainer)
	}

	s.True(before.Equal(s.session.Engine().Partition()))
	s.Equal(uint64(1), s.session.Engine().Revision())
}

func (s *SessionSuite) TestNonFiniteReleaseCommitsNothing() {
	for _, d := range [][2]float64{{math.NaN(), 0}, {math.Inf(1), 0}, {0, math.Inf(-1)}} {
		outcome, err := s.session.DropAt(s.ctx, "p7", d[0], d[1], 500, 400)
		s.Require().NoError(err)
		s.Equal(teams.OutcomeNone, outcome, "delta %v", d)
	}

	// a real drag followed by a broken release is cancelled
	s.Require().NoError(s.session.Touch("p1"))
	_, err := s.session.Move("p1", 222, 206)
	s.Require().NoError(err)
	outcome, err := s.session.Release(s.ctx, "p1", math.NaN(), 206)
	s.Require().NoError(err)
	s.Equal(teams.OutcomeNone, outcome)
	s.Equal(gesture.StateCancelling, s.session.CardState("p1"))

	s.Equal([]model.PlayerID{"p1", "p2", "p3", "p4"}, s.teamIDs(model.TeamA))
	s.Equal(uint64(1), s.session.Engine().Revision())
}

func (s *SessionSuite) TestDropAtUnknownPlayer() {
	_, err := s.session.DropAt(s.ctx, "nobody", 222, 206, 500, 400)
	s.ErrorIs(err, model.ErrCardNotFound)
}

func (s *SessionSuite) TestSmallDragReturnsHome() {
	outcome := s.drag("p1", 10, 0)
	s.Equal(teams.OutcomeNone, outcome)
	s.Equal(uint64(1), s.session.Engine().Revision())
}

func (s *SessionSuite) TestTapDoesNothing() {
	s.Require().NoError(s.session.Touch("p1"))
	_, _ = s.session.Move("p1", 1, 1)
	outcome, err := s.session.Release(s.ctx, "p1", 1, 1)
	s.Require().NoError(err)
	s.Equal(teams.OutcomeNone, outcome)
	s.Equal(gesture.StateIdle, s.session.CardState("p1"))
}

func (s *SessionSuite) TestTerminateLeavesTeams() {
	before := s.session.Engine().Partition()

	s.Require().NoError(s.session.Touch("p1"))
	_, _ = s.session.Move("p1", 222, 206)
	s.Require().NoError(s.session.Terminate("p1"))

	s.True(before.Equal(s.session.Engine().Partition()))
	s.Equal(gesture.StateCancelling, s.session.CardState("p1"))

	s.clock.Advance(time.Second)
	s.Equal(gesture.StateIdle, s.session.CardState("p1"))
}

func (s *SessionSuite) TestZonesVisibleWhileDragging() {
	s.False(s.session.ZonesVisible())

	s.Require().NoError(s.session.Touch("p3"))
	state, err := s.session.Move("p3", 30, 0)
	s.Require().NoError(err)
	s.Equal(gesture.StateDragging, state)
	s.True(s.session.ZonesVisible())

	cards, err := s.session.Cards()
	s.Require().NoError(err)
	s.Equal(model.Point{X: 30, Y: 0}, cards[2].Offset)
	s.Equal(gesture.StateDragging, cards[2].State)

	_, err = s.session.Release(s.ctx, "p3", 30, 0)
	s.Require().NoError(err)
	s.False(s.session.ZonesVisible())
}

func (s *SessionSuite) TestCardsAreIndependent() {
	s.Require().NoError(s.session.Touch("p1"))
	s.Require().NoError(s.session.Touch("p5"))
	_, _ = s.session.Move("p1", 40, 0)
	_, _ = s.session.Move("p5", 0, 40)

	s.Equal(gesture.StateDragging, s.session.CardState("p1"))
	s.Equal(gesture.StateDragging, s.session.CardState("p5"))

	s.Require().NoError(s.session.Terminate("p5"))
	s.Equal(gesture.StateDragging, s.session.CardState("p1"))
}

func (s *SessionSuite) TestUnknownCard() {
	s.ErrorIs(s.session.Touch("ghost"), model.ErrCardNotFound)

	_, err := s.session.Move("p1", 10, 10)
	s.ErrorIs(err, model.ErrCardNotFound)
}

func (s *SessionSuite) TestPlayerRemovedMidDrag() {
	s.Require().NoError(s.session.Touch("p1"))
	_, _ = s.session.Move("p1", 222, 206)

	_, err := s.roster.Replace(s.ctx, "ABC123", []model.Player{{ID: "p2", Name: "Player 2"}, {ID: "p3", Name: "Player 3"}})
	s.Require().NoError(err)

	outcome, err := s.session.Release(s.ctx, "p1", 222, 206)
	s.Require().NoError(err)
	s.Equal(teams.OutcomeNone, outcome)

	cards, err := s.session.Cards()
	s.Require().NoError(err)
	s.Len(cards, 2)
	s.Equal(gesture.StateIdle, s.session.CardState("p1"))
}

// Manager tests

func (s *SessionSuite) TestManagerReusesSessions() {
	again, err := s.manager.GetOrCreate(s.ctx, "ABC123")
	s.Require().NoError(err)
	s.Same(s.session, again)
	s.Equal(1, s.manager.SessionCount())

	got, ok := s.manager.Get("ABC123")
	s.True(ok)
	s.Same(s.session, got)
}

func (s *SessionSuite) TestManagerUnknownRoster() {
	_, err := s.manager.GetOrCreate(s.ctx, "NOPE00")
	s.ErrorIs(err, model.ErrRosterNotFound)
	s.Equal(1, s.manager.SessionCount())
}

func (s *SessionSuite) TestManagerRemoveUnmounts() {
	s.manager.Remove("ABC123")

	_, ok := s.manager.Get("ABC123")
	s.False(ok)

	_, err := s.session.Engine().SwapAcrossTeams(s.ctx, model.PlayerPointer{Team: model.TeamA}, model.PlayerPointer{Team: model.TeamB})
	s.ErrorIs(err, model.ErrSessionClosed)
}
