package gesture

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/jerrk000/teamify/internal/dependencies/mocks"
	"github.com/jerrk000/teamify/internal/model"
)

type CardSuite struct {
	suite.Suite
	clock *mocks.MockClock
	card  *Card
}

func TestCardSuite(t *testing.T) {
	suite.Run(t, new(CardSuite))
}

func (s *CardSuite) SetupTest() {
	s.clock = mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	s.card = NewCard(s.clock, Config{Threshold: 4, ReturnDuration: 200 * time.Millisecond})
}

func (s *CardSuite) drag(dx, dy float64) {
	s.card.Touch()
	s.card.Move(dx/2, dy/2)
	s.card.Move(dx, dy)
}

// Threshold tests

func (s *CardSuite) TestStartsIdle() {
	s.Equal(StateIdle, s.card.State())
	s.Equal(model.Point{}, s.card.Offset())
}

func (s *CardSuite) TestSmallMovementStaysIdle() {
	s.card.Touch()
	s.Equal(StateIdle, s.card.Move(2, 2))
	s.Equal(model.Point{}, s.card.Offset())
}

func (s *CardSuite) TestThresholdIsStrict() {
	s.card.Touch()
	s.Equal(StateIdle, s.card.Move(4, 0))
	s.Equal(StateDragging, s.card.Move(3, -2))
}

func (s *CardSuite) TestMoveWithoutTouchIsIgnored() {
	s.Equal(StateIdle, s.card.Move(50, 50))
	s.False(s.card.Release(50, 50))
}

func (s *CardSuite) TestNonFiniteMoveIsIgnored() {
	s.card.Touch()
	s.Equal(StateIdle, s.card.Move(math.Inf(1), 0))
	s.Equal(StateIdle, s.card.Move(math.NaN(), math.NaN()))
	s.Equal(model.Point{}, s.card.Offset())

	s.Equal(StateDragging, s.card.Move(20, 0))
	s.Equal(StateDragging, s.card.Move(math.NaN(), 0))
	s.Equal(model.Point{X: 20}, s.card.Offset())
}

// Drag tests

func (s *CardSuite) TestOffsetTracksRawDelta() {
	s.drag(30, -12)
	s.Equal(StateDragging, s.card.State())
	s.True(s.card.Dragging())
	s.Equal(model.Point{X: 30, Y: -12}, s.card.Offset())
}

func (s *CardSuite) TestTapDoesNotDrop() {
	s.card.Touch()
	s.card.Move(1, 1)
	s.False(s.card.Release(1, 1))
	s.Equal(StateIdle, s.card.State())
}

func (s *CardSuite) TestReleaseAnimatesFromReleaseDelta() {
	s.drag(30, 40)
	s.True(s.card.Release(32, 41))

	s.Equal(StateCommitting, s.card.State())
	s.Equal(model.Point{X: 32, Y: 41}, s.card.Offset())
}

func (s *CardSuite) TestSecondReleaseIsIgnored() {
	s.drag(30, 40)
	s.True(s.card.Release(30, 40))
	s.False(s.card.Release(30, 40))
}

// Cancel tests

func (s *CardSuite) TestTerminateCancels() {
	s.drag(30, 40)
	s.card.Terminate()

	s.False(s.card.Release(30, 40))
	s.Equal(StateCancelling, s.card.State())
	s.Equal(model.Point{X: 30, Y: 40}, s.card.Offset())
}

func (s *CardSuite) TestTerminateBeforeDragIsIdle() {
	s.card.Touch()
	s.card.Move(1, 0)
	s.card.Terminate()
	s.Equal(StateIdle, s.card.State())
}

// Return animation tests

func (s *CardSuite) TestReturnAnimationEasesOut() {
	s.drag(100, 0)
	s.card.Release(100, 0)
	s.Equal(model.Point{X: 100, Y: 0}, s.card.Offset())

	s.clock.Advance(100 * time.Millisecond)
	// halfway in time, 1/8 of the distance left
	s.InDelta(12.5, s.card.Offset().X, 1e-9)

	s.clock.Advance(100 * time.Millisecond)
	s.Equal(model.Point{}, s.card.Offset())
	s.Equal(StateIdle, s.card.State())
}

func (s *CardSuite) TestCancelAnimationSettles() {
	s.drag(0, 80)
	s.card.Terminate()

	s.clock.Advance(250 * time.Millisecond)
	s.Equal(StateIdle, s.card.State())
	s.Equal(model.Point{}, s.card.Offset())
}

func (s *CardSuite) TestTouchDuringReturnRestartsFromZero() {
	s.drag(100, 0)
	s.card.Release(100, 0)
	s.clock.Advance(50 * time.Millisecond)

	s.card.Touch()
	s.Equal(StateIdle, s.card.State())
	s.Equal(model.Point{}, s.card.Offset())

	s.Equal(StateDragging, s.card.Move(0, 10))
	s.Equal(model.Point{X: 0, Y: 10}, s.card.Offset())
}

func (s *CardSuite) TestZeroDurationSettlesImmediately() {
	card := NewCard(s.clock, Config{Threshold: 4})
	card.Touch()
	card.Move(10, 10)
	s.True(card.Release(10, 10))
	s.Equal(StateIdle, card.State())
}

func (s *CardSuite) TestConfigFromGrid() {
	cfg := ConfigFromGrid(model.DefaultGridConfig())
	s.Equal(4.0, cfg.Threshold)
	s.Equal(250*time.Millisecond, cfg.ReturnDuration)
}
