package gesture

import (
	"math"
	"sync"
	"time"

	"github.com/jerrk000/teamify/internal/dependencies/clock"
	"github.com/jerrk000/teamify/internal/model"
)

// State is the phase of a single card's drag gesture
type State string

const (
	StateIdle       State = "idle"
	StateDragging   State = "dragging"
	StateCommitting State = "committing" // returning home after a release
	StateCancelling State = "cancelling" // returning home after a platform cancel
)

// Config controls drag recognition and the return animation
type Config struct {
	// Threshold is the |dx|+|dy| a touch must exceed before it becomes a drag
	Threshold float64
	// ReturnDuration is how long the card takes to slide back after release
	ReturnDuration time.Duration
}

// ConfigFromGrid takes the gesture settings out of a grid config
func ConfigFromGrid(cfg model.GridConfig) Config {
	return Config{Threshold: cfg.DragThreshold, ReturnDuration: cfg.ReturnDuration}
}

// Card tracks one draggable card. Each card is independent; callbacks for a card
// are expected in touch, move*, release-or-terminate order.
type Card struct {
	mu    sync.Mutex
	clock clock.Clock
	cfg   Config

	state    State
	tracking bool
	dx, dy   float64

	// return animation
	from       model.Point
	releasedAt time.Time
}

// NewCard creates an idle card
func NewCard(clk clock.Clock, cfg Config) *Card {
	return &Card{
		clock: clk,
		cfg:   cfg,
		state: StateIdle,
	}
}

// Touch starts tracking a new gesture. A card still animating home snaps back to
// its slot and starts over from a zero delta.
func (c *Card) Touch() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.state = StateIdle
	c.tracking = true
	c.dx, c.dy = 0, 0
}

// Move updates the cumulative delta since Touch and returns the resulting state.
// Moves without a preceding Touch are ignored.
func (c *Card) Move(dx, dy float64) State {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.tracking {
		return c.settleLocked()
	}
	if !model.Finite(dx, dy) {
		return c.state
	}
	c.dx, c.dy = dx, dy
	if c.state == StateIdle && math.Abs(dx)+math.Abs(dy) > c.cfg.Threshold {
		c.state = StateDragging
	}
	return c.state
}

// Release ends the gesture and starts the return animation. It returns true when
// the gesture was a drag, in which case the caller resolves and commits the drop
// using the release delta. Taps return false.
func (c *Card) Release(dx, dy float64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.tracking {
		return false
	}
	c.tracking = false
	if c.state != StateDragging {
		c.dx, c.dy = 0, 0
		return false
	}
	c.dx, c.dy = dx, dy
	c.startReturnLocked(StateCommitting)
	return true
}

// Terminate handles a platform cancellation. Nothing is committed.
func (c *Card) Terminate() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.tracking {
		return
	}
	c.tracking = false
	if c.state != StateDragging {
		c.dx, c.dy = 0, 0
		return
	}
	c.startReturnLocked(StateCancelling)
}

func (c *Card) startReturnLocked(state State) {
	c.state = state
	c.from = model.Point{X: c.dx, Y: c.dy}
	c.releasedAt = c.clock.Now()
	c.dx, c.dy = 0, 0
}

// Offset returns the card's visual displacement from its slot. While dragging it
// is the raw pointer delta. During the return it eases out to zero.
func (c *Card) Offset() model.Point {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch c.settleLocked() {
	case StateDragging:
		return model.Point{X: c.dx, Y: c.dy}
	case StateCommitting, StateCancelling:
		remaining := 1 - easeOut(c.progressLocked())
		return model.Point{X: c.from.X * remaining, Y: c.from.Y * remaining}
	default:
		return model.Point{}
	}
}

// State returns the current phase, settling a finished return animation to idle
func (c *Card) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.settleLocked()
}

// Dragging reports whether the card is being dragged right now
func (c *Card) Dragging() bool {
	return c.State() == StateDragging
}

func (c *Card) settleLocked() State {
	if (c.state == StateCommitting || c.state == StateCancelling) && c.progressLocked() >= 1 {
		c.state = StateIdle
		c.from = model.Point{}
	}
	return c.state
}

func (c *Card) progressLocked() float64 {
	if c.cfg.ReturnDuration <= 0 {
		return 1
	}
	p := float64(c.clock.Since(c.releasedAt)) / float64(c.cfg.ReturnDuration)
	return model.Clamp(p, 0, 1)
}

// easeOut is a cubic ease-out curve on [0, 1]
func easeOut(p float64) float64 {
	inv := 1 - p
	return 1 - inv*inv*inv
}
