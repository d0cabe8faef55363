// Package playback drives a sorting engine on a timer.
package playback

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/verte-zerg/sortlab/internal/bubblesort"
)

// DefaultSpeed is the delay between automatic ticks.
const DefaultSpeed = 500 * time.Millisecond

// ErrInvalidSpeed is returned for non-positive tick delays.
var ErrInvalidSpeed = errors.New("invalid speed")

// Stepper is the part of the engine the controller drives.
type Stepper interface {
	Tick() bubblesort.Outcome
	Snapshot() bubblesort.Snapshot
	History() []bubblesort.HistoryEntry
	Reset()
	Randomize(length, lo, hi int) error
}

// State is the playback state, independent of the sort state.
// Run increases on every Reset and Randomize, so observers can drop frames
// produced for an array that is no longer shown.
type State struct {
	Running bool
	Speed   time.Duration
	Closed  bool
	Run     uint64
}

// Frame is what an observer receives after each automatic tick.
type Frame struct {
	Outcome  bubblesort.Outcome
	Snapshot bubblesort.Snapshot
	State    State
}

// Option configures a Controller.
type Option func(*Controller)

// WithScheduler replaces the timer source.
func WithScheduler(s Scheduler) Option {
	return func(c *Controller) {
		c.sched = s
	}
}

// WithSpeed sets the initial tick delay. Non-positive values are ignored.
func WithSpeed(d time.Duration) Option {
	return func(c *Controller) {
		if d > 0 {
			c.speed = d
		}
	}
}

// WithFrameHandler registers the observer for automatic ticks. It is called
// outside the controller lock, so it may call back into the controller.
func WithFrameHandler(fn func(Frame)) Option {
	return func(c *Controller) {
		c.onFrame = fn
	}
}

// WithLogger sets the logger used for playback events.
func WithLogger(l *log.Logger) Option {
	return func(c *Controller) {
		c.logger = l
	}
}

// Controller schedules one tick at a time. Each tick reschedules the next
// only after its frame has been delivered, so two ticks are never in flight.
// Pause, Reset, Randomize and Teardown bump the generation, which turns any
// already-armed timer into a no-op.
type Controller struct {
	mu      sync.Mutex
	engine  Stepper
	sched   Scheduler
	speed   time.Duration
	running bool
	closed  bool
	gen     uint64
	run     uint64
	pending Timer
	onFrame func(Frame)
	logger  *log.Logger
}

// New wraps engine with a paused controller.
func New(engine Stepper, opts ...Option) *Controller {
	c := &Controller{
		engine: engine,
		sched:  RealScheduler(),
		speed:  DefaultSpeed,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Play starts automatic ticking. It does nothing on a terminal engine, a
// running controller, or after Teardown. Playback stops on the first tick
// that waits for an external decision.
func (c *Controller) Play() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed || c.running {
		return
	}
	if c.engine.Snapshot().Terminal {
		return
	}
	c.running = true
	c.scheduleLocked()
	c.debug("playback started", "speed", c.speed)
}

// Pause stops automatic ticking. A tick already executing completes.
func (c *Controller) Pause() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.running {
		return
	}
	c.cancelLocked()
	c.running = false
	c.debug("playback paused")
}

// Toggle flips between Play and Pause.
func (c *Controller) Toggle() {
	if c.State().Running {
		c.Pause()
		return
	}
	c.Play()
}

// SetSpeed changes the delay used for the next scheduled tick.
func (c *Controller) SetSpeed(d time.Duration) error {
	if d <= 0 {
		return fmt.Errorf("%w: %s", ErrInvalidSpeed, d)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.speed = d
	return nil
}

// Step performs one manual tick. It is allowed while running.
func (c *Controller) Step() Frame {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return Frame{Snapshot: c.engine.Snapshot(), State: c.stateLocked()}
	}
	out := c.engine.Tick()
	snap := c.engine.Snapshot()
	if snap.Terminal && c.running {
		c.cancelLocked()
		c.running = false
	}
	return Frame{Outcome: out, Snapshot: snap, State: c.stateLocked()}
}

// Reset cancels playback and restores the engine's initial array.
func (c *Controller) Reset() bubblesort.Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cancelLocked()
	c.running = false
	if !c.closed {
		c.engine.Reset()
		c.run++
	}
	return c.engine.Snapshot()
}

// Randomize cancels playback and loads a new random array.
func (c *Controller) Randomize(length, lo, hi int) (bubblesort.Snapshot, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return c.engine.Snapshot(), nil
	}
	if err := c.engine.Randomize(length, lo, hi); err != nil {
		return c.engine.Snapshot(), err
	}
	c.cancelLocked()
	c.running = false
	c.run++
	return c.engine.Snapshot(), nil
}

// Teardown cancels any pending tick and disables the controller.
func (c *Controller) Teardown() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.cancelLocked()
	c.running = false
	c.closed = true
	c.debug("playback torn down")
}

// State returns the playback state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stateLocked()
}

// Snapshot returns the engine state.
func (c *Controller) Snapshot() bubblesort.Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.engine.Snapshot()
}

// History returns the pass snapshots recorded so far.
func (c *Controller) History() []bubblesort.HistoryEntry {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.engine.History()
}

func (c *Controller) stateLocked() State {
	return State{Running: c.running, Speed: c.speed, Closed: c.closed, Run: c.run}
}

func (c *Controller) scheduleLocked() {
	c.gen++
	gen := c.gen
	c.pending = c.sched.AfterFunc(c.speed, func() {
		c.fire(gen)
	})
}

func (c *Controller) cancelLocked() {
	c.gen++
	if c.pending != nil {
		c.pending.Stop()
		c.pending = nil
	}
}

func (c *Controller) fire(gen uint64) {
	c.mu.Lock()
	if c.closed || !c.running || gen != c.gen {
		c.mu.Unlock()
		return
	}
	c.pending = nil
	out := c.engine.Tick()
	snap := c.engine.Snapshot()
	switch {
	case snap.Terminal:
		c.running = false
		c.debug("playback finished", "comparisons", snap.Counters.TotalComparisons, "swaps", snap.Counters.TotalSwaps)
	case out.AwaitingDecision:
		// The engine only advances on an external decision.
		c.running = false
		c.debug("playback stopped: awaiting decision", "index", out.Left)
	}
	frame := Frame{Outcome: out, Snapshot: snap, State: c.stateLocked()}
	handler := c.onFrame
	c.mu.Unlock()

	if handler != nil {
		handler(frame)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed || !c.running || gen != c.gen {
		return
	}
	c.scheduleLocked()
}

func (c *Controller) debug(msg string, keyvals ...any) {
	if c.logger == nil {
		return
	}
	c.logger.Debug(msg, keyvals...)
}
