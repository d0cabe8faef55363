package bubblesort

import (
	"errors"
	"fmt"

	"github.com/verte-zerg/sortlab/internal/generator"
)

// ErrInvalidInput is returned when an engine cannot be built from the input.
var ErrInvalidInput = errors.New("invalid input")

// OutcomeKind classifies a tick.
type OutcomeKind int

const (
	KindComparing OutcomeKind = iota
	KindSwapped
	KindPassComplete
	KindSorted
	KindEarlyTerminated
)

func (k OutcomeKind) String() string {
	switch k {
	case KindComparing:
		return "comparing"
	case KindSwapped:
		return "swapped"
	case KindPassComplete:
		return "pass-complete"
	case KindSorted:
		return "sorted"
	case KindEarlyTerminated:
		return "early-terminated"
	default:
		return "unknown"
	}
}

// PassSummary describes a pass that closed on the current tick.
type PassSummary struct {
	Pass  int
	Swaps int
}

// Outcome is the visible result of one tick. Kind reports the most
// significant event: terminal kinds win over PassComplete, which wins over
// Swapped. Swapped is set whenever the comparison exchanged the pair.
type Outcome struct {
	Kind             OutcomeKind
	Left             int
	Right            int
	Swapped          bool
	PassCompleted    *PassSummary
	AwaitingDecision bool
}

// Counters accumulate over a run and only go back to zero on reset.
type Counters struct {
	TotalSteps         int
	TotalComparisons   int
	TotalSwaps         int
	SwapsInCurrentPass int
}

// Status is the derived display state of one element.
type Status int

const (
	StatusUnsorted Status = iota
	StatusComparing
	StatusSwapping
	StatusSorted
)

func (s Status) String() string {
	switch s {
	case StatusUnsorted:
		return "unsorted"
	case StatusComparing:
		return "comparing"
	case StatusSwapping:
		return "swapping"
	case StatusSorted:
		return "sorted"
	default:
		return "unknown"
	}
}

// Options parametrize an engine.
type Options struct {
	// Optimized stops after the first pass without swaps.
	Optimized bool
	// RequireDecision gates every comparison behind an external decision;
	// Tick then reports the pending comparison without advancing.
	RequireDecision bool
	// Generator feeds Randomize. A time-seeded generator is used when nil.
	Generator *generator.Generator
}

// Snapshot is a copy of the engine state safe to keep across ticks.
type Snapshot struct {
	Values          []int
	Pass            int
	CompareIndex    int
	Counters        Counters
	Statuses        []Status
	Phase           Phase
	Terminal        bool
	TerminatedEarly bool
	LastSwapped     bool
	LastCompared    int
	PassesCompleted int
	Optimized       bool
}

// Engine is the Bubble Sort state machine. One Tick performs exactly one
// comparison. Ticking a terminal engine is a no-op that returns the terminal
// outcome again.
type Engine struct {
	opts    Options
	gen     *generator.Generator
	initial []int
	values  []int

	tracker      passTracker
	counters     Counters
	lastSwapped  bool
	lastCompared int
	history      *History
}

// New builds an engine over a copy of values.
func New(values []int, opts Options) (*Engine, error) {
	if len(values) == 0 {
		return nil, fmt.Errorf("%w: array is empty", ErrInvalidInput)
	}
	gen := opts.Generator
	if gen == nil {
		gen = generator.New()
	}
	e := &Engine{
		opts:    opts,
		gen:     gen,
		initial: cloneInts(values),
	}
	e.Reset()
	return e, nil
}

// Reset restores the last initial array and clears all run state.
func (e *Engine) Reset() {
	e.values = cloneInts(e.initial)
	e.tracker = newPassTracker(len(e.values))
	e.counters = Counters{}
	e.lastSwapped = false
	e.lastCompared = -1
	if e.history == nil {
		e.history = NewHistory(e.initial)
	} else {
		e.history.Reset(e.initial)
	}
}

// Randomize replaces the initial array with length values drawn uniformly
// from [lo, hi] and resets.
func (e *Engine) Randomize(length, lo, hi int) error {
	if length < 1 {
		return fmt.Errorf("%w: length must be >= 1, got %d", ErrInvalidInput, length)
	}
	if lo > hi {
		return fmt.Errorf("%w: min %d is greater than max %d", ErrInvalidInput, lo, hi)
	}
	e.initial = e.gen.Ints(length, lo, hi)
	e.Reset()
	return nil
}

// Tick advances by one comparison.
func (e *Engine) Tick() Outcome {
	if e.tracker.phase.Terminal() {
		return e.terminalOutcome()
	}
	if e.opts.RequireDecision {
		ci := e.tracker.cursor.CompareIndex
		return Outcome{Kind: KindComparing, Left: ci, Right: ci + 1, AwaitingDecision: true}
	}
	return e.step()
}

// step performs the comparison at the cursor regardless of RequireDecision.
func (e *Engine) step() Outcome {
	if e.tracker.phase.Terminal() {
		return e.terminalOutcome()
	}
	ci := e.tracker.cursor.CompareIndex
	swapped, next := Compare(e.values, ci)
	out := Outcome{Kind: KindComparing, Left: ci, Right: ci + 1}

	e.counters.TotalSteps++
	e.counters.TotalComparisons++
	if swapped {
		e.values = next
		e.counters.TotalSwaps++
		e.counters.SwapsInCurrentPass++
		out.Kind = KindSwapped
		out.Swapped = true
	}
	e.lastSwapped = swapped
	e.lastCompared = ci

	if !e.tracker.advance() {
		return out
	}

	pass := e.tracker.cursor.Pass + 1
	swaps := e.counters.SwapsInCurrentPass
	e.history.record(e.values, pass, swaps)
	out.Kind = KindPassComplete
	out.PassCompleted = &PassSummary{Pass: pass, Swaps: swaps}

	switch e.tracker.resolveBoundary(swaps, e.opts.Optimized) {
	case PhaseDone:
		out.Kind = KindSorted
	case PhaseEarlyDone:
		out.Kind = KindEarlyTerminated
	default:
		e.counters.SwapsInCurrentPass = 0
	}
	return out
}

func (e *Engine) terminalOutcome() Outcome {
	kind := KindSorted
	if e.tracker.phase == PhaseEarlyDone {
		kind = KindEarlyTerminated
	}
	return Outcome{Kind: kind, Left: -1, Right: -1}
}

// Terminal reports whether the run has finished.
func (e *Engine) Terminal() bool {
	return e.tracker.phase.Terminal()
}

// Cursor returns the position of the next comparison.
func (e *Engine) Cursor() PassCursor {
	return e.tracker.cursor
}

// Values returns a copy of the current array.
func (e *Engine) Values() []int {
	return cloneInts(e.values)
}

// Initial returns a copy of the array the engine resets to.
func (e *Engine) Initial() []int {
	return cloneInts(e.initial)
}

// Optimized reports whether early termination is enabled.
func (e *Engine) Optimized() bool {
	return e.opts.Optimized
}

// History returns the pass snapshots recorded so far.
func (e *Engine) History() []HistoryEntry {
	return e.history.Entries()
}

// ElementStatus derives the display state of index i. Sorted wins, then the
// pair touched by a swapping tick, then the pair under the cursor.
func (e *Engine) ElementStatus(i int) Status {
	if e.tracker.phase.Terminal() {
		return StatusSorted
	}
	n := len(e.values)
	if i >= n-e.tracker.cursor.Pass {
		return StatusSorted
	}
	if e.lastSwapped && (i == e.lastCompared || i == e.lastCompared+1) {
		return StatusSwapping
	}
	ci := e.tracker.cursor.CompareIndex
	if i == ci || i == ci+1 {
		return StatusComparing
	}
	return StatusUnsorted
}

// Snapshot copies the current state.
func (e *Engine) Snapshot() Snapshot {
	statuses := make([]Status, len(e.values))
	for i := range statuses {
		statuses[i] = e.ElementStatus(i)
	}
	return Snapshot{
		Values:          cloneInts(e.values),
		Pass:            e.tracker.cursor.Pass,
		CompareIndex:    e.tracker.cursor.CompareIndex,
		Counters:        e.counters,
		Statuses:        statuses,
		Phase:           e.tracker.phase,
		Terminal:        e.tracker.phase.Terminal(),
		TerminatedEarly: e.tracker.phase == PhaseEarlyDone,
		LastSwapped:     e.lastSwapped,
		LastCompared:    e.lastCompared,
		PassesCompleted: e.history.Len() - 1,
		Optimized:       e.opts.Optimized,
	}
}

// RunToEnd ticks until the engine is terminal and returns the final outcome.
// It does nothing useful on an engine that requires decisions.
func (e *Engine) RunToEnd() Outcome {
	out := e.Tick()
	for !e.Terminal() && !out.AwaitingDecision {
		out = e.Tick()
	}
	return out
}
