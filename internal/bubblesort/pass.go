package bubblesort

// Phase is the pass tracker state.
type Phase int

const (
	PhaseInPass Phase = iota
	PhasePassBoundary
	PhaseDone
	PhaseEarlyDone
)

func (p Phase) String() string {
	switch p {
	case PhaseInPass:
		return "in-pass"
	case PhasePassBoundary:
		return "pass-boundary"
	case PhaseDone:
		return "done"
	case PhaseEarlyDone:
		return "early-done"
	default:
		return "unknown"
	}
}

// Terminal reports whether no further comparisons remain.
func (p Phase) Terminal() bool {
	return p == PhaseDone || p == PhaseEarlyDone
}

// PassCursor locates the next comparison. Pass is zero-based while a pass is
// in progress; once terminal it holds the number of completed passes.
type PassCursor struct {
	Pass         int
	CompareIndex int
}

type passTracker struct {
	length int
	cursor PassCursor
	phase  Phase
}

func newPassTracker(length int) passTracker {
	t := passTracker{length: length}
	if length <= 1 {
		t.phase = PhaseDone
	}
	return t
}

// upperBound is the exclusive bound on CompareIndex for the given pass.
func (t *passTracker) upperBound(pass int) int {
	return t.length - pass - 1
}

// advance moves past the comparison at the cursor. It returns true when that
// comparison closed the pass, leaving the tracker at PhasePassBoundary.
func (t *passTracker) advance() bool {
	if t.phase != PhaseInPass {
		return false
	}
	if t.cursor.CompareIndex < t.upperBound(t.cursor.Pass)-1 {
		t.cursor = PassCursor{Pass: t.cursor.Pass, CompareIndex: t.cursor.CompareIndex + 1}
		return false
	}
	t.phase = PhasePassBoundary
	return true
}

// resolveBoundary leaves PhasePassBoundary. A pass with no swaps ends an
// optimized run early unless it was already the final pass.
func (t *passTracker) resolveBoundary(swapsInPass int, optimized bool) Phase {
	if t.phase != PhasePassBoundary {
		return t.phase
	}
	completed := t.cursor.Pass + 1
	switch {
	case t.cursor.Pass >= t.length-2:
		t.phase = PhaseDone
		t.cursor = PassCursor{Pass: completed}
	case optimized && swapsInPass == 0:
		t.phase = PhaseEarlyDone
		t.cursor = PassCursor{Pass: completed}
	default:
		t.phase = PhaseInPass
		t.cursor = PassCursor{Pass: completed}
	}
	return t.phase
}
