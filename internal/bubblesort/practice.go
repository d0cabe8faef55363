package bubblesort

import "fmt"

// DecisionRecord is one answer to "should these two be swapped?".
// QuestionIndex is the comparison number, so retries share an index.
type DecisionRecord struct {
	QuestionIndex int
	Pass          int
	CompareIndex  int
	LeftValue     int
	RightValue    int
	UserDecision  bool
	GroundTruth   bool
	IsCorrect     bool
	Finished      bool
	Outcome       Outcome
}

// PracticeSummary is the scorecard of a practice run.
type PracticeSummary struct {
	Score      int
	Mistakes   int
	TotalSwaps int
	Passes     int
	HintsUsed  int
	Accuracy   float64
	Finished   bool
}

// Practice wraps an engine so each comparison needs a correct decision
// before the array moves.
type Practice struct {
	engine    *Engine
	score     int
	mistakes  int
	hintUsed  bool
	hintsUsed int
	decisions []DecisionRecord
}

// NewPractice builds a practice run. RequireDecision is always enabled.
func NewPractice(values []int, opts Options) (*Practice, error) {
	opts.RequireDecision = true
	engine, err := New(values, opts)
	if err != nil {
		return nil, err
	}
	return &Practice{engine: engine}, nil
}

// SubmitDecision checks shouldSwap against the comparison under the cursor.
// A correct answer scores and advances the engine; a wrong one only counts a
// mistake and the same comparison must be answered again.
func (p *Practice) SubmitDecision(shouldSwap bool) DecisionRecord {
	if p.engine.Terminal() {
		return DecisionRecord{
			QuestionIndex: p.engine.counters.TotalComparisons,
			Pass:          p.engine.tracker.cursor.Pass,
			CompareIndex:  -1,
			UserDecision:  shouldSwap,
			Finished:      true,
			Outcome:       p.engine.terminalOutcome(),
		}
	}
	cursor := p.engine.Cursor()
	values := p.engine.values
	truth, _ := Compare(values, cursor.CompareIndex)
	rec := DecisionRecord{
		QuestionIndex: p.engine.counters.TotalComparisons,
		Pass:          cursor.Pass,
		CompareIndex:  cursor.CompareIndex,
		LeftValue:     values[cursor.CompareIndex],
		RightValue:    values[cursor.CompareIndex+1],
		UserDecision:  shouldSwap,
		GroundTruth:   truth,
		IsCorrect:     shouldSwap == truth,
	}
	if rec.IsCorrect {
		p.score++
		rec.Outcome = p.engine.step()
		rec.Finished = p.engine.Terminal()
	} else {
		p.mistakes++
		rec.Outcome = Outcome{Kind: KindComparing, Left: cursor.CompareIndex, Right: cursor.CompareIndex + 1, AwaitingDecision: true}
	}
	p.decisions = append(p.decisions, rec)
	return rec
}

// UseHint describes the pending comparison without scoring it.
func (p *Practice) UseHint() string {
	p.hintUsed = true
	p.hintsUsed++
	if p.engine.Terminal() {
		return "The array is sorted. Nothing left to compare."
	}
	cursor := p.engine.Cursor()
	left := p.engine.values[cursor.CompareIndex]
	right := p.engine.values[cursor.CompareIndex+1]
	return fmt.Sprintf(
		"Pass %d: compare %d (position %d) with %d (position %d). Swap only when the left value is greater than the right value.",
		cursor.Pass+1, left, cursor.CompareIndex+1, right, cursor.CompareIndex+2,
	)
}

// HintUsed reports whether any hint was requested in this run.
func (p *Practice) HintUsed() bool {
	return p.hintUsed
}

// Score returns the number of correct decisions.
func (p *Practice) Score() int {
	return p.score
}

// Mistakes returns the number of wrong decisions.
func (p *Practice) Mistakes() int {
	return p.mistakes
}

// Decisions returns every decision in submission order.
func (p *Practice) Decisions() []DecisionRecord {
	out := make([]DecisionRecord, len(p.decisions))
	copy(out, p.decisions)
	return out
}

// Snapshot returns the underlying engine state.
func (p *Practice) Snapshot() Snapshot {
	return p.engine.Snapshot()
}

// History returns the pass snapshots of the underlying engine.
func (p *Practice) History() []HistoryEntry {
	return p.engine.History()
}

// Finished reports whether every comparison has been answered.
func (p *Practice) Finished() bool {
	return p.engine.Terminal()
}

// Initial returns the array the practice started from.
func (p *Practice) Initial() []int {
	return p.engine.Initial()
}

// Restart clears the score and resets the engine to its initial array.
func (p *Practice) Restart() {
	p.engine.Reset()
	p.score = 0
	p.mistakes = 0
	p.hintUsed = false
	p.hintsUsed = 0
	p.decisions = nil
}

// Summary returns the current scorecard.
func (p *Practice) Summary() PracticeSummary {
	snap := p.engine.Snapshot()
	s := PracticeSummary{
		Score:      p.score,
		Mistakes:   p.mistakes,
		TotalSwaps: snap.Counters.TotalSwaps,
		Passes:     snap.PassesCompleted,
		HintsUsed:  p.hintsUsed,
		Finished:   snap.Terminal,
	}
	if total := p.score + p.mistakes; total > 0 {
		s.Accuracy = float64(p.score) / float64(total)
	}
	return s
}
