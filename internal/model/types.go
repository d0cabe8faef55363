// Package model defines shared data structures.
package model

import "time"

// Run modes stored in the run log.
const (
	ModeVisualize = "visualize"
	ModePractice  = "practice"
	ModeHeadless  = "run"
)

// Config defines lab settings resolved from file, env and flags.
type Config struct {
	Values    string
	File      string
	Preset    string
	Size      int
	Min       int
	Max       int
	SpeedMs   int
	Optimized bool
	TwoPhase  bool
}

// HistoryFilter narrows the run log.
type HistoryFilter struct {
	Mode  string
	Since *time.Time
	Last  int
}

// RunRecord captures one engine run.
type RunRecord struct {
	ID              string
	StartedAt       time.Time
	EndedAt         time.Time
	Mode            string
	Optimized       bool
	Initial         []int
	Final           []int
	Passes          int
	Comparisons     int
	Swaps           int
	EarlyTerminated bool
	Completed       bool
}

// PracticeResult is the scorecard attached to a practice run.
type PracticeResult struct {
	Score     int
	Mistakes  int
	HintsUsed int
}

// DecisionRow is one stored practice answer.
type DecisionRow struct {
	Seq           int
	QuestionIndex int
	Pass          int
	CompareIndex  int
	UserDecision  bool
	GroundTruth   bool
	IsCorrect     bool
}

// PracticeAggregate joins a practice run with its scorecard.
type PracticeAggregate struct {
	Run    RunRecord
	Result PracticeResult
}
