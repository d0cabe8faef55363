package bubblesort

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPracticeWrongDecisionChangesNothing(t *testing.T) {
	p, err := NewPractice([]int{5, 8, 3, 9, 1, 7}, Options{})
	require.NoError(t, err)
	before := p.Snapshot()

	rec := p.SubmitDecision(true)
	assert.False(t, rec.IsCorrect)
	assert.False(t, rec.GroundTruth)
	assert.Equal(t, 5, rec.LeftValue)
	assert.Equal(t, 8, rec.RightValue)
	assert.Equal(t, 1, p.Mistakes())
	assert.Equal(t, 0, p.Score())
	assert.Equal(t, before, p.Snapshot())

	rec = p.SubmitDecision(false)
	assert.True(t, rec.IsCorrect)
	assert.Equal(t, 0, rec.QuestionIndex)
	assert.Equal(t, 1, p.Score())
	assert.Equal(t, 1, p.Snapshot().CompareIndex)
	assert.Equal(t, []int{5, 8, 3, 9, 1, 7}, p.Snapshot().Values)
}

func TestPracticeRetrySharesQuestionIndex(t *testing.T) {
	p, err := NewPractice([]int{2, 1}, Options{})
	require.NoError(t, err)

	first := p.SubmitDecision(false)
	second := p.SubmitDecision(true)
	assert.Equal(t, first.QuestionIndex, second.QuestionIndex)
	assert.True(t, second.IsCorrect)
	assert.True(t, second.Finished)
	assert.Equal(t, KindSorted, second.Outcome.Kind)
	assert.Len(t, p.Decisions(), 2)
}

func TestPracticeFullRunWithCorrectAnswers(t *testing.T) {
	p, err := NewPractice([]int{5, 8, 3, 9, 1, 7}, Options{})
	require.NoError(t, err)

	for !p.Finished() {
		snap := p.Snapshot()
		truth := snap.Values[snap.CompareIndex] > snap.Values[snap.CompareIndex+1]
		rec := p.SubmitDecision(truth)
		require.True(t, rec.IsCorrect)
	}

	summary := p.Summary()
	assert.True(t, summary.Finished)
	assert.Equal(t, 15, summary.Score)
	assert.Equal(t, 0, summary.Mistakes)
	assert.Equal(t, 5, summary.Passes)
	assert.InDelta(t, 1.0, summary.Accuracy, 1e-9)
	assert.Equal(t, []int{1, 3, 5, 7, 8, 9}, p.Snapshot().Values)
}

func TestPracticeOptimizedEndsEarly(t *testing.T) {
	p, err := NewPractice([]int{1, 2, 3}, Options{Optimized: true})
	require.NoError(t, err)

	p.SubmitDecision(false)
	rec := p.SubmitDecision(false)
	assert.True(t, rec.Finished)
	assert.Equal(t, KindEarlyTerminated, rec.Outcome.Kind)
	assert.Equal(t, 1, p.Summary().Passes)
}

func TestPracticeSubmitAfterFinish(t *testing.T) {
	p, err := NewPractice([]int{1, 2}, Options{})
	require.NoError(t, err)
	p.SubmitDecision(false)
	require.True(t, p.Finished())

	rec := p.SubmitDecision(true)
	assert.True(t, rec.Finished)
	assert.False(t, rec.IsCorrect)
	assert.Equal(t, 1, p.Score())
	assert.Equal(t, 0, p.Mistakes())
	assert.Len(t, p.Decisions(), 1)
}

func TestPracticeHintIsInformational(t *testing.T) {
	p, err := NewPractice([]int{5, 8, 3}, Options{})
	require.NoError(t, err)
	before := p.Snapshot()

	hint := p.UseHint()
	assert.True(t, strings.Contains(hint, "5"))
	assert.True(t, strings.Contains(hint, "8"))
	assert.True(t, p.HintUsed())
	assert.Equal(t, 0, p.Score())
	assert.Equal(t, 0, p.Mistakes())
	assert.Equal(t, before, p.Snapshot())
	assert.Equal(t, 1, p.Summary().HintsUsed)
}

func TestPracticeRestart(t *testing.T) {
	p, err := NewPractice([]int{3, 2, 1}, Options{})
	require.NoError(t, err)
	p.SubmitDecision(true)
	p.SubmitDecision(false)
	p.UseHint()

	p.Restart()
	assert.Equal(t, 0, p.Score())
	assert.Equal(t, 0, p.Mistakes())
	assert.False(t, p.HintUsed())
	assert.Empty(t, p.Decisions())
	assert.Equal(t, []int{3, 2, 1}, p.Snapshot().Values)
}

func TestNewPracticeRejectsEmpty(t *testing.T) {
	_, err := NewPractice([]int{}, Options{})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
