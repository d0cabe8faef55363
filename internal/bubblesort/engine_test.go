package bubblesort

import (
	"errors"
	"math"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verte-zerg/sortlab/internal/generator"
)

func newEngine(t *testing.T, values []int, optimized bool) *Engine {
	t.Helper()
	e, err := New(values, Options{Optimized: optimized, Generator: generator.NewSeeded(7)})
	require.NoError(t, err)
	return e
}

func TestCompareStrictAndPure(t *testing.T) {
	in := []int{4, 2, 2}
	swapped, out := Compare(in, 0)
	require.True(t, swapped)
	assert.Equal(t, []int{2, 4, 2}, out)
	assert.Equal(t, []int{4, 2, 2}, in, "input must not be mutated")

	swapped, out = Compare(out, 1)
	assert.False(t, swapped, "ties never swap")
	assert.Equal(t, []int{2, 4, 2}, out)
}

func TestPlainEngineConceptExample(t *testing.T) {
	e := newEngine(t, []int{5, 3, 9, 1, 7, 4}, false)
	out := e.RunToEnd()

	snap := e.Snapshot()
	assert.Equal(t, KindSorted, out.Kind)
	assert.Equal(t, []int{1, 3, 4, 5, 7, 9}, snap.Values)
	assert.Equal(t, 15, snap.Counters.TotalComparisons)
	assert.Equal(t, 15, snap.Counters.TotalSteps)
	assert.Equal(t, 8, snap.Counters.TotalSwaps)
	assert.Equal(t, 5, snap.PassesCompleted)
	assert.Equal(t, 5, snap.Pass)
	assert.True(t, snap.Terminal)
	assert.False(t, snap.TerminatedEarly)
}

func TestOptimizedStopsAfterCleanPass(t *testing.T) {
	e := newEngine(t, []int{1, 2, 3, 4, 5}, true)
	out := e.RunToEnd()

	snap := e.Snapshot()
	assert.Equal(t, KindEarlyTerminated, out.Kind)
	assert.Equal(t, 1, snap.PassesCompleted)
	assert.Equal(t, 0, snap.Counters.TotalSwaps)
	assert.Equal(t, 4, snap.Counters.TotalComparisons)
	assert.True(t, snap.TerminatedEarly)
	require.NotNil(t, out.PassCompleted)
	assert.Equal(t, PassSummary{Pass: 1, Swaps: 0}, *out.PassCompleted)
}

func TestOptimizedFinalPassIsSortedNotEarly(t *testing.T) {
	e := newEngine(t, []int{1, 2}, true)
	out := e.RunToEnd()
	assert.Equal(t, KindSorted, out.Kind)
	assert.False(t, e.Snapshot().TerminatedEarly)
}

func TestFirstPassOfWorkedExample(t *testing.T) {
	e := newEngine(t, []int{8, 7, -2, 4, 1}, false)
	var out Outcome
	for i := 0; i < 4; i++ {
		out = e.Tick()
	}
	assert.Equal(t, []int{7, -2, 4, 1, 8}, e.Values())
	assert.Equal(t, KindPassComplete, out.Kind)
	assert.True(t, out.Swapped)
	require.NotNil(t, out.PassCompleted)
	assert.Equal(t, PassSummary{Pass: 1, Swaps: 4}, *out.PassCompleted)
	assert.Equal(t, PassCursor{Pass: 1, CompareIndex: 0}, e.Cursor())
	assert.Equal(t, 0, e.Snapshot().Counters.SwapsInCurrentPass)
}

func TestTickOutcomeKinds(t *testing.T) {
	e := newEngine(t, []int{3, 1, 2}, false)

	out := e.Tick()
	assert.Equal(t, KindSwapped, out.Kind)
	assert.Equal(t, 0, out.Left)
	assert.Equal(t, 1, out.Right)

	out = e.Tick()
	assert.Equal(t, KindPassComplete, out.Kind)
	assert.Equal(t, []int{1, 2, 3}, e.Values())

	out = e.Tick()
	assert.Equal(t, KindSorted, out.Kind)
	assert.False(t, out.Swapped)
}

func TestComparisonFormulaAndPassCount(t *testing.T) {
	gen := generator.NewSeeded(11)
	for n := 1; n <= 12; n++ {
		values := gen.Ints(n, -20, 20)
		e := newEngine(t, values, false)
		e.RunToEnd()
		snap := e.Snapshot()

		want := append([]int(nil), values...)
		sort.Ints(want)
		assert.Equal(t, want, snap.Values, "n=%d", n)
		assert.Equal(t, n*(n-1)/2, snap.Counters.TotalComparisons, "n=%d", n)
		assert.Equal(t, n-1, snap.PassesCompleted, "n=%d", n)
	}
}

func TestOptimizedPassBound(t *testing.T) {
	gen := generator.NewSeeded(5)
	for i := 0; i < 50; i++ {
		n := 2 + i%9
		values := gen.Ints(n, 0, 6)
		e := newEngine(t, values, true)
		e.RunToEnd()
		snap := e.Snapshot()

		assert.True(t, sort.IntsAreSorted(snap.Values), "values %v", values)
		assert.LessOrEqual(t, snap.PassesCompleted, n-1)
		assert.LessOrEqual(t, snap.Counters.TotalComparisons, n*(n-1)/2)
	}
}

func TestStabilityOfEqualValues(t *testing.T) {
	values := []int{3, 1, 3, 2, 1, 3, 2}
	tags := []int{0, 1, 2, 3, 4, 5, 6}
	e := newEngine(t, values, false)
	for !e.Terminal() {
		out := e.Tick()
		if out.Swapped {
			tags[out.Left], tags[out.Left+1] = tags[out.Left+1], tags[out.Left]
		}
	}

	sorted := e.Values()
	lastTag := map[int]int{}
	for i, v := range sorted {
		if prev, ok := lastTag[v]; ok {
			assert.Less(t, prev, tags[i], "equal value %d reordered", v)
		}
		lastTag[v] = tags[i]
	}
}

func TestTickOnTerminalIsNoop(t *testing.T) {
	e := newEngine(t, []int{2, 1}, false)
	e.RunToEnd()
	before := e.Snapshot()

	out := e.Tick()
	assert.Equal(t, KindSorted, out.Kind)
	assert.Equal(t, -1, out.Left)
	assert.Nil(t, out.PassCompleted)
	assert.Equal(t, before, e.Snapshot())
}

func TestSingleElementIsImmediatelyDone(t *testing.T) {
	e := newEngine(t, []int{42}, false)
	assert.True(t, e.Terminal())

	out := e.Tick()
	assert.Equal(t, KindSorted, out.Kind)
	snap := e.Snapshot()
	assert.Equal(t, Counters{}, snap.Counters)
	assert.Equal(t, 0, snap.PassesCompleted)
	assert.Equal(t, []Status{StatusSorted}, snap.Statuses)
}

func TestNewRejectsEmptyInput(t *testing.T) {
	_, err := New(nil, Options{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidInput))
}

func TestSnapshotIsIdempotentAndDetached(t *testing.T) {
	e := newEngine(t, []int{4, 3, 2, 1}, false)
	e.Tick()

	a := e.Snapshot()
	b := e.Snapshot()
	assert.Equal(t, a, b)

	a.Values[0] = 99
	a.Statuses[0] = StatusSorted
	assert.Equal(t, b, e.Snapshot())
}

func TestResetRestoresInitialState(t *testing.T) {
	initial := []int{9, 4, 7, 1}
	e := newEngine(t, initial, false)
	for i := 0; i < 4; i++ {
		e.Tick()
	}
	e.Reset()

	snap := e.Snapshot()
	assert.Equal(t, initial, snap.Values)
	assert.Equal(t, Counters{}, snap.Counters)
	assert.Equal(t, 0, snap.Pass)
	assert.Equal(t, 0, snap.CompareIndex)
	assert.False(t, snap.Terminal)
	assert.Equal(t, -1, snap.LastCompared)
	assert.Len(t, e.History(), 1)
}

func TestRandomizeThenResetKeepsRandomizedArray(t *testing.T) {
	original := []int{1, 1, 1}
	e := newEngine(t, original, false)
	require.NoError(t, e.Randomize(8, 1, 12))
	randomized := e.Values()
	require.Len(t, randomized, 8)
	for _, v := range randomized {
		assert.GreaterOrEqual(t, v, 1)
		assert.LessOrEqual(t, v, 12)
	}

	e.Tick()
	e.Tick()
	e.Reset()
	assert.Equal(t, randomized, e.Values())
	assert.Equal(t, randomized, e.Initial())
}

func TestRandomizeRejectsBadBounds(t *testing.T) {
	e := newEngine(t, []int{2, 1}, false)

	err := e.Randomize(5, 10, 1)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidInput))

	err = e.Randomize(0, 1, 10)
	assert.True(t, errors.Is(err, ErrInvalidInput))

	assert.Equal(t, []int{2, 1}, e.Values(), "failed randomize must not touch state")
}

func TestRandomizeAcceptsWideRange(t *testing.T) {
	e := newEngine(t, []int{2, 1}, false)

	require.NoError(t, e.Randomize(4, -10, math.MaxInt))
	values := e.Values()
	require.Len(t, values, 4)
	for _, v := range values {
		assert.GreaterOrEqual(t, v, -10)
	}

	require.NoError(t, e.Randomize(6, math.MinInt, math.MaxInt))
	e.RunToEnd()
	assert.True(t, sort.IntsAreSorted(e.Values()))
}

func TestHistoryRecordsPassBoundaries(t *testing.T) {
	e := newEngine(t, []int{8, 7, -2, 4, 1}, false)
	e.RunToEnd()
	entries := e.History()

	require.Len(t, entries, 5)
	assert.Equal(t, "Initial", entries[0].Label)
	assert.Equal(t, []int{8, 7, -2, 4, 1}, entries[0].Values)
	assert.Equal(t, 0, entries[0].Pass)
	assert.Equal(t, "Pass 1", entries[1].Label)
	assert.Equal(t, []int{7, -2, 4, 1, 8}, entries[1].Values)
	assert.Equal(t, 4, entries[1].SwapCount)
	assert.Equal(t, []int{-2, 1, 4, 7, 8}, entries[4].Values)

	entries[1].Values[0] = 100
	assert.Equal(t, 7, e.History()[1].Values[0])
}

func TestElementStatuses(t *testing.T) {
	e := newEngine(t, []int{5, 3, 9, 1}, false)
	assert.Equal(t, []Status{StatusComparing, StatusComparing, StatusUnsorted, StatusUnsorted}, e.Snapshot().Statuses)

	e.Tick() // 5 > 3, swap
	assert.Equal(t, []Status{StatusSwapping, StatusSwapping, StatusComparing, StatusUnsorted}, e.Snapshot().Statuses)

	e.Tick() // 5 < 9
	assert.Equal(t, []Status{StatusUnsorted, StatusUnsorted, StatusComparing, StatusComparing}, e.Snapshot().Statuses)

	e.Tick() // 9 > 1, pass ends
	snap := e.Snapshot()
	assert.Equal(t, StatusSorted, snap.Statuses[3])
	assert.Equal(t, StatusSwapping, snap.Statuses[2])

	e.RunToEnd()
	for i, s := range e.Snapshot().Statuses {
		assert.Equal(t, StatusSorted, s, "index %d", i)
	}
}

func TestRequireDecisionBlocksTick(t *testing.T) {
	e, err := New([]int{2, 1, 3}, Options{RequireDecision: true})
	require.NoError(t, err)

	out := e.Tick()
	assert.True(t, out.AwaitingDecision)
	assert.Equal(t, KindComparing, out.Kind)
	assert.Equal(t, Counters{}, e.Snapshot().Counters)
	assert.Equal(t, []int{2, 1, 3}, e.Values())
}
