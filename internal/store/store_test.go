package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/verte-zerg/sortlab/internal/model"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	st, err := Open(filepath.Join(t.TempDir(), "sortlab.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		_ = st.Close()
	})
	return st
}

func TestInsertAndListRuns(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	base := time.Unix(0, 0).UTC()
	for i := 0; i < 3; i++ {
		mode := model.ModeVisualize
		if i == 1 {
			mode = model.ModeHeadless
		}
		run := model.RunRecord{
			StartedAt:   base.Add(time.Duration(i) * time.Minute),
			EndedAt:     base.Add(time.Duration(i)*time.Minute + 10*time.Second),
			Mode:        mode,
			Optimized:   i == 2,
			Initial:     []int{8, 7, -2, 4, 1},
			Final:       []int{-2, 1, 4, 7, 8},
			Passes:      4,
			Comparisons: 10,
			Swaps:       8,
			Completed:   true,
		}
		id, err := st.InsertRun(ctx, run)
		if err != nil {
			t.Fatalf("insert run: %v", err)
		}
		if id == "" {
			t.Fatalf("expected generated run id")
		}
	}

	runs, err := st.ListRuns(ctx, model.HistoryFilter{})
	if err != nil {
		t.Fatalf("list runs: %v", err)
	}
	if len(runs) != 3 {
		t.Fatalf("expected 3 runs, got %d", len(runs))
	}
	if got := runs[0].Initial; len(got) != 5 || got[2] != -2 {
		t.Fatalf("unexpected initial array: %v", got)
	}
	if !runs[2].Optimized || runs[0].Optimized {
		t.Fatalf("optimized flag not round-tripped: %+v", runs)
	}

	visual, err := st.ListRuns(ctx, model.HistoryFilter{Mode: model.ModeVisualize, Last: 1})
	if err != nil {
		t.Fatalf("list filtered runs: %v", err)
	}
	if len(visual) != 1 || !visual[0].EndedAt.Equal(base.Add(2*time.Minute+10*time.Second)) {
		t.Fatalf("unexpected filtered runs: %+v", visual)
	}
}

func TestInsertPracticeWithDecisions(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	run := model.RunRecord{
		StartedAt:   time.Unix(100, 0).UTC(),
		EndedAt:     time.Unix(160, 0).UTC(),
		Mode:        model.ModeVisualize,
		Initial:     []int{2, 1},
		Final:       []int{1, 2},
		Passes:      1,
		Comparisons: 1,
		Swaps:       1,
		Completed:   true,
	}
	decisions := []model.DecisionRow{
		{Seq: 0, QuestionIndex: 0, UserDecision: false, GroundTruth: true, IsCorrect: false},
		{Seq: 1, QuestionIndex: 0, UserDecision: true, GroundTruth: true, IsCorrect: true},
	}
	id, err := st.InsertPractice(ctx, run, model.PracticeResult{Score: 1, Mistakes: 1, HintsUsed: 2}, decisions)
	if err != nil {
		t.Fatalf("insert practice: %v", err)
	}

	practice, err := st.ListPractice(ctx, model.HistoryFilter{})
	if err != nil {
		t.Fatalf("list practice: %v", err)
	}
	if len(practice) != 1 {
		t.Fatalf("expected 1 practice run, got %d", len(practice))
	}
	got := practice[0]
	if got.Run.ID != id || got.Run.Mode != model.ModePractice {
		t.Fatalf("unexpected practice run: %+v", got.Run)
	}
	if got.Result != (model.PracticeResult{Score: 1, Mistakes: 1, HintsUsed: 2}) {
		t.Fatalf("unexpected scorecard: %+v", got.Result)
	}

	rows, err := st.ListDecisions(ctx, id)
	if err != nil {
		t.Fatalf("list decisions: %v", err)
	}
	if len(rows) != 2 || rows[0].IsCorrect || !rows[1].IsCorrect || !rows[1].UserDecision {
		t.Fatalf("unexpected decisions: %+v", rows)
	}
}

func TestSplitIntsRejectsGarbage(t *testing.T) {
	if _, err := splitInts("1,x,3"); err == nil {
		t.Fatalf("expected error for corrupt column")
	}
	values, err := splitInts("")
	if err != nil || values != nil {
		t.Fatalf("expected nil for empty column, got %v %v", values, err)
	}
}
