package stats

import (
	"context"

	"github.com/verte-zerg/sortlab/internal/model"
	"github.com/verte-zerg/sortlab/internal/store"
)

// Report contains precomputed data for history rendering.
type Report struct {
	Runs     []model.RunRecord
	Practice []model.PracticeAggregate
}

// BuildReport loads runs and practice scorecards for the filter.
func BuildReport(ctx context.Context, st *store.Store, filter model.HistoryFilter) (Report, error) {
	runs, err := st.ListRuns(ctx, filter)
	if err != nil {
		return Report{}, err
	}
	practiceFilter := filter
	practiceFilter.Mode = model.ModePractice
	var practice []model.PracticeAggregate
	if filter.Mode == "" || filter.Mode == model.ModePractice {
		practice, err = st.ListPractice(ctx, practiceFilter)
		if err != nil {
			return Report{}, err
		}
	}
	return Report{Runs: runs, Practice: practice}, nil
}
