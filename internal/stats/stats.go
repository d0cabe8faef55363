package stats

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/verte-zerg/sortlab/internal/bubblesort"
	"github.com/verte-zerg/sortlab/internal/model"
)

const sparkChars = " .:-=+*#%@"

var printer = message.NewPrinter(language.English)

// PracticeAccuracy returns the share of correct decisions in [0, 1].
func PracticeAccuracy(score, mistakes int) float64 {
	total := score + mistakes
	if total == 0 {
		return 0
	}
	return float64(score) / float64(total)
}

// MovingAverage computes a rolling mean over the provided window size.
func MovingAverage(values []float64, window int) []float64 {
	out := make([]float64, len(values))
	if window <= 1 {
		copy(out, values)
		return out
	}
	var sum float64
	for i, v := range values {
		sum += v
		if i >= window {
			sum -= values[i-window]
		}
		out[i] = sum / float64(min(i+1, window))
	}
	return out
}

// Sparkline renders a single-line ASCII sparkline for the values.
func Sparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}
	minVal, maxVal := values[0], values[0]
	for _, v := range values[1:] {
		minVal = math.Min(minVal, v)
		maxVal = math.Max(maxVal, v)
	}
	if math.Abs(maxVal-minVal) < 1e-9 {
		return strings.Repeat(string(sparkChars[len(sparkChars)/2]), len(values))
	}
	var b strings.Builder
	for _, v := range values {
		pos := (v - minVal) / (maxVal - minVal)
		idx := int(math.Round(pos * float64(len(sparkChars)-1)))
		idx = max(0, min(idx, len(sparkChars)-1))
		b.WriteByte(sparkChars[idx])
	}
	return b.String()
}

// ResultLabel names how a run ended.
func ResultLabel(snap bubblesort.Snapshot) string {
	switch {
	case snap.TerminatedEarly:
		return "early exit"
	case snap.Terminal:
		return "sorted"
	default:
		return "in progress"
	}
}

// RenderRunResult prints the counters of a single run.
func RenderRunResult(w io.Writer, snap bubblesort.Snapshot) error {
	variant := "plain"
	if snap.Optimized {
		variant = "optimized"
	}
	lines := []string{
		fmt.Sprintf("Variant: %s", variant),
		fmt.Sprintf("Result: %s", ResultLabel(snap)),
		fmt.Sprintf("Array: %s", formatArray(snap.Values, 0)),
		fmt.Sprintf("Passes: %d", snap.PassesCompleted),
		fmt.Sprintf("Comparisons: %d", snap.Counters.TotalComparisons),
		fmt.Sprintf("Swaps: %d", snap.Counters.TotalSwaps),
	}
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, "")
	return err
}

// RenderComparison prints plain and optimized results side by side.
func RenderComparison(w io.Writer, plain, optimized bubblesort.Snapshot) error {
	if _, err := fmt.Fprintln(w, "Plain vs Optimized"); err != nil {
		return err
	}
	headers := []string{"Variant", "Passes", "Comparisons", "Swaps", "Result"}
	rows := [][]string{
		comparisonRow("plain", plain),
		comparisonRow("optimized", optimized),
	}
	for _, line := range formatTable(headers, rows, map[int]bool{1: true, 2: true, 3: true}) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	saved := plain.Counters.TotalComparisons - optimized.Counters.TotalComparisons
	if _, err := fmt.Fprintf(w, "Comparisons saved: %d\n", saved); err != nil {
		return err
	}
	_, err := fmt.Fprintln(w, "")
	return err
}

func comparisonRow(name string, snap bubblesort.Snapshot) []string {
	return []string{
		name,
		strconv.Itoa(snap.PassesCompleted),
		strconv.Itoa(snap.Counters.TotalComparisons),
		strconv.Itoa(snap.Counters.TotalSwaps),
		ResultLabel(snap),
	}
}

// RenderSummary prints totals over the run log.
func RenderSummary(w io.Writer, runs []model.RunRecord) error {
	if len(runs) == 0 {
		_, err := fmt.Fprintln(w, "No runs found.")
		return err
	}
	var comparisons, swaps, early, completed int
	for _, r := range runs {
		comparisons += r.Comparisons
		swaps += r.Swaps
		if r.EarlyTerminated {
			early++
		}
		if r.Completed {
			completed++
		}
	}
	count := float64(len(runs))
	lines := []string{
		"Summary",
		printer.Sprintf("Runs: %d (%d completed)", len(runs), completed),
		printer.Sprintf("Total comparisons: %d", comparisons),
		printer.Sprintf("Total swaps: %d", swaps),
		printer.Sprintf("Avg comparisons: %.2f", float64(comparisons)/count),
		printer.Sprintf("Avg swaps: %.2f", float64(swaps)/count),
		printer.Sprintf("Early exits: %d", early),
		"",
	}
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// RenderPracticeSummary prints totals over stored practice runs.
func RenderPracticeSummary(w io.Writer, practice []model.PracticeAggregate) error {
	if len(practice) == 0 {
		_, err := fmt.Fprintln(w, "No practice runs found.")
		return err
	}
	var score, mistakes, hints int
	accs := make([]float64, len(practice))
	for i, p := range practice {
		score += p.Result.Score
		mistakes += p.Result.Mistakes
		hints += p.Result.HintsUsed
		accs[i] = PracticeAccuracy(p.Result.Score, p.Result.Mistakes) * 100
	}
	lines := []string{
		"Practice",
		printer.Sprintf("Sessions: %d", len(practice)),
		printer.Sprintf("Correct decisions: %d", score),
		printer.Sprintf("Mistakes: %d", mistakes),
		printer.Sprintf("Hints used: %d", hints),
		fmt.Sprintf("Accuracy: %.1f%%", PracticeAccuracy(score, mistakes)*100),
		fmt.Sprintf("Trend: %s", Sparkline(MovingAverage(accs, 3))),
		"",
	}
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}
