package stats

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/verte-zerg/sortlab/internal/bubblesort"
)

// HistoryHeaders are the columns of the pass history table.
var HistoryHeaders = []string{"Step", "Array", "Swaps", "Sorted"}

// HistoryRows formats pass snapshots. The suffix already in place after each
// pass is wrapped in brackets.
func HistoryRows(entries []bubblesort.HistoryEntry) [][]string {
	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		sorted := sortedSuffix(len(e.Values), e.Pass)
		rows = append(rows, []string{
			e.Label,
			formatArray(e.Values, sorted),
			strconv.Itoa(e.SwapCount),
			fmt.Sprintf("%d/%d", sorted, len(e.Values)),
		})
	}
	return rows
}

// RenderHistory prints the pass history table.
func RenderHistory(w io.Writer, entries []bubblesort.HistoryEntry) error {
	if len(entries) == 0 {
		_, err := fmt.Fprintln(w, "No passes recorded.")
		return err
	}
	if _, err := fmt.Fprintln(w, "Pass History"); err != nil {
		return err
	}
	for _, line := range formatTable(HistoryHeaders, HistoryRows(entries), map[int]bool{2: true, 3: true}) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, "")
	return err
}

// sortedSuffix is the count of elements fixed in place after pass passes.
// After length-1 passes the remaining head element is in place as well.
func sortedSuffix(length, pass int) int {
	if pass <= 0 {
		return 0
	}
	if pass >= length-1 {
		return length
	}
	return pass
}

func formatArray(values []int, sorted int) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = strconv.Itoa(v)
	}
	split := len(values) - sorted
	if sorted <= 0 {
		return strings.Join(parts, " ")
	}
	head := strings.Join(parts[:split], " ")
	tail := "[" + strings.Join(parts[split:], " ") + "]"
	if head == "" {
		return tail
	}
	return head + " " + tail
}
