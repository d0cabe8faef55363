package bubblesort

import "fmt"

// HistoryEntry is the array as it stood after a pass boundary.
type HistoryEntry struct {
	Values    []int
	Pass      int
	SwapCount int
	Label     string
}

// History is an append-only log of pass snapshots. Entry 0 is always the
// untouched input.
type History struct {
	entries []HistoryEntry
}

// NewHistory returns a history seeded with the initial array.
func NewHistory(initial []int) *History {
	h := &History{}
	h.Reset(initial)
	return h
}

// Reset discards all entries and seeds a fresh initial entry.
func (h *History) Reset(initial []int) {
	h.entries = []HistoryEntry{{
		Values: cloneInts(initial),
		Pass:   0,
		Label:  "Initial",
	}}
}

func (h *History) record(values []int, pass, swaps int) {
	h.entries = append(h.entries, HistoryEntry{
		Values:    cloneInts(values),
		Pass:      pass,
		SwapCount: swaps,
		Label:     fmt.Sprintf("Pass %d", pass),
	})
}

// Entries returns copies of all entries, oldest first.
func (h *History) Entries() []HistoryEntry {
	out := make([]HistoryEntry, len(h.entries))
	for i, e := range h.entries {
		e.Values = cloneInts(e.Values)
		out[i] = e
	}
	return out
}

// Len returns the number of recorded entries.
func (h *History) Len() int {
	return len(h.entries)
}

func cloneInts(values []int) []int {
	if values == nil {
		return nil
	}
	out := make([]int, len(values))
	copy(out, values)
	return out
}
