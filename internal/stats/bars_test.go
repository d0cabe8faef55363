package stats

import (
	"bytes"
	"strings"
	"testing"

	"github.com/verte-zerg/sortlab/internal/bubblesort"
)

func TestBarLinesScaleAndLabel(t *testing.T) {
	values := []int{-2, 8, 3}
	statuses := []bubblesort.Status{bubblesort.StatusComparing, bubblesort.StatusComparing, bubblesort.StatusSorted}
	lines := BarLines(values, statuses, 20, false)
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}
	if !strings.HasPrefix(lines[0], "0 -2 ◆ ") {
		t.Fatalf("unexpected label: %q", lines[0])
	}
	if !strings.HasPrefix(lines[2], "2  3 ✓ ") {
		t.Fatalf("unexpected label: %q", lines[2])
	}
	short := strings.Count(lines[0], barRune)
	long := strings.Count(lines[1], barRune)
	mid := strings.Count(lines[2], barRune)
	if short != 1 {
		t.Fatalf("expected smallest value to get 1 cell, got %d", short)
	}
	if !(short < mid && mid < long) {
		t.Fatalf("bars not proportional: %d %d %d", short, mid, long)
	}
}

func TestBarLinesEqualValues(t *testing.T) {
	lines := BarLines([]int{4, 4}, nil, 10, false)
	if strings.Count(lines[0], barRune) != strings.Count(lines[1], barRune) {
		t.Fatalf("equal values should draw equal bars: %q", lines)
	}
}

func TestRenderBarsToBufferHasNoColor(t *testing.T) {
	var buf bytes.Buffer
	if err := RenderBars(&buf, []int{2, 1}, nil, 30); err != nil {
		t.Fatalf("render bars: %v", err)
	}
	if strings.Contains(buf.String(), "\x1b[") {
		t.Fatalf("expected plain output for non-terminal writer")
	}
	if strings.Count(buf.String(), "\n") != 2 {
		t.Fatalf("expected two lines, got %q", buf.String())
	}
}
