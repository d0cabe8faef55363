package stats

import "testing"

func TestFormatTableAlignsColumns(t *testing.T) {
	headers := []string{"Step", "Array", "Swaps"}
	rows := [][]string{
		{"Initial", "8 7 -2", "0"},
		{"Pass 1", "7 -2 [8]", "12"},
	}
	rightAlign := map[int]bool{2: true}

	lines := formatTable(headers, rows, rightAlign)
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}
	if lines[0] != "Step     Array     Swaps" {
		t.Fatalf("unexpected header line: %q", lines[0])
	}
	if lines[1] != "Initial  8 7 -2        0" {
		t.Fatalf("unexpected row line: %q", lines[1])
	}
	if lines[2] != "Pass 1   7 -2 [8]     12" {
		t.Fatalf("unexpected row line: %q", lines[2])
	}
}

func TestFormatTableEmpty(t *testing.T) {
	if lines := formatTable(nil, nil, nil); lines != nil {
		t.Fatalf("expected nil, got %v", lines)
	}
}
