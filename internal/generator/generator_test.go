package generator

import (
	"math"
	"testing"
)

func TestIntsWithinBounds(t *testing.T) {
	g := NewSeeded(42)
	values := g.Ints(200, -3, 4)
	if len(values) != 200 {
		t.Fatalf("expected 200 values, got %d", len(values))
	}
	seen := map[int]bool{}
	for _, v := range values {
		if v < -3 || v > 4 {
			t.Fatalf("value %d out of range", v)
		}
		seen[v] = true
	}
	if len(seen) != 8 {
		t.Fatalf("expected every value in range to appear, got %v", seen)
	}
}

func TestIntsSingleValueRange(t *testing.T) {
	values := NewSeeded(1).Ints(5, 7, 7)
	for _, v := range values {
		if v != 7 {
			t.Fatalf("expected 7, got %d", v)
		}
	}
}

func TestIntsInvertedRange(t *testing.T) {
	if values := NewSeeded(1).Ints(3, 5, 1); values != nil {
		t.Fatalf("expected nil for inverted range, got %v", values)
	}
}

func TestSeededIsReproducible(t *testing.T) {
	a := NewSeeded(9).Ints(10, 1, 100)
	b := NewSeeded(9).Ints(10, 1, 100)
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("seeded generators diverged at %d: %v vs %v", i, a, b)
		}
	}
}

func TestPresetReturnsCopy(t *testing.T) {
	values, ok := Preset("algorithm")
	if !ok {
		t.Fatalf("expected algorithm preset")
	}
	values[0] = 100
	again, _ := Preset("algorithm")
	if again[0] != 8 {
		t.Fatalf("preset was mutated through returned slice: %v", again)
	}
	if _, ok := Preset("missing"); ok {
		t.Fatalf("expected missing preset to be absent")
	}
}

func TestPresetNamesSorted(t *testing.T) {
	names := PresetNames()
	want := []string{"algorithm", "best", "concept", "practice", "worst"}
	if len(names) != len(want) {
		t.Fatalf("expected %v, got %v", want, names)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, names)
		}
	}
}

func TestIntsFullWidthRange(t *testing.T) {
	g := NewSeeded(5)
	ranges := [][2]int{{-10, math.MaxInt}, {math.MinInt, math.MaxInt}, {math.MinInt, 0}}
	for _, r := range ranges {
		values := g.Ints(50, r[0], r[1])
		if len(values) != 50 {
			t.Fatalf("range %v: expected 50 values, got %d", r, len(values))
		}
		for _, v := range values {
			if v < r[0] || v > r[1] {
				t.Fatalf("range %v: value %d out of range", r, v)
			}
		}
	}
}
