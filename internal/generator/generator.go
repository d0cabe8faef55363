// Package generator builds input arrays for the sorting lab.
package generator

import (
	"math"
	"math/rand"
	"sort"
	"time"
)

// Generator produces uniformly random integer arrays.
type Generator struct {
	rnd *rand.Rand
}

// New returns a Generator seeded with the current time.
func New() *Generator {
	return NewSeeded(time.Now().UnixNano())
}

// NewSeeded returns a Generator with a fixed seed, for reproducible runs.
func NewSeeded(seed int64) *Generator {
	return &Generator{rnd: rand.New(rand.NewSource(seed))}
}

// Ints returns length values drawn uniformly from [lo, hi].
// Callers validate the bounds; lo > hi or length < 0 yields nil.
func (g *Generator) Ints(length, lo, hi int) []int {
	if length < 0 || lo > hi {
		return nil
	}
	// Offsets from lo are computed in uint64 so ranges wider than MaxInt
	// still draw uniformly.
	span := uint64(hi) - uint64(lo)
	out := make([]int, length)
	for i := range out {
		out[i] = int(uint64(lo) + g.offset(span))
	}
	return out
}

// offset returns a uniform value in [0, span].
func (g *Generator) offset(span uint64) uint64 {
	switch {
	case span == math.MaxUint64:
		return g.rnd.Uint64()
	case span < math.MaxInt64:
		return uint64(g.rnd.Int63n(int64(span + 1)))
	}
	n := span + 1
	for {
		if v := g.rnd.Uint64(); v < n {
			return v
		}
	}
}

// Worked arrays used by the lessons.
var presets = map[string][]int{
	"concept":   {5, 3, 9, 1, 7, 4},
	"algorithm": {8, 7, -2, 4, 1},
	"practice":  {5, 8, 3, 9, 1, 7},
	"best":      {1, 2, 3, 4, 5},
	"worst":     {5, 4, 3, 2, 1},
}

// Preset returns a copy of the named example array.
func Preset(name string) ([]int, bool) {
	values, ok := presets[name]
	if !ok {
		return nil, false
	}
	return append([]int(nil), values...), true
}

// PresetNames lists preset names in alphabetical order.
func PresetNames() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
