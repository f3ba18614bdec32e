package ordering

import (
	"fmt"
	"slices"
)

// Costed is implemented by the pointer form of every canonical shape.
type Costed[T any] interface {
	// Compare is a total order over distinct contents.
	Compare(T) int
	// Diff is the weighted number of fields changed when writing the
	// receiver after prev.
	Diff(prev T) int
	// Cost is Diff against the zero state.
	Cost() int
}

// Mode selects the ordering algorithm.
type Mode int

const (
	// ModeAuto uses search sort up to SearchLimit items, quick sort above.
	ModeAuto Mode = iota
	ModeQuick
	ModeSearch
	// ModeNone keeps insertion order.
	ModeNone
)

// SearchLimit is the largest input ModeAuto hands to the O(n²) search.
const SearchLimit = 10000

var modeNames = [...]string{
	ModeAuto:   "auto",
	ModeQuick:  "quick",
	ModeSearch: "search",
	ModeNone:   "none",
}

// String returns the mode name.
func (m Mode) String() string {
	if m < 0 || int(m) >= len(modeNames) {
		return fmt.Sprintf("mode(%d)", int(m))
	}
	return modeNames[m]
}

// ParseMode maps a mode name to its Mode. The empty string is ModeAuto.
func ParseMode(s string) (Mode, error) {
	if s == "" {
		return ModeAuto, nil
	}
	for m, name := range modeNames {
		if name == s {
			return Mode(m), nil
		}
	}
	return ModeAuto, fmt.Errorf("invalid sort mode: %q (must be one of: auto, quick, search, none)", s)
}

// Resolve returns the concrete algorithm m uses for n items.
func (m Mode) Resolve(n int) Mode {
	if m != ModeAuto {
		return m
	}
	if n > SearchLimit {
		return ModeQuick
	}
	return ModeSearch
}

// Sort returns items reordered by mode. The input is not modified.
func Sort[T Costed[T]](items []T, mode Mode) []T {
	return apply(items, Permutation(items, mode))
}

// Permutation returns the order chosen by mode as indices into items.
func Permutation[T Costed[T]](items []T, mode Mode) []int {
	switch mode.Resolve(len(items)) {
	case ModeQuick:
		return quickOrder(items)
	case ModeSearch:
		return searchOrder(items)
	}
	return identity(len(items))
}

// TotalCost returns the modal cost of writing items in order.
func TotalCost[T Costed[T]](items []T) int {
	total := 0
	for i, it := range items {
		if i == 0 {
			total += it.Cost()
			continue
		}
		total += it.Diff(items[i-1])
	}
	return total
}

func identity(n int) []int {
	perm := make([]int, n)
	for i := range perm {
		perm[i] = i
	}
	return perm
}

func apply[T any](items []T, perm []int) []T {
	out := make([]T, len(perm))
	for i, j := range perm {
		out[i] = items[j]
	}
	return out
}

// Apply reorders items by a permutation from Permutation.
func Apply[E any](items []E, perm []int) []E {
	if len(perm) != len(items) {
		return slices.Clone(items)
	}
	return apply(items, perm)
}
