package shape

import (
	"cmp"
	"slices"
)

// Property is one name/value pair attached to a shape.
type Property struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

func compareProperty(a, b Property) int {
	if c := cmp.Compare(a.Name, b.Name); c != 0 {
		return c
	}
	return cmp.Compare(a.Value, b.Value)
}

// Properties is an unordered multiset of name/value pairs.
type Properties []Property

// Canonical returns a sorted copy of ps. A nil or empty list stays nil so
// that "no properties" has a single representation.
func (ps Properties) Canonical() Properties {
	if len(ps) == 0 {
		return nil
	}
	out := slices.Clone(ps)
	slices.SortFunc(out, compareProperty)
	return out
}

// Equal reports whether ps and other hold the same pairs with the same
// multiplicities, ignoring order.
func (ps Properties) Equal(other Properties) bool {
	if len(ps) != len(other) {
		return false
	}
	if slices.Equal(ps, other) {
		return true
	}
	return slices.Equal(ps.Canonical(), other.Canonical())
}

// Compare orders property lists by their sorted contents.
func (ps Properties) Compare(other Properties) int {
	return slices.CompareFunc(ps.Canonical(), other.Canonical(), compareProperty)
}

// Hash returns an order-independent hash of ps.
func (ps Properties) Hash() uint64 {
	var sum uint64
	for _, p := range ps {
		h := newHasher()
		h.string(p.Name)
		h.string(p.Value)
		sum += h.sum()
	}
	return sum
}
