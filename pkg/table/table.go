// Package table implements the content-addressed hash table that collapses
// translated copies of one canonical shape into a single entry.
//
// A [Table] maps content (anything implementing [Content]) to an [Entry]
// holding the first occurrence's anchor and every further occurrence in
// insertion order. Entries live in a slice and are addressed by [Handle],
// so handles stay valid across rehashes.
//
//	t := table.New[*shape.Box]()
//	h, fresh := t.Record(&box, at)
//	t.Entry(h).Count()
//
// A Table is not safe for concurrent use.
package table

import "github.com/matzehuels/shapecache/pkg/geom"

// Content is the constraint on stored values: a hash consistent with Equal.
type Content[T any] interface {
	Hash() uint64
	Equal(T) bool
}

// Handle addresses an entry. It is valid until the next Reset.
type Handle int

const (
	// MaxDensity is the average chain length that triggers a rehash.
	MaxDensity = 4

	// initialBuckets is the bucket count of a new table. Must be a power of 2.
	initialBuckets = 64
)

// Entry is one unique content and the positions at which it occurs.
type Entry[T any] struct {
	Shape  T
	Anchor geom.Point
	// Placements are the occurrences after the first, in insertion order.
	Placements []geom.Point

	hash uint64
	next int // next entry in the bucket chain, -1 terminates
}

// Count returns the number of recorded occurrences.
func (e *Entry[T]) Count() int { return 1 + len(e.Placements) }

// Positions returns the anchor followed by all placements.
func (e *Entry[T]) Positions() []geom.Point {
	out := make([]geom.Point, 0, e.Count())
	out = append(out, e.Anchor)
	return append(out, e.Placements...)
}

// Table is a chained hash table of unique contents.
type Table[T Content[T]] struct {
	buckets []int // head entry per bucket, -1 when empty
	entries []Entry[T]
}

// New creates an empty table.
func New[T Content[T]]() *Table[T] {
	t := &Table[T]{}
	t.Reset()
	return t
}

// Record looks up candidate. If an equal content is stored, at is appended
// to its placements and Record returns its handle with fresh false.
// Otherwise candidate is stored with anchor at and fresh is true.
func (t *Table[T]) Record(candidate T, at geom.Point) (h Handle, fresh bool) {
	hash := candidate.Hash()
	b := t.bucket(hash)
	for i := t.buckets[b]; i >= 0; i = t.entries[i].next {
		e := &t.entries[i]
		if e.hash == hash && e.Shape.Equal(candidate) {
			e.Placements = append(e.Placements, at)
			return Handle(i), false
		}
	}

	i := len(t.entries)
	t.entries = append(t.entries, Entry[T]{
		Shape:  candidate,
		Anchor: at,
		hash:   hash,
		next:   t.buckets[b],
	})
	t.buckets[b] = i

	if len(t.entries) > len(t.buckets)*MaxDensity {
		t.rehash()
	}
	return Handle(i), true
}

// Lookup returns the handle of the entry equal to candidate.
func (t *Table[T]) Lookup(candidate T) (Handle, bool) {
	hash := candidate.Hash()
	for i := t.buckets[t.bucket(hash)]; i >= 0; i = t.entries[i].next {
		if t.entries[i].hash == hash && t.entries[i].Shape.Equal(candidate) {
			return Handle(i), true
		}
	}
	return -1, false
}

// Entry returns the entry for h. The pointer is invalidated by the next
// Record that inserts new content.
func (t *Table[T]) Entry(h Handle) *Entry[T] { return &t.entries[h] }

// Extract snapshots every entry in insertion order. The returned pointers
// stay valid until the table is modified.
func (t *Table[T]) Extract() []*Entry[T] {
	out := make([]*Entry[T], len(t.entries))
	for i := range t.entries {
		out[i] = &t.entries[i]
	}
	return out
}

// Allocated returns the number of unique contents stored.
func (t *Table[T]) Allocated() int { return len(t.entries) }

// Occurrences returns the total number of recorded positions.
func (t *Table[T]) Occurrences() int {
	n := 0
	for i := range t.entries {
		n += t.entries[i].Count()
	}
	return n
}

// Buckets returns the current bucket count.
func (t *Table[T]) Buckets() int { return len(t.buckets) }

// Reset discards every entry and shrinks the table to its initial size.
func (t *Table[T]) Reset() {
	t.buckets = make([]int, initialBuckets)
	for i := range t.buckets {
		t.buckets[i] = -1
	}
	t.entries = nil
}

func (t *Table[T]) bucket(hash uint64) int {
	return int(hash & uint64(len(t.buckets)-1))
}

// rehash doubles the bucket count and relinks every chain.
func (t *Table[T]) rehash() {
	t.buckets = make([]int, 2*len(t.buckets))
	for i := range t.buckets {
		t.buckets[i] = -1
	}
	for i := range t.entries {
		b := t.bucket(t.entries[i].hash)
		t.entries[i].next = t.buckets[b]
		t.buckets[b] = i
	}
}
