package cache

import (
	"maps"

	"github.com/matzehuels/shapecache/pkg/repetition"
	"github.com/matzehuels/shapecache/pkg/shape"
)

// KindStats are the running totals of one kind over a session.
type KindStats struct {
	Inserts int // occurrences recorded
	Repeats int // occurrences whose content was already cached
	Unique  int // unique shapes flushed, summed over flushes
	Pending int // unique shapes cached and not yet flushed
	Records int // records written
	Flushes int
	// Patterns counts written records by repetition type code.
	Patterns map[repetition.Code]int
}

// Stats is a snapshot of a cache's running totals.
type Stats struct {
	Session string
	Kinds   map[shape.Kind]KindStats
}

// Total sums the per-kind totals.
func (s Stats) Total() KindStats {
	t := KindStats{Patterns: map[repetition.Code]int{}}
	for _, k := range s.Kinds {
		t.Inserts += k.Inserts
		t.Repeats += k.Repeats
		t.Unique += k.Unique
		t.Pending += k.Pending
		t.Records += k.Records
		t.Flushes += k.Flushes
		for code, n := range k.Patterns {
			t.Patterns[code] += n
		}
	}
	return t
}

// Stats returns a snapshot of the running totals.
func (c *ObjectCache) Stats() Stats {
	return Stats{
		Session: c.session,
		Kinds: map[shape.Kind]KindStats{
			shape.KindBox:       c.boxes.snapshot(),
			shape.KindPolygon:   c.polygons.snapshot(),
			shape.KindPath:      c.paths.snapshot(),
			shape.KindLabel:     c.labels.snapshot(),
			shape.KindPlacement: c.placements.snapshot(),
		},
	}
}

func (s *store[T]) snapshot() KindStats {
	k := s.stats
	k.Pending = s.table.Allocated()
	k.Patterns = maps.Clone(s.stats.Patterns)
	return k
}
