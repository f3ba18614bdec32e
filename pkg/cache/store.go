package cache

import (
	"time"

	"github.com/matzehuels/shapecache/pkg/config"
	"github.com/matzehuels/shapecache/pkg/errors"
	"github.com/matzehuels/shapecache/pkg/geom"
	"github.com/matzehuels/shapecache/pkg/ordering"
	"github.com/matzehuels/shapecache/pkg/repetition"
	"github.com/matzehuels/shapecache/pkg/shape"
	"github.com/matzehuels/shapecache/pkg/table"
)

// store is the cache state of one kind.
type store[T content[T]] struct {
	kind  shape.Kind
	table *table.Table[T]
	write func(T, geom.Point) error

	// reps counts insertions of already cached content since the last flush.
	reps  int
	stats KindStats
}

func newStore[T content[T]](kind shape.Kind, write func(T, geom.Point) error) *store[T] {
	return &store[T]{
		kind:  kind,
		table: table.New[T](),
		write: write,
		stats: KindStats{Patterns: map[repetition.Code]int{}},
	}
}

// record inserts one occurrence and reports whether its content was
// already cached.
func (s *store[T]) record(candidate T, at geom.Point) bool {
	_, fresh := s.table.Record(candidate, at)
	s.stats.Inserts++
	if !fresh {
		s.reps++
		s.stats.Repeats++
	}
	return !fresh
}

// due reports whether a flush threshold is reached.
func (s *store[T]) due(cfg config.Repetition) bool {
	if s.table.Allocated() >= cfg.MaxItems {
		return true
	}
	return cfg.MaxReps > 0 && s.reps > cfg.MaxReps
}

func (s *store[T]) reset() {
	s.table.Reset()
	s.reps = 0
}

func flush[T content[T]](c *ObjectCache, s *store[T]) error {
	unique := s.table.Allocated()
	if unique == 0 {
		return nil
	}
	defer s.reset()

	kind := s.kind.String()
	c.flushHooks.OnFlushStart(kind, unique)
	start := time.Now()

	entries := s.table.Extract()
	shapes := make([]T, len(entries))
	for i, e := range entries {
		shapes[i] = e.Shape
	}
	entries = ordering.Apply(entries, ordering.Permutation(shapes, c.cfg.Sort))

	builder := c.cfg.Builder()
	records := 0
	var err error
	for _, e := range entries {
		var n int
		n, err = emit(c, s, e, builder)
		records += n
		if err != nil {
			break
		}
	}

	elapsed := time.Since(start)
	s.stats.Flushes++
	s.stats.Unique += unique
	s.stats.Records += records
	c.flushHooks.OnFlushComplete(kind, records, elapsed, err)

	if err != nil {
		c.logger.Error("flush aborted", "kind", kind, "records", records, "err", err)
		return errors.Wrap(errors.ErrCodeWriteFailed, err, "flush %s", kind)
	}
	c.logger.Debug("flushed", "kind", kind, "unique", unique, "records", records, "elapsed", elapsed)
	return nil
}

// emit writes one unique shape as one record per pattern of its positions.
func emit[T content[T]](c *ObjectCache, s *store[T], e *table.Entry[T], builder repetition.Builder) (int, error) {
	w := c.w
	if layer, datatype, ok := e.Shape.LayerDatatype(); ok {
		oldLayer, oldDatatype := w.SetLayerDatatype(layer, datatype)
		defer w.SetLayerDatatype(oldLayer, oldDatatype)
	}
	defer w.ClearPropertyQueue()

	props := e.Shape.Properties()
	written := 0
	for _, p := range builder.Build(e.Positions()) {
		if err := w.SetupProperties(props); err != nil {
			return written, err
		}
		repeated := p.Code() != repetition.CodeNone
		if repeated {
			w.SetRepetition(p)
		}
		err := s.write(e.Shape, p.Origin())
		if repeated {
			w.UnsetRepetition()
		}
		if err != nil {
			return written, err
		}
		written++
		s.stats.Patterns[p.Code()]++
		if c.cfg.Debug {
			c.logger.Debug("pattern", "kind", s.kind, "code", int(p.Code()), "count", p.Count(), "pattern", p)
		}
	}
	return written, nil
}
