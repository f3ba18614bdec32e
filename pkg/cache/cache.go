// Package cache implements the object cache: the per-kind front end that
// deduplicates shapes as a producer emits them and, on flush, writes each
// unique shape once per repetition pattern its occurrences form.
//
// # Lifecycle
//
// One [ObjectCache] serves one export session. The producer calls a Cache
// method per shape, then the matching CheckFlush method so that large cells
// are written in bounded chunks, and finally [ObjectCache.Flush] (or
// [ObjectCache.Close]).
//
//	c := cache.New(w, cache.WithLogger(logger))
//	for _, b := range boxes {
//	    if err := c.CacheBox(b.Layer, b.Datatype, b.Min, b.Max, nil); err != nil {
//	        return err
//	    }
//	    if err := c.CheckFlushBox(); err != nil {
//	        return err
//	    }
//	}
//	return c.Flush()
//
// # Flush
//
// A flush extracts the kind's unique shapes, orders them so consecutive
// records differ little (see package ordering), partitions each shape's
// positions into patterns (see package repetition) and writes one record
// per pattern. A writer error aborts the flush and is returned with code
// WRITE_FAILED; the kind's cached shapes are discarded either way.
//
// An ObjectCache is not safe for concurrent use.
package cache

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/shapecache/pkg/config"
	"github.com/matzehuels/shapecache/pkg/errors"
	"github.com/matzehuels/shapecache/pkg/geom"
	"github.com/matzehuels/shapecache/pkg/observability"
	"github.com/matzehuels/shapecache/pkg/shape"
	"github.com/matzehuels/shapecache/pkg/table"
	"github.com/matzehuels/shapecache/pkg/writer"
)

// ErrKindDisabled is returned by the Cache methods of a kind the
// configuration does not select. The producer writes such shapes directly.
var ErrKindDisabled = errors.New(errors.ErrCodeKindDisabled, "kind not selected for caching")

// Option configures an ObjectCache.
type Option func(*ObjectCache)

// WithLogger sets the logger. The default discards all output.
func WithLogger(l *log.Logger) Option {
	return func(c *ObjectCache) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithConfig sets the repetition settings. The default is [config.Default].
func WithConfig(r config.Repetition) Option { return func(c *ObjectCache) { c.cfg = r } }

// WithFlushHooks overrides the globally registered flush hooks.
func WithFlushHooks(h observability.FlushHooks) Option {
	return func(c *ObjectCache) {
		if h != nil {
			c.flushHooks = h
		}
	}
}

// WithCacheHooks overrides the globally registered cache hooks.
func WithCacheHooks(h observability.CacheHooks) Option {
	return func(c *ObjectCache) {
		if h != nil {
			c.cacheHooks = h
		}
	}
}

// WithSession sets the session ID. The default is a random UUID.
func WithSession(id string) Option { return func(c *ObjectCache) { c.session = id } }

// ObjectCache deduplicates the shapes of one export session.
type ObjectCache struct {
	w          writer.Writer
	cfg        config.Repetition
	logger     *log.Logger
	flushHooks observability.FlushHooks
	cacheHooks observability.CacheHooks
	session    string

	boxes      *store[*shape.Box]
	polygons   *store[*shape.Polygon]
	paths      *store[*shape.Path]
	labels     *store[*shape.Label]
	placements *store[*shape.Placement]
}

// New creates a cache writing to w.
func New(w writer.Writer, opts ...Option) *ObjectCache {
	c := &ObjectCache{
		w:          w,
		cfg:        config.Default(),
		logger:     log.NewWithOptions(io.Discard, log.Options{}),
		flushHooks: observability.Flush(),
		cacheHooks: observability.Cache(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.session == "" {
		c.session = uuid.New().String()
	}
	c.logger = c.logger.With("session", c.session)

	c.boxes = newStore(shape.KindBox, w.WriteBox)
	c.polygons = newStore(shape.KindPolygon, w.WritePolygon)
	c.paths = newStore(shape.KindPath, w.WritePath)
	c.labels = newStore(shape.KindLabel, w.WriteLabel)
	c.placements = newStore(shape.KindPlacement, w.WritePlacement)
	return c
}

// Session returns the session ID.
func (c *ObjectCache) Session() string { return c.session }

// Config returns the current repetition settings.
func (c *ObjectCache) Config() config.Repetition { return c.cfg }

// SetupRepetition applies a token string on top of the current settings.
// Bad tokens are logged and returned as warnings; their settings keep the
// previous value.
func (c *ObjectCache) SetupRepetition(spec string, noGCD bool) []error {
	cfg, warnings := config.Parse(spec, noGCD, c.cfg, c.logger)
	c.cfg = cfg
	c.logger.Debug("repetition settings", "spec", cfg.String(), "grid", !cfg.NoGCD)
	return warnings
}

// CachingBoxes reports whether boxes are selected for caching.
func (c *ObjectCache) CachingBoxes() bool { return c.cfg.Kinds.Has(shape.KindBox) }

// CachingPolygons reports whether polygons are selected for caching.
func (c *ObjectCache) CachingPolygons() bool { return c.cfg.Kinds.Has(shape.KindPolygon) }

// CachingPaths reports whether paths are selected for caching.
func (c *ObjectCache) CachingPaths() bool { return c.cfg.Kinds.Has(shape.KindPath) }

// CachingLabels reports whether labels are selected for caching.
func (c *ObjectCache) CachingLabels() bool { return c.cfg.Kinds.Has(shape.KindLabel) }

// CachingPlacements reports whether placements are selected for caching.
func (c *ObjectCache) CachingPlacements() bool { return c.cfg.Kinds.Has(shape.KindPlacement) }

// CacheBox records the box spanning corners a and b.
func (c *ObjectCache) CacheBox(layer, datatype uint32, a, b geom.Point, props shape.Properties) error {
	box, at := shape.NewBox(layer, datatype, a, b, props)
	return insert(c, c.boxes, &box, at)
}

// CachePolygon records the polygon with absolute vertices pts.
func (c *ObjectCache) CachePolygon(layer, datatype uint32, pts []geom.Point, props shape.Properties) error {
	p, at := shape.NewPolygon(layer, datatype, pts, props)
	return insert(c, c.polygons, &p, at)
}

// CachePath records the path with absolute centre line pts.
func (c *ObjectCache) CachePath(layer, datatype uint32, halfWidth int64, capStyle shape.CapStyle, startExt, endExt int64, pts []geom.Point, props shape.Properties) error {
	p, at := shape.NewPath(layer, datatype, halfWidth, capStyle, startExt, endExt, pts, props)
	return insert(c, c.paths, &p, at)
}

// CacheLabel records a text label at position at.
func (c *ObjectCache) CacheLabel(layer, texttype uint32, text string, t shape.Transform, at geom.Point, props shape.Properties) error {
	l, anchor := shape.NewLabel(layer, texttype, text, t, at, props)
	return insert(c, c.labels, &l, anchor)
}

// CachePlacement records a placement of cell at position at.
func (c *ObjectCache) CachePlacement(cell string, t shape.Transform, at geom.Point, props shape.Properties) error {
	p, anchor := shape.NewPlacement(cell, t, at, props)
	return insert(c, c.placements, &p, anchor)
}

func insert[T content[T]](c *ObjectCache, s *store[T], candidate T, at geom.Point) error {
	if !c.cfg.Kinds.Has(s.kind) {
		return ErrKindDisabled
	}
	repeated := s.record(candidate, at)
	c.cacheHooks.OnInsert(s.kind.String(), repeated)
	return nil
}

// CheckFlushBox flushes boxes when a flush threshold is reached.
func (c *ObjectCache) CheckFlushBox() error { return checkFlush(c, c.boxes) }

// CheckFlushPolygon flushes polygons when a flush threshold is reached.
func (c *ObjectCache) CheckFlushPolygon() error { return checkFlush(c, c.polygons) }

// CheckFlushPath flushes paths when a flush threshold is reached.
func (c *ObjectCache) CheckFlushPath() error { return checkFlush(c, c.paths) }

// CheckFlushLabel flushes labels when a flush threshold is reached.
func (c *ObjectCache) CheckFlushLabel() error { return checkFlush(c, c.labels) }

// CheckFlushPlacement flushes placements when a flush threshold is reached.
func (c *ObjectCache) CheckFlushPlacement() error { return checkFlush(c, c.placements) }

func checkFlush[T content[T]](c *ObjectCache, s *store[T]) error {
	if !s.due(c.cfg) {
		return nil
	}
	c.logger.Debug("flush threshold reached", "kind", s.kind, "unique", s.table.Allocated(), "repeats", s.reps)
	return flush(c, s)
}

// FlushBox writes and discards the cached boxes.
func (c *ObjectCache) FlushBox() error { return flush(c, c.boxes) }

// FlushPolygon writes and discards the cached polygons.
func (c *ObjectCache) FlushPolygon() error { return flush(c, c.polygons) }

// FlushPath writes and discards the cached paths.
func (c *ObjectCache) FlushPath() error { return flush(c, c.paths) }

// FlushLabel writes and discards the cached labels.
func (c *ObjectCache) FlushLabel() error { return flush(c, c.labels) }

// FlushPlacement writes and discards the cached placements.
func (c *ObjectCache) FlushPlacement() error { return flush(c, c.placements) }

// Flush flushes every kind in the order box, polygon, path, label,
// placement, stopping at the first failure.
func (c *ObjectCache) Flush() error {
	for _, f := range []func() error{c.FlushBox, c.FlushPolygon, c.FlushPath, c.FlushLabel, c.FlushPlacement} {
		if err := f(); err != nil {
			return err
		}
	}
	return nil
}

// Close flushes every kind.
func (c *ObjectCache) Close() error { return c.Flush() }

// content is the constraint met by the pointer form of each canonical shape.
type content[T any] interface {
	shape.Shape
	table.Content[T]
	Compare(T) int
	Diff(prev T) int
	Cost() int
}
