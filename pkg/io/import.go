package io

import (
	"bufio"
	"bytes"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/shapecache/pkg/cache"
	"github.com/matzehuels/shapecache/pkg/errors"
	"github.com/matzehuels/shapecache/pkg/shape"
	"github.com/matzehuels/shapecache/pkg/writer"
)

// maxLine bounds the length of one stream line.
const maxLine = 16 << 20

// Decode reads items from r and calls fn for each valid one, in order.
// Decoding stops at the first malformed line or the first error from fn,
// which is returned unchanged. Decode does not close r.
func Decode(r io.Reader, fn func(line int, it Item) error) error {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64<<10), maxLine)

	line := 0
	for sc.Scan() {
		line++
		b := bytes.TrimSpace(sc.Bytes())
		if len(b) == 0 || b[0] == '#' {
			continue
		}
		var it Item
		dec := json.NewDecoder(bytes.NewReader(b))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&it); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidInput, err, "line %d", line)
		}
		if err := it.Validate(); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidInput, err, "line %d", line)
		}
		if err := fn(line, it); err != nil {
			return err
		}
	}
	if err := sc.Err(); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "line %d", line+1)
	}
	return nil
}

// ImportFile reads the stream at path and returns every item.
func ImportFile(path string) ([]Item, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	var items []Item
	err = Decode(f, func(_ int, it Item) error {
		items = append(items, it)
		return nil
	})
	return items, err
}

// FeedStats counts what Feed did with the stream.
type FeedStats struct {
	Items  int // items read
	Cached int // items handed to the cache
	Direct int // items of unselected kinds written straight to the writer
}

// Feed pushes every item of r into c, checking the flush thresholds after
// each insertion, and flushes c at the end. Items of kinds c is not caching
// are written to direct as they arrive.
func Feed(c *cache.ObjectCache, direct writer.Writer, r io.Reader) (FeedStats, error) {
	var st FeedStats
	err := Decode(r, func(line int, it Item) error {
		st.Items++
		err := insert(c, it)
		if stderrors.Is(err, cache.ErrKindDisabled) {
			st.Direct++
			return writeDirect(direct, it)
		}
		if err != nil {
			return fmt.Errorf("line %d: %w", line, err)
		}
		st.Cached++
		return nil
	})
	if err != nil {
		return st, err
	}
	return st, c.Flush()
}

func insert(c *cache.ObjectCache, it Item) error {
	kind, err := it.ShapeKind()
	if err != nil {
		return err
	}
	switch kind {
	case shape.KindBox:
		at := it.At()
		if err := c.CacheBox(it.Layer, it.Datatype, at, at.Add(it.Size()), it.Props); err != nil {
			return err
		}
		return c.CheckFlushBox()
	case shape.KindPolygon:
		if err := c.CachePolygon(it.Layer, it.Datatype, it.Vertices(), it.Props); err != nil {
			return err
		}
		return c.CheckFlushPolygon()
	case shape.KindPath:
		capStyle, _ := shape.ParseCapStyle(it.Cap)
		if err := c.CachePath(it.Layer, it.Datatype, it.HalfWidth, capStyle, it.StartExt, it.EndExt, it.Vertices(), it.Props); err != nil {
			return err
		}
		return c.CheckFlushPath()
	case shape.KindLabel:
		t, _ := it.Transform()
		if err := c.CacheLabel(it.Layer, it.Texttype, it.Text, t, it.At(), it.Props); err != nil {
			return err
		}
		return c.CheckFlushLabel()
	default:
		t, _ := it.Transform()
		if err := c.CachePlacement(it.Cell, t, it.At(), it.Props); err != nil {
			return err
		}
		return c.CheckFlushPlacement()
	}
}

// writeDirect writes one item as a plain record.
func writeDirect(w writer.Writer, it Item) error {
	kind, _ := it.ShapeKind()
	if err := w.SetupProperties(it.Props.Canonical()); err != nil {
		return errors.Wrap(errors.ErrCodeWriteFailed, err, "write %s", kind)
	}
	defer w.ClearPropertyQueue()

	var err error
	switch kind {
	case shape.KindBox:
		at := it.At()
		b, anchor := shape.NewBox(it.Layer, it.Datatype, at, at.Add(it.Size()), it.Props)
		err = withLayer(w, &b, func() error { return w.WriteBox(&b, anchor) })
	case shape.KindPolygon:
		p, anchor := shape.NewPolygon(it.Layer, it.Datatype, it.Vertices(), it.Props)
		err = withLayer(w, &p, func() error { return w.WritePolygon(&p, anchor) })
	case shape.KindPath:
		capStyle, _ := shape.ParseCapStyle(it.Cap)
		p, anchor := shape.NewPath(it.Layer, it.Datatype, it.HalfWidth, capStyle, it.StartExt, it.EndExt, it.Vertices(), it.Props)
		err = withLayer(w, &p, func() error { return w.WritePath(&p, anchor) })
	case shape.KindLabel:
		t, _ := it.Transform()
		l, anchor := shape.NewLabel(it.Layer, it.Texttype, it.Text, t, it.At(), it.Props)
		err = withLayer(w, &l, func() error { return w.WriteLabel(&l, anchor) })
	default:
		t, _ := it.Transform()
		p, anchor := shape.NewPlacement(it.Cell, t, it.At(), it.Props)
		err = w.WritePlacement(&p, anchor)
	}
	if err != nil {
		return errors.Wrap(errors.ErrCodeWriteFailed, err, "write %s", kind)
	}
	return nil
}

func withLayer(w writer.Writer, s shape.Shape, write func() error) error {
	layer, datatype, _ := s.LayerDatatype()
	oldLayer, oldDatatype := w.SetLayerDatatype(layer, datatype)
	defer w.SetLayerDatatype(oldLayer, oldDatatype)
	return write()
}
