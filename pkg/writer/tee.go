package writer

import (
	"github.com/matzehuels/shapecache/pkg/geom"
	"github.com/matzehuels/shapecache/pkg/repetition"
	"github.com/matzehuels/shapecache/pkg/shape"
)

// Tee duplicates every call to each of its writers, in order. A failing
// writer stops the call from reaching the writers after it.
type Tee struct {
	writers []Writer
}

// NewTee returns a writer that fans out to ws. It needs at least one writer.
func NewTee(ws ...Writer) *Tee {
	if len(ws) == 0 {
		panic("writer: NewTee needs at least one writer")
	}
	return &Tee{writers: ws}
}

func (t *Tee) each(fn func(Writer) error) error {
	for _, w := range t.writers {
		if err := fn(w); err != nil {
			return err
		}
	}
	return nil
}

func (t *Tee) WriteBox(b *shape.Box, at geom.Point) error {
	return t.each(func(w Writer) error { return w.WriteBox(b, at) })
}

func (t *Tee) WritePolygon(p *shape.Polygon, at geom.Point) error {
	return t.each(func(w Writer) error { return w.WritePolygon(p, at) })
}

func (t *Tee) WritePath(p *shape.Path, at geom.Point) error {
	return t.each(func(w Writer) error { return w.WritePath(p, at) })
}

func (t *Tee) WriteLabel(l *shape.Label, at geom.Point) error {
	return t.each(func(w Writer) error { return w.WriteLabel(l, at) })
}

func (t *Tee) WritePlacement(p *shape.Placement, at geom.Point) error {
	return t.each(func(w Writer) error { return w.WritePlacement(p, at) })
}

func (t *Tee) SetupProperties(props shape.Properties) error {
	return t.each(func(w Writer) error { return w.SetupProperties(props) })
}

func (t *Tee) ClearPropertyQueue() {
	for _, w := range t.writers {
		w.ClearPropertyQueue()
	}
}

// SetLayerDatatype sets the layer pair on every writer and returns the
// previous pair of the first.
func (t *Tee) SetLayerDatatype(layer, datatype uint32) (uint32, uint32) {
	oldLayer, oldDatatype := t.writers[0].SetLayerDatatype(layer, datatype)
	for _, w := range t.writers[1:] {
		w.SetLayerDatatype(layer, datatype)
	}
	return oldLayer, oldDatatype
}

func (t *Tee) SetRepetition(p repetition.Pattern) {
	for _, w := range t.writers {
		w.SetRepetition(p)
	}
}

func (t *Tee) UnsetRepetition() {
	for _, w := range t.writers {
		w.UnsetRepetition()
	}
}

var _ Writer = (*Tee)(nil)
