package writer

import (
	"errors"
	"fmt"

	"github.com/matzehuels/shapecache/pkg/geom"
	"github.com/matzehuels/shapecache/pkg/repetition"
	"github.com/matzehuels/shapecache/pkg/shape"
)

// ErrInjected is returned by a Recorder once its FailAfter budget is spent.
var ErrInjected = errors.New("writer: injected failure")

// Record is one written shape record.
type Record struct {
	Kind       shape.Kind
	Layer      uint32
	Datatype   uint32
	At         geom.Point
	Shape      shape.Shape
	Props      shape.Properties
	Repetition *Descriptor
}

// Positions expands the record to the absolute positions it stands for.
func (r Record) Positions() []geom.Point {
	if r.Repetition == nil {
		return []geom.Point{r.At}
	}
	return r.Repetition.Positions()
}

// Code returns the repetition type code of the record.
func (r Record) Code() repetition.Code {
	if r.Repetition == nil {
		return repetition.CodeNone
	}
	return r.Repetition.Type
}

// Recorder keeps written records in memory.
type Recorder struct {
	Modal

	Records []Record

	// FailAfter makes every write after the first FailAfter ones return
	// ErrInjected. Zero disables injection.
	FailAfter int

	// PropertyErr, when set, is returned by SetupProperties.
	PropertyErr error

	writes int
}

// NewRecorder returns an empty Recorder.
func NewRecorder() *Recorder { return &Recorder{} }

func (r *Recorder) WriteBox(b *shape.Box, at geom.Point) error {
	c := *b
	return r.write(shape.KindBox, &c, at)
}

func (r *Recorder) WritePolygon(p *shape.Polygon, at geom.Point) error {
	c := *p
	return r.write(shape.KindPolygon, &c, at)
}

func (r *Recorder) WritePath(p *shape.Path, at geom.Point) error {
	c := *p
	return r.write(shape.KindPath, &c, at)
}

func (r *Recorder) WriteLabel(l *shape.Label, at geom.Point) error {
	c := *l
	return r.write(shape.KindLabel, &c, at)
}

func (r *Recorder) WritePlacement(p *shape.Placement, at geom.Point) error {
	c := *p
	return r.write(shape.KindPlacement, &c, at)
}

// SetupProperties queues props, or fails with PropertyErr.
func (r *Recorder) SetupProperties(props shape.Properties) error {
	if r.PropertyErr != nil {
		return r.PropertyErr
	}
	return r.Modal.SetupProperties(props)
}

func (r *Recorder) write(kind shape.Kind, s shape.Shape, at geom.Point) error {
	if r.FailAfter > 0 && r.writes >= r.FailAfter {
		return fmt.Errorf("%w after %d writes", ErrInjected, r.writes)
	}
	r.writes++
	props, rep := r.take()
	r.Records = append(r.Records, Record{
		Kind:       kind,
		Layer:      r.Layer,
		Datatype:   r.Datatype,
		At:         at,
		Shape:      s,
		Props:      props,
		Repetition: rep,
	})
	return nil
}

// Kind returns the records of one kind, in write order.
func (r *Recorder) Kind(k shape.Kind) []Record {
	var out []Record
	for _, rec := range r.Records {
		if rec.Kind == k {
			out = append(out, rec)
		}
	}
	return out
}

// Positions returns every absolute position written for kind k.
func (r *Recorder) Positions(k shape.Kind) []geom.Point {
	var out []geom.Point
	for _, rec := range r.Kind(k) {
		out = append(out, rec.Positions()...)
	}
	return out
}

// Reset drops all records and modal state.
func (r *Recorder) Reset() {
	r.Records = nil
	r.Modal = Modal{}
	r.writes = 0
}

var _ Writer = (*Recorder)(nil)
