package writer

import (
	"encoding/json"
	"io"

	"github.com/matzehuels/shapecache/pkg/geom"
	"github.com/matzehuels/shapecache/pkg/shape"
)

// JSONOption configures a [JSONSink].
type JSONOption func(*JSONSink)

// WithJSONSession stamps every record with the export session ID.
func WithJSONSession(id string) JSONOption { return func(s *JSONSink) { s.session = id } }

// WithJSONPositions adds the expanded absolute positions to each record, so
// consumers can read the output without understanding repetitions.
func WithJSONPositions() JSONOption { return func(s *JSONSink) { s.positions = true } }

// JSONSink writes one JSON object per record to an io.Writer.
type JSONSink struct {
	Modal

	enc       *json.Encoder
	session   string
	positions bool
	written   int
}

// NewJSONSink creates a sink writing JSON lines to w.
func NewJSONSink(w io.Writer, opts ...JSONOption) *JSONSink {
	s := &JSONSink{enc: json.NewEncoder(w)}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Written returns the number of records written so far.
func (s *JSONSink) Written() int { return s.written }

type jsonRecord struct {
	Session    string           `json:"session,omitempty"`
	Kind       string           `json:"kind"`
	Layer      *uint32          `json:"layer,omitempty"`
	Datatype   *uint32          `json:"datatype,omitempty"`
	Texttype   *uint32          `json:"texttype,omitempty"`
	X          int64            `json:"x"`
	Y          int64            `json:"y"`
	W          int64            `json:"w,omitempty"`
	H          int64            `json:"h,omitempty"`
	Points     []jsonPoint      `json:"points,omitempty"`
	HalfWidth  int64            `json:"half_width,omitempty"`
	Cap        string           `json:"cap,omitempty"`
	StartExt   int64            `json:"start_ext,omitempty"`
	EndExt     int64            `json:"end_ext,omitempty"`
	Text       string           `json:"text,omitempty"`
	Cell       string           `json:"cell,omitempty"`
	Rotation   int              `json:"rotation,omitempty"`
	Mirror     bool             `json:"mirror,omitempty"`
	Mag        float64          `json:"mag,omitempty"`
	Props      shape.Properties `json:"props,omitempty"`
	Repetition *jsonRepetition  `json:"repetition,omitempty"`
	Positions  []jsonPoint      `json:"positions,omitempty"`
}

type jsonPoint [2]int64

type jsonRepetition struct {
	Type          int         `json:"type"`
	XDim          int         `json:"x_dim,omitempty"`
	YDim          int         `json:"y_dim,omitempty"`
	XSpace        int64       `json:"x_space,omitempty"`
	YSpace        int64       `json:"y_space,omitempty"`
	Steps         []jsonPoint `json:"steps,omitempty"`
	Spaces        []int64     `json:"spaces,omitempty"`
	Displacements []jsonPoint `json:"displacements,omitempty"`
	Grid          int64       `json:"grid,omitempty"`
}

func (s *JSONSink) WriteBox(b *shape.Box, at geom.Point) error {
	r := s.record(shape.KindBox, at)
	r.Layer, r.Datatype = &s.Layer, &s.Datatype
	r.W, r.H = b.Width, b.Height
	return s.emit(r)
}

func (s *JSONSink) WritePolygon(p *shape.Polygon, at geom.Point) error {
	r := s.record(shape.KindPolygon, at)
	r.Layer, r.Datatype = &s.Layer, &s.Datatype
	r.Points = points(p.Points)
	return s.emit(r)
}

func (s *JSONSink) WritePath(p *shape.Path, at geom.Point) error {
	r := s.record(shape.KindPath, at)
	r.Layer, r.Datatype = &s.Layer, &s.Datatype
	r.Points = points(p.Points)
	r.HalfWidth = p.HalfWidth
	r.Cap = p.Cap.String()
	r.StartExt, r.EndExt = p.StartExt, p.EndExt
	return s.emit(r)
}

func (s *JSONSink) WriteLabel(l *shape.Label, at geom.Point) error {
	r := s.record(shape.KindLabel, at)
	r.Layer, r.Texttype = &s.Layer, &s.Datatype
	r.Text = l.Text
	setTransform(&r, l.Transform)
	return s.emit(r)
}

func (s *JSONSink) WritePlacement(p *shape.Placement, at geom.Point) error {
	r := s.record(shape.KindPlacement, at)
	r.Cell = p.Cell
	setTransform(&r, p.Transform)
	return s.emit(r)
}

func (s *JSONSink) record(kind shape.Kind, at geom.Point) jsonRecord {
	props, rep := s.take()
	r := jsonRecord{
		Session: s.session,
		Kind:    kind.String(),
		X:       at.X,
		Y:       at.Y,
		Props:   props,
	}
	if rep != nil {
		r.Repetition = &jsonRepetition{
			Type:          int(rep.Type),
			XDim:          rep.XDim,
			YDim:          rep.YDim,
			XSpace:        rep.XSpace,
			YSpace:        rep.YSpace,
			Steps:         points(rep.Steps),
			Spaces:        rep.Spaces,
			Displacements: points(rep.Displacements),
			Grid:          rep.Grid,
		}
	}
	if s.positions {
		if rep != nil {
			r.Positions = points(rep.Positions())
		} else {
			r.Positions = []jsonPoint{{at.X, at.Y}}
		}
	}
	return r
}

func (s *JSONSink) emit(r jsonRecord) error {
	if err := s.enc.Encode(r); err != nil {
		return err
	}
	s.written++
	return nil
}

// setTransform leaves the transform fields unset for the identity.
func setTransform(r *jsonRecord, t shape.Transform) {
	if t.IsIdentity() {
		return
	}
	r.Rotation = t.Rotation.Degrees()
	r.Mirror = t.Mirror
	if t.Mag != 1 {
		r.Mag = t.Mag
	}
}

func points(ps []geom.Point) []jsonPoint {
	if len(ps) == 0 {
		return nil
	}
	out := make([]jsonPoint, len(ps))
	for i, p := range ps {
		out[i] = jsonPoint{p.X, p.Y}
	}
	return out
}

var _ Writer = (*JSONSink)(nil)
