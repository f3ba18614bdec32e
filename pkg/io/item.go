package io

import (
	"github.com/matzehuels/shapecache/pkg/errors"
	"github.com/matzehuels/shapecache/pkg/geom"
	"github.com/matzehuels/shapecache/pkg/shape"
)

// Item is one shape of the stream.
type Item struct {
	Kind      string           `json:"kind"`
	Layer     uint32           `json:"layer,omitempty"`
	Datatype  uint32           `json:"datatype,omitempty"`
	Texttype  uint32           `json:"texttype,omitempty"`
	X         int64            `json:"x,omitempty"`
	Y         int64            `json:"y,omitempty"`
	W         int64            `json:"w,omitempty"`
	H         int64            `json:"h,omitempty"`
	Points    [][2]int64       `json:"points,omitempty"`
	HalfWidth int64            `json:"half_width,omitempty"`
	Cap       string           `json:"cap,omitempty"`
	StartExt  int64            `json:"start_ext,omitempty"`
	EndExt    int64            `json:"end_ext,omitempty"`
	Text      string           `json:"text,omitempty"`
	Cell      string           `json:"cell,omitempty"`
	Rotation  int              `json:"rotation,omitempty"`
	Mirror    bool             `json:"mirror,omitempty"`
	Mag       float64          `json:"mag,omitempty"`
	Props     shape.Properties `json:"props,omitempty"`
}

// At returns the item's x, y position.
func (it Item) At() geom.Point { return geom.Pt(it.X, it.Y) }

// Size returns the box width and height as a displacement.
func (it Item) Size() geom.Point { return geom.Pt(it.W, it.H) }

// Vertices returns the item's points.
func (it Item) Vertices() []geom.Point {
	out := make([]geom.Point, len(it.Points))
	for i, p := range it.Points {
		out[i] = geom.Pt(p[0], p[1])
	}
	return out
}

// ShapeKind resolves the kind name.
func (it Item) ShapeKind() (shape.Kind, error) {
	k, ok := shape.ParseKind(it.Kind)
	if !ok {
		return 0, errors.New(errors.ErrCodeInvalidInput, "unknown kind %q", it.Kind)
	}
	return k, nil
}

// Transform returns the label or placement transform.
func (it Item) Transform() (shape.Transform, error) {
	rot, err := shape.RotationFromDegrees(it.Rotation)
	if err != nil {
		return shape.Transform{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "rotation")
	}
	mag := it.Mag
	if mag == 0 {
		mag = 1
	}
	if mag < 0 {
		return shape.Transform{}, errors.New(errors.ErrCodeInvalidInput, "negative mag %g", it.Mag)
	}
	return shape.Transform{Rotation: rot, Mirror: it.Mirror, Mag: mag}, nil
}

// Validate checks the fields the item's kind requires.
func (it Item) Validate() error {
	k, err := it.ShapeKind()
	if err != nil {
		return err
	}
	switch k {
	case shape.KindBox:
		if it.W < 0 || it.H < 0 {
			return errors.New(errors.ErrCodeInvalidInput, "box has negative size %dx%d", it.W, it.H)
		}
	case shape.KindPolygon:
		if len(it.Points) < 3 {
			return errors.New(errors.ErrCodeInvalidInput, "polygon needs at least 3 points, got %d", len(it.Points))
		}
	case shape.KindPath:
		if len(it.Points) < 2 {
			return errors.New(errors.ErrCodeInvalidInput, "path needs at least 2 points, got %d", len(it.Points))
		}
		if _, err := shape.ParseCapStyle(it.Cap); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidInput, err, "path")
		}
	case shape.KindLabel:
		_, err = it.Transform()
	case shape.KindPlacement:
		if err = errors.ValidateCellName(it.Cell); err == nil {
			_, err = it.Transform()
		}
	}
	return err
}
