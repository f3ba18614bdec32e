package shape

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/matzehuels/shapecache/pkg/geom"
)

// CapStyle selects how a path is extended past its end points.
type CapStyle uint8

const (
	// CapFlush ends the path at its end points.
	CapFlush CapStyle = iota
	// CapHalfWidth extends each end by the half-width.
	CapHalfWidth
	// CapExplicit extends the ends by StartExt and EndExt.
	CapExplicit
)

var capNames = [...]string{"flush", "halfwidth", "explicit"}

// String returns the cap style name.
func (c CapStyle) String() string {
	if int(c) < len(capNames) {
		return capNames[c]
	}
	return fmt.Sprintf("cap(%d)", c)
}

// ParseCapStyle maps a cap style name to its CapStyle. The empty string is
// CapFlush.
func ParseCapStyle(s string) (CapStyle, error) {
	if s == "" {
		return CapFlush, nil
	}
	for i, name := range capNames {
		if name == s {
			return CapStyle(i), nil
		}
	}
	return CapFlush, fmt.Errorf("unknown cap style %q", s)
}

// Path is a wire: a centre line with a half-width and end extensions.
// Points are relative to the first point.
type Path struct {
	Layer     uint32
	Datatype  uint32
	HalfWidth int64
	Cap       CapStyle
	StartExt  int64
	EndExt    int64
	Points    []geom.Point
	Props     Properties
}

// NewPath builds the canonical path for the absolute centre line pts. The
// extensions are kept only for CapExplicit so that they never split identity
// for the other styles.
func NewPath(layer, datatype uint32, halfWidth int64, capStyle CapStyle, startExt, endExt int64, pts []geom.Point, props Properties) (Path, geom.Point) {
	rel, anchor := relative(pts)
	if capStyle != CapExplicit {
		startExt, endExt = 0, 0
	}
	return Path{
		Layer:     layer,
		Datatype:  datatype,
		HalfWidth: halfWidth,
		Cap:       capStyle,
		StartExt:  startExt,
		EndExt:    endExt,
		Points:    rel,
		Props:     props.Canonical(),
	}, anchor
}

func (p *Path) Kind() Kind { return KindPath }

func (p *Path) LayerDatatype() (uint32, uint32, bool) { return p.Layer, p.Datatype, true }

func (p *Path) Properties() Properties { return p.Props }

// Hash returns the content hash of p.
func (p *Path) Hash() uint64 {
	h := newHasher()
	h.u32(p.Layer)
	h.u32(p.Datatype)
	h.i64(p.HalfWidth)
	h.u32(uint32(p.Cap))
	h.i64(p.StartExt)
	h.i64(p.EndExt)
	h.points(p.Points)
	return withProperties(h.sum(), p.Props)
}

// Equal reports structural identity.
func (p *Path) Equal(o *Path) bool {
	return p.Layer == o.Layer && p.Datatype == o.Datatype &&
		p.HalfWidth == o.HalfWidth && p.Cap == o.Cap &&
		p.StartExt == o.StartExt && p.EndExt == o.EndExt &&
		slices.Equal(p.Points, o.Points) &&
		p.Props.Equal(o.Props)
}

// Compare orders paths by layer, datatype, half-width, end style, centre
// line, then properties.
func (p *Path) Compare(o *Path) int {
	return cmp.Or(
		cmp.Compare(p.Layer, o.Layer),
		cmp.Compare(p.Datatype, o.Datatype),
		cmp.Compare(p.HalfWidth, o.HalfWidth),
		cmp.Compare(p.Cap, o.Cap),
		cmp.Compare(p.StartExt, o.StartExt),
		cmp.Compare(p.EndExt, o.EndExt),
		comparePoints(p.Points, o.Points),
		p.Props.Compare(o.Props),
	)
}

// Diff returns the modal cost of writing p after prev.
func (p *Path) Diff(prev *Path) int {
	if prev == nil {
		prev = &Path{}
	}
	return costIf(p.Layer != prev.Layer, WeightLayer) +
		costIf(p.Datatype != prev.Datatype, WeightDatatype) +
		costIf(p.HalfWidth != prev.HalfWidth, WeightDimension) +
		costIf(p.Cap != prev.Cap, WeightCap) +
		costIf(p.StartExt != prev.StartExt || p.EndExt != prev.EndExt, WeightExtension) +
		costIf(!slices.Equal(p.Points, prev.Points), WeightPoints) +
		costIf(!p.Props.Equal(prev.Props), WeightProperties)
}

// Cost is Diff against the zero state.
func (p *Path) Cost() int { return p.Diff(nil) }
