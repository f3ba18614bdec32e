package shape

import (
	"cmp"
	"slices"

	"github.com/matzehuels/shapecache/pkg/geom"
)

// Polygon is a closed vertex list. Points are relative to the first vertex,
// so Points[0] is always the origin.
type Polygon struct {
	Layer    uint32
	Datatype uint32
	Points   []geom.Point
	Props    Properties
}

// NewPolygon builds the canonical polygon for the absolute vertices pts.
// The anchor is the first vertex.
func NewPolygon(layer, datatype uint32, pts []geom.Point, props Properties) (Polygon, geom.Point) {
	rel, anchor := relative(pts)
	return Polygon{
		Layer:    layer,
		Datatype: datatype,
		Points:   rel,
		Props:    props.Canonical(),
	}, anchor
}

func (p *Polygon) Kind() Kind { return KindPolygon }

func (p *Polygon) LayerDatatype() (uint32, uint32, bool) { return p.Layer, p.Datatype, true }

func (p *Polygon) Properties() Properties { return p.Props }

// Hash returns the content hash of p.
func (p *Polygon) Hash() uint64 {
	h := newHasher()
	h.u32(p.Layer)
	h.u32(p.Datatype)
	h.points(p.Points)
	return withProperties(h.sum(), p.Props)
}

// Equal reports structural identity.
func (p *Polygon) Equal(o *Polygon) bool {
	return p.Layer == o.Layer && p.Datatype == o.Datatype &&
		slices.Equal(p.Points, o.Points) &&
		p.Props.Equal(o.Props)
}

// Compare orders polygons by layer, datatype, vertex list, then properties.
func (p *Polygon) Compare(o *Polygon) int {
	return cmp.Or(
		cmp.Compare(p.Layer, o.Layer),
		cmp.Compare(p.Datatype, o.Datatype),
		comparePoints(p.Points, o.Points),
		p.Props.Compare(o.Props),
	)
}

// Diff returns the modal cost of writing p after prev.
func (p *Polygon) Diff(prev *Polygon) int {
	if prev == nil {
		prev = &Polygon{}
	}
	return costIf(p.Layer != prev.Layer, WeightLayer) +
		costIf(p.Datatype != prev.Datatype, WeightDatatype) +
		costIf(!slices.Equal(p.Points, prev.Points), WeightPoints) +
		costIf(!p.Props.Equal(prev.Props), WeightProperties)
}

// Cost is Diff against the zero state.
func (p *Polygon) Cost() int { return p.Diff(nil) }
