package shape

import (
	"cmp"

	"github.com/matzehuels/shapecache/pkg/geom"
)

// Box is an axis-aligned rectangle anchored at its lower-left corner.
type Box struct {
	Layer    uint32
	Datatype uint32
	Width    int64
	Height   int64
	Props    Properties
}

// NewBox builds the canonical box spanning the corners a and b, which may be
// given in any order. The anchor is the lower-left corner.
func NewBox(layer, datatype uint32, a, b geom.Point, props Properties) (Box, geom.Point) {
	ll := geom.Pt(min(a.X, b.X), min(a.Y, b.Y))
	ur := geom.Pt(max(a.X, b.X), max(a.Y, b.Y))
	return Box{
		Layer:    layer,
		Datatype: datatype,
		Width:    ur.X - ll.X,
		Height:   ur.Y - ll.Y,
		Props:    props.Canonical(),
	}, ll
}

func (b *Box) Kind() Kind { return KindBox }

func (b *Box) LayerDatatype() (uint32, uint32, bool) { return b.Layer, b.Datatype, true }

func (b *Box) Properties() Properties { return b.Props }

// Hash returns the content hash of b.
func (b *Box) Hash() uint64 {
	h := newHasher()
	h.u32(b.Layer)
	h.u32(b.Datatype)
	h.i64(b.Width)
	h.i64(b.Height)
	return withProperties(h.sum(), b.Props)
}

// Equal reports structural identity.
func (b *Box) Equal(o *Box) bool {
	return b.Layer == o.Layer && b.Datatype == o.Datatype &&
		b.Width == o.Width && b.Height == o.Height &&
		b.Props.Equal(o.Props)
}

// Compare orders boxes by layer, datatype, width, height, then properties.
func (b *Box) Compare(o *Box) int {
	return cmp.Or(
		cmp.Compare(b.Layer, o.Layer),
		cmp.Compare(b.Datatype, o.Datatype),
		cmp.Compare(b.Width, o.Width),
		cmp.Compare(b.Height, o.Height),
		b.Props.Compare(o.Props),
	)
}

// Diff returns the modal cost of writing b after prev; nil prev is the zero
// state.
func (b *Box) Diff(prev *Box) int {
	if prev == nil {
		prev = &Box{}
	}
	return costIf(b.Layer != prev.Layer, WeightLayer) +
		costIf(b.Datatype != prev.Datatype, WeightDatatype) +
		costIf(b.Width != prev.Width, WeightDimension) +
		costIf(b.Height != prev.Height, WeightDimension) +
		costIf(!b.Props.Equal(prev.Props), WeightProperties)
}

// Cost is Diff against the zero state.
func (b *Box) Cost() int { return b.Diff(nil) }
