package shape

import (
	"cmp"

	"github.com/matzehuels/shapecache/pkg/geom"
)

// Placement is a reference to another cell.
type Placement struct {
	Cell      string
	Transform Transform
	Props     Properties
}

// NewPlacement builds the canonical placement of cell at the given origin.
func NewPlacement(cell string, t Transform, at geom.Point, props Properties) (Placement, geom.Point) {
	return Placement{
		Cell:      cell,
		Transform: t.canonical(),
		Props:     props.Canonical(),
	}, at
}

func (p *Placement) Kind() Kind { return KindPlacement }

func (p *Placement) LayerDatatype() (uint32, uint32, bool) { return 0, 0, false }

func (p *Placement) Properties() Properties { return p.Props }

// Hash returns the content hash of p.
func (p *Placement) Hash() uint64 {
	h := newHasher()
	h.string(p.Cell)
	h.transform(p.Transform)
	return withProperties(h.sum(), p.Props)
}

// Equal reports structural identity.
func (p *Placement) Equal(o *Placement) bool {
	return p.Cell == o.Cell &&
		p.Transform.compare(o.Transform) == 0 &&
		p.Props.Equal(o.Props)
}

// Compare orders placements by cell name, transform, then properties.
func (p *Placement) Compare(o *Placement) int {
	return cmp.Or(
		cmp.Compare(p.Cell, o.Cell),
		p.Transform.compare(o.Transform),
		p.Props.Compare(o.Props),
	)
}

// Diff returns the modal cost of writing p after prev.
func (p *Placement) Diff(prev *Placement) int {
	if prev == nil {
		prev = &Placement{}
	}
	return costIf(p.Cell != prev.Cell, WeightCell) +
		costIf(p.Transform.compare(prev.Transform) != 0, WeightTransform) +
		costIf(!p.Props.Equal(prev.Props), WeightProperties)
}

// Cost is Diff against the zero state.
func (p *Placement) Cost() int { return p.Diff(nil) }
