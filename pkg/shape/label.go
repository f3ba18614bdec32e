package shape

import (
	"cmp"

	"golang.org/x/text/unicode/norm"

	"github.com/matzehuels/shapecache/pkg/geom"
)

// Label is a text string placed on a text layer.
type Label struct {
	Layer     uint32
	Texttype  uint32
	Text      string
	Transform Transform
	Props     Properties
}

// NewLabel builds the canonical label. The text is normalised to Unicode
// NFC so that canonically equivalent strings deduplicate; the anchor is the
// text origin at.
func NewLabel(layer, texttype uint32, text string, t Transform, at geom.Point, props Properties) (Label, geom.Point) {
	return Label{
		Layer:     layer,
		Texttype:  texttype,
		Text:      norm.NFC.String(text),
		Transform: t.canonical(),
		Props:     props.Canonical(),
	}, at
}

func (l *Label) Kind() Kind { return KindLabel }

func (l *Label) LayerDatatype() (uint32, uint32, bool) { return l.Layer, l.Texttype, true }

func (l *Label) Properties() Properties { return l.Props }

// Hash returns the content hash of l.
func (l *Label) Hash() uint64 {
	h := newHasher()
	h.u32(l.Layer)
	h.u32(l.Texttype)
	h.string(l.Text)
	h.transform(l.Transform)
	return withProperties(h.sum(), l.Props)
}

// Equal reports structural identity.
func (l *Label) Equal(o *Label) bool {
	return l.Layer == o.Layer && l.Texttype == o.Texttype &&
		l.Text == o.Text &&
		l.Transform.compare(o.Transform) == 0 &&
		l.Props.Equal(o.Props)
}

// Compare orders labels by layer, texttype, text, transform, then
// properties.
func (l *Label) Compare(o *Label) int {
	return cmp.Or(
		cmp.Compare(l.Layer, o.Layer),
		cmp.Compare(l.Texttype, o.Texttype),
		cmp.Compare(l.Text, o.Text),
		l.Transform.compare(o.Transform),
		l.Props.Compare(o.Props),
	)
}

// Diff returns the modal cost of writing l after prev.
func (l *Label) Diff(prev *Label) int {
	if prev == nil {
		prev = &Label{}
	}
	return costIf(l.Layer != prev.Layer, WeightLayer) +
		costIf(l.Texttype != prev.Texttype, WeightDatatype) +
		costIf(l.Text != prev.Text, WeightText) +
		costIf(l.Transform.compare(prev.Transform) != 0, WeightTransform) +
		costIf(!l.Props.Equal(prev.Props), WeightProperties)
}

// Cost is Diff against the zero state.
func (l *Label) Cost() int { return l.Diff(nil) }
