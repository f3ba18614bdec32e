// Package shape defines the canonical, position-free content of the five
// layout primitives that the shape cache deduplicates.
//
// # Canonical Shapes
//
// A canonical shape keeps every field that decides structural identity and
// drops the absolute position:
//
//   - [Box]: layer, datatype, width and height. Anchor is the lower-left corner.
//   - [Polygon]: layer, datatype and the vertex list relative to the first vertex.
//   - [Path]: layer, datatype, half-width, end style and the relative centre line.
//   - [Label]: text layer, texttype, NFC-normalised text and transform.
//   - [Placement]: referenced cell name and transform.
//
// Each constructor ([NewBox], [NewPolygon], [NewPath], [NewLabel],
// [NewPlacement]) takes absolute geometry and returns the canonical shape
// together with its anchor, so that translated copies compare equal:
//
//	a, at := shape.NewPolygon(1, 0, []geom.Point{{10, 10}, {20, 10}, {10, 30}}, nil)
//	b, _ := shape.NewPolygon(1, 0, []geom.Point{{0, 0}, {10, 0}, {0, 20}}, nil)
//	a.Equal(&b) // true; at == geom.Point{X: 10, Y: 10}
//
// # Identity
//
// Equality compares all content fields and treats [Properties] as an
// unordered multiset. Hash is computed over the same fields with an
// order-independent combination of properties, so equal shapes always hash
// equal.
//
// # Output Cost
//
// The writer encodes records modally: a field equal to the previous
// record's value is omitted. Diff returns the weighted number of fields a
// record changes relative to the previous one (or to the zero state when
// the previous record is nil) and Cost is Diff against the zero state. The
// ordering package uses both to sequence records.
package shape
