// Package ordering sequences the unique shapes of one kind before they are
// written.
//
// # The Ordering Problem
//
// The writer encodes records modally: each record omits fields whose value
// equals the previous record's. The size of the output therefore depends on
// the order of the records, and the cost of an order is the sum of
// per-record field changes ([TotalCost]).
//
// This package provides two algorithms:
//
//   - [QuickSort]: comparison sort by the shapes' total order (layer first).
//     O(n log n); groups equal layers and dimensions together.
//   - [SearchSort]: greedy nearest neighbour. It starts with the record
//     cheapest to write from the zero state and then repeatedly appends the
//     unplaced record that changes the fewest fields. O(n²).
//
// Search sort never returns an order costlier than its input: when the
// greedy order loses, the input order is kept. Ties are broken by the
// shapes' total order so the result depends only on the set of records,
// which makes a second pass a no-op.
//
// # Usage
//
//	order := ordering.Sort(shapes, ordering.ModeAuto)
//
// [ModeAuto] uses search sort up to [SearchLimit] records and quick sort
// above it.
package ordering
