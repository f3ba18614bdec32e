// Package repetition partitions the positions of one canonical shape into
// periodic patterns that the writer can encode as a single record.
//
// # Patterns
//
// [Pattern] is a closed sum type with four variants:
//
//   - [Single]: one occurrence, written without a repetition.
//   - [Run]: N occurrences spaced by a constant step along a row or column.
//   - [Array]: a grid of N1 × N2 occurrences spanned by two steps.
//   - [Residual]: occurrences without detected periodicity, listed as
//     explicit offsets from the first one, optionally on a coarser grid.
//
// Every variant reports [Pattern.Count] and can expand back to absolute
// positions with [Pattern.Positions]; [Pattern.Code] gives the repetition
// type code of the exchange format.
//
// # Building
//
// [Builder.Build] runs four passes over a point list:
//
//  1. Arrays: starting at each unclaimed point in row order, the next three
//     points to its right and above propose X and Y pitches. The rectangle
//     of largest area anchored there is claimed once both sides reach the
//     array minimum. Lanes shorter than the run minimum still qualify.
//  2. Row runs: the leftovers are grouped by Y; starting at each
//     unconsumed point the next three points propose candidate strides,
//     the longest extension wins and is extracted once it reaches the run
//     minimum.
//  3. Column runs: the same over the row leftovers, grouped by X.
//  4. Residual: everything else, grid-compacted when enabled.
//
// Coincident points are never merged away: the first copy takes part in
// array and run detection and the others go to the residual, so the sum of
// pattern counts always equals the number of input points.
//
// The search is greedy: among groupings of equal length the earliest found
// wins, and no globally optimal packing is attempted.
package repetition
