package repetition

import (
	"slices"

	"github.com/matzehuels/shapecache/pkg/geom"
)

const (
	// MinRun is the hard floor for the run minimum. Builders configured
	// below it use MinRun.
	MinRun = 4

	// DefaultRunMin is the default shortest extracted run.
	DefaultRunMin = 4

	// DefaultArrayMin is the default smallest array dimension.
	DefaultArrayMin = 2

	// strideSamples is how many following points propose candidate strides.
	strideSamples = 3
)

// Builder partitions point lists into patterns. The zero value disables
// periodicity; use [NewBuilder] for the defaults.
type Builder struct {
	// RunMin is the shortest run extracted. Values below MinRun use MinRun.
	RunMin int
	// ArrayMin is the smallest number of rows and columns of an array.
	// Zero disables arrays; 1 is treated as 2.
	ArrayMin int
	// Periodic enables run and array detection. When false every point
	// goes to the residual.
	Periodic bool
	// GridCompaction divides residual offsets by their common grid factor.
	GridCompaction bool
}

// NewBuilder returns a builder with the default limits, periodicity and grid
// compaction enabled.
func NewBuilder() Builder {
	return Builder{
		RunMin:         DefaultRunMin,
		ArrayMin:       DefaultArrayMin,
		Periodic:       true,
		GridCompaction: true,
	}
}

func (b Builder) limits() (runMin, arrayMin int) {
	runMin = max(b.RunMin, MinRun)
	arrayMin = b.ArrayMin
	if arrayMin == 1 {
		arrayMin = 2
	}
	return runMin, max(arrayMin, 0)
}

// Build partitions points into arrays, runs and a residual, in that order.
// The input slice is not modified. The patterns cover every input point
// exactly once.
func (b Builder) Build(points []geom.Point) []Pattern {
	if len(points) == 0 {
		return nil
	}
	if !b.Periodic {
		return b.residual(slices.Clone(points))
	}

	runMin, arrayMin := b.limits()
	unique, coincident := dedupe(points)

	var out []Pattern
	rest := unique
	if arrayMin > 0 {
		var arrays []Array
		arrays, rest = findArrays(unique, arrayMin)
		for _, a := range arrays {
			out = append(out, a)
		}
	}

	var rowRuns, colRuns []Run
	rowRuns, rest = findRuns(rest, runMin, rows)
	colRuns, rest = findRuns(rest, runMin, columns)
	for _, r := range rowRuns {
		out = append(out, r)
	}
	for _, r := range colRuns {
		out = append(out, r)
	}

	rest = append(rest, coincident...)
	return append(out, b.residual(rest)...)
}

// residual turns the leftover points into a Single or a Residual.
func (b Builder) residual(pts []geom.Point) []Pattern {
	switch len(pts) {
	case 0:
		return nil
	case 1:
		return []Pattern{Single{At: pts[0]}}
	}

	slices.SortFunc(pts, geom.CompareRows)
	at := pts[0]
	offsets := make([]geom.Point, len(pts)-1)
	for i, p := range pts[1:] {
		offsets[i] = p.Sub(at)
	}

	return []Pattern{Compact(Residual{At: at, Offsets: offsets, Grid: 1}, b.GridCompaction)}
}

// Compact moves the offsets of r onto their coarsest common grid when enable
// is set and that grid is larger than 1. Offsets already on a grid are
// first expanded.
func Compact(r Residual, enable bool) Residual {
	g := r.grid()
	offsets := make([]geom.Point, len(r.Offsets))
	for i, o := range r.Offsets {
		offsets[i] = o.Mul(g)
	}
	out := Residual{At: r.At, Offsets: offsets, Grid: 1}
	if !enable {
		return out
	}

	factor := geom.PointsGridFactor(offsets)
	if factor <= 1 {
		return out
	}
	for i, o := range offsets {
		offsets[i] = o.Div(factor)
	}
	out.Grid = factor
	return out
}

// dedupe sorts a copy of pts row-major and splits off every repeated copy
// of a coincident position.
func dedupe(pts []geom.Point) (unique, coincident []geom.Point) {
	sorted := slices.Clone(pts)
	slices.SortFunc(sorted, geom.CompareRows)
	unique = make([]geom.Point, 0, len(sorted))
	for i, p := range sorted {
		if i > 0 && p == sorted[i-1] {
			coincident = append(coincident, p)
			continue
		}
		unique = append(unique, p)
	}
	return unique, coincident
}
