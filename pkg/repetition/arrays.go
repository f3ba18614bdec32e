package repetition

import (
	"slices"

	"github.com/matzehuels/shapecache/pkg/geom"
)

// findArrays extracts orthogonal arrays of at least arrayMin × arrayMin
// points. pts must not contain duplicates. Each array is anchored at its
// lowest-leftmost point with Step1 along X and Step2 along Y. Points not
// claimed by an array are returned in rest, in row order.
func findArrays(pts []geom.Point, arrayMin int) (arrays []Array, rest []geom.Point) {
	if len(pts) < arrayMin*arrayMin {
		return nil, slices.Clone(pts)
	}

	l := newLattice(pts)
	for i := range l.pts {
		if l.used[i] {
			continue
		}
		if a, ok := l.largest(i, arrayMin); ok {
			l.claim(a)
			arrays = append(arrays, a)
		}
	}
	for i, p := range l.pts {
		if !l.used[i] {
			rest = append(rest, p)
		}
	}
	return arrays, rest
}

// lattice indexes a point set for rectangle growth.
type lattice struct {
	pts   []geom.Point // row order
	index map[geom.Point]int
	used  []bool
	// above is the index of the next point up the same column, or -1.
	above []int
}

func newLattice(pts []geom.Point) *lattice {
	sorted := slices.Clone(pts)
	slices.SortFunc(sorted, geom.CompareRows)

	l := &lattice{
		pts:   sorted,
		index: make(map[geom.Point]int, len(sorted)),
		used:  make([]bool, len(sorted)),
		above: make([]int, len(sorted)),
	}
	for i, p := range sorted {
		l.index[p] = i
		l.above[i] = -1
	}

	byColumn := make([]int, len(sorted))
	for i := range byColumn {
		byColumn[i] = i
	}
	slices.SortFunc(byColumn, func(a, b int) int { return geom.CompareColumns(sorted[a], sorted[b]) })
	for k := 1; k < len(byColumn); k++ {
		lo, hi := byColumn[k-1], byColumn[k]
		if sorted[lo].X == sorted[hi].X {
			l.above[lo] = hi
		}
	}
	return l
}

func (l *lattice) free(p geom.Point) bool {
	i, ok := l.index[p]
	return ok && !l.used[i]
}

// count returns how many free points lie at p, p+d, p+2d, ..., up to limit.
func (l *lattice) count(p, d geom.Point, limit int) int {
	n := 0
	for n < limit && l.free(p.Add(d.Mul(int64(n)))) {
		n++
	}
	return n
}

// rowSteps proposes X pitches from the next free points right of pts[i].
func (l *lattice) rowSteps(i int) []int64 {
	var steps []int64
	y := l.pts[i].Y
	for j := i + 1; j < len(l.pts) && l.pts[j].Y == y && len(steps) < strideSamples; j++ {
		if !l.used[j] {
			steps = append(steps, l.pts[j].X-l.pts[i].X)
		}
	}
	return steps
}

// columnSteps proposes Y pitches from the next free points above pts[i].
func (l *lattice) columnSteps(i int) []int64 {
	var steps []int64
	for j := l.above[i]; j >= 0 && len(steps) < strideSamples; j = l.above[j] {
		if !l.used[j] {
			steps = append(steps, l.pts[j].Y-l.pts[i].Y)
		}
	}
	return steps
}

// largest returns the array of greatest area anchored at pts[i] over the
// candidate pitches. Earlier candidates win ties.
func (l *lattice) largest(i, arrayMin int) (Array, bool) {
	p := l.pts[i]
	var best Array
	bestArea := 0

	columnSteps := l.columnSteps(i)
	if len(columnSteps) == 0 {
		return best, false
	}
	for _, dx := range l.rowSteps(i) {
		step1 := geom.Pt(dx, 0)
		width := l.count(p, step1, len(l.pts))
		if width < arrayMin {
			continue
		}
		for _, dy := range columnSteps {
			step2 := geom.Pt(0, dy)
			w := width
			for j := 1; ; j++ {
				w = l.count(p.Add(step2.Mul(int64(j))), step1, w)
				if w < arrayMin {
					break
				}
				if area := w * (j + 1); j+1 >= arrayMin && area > bestArea {
					best = Array{At: p, Step1: step1, N1: w, Step2: step2, N2: j + 1}
					bestArea = area
				}
			}
		}
	}
	return best, bestArea > 0
}

func (l *lattice) claim(a Array) {
	for _, p := range a.Positions() {
		l.used[l.index[p]] = true
	}
}
