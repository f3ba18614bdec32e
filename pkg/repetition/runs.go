package repetition

import (
	"slices"

	"github.com/matzehuels/shapecache/pkg/geom"
)

// findRuns extracts every run of at least runMin points lying on a common
// lane of ax. pts must not contain duplicates. Points not claimed by a run
// are returned in rest, ordered along ax.
func findRuns(pts []geom.Point, runMin int, ax axis) (runs []Run, rest []geom.Point) {
	if len(pts) < runMin {
		return nil, slices.Clone(pts)
	}

	sorted := slices.Clone(pts)
	slices.SortFunc(sorted, ax.compare)

	for start := 0; start < len(sorted); {
		end := start + 1
		for end < len(sorted) && ax.lane(sorted[end]) == ax.lane(sorted[start]) {
			end++
		}
		laneRuns, laneRest := laneRuns(sorted[start:end], runMin, ax)
		runs = append(runs, laneRuns...)
		rest = append(rest, laneRest...)
		start = end
	}
	return runs, rest
}

// laneRuns scans one lane. lane holds distinct points of a single lane in
// ascending position order.
func laneRuns(lane []geom.Point, runMin int, ax axis) (runs []Run, rest []geom.Point) {
	if len(lane) < runMin {
		return nil, lane
	}

	index := make(map[int64]int, len(lane))
	for i, p := range lane {
		index[ax.pos(p)] = i
	}
	used := make([]bool, len(lane))

	// extend counts consecutive unused points at x0, x0+d, x0+2d, ...
	extend := func(x0, d int64) int {
		n := 1
		for {
			i, ok := index[x0+int64(n)*d]
			if !ok || used[i] {
				return n
			}
			n++
		}
	}

	for i, p := range lane {
		if used[i] {
			continue
		}
		used[i] = true
		x0 := ax.pos(p)

		best, stride := 1, int64(0)
		for j, sampled := i+1, 0; j < len(lane) && sampled < strideSamples; j++ {
			if used[j] {
				continue
			}
			sampled++
			d := ax.pos(lane[j]) - x0
			if n := extend(x0, d); n > best {
				best, stride = n, d
			}
		}

		if best < runMin {
			rest = append(rest, p)
			continue
		}
		for k := 1; k < best; k++ {
			used[index[x0+int64(k)*stride]] = true
		}
		runs = append(runs, Run{At: p, Step: ax.along(stride), N: best})
	}
	return runs, rest
}
