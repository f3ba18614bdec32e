package repetition

import "github.com/matzehuels/shapecache/pkg/geom"

// axis lets the run and array passes share one implementation for rows
// and columns. A lane is a row (fixed Y) or a column (fixed X); pos is the
// coordinate along the lane.
type axis int

const (
	rows axis = iota
	columns
)

func (a axis) lane(p geom.Point) int64 {
	if a == rows {
		return p.Y
	}
	return p.X
}

func (a axis) pos(p geom.Point) int64 {
	if a == rows {
		return p.X
	}
	return p.Y
}

func (a axis) point(lane, pos int64) geom.Point {
	if a == rows {
		return geom.Pt(pos, lane)
	}
	return geom.Pt(lane, pos)
}

// along is a step of d along the lane.
func (a axis) along(d int64) geom.Point { return a.point(0, d) }

func (a axis) compare(p, q geom.Point) int {
	if a == rows {
		return geom.CompareRows(p, q)
	}
	return geom.CompareColumns(p, q)
}
