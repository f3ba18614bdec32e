package repetition

import (
	"fmt"

	"github.com/matzehuels/shapecache/pkg/geom"
)

// Code is the repetition type code written to the exchange format.
type Code int

const (
	CodeNone               Code = 0  // no repetition
	CodeOrthogonalArray    Code = 1  // x-dimension, y-dimension, x-space, y-space
	CodeRow                Code = 2  // horizontal run
	CodeColumn             Code = 3  // vertical run
	CodeRowResidual        Code = 4  // irregular horizontal spacings
	CodeRowResidualGrid    Code = 5  // as 4, on a grid
	CodeColumnResidual     Code = 6  // irregular vertical spacings
	CodeColumnResidualGrid Code = 7  // as 6, on a grid
	CodeArray              Code = 8  // arbitrary 2-D array
	CodeRun                Code = 9  // arbitrary 1-D run
	CodeResidual           Code = 10 // arbitrary displacement list
	CodeResidualGrid       Code = 11 // as 10, on a grid
)

var codeNames = [...]string{
	CodeNone:               "single",
	CodeOrthogonalArray:    "array",
	CodeRow:                "row",
	CodeColumn:             "column",
	CodeRowResidual:        "row-residual",
	CodeRowResidualGrid:    "row-residual-grid",
	CodeColumnResidual:     "column-residual",
	CodeColumnResidualGrid: "column-residual-grid",
	CodeArray:              "general-array",
	CodeRun:                "general-run",
	CodeResidual:           "residual",
	CodeResidualGrid:       "residual-grid",
}

// String returns a short name for the code.
func (c Code) String() string {
	if c < 0 || int(c) >= len(codeNames) {
		return fmt.Sprintf("code(%d)", int(c))
	}
	return codeNames[c]
}

// Pattern is one group of occurrences of a canonical shape.
type Pattern interface {
	// Origin is the position at which the shape record is written.
	Origin() geom.Point
	// Count is the number of occurrences the pattern stands for.
	Count() int
	// Positions expands the pattern to absolute positions.
	Positions() []geom.Point
	Code() Code
	String() string

	isPattern()
}

// Single is a lone occurrence.
type Single struct {
	At geom.Point
}

func (s Single) Origin() geom.Point      { return s.At }
func (s Single) Count() int              { return 1 }
func (s Single) Positions() []geom.Point { return []geom.Point{s.At} }
func (s Single) Code() Code              { return CodeNone }
func (s Single) String() string          { return "single at " + s.At.String() }
func (Single) isPattern()                {}

// Run is N occurrences at At + k·Step for k in [0, N).
type Run struct {
	At   geom.Point
	Step geom.Point
	N    int
}

func (r Run) Origin() geom.Point { return r.At }
func (r Run) Count() int         { return r.N }

func (r Run) Positions() []geom.Point {
	out := make([]geom.Point, r.N)
	for k := range r.N {
		out[k] = r.At.Add(r.Step.Mul(int64(k)))
	}
	return out
}

func (r Run) Code() Code {
	switch {
	case r.Step.Y == 0 && r.Step.X > 0:
		return CodeRow
	case r.Step.X == 0 && r.Step.Y > 0:
		return CodeColumn
	}
	return CodeRun
}

func (r Run) String() string {
	return fmt.Sprintf("run at %v step %v x%d", r.At, r.Step, r.N)
}

func (Run) isPattern() {}

// end returns the last position of the run.
func (r Run) end() geom.Point { return r.At.Add(r.Step.Mul(int64(r.N - 1))) }

// Array is N1 × N2 occurrences at At + i·Step1 + j·Step2.
type Array struct {
	At    geom.Point
	Step1 geom.Point
	N1    int
	Step2 geom.Point
	N2    int
}

func (a Array) Origin() geom.Point { return a.At }
func (a Array) Count() int         { return a.N1 * a.N2 }

func (a Array) Positions() []geom.Point {
	out := make([]geom.Point, 0, a.Count())
	for j := range a.N2 {
		row := a.At.Add(a.Step2.Mul(int64(j)))
		for i := range a.N1 {
			out = append(out, row.Add(a.Step1.Mul(int64(i))))
		}
	}
	return out
}

// Orthogonal reports whether the steps are axis-parallel and positive, in
// either order.
func (a Array) Orthogonal() bool {
	horiz := func(p geom.Point) bool { return p.Y == 0 && p.X > 0 }
	vert := func(p geom.Point) bool { return p.X == 0 && p.Y > 0 }
	return (horiz(a.Step1) && vert(a.Step2)) || (vert(a.Step1) && horiz(a.Step2))
}

func (a Array) Code() Code {
	if a.Orthogonal() {
		return CodeOrthogonalArray
	}
	return CodeArray
}

func (a Array) String() string {
	return fmt.Sprintf("array at %v step %v x%d step %v x%d", a.At, a.Step1, a.N1, a.Step2, a.N2)
}

func (Array) isPattern() {}

// Residual is an irregular set of occurrences. Offsets are relative to At
// and expressed in units of Grid, so the absolute positions are
// At + Grid·Offsets[k]. Grid is at least 1.
type Residual struct {
	At      geom.Point
	Offsets []geom.Point
	Grid    int64
}

func (r Residual) Origin() geom.Point { return r.At }
func (r Residual) Count() int         { return 1 + len(r.Offsets) }

func (r Residual) Positions() []geom.Point {
	out := make([]geom.Point, 0, r.Count())
	out = append(out, r.At)
	for _, o := range r.Offsets {
		out = append(out, r.At.Add(o.Mul(r.grid())))
	}
	return out
}

func (r Residual) grid() int64 {
	if r.Grid < 1 {
		return 1
	}
	return r.Grid
}

// Gridded reports whether the offsets are stored on a coarser grid.
func (r Residual) Gridded() bool { return r.grid() > 1 }

func (r Residual) Code() Code {
	row, col := true, true
	for _, o := range r.Offsets {
		row = row && o.Y == 0
		col = col && o.X == 0
	}
	var c Code
	switch {
	case row:
		c = CodeRowResidual
	case col:
		c = CodeColumnResidual
	default:
		c = CodeResidual
	}
	if r.Gridded() {
		c++
	}
	return c
}

func (r Residual) String() string {
	if r.Gridded() {
		return fmt.Sprintf("residual at %v with %d offsets on grid %d", r.At, len(r.Offsets), r.Grid)
	}
	return fmt.Sprintf("residual at %v with %d offsets", r.At, len(r.Offsets))
}

func (Residual) isPattern() {}

// Total returns the number of occurrences covered by ps.
func Total(ps []Pattern) int {
	n := 0
	for _, p := range ps {
		n += p.Count()
	}
	return n
}

// Expand returns the absolute positions of every pattern in ps, in order.
func Expand(ps []Pattern) []geom.Point {
	out := make([]geom.Point, 0, Total(ps))
	for _, p := range ps {
		out = append(out, p.Positions()...)
	}
	return out
}
