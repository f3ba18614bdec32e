package writer

import (
	"github.com/matzehuels/shapecache/pkg/geom"
	"github.com/matzehuels/shapecache/pkg/repetition"
)

// Descriptor is the writer-side repetition slot: the flattened fields of a
// pattern as the exchange format stores them.
//
// Which fields are set depends on Type:
//
//	1        XDim, YDim, XSpace, YSpace
//	2        XDim, XSpace
//	3        YDim, YSpace
//	4, 5     Spaces (consecutive x spacings), Grid
//	6, 7     Spaces (consecutive y spacings), Grid
//	8        XDim (n), YDim (m), Steps[0] (n-displacement), Steps[1] (m-displacement)
//	9        XDim, Steps[0]
//	10, 11   Displacements (consecutive), Grid
//
// Grid-scaled types store spacings and displacements divided by Grid.
type Descriptor struct {
	Type          repetition.Code `json:"type"`
	Origin        geom.Point      `json:"origin"`
	XDim          int             `json:"x_dim,omitempty"`
	YDim          int             `json:"y_dim,omitempty"`
	XSpace        int64           `json:"x_space,omitempty"`
	YSpace        int64           `json:"y_space,omitempty"`
	Steps         []geom.Point    `json:"steps,omitempty"`
	Spaces        []int64         `json:"spaces,omitempty"`
	Displacements []geom.Point    `json:"displacements,omitempty"`
	Grid          int64           `json:"grid,omitempty"`
}

// Describe flattens p into a Descriptor. A Single yields a descriptor of
// type CodeNone.
func Describe(p repetition.Pattern) Descriptor {
	d := Descriptor{Type: p.Code(), Origin: p.Origin()}

	switch v := p.(type) {
	case repetition.Run:
		switch d.Type {
		case repetition.CodeRow:
			d.XDim, d.XSpace = v.N, v.Step.X
		case repetition.CodeColumn:
			d.YDim, d.YSpace = v.N, v.Step.Y
		default:
			d.XDim, d.Steps = v.N, []geom.Point{v.Step}
		}

	case repetition.Array:
		if d.Type != repetition.CodeOrthogonalArray {
			d.XDim, d.YDim = v.N1, v.N2
			d.Steps = []geom.Point{v.Step1, v.Step2}
			break
		}
		if v.Step1.Y == 0 {
			d.XDim, d.XSpace, d.YDim, d.YSpace = v.N1, v.Step1.X, v.N2, v.Step2.Y
		} else {
			d.XDim, d.XSpace, d.YDim, d.YSpace = v.N2, v.Step2.X, v.N1, v.Step1.Y
		}

	case repetition.Residual:
		if v.Gridded() {
			d.Grid = v.Grid
		}
		steps := consecutive(v.Offsets)
		switch d.Type {
		case repetition.CodeRowResidual, repetition.CodeRowResidualGrid:
			d.Spaces = make([]int64, len(steps))
			for i, s := range steps {
				d.Spaces[i] = s.X
			}
		case repetition.CodeColumnResidual, repetition.CodeColumnResidualGrid:
			d.Spaces = make([]int64, len(steps))
			for i, s := range steps {
				d.Spaces[i] = s.Y
			}
		default:
			d.Displacements = steps
		}
	}
	return d
}

// Positions expands d back to absolute positions.
func (d Descriptor) Positions() []geom.Point {
	grid := max(d.Grid, 1)
	switch d.Type {
	case repetition.CodeNone:
		return []geom.Point{d.Origin}
	case repetition.CodeOrthogonalArray:
		return repetition.Array{At: d.Origin, Step1: geom.Pt(d.XSpace, 0), N1: d.XDim, Step2: geom.Pt(0, d.YSpace), N2: d.YDim}.Positions()
	case repetition.CodeRow:
		return repetition.Run{At: d.Origin, Step: geom.Pt(d.XSpace, 0), N: d.XDim}.Positions()
	case repetition.CodeColumn:
		return repetition.Run{At: d.Origin, Step: geom.Pt(0, d.YSpace), N: d.YDim}.Positions()
	case repetition.CodeArray:
		return repetition.Array{At: d.Origin, Step1: d.Steps[0], N1: d.XDim, Step2: d.Steps[1], N2: d.YDim}.Positions()
	case repetition.CodeRun:
		return repetition.Run{At: d.Origin, Step: d.Steps[0], N: d.XDim}.Positions()
	case repetition.CodeRowResidual, repetition.CodeRowResidualGrid:
		return walk(d.Origin, d.Spaces, grid, func(s int64) geom.Point { return geom.Pt(s, 0) })
	case repetition.CodeColumnResidual, repetition.CodeColumnResidualGrid:
		return walk(d.Origin, d.Spaces, grid, func(s int64) geom.Point { return geom.Pt(0, s) })
	}
	out := []geom.Point{d.Origin}
	at := d.Origin
	for _, s := range d.Displacements {
		at = at.Add(s.Mul(grid))
		out = append(out, at)
	}
	return out
}

func walk(origin geom.Point, spaces []int64, grid int64, step func(int64) geom.Point) []geom.Point {
	out := []geom.Point{origin}
	at := origin
	for _, s := range spaces {
		at = at.Add(step(s).Mul(grid))
		out = append(out, at)
	}
	return out
}

// consecutive converts offsets from a common origin into steps from each
// occurrence to the next.
func consecutive(offsets []geom.Point) []geom.Point {
	out := make([]geom.Point, len(offsets))
	var prev geom.Point
	for i, o := range offsets {
		out[i] = o.Sub(prev)
		prev = o
	}
	return out
}
