package shape

import (
	"slices"

	"github.com/matzehuels/shapecache/pkg/geom"
)

// Field weights for the modal output cost. A field that differs from the
// previous record costs its weight once.
const (
	WeightLayer      = 2
	WeightDatatype   = 2
	WeightDimension  = 3 // width, height, half-width
	WeightPoints     = 4
	WeightCap        = 1
	WeightExtension  = 2
	WeightText       = 4
	WeightTransform  = 2
	WeightCell       = 4
	WeightProperties = 4
)

// costIf returns w when differ is true.
func costIf(differ bool, w int) int {
	if differ {
		return w
	}
	return 0
}

func comparePoints(a, b []geom.Point) int {
	return slices.CompareFunc(a, b, geom.CompareRows)
}

// relative converts absolute vertices to offsets from the first vertex.
func relative(pts []geom.Point) (rel []geom.Point, anchor geom.Point) {
	if len(pts) == 0 {
		return nil, geom.Point{}
	}
	anchor = pts[0]
	rel = make([]geom.Point, len(pts))
	for i, p := range pts {
		rel[i] = p.Sub(anchor)
	}
	return rel, anchor
}
