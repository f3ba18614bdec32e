package writer

import (
	"github.com/matzehuels/shapecache/pkg/geom"
	"github.com/matzehuels/shapecache/pkg/shape"
)

// Null is a writer that discards every record.
// Useful for benchmarking recognition without output.
type Null struct {
	Modal
}

// NewNull creates a null writer.
func NewNull() *Null { return &Null{} }

func (*Null) WriteBox(*shape.Box, geom.Point) error             { return nil }
func (*Null) WritePolygon(*shape.Polygon, geom.Point) error     { return nil }
func (*Null) WritePath(*shape.Path, geom.Point) error           { return nil }
func (*Null) WriteLabel(*shape.Label, geom.Point) error         { return nil }
func (*Null) WritePlacement(*shape.Placement, geom.Point) error { return nil }

// Ensure Null implements Writer.
var _ Writer = (*Null)(nil)
