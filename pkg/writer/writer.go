// Package writer defines the record writer the shape cache flushes into,
// together with the repetition descriptor handed to it and three
// implementations:
//
//   - [Recorder]: keeps every record in memory; used by tests and the CLI
//     verifier. It can inject a failure after a given number of writes.
//   - [JSONSink]: writes one JSON object per record to an io.Writer.
//   - [Null]: discards everything.
//
// [Tee] fans every call out to several writers.
//
// # Protocol
//
// For each canonical shape the cache calls [Writer.SetLayerDatatype], and
// for each of its patterns [Writer.SetupProperties], optionally
// [Writer.SetRepetition], one Write call at the pattern origin and
// [Writer.UnsetRepetition]. It ends the shape with
// [Writer.ClearPropertyQueue] and restores the previous layer pair.
//
// [Modal] carries the modal state shared by the implementations.
package writer

import (
	"github.com/matzehuels/shapecache/pkg/geom"
	"github.com/matzehuels/shapecache/pkg/repetition"
	"github.com/matzehuels/shapecache/pkg/shape"
)

// Writer consumes canonical shapes at absolute positions. A non-nil error
// from any Write or SetupProperties call aborts the flush in progress.
type Writer interface {
	WriteBox(b *shape.Box, at geom.Point) error
	WritePolygon(p *shape.Polygon, at geom.Point) error
	WritePath(p *shape.Path, at geom.Point) error
	WriteLabel(l *shape.Label, at geom.Point) error
	WritePlacement(p *shape.Placement, at geom.Point) error

	// SetupProperties queues the properties of the next record.
	SetupProperties(props shape.Properties) error
	// ClearPropertyQueue drops queued properties.
	ClearPropertyQueue()

	// SetLayerDatatype sets the modal layer pair and returns the previous one.
	SetLayerDatatype(layer, datatype uint32) (oldLayer, oldDatatype uint32)

	// SetRepetition attaches p to the next record until UnsetRepetition.
	SetRepetition(p repetition.Pattern)
	UnsetRepetition()
}
