// Package io reads and writes the JSON-lines shape stream that drives the
// object cache from the command line.
//
// # Format
//
// One JSON object per line, one shape per object. Blank lines and lines
// starting with '#' are skipped.
//
//	{"kind":"box","layer":1,"datatype":0,"x":0,"y":0,"w":10,"h":5}
//	{"kind":"polygon","layer":2,"points":[[0,0],[10,0],[0,10]]}
//	{"kind":"path","layer":3,"half_width":2,"cap":"halfwidth","points":[[0,0],[100,0]]}
//	{"kind":"label","layer":9,"texttype":0,"x":5,"y":5,"text":"VDD","rotation":90}
//	{"kind":"placement","cell":"INV_X1","x":100,"y":0,"mirror":true,"mag":2}
//
// # Fields
//
// Common:
//   - kind: box, polygon, path, label or placement (required)
//   - props: list of {"name": ..., "value": ...} properties
//
// Box: layer, datatype, x, y (lower-left corner), w, h.
// Polygon: layer, datatype, points (absolute vertices, at least 3).
// Path: layer, datatype, points (absolute centre line, at least 2),
// half_width, cap (flush, halfwidth or explicit), start_ext, end_ext.
// Label: layer, texttype, x, y, text, rotation, mirror, mag.
// Placement: cell, x, y, rotation, mirror, mag.
//
// Rotations are in degrees and must be multiples of 90. A missing or zero
// mag means 1.
//
// # Import
//
// Use [Decode] to stream items from any io.Reader, [ImportFile] for a path,
// and [Feed] to push a stream straight into an [cache.ObjectCache]:
//
//	stats, err := io.Feed(c, direct, f)
//
// Errors carry the code INVALID_INPUT and the offending line number.
//
// # Export
//
// [FromRecord] expands a written record back into one item per position,
// so a compacted stream can be checked against its input with [Multiset].
// [WriteItems] encodes items in the stream format.
//
// [cache.ObjectCache]: github.com/matzehuels/shapecache/pkg/cache.ObjectCache
package io
