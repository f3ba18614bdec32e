// Package pkg provides the libraries behind shapecache, a geometry
// deduplication and repetition-recognition layer for OASIS-style layout
// writers.
//
// # Overview
//
// A layout writer emits boxes, polygons, paths, labels and cell placements.
// Production layouts repeat the same shape thousands of times at different
// offsets. Instead of writing each copy, the shape cache records every shape
// once, collects the positions it occurs at, and on flush describes those
// positions as a small number of repetition records (runs, arrays and
// residual point lists).
//
// The pkg directory is organized into three areas:
//
//  1. Geometry and content: [geom], [shape], [table]
//  2. Compaction: [repetition], [ordering], [cache]
//  3. Plumbing: [writer], [config], [io], [errors], [observability], [buildinfo]
//
// # Architecture
//
// The data flow through the cache:
//
//	layout producer (or a JSON-lines stream via [io])
//	         ↓
//	    [cache] ObjectCache (normalize, route by kind)
//	         ↓
//	    [table] Table (dedupe canonical shapes, collect placements)
//	         ↓  flush
//	    [ordering] (sequence unique shapes by modal cost)
//	         ↓
//	    [repetition] Builder (partition positions into patterns)
//	         ↓
//	    [writer] Writer (one record per pattern)
//
// # Quick Start
//
//	rec := writer.NewRecorder()
//	c := cache.New(rec)
//	c.SetupRepetition("r m=4 a=2 x=10000", false)
//
//	for i := range 8 {
//	    c.CacheBox(1, 0, geom.Pt(int64(i)*100, 0), geom.Pt(int64(i)*100+50, 50), nil)
//	}
//	if err := c.Close(); err != nil {
//	    return err
//	}
//	// rec.Records holds a single row run of eight boxes.
//
// # Main Packages
//
// [geom] - Integer points, row and column ordering, grid factors.
//
// [shape] - The five canonical shape kinds. Each shape stores its content
// relative to an anchor so that translated copies compare equal.
//
// [table] - Hash-bucketed content table mapping canonical shapes to their
// placement lists.
//
// [repetition] - Recognizes runs, arrays and residuals in a point set. The
// returned patterns always cover every input position exactly once.
//
// [ordering] - Quick and search orderings that reduce modal-variable churn
// between consecutive records.
//
// [cache] - ObjectCache, the entry point. Owns one table per kind and
// flushes them when the item or repetition limits are reached.
//
// [writer] - The downstream interface, plus a recorder, a JSON-lines sink,
// a null writer and a tee.
//
// [config] - Parser for the repetition settings string and the TOML settings
// file.
//
// [io] - JSON-lines shape stream decoding and the feed loop used by the CLI.
//
// # Testing
//
//	go test ./pkg/...            # All tests
//	go test ./pkg/repetition/... # Specific package
//	go test -run Example ./...   # Examples only
package pkg
