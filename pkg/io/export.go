package io

import (
	"fmt"

	"github.com/matzehuels/shapecache/pkg/geom"
	"github.com/matzehuels/shapecache/pkg/shape"
	"github.com/matzehuels/shapecache/pkg/writer"
)

// FromRecord expands a written record into one item per position it stands
// for.
func FromRecord(rec writer.Record) []Item {
	positions := rec.Positions()
	out := make([]Item, 0, len(positions))
	for _, at := range positions {
		out = append(out, itemAt(rec.Shape, at))
	}
	return out
}

func itemAt(s shape.Shape, at geom.Point) Item {
	it := Item{Kind: s.Kind().String(), X: at.X, Y: at.Y, Props: s.Properties()}
	switch v := s.(type) {
	case *shape.Box:
		it.Layer, it.Datatype = v.Layer, v.Datatype
		it.W, it.H = v.Width, v.Height
	case *shape.Polygon:
		it.Layer, it.Datatype = v.Layer, v.Datatype
		it.Points = absolute(v.Points, at)
		it.X, it.Y = 0, 0
	case *shape.Path:
		it.Layer, it.Datatype = v.Layer, v.Datatype
		it.Points = absolute(v.Points, at)
		it.X, it.Y = 0, 0
		it.HalfWidth = v.HalfWidth
		it.Cap = v.Cap.String()
		it.StartExt, it.EndExt = v.StartExt, v.EndExt
	case *shape.Label:
		it.Layer, it.Texttype = v.Layer, v.Texttype
		it.Text = v.Text
		setTransform(&it, v.Transform)
	case *shape.Placement:
		it.Cell = v.Cell
		setTransform(&it, v.Transform)
	}
	return it
}

func absolute(rel []geom.Point, at geom.Point) [][2]int64 {
	out := make([][2]int64, len(rel))
	for i, p := range rel {
		q := p.Add(at)
		out[i] = [2]int64{q.X, q.Y}
	}
	return out
}

func setTransform(it *Item, t shape.Transform) {
	it.Rotation = t.Rotation.Degrees()
	it.Mirror = t.Mirror
	it.Mag = t.Mag
}

// Key identifies an item by its canonical shape and absolute anchor, so
// that equivalent spellings of the same shape share a key.
func Key(it Item) string {
	kind, err := it.ShapeKind()
	if err != nil {
		return "invalid " + it.Kind
	}
	var (
		s  any
		at geom.Point
	)
	switch kind {
	case shape.KindBox:
		b, anchor := shape.NewBox(it.Layer, it.Datatype, it.At(), it.At().Add(it.Size()), it.Props)
		s, at = b, anchor
	case shape.KindPolygon:
		p, anchor := shape.NewPolygon(it.Layer, it.Datatype, it.Vertices(), it.Props)
		s, at = p, anchor
	case shape.KindPath:
		capStyle, _ := shape.ParseCapStyle(it.Cap)
		p, anchor := shape.NewPath(it.Layer, it.Datatype, it.HalfWidth, capStyle, it.StartExt, it.EndExt, it.Vertices(), it.Props)
		s, at = p, anchor
	case shape.KindLabel:
		t, _ := it.Transform()
		l, anchor := shape.NewLabel(it.Layer, it.Texttype, it.Text, t, it.At(), it.Props)
		s, at = l, anchor
	default:
		t, _ := it.Transform()
		p, anchor := shape.NewPlacement(it.Cell, t, it.At(), it.Props)
		s, at = p, anchor
	}
	return fmt.Sprintf("%s %v %+v", kind, at, s)
}

// Multiset counts items by Key.
func Multiset(items []Item) map[string]int {
	out := make(map[string]int, len(items))
	for _, it := range items {
		out[Key(it)]++
	}
	return out
}
