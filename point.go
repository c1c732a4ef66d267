// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package timechart

import "github.com/gogpu/timechart/internal/seq"

// Point is one sample of a series: X is the domain coordinate (usually
// time), Y the value. Points are immutable once stored.
type Point struct {
	X, Y float64
}

// Pt is a convenience function to create a Point.
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

func toSeq(pts []Point) []seq.Point {
	out := make([]seq.Point, len(pts))
	for i, p := range pts {
		out[i] = seq.Point(p)
	}
	return out
}

func fromSeq(pts []seq.Point) []Point {
	out := make([]Point, len(pts))
	for i, p := range pts {
		out[i] = Point(p)
	}
	return out
}
