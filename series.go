// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package timechart

import (
	"github.com/gogpu/timechart/internal/plot"
	"github.com/gogpu/timechart/internal/seq"
)

// Series is one data series on a Chart. Points must be appended and
// prepended in ascending x order; the renderer relies on monotonic x
// for culling.
//
// All methods must be called from the chart's goroutine.
type Series struct {
	chart *Chart
	buf   seq.Buffer

	renderer *plot.SeriesRenderer
	label    string

	style        Style
	width        float32
	stepLocation float32
	color        [4]float32
}

// Label returns the series label passed to Chart.AddSeries.
func (s *Series) Label() string { return s.label }

// Len returns the number of points.
func (s *Series) Len() int { return s.buf.Len() }

// At returns the point at index i, oldest first.
func (s *Series) At(i int) Point {
	p := s.buf.At(i)
	return Point{X: p.X, Y: p.Y}
}

// PushBack appends points after the newest point.
func (s *Series) PushBack(pts ...Point) {
	if len(pts) == 0 {
		return
	}
	s.buf.PushBack(toSeq(pts)...)
	s.chart.RequestRedraw()
}

// PushFront prepends points before the oldest point. pts are in
// ascending x order, the same as stored.
func (s *Series) PushFront(pts ...Point) {
	if len(pts) == 0 {
		return
	}
	s.buf.PushFront(toSeq(pts)...)
	s.chart.RequestRedraw()
}

// PopBack removes the newest point.
func (s *Series) PopBack() (Point, bool) {
	p, ok := s.buf.PopBack()
	if !ok {
		return Point{}, false
	}
	s.chart.RequestRedraw()
	return Point{X: p.X, Y: p.Y}, true
}

// PopFront removes the oldest point.
func (s *Series) PopFront() (Point, bool) {
	p, ok := s.buf.PopFront()
	if !ok {
		return Point{}, false
	}
	s.chart.RequestRedraw()
	return Point{X: p.X, Y: p.Y}, true
}

// Splice removes deleteCount points starting at start and inserts items
// in their place, returning the removed points. Edits that would punch
// a hole into already-uploaded data fail with seq.ErrInvalidMutation
// and leave the series unchanged.
func (s *Series) Splice(start, deleteCount int, items ...Point) ([]Point, error) {
	removed, err := s.buf.Splice(start, deleteCount, toSeq(items)...)
	if err != nil {
		return nil, err
	}
	s.chart.RequestRedraw()
	return fromSeq(removed), nil
}

// drawConfig assembles the renderer parameters for one frame.
func (s *Series) drawConfig(transform [4]float32) plot.DrawConfig {
	return plot.DrawConfig{
		Kind:         s.style.kind(),
		Width:        s.width,
		StepLocation: s.stepLocation,
		Color:        s.color,
		Transform:    transform,
	}
}
