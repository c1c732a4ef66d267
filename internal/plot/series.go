// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package plot

import (
	"fmt"

	"github.com/gogpu/timechart/gpucore"
	"github.com/gogpu/timechart/internal/seq"
)

// DrawConfig carries the per-series draw parameters into the backend.
type DrawConfig struct {
	Kind         gpucore.PipelineKind
	Width        float32
	StepLocation float32
	Color        [4]float32
	Transform    [4]float32
}

// SeriesRenderer maintains the segment chain for one series: an ordered
// list of segments holding a contiguous window of the sequence's points
// on the GPU.
//
// Positions are flat point positions relative to the first segment.
// Segment s holds positions [s*SegmentIntervalCap, s*SegmentIntervalCap +
// SegmentCap); adjacent segments overlap by the 2 boundary points a line
// needs to continue across the seam. The valid window is
// [startPos, endPos), and the sequence point i sits at position
// startPos + i once synced.
type SeriesRenderer struct {
	dev   gpucore.Device
	src   *seq.Buffer
	label string

	segments []*Segment
	startPos int
	endPos   int

	created int // total segments ever allocated, for labels and stats
}

// NewSeriesRenderer creates an empty chain over src. No GPU memory is
// allocated until the sequence holds at least 2 points.
func NewSeriesRenderer(dev gpucore.Device, src *seq.Buffer, label string) *SeriesRenderer {
	return &SeriesRenderer{dev: dev, src: src, label: label}
}

// SegmentCount returns the number of live segments.
func (r *SeriesRenderer) SegmentCount() int { return len(r.segments) }

// CreatedSegments returns the number of segments ever allocated.
func (r *SeriesRenderer) CreatedSegments() int { return r.created }

// ValidStart returns the first valid point offset inside the head segment.
func (r *SeriesRenderer) ValidStart() int { return r.startPos }

// ValidEnd returns the end of the valid window, local to the last segment.
func (r *SeriesRenderer) ValidEnd() int {
	if len(r.segments) == 0 {
		return 0
	}
	return r.endPos - (len(r.segments)-1)*SegmentIntervalCap
}

// SyncBuffer reconciles the sequence's accumulated mutations into the
// segment chain: pops shrink the valid window and release fully evicted
// segments, pushes fill outward row by row, creating segments as ends
// fill up. The caller resets the sequence counters afterwards.
func (r *SeriesRenderer) SyncBuffer() error {
	pf := r.src.PushedFront()
	pb := r.src.PushedBack()

	if len(r.segments) > 0 {
		if err := r.popFront(r.src.PopedFront(), pf); err != nil {
			return err
		}
		if err := r.popBack(r.src.PopedBack(), pf); err != nil {
			return err
		}
		if r.endPos-r.startPos < 2 {
			r.Deinit()
		}
	}

	if len(r.segments) == 0 {
		return r.bootstrap(pf, pb)
	}

	if pf > 0 {
		if err := r.fillFront(pf); err != nil {
			return err
		}
	}
	if pb > 0 {
		if err := r.fillBack(pb); err != nil {
			return err
		}
	}

	if got := r.endPos - r.startPos; got != r.src.Len() {
		panic(fmt.Sprintf("plot: valid window %d does not cover sequence of %d", got, r.src.Len()))
	}
	return nil
}

// bootstrap creates the first segment once the sequence holds 2 points,
// filling from whichever side received more new points so subsequent
// growth has room.
func (r *SeriesRenderer) bootstrap(pf, pb int) error {
	if r.src.Len() < 2 {
		return nil
	}
	seg, err := r.newSegmentFor("head")
	if err != nil {
		return err
	}
	r.segments = []*Segment{seg}
	if pf >= pb {
		r.startPos, r.endPos = SegmentIntervalCap, SegmentIntervalCap
		return r.fillFront(r.src.Len())
	}
	r.startPos, r.endPos = 2, 2
	return r.fillBack(r.src.Len())
}

// popFront advances the window start, releasing head segments that no
// longer own any valid interval, then refreshes the new boundary row so
// no stale lead-in renders.
func (r *SeriesRenderer) popFront(count, pf int) error {
	if count == 0 {
		return nil
	}
	r.startPos += count
	for len(r.segments) > 1 && r.startPos > SegmentIntervalCap {
		r.deleteHead()
	}
	if r.endPos-r.startPos < 2 {
		return nil
	}
	return r.segments[0].syncPoints(r.src, pf, 1, r.startPos)
}

// popBack mirrors popFront at the tail.
func (r *SeriesRenderer) popBack(count, pf int) error {
	if count == 0 {
		return nil
	}
	r.endPos -= count
	for len(r.segments) > 1 && r.endPos < (len(r.segments)-1)*SegmentIntervalCap+2 {
		r.deleteTail()
	}
	if r.endPos-r.startPos < 2 {
		return nil
	}
	lastBase := (len(r.segments) - 1) * SegmentIntervalCap
	lastIdx := pf + (r.endPos - r.startPos) - 1
	return r.segments[len(r.segments)-1].syncPoints(r.src, lastIdx, 1, r.endPos-1-lastBase)
}

// fillFront uploads the first count sequence points below the current
// window start, prepending head segments as the current one fills.
func (r *SeriesRenderer) fillFront(count int) error {
	for remaining := count; remaining > 0; {
		if r.startPos == 0 {
			seg, err := r.newSegmentFor("front")
			if err != nil {
				return err
			}
			r.segments = append([]*Segment{seg}, r.segments...)
			r.startPos += SegmentIntervalCap
			r.endPos += SegmentIntervalCap
		}
		take := min(r.startPos, remaining)
		firstIdx := remaining - take
		if err := r.segments[0].syncPoints(r.src, firstIdx, take, r.startPos-take); err != nil {
			return err
		}
		r.startPos -= take
		remaining -= take
	}
	return nil
}

// fillBack uploads the last count sequence points after the current
// window end, appending tail segments on overflow.
func (r *SeriesRenderer) fillBack(count int) error {
	for remaining := count; remaining > 0; {
		capEnd := (len(r.segments)-1)*SegmentIntervalCap + SegmentCap
		if r.endPos == capEnd {
			seg, err := r.newSegmentFor("back")
			if err != nil {
				return err
			}
			r.segments = append(r.segments, seg)
			capEnd += SegmentIntervalCap
		}
		lastBase := (len(r.segments) - 1) * SegmentIntervalCap
		take := min(capEnd-r.endPos, remaining)
		firstIdx := r.src.Len() - remaining
		if err := r.segments[len(r.segments)-1].syncPoints(r.src, firstIdx, take, r.endPos-lastBase); err != nil {
			return err
		}
		r.endPos += take
		remaining -= take
	}
	return nil
}

// Draw culls the chain against the visible domain and records one draw
// per spanned segment.
//
// The first point left of the window is included so a partially visible
// interval still draws its complete connecting line.
func (r *SeriesRenderer) Draw(frame gpucore.Frame, domainMin, domainMax float64, cfg DrawConfig) error {
	if len(r.segments) == 0 {
		return nil
	}
	first, _ := r.src.First()
	last, _ := r.src.Last()
	if first.X > domainMax || last.X < domainMin {
		return nil
	}

	n := r.src.Len()
	firstDP := domainSearch(n, domainMin, r.src.XAt) - 1
	if firstDP < 0 {
		firstDP = 0
	}
	lastDP := domainSearch(n, domainMax, r.src.XAt)
	if lastDP == n || r.src.XAt(lastDP) > domainMax {
		lastDP--
	}
	if lastDP <= firstDP {
		return nil
	}

	// Interval range covering points [firstDP, lastDP].
	gFirst := firstDP + r.startPos
	gEnd := lastDP + r.startPos

	icap := SegmentIntervalCap
	sFirst := gFirst / icap
	sLast := (gEnd - 1) / icap
	if sLast > len(r.segments)-1 {
		sLast = len(r.segments) - 1
	}
	for s := sFirst; s <= sLast; s++ {
		base := s * icap
		lf := gFirst - base
		if lf < 0 {
			lf = 0
		}
		// Only the tail segment may draw its seam-slot interval; anywhere
		// else that interval belongs to the next segment.
		hi := icap
		if s == len(r.segments)-1 {
			hi = icap + 1
		}
		le := gEnd - base
		if le > hi {
			le = hi
		}
		if le <= lf {
			continue
		}
		op := gpucore.DrawOp{
			Kind:         cfg.Kind,
			Points:       r.segments[s].Buffer(),
			First:        uint32(lf),
			Count:        uint32(le - lf),
			LeadIn:       s == sFirst,
			Width:        cfg.Width,
			StepLocation: cfg.StepLocation,
			Color:        cfg.Color,
			Transform:    cfg.Transform,
		}
		if err := frame.Draw(&op); err != nil {
			return fmt.Errorf("draw segment %d: %w", s, err)
		}
	}
	return nil
}

// Deinit releases every segment and empties the chain. The sequence
// counters are left for the owning sync cycle.
func (r *SeriesRenderer) Deinit() {
	for len(r.segments) > 0 {
		r.deleteTail()
	}
	r.startPos, r.endPos = 0, 0
}

func (r *SeriesRenderer) deleteHead() {
	r.segments[0].delete()
	r.segments = r.segments[1:]
	r.startPos -= SegmentIntervalCap
	r.endPos -= SegmentIntervalCap
	slogger().Debug("head segment released", "series", r.label, "segments", len(r.segments))
}

func (r *SeriesRenderer) deleteTail() {
	last := len(r.segments) - 1
	r.segments[last].delete()
	r.segments = r.segments[:last]
	slogger().Debug("tail segment released", "series", r.label, "segments", len(r.segments))
}

func (r *SeriesRenderer) newSegmentFor(end string) (*Segment, error) {
	r.created++
	return newSegment(r.dev, fmt.Sprintf("%s_%s_%d", r.label, end, r.created))
}
