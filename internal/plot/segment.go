// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package plot turns sequence mutations into minimal GPU uploads and
// culled draw calls. It owns the segment chain: a sliding window of
// fixed-capacity GPU buffers over the logical point sequence.
package plot

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/gogpu/timechart/gpucore"
	"github.com/gogpu/timechart/internal/seq"
)

// Segment memory layout: a row-major grid of point slots, two float32 per
// slot. A flat point position p lives at (p mod SegmentW, p div SegmentW),
// and uploads happen in whole rows.
const (
	SegmentW   = 256
	SegmentH   = 2048
	SegmentCap = SegmentW * SegmentH // points per segment

	// SegmentIntervalCap is the number of intervals a segment contributes
	// to the chain. Two point slots are spent on copies of the neighbor
	// segment's boundary points so lines continue across the seam.
	SegmentIntervalCap = SegmentCap - 2

	pointStride = 8 // two little-endian float32
	rowStride   = SegmentW * pointStride
)

// Segment is one fixed-capacity page of GPU point storage.
type Segment struct {
	dev gpucore.Device
	buf gpucore.BufferID

	deleted bool
}

// newSegment allocates the GPU buffer for one segment.
func newSegment(dev gpucore.Device, label string) (*Segment, error) {
	buf, err := dev.CreateBuffer(label, SegmentCap*pointStride)
	if err != nil {
		return nil, fmt.Errorf("create segment buffer: %w", err)
	}
	slogger().Debug("segment allocated", "label", label, "buffer", buf)
	return &Segment{dev: dev, buf: buf}, nil
}

// Buffer returns the segment's device buffer.
func (s *Segment) Buffer() gpucore.BufferID { return s.buf }

// syncPoints uploads the rows covering local positions
// [bufferPos, bufferPos+n), where the point at bufferPos is src[firstIdx].
//
// Whole rows are re-derived from src: each slot in a touched row maps back
// to its sequence index through the same affine offset, clamped to the
// sequence ends. The clamping duplicates the outermost points into the
// spare slots, which both refreshes the 2-point seam copies and erases
// stale neighbors. When the touched region reaches the sequence's own
// first or last point, one extra guard row is included so no stale data
// borders the valid range.
func (s *Segment) syncPoints(src *seq.Buffer, firstIdx, n, bufferPos int) error {
	if s.deleted {
		panic("plot: syncPoints on deleted segment")
	}
	if n <= 0 || src.Len() == 0 {
		return nil
	}
	if bufferPos < 0 || bufferPos+n > SegmentCap {
		panic(fmt.Sprintf("plot: syncPoints range [%d,%d) outside segment", bufferPos, bufferPos+n))
	}

	r0 := bufferPos / SegmentW
	r1 := (bufferPos + n + SegmentW - 1) / SegmentW
	if firstIdx == 0 && r0 > 0 {
		r0--
	}
	if firstIdx+n == src.Len() && r1 < SegmentH {
		r1++
	}

	last := src.Len() - 1
	data := make([]byte, (r1-r0)*rowStride)
	off := 0
	for q := r0 * SegmentW; q < r1*SegmentW; q++ {
		i := firstIdx + q - bufferPos
		if i < 0 {
			i = 0
		} else if i > last {
			i = last
		}
		p := src.At(i)
		binary.LittleEndian.PutUint32(data[off:], math.Float32bits(float32(p.X)))
		binary.LittleEndian.PutUint32(data[off+4:], math.Float32bits(float32(p.Y)))
		off += pointStride
	}

	if err := s.dev.WriteBuffer(s.buf, uint64(r0)*rowStride, data); err != nil {
		return fmt.Errorf("upload rows [%d,%d): %w", r0, r1, err)
	}
	return nil
}

// delete releases the GPU buffer. Must be called exactly once.
func (s *Segment) delete() {
	if s.deleted {
		panic("plot: segment deleted twice")
	}
	s.deleted = true
	if err := s.dev.DestroyBuffer(s.buf); err != nil {
		slogger().Warn("segment buffer release failed", "buffer", s.buf, "error", err)
	}
	s.buf = gpucore.InvalidBufferID
}
