// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package gpucore

import "errors"

// Common backend errors.
var (
	// ErrInvalidBuffer is returned when an operation references a buffer
	// ID that was never created or has been destroyed.
	ErrInvalidBuffer = errors.New("gpucore: invalid buffer ID")
	// ErrFrameEnded is returned when a draw is recorded on a frame after
	// End.
	ErrFrameEnded = errors.New("gpucore: frame already ended")
)

// BufferID identifies a device buffer. IDs are opaque and never reused
// within one device.
type BufferID uint64

// InvalidBufferID is the zero BufferID, never returned by a successful
// CreateBuffer.
const InvalidBufferID BufferID = 0

// PipelineKind selects the vertex expansion applied to a run of points.
type PipelineKind uint8

const (
	// PipelineLine expands each interval into a constant pixel-width quad.
	PipelineLine PipelineKind = iota
	// PipelineStep draws a right-angle connector per interval, with a
	// vertical riser at a configurable fraction of the interval.
	PipelineStep
	// PipelineNativeLine draws a single-pixel polyline through the raw
	// points.
	PipelineNativeLine
	// PipelineNativePoint draws one point sprite per raw point.
	PipelineNativePoint

	pipelineKindCount
)

// String returns the pipeline kind name.
func (k PipelineKind) String() string {
	switch k {
	case PipelineLine:
		return "line"
	case PipelineStep:
		return "step"
	case PipelineNativeLine:
		return "native-line"
	case PipelineNativePoint:
		return "native-point"
	default:
		return "unknown"
	}
}

// NumPipelineKinds is the number of distinct pipeline kinds.
const NumPipelineKinds = int(pipelineKindCount)

// DrawOp describes one contiguous run of intervals from one point buffer.
//
// First and Count are in interval units local to the buffer: interval i
// spans the points at flat positions i and i+1. The backend derives the
// vertex count from Count and Kind.
type DrawOp struct {
	Kind   PipelineKind
	Points BufferID

	// First is the first interval to draw.
	First uint32
	// Count is the number of intervals.
	Count uint32
	// LeadIn adds the opening vertex pair for step rendering. Set only on
	// the first buffer of a chained draw so the seam between buffers gets
	// no duplicate riser.
	LeadIn bool

	// Width is the line width in pixels. Ignored by the native kinds.
	Width float32
	// StepLocation places the step riser within the interval, 0..1.
	StepLocation float32
	// Color is non-premultiplied RGBA.
	Color [4]float32
	// Transform maps domain coordinates to pixels:
	// px = X*Transform[0] + Transform[1], py = Y*Transform[2] + Transform[3].
	Transform [4]float32
}

// Device is the resource half of a backend: point buffers the chart
// uploads into, and frames it draws with.
type Device interface {
	// CreateBuffer allocates a device buffer of size bytes readable by the
	// draw pipelines.
	CreateBuffer(label string, size uint64) (BufferID, error)
	// WriteBuffer uploads data at offset. Uploads are ordered before any
	// draw recorded later on the same device.
	WriteBuffer(id BufferID, offset uint64, data []byte) error
	// DestroyBuffer releases a buffer. Destroying an invalid ID is an
	// error.
	DestroyBuffer(id BufferID) error
	// BeginFrame opens a frame covering viewport pixels, cleared to the
	// given color.
	BeginFrame(viewport [2]uint32, clear [4]float32) (Frame, error)
}

// Frame records draws for one displayed frame.
type Frame interface {
	// Draw records one run of intervals.
	Draw(op *DrawOp) error
	// End submits the frame. No draws may follow.
	End() error
}
