// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package gputest provides a recording gpucore.Device for tests. Every
// buffer write and draw is kept so tests can assert which rows were
// uploaded and which intervals were drawn, without a GPU.
package gputest

import (
	"fmt"

	"github.com/gogpu/timechart/gpucore"
)

// Write records one WriteBuffer call.
type Write struct {
	Offset uint64
	Size   int
}

// Buffer records the lifetime of one created buffer.
type Buffer struct {
	Label     string
	Size      uint64
	Writes    []Write
	Destroyed bool
	// DestroyCount counts DestroyBuffer calls, to catch double frees.
	DestroyCount int
}

// FakeDevice implements gpucore.Device and records everything.
//
// FailCreate, when set, makes the next CreateBuffer return that error.
type FakeDevice struct {
	FailCreate error

	nextID  uint64
	buffers map[gpucore.BufferID]*Buffer
	frames  []*FakeFrame
}

var _ gpucore.Device = (*FakeDevice)(nil)

// New returns an empty recording device.
func New() *FakeDevice {
	return &FakeDevice{buffers: make(map[gpucore.BufferID]*Buffer)}
}

// CreateBuffer records a new buffer.
func (d *FakeDevice) CreateBuffer(label string, size uint64) (gpucore.BufferID, error) {
	if err := d.FailCreate; err != nil {
		d.FailCreate = nil
		return gpucore.InvalidBufferID, err
	}
	d.nextID++
	id := gpucore.BufferID(d.nextID)
	d.buffers[id] = &Buffer{Label: label, Size: size}
	return id, nil
}

// WriteBuffer records the write. Writing past the buffer end or to a
// destroyed buffer is an error, as it would be on a real backend.
func (d *FakeDevice) WriteBuffer(id gpucore.BufferID, offset uint64, data []byte) error {
	b, ok := d.buffers[id]
	if !ok || b.Destroyed {
		return fmt.Errorf("write buffer %d: %w", id, gpucore.ErrInvalidBuffer)
	}
	if offset+uint64(len(data)) > b.Size {
		return fmt.Errorf("write buffer %d: %d+%d exceeds size %d", id, offset, len(data), b.Size)
	}
	b.Writes = append(b.Writes, Write{Offset: offset, Size: len(data)})
	return nil
}

// DestroyBuffer marks the buffer destroyed.
func (d *FakeDevice) DestroyBuffer(id gpucore.BufferID) error {
	b, ok := d.buffers[id]
	if !ok {
		return fmt.Errorf("destroy buffer %d: %w", id, gpucore.ErrInvalidBuffer)
	}
	b.DestroyCount++
	if b.Destroyed {
		return fmt.Errorf("destroy buffer %d: already destroyed", id)
	}
	b.Destroyed = true
	return nil
}

// BeginFrame opens a recording frame.
func (d *FakeDevice) BeginFrame(viewport [2]uint32, clear [4]float32) (gpucore.Frame, error) {
	f := &FakeFrame{Viewport: viewport, Clear: clear}
	d.frames = append(d.frames, f)
	return f, nil
}

// Buffer returns the record for id, or nil.
func (d *FakeDevice) Buffer(id gpucore.BufferID) *Buffer { return d.buffers[id] }

// Created returns the total number of buffers ever created.
func (d *FakeDevice) Created() int { return len(d.buffers) }

// Live returns the number of buffers not yet destroyed.
func (d *FakeDevice) Live() int {
	n := 0
	for _, b := range d.buffers {
		if !b.Destroyed {
			n++
		}
	}
	return n
}

// TotalWrites sums WriteBuffer calls across all buffers.
func (d *FakeDevice) TotalWrites() int {
	n := 0
	for _, b := range d.buffers {
		n += len(b.Writes)
	}
	return n
}

// Frames returns all frames begun on this device.
func (d *FakeDevice) Frames() []*FakeFrame { return d.frames }

// LastFrame returns the most recent frame, or nil.
func (d *FakeDevice) LastFrame() *FakeFrame {
	if len(d.frames) == 0 {
		return nil
	}
	return d.frames[len(d.frames)-1]
}

// FakeFrame records the draws of one frame.
type FakeFrame struct {
	Viewport [2]uint32
	Clear    [4]float32
	Ops      []gpucore.DrawOp
	Ended    bool
}

// Draw records the op.
func (f *FakeFrame) Draw(op *gpucore.DrawOp) error {
	if f.Ended {
		return gpucore.ErrFrameEnded
	}
	f.Ops = append(f.Ops, *op)
	return nil
}

// End closes the frame.
func (f *FakeFrame) End() error {
	if f.Ended {
		return gpucore.ErrFrameEnded
	}
	f.Ended = true
	return nil
}
