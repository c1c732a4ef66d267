// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package gpucore

import "sync/atomic"

// NullDevice discards all work while keeping the full Device contract,
// including buffer ID bookkeeping. It backs headless use and benchmarks.
type NullDevice struct {
	nextID atomic.Uint64
	live   atomic.Int64
}

var _ Device = (*NullDevice)(nil)

// NewNullDevice returns a device that accepts everything and draws
// nothing.
func NewNullDevice() *NullDevice {
	return &NullDevice{}
}

// CreateBuffer hands out a fresh ID without allocating.
func (d *NullDevice) CreateBuffer(string, uint64) (BufferID, error) {
	d.live.Add(1)
	return BufferID(d.nextID.Add(1)), nil
}

// WriteBuffer discards the data.
func (d *NullDevice) WriteBuffer(BufferID, uint64, []byte) error { return nil }

// DestroyBuffer releases the ID.
func (d *NullDevice) DestroyBuffer(BufferID) error {
	d.live.Add(-1)
	return nil
}

// BeginFrame returns a frame that swallows draws.
func (d *NullDevice) BeginFrame([2]uint32, [4]float32) (Frame, error) {
	return nullFrame{}, nil
}

// LiveBuffers reports the number of buffers created but not destroyed.
func (d *NullDevice) LiveBuffers() int64 { return d.live.Load() }

type nullFrame struct{}

func (nullFrame) Draw(*DrawOp) error { return nil }
func (nullFrame) End() error         { return nil }
