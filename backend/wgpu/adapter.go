// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package wgpu

import (
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/timechart/gpucore"
)

// Adapter implements gpucore.Device on top of a wgpu HAL device and
// queue. Charts draw into an offscreen BGRA8 target owned by the
// adapter; Pixels reads the last frame back for presentation or
// encoding.
type Adapter struct {
	device hal.Device
	queue  hal.Queue

	mu      sync.RWMutex
	buffers map[gpucore.BufferID]*trackedBuffer
	nextID  atomic.Uint64

	pipelines pipelineSet
	target    renderTarget

	logger atomic.Pointer[slog.Logger]
	debug  bool
}

// Option configures an Adapter.
type Option func(*Adapter)

// WithDebug logs every adapter error at Error level as it occurs, so
// failures surface even when the caller drops the returned error.
func WithDebug() Option {
	return func(a *Adapter) { a.debug = true }
}

type trackedBuffer struct {
	buf  hal.Buffer
	size uint64
}

var _ gpucore.Device = (*Adapter)(nil)

// New wraps an existing HAL device and queue. The caller retains
// ownership of both; Close releases only resources the adapter created.
func New(device hal.Device, queue hal.Queue, opts ...Option) (*Adapter, error) {
	if device == nil || queue == nil {
		return nil, fmt.Errorf("wgpu: nil device or queue")
	}
	a := &Adapter{
		device:  device,
		queue:   queue,
		buffers: make(map[gpucore.BufferID]*trackedBuffer),
	}
	a.logger.Store(slog.New(nopHandler{}))
	for _, opt := range opts {
		opt(a)
	}
	return a, nil
}

// NewFromProvider extracts the HAL device and queue from a gogpu device
// provider. Besides the gpucontext interface, the provider must expose
// HalDevice() any and HalQueue() any returning hal.Device and hal.Queue
// for direct HAL access.
func NewFromProvider(provider gpucontext.DeviceProvider, opts ...Option) (*Adapter, error) {
	type halProvider interface {
		HalDevice() any
		HalQueue() any
	}
	hp, ok := provider.(halProvider)
	if !ok {
		return nil, fmt.Errorf("wgpu: provider does not expose HAL types")
	}
	device, ok := hp.HalDevice().(hal.Device)
	if !ok || device == nil {
		return nil, fmt.Errorf("wgpu: provider HalDevice is not hal.Device")
	}
	queue, ok := hp.HalQueue().(hal.Queue)
	if !ok || queue == nil {
		return nil, fmt.Errorf("wgpu: provider HalQueue is not hal.Queue")
	}
	return New(device, queue, opts...)
}

// SetLogger routes the adapter's log output to l.
func (a *Adapter) SetLogger(l *slog.Logger) {
	if l == nil {
		l = slog.New(nopHandler{})
	}
	a.logger.Store(l)
}

func (a *Adapter) slogger() *slog.Logger { return a.logger.Load() }

// fail returns err, logging it at Error level first when the adapter
// runs in debug mode.
func (a *Adapter) fail(err error) error {
	if a.debug {
		a.slogger().Error(err.Error())
	}
	return err
}

func (a *Adapter) errf(format string, args ...any) error {
	return a.fail(fmt.Errorf(format, args...))
}

// CreateBuffer allocates a storage buffer the render pipelines pull
// vertex data from.
func (a *Adapter) CreateBuffer(label string, size uint64) (gpucore.BufferID, error) {
	buf, err := a.device.CreateBuffer(&hal.BufferDescriptor{
		Label: label,
		Size:  size,
		Usage: gputypes.BufferUsageStorage | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		return gpucore.InvalidBufferID, a.errf("wgpu: create %s: %w", label, err)
	}
	id := gpucore.BufferID(a.nextID.Add(1))
	a.mu.Lock()
	a.buffers[id] = &trackedBuffer{buf: buf, size: size}
	a.mu.Unlock()
	a.slogger().Debug("wgpu: buffer created", "label", label, "id", id, "size", size)
	return id, nil
}

// WriteBuffer uploads data at offset through the queue.
func (a *Adapter) WriteBuffer(id gpucore.BufferID, offset uint64, data []byte) error {
	tb, err := a.lookup(id)
	if err != nil {
		return err
	}
	if offset+uint64(len(data)) > tb.size {
		return a.errf("wgpu: write buffer %d: %d+%d exceeds size %d",
			id, offset, len(data), tb.size)
	}
	a.queue.WriteBuffer(tb.buf, offset, data)
	return nil
}

// DestroyBuffer releases the buffer.
func (a *Adapter) DestroyBuffer(id gpucore.BufferID) error {
	a.mu.Lock()
	tb, ok := a.buffers[id]
	delete(a.buffers, id)
	a.mu.Unlock()
	if !ok {
		return a.errf("wgpu: destroy buffer %d: %w", id, gpucore.ErrInvalidBuffer)
	}
	a.device.DestroyBuffer(tb.buf)
	return nil
}

func (a *Adapter) lookup(id gpucore.BufferID) (*trackedBuffer, error) {
	a.mu.RLock()
	tb, ok := a.buffers[id]
	a.mu.RUnlock()
	if !ok {
		return nil, a.errf("wgpu: buffer %d: %w", id, gpucore.ErrInvalidBuffer)
	}
	return tb, nil
}

// Close releases the pipelines, the render target, and every buffer the
// adapter still tracks. The HAL device and queue are not destroyed.
// Safe to call multiple times.
func (a *Adapter) Close() {
	a.mu.Lock()
	for id, tb := range a.buffers {
		a.device.DestroyBuffer(tb.buf)
		delete(a.buffers, id)
	}
	a.mu.Unlock()
	a.target.destroy(a.device)
	a.pipelines.destroy(a.device)
}
