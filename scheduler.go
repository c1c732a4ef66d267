// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package timechart

// Scheduler defers a callback to a later point in time, typically the
// next display frame. Implementations must invoke the callback exactly
// once; they may do so from any goroutine, but all Chart methods must
// then be called from that same goroutine.
type Scheduler interface {
	Schedule(fn func())
}

// FuncScheduler adapts a plain function to the Scheduler interface.
type FuncScheduler func(fn func())

func (f FuncScheduler) Schedule(fn func()) { f(fn) }

// ManualScheduler queues callbacks until Tick is called. It is the
// default scheduler and suits tests and offline rendering, where the
// caller controls when frames happen.
type ManualScheduler struct {
	queued []func()
}

func (m *ManualScheduler) Schedule(fn func()) {
	m.queued = append(m.queued, fn)
}

// Tick runs every callback queued so far. Callbacks scheduled while
// running are held for the next Tick.
func (m *ManualScheduler) Tick() {
	batch := m.queued
	m.queued = nil
	for _, fn := range batch {
		fn()
	}
}
