// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package timechart

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/gogpu/timechart/internal/plot"
)

// nopHandler is a slog.Handler that silently discards all log records.
// The Enabled method returns false so the caller skips message formatting
// entirely, making disabled logging effectively zero-cost.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

// newNopLogger creates a logger that silently discards all output.
func newNopLogger() *slog.Logger { return slog.New(nopHandler{}) }

// loggerPtr stores the active logger. Accessed atomically so that
// SetLogger can be called concurrently with logging from any goroutine.
var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	l := newNopLogger()
	loggerPtr.Store(l)
}

// SetLogger configures the logger for timechart and all its sub-packages.
// By default, timechart produces no log output. Pass nil to restore the
// default silent behavior.
//
// Log levels used:
//   - [slog.LevelDebug]: segment allocation, row uploads, culling ranges
//   - [slog.LevelWarn]: non-fatal issues (resource release errors)
//
// Example:
//
//	timechart.SetLogger(slog.Default())
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = newNopLogger()
	}
	loggerPtr.Store(l)
	plot.SetLogger(l)

	targetsMu.Lock()
	defer targetsMu.Unlock()
	for t := range loggerTargets {
		t.SetLogger(l)
	}
}

// Logger returns the current logger used by timechart.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}

// loggerSetter is implemented by devices that accept a logger, such as
// the wgpu backend.
type loggerSetter interface {
	SetLogger(*slog.Logger)
}

var (
	targetsMu     sync.Mutex
	loggerTargets = map[loggerSetter]struct{}{}
)

// registerLoggerTarget forwards the current and any future logger to a
// device. Called when a chart is created over the device.
func registerLoggerTarget(dev any) {
	ls, ok := dev.(loggerSetter)
	if !ok {
		return
	}
	ls.SetLogger(Logger())
	targetsMu.Lock()
	loggerTargets[ls] = struct{}{}
	targetsMu.Unlock()
}

func unregisterLoggerTarget(dev any) {
	ls, ok := dev.(loggerSetter)
	if !ok {
		return
	}
	targetsMu.Lock()
	delete(loggerTargets, ls)
	targetsMu.Unlock()
}
