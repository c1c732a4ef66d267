// Package timechart renders streaming time-series data through the
// GoGPU ecosystem.
//
// # Overview
//
// timechart keeps each series in a fixed-layout chain of GPU buffer
// segments and uploads only the rows a mutation touched, so appending
// to a million-point series costs one small buffer write, not a
// re-upload. Rendering is driven by a Scheduler: mutations request a
// redraw, requests coalesce, and one frame is drawn per scheduler
// tick.
//
// # Quick Start
//
//	import (
//	    "github.com/gogpu/timechart"
//	    "github.com/gogpu/timechart/backend/wgpu"
//	)
//
//	dev, _ := wgpu.NewFromProvider(provider)
//	chart, _ := timechart.New(dev,
//	    timechart.WithRealtime(60),
//	    timechart.WithScheduler(timechart.FuncScheduler(win.RequestFrame)))
//	chart.Resize(800, 480)
//
//	cpu := chart.AddSeries("cpu", timechart.WithStyle(timechart.StyleStep))
//	cpu.PushBack(timechart.Pt(t, load))
//
// # Architecture
//
// The library is organized into:
//   - Public API: Chart, Series, Style, Point, options
//   - gpucore: the device abstraction charts render through
//   - backend/wgpu: the gogpu/wgpu implementation of gpucore
//   - Internal: seq (change tracking), plot (segments, culling),
//     scale (axis models)
//
// # Coordinate System
//
// Data points live in domain space. Each frame maps the visible domain
// to pixel coordinates with origin at the top-left and y increasing
// down; shaders convert pixels to clip space.
//
// # Threading
//
// A Chart confines all work to one goroutine. The Scheduler decides
// which goroutine that is.
package timechart
