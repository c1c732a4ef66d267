// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package timechart

import (
	"errors"
	"image/color"
	"math"

	"golang.org/x/image/colornames"

	"github.com/gogpu/timechart/gpucore"
	"github.com/gogpu/timechart/internal/plot"
	"github.com/gogpu/timechart/internal/scale"
)

var (
	// ErrNilDevice is returned by New when no device is supplied.
	ErrNilDevice = errors.New("timechart: nil device")
	// ErrDisposed is returned by operations on a disposed chart.
	ErrDisposed = errors.New("timechart: chart disposed")
)

// palette supplies default series colors, cycled in creation order.
var palette = [...]color.RGBA{
	colornames.Steelblue,
	colornames.Darkorange,
	colornames.Forestgreen,
	colornames.Crimson,
	colornames.Mediumpurple,
	colornames.Goldenrod,
	colornames.Teal,
	colornames.Palevioletred,
}

// Chart owns a set of series, their GPU buffers and the axis models,
// and redraws them through a Scheduler. Mutations never render
// synchronously: each one requests a redraw, and requests made before
// the scheduled callback runs coalesce into a single frame.
//
// A Chart is not safe for concurrent use. All methods, including those
// of its Series, must run on the goroutine that runs the scheduler
// callbacks.
type Chart struct {
	dev gpucore.Device
	cfg config

	width, height uint32

	xmodel scale.XModel
	ymodel scale.YModel
	xscale scale.Linear
	yscale scale.Linear

	series []*Series

	pending  bool
	disposed bool

	updated   notifier
	disposing notifier
	resized   resizeNotifier
}

// New creates a chart rendering through dev. The chart renders nothing
// until Resize establishes a viewport.
func New(dev gpucore.Device, opts ...Option) (*Chart, error) {
	if dev == nil {
		return nil, ErrNilDevice
	}
	cfg := defaultConfig()
	for _, o := range opts {
		o(&cfg)
	}
	if cfg.scheduler == nil {
		cfg.scheduler = &ManualScheduler{}
	}

	c := &Chart{dev: dev, cfg: cfg}
	c.xmodel = scale.XModel{Mode: cfg.xMode, Width: cfg.xWidth}
	if cfg.xMode == scale.ModeFixed {
		c.xmodel.SetFixed(cfg.xFixed[0], cfg.xFixed[1])
	}
	c.ymodel = scale.YModel{Auto: cfg.yAuto}
	if cfg.ySet {
		c.ymodel.Set(cfg.yFixed[0], cfg.yFixed[1])
	}
	registerLoggerTarget(dev)
	return c, nil
}

// AddSeries creates an empty series. Without WithColor the series takes
// the next color from the default palette.
func (c *Chart) AddSeries(label string, opts ...SeriesOption) *Series {
	cfg := defaultSeriesConfig()
	for _, o := range opts {
		o(&cfg)
	}
	if !cfg.hasColor {
		cfg.color = colorVec(palette[len(c.series)%len(palette)])
	}
	s := &Series{
		chart:        c,
		label:        label,
		style:        cfg.style,
		width:        cfg.width,
		stepLocation: cfg.stepLocation,
		color:        cfg.color,
	}
	s.renderer = plot.NewSeriesRenderer(c.dev, &s.buf, label)
	c.series = append(c.series, s)
	return s
}

// Size returns the current viewport size in pixels.
func (c *Chart) Size() (w, h uint32) { return c.width, c.height }

// Resize sets the viewport size and requests a redraw.
func (c *Chart) Resize(w, h uint32) {
	if c.disposed || (w == c.width && h == c.height) {
		return
	}
	c.width, c.height = w, h
	c.resized.emit(w, h)
	c.RequestRedraw()
}

// OnUpdated registers fn to run after each rendered frame. The returned
// function unregisters it.
func (c *Chart) OnUpdated(fn func()) (remove func()) {
	return c.updated.add(fn)
}

// OnDisposing registers fn to run at the start of Dispose, while the
// chart is still usable.
func (c *Chart) OnDisposing(fn func()) (remove func()) {
	return c.disposing.add(fn)
}

// OnResized registers fn to run whenever the viewport size changes.
func (c *Chart) OnResized(fn func(w, h uint32)) (remove func()) {
	return c.resized.add(fn)
}

// RequestRedraw schedules a render. Repeated calls before the callback
// runs coalesce into one frame.
func (c *Chart) RequestRedraw() {
	if c.disposed || c.pending {
		return
	}
	c.pending = true
	c.cfg.scheduler.Schedule(func() {
		if c.disposed || !c.pending {
			return
		}
		c.pending = false
		if err := c.render(); err != nil {
			Logger().Error("timechart: render failed", "error", err)
		}
	})
}

// Render renders a frame immediately, bypassing the scheduler. A
// pending scheduled redraw is absorbed by it.
func (c *Chart) Render() error {
	if c.disposed {
		return ErrDisposed
	}
	c.pending = false
	return c.render()
}

func (c *Chart) render() error {
	if c.width == 0 || c.height == 0 {
		return nil
	}

	dataMin, dataMax := math.Inf(1), math.Inf(-1)
	for _, s := range c.series {
		first, ok := s.buf.First()
		if !ok {
			continue
		}
		last, _ := s.buf.Last()
		dataMin = math.Min(dataMin, first.X)
		dataMax = math.Max(dataMax, last.X)
	}
	if math.IsInf(dataMin, 1) {
		dataMin, dataMax = 0, 1
	}
	xmin, xmax := c.xmodel.Update(dataMin, dataMax)

	if c.cfg.yAuto {
		for _, s := range c.series {
			c.extendY(s)
		}
	}
	ymin, ymax := c.ymodel.Domain()

	c.xscale.SetDomain(xmin, xmax)
	c.xscale.SetRange(c.cfg.padding, float64(c.width)-c.cfg.padding)
	// Pixel y grows downward, so the range is flipped.
	c.yscale.SetDomain(ymin, ymax)
	c.yscale.SetRange(float64(c.height)-c.cfg.padding, c.cfg.padding)

	for _, s := range c.series {
		if err := s.renderer.SyncBuffer(); err != nil {
			return err
		}
		s.buf.Sync()
	}

	frame, err := c.dev.BeginFrame([2]uint32{c.width, c.height}, c.cfg.background)
	if err != nil {
		return err
	}
	kx, bx := c.xscale.Coeffs()
	ky, by := c.yscale.Coeffs()
	transform := [4]float32{float32(kx), float32(bx), float32(ky), float32(by)}

	var drawErr error
	for _, s := range c.series {
		if err := s.renderer.Draw(frame, xmin, xmax, s.drawConfig(transform)); err != nil {
			drawErr = err
			break
		}
	}
	if err := frame.End(); err != nil && drawErr == nil {
		drawErr = err
	}
	if drawErr != nil {
		return drawErr
	}
	c.updated.emit()
	return nil
}

// extendY feeds the y model the sub-ranges pushed since the last
// frame, keeping the per-frame cost proportional to new points.
func (c *Chart) extendY(s *Series) {
	n := s.buf.Len()
	pf := s.buf.PushedFront()
	pb := s.buf.PushedBack()
	for i := 0; i < pf; i++ {
		y := s.buf.At(i).Y
		c.ymodel.Extend(y, y)
	}
	for i := n - pb; i < n; i++ {
		y := s.buf.At(i).Y
		c.ymodel.Extend(y, y)
	}
}

// Dispose releases every GPU buffer owned by the chart. Further
// mutations and redraw requests become no-ops. Dispose is idempotent.
func (c *Chart) Dispose() {
	if c.disposed {
		return
	}
	c.disposing.emit()
	c.disposed = true
	for _, s := range c.series {
		s.renderer.Deinit()
	}
	unregisterLoggerTarget(c.dev)
}
