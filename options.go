// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package timechart

import (
	"image/color"

	"github.com/gogpu/timechart/internal/scale"
)

// config holds the chart configuration assembled from Options.
type config struct {
	scheduler  Scheduler
	padding    float64
	background [4]float32

	xMode  scale.Mode
	xWidth float64
	xFixed [2]float64

	yAuto  bool
	yFixed [2]float64
	ySet   bool
}

func defaultConfig() config {
	return config{
		padding:    8,
		background: [4]float32{1, 1, 1, 1},
		yAuto:      true,
	}
}

// Option configures a Chart during creation.
type Option func(*config)

// WithScheduler sets the redraw scheduler. The default is a
// ManualScheduler; interactive applications pass their frame-callback
// registrar here:
//
//	chart, _ := timechart.New(dev,
//	    timechart.WithScheduler(timechart.FuncScheduler(win.RequestFrame)))
func WithScheduler(s Scheduler) Option {
	return func(c *config) { c.scheduler = s }
}

// WithPadding sets the pixel padding between the viewport edge and the
// plot area.
func WithPadding(px float64) Option {
	return func(c *config) { c.padding = px }
}

// WithBackground sets the clear color.
func WithBackground(col color.Color) Option {
	return func(c *config) { c.background = colorVec(col) }
}

// WithXDomain pins the x domain to [min, max]. Data outside is culled.
func WithXDomain(min, max float64) Option {
	return func(c *config) {
		c.xMode = scale.ModeFixed
		c.xFixed = [2]float64{min, max}
	}
}

// WithRealtime keeps the x domain width fixed and slides its right edge
// to the newest point on every frame.
func WithRealtime(width float64) Option {
	return func(c *config) {
		c.xMode = scale.ModeRealtime
		c.xWidth = width
	}
}

// WithYDomain pins the y domain to [min, max] instead of growing it from
// incoming data.
func WithYDomain(min, max float64) Option {
	return func(c *config) {
		c.yAuto = false
		c.yFixed = [2]float64{min, max}
		c.ySet = true
	}
}

// seriesConfig holds per-series draw parameters.
type seriesConfig struct {
	style        Style
	width        float32
	stepLocation float32
	color        [4]float32
	hasColor     bool
}

func defaultSeriesConfig() seriesConfig {
	return seriesConfig{
		style: StyleLine,
		width: 1,
	}
}

// SeriesOption configures a Series at creation.
type SeriesOption func(*seriesConfig)

// WithStyle sets the render style.
func WithStyle(s Style) SeriesOption {
	return func(c *seriesConfig) { c.style = s }
}

// WithWidth sets the line width in pixels. Ignored by the native styles.
func WithWidth(px float32) SeriesOption {
	return func(c *seriesConfig) { c.width = px }
}

// WithStepLocation places the step riser within each interval, as a
// fraction in [0, 1]. Only used by StyleStep.
func WithStepLocation(frac float32) SeriesOption {
	return func(c *seriesConfig) {
		if frac < 0 {
			frac = 0
		} else if frac > 1 {
			frac = 1
		}
		c.stepLocation = frac
	}
}

// WithColor sets the series color. Without it, series cycle through the
// default palette.
func WithColor(col color.Color) SeriesOption {
	return func(c *seriesConfig) {
		c.color = colorVec(col)
		c.hasColor = true
	}
}

// colorVec converts a color to non-premultiplied RGBA float components.
func colorVec(col color.Color) [4]float32 {
	r, g, b, a := col.RGBA()
	if a == 0 {
		return [4]float32{}
	}
	// RGBA returns premultiplied 16-bit components.
	return [4]float32{
		float32(r) / float32(a),
		float32(g) / float32(a),
		float32(b) / float32(a),
		float32(a) / 0xffff,
	}
}
