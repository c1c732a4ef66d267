// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package scale maps data domains onto pixel ranges and maintains the
// visible window for streaming chart updates.
package scale

import "math"

// Linear is a monotonic linear mapping from a data domain onto a pixel
// range. A degenerate domain (min == max) maps every value to the range
// start.
type Linear struct {
	d0, d1 float64
	r0, r1 float64
}

// SetDomain sets the data domain.
func (l *Linear) SetDomain(min, max float64) {
	l.d0, l.d1 = min, max
}

// SetRange sets the pixel range. The range may be inverted (r0 > r1),
// which is the usual orientation for a y axis.
func (l *Linear) SetRange(min, max float64) {
	l.r0, l.r1 = min, max
}

// Domain returns the current data domain.
func (l *Linear) Domain() (min, max float64) { return l.d0, l.d1 }

// Range returns the current pixel range.
func (l *Linear) Range() (min, max float64) { return l.r0, l.r1 }

// Scale maps a domain value to its pixel position.
func (l *Linear) Scale(v float64) float64 {
	k, b := l.Coeffs()
	return k*v + b
}

// Invert maps a pixel position back to its domain value.
func (l *Linear) Invert(p float64) float64 {
	k, b := l.Coeffs()
	if k == 0 {
		return l.d0
	}
	return (p - b) / k
}

// Coeffs returns the mapping as px = k*v + b. Shaders consume the scale in
// this form.
func (l *Linear) Coeffs() (k, b float64) {
	span := l.d1 - l.d0
	if span == 0 {
		return 0, l.r0
	}
	k = (l.r1 - l.r0) / span
	return k, l.r0 - l.d0*k
}

// Nice widens [lo, hi] to bounds that land on a 1/2/5 decade step, the
// usual axis rounding. A degenerate interval is padded by one unit.
func Nice(lo, hi float64) (float64, float64) {
	if hi < lo {
		lo, hi = hi, lo
	}
	if lo == hi {
		return lo - 1, hi + 1
	}
	step := niceStep(hi - lo)
	return math.Floor(lo/step) * step, math.Ceil(hi/step) * step
}

// niceStep picks the largest 1/2/5 decade step not exceeding a tenth of
// the span.
func niceStep(span float64) float64 {
	raw := span / 10
	mag := math.Pow(10, math.Floor(math.Log10(raw)))
	switch {
	case raw/mag >= 5:
		return 5 * mag
	case raw/mag >= 2:
		return 2 * mag
	default:
		return mag
	}
}

// Mode selects how the x domain follows the data.
type Mode uint8

const (
	// ModeAuto tracks the union of all series bounds exactly.
	ModeAuto Mode = iota
	// ModeRealtime keeps the domain width fixed and slides the right edge
	// to the newest point.
	ModeRealtime
	// ModeFixed never changes the configured domain.
	ModeFixed
)

// XModel computes the visible x domain for each frame.
type XModel struct {
	Mode  Mode
	Width float64 // domain width in ModeRealtime

	fixed [2]float64
}

// SetFixed pins the domain to [min, max] and switches to ModeFixed.
func (m *XModel) SetFixed(min, max float64) {
	m.Mode = ModeFixed
	m.fixed = [2]float64{min, max}
}

// Update returns the domain to display given the union of all series
// bounds.
func (m *XModel) Update(dataMin, dataMax float64) (min, max float64) {
	switch m.Mode {
	case ModeRealtime:
		return dataMax - m.Width, dataMax
	case ModeFixed:
		return m.fixed[0], m.fixed[1]
	default:
		return dataMin, dataMax
	}
}

// YModel accumulates the y domain. The domain only grows: popped points do
// not shrink it, keeping the value axis stable while data slides out of
// the window.
type YModel struct {
	// Auto rounds the reported bounds to nice values.
	Auto bool

	lo, hi float64
	seen   bool
}

// Extend widens the domain to include [lo, hi]. Called with the bounds of
// newly pushed sub-ranges only, so the cost per frame is proportional to
// the new points, not the series length.
func (m *YModel) Extend(lo, hi float64) {
	if hi < lo {
		lo, hi = hi, lo
	}
	if !m.seen {
		m.lo, m.hi = lo, hi
		m.seen = true
		return
	}
	m.lo = math.Min(m.lo, lo)
	m.hi = math.Max(m.hi, hi)
}

// Set pins the accumulated domain to exactly [lo, hi].
func (m *YModel) Set(lo, hi float64) {
	m.lo, m.hi = lo, hi
	m.seen = true
}

// Domain returns the accumulated bounds, rounded when Auto is set.
// Before any Extend call it reports the unit interval.
func (m *YModel) Domain() (lo, hi float64) {
	if !m.seen {
		return 0, 1
	}
	if m.Auto {
		return Nice(m.lo, m.hi)
	}
	return m.lo, m.hi
}
