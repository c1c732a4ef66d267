// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package timechart

import "github.com/gogpu/timechart/gpucore"

// Style selects how a series renders its intervals.
type Style uint8

const (
	// StyleLine draws each interval as a quad of constant pixel width.
	StyleLine Style = iota
	// StyleStep draws a right-angle connector per interval. The riser
	// position within the interval is set by WithStepLocation.
	StyleStep
	// StyleNativeLine draws a single-pixel polyline through the raw
	// points.
	StyleNativeLine
	// StyleNativePoint draws one point sprite per raw point.
	StyleNativePoint
)

// String returns the style name.
func (s Style) String() string {
	switch s {
	case StyleLine:
		return "Line"
	case StyleStep:
		return "Step"
	case StyleNativeLine:
		return "NativeLine"
	case StyleNativePoint:
		return "NativePoint"
	default:
		return "Unknown"
	}
}

func (s Style) kind() gpucore.PipelineKind {
	switch s {
	case StyleStep:
		return gpucore.PipelineStep
	case StyleNativeLine:
		return gpucore.PipelineNativeLine
	case StyleNativePoint:
		return gpucore.PipelineNativePoint
	default:
		return gpucore.PipelineLine
	}
}
