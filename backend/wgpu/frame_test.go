// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package wgpu

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/gogpu/timechart/gpucore"
)

func TestVertexRange(t *testing.T) {
	tests := []struct {
		name  string
		op    gpucore.DrawOp
		count uint32
		first uint32
	}{
		{
			name:  "line",
			op:    gpucore.DrawOp{Kind: gpucore.PipelineLine, First: 3, Count: 5},
			count: 12, first: 6,
		},
		{
			name:  "line from start",
			op:    gpucore.DrawOp{Kind: gpucore.PipelineLine, First: 0, Count: 1},
			count: 4, first: 0,
		},
		{
			name:  "step with lead-in",
			op:    gpucore.DrawOp{Kind: gpucore.PipelineStep, First: 2, Count: 4, LeadIn: true},
			count: 18, first: 8,
		},
		{
			name:  "step continuation",
			op:    gpucore.DrawOp{Kind: gpucore.PipelineStep, First: 2, Count: 4},
			count: 16, first: 10,
		},
		{
			name:  "native line",
			op:    gpucore.DrawOp{Kind: gpucore.PipelineNativeLine, First: 7, Count: 3},
			count: 4, first: 7,
		},
		{
			name:  "native point",
			op:    gpucore.DrawOp{Kind: gpucore.PipelineNativePoint, First: 0, Count: 9},
			count: 10, first: 0,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			count, first := vertexRange(&tt.op)
			if count != tt.count || first != tt.first {
				t.Errorf("vertexRange() = (%d, %d), want (%d, %d)",
					count, first, tt.count, tt.first)
			}
		})
	}
}

// Adjacent step segments must cover the interval space without a gap:
// a continuation op starting where a lead-in op ended picks up at the
// exact vertex the previous segment stopped before.
func TestVertexRangeStepSeam(t *testing.T) {
	head := gpucore.DrawOp{Kind: gpucore.PipelineStep, First: 0, Count: 10, LeadIn: true}
	tail := gpucore.DrawOp{Kind: gpucore.PipelineStep, First: 0, Count: 10}

	hc, hf := vertexRange(&head)
	tc, tf := vertexRange(&tail)
	if hf != 0 || hc != 42 {
		t.Errorf("lead-in segment = (%d, %d)", hc, hf)
	}
	// The continuation skips the pair the lead-in drew at the seam.
	if tf != 2 || tc != 40 {
		t.Errorf("continuation segment = (%d, %d)", tc, tf)
	}
}

func TestEncodeParams(t *testing.T) {
	op := gpucore.DrawOp{
		Transform:    [4]float32{2, -1, 0.5, 10},
		Color:        [4]float32{0.25, 0.5, 0.75, 1},
		Width:        3,
		StepLocation: 0.5,
	}
	data := encodeParams(&op, [2]uint32{800, 480})
	if len(data) != paramsSize {
		t.Fatalf("len = %d, want %d", len(data), paramsSize)
	}

	at := func(off int) float32 {
		return math.Float32frombits(binary.LittleEndian.Uint32(data[off : off+4]))
	}
	want := []struct {
		off int
		v   float32
	}{
		{0, 2}, {4, -1}, {8, 0.5}, {12, 10},
		{16, 0.25}, {20, 0.5}, {24, 0.75}, {28, 1},
		{32, 3}, {36, 0.5},
		{40, 800}, {44, 480},
	}
	for _, w := range want {
		if got := at(w.off); got != w.v {
			t.Errorf("offset %d = %v, want %v", w.off, got, w.v)
		}
	}
}

func TestBGRAToRGBA(t *testing.T) {
	src := []byte{1, 2, 3, 4, 5, 6, 7, 8}
	dst := make([]byte, len(src))
	bgraToRGBA(dst, src)
	want := []byte{3, 2, 1, 4, 7, 6, 5, 8}
	for i := range want {
		if dst[i] != want[i] {
			t.Fatalf("dst = %v, want %v", dst, want)
		}
	}
}
