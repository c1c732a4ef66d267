// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package wgpu

import (
	"encoding/binary"
	"fmt"
	"math"
	"time"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/timechart/gpucore"
)

// renderTarget is the offscreen texture frames render into. It is
// recreated whenever the viewport size changes.
type renderTarget struct {
	tex    hal.Texture
	view   hal.TextureView
	width  uint32
	height uint32
}

func (rt *renderTarget) ensure(device hal.Device, w, h uint32) error {
	if rt.tex != nil && rt.width == w && rt.height == h {
		return nil
	}
	rt.destroy(device)

	tex, err := device.CreateTexture(&hal.TextureDescriptor{
		Label:         "timechart_target",
		Size:          hal.Extent3D{Width: w, Height: h, DepthOrArrayLayers: 1},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     gputypes.TextureDimension2D,
		Format:        gputypes.TextureFormatBGRA8Unorm,
		Usage:         gputypes.TextureUsageRenderAttachment | gputypes.TextureUsageCopySrc,
	})
	if err != nil {
		return fmt.Errorf("wgpu: create target texture: %w", err)
	}
	rt.tex = tex

	view, err := device.CreateTextureView(tex, &hal.TextureViewDescriptor{
		Label: "timechart_target_view",
	})
	if err != nil {
		rt.destroy(device)
		return fmt.Errorf("wgpu: create target view: %w", err)
	}
	rt.view = view
	rt.width, rt.height = w, h
	return nil
}

func (rt *renderTarget) destroy(device hal.Device) {
	if rt.view != nil {
		device.DestroyTextureView(rt.view)
		rt.view = nil
	}
	if rt.tex != nil {
		device.DestroyTexture(rt.tex)
		rt.tex = nil
	}
	rt.width, rt.height = 0, 0
}

// BeginFrame opens a render pass on the offscreen target, clearing it
// to the given color.
func (a *Adapter) BeginFrame(viewport [2]uint32, clear [4]float32) (gpucore.Frame, error) {
	if viewport[0] == 0 || viewport[1] == 0 {
		return nil, a.errf("wgpu: zero viewport %dx%d", viewport[0], viewport[1])
	}
	if err := a.target.ensure(a.device, viewport[0], viewport[1]); err != nil {
		return nil, a.fail(err)
	}

	encoder, err := a.device.CreateCommandEncoder(&hal.CommandEncoderDescriptor{
		Label: "timechart_encoder",
	})
	if err != nil {
		return nil, a.errf("wgpu: create command encoder: %w", err)
	}
	if err := encoder.BeginEncoding("timechart_frame"); err != nil {
		return nil, a.errf("wgpu: begin encoding: %w", err)
	}

	rp := encoder.BeginRenderPass(&hal.RenderPassDescriptor{
		Label: "timechart_pass",
		ColorAttachments: []hal.RenderPassColorAttachment{{
			View:    a.target.view,
			LoadOp:  gputypes.LoadOpClear,
			StoreOp: gputypes.StoreOpStore,
			ClearValue: gputypes.Color{
				R: float64(clear[0]),
				G: float64(clear[1]),
				B: float64(clear[2]),
				A: float64(clear[3]),
			},
		}},
	})

	return &frame{
		a:        a,
		encoder:  encoder,
		rp:       rp,
		viewport: viewport,
	}, nil
}

// frame records draws into one render pass and submits on End.
type frame struct {
	a        *Adapter
	encoder  hal.CommandEncoder
	rp       hal.RenderPassEncoder
	viewport [2]uint32

	// Per-draw resources, released after the submit completes.
	uniforms   []hal.Buffer
	bindGroups []hal.BindGroup

	ended bool
}

var _ gpucore.Frame = (*frame)(nil)

func (f *frame) Draw(op *gpucore.DrawOp) error {
	if f.ended {
		return f.a.fail(gpucore.ErrFrameEnded)
	}
	if op.Count == 0 {
		return nil
	}
	pipeline, err := f.a.pipelines.get(f.a.device, op.Kind)
	if err != nil {
		return f.a.fail(err)
	}
	points, err := f.a.lookup(op.Points)
	if err != nil {
		return err
	}

	uniformBuf, err := f.a.device.CreateBuffer(&hal.BufferDescriptor{
		Label: "timechart_params",
		Size:  paramsSize,
		Usage: gputypes.BufferUsageUniform | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		return f.a.errf("wgpu: create uniform buffer: %w", err)
	}
	f.uniforms = append(f.uniforms, uniformBuf)
	f.a.queue.WriteBuffer(uniformBuf, 0, encodeParams(op, f.viewport))

	bindGroup, err := f.a.device.CreateBindGroup(&hal.BindGroupDescriptor{
		Label:  "timechart_bind",
		Layout: f.a.pipelines.bindLayout,
		Entries: []gputypes.BindGroupEntry{
			{Binding: 0, Resource: gputypes.BufferBinding{
				Buffer: uniformBuf.NativeHandle(), Offset: 0, Size: paramsSize,
			}},
			{Binding: 1, Resource: gputypes.BufferBinding{
				Buffer: points.buf.NativeHandle(), Offset: 0, Size: points.size,
			}},
		},
	})
	if err != nil {
		return f.a.errf("wgpu: create bind group: %w", err)
	}
	f.bindGroups = append(f.bindGroups, bindGroup)

	count, first := vertexRange(op)
	f.rp.SetPipeline(pipeline)
	f.rp.SetBindGroup(0, bindGroup, nil)
	f.rp.Draw(count, 1, first, 0)
	return nil
}

func (f *frame) End() error {
	if f.ended {
		return f.a.fail(gpucore.ErrFrameEnded)
	}
	f.ended = true
	defer f.release()

	f.rp.End()
	cmdBuf, err := f.encoder.EndEncoding()
	if err != nil {
		return f.a.errf("wgpu: end encoding: %w", err)
	}
	defer f.a.device.FreeCommandBuffer(cmdBuf)

	fence, err := f.a.device.CreateFence()
	if err != nil {
		return f.a.errf("wgpu: create fence: %w", err)
	}
	defer f.a.device.DestroyFence(fence)

	if err := f.a.queue.Submit([]hal.CommandBuffer{cmdBuf}, fence, 1); err != nil {
		return f.a.errf("wgpu: submit: %w", err)
	}
	fenceOK, err := f.a.device.Wait(fence, 1, 5*time.Second)
	if err != nil || !fenceOK {
		return f.a.errf("wgpu: wait for GPU: ok=%v err=%w", fenceOK, err)
	}
	return nil
}

func (f *frame) release() {
	for _, bg := range f.bindGroups {
		f.a.device.DestroyBindGroup(bg)
	}
	f.bindGroups = nil
	for _, buf := range f.uniforms {
		f.a.device.DestroyBuffer(buf)
	}
	f.uniforms = nil
}

// vertexRange converts a draw op's interval window into the vertex
// count and first vertex for its pipeline's expansion scheme.
//
// The line strip expands every point into a pair of offset vertices.
// The step strip expands every interval into four vertices plus a
// trailing pair for the final point; a segment that continues the
// previous one starts past the leading pair, which the previous
// segment already emitted at the same position.
func vertexRange(op *gpucore.DrawOp) (count, first uint32) {
	switch op.Kind {
	case gpucore.PipelineLine:
		return op.Count*2 + 2, op.First * 2
	case gpucore.PipelineStep:
		if op.LeadIn {
			return op.Count*4 + 2, op.First * 4
		}
		return op.Count * 4, op.First*4 + 2
	default:
		return op.Count + 1, op.First
	}
}

// encodeParams serializes the per-draw uniform block.
func encodeParams(op *gpucore.DrawOp, viewport [2]uint32) []byte {
	buf := make([]byte, paramsSize)
	put := func(off int, v float32) {
		binary.LittleEndian.PutUint32(buf[off:off+4], math.Float32bits(v))
	}
	for i, v := range op.Transform {
		put(i*4, v)
	}
	for i, v := range op.Color {
		put(16+i*4, v)
	}
	put(32, op.Width)
	put(36, op.StepLocation)
	put(40, float32(viewport[0]))
	put(44, float32(viewport[1]))
	return buf
}
