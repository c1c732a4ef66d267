// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package wgpu

import (
	_ "embed"
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/naga"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/timechart/gpucore"
)

//go:embed shaders/line.wgsl
var lineShaderSource string

//go:embed shaders/step.wgsl
var stepShaderSource string

//go:embed shaders/native.wgsl
var nativeShaderSource string

// paramsSize is the byte size of the per-draw uniform block. Layout:
//
//	transform (vec4<f32>) = 16 bytes
//	color     (vec4<f32>) = 16 bytes
//	width     (f32)       = 4 bytes
//	step_loc  (f32)       = 4 bytes
//	viewport  (vec2<f32>) = 8 bytes
const paramsSize = 48

// pipelineSet holds the lazily created render pipelines, one per
// gpucore.PipelineKind. All pipelines share the bind group layout:
// binding 0 is the draw uniform, binding 1 the point storage buffer
// the vertex stages pull from.
type pipelineSet struct {
	bindLayout hal.BindGroupLayout
	pipeLayout hal.PipelineLayout

	shaders   [gpucore.NumPipelineKinds]hal.ShaderModule
	pipelines [gpucore.NumPipelineKinds]hal.RenderPipeline
}

// get returns the pipeline for kind, creating it and the shared layouts
// on first use.
func (ps *pipelineSet) get(device hal.Device, kind gpucore.PipelineKind) (hal.RenderPipeline, error) {
	if int(kind) >= len(ps.pipelines) {
		return nil, fmt.Errorf("wgpu: unknown pipeline kind %d", kind)
	}
	if p := ps.pipelines[kind]; p != nil {
		return p, nil
	}
	if err := ps.ensureLayouts(device); err != nil {
		return nil, err
	}
	p, err := ps.createPipeline(device, kind)
	if err != nil {
		return nil, err
	}
	ps.pipelines[kind] = p
	return p, nil
}

func (ps *pipelineSet) ensureLayouts(device hal.Device) error {
	if ps.pipeLayout != nil {
		return nil
	}

	bindLayout, err := device.CreateBindGroupLayout(&hal.BindGroupLayoutDescriptor{
		Label: "timechart_bind_layout",
		Entries: []gputypes.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: gputypes.ShaderStageVertex | gputypes.ShaderStageFragment,
				Buffer:     &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeUniform},
			},
			{
				Binding:    1,
				Visibility: gputypes.ShaderStageVertex,
				Buffer:     &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeReadOnlyStorage},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("wgpu: create bind group layout: %w", err)
	}
	ps.bindLayout = bindLayout

	pipeLayout, err := device.CreatePipelineLayout(&hal.PipelineLayoutDescriptor{
		Label:            "timechart_pipe_layout",
		BindGroupLayouts: []hal.BindGroupLayout{bindLayout},
	})
	if err != nil {
		return fmt.Errorf("wgpu: create pipeline layout: %w", err)
	}
	ps.pipeLayout = pipeLayout
	return nil
}

func (ps *pipelineSet) createPipeline(device hal.Device, kind gpucore.PipelineKind) (hal.RenderPipeline, error) {
	shader, err := ps.shaderFor(device, kind)
	if err != nil {
		return nil, err
	}

	premulBlend := gputypes.BlendStatePremultiplied()
	pipeline, err := device.CreateRenderPipeline(&hal.RenderPipelineDescriptor{
		Label:  "timechart_" + kind.String(),
		Layout: ps.pipeLayout,
		Vertex: hal.VertexState{
			Module:     shader,
			EntryPoint: "vs_main",
		},
		Fragment: &hal.FragmentState{
			Module:     shader,
			EntryPoint: "fs_main",
			Targets: []gputypes.ColorTargetState{
				{
					Format:    gputypes.TextureFormatBGRA8Unorm,
					Blend:     &premulBlend,
					WriteMask: gputypes.ColorWriteMaskAll,
				},
			},
		},
		Primitive: gputypes.PrimitiveState{
			Topology: topologyFor(kind),
			CullMode: gputypes.CullModeNone,
		},
		Multisample: gputypes.MultisampleState{
			Count: 1,
			Mask:  0xFFFFFFFF,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("wgpu: create %s pipeline: %w", kind, err)
	}
	return pipeline, nil
}

// shaderFor compiles the WGSL source for kind to SPIR-V through naga
// and creates the shader module. The native line and point pipelines
// share one module.
func (ps *pipelineSet) shaderFor(device hal.Device, kind gpucore.PipelineKind) (hal.ShaderModule, error) {
	src := shaderSlot(kind)
	if ps.shaders[src] != nil {
		return ps.shaders[src], nil
	}

	spirv, err := compileWGSL(sourceFor(src))
	if err != nil {
		return nil, fmt.Errorf("wgpu: compile %s shader: %w", src, err)
	}
	shader, err := device.CreateShaderModule(&hal.ShaderModuleDescriptor{
		Label:  "timechart_" + src.String(),
		Source: hal.ShaderSource{SPIRV: spirv},
	})
	if err != nil {
		return nil, fmt.Errorf("wgpu: create %s shader module: %w", src, err)
	}
	ps.shaders[src] = shader
	return shader, nil
}

// shaderSlot maps a pipeline kind to the shader module it uses.
func shaderSlot(kind gpucore.PipelineKind) gpucore.PipelineKind {
	if kind == gpucore.PipelineNativePoint {
		return gpucore.PipelineNativeLine
	}
	return kind
}

func sourceFor(kind gpucore.PipelineKind) string {
	switch kind {
	case gpucore.PipelineLine:
		return lineShaderSource
	case gpucore.PipelineStep:
		return stepShaderSource
	default:
		return nativeShaderSource
	}
}

func topologyFor(kind gpucore.PipelineKind) gputypes.PrimitiveTopology {
	switch kind {
	case gpucore.PipelineNativeLine:
		return gputypes.PrimitiveTopologyLineStrip
	case gpucore.PipelineNativePoint:
		return gputypes.PrimitiveTopologyPointList
	default:
		return gputypes.PrimitiveTopologyTriangleStrip
	}
}

// compileWGSL compiles WGSL source to SPIR-V words.
func compileWGSL(source string) ([]uint32, error) {
	spirvBytes, err := naga.Compile(source)
	if err != nil {
		return nil, err
	}
	// SPIR-V is little-endian 32-bit words.
	code := make([]uint32, len(spirvBytes)/4)
	for i := range code {
		code[i] = uint32(spirvBytes[i*4]) |
			uint32(spirvBytes[i*4+1])<<8 |
			uint32(spirvBytes[i*4+2])<<16 |
			uint32(spirvBytes[i*4+3])<<24
	}
	return code, nil
}

// destroy releases pipelines, shader modules and layouts in reverse
// creation order.
func (ps *pipelineSet) destroy(device hal.Device) {
	for i, p := range ps.pipelines {
		if p != nil {
			device.DestroyRenderPipeline(p)
			ps.pipelines[i] = nil
		}
	}
	for i, s := range ps.shaders {
		if s != nil {
			device.DestroyShaderModule(s)
			ps.shaders[i] = nil
		}
	}
	if ps.pipeLayout != nil {
		device.DestroyPipelineLayout(ps.pipeLayout)
		ps.pipeLayout = nil
	}
	if ps.bindLayout != nil {
		device.DestroyBindGroupLayout(ps.bindLayout)
		ps.bindLayout = nil
	}
}
