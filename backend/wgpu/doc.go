// Package wgpu implements gpucore.Device on the gogpu/wgpu HAL.
//
// The adapter renders chart frames into an offscreen BGRA8 texture.
// Series data lives in storage buffers the vertex stages pull from, so
// a draw call carries no vertex buffer, only a first-vertex offset and
// count derived from the visible interval window.
//
// # Pipelines
//
// One render pipeline exists per draw style:
//
//   - Line: triangle strip, two offset vertices per point
//   - Step: triangle strip, four vertices per interval
//   - NativeLine: hardware line strip, one vertex per point
//   - NativePoint: hardware point list, one vertex per point
//
// Shaders are compiled from embedded WGSL to SPIR-V through gogpu/naga
// when a pipeline is first used.
//
// # Usage
//
//	adapter, err := wgpu.NewFromProvider(provider)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer adapter.Close()
//
//	chart, err := timechart.New(adapter)
//
// The HAL device and queue are owned by the caller. Close releases
// only the pipelines, the render target, and the chart's buffers.
//
// WithDebug makes the adapter log every error it returns at Error
// level, which helps when a caller drops return values.
//
// # Thread Safety
//
// Buffer creation and destruction are synchronized. Frames are not:
// BeginFrame through End must run on one goroutine, matching the
// chart's single-goroutine model.
package wgpu
