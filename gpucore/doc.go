// Package gpucore defines the device abstraction charts render through.
//
// The package exists so the chart core can be tested and reused without
// a GPU: backend/wgpu implements [Device] on the gogpu/wgpu HAL,
// [NullDevice] implements it as a no-op, and tests use a recording
// implementation.
//
//	               +-----------------+
//	               |    timechart    |
//	               | (Chart, Series) |
//	               +--------+--------+
//	                        |
//	                  gpucore.Device
//	                        |
//	         +--------------+--------------+
//	         |                             |
//	+--------v--------+          +--------v--------+
//	|  backend/wgpu   |          |   NullDevice    |
//	|  (hal.Device)   |          |    (no-op)      |
//	+-----------------+          +-----------------+
//
// A [Device] owns storage buffers addressed by opaque [BufferID]
// handles and opens one [Frame] per redraw. A [DrawOp] describes a
// window of point intervals within one buffer together with the style,
// color and domain-to-pixel transform to draw it with.
package gpucore
