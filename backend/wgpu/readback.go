// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package wgpu

import (
	"image"
	"time"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// Pixels reads the offscreen target back into an RGBA image. It must
// be called after at least one frame has been rendered.
func (a *Adapter) Pixels() (*image.RGBA, error) {
	if a.target.tex == nil {
		return nil, a.errf("wgpu: no frame rendered yet")
	}
	w, h := a.target.width, a.target.height

	encoder, err := a.device.CreateCommandEncoder(&hal.CommandEncoderDescriptor{
		Label: "timechart_readback_encoder",
	})
	if err != nil {
		return nil, a.errf("wgpu: create readback encoder: %w", err)
	}
	if err := encoder.BeginEncoding("timechart_readback"); err != nil {
		return nil, a.errf("wgpu: begin encoding: %w", err)
	}

	// Copies require the texture in CopySrc usage; the pass left it as
	// a render attachment. The barrier is a no-op on backends without
	// explicit layouts.
	encoder.TransitionTextures([]hal.TextureBarrier{{
		Texture: a.target.tex,
		Usage: hal.TextureUsageTransition{
			OldUsage: gputypes.TextureUsageRenderAttachment,
			NewUsage: gputypes.TextureUsageCopySrc,
		},
	}})

	// Copy pitch must be 256-byte aligned.
	bytesPerRow := w * 4
	const copyPitchAlignment = 256
	alignedBytesPerRow := (bytesPerRow + copyPitchAlignment - 1) &^ (copyPitchAlignment - 1)
	stagingSize := uint64(alignedBytesPerRow) * uint64(h)

	stagingBuf, err := a.device.CreateBuffer(&hal.BufferDescriptor{
		Label: "timechart_staging",
		Size:  stagingSize,
		Usage: gputypes.BufferUsageMapRead | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		encoder.DiscardEncoding()
		return nil, a.errf("wgpu: create staging buffer: %w", err)
	}
	defer a.device.DestroyBuffer(stagingBuf)

	encoder.CopyTextureToBuffer(a.target.tex, stagingBuf, []hal.BufferTextureCopy{{
		BufferLayout: hal.ImageDataLayout{Offset: 0, BytesPerRow: alignedBytesPerRow, RowsPerImage: h},
		TextureBase:  hal.ImageCopyTexture{Texture: a.target.tex, MipLevel: 0},
		Size:         hal.Extent3D{Width: w, Height: h, DepthOrArrayLayers: 1},
	}})

	encoder.TransitionTextures([]hal.TextureBarrier{{
		Texture: a.target.tex,
		Usage: hal.TextureUsageTransition{
			OldUsage: gputypes.TextureUsageCopySrc,
			NewUsage: gputypes.TextureUsageRenderAttachment,
		},
	}})

	cmdBuf, err := encoder.EndEncoding()
	if err != nil {
		return nil, a.errf("wgpu: end encoding: %w", err)
	}
	defer a.device.FreeCommandBuffer(cmdBuf)

	fence, err := a.device.CreateFence()
	if err != nil {
		return nil, a.errf("wgpu: create fence: %w", err)
	}
	defer a.device.DestroyFence(fence)

	if err := a.queue.Submit([]hal.CommandBuffer{cmdBuf}, fence, 1); err != nil {
		return nil, a.errf("wgpu: submit readback: %w", err)
	}
	fenceOK, err := a.device.Wait(fence, 1, 5*time.Second)
	if err != nil || !fenceOK {
		return nil, a.errf("wgpu: wait for readback: ok=%v err=%w", fenceOK, err)
	}

	readback := make([]byte, stagingSize)
	if err := a.queue.ReadBuffer(stagingBuf, 0, readback); err != nil {
		return nil, a.errf("wgpu: read staging buffer: %w", err)
	}

	img := image.NewRGBA(image.Rect(0, 0, int(w), int(h)))
	for row := uint32(0); row < h; row++ {
		src := readback[row*alignedBytesPerRow:]
		dst := img.Pix[int(row)*img.Stride:]
		bgraToRGBA(dst[:bytesPerRow], src[:bytesPerRow])
	}
	return img, nil
}

// bgraToRGBA swaps the blue and red channels in place while copying.
func bgraToRGBA(dst, src []byte) {
	for i := 0; i+3 < len(src); i += 4 {
		dst[i] = src[i+2]
		dst[i+1] = src[i+1]
		dst[i+2] = src[i]
		dst[i+3] = src[i+3]
	}
}
