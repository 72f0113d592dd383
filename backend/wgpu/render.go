package wgpu

import (
	"fmt"
	"time"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/ToothlessBrush/maple/render"
)

// clearColor is the load-op clear value of every pass.
var clearColor = gputypes.Color{R: 0.1, G: 0.2, B: 0.3, A: 1.0}

// gpuWait bounds how long a frame submission may take before the device
// is considered lost.
const gpuWait = 5 * time.Second

// Render executes one pass: it begins a render pass on the target,
// binds the pipeline, hands a FrameBuilder to fn for draw recording,
// then submits and waits. Surface passes read back to the present
// callback when one is configured.
func (b *Backend) Render(pipeline render.Pipeline, target render.Target, fn func(render.FrameBuilder) error) error {
	gp, ok := pipeline.(*gpuPipeline)
	if !ok || gp.handle == nil {
		return fmt.Errorf("render: pipeline is not a live wgpu pipeline")
	}

	var (
		view    hal.TextureView
		tex     hal.Texture
		dims    render.Dimensions
		surface bool
	)
	if target.IsSurface() {
		if b.surfaceTex == nil {
			return render.ErrSurfaceOutdated
		}
		view, tex = b.surfaceView, b.surfaceTex
		dims = b.dims
		surface = true
	} else {
		gt, ok := target.Texture().(*gpuTexture)
		if !ok || gt.handle == nil {
			return fmt.Errorf("render: target is not a live wgpu texture")
		}
		view, tex = gt.view.handle, gt.handle
		dims = gt.dims
	}

	encoder, err := b.device.CreateCommandEncoder(&hal.CommandEncoderDescriptor{
		Label: gp.label + "_encoder",
	})
	if err != nil {
		return render.Fatal("create command encoder", err)
	}
	if err := encoder.BeginEncoding(gp.label); err != nil {
		return render.Fatal("begin encoding", err)
	}

	rp := encoder.BeginRenderPass(&hal.RenderPassDescriptor{
		Label: gp.label,
		ColorAttachments: []hal.RenderPassColorAttachment{
			{
				View:       view,
				LoadOp:     gputypes.LoadOpClear,
				StoreOp:    gputypes.StoreOpStore,
				ClearValue: clearColor,
			},
		},
	})
	rp.SetPipeline(gp.handle)

	fb := &frameBuilder{rp: rp}
	if err := fn(fb); err != nil {
		rp.End()
		encoder.DiscardEncoding()
		return err
	}
	if fb.err != nil {
		rp.End()
		encoder.DiscardEncoding()
		return fb.err
	}
	rp.End()

	readback := surface && b.present != nil
	var staging hal.Buffer
	if readback {
		// The color attachment must transition to a copy source before
		// CopyTextureToBuffer. No-op on backends without layouts.
		encoder.TransitionTextures([]hal.TextureBarrier{{
			Texture: tex,
			Usage: hal.TextureUsageTransition{
				OldUsage: gputypes.TextureUsageRenderAttachment,
				NewUsage: gputypes.TextureUsageCopySrc,
			},
		}})

		size := uint64(dims.Width) * uint64(dims.Height) * 4
		staging, err = b.device.CreateBuffer(&hal.BufferDescriptor{
			Label: gp.label + "_staging",
			Size:  size,
			Usage: gputypes.BufferUsageMapRead | gputypes.BufferUsageCopyDst,
		})
		if err != nil {
			encoder.DiscardEncoding()
			return render.Fatal("create staging buffer", err)
		}
		defer b.device.DestroyBuffer(staging)

		encoder.CopyTextureToBuffer(tex, staging, []hal.BufferTextureCopy{{
			BufferLayout: hal.ImageDataLayout{
				Offset:       0,
				BytesPerRow:  dims.Width * 4,
				RowsPerImage: dims.Height,
			},
			TextureBase: hal.ImageCopyTexture{Texture: tex, MipLevel: 0},
			Size: hal.Extent3D{
				Width:              dims.Width,
				Height:             dims.Height,
				DepthOrArrayLayers: 1,
			},
		}})
	}

	cmdBuf, err := encoder.EndEncoding()
	if err != nil {
		return render.Fatal("end encoding", err)
	}
	defer b.device.FreeCommandBuffer(cmdBuf)

	fence, err := b.device.CreateFence()
	if err != nil {
		return render.Fatal("create fence", err)
	}
	defer b.device.DestroyFence(fence)

	if err := b.queue.Submit([]hal.CommandBuffer{cmdBuf}, fence, 1); err != nil {
		return render.Fatal("submit", err)
	}
	fenceOK, err := b.device.Wait(fence, 1, gpuWait)
	if err != nil {
		return render.Fatal("wait for gpu", err)
	}
	if !fenceOK {
		return render.Fatal("wait for gpu", render.ErrDeviceLost)
	}

	if readback {
		pixels := make([]byte, uint64(dims.Width)*uint64(dims.Height)*4)
		if err := b.queue.ReadBuffer(staging, 0, pixels); err != nil {
			return render.Fatal("readback", err)
		}
		b.present(pixels, dims)
	}
	return nil
}

// frameBuilder records draw calls into a live HAL render pass encoder.
// The first invalid bind or draw latches an error; later calls become
// no-ops and Render surfaces the error after fn returns.
type frameBuilder struct {
	rp  hal.RenderPassEncoder
	err error

	vertexCount uint32
	indexCount  uint32
}

func (f *frameBuilder) fail(err error) render.FrameBuilder {
	if f.err == nil {
		f.err = err
	}
	return f
}

func (f *frameBuilder) BindVertexBuffer(buf render.Buffer) render.FrameBuilder {
	if f.err != nil {
		return f
	}
	gb, ok := buf.(*gpuBuffer)
	if !ok || gb.handle == nil {
		return f.fail(fmt.Errorf("bind vertex buffer: not a live wgpu buffer"))
	}
	if gb.kind != render.BufferVertex {
		return f.fail(fmt.Errorf("bind vertex buffer: buffer is a %s buffer", gb.kind))
	}
	f.rp.SetVertexBuffer(0, gb.handle, 0)
	f.vertexCount = uint32(gb.count)
	return f
}

func (f *frameBuilder) BindIndexBuffer(buf render.Buffer) render.FrameBuilder {
	if f.err != nil {
		return f
	}
	gb, ok := buf.(*gpuBuffer)
	if !ok || gb.handle == nil {
		return f.fail(fmt.Errorf("bind index buffer: not a live wgpu buffer"))
	}
	if gb.kind != render.BufferIndex {
		return f.fail(fmt.Errorf("bind index buffer: buffer is a %s buffer", gb.kind))
	}
	f.rp.SetIndexBuffer(gb.handle, gputypes.IndexFormatUint32, 0)
	f.indexCount = uint32(gb.count)
	return f
}

func (f *frameBuilder) BindDescriptorSet(set uint32, ds render.DescriptorSet) render.FrameBuilder {
	if f.err != nil {
		return f
	}
	gs, ok := ds.(*gpuDescriptorSet)
	if !ok || gs.handle == nil {
		return f.fail(fmt.Errorf("bind descriptor set %d: not a live wgpu set", set))
	}
	f.rp.SetBindGroup(set, gs.handle, nil)
	return f
}

func (f *frameBuilder) DebugMarker(label string) render.FrameBuilder {
	// HAL passes carry no marker support; surface markers to the logger
	// so captures of log output still line up with draw order.
	slogger().Debug("wgpu: marker", "label", label)
	return f
}

func (f *frameBuilder) Draw() render.FrameBuilder {
	if f.err != nil {
		return f
	}
	if f.vertexCount == 0 {
		return f.fail(fmt.Errorf("draw: no vertex buffer bound"))
	}
	f.rp.Draw(f.vertexCount, 1, 0, 0)
	return f
}

func (f *frameBuilder) DrawIndexed() render.FrameBuilder {
	if f.err != nil {
		return f
	}
	if f.indexCount == 0 {
		return f.fail(fmt.Errorf("draw indexed: no index buffer bound"))
	}
	f.rp.DrawIndexed(f.indexCount, 1, 0, 0, 0)
	return f
}
