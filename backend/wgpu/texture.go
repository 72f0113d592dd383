package wgpu

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/ToothlessBrush/maple/render"
)

// gpuTexture wraps a HAL texture and its default view.
type gpuTexture struct {
	device hal.Device
	handle hal.Texture
	view   *gpuTextureView
	dims   render.Dimensions
	format gputypes.TextureFormat
}

func (t *gpuTexture) Width() uint32                  { return t.dims.Width }
func (t *gpuTexture) Height() uint32                 { return t.dims.Height }
func (t *gpuTexture) Format() gputypes.TextureFormat { return t.format }
func (t *gpuTexture) View() render.TextureView       { return t.view }

func (t *gpuTexture) Destroy() {
	if t.view != nil {
		t.view.Destroy()
		t.view = nil
	}
	if t.handle != nil {
		t.device.DestroyTexture(t.handle)
		t.handle = nil
	}
}

// gpuTextureView wraps a HAL texture view.
type gpuTextureView struct {
	device hal.Device
	handle hal.TextureView
}

func (v *gpuTextureView) Destroy() {
	if v.handle != nil {
		v.device.DestroyTextureView(v.handle)
		v.handle = nil
	}
}

// CreateTexture creates a texture per info, uploading initial pixel data
// when info.Pixels is non-nil.
func (b *Backend) CreateTexture(info render.TextureCreateInfo) (render.Texture, error) {
	if info.Dimensions.Width == 0 || info.Dimensions.Height == 0 {
		return nil, fmt.Errorf("create texture %q: zero dimensions", info.Label)
	}
	format := info.Format
	if format == gputypes.TextureFormatUndefined {
		format = gputypes.TextureFormatRGBA8Unorm
	}

	usage := gputypes.TextureUsageTextureBinding | gputypes.TextureUsageCopyDst
	if info.RenderTarget {
		usage |= gputypes.TextureUsageRenderAttachment | gputypes.TextureUsageCopySrc
	}

	tex, err := b.device.CreateTexture(&hal.TextureDescriptor{
		Label: info.Label,
		Size: hal.Extent3D{
			Width:              info.Dimensions.Width,
			Height:             info.Dimensions.Height,
			DepthOrArrayLayers: 1,
		},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     gputypes.TextureDimension2D,
		Format:        format,
		Usage:         usage,
	})
	if err != nil {
		return nil, fmt.Errorf("create texture %q: %w", info.Label, err)
	}

	view, err := b.device.CreateTextureView(tex, &hal.TextureViewDescriptor{
		Label:         info.Label + "_view",
		Format:        format,
		Dimension:     gputypes.TextureViewDimension2D,
		Aspect:        gputypes.TextureAspectAll,
		MipLevelCount: 1,
	})
	if err != nil {
		b.device.DestroyTexture(tex)
		return nil, fmt.Errorf("create texture view %q: %w", info.Label, err)
	}

	if info.Pixels != nil {
		b.queue.WriteTexture(
			&hal.ImageCopyTexture{Texture: tex, MipLevel: 0},
			info.Pixels,
			&hal.ImageDataLayout{
				Offset:       0,
				BytesPerRow:  info.Dimensions.Width * 4,
				RowsPerImage: info.Dimensions.Height,
			},
			&hal.Extent3D{
				Width:              info.Dimensions.Width,
				Height:             info.Dimensions.Height,
				DepthOrArrayLayers: 1,
			},
		)
	}

	return &gpuTexture{
		device: b.device,
		handle: tex,
		view:   &gpuTextureView{device: b.device, handle: view},
		dims:   info.Dimensions,
		format: format,
	}, nil
}

// gpuSampler wraps a HAL sampler.
type gpuSampler struct {
	device hal.Device
	handle hal.Sampler
}

func (s *gpuSampler) Destroy() {
	if s.handle != nil {
		s.device.DestroySampler(s.handle)
		s.handle = nil
	}
}

// CreateSampler creates a sampler with the given addressing and
// filtering options.
func (b *Backend) CreateSampler(opts render.SamplerOptions) (render.Sampler, error) {
	sampler, err := b.device.CreateSampler(&hal.SamplerDescriptor{
		Label:        "sampler",
		AddressModeU: addressMode(opts.ModeU),
		AddressModeV: addressMode(opts.ModeV),
		AddressModeW: addressMode(opts.ModeW),
		MagFilter:    filterMode(opts.MagFilter),
		MinFilter:    filterMode(opts.MinFilter),
		MipmapFilter: filterMode(opts.MinFilter),
	})
	if err != nil {
		return nil, fmt.Errorf("create sampler: %w", err)
	}
	return &gpuSampler{device: b.device, handle: sampler}, nil
}

func addressMode(m render.AddressMode) gputypes.AddressMode {
	switch m {
	case render.AddressRepeat:
		return gputypes.AddressModeRepeat
	case render.AddressMirrorRepeat:
		return gputypes.AddressModeMirrorRepeat
	default:
		return gputypes.AddressModeClampToEdge
	}
}

func filterMode(m render.FilterMode) gputypes.FilterMode {
	if m == render.FilterNearest {
		return gputypes.FilterModeNearest
	}
	return gputypes.FilterModeLinear
}
