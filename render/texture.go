package render

import (
	"image"

	"github.com/gogpu/gputypes"
	"golang.org/x/image/draw"
)

// TextureCreateInfo describes a texture to create.
type TextureCreateInfo struct {
	// Label is an optional debug label.
	Label string

	// Dimensions is the texture extent.
	Dimensions Dimensions

	// Format is the pixel format. The zero value selects RGBA8Unorm.
	Format gputypes.TextureFormat

	// RenderTarget marks the texture as usable as a pass's color
	// attachment in addition to being sampled.
	RenderTarget bool

	// Pixels optionally holds initial contents, tightly packed rows.
	Pixels []byte
}

// Texture is an opaque GPU texture handle.
type Texture interface {
	// Width returns the texture width in pixels.
	Width() uint32

	// Height returns the texture height in pixels.
	Height() uint32

	// Format returns the texture pixel format.
	Format() gputypes.TextureFormat

	// View returns a view suitable for sampling or attachment.
	View() TextureView

	// Destroy releases the texture and its view.
	Destroy()
}

// TextureView is an opaque view into a texture.
type TextureView interface {
	// Destroy releases the view.
	Destroy()
}

// AddressMode selects how sampling behaves outside [0,1) UV.
type AddressMode int

const (
	AddressClampToEdge AddressMode = iota
	AddressRepeat
	AddressMirrorRepeat
)

// FilterMode selects how sampling behaves between texels.
type FilterMode int

const (
	FilterLinear FilterMode = iota
	FilterNearest
)

// SamplerOptions configures a sampler. The zero value is clamp-to-edge,
// linear filtering.
type SamplerOptions struct {
	ModeU     AddressMode
	ModeV     AddressMode
	ModeW     AddressMode
	MagFilter FilterMode
	MinFilter FilterMode
}

// Sampler is an opaque GPU sampler handle.
type Sampler interface {
	// Destroy releases the sampler.
	Destroy()
}

// ImagePixels converts an arbitrary image into tightly packed RGBA bytes
// at the requested dimensions, resampling when the sizes differ. The
// result is suitable for TextureCreateInfo.Pixels with the RGBA8Unorm
// format.
func ImagePixels(img image.Image, dims Dimensions) []byte {
	w, h := int(dims.Width), int(dims.Height)
	bounds := img.Bounds()

	rgba, ok := img.(*image.RGBA)
	if !ok || bounds.Dx() != w || bounds.Dy() != h {
		dst := image.NewRGBA(image.Rect(0, 0, w, h))
		draw.BiLinear.Scale(dst, dst.Bounds(), img, bounds, draw.Src, nil)
		rgba = dst
	}

	if rgba.Stride == w*4 && rgba.Bounds().Min == image.Pt(0, 0) {
		return rgba.Pix[:w*h*4]
	}

	// Repack row by row when the stride carries padding.
	out := make([]byte, w*h*4)
	for y := 0; y < h; y++ {
		src := rgba.Pix[y*rgba.Stride : y*rgba.Stride+w*4]
		copy(out[y*w*4:], src)
	}
	return out
}
