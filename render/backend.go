package render

import (
	"github.com/gogpu/gputypes"
)

// Dimensions is a surface or texture extent in pixels.
type Dimensions struct {
	Width  uint32
	Height uint32
}

// VsyncMode controls presentation pacing.
type VsyncMode int

const (
	// VsyncOff presents frames as fast as the backend allows.
	VsyncOff VsyncMode = iota

	// VsyncOn locks presentation to the display refresh.
	VsyncOn
)

// String returns "off" or "on".
func (m VsyncMode) String() string {
	if m == VsyncOn {
		return "on"
	}
	return "off"
}

// PresentFunc receives the surface pixels of a completed frame.
// Pixels are tightly packed RGBA, row-major, Width*Height*4 bytes.
// The slice is only valid for the duration of the call.
type PresentFunc func(pixels []byte, dims Dimensions)

// Options configures backend construction.
type Options struct {
	// Dimensions is the initial surface size.
	Dimensions Dimensions

	// Vsync is the initial presentation mode.
	Vsync VsyncMode

	// Device optionally supplies a shared GPU device from the host
	// application instead of letting the backend create its own.
	// Backends that cannot adopt the provided device return an error
	// from their factory.
	Device DeviceHandle

	// Present, if non-nil, is invoked with the surface contents after
	// each frame that draws to the surface target. Leave nil to skip
	// readback entirely.
	Present PresentFunc
}

// Backend is the interface a concrete GPU implementation provides.
//
// All creation methods return opaque handles owned by the backend.
// A backend is not safe for concurrent use; the render core drives it
// from a single goroutine, frame-sequentially.
type Backend interface {
	// Name returns the backend identifier (e.g. "wgpu", "headless").
	Name() string

	// SurfaceFormat returns the pixel format of the presentation surface.
	SurfaceFormat() gputypes.TextureFormat

	// Dimensions returns the current surface size.
	Dimensions() Dimensions

	// CreateVertexBuffer uploads vertices into a new vertex buffer.
	CreateVertexBuffer(vertices []Vertex) (Buffer, error)

	// CreateIndexBuffer uploads 32-bit indices into a new index buffer.
	CreateIndexBuffer(indices []uint32) (Buffer, error)

	// CreateUniformBuffer creates a uniform buffer holding data.
	CreateUniformBuffer(data []byte) (Buffer, error)

	// CreateStorageBuffer creates a storage buffer holding data.
	CreateStorageBuffer(data []byte) (Buffer, error)

	// WriteBuffer replaces the contents of a previously created buffer.
	// len(data) must not exceed the buffer's size.
	WriteBuffer(buf Buffer, data []byte) error

	// CreateTexture creates a texture per info, uploading initial pixel
	// data when info.Pixels is non-nil.
	CreateTexture(info TextureCreateInfo) (Texture, error)

	// CreateSampler creates a sampler with the given addressing and
	// filtering options.
	CreateSampler(opts SamplerOptions) (Sampler, error)

	// CreateDescriptorSetLayout creates a layout describing the bindings
	// a pass expects at one set index.
	CreateDescriptorSetLayout(desc DescriptorSetLayoutDescriptor) (DescriptorSetLayout, error)

	// BuildDescriptorSet resolves a builder's writes into a bindable set.
	BuildDescriptorSet(b *DescriptorSetBuilder) (DescriptorSet, error)

	// CreateShaderPair compiles a vertex/fragment source pair.
	CreateShaderPair(pair ShaderPair) (GraphicsShader, error)

	// CreatePipeline creates a render pipeline binding a shader pair,
	// descriptor set layouts and a color target format together.
	CreatePipeline(info PipelineCreateInfo) (Pipeline, error)

	// Render executes one pass: it begins a render pass on the target,
	// binds the pipeline, hands a FrameBuilder to fn for draw recording,
	// then submits. When the target is the surface and a PresentFunc is
	// configured, the finished pixels are handed to it.
	Render(pipeline Pipeline, target Target, fn func(FrameBuilder) error) error

	// Resize reconfigures the surface to the new dimensions.
	Resize(dims Dimensions) error

	// SetVsync switches presentation pacing at runtime.
	SetVsync(mode VsyncMode) error

	// Close releases every resource the backend still owns. The backend
	// must not be used afterwards.
	Close()
}
