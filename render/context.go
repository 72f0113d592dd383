package render

import (
	"fmt"

	"github.com/gogpu/gputypes"
)

// Context is the resource-creation facade handed to render nodes during
// setup and draw. It delegates to the active backend and annotates
// failures with the operation that produced them.
//
// A Context is bound to one backend for its lifetime and is driven from
// a single goroutine.
type Context struct {
	backend Backend
}

// NewContext wraps a backend.
func NewContext(b Backend) *Context {
	return &Context{backend: b}
}

// Backend exposes the underlying backend. Most callers should stay on
// the Context surface; this exists for host integration.
func (c *Context) Backend() Backend { return c.backend }

// SurfaceFormat returns the presentation surface's pixel format.
func (c *Context) SurfaceFormat() gputypes.TextureFormat {
	return c.backend.SurfaceFormat()
}

// Dimensions returns the current surface size.
func (c *Context) Dimensions() Dimensions {
	return c.backend.Dimensions()
}

// CreateVertexBuffer uploads vertices into a new vertex buffer.
func (c *Context) CreateVertexBuffer(vertices []Vertex) (Buffer, error) {
	buf, err := c.backend.CreateVertexBuffer(vertices)
	if err != nil {
		return nil, fmt.Errorf("create vertex buffer: %w", err)
	}
	return buf, nil
}

// CreateIndexBuffer uploads indices into a new index buffer.
func (c *Context) CreateIndexBuffer(indices []uint32) (Buffer, error) {
	buf, err := c.backend.CreateIndexBuffer(indices)
	if err != nil {
		return nil, fmt.Errorf("create index buffer: %w", err)
	}
	return buf, nil
}

// CreateUniformBuffer creates a uniform buffer holding data.
func (c *Context) CreateUniformBuffer(data []byte) (Buffer, error) {
	buf, err := c.backend.CreateUniformBuffer(data)
	if err != nil {
		return nil, fmt.Errorf("create uniform buffer: %w", err)
	}
	return buf, nil
}

// CreateStorageBuffer creates a storage buffer holding data.
func (c *Context) CreateStorageBuffer(data []byte) (Buffer, error) {
	buf, err := c.backend.CreateStorageBuffer(data)
	if err != nil {
		return nil, fmt.Errorf("create storage buffer: %w", err)
	}
	return buf, nil
}

// WriteBuffer replaces the contents of a previously created buffer.
func (c *Context) WriteBuffer(buf Buffer, data []byte) error {
	if err := c.backend.WriteBuffer(buf, data); err != nil {
		return fmt.Errorf("write buffer: %w", err)
	}
	return nil
}

// CreateTexture creates a texture per info.
func (c *Context) CreateTexture(info TextureCreateInfo) (Texture, error) {
	tex, err := c.backend.CreateTexture(info)
	if err != nil {
		return nil, fmt.Errorf("create texture %q: %w", info.Label, err)
	}
	return tex, nil
}

// CreateSampler creates a sampler.
func (c *Context) CreateSampler(opts SamplerOptions) (Sampler, error) {
	s, err := c.backend.CreateSampler(opts)
	if err != nil {
		return nil, fmt.Errorf("create sampler: %w", err)
	}
	return s, nil
}

// CreateDescriptorSetLayout creates a descriptor set layout.
func (c *Context) CreateDescriptorSetLayout(desc DescriptorSetLayoutDescriptor) (DescriptorSetLayout, error) {
	layout, err := c.backend.CreateDescriptorSetLayout(desc)
	if err != nil {
		return nil, fmt.Errorf("create descriptor set layout %q: %w", desc.Label, err)
	}
	return layout, nil
}

// BuildDescriptorSet resolves a builder into a bindable set.
func (c *Context) BuildDescriptorSet(b *DescriptorSetBuilder) (DescriptorSet, error) {
	ds, err := c.backend.BuildDescriptorSet(b)
	if err != nil {
		return nil, fmt.Errorf("build descriptor set %q: %w", b.BuildLabel(), err)
	}
	return ds, nil
}

// CreateShaderPair compiles a vertex/fragment source pair.
func (c *Context) CreateShaderPair(pair ShaderPair) (GraphicsShader, error) {
	sh, err := c.backend.CreateShaderPair(pair)
	if err != nil {
		return nil, fmt.Errorf("create shader pair: %w", err)
	}
	return sh, nil
}

// CreatePipeline creates a render pipeline for a pass.
func (c *Context) CreatePipeline(info PipelineCreateInfo) (Pipeline, error) {
	p, err := c.backend.CreatePipeline(info)
	if err != nil {
		return nil, fmt.Errorf("create pipeline %q: %w", info.Label, err)
	}
	return p, nil
}

// Render executes one pass against the given pipeline and target,
// handing a FrameBuilder to fn for draw recording.
func (c *Context) Render(pipeline Pipeline, target Target, fn func(FrameBuilder) error) error {
	if err := c.backend.Render(pipeline, target, fn); err != nil {
		return fmt.Errorf("render pass %q: %w", pipeline.Label(), err)
	}
	return nil
}
