package backend

import (
	"github.com/gogpu/gputypes"

	"github.com/ToothlessBrush/maple/render"
)

func init() {
	Register(BackendHeadless, func(opts render.Options) (render.Backend, error) {
		return &headlessBackend{dims: opts.Dimensions, vsync: opts.Vsync}, nil
	})
}

// headlessBackend runs without a GPU device. It exists so the render
// core can be constructed and its graph wiring exercised on machines
// with no usable adapter; every resource or draw operation is a fatal
// error carrying [render.ErrHeadless].
type headlessBackend struct {
	dims  render.Dimensions
	vsync render.VsyncMode
}

func (h *headlessBackend) Name() string { return BackendHeadless }

func (h *headlessBackend) SurfaceFormat() gputypes.TextureFormat {
	return gputypes.TextureFormatUndefined
}

func (h *headlessBackend) Dimensions() render.Dimensions { return h.dims }

func (h *headlessBackend) CreateVertexBuffer([]render.Vertex) (render.Buffer, error) {
	return nil, render.Fatal("create vertex buffer", render.ErrHeadless)
}

func (h *headlessBackend) CreateIndexBuffer([]uint32) (render.Buffer, error) {
	return nil, render.Fatal("create index buffer", render.ErrHeadless)
}

func (h *headlessBackend) CreateUniformBuffer([]byte) (render.Buffer, error) {
	return nil, render.Fatal("create uniform buffer", render.ErrHeadless)
}

func (h *headlessBackend) CreateStorageBuffer([]byte) (render.Buffer, error) {
	return nil, render.Fatal("create storage buffer", render.ErrHeadless)
}

func (h *headlessBackend) WriteBuffer(render.Buffer, []byte) error {
	return render.Fatal("write buffer", render.ErrHeadless)
}

func (h *headlessBackend) CreateTexture(render.TextureCreateInfo) (render.Texture, error) {
	return nil, render.Fatal("create texture", render.ErrHeadless)
}

func (h *headlessBackend) CreateSampler(render.SamplerOptions) (render.Sampler, error) {
	return nil, render.Fatal("create sampler", render.ErrHeadless)
}

func (h *headlessBackend) CreateDescriptorSetLayout(render.DescriptorSetLayoutDescriptor) (render.DescriptorSetLayout, error) {
	return nil, render.Fatal("create descriptor set layout", render.ErrHeadless)
}

func (h *headlessBackend) BuildDescriptorSet(*render.DescriptorSetBuilder) (render.DescriptorSet, error) {
	return nil, render.Fatal("build descriptor set", render.ErrHeadless)
}

func (h *headlessBackend) CreateShaderPair(render.ShaderPair) (render.GraphicsShader, error) {
	return nil, render.Fatal("create shader pair", render.ErrHeadless)
}

func (h *headlessBackend) CreatePipeline(render.PipelineCreateInfo) (render.Pipeline, error) {
	return nil, render.Fatal("create pipeline", render.ErrHeadless)
}

func (h *headlessBackend) Render(render.Pipeline, render.Target, func(render.FrameBuilder) error) error {
	return render.Fatal("render", render.ErrHeadless)
}

func (h *headlessBackend) Resize(dims render.Dimensions) error {
	h.dims = dims
	return nil
}

func (h *headlessBackend) SetVsync(mode render.VsyncMode) error {
	h.vsync = mode
	return nil
}

func (h *headlessBackend) Close() {}
