package wgpu

import (
	"errors"
	"testing"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal/noop"

	"github.com/ToothlessBrush/maple/render"
)

// newNoopBackend creates a backend over the noop HAL for testing.
func newNoopBackend(t *testing.T, opts render.Options) *Backend {
	t.Helper()
	api := noop.API{}
	instance, err := api.CreateInstance(nil)
	if err != nil {
		t.Fatalf("CreateInstance failed: %v", err)
	}
	adapters := instance.EnumerateAdapters(nil)
	openDev, err := adapters[0].Adapter.Open(0, gputypes.DefaultLimits())
	if err != nil {
		instance.Destroy()
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() {
		openDev.Device.Destroy()
		instance.Destroy()
	})

	b, err := NewWithDevice(openDev.Device, openDev.Queue, opts)
	if err != nil {
		t.Fatalf("NewWithDevice failed: %v", err)
	}
	t.Cleanup(b.Close)
	return b
}

func defaultOpts() render.Options {
	return render.Options{Dimensions: render.Dimensions{Width: 64, Height: 64}}
}

const testShaderWGSL = `
struct VSOut {
    @builtin(position) pos: vec4<f32>,
};

@vertex
fn vs_main(@location(0) position: vec3<f32>,
           @location(1) normal: vec3<f32>,
           @location(2) uv: vec2<f32>) -> VSOut {
    var out: VSOut;
    out.pos = vec4<f32>(position, 1.0);
    return out;
}

@fragment
fn fs_main(in: VSOut) -> @location(0) vec4<f32> {
    return vec4<f32>(1.0, 0.0, 0.0, 1.0);
}
`

func TestBackendBasics(t *testing.T) {
	b := newNoopBackend(t, defaultOpts())

	if b.Name() != "wgpu" {
		t.Errorf("Name = %q, want wgpu", b.Name())
	}
	if b.SurfaceFormat() != gputypes.TextureFormatRGBA8Unorm {
		t.Errorf("SurfaceFormat = %v, want RGBA8Unorm", b.SurfaceFormat())
	}
	if b.Dimensions() != (render.Dimensions{Width: 64, Height: 64}) {
		t.Errorf("Dimensions = %+v", b.Dimensions())
	}
}

func TestCreateBuffers(t *testing.T) {
	b := newNoopBackend(t, defaultOpts())

	vb, err := b.CreateVertexBuffer([]render.Vertex{
		{Position: [3]float32{0, 0, 0}},
		{Position: [3]float32{1, 0, 0}},
		{Position: [3]float32{0, 1, 0}},
	})
	if err != nil {
		t.Fatalf("CreateVertexBuffer: %v", err)
	}
	defer vb.Destroy()
	if vb.Kind() != render.BufferVertex || vb.Count() != 3 {
		t.Errorf("vertex buffer kind=%v count=%d", vb.Kind(), vb.Count())
	}
	if vb.SizeBytes() != 3*render.VertexStride {
		t.Errorf("vertex buffer size = %d, want %d", vb.SizeBytes(), 3*render.VertexStride)
	}

	ib, err := b.CreateIndexBuffer([]uint32{0, 1, 2})
	if err != nil {
		t.Fatalf("CreateIndexBuffer: %v", err)
	}
	defer ib.Destroy()
	if ib.Kind() != render.BufferIndex || ib.Count() != 3 || ib.SizeBytes() != 12 {
		t.Errorf("index buffer kind=%v count=%d size=%d", ib.Kind(), ib.Count(), ib.SizeBytes())
	}

	ub, err := b.CreateUniformBuffer(make([]byte, 16))
	if err != nil {
		t.Fatalf("CreateUniformBuffer: %v", err)
	}
	defer ub.Destroy()
	if ub.Kind() != render.BufferUniform {
		t.Errorf("uniform buffer kind = %v", ub.Kind())
	}

	sb, err := b.CreateStorageBuffer(make([]byte, 256))
	if err != nil {
		t.Fatalf("CreateStorageBuffer: %v", err)
	}
	defer sb.Destroy()
	if sb.Kind() != render.BufferStorage || sb.SizeBytes() != 256 {
		t.Errorf("storage buffer kind=%v size=%d", sb.Kind(), sb.SizeBytes())
	}
}

func TestWriteBufferBounds(t *testing.T) {
	b := newNoopBackend(t, defaultOpts())

	ub, err := b.CreateUniformBuffer(make([]byte, 16))
	if err != nil {
		t.Fatalf("CreateUniformBuffer: %v", err)
	}
	defer ub.Destroy()

	if err := b.WriteBuffer(ub, make([]byte, 16)); err != nil {
		t.Errorf("WriteBuffer full size: %v", err)
	}
	if err := b.WriteBuffer(ub, make([]byte, 32)); err == nil {
		t.Error("WriteBuffer oversized data should fail")
	}
}

func TestCreateTexture(t *testing.T) {
	b := newNoopBackend(t, defaultOpts())

	tex, err := b.CreateTexture(render.TextureCreateInfo{
		Label:      "albedo",
		Dimensions: render.Dimensions{Width: 32, Height: 16},
		Pixels:     make([]byte, 32*16*4),
	})
	if err != nil {
		t.Fatalf("CreateTexture: %v", err)
	}
	defer tex.Destroy()

	if tex.Width() != 32 || tex.Height() != 16 {
		t.Errorf("texture size = %dx%d", tex.Width(), tex.Height())
	}
	if tex.Format() != gputypes.TextureFormatRGBA8Unorm {
		t.Errorf("default format = %v, want RGBA8Unorm", tex.Format())
	}
	if tex.View() == nil {
		t.Error("texture has no view")
	}
}

func TestCreateTextureZeroDims(t *testing.T) {
	b := newNoopBackend(t, defaultOpts())

	if _, err := b.CreateTexture(render.TextureCreateInfo{Label: "empty"}); err == nil {
		t.Error("zero-dimension texture should fail")
	}
}

func TestDescriptorSetRoundTrip(t *testing.T) {
	b := newNoopBackend(t, defaultOpts())

	layout, err := b.CreateDescriptorSetLayout(render.DescriptorSetLayoutDescriptor{
		Label:      "material",
		Visibility: render.StageFragment,
		Layout: []render.BindingType{
			render.BindingUniformBuffer,
			render.BindingTextureView,
			render.BindingSampler,
		},
	})
	if err != nil {
		t.Fatalf("CreateDescriptorSetLayout: %v", err)
	}
	defer layout.Destroy()
	if layout.BindingCount() != 3 {
		t.Errorf("BindingCount = %d, want 3", layout.BindingCount())
	}

	ub, err := b.CreateUniformBuffer(make([]byte, 16))
	if err != nil {
		t.Fatalf("CreateUniformBuffer: %v", err)
	}
	defer ub.Destroy()

	tex, err := b.CreateTexture(render.TextureCreateInfo{
		Label:      "tex",
		Dimensions: render.Dimensions{Width: 4, Height: 4},
	})
	if err != nil {
		t.Fatalf("CreateTexture: %v", err)
	}
	defer tex.Destroy()

	sampler, err := b.CreateSampler(render.SamplerOptions{})
	if err != nil {
		t.Fatalf("CreateSampler: %v", err)
	}
	defer sampler.Destroy()

	set, err := b.BuildDescriptorSet(
		render.NewDescriptorSet(layout).
			Label("material_set").
			Uniform(0, ub).
			TextureView(1, tex.View()).
			Sampler(2, sampler),
	)
	if err != nil {
		t.Fatalf("BuildDescriptorSet: %v", err)
	}
	set.Destroy()
}

func TestBuildDescriptorSetEmptyWrite(t *testing.T) {
	b := newNoopBackend(t, defaultOpts())

	layout, err := b.CreateDescriptorSetLayout(render.DescriptorSetLayoutDescriptor{
		Visibility: render.StageVertex,
		Layout:     []render.BindingType{render.BindingUniformBuffer},
	})
	if err != nil {
		t.Fatalf("CreateDescriptorSetLayout: %v", err)
	}
	defer layout.Destroy()

	builder := render.NewDescriptorSet(layout)
	builder.Uniform(0, nil)
	if _, err := b.BuildDescriptorSet(builder); err == nil {
		t.Error("nil resource write should fail")
	}
}

func TestRenderSurfacePass(t *testing.T) {
	var presented bool
	opts := defaultOpts()
	opts.Present = func(pixels []byte, dims render.Dimensions) {
		presented = true
		if len(pixels) != int(dims.Width*dims.Height)*4 {
			t.Errorf("present got %d bytes for %dx%d", len(pixels), dims.Width, dims.Height)
		}
	}
	b := newNoopBackend(t, opts)

	shader, err := b.CreateShaderPair(render.WGSLPair(testShaderWGSL, testShaderWGSL))
	if err != nil {
		t.Fatalf("CreateShaderPair: %v", err)
	}
	defer shader.Destroy()

	pipeline, err := b.CreatePipeline(render.PipelineCreateInfo{
		Label:  "triangle",
		Shader: shader,
	})
	if err != nil {
		t.Fatalf("CreatePipeline: %v", err)
	}
	defer pipeline.Destroy()

	vb, err := b.CreateVertexBuffer(make([]render.Vertex, 3))
	if err != nil {
		t.Fatalf("CreateVertexBuffer: %v", err)
	}
	defer vb.Destroy()

	err = b.Render(pipeline, render.SurfaceTarget(), func(fb render.FrameBuilder) error {
		fb.BindVertexBuffer(vb).Draw()
		return nil
	})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !presented {
		t.Error("present callback not invoked for surface pass")
	}
}

func TestRenderTextureTarget(t *testing.T) {
	b := newNoopBackend(t, defaultOpts())

	tex, err := b.CreateTexture(render.TextureCreateInfo{
		Label:        "offscreen",
		Dimensions:   render.Dimensions{Width: 16, Height: 16},
		RenderTarget: true,
	})
	if err != nil {
		t.Fatalf("CreateTexture: %v", err)
	}
	defer tex.Destroy()

	shader, err := b.CreateShaderPair(render.WGSLPair(testShaderWGSL, testShaderWGSL))
	if err != nil {
		t.Fatalf("CreateShaderPair: %v", err)
	}
	defer shader.Destroy()

	pipeline, err := b.CreatePipeline(render.PipelineCreateInfo{
		Label:       "offscreen",
		Shader:      shader,
		ColorFormat: tex.Format(),
	})
	if err != nil {
		t.Fatalf("CreatePipeline: %v", err)
	}
	defer pipeline.Destroy()

	vb, err := b.CreateVertexBuffer(make([]render.Vertex, 3))
	if err != nil {
		t.Fatalf("CreateVertexBuffer: %v", err)
	}
	defer vb.Destroy()

	err = b.Render(pipeline, render.TextureTarget(tex), func(fb render.FrameBuilder) error {
		fb.BindVertexBuffer(vb).DebugMarker("offscreen draw").Draw()
		return nil
	})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
}

func TestRenderCallbackErrorAborts(t *testing.T) {
	b := newNoopBackend(t, defaultOpts())

	shader, err := b.CreateShaderPair(render.WGSLPair(testShaderWGSL, testShaderWGSL))
	if err != nil {
		t.Fatalf("CreateShaderPair: %v", err)
	}
	defer shader.Destroy()

	pipeline, err := b.CreatePipeline(render.PipelineCreateInfo{Label: "p", Shader: shader})
	if err != nil {
		t.Fatalf("CreatePipeline: %v", err)
	}
	defer pipeline.Destroy()

	boom := errors.New("missing resource")
	err = b.Render(pipeline, render.SurfaceTarget(), func(fb render.FrameBuilder) error {
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("got %v, want callback error", err)
	}
}

func TestFrameBuilderMisuse(t *testing.T) {
	b := newNoopBackend(t, defaultOpts())

	shader, err := b.CreateShaderPair(render.WGSLPair(testShaderWGSL, testShaderWGSL))
	if err != nil {
		t.Fatalf("CreateShaderPair: %v", err)
	}
	defer shader.Destroy()

	pipeline, err := b.CreatePipeline(render.PipelineCreateInfo{Label: "p", Shader: shader})
	if err != nil {
		t.Fatalf("CreatePipeline: %v", err)
	}
	defer pipeline.Destroy()

	ub, err := b.CreateUniformBuffer(make([]byte, 4))
	if err != nil {
		t.Fatalf("CreateUniformBuffer: %v", err)
	}
	defer ub.Destroy()

	t.Run("draw without vertex buffer", func(t *testing.T) {
		err := b.Render(pipeline, render.SurfaceTarget(), func(fb render.FrameBuilder) error {
			fb.Draw()
			return nil
		})
		if err == nil {
			t.Error("draw without bound vertex buffer should fail")
		}
	})

	t.Run("wrong buffer kind", func(t *testing.T) {
		err := b.Render(pipeline, render.SurfaceTarget(), func(fb render.FrameBuilder) error {
			fb.BindVertexBuffer(ub).Draw()
			return nil
		})
		if err == nil {
			t.Error("binding a uniform buffer as vertex buffer should fail")
		}
	})
}

func TestResizeAndSurfaceOutdated(t *testing.T) {
	b := newNoopBackend(t, defaultOpts())

	if err := b.Resize(render.Dimensions{Width: 128, Height: 128}); err != nil {
		t.Fatalf("Resize: %v", err)
	}
	if b.Dimensions() != (render.Dimensions{Width: 128, Height: 128}) {
		t.Errorf("Dimensions after resize = %+v", b.Dimensions())
	}

	// A zero-sized resize drops the surface; surface passes must report
	// the soft outdated error until a real size arrives.
	if err := b.Resize(render.Dimensions{}); err != nil {
		t.Fatalf("Resize to zero: %v", err)
	}

	shader, err := b.CreateShaderPair(render.WGSLPair(testShaderWGSL, testShaderWGSL))
	if err != nil {
		t.Fatalf("CreateShaderPair: %v", err)
	}
	defer shader.Destroy()

	pipeline, err := b.CreatePipeline(render.PipelineCreateInfo{Label: "p", Shader: shader})
	if err != nil {
		t.Fatalf("CreatePipeline: %v", err)
	}
	defer pipeline.Destroy()

	err = b.Render(pipeline, render.SurfaceTarget(), func(render.FrameBuilder) error { return nil })
	if !errors.Is(err, render.ErrSurfaceOutdated) {
		t.Fatalf("got %v, want ErrSurfaceOutdated", err)
	}
}

func TestCompileWGSL(t *testing.T) {
	words, err := CompileWGSL(testShaderWGSL)
	if err != nil {
		t.Fatalf("CompileWGSL: %v", err)
	}
	// SPIR-V modules start with the magic number 0x07230203.
	if len(words) == 0 || words[0] != 0x07230203 {
		t.Fatalf("unexpected SPIR-V header: %#v", words[:min(4, len(words))])
	}

	// Second compile is served from the cache and must match.
	again, err := CompileWGSL(testShaderWGSL)
	if err != nil {
		t.Fatalf("CompileWGSL cached: %v", err)
	}
	if len(again) != len(words) {
		t.Fatalf("cached compile differs: %d vs %d words", len(again), len(words))
	}
}

func TestCreateShaderPairUsesCompilationCache(t *testing.T) {
	b := newNoopBackend(t, defaultOpts())

	sh, err := b.CreateShaderPair(render.WGSLPair(testShaderWGSL, testShaderWGSL))
	if err != nil {
		t.Fatalf("CreateShaderPair: %v", err)
	}
	defer sh.Destroy()

	if _, ok := spirvCache.Get(testShaderWGSL); !ok {
		t.Fatal("shader pair creation did not populate the compilation cache")
	}

	_, missesBefore := spirvCache.Stats()
	sh2, err := b.CreateShaderPair(render.WGSLPair(testShaderWGSL, testShaderWGSL))
	if err != nil {
		t.Fatalf("CreateShaderPair again: %v", err)
	}
	defer sh2.Destroy()
	if _, misses := spirvCache.Stats(); misses != missesBefore {
		t.Errorf("second creation recompiled: misses %d -> %d", missesBefore, misses)
	}
}

func TestSetVsync(t *testing.T) {
	b := newNoopBackend(t, defaultOpts())

	if err := b.SetVsync(render.VsyncOn); err != nil {
		t.Fatalf("SetVsync: %v", err)
	}
	if b.Vsync() != render.VsyncOn {
		t.Errorf("Vsync = %v, want on", b.Vsync())
	}
}
