// Command mapledemo renders a two-pass graph and saves the final frame.
//
// The "main pass" draws a triangle into an offscreen texture and
// publishes it as a shared resource; the "composite" pass samples that
// texture onto the surface. The edge between them is what makes the
// composite see the current frame's output.
package main

import (
	"flag"
	"image"
	"image/png"
	"log"
	"log/slog"
	"os"

	"github.com/ToothlessBrush/maple"
	"github.com/ToothlessBrush/maple/render"
	"github.com/ToothlessBrush/maple/rendergraph"

	_ "github.com/ToothlessBrush/maple/backend/wgpu"
)

const mainShaderWGSL = `
struct VSOut {
    @builtin(position) pos: vec4<f32>,
    @location(0) color: vec3<f32>,
};

@vertex
fn vs_main(@location(0) position: vec3<f32>,
           @location(1) normal: vec3<f32>,
           @location(2) uv: vec2<f32>) -> VSOut {
    var out: VSOut;
    out.pos = vec4<f32>(position, 1.0);
    out.color = normal * 0.5 + vec3<f32>(0.5);
    return out;
}

@fragment
fn fs_main(in: VSOut) -> @location(0) vec4<f32> {
    return vec4<f32>(in.color, 1.0);
}
`

const compositeShaderWGSL = `
@group(0) @binding(0) var src_sampler: sampler;
@group(0) @binding(1) var src_texture: texture_2d<f32>;

struct VSOut {
    @builtin(position) pos: vec4<f32>,
    @location(0) uv: vec2<f32>,
};

@vertex
fn vs_main(@location(0) position: vec3<f32>,
           @location(1) normal: vec3<f32>,
           @location(2) uv: vec2<f32>) -> VSOut {
    var out: VSOut;
    out.pos = vec4<f32>(position, 1.0);
    out.uv = uv;
    return out;
}

@fragment
fn fs_main(in: VSOut) -> @location(0) vec4<f32> {
    return textureSample(src_texture, src_sampler, in.uv);
}
`

func main() {
	var (
		width   = flag.Uint("width", 800, "surface width")
		height  = flag.Uint("height", 600, "surface height")
		frames  = flag.Int("frames", 1, "frames to render")
		output  = flag.String("output", "demo.png", "output file")
		backend = flag.String("backend", "", "backend name (default: auto)")
		verbose = flag.Bool("v", false, "enable debug logging")
	)
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	maple.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	var lastFrame *image.RGBA
	cfg := maple.Config{
		Width:   uint32(*width),
		Height:  uint32(*height),
		Vsync:   render.VsyncOff,
		Backend: *backend,
		Present: func(pixels []byte, dims render.Dimensions) {
			img := image.NewRGBA(image.Rect(0, 0, int(dims.Width), int(dims.Height)))
			copy(img.Pix, pixels)
			lastFrame = img
		},
	}

	r, err := maple.New(cfg)
	if err != nil {
		log.Fatalf("Failed to open renderer: %v", err)
	}
	defer r.Close()

	err = r.Graph().
		AddNode("main pass", &mainPass{}).
		AddNode("composite", &compositePass{}).
		AddEdge("main pass", "composite").
		Err()
	if err != nil {
		log.Fatalf("Failed to build graph: %v", err)
	}

	world := &render.World{}
	for i := 0; i < *frames; i++ {
		if err := r.BeginDraw(world); err != nil {
			log.Fatalf("Frame %d failed: %v", i, err)
		}
	}

	if lastFrame == nil {
		log.Printf("No frame presented (backend %q has no readback)", r.Backend())
		return
	}
	f, err := os.Create(*output)
	if err != nil {
		log.Fatalf("Failed to create %s: %v", *output, err)
	}
	defer f.Close()
	if err := png.Encode(f, lastFrame); err != nil {
		log.Fatalf("Failed to save: %v", err)
	}
	log.Printf("Demo saved to %s (%dx%d, backend %s)\n", *output, *width, *height, r.Backend())
}

// mainPass draws a triangle into an offscreen texture and publishes the
// sampled view as "main/output".
type mainPass struct {
	target  render.Texture
	sampler render.Sampler
	verts   render.Buffer
}

func (p *mainPass) Setup(rc *render.Context, gc *rendergraph.Context) (rendergraph.Descriptor, error) {
	dims := rc.Dimensions()

	target, err := rc.CreateTexture(render.TextureCreateInfo{
		Label:        "main_output",
		Dimensions:   dims,
		RenderTarget: true,
	})
	if err != nil {
		return rendergraph.Descriptor{}, err
	}
	p.target = target

	sampler, err := rc.CreateSampler(render.SamplerOptions{})
	if err != nil {
		return rendergraph.Descriptor{}, err
	}
	p.sampler = sampler

	verts, err := rc.CreateVertexBuffer([]render.Vertex{
		{Position: [3]float32{0, 0.6, 0}, Normal: [3]float32{1, 0, 0}},
		{Position: [3]float32{-0.6, -0.6, 0}, Normal: [3]float32{0, 1, 0}},
		{Position: [3]float32{0.6, -0.6, 0}, Normal: [3]float32{0, 0, 1}},
	})
	if err != nil {
		return rendergraph.Descriptor{}, err
	}
	p.verts = verts

	shader, err := rc.CreateShaderPair(render.WGSLPair(mainShaderWGSL, mainShaderWGSL))
	if err != nil {
		return rendergraph.Descriptor{}, err
	}

	return rendergraph.Descriptor{
		Shader: shader,
		Target: render.TextureTarget(target),
	}, nil
}

func (p *mainPass) Draw(rc *render.Context, nc *rendergraph.NodeContext, gc *rendergraph.Context, world *render.World) error {
	err := rc.Render(nc.Pipeline(), nc.Target(), func(fb render.FrameBuilder) error {
		fb.BindVertexBuffer(p.verts).Draw()
		return nil
	})
	if err != nil {
		return err
	}

	// Republish each frame; insert-or-replace keeps consumers current.
	gc.AddSharedResource("main/output", p.target.View())
	gc.AddSharedResource("main/sampler", p.sampler)
	return nil
}

func (p *mainPass) Resize(dims render.Dimensions) error {
	// The offscreen target keeps its setup size; the composite pass
	// stretches it over the new surface.
	return nil
}

// compositePass samples the main pass's output onto the surface.
type compositePass struct {
	layout render.DescriptorSetLayout
	quad   render.Buffer
	idx    render.Buffer
}

func (p *compositePass) Setup(rc *render.Context, gc *rendergraph.Context) (rendergraph.Descriptor, error) {
	layout, err := rc.CreateDescriptorSetLayout(render.DescriptorSetLayoutDescriptor{
		Label:      "composite_input",
		Visibility: render.StageFragment,
		Layout: []render.BindingType{
			render.BindingSampler,
			render.BindingTextureView,
		},
	})
	if err != nil {
		return rendergraph.Descriptor{}, err
	}
	p.layout = layout

	quad, err := rc.CreateVertexBuffer([]render.Vertex{
		{Position: [3]float32{-1, -1, 0}, TexUV: [2]float32{0, 1}},
		{Position: [3]float32{1, -1, 0}, TexUV: [2]float32{1, 1}},
		{Position: [3]float32{1, 1, 0}, TexUV: [2]float32{1, 0}},
		{Position: [3]float32{-1, 1, 0}, TexUV: [2]float32{0, 0}},
	})
	if err != nil {
		return rendergraph.Descriptor{}, err
	}
	p.quad = quad

	idx, err := rc.CreateIndexBuffer([]uint32{0, 1, 2, 0, 2, 3})
	if err != nil {
		return rendergraph.Descriptor{}, err
	}
	p.idx = idx

	shader, err := rc.CreateShaderPair(render.WGSLPair(compositeShaderWGSL, compositeShaderWGSL))
	if err != nil {
		return rendergraph.Descriptor{}, err
	}

	return rendergraph.Descriptor{
		Shader:  shader,
		Layouts: []render.DescriptorSetLayout{layout},
		Target:  render.SurfaceTarget(),
	}, nil
}

func (p *compositePass) Draw(rc *render.Context, nc *rendergraph.NodeContext, gc *rendergraph.Context, world *render.World) error {
	viewAny, ok := gc.GetSharedResource("main/output")
	if !ok {
		return errNoInput("main/output")
	}
	samplerAny, ok := gc.GetSharedResource("main/sampler")
	if !ok {
		return errNoInput("main/sampler")
	}

	set, err := rc.BuildDescriptorSet(
		render.NewDescriptorSet(p.layout).
			Label("composite_set").
			Sampler(0, samplerAny.(render.Sampler)).
			TextureView(1, viewAny.(render.TextureView)),
	)
	if err != nil {
		return err
	}
	defer set.Destroy()

	return rc.Render(nc.Pipeline(), nc.Target(), func(fb render.FrameBuilder) error {
		fb.BindVertexBuffer(p.quad).
			BindIndexBuffer(p.idx).
			BindDescriptorSet(0, set).
			DrawIndexed()
		return nil
	})
}

func (p *compositePass) Resize(dims render.Dimensions) error { return nil }

type errNoInput string

func (e errNoInput) Error() string { return "composite: missing shared resource " + string(e) }
