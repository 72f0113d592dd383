package maple

import (
	"errors"
	"fmt"

	"github.com/ToothlessBrush/maple/backend"
	"github.com/ToothlessBrush/maple/render"
	"github.com/ToothlessBrush/maple/rendergraph"
)

// Renderer owns the GPU backend and the render graph, and drives one
// graph execution per application frame.
//
// A Renderer is not safe for concurrent use; drive it from a single
// goroutine.
type Renderer struct {
	backend render.Backend
	rc      *render.Context
	graph   *rendergraph.RenderGraph
	dims    render.Dimensions
}

// New opens a backend per cfg and wraps it in a renderer with an empty
// graph. When cfg.Backend is empty the best available backend is
// selected, falling through to headless when no GPU device opens; a
// named backend that fails to open is an error with no fallback.
func New(cfg Config) (*Renderer, error) {
	opts := cfg.options()

	var (
		b   render.Backend
		err error
	)
	if cfg.Backend != "" {
		b, err = backend.Open(cfg.Backend, opts)
	} else {
		b, err = backend.OpenDefault(opts)
	}
	if err != nil {
		return nil, fmt.Errorf("open backend: %w", err)
	}
	Logger().Info("renderer: backend selected", "backend", b.Name(),
		"width", cfg.Width, "height", cfg.Height, "vsync", cfg.Vsync)

	return &Renderer{
		backend: b,
		rc:      render.NewContext(b),
		graph:   rendergraph.New(),
		dims:    opts.Dimensions,
	}, nil
}

// Backend returns the active backend's name.
func (r *Renderer) Backend() string { return r.backend.Name() }

// Context returns the resource-creation facade nodes receive in Setup
// and Draw.
func (r *Renderer) Context() *render.Context { return r.rc }

// Graph returns the builder for registering nodes and edges.
func (r *Renderer) Graph() *GraphBuilder { return &GraphBuilder{r: r} }

// SetupRenderNode runs the node's Setup phase eagerly, resolves its
// pipeline, and installs it in the graph under name. Registering a name
// twice replaces the earlier node; Setup failures leave the graph
// unchanged.
func (r *Renderer) SetupRenderNode(name string, node rendergraph.RenderNode) error {
	desc, err := node.Setup(r.rc, r.graph.Context())
	if err != nil {
		return fmt.Errorf("setup node %q: %w", name, err)
	}

	format := r.backend.SurfaceFormat()
	if !desc.Target.IsSurface() {
		format = desc.Target.Texture().Format()
	}

	pipeline, err := r.rc.CreatePipeline(render.PipelineCreateInfo{
		Label:       name,
		Shader:      desc.Shader,
		Layouts:     desc.Layouts,
		ColorFormat: format,
	})
	if err != nil {
		return fmt.Errorf("setup node %q: %w", name, err)
	}

	r.graph.AddNode(name, node, rendergraph.NewNodeContext(name, desc, pipeline))
	Logger().Debug("renderer: node registered", "node", name, "surface", desc.Target.IsSurface())
	return nil
}

// BeginDraw executes one frame of the graph.
//
// An outdated surface is a soft failure: the frame is dropped, the
// backend is reconfigured to the current dimensions, and nil is
// returned so the caller simply draws again next frame. Every other
// draw failure drops the frame and is returned wrapped with the failing
// pass name; fatal backend errors satisfy render.IsFatal.
func (r *Renderer) BeginDraw(world *render.World) error {
	err := r.graph.Render(r.rc, world)
	if err == nil {
		return nil
	}
	if errors.Is(err, render.ErrSurfaceOutdated) {
		Logger().Warn("renderer: surface outdated, frame dropped",
			"width", r.dims.Width, "height", r.dims.Height)
		if rerr := r.backend.Resize(r.dims); rerr != nil {
			return fmt.Errorf("reconfigure surface: %w", rerr)
		}
		return nil
	}
	return err
}

// Resize reconfigures the backend surface and forwards the new
// dimensions to every node in the graph.
func (r *Renderer) Resize(dims render.Dimensions) error {
	r.dims = dims
	if err := r.backend.Resize(dims); err != nil {
		return fmt.Errorf("resize backend: %w", err)
	}
	return r.graph.Resize(dims)
}

// Dimensions returns the current surface size.
func (r *Renderer) Dimensions() render.Dimensions { return r.dims }

// SetVsync switches presentation pacing at runtime.
func (r *Renderer) SetVsync(mode render.VsyncMode) error {
	return r.backend.SetVsync(mode)
}

// Close tears down the graph's pipelines and the backend. The renderer
// must not be used afterwards.
func (r *Renderer) Close() {
	r.graph.Close()
	r.backend.Close()
}

// GraphBuilder is the registration facade over the renderer's graph.
// Calls chain:
//
//	r.Graph().
//	    AddEdge("shadow", "main pass").
//	    AddEdge("main pass", "composite")
type GraphBuilder struct {
	r   *Renderer
	err error
}

// AddNode registers a render node under name, running its Setup phase
// immediately. The first setup failure latches and is returned by Err;
// later calls on the builder become no-ops.
func (b *GraphBuilder) AddNode(name string, node rendergraph.RenderNode) *GraphBuilder {
	if b.err != nil {
		return b
	}
	b.err = b.r.SetupRenderNode(name, node)
	return b
}

// AddEdge declares that producer draws before consumer. Endpoints are
// validated when the draw order is derived, not here.
func (b *GraphBuilder) AddEdge(producer, consumer string) *GraphBuilder {
	if b.err != nil {
		return b
	}
	b.r.graph.AddEdge(producer, consumer)
	return b
}

// AddSharedResource publishes a resource in the graph's shared store.
func (b *GraphBuilder) AddSharedResource(name string, resource any) *GraphBuilder {
	if b.err != nil {
		return b
	}
	b.r.graph.Context().AddSharedResource(name, resource)
	return b
}

// SharedResources returns the graph's shared-resource store.
func (b *GraphBuilder) SharedResources() *rendergraph.Context {
	return b.r.graph.Context()
}

// Err returns the first error any builder call produced.
func (b *GraphBuilder) Err() error { return b.err }
