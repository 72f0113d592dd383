package rendergraph

import (
	"github.com/ToothlessBrush/maple/render"
)

// RenderNode is one render pass. Implementations own their GPU handles
// once initialized and move through a fixed lifecycle:
//
//	Setup (once, at registration) → Draw (once per frame) ⇄ Resize
//
// Setup runs eagerly at registration time, in registration order; the
// topological order does not exist yet. Draw runs in topological order;
// Resize carries no ordering guarantee at all.
type RenderNode interface {
	// Setup compiles shaders, allocates buffers and textures, and may
	// publish shared resources the node is a long-lived producer of.
	// The returned descriptor is resolved into pipeline state once and
	// is immutable afterwards except through Resize.
	Setup(rc *render.Context, gc *Context) (Descriptor, error)

	// Draw records the pass's work for the current frame. Shared
	// resources published by nodes ordered earlier by an edge are
	// available through gc.
	Draw(rc *render.Context, nc *NodeContext, gc *Context, world *render.World) error

	// Resize updates size-dependent state (projection parameters,
	// size-matched textures) after the surface changed dimensions.
	Resize(dims render.Dimensions) error
}

// Descriptor is what a node's Setup returns: the shader pair, the
// descriptor set layouts the pass binds, and where its output goes.
type Descriptor struct {
	Shader  render.GraphicsShader
	Layouts []render.DescriptorSetLayout
	Target  render.Target
}

// NodeContext is a registered node's resolved pipeline state, created by
// the renderer when the node is installed and handed back to the node on
// every Draw.
type NodeContext struct {
	name     string
	shader   render.GraphicsShader
	layouts  []render.DescriptorSetLayout
	pipeline render.Pipeline
	target   render.Target
}

// NewNodeContext bundles the resolved state for a pass. The renderer
// calls this after Setup; tests construct it directly with nil GPU
// handles.
func NewNodeContext(name string, desc Descriptor, pipeline render.Pipeline) *NodeContext {
	return &NodeContext{
		name:     name,
		shader:   desc.Shader,
		layouts:  desc.Layouts,
		pipeline: pipeline,
		target:   desc.Target,
	}
}

// Name returns the pass name the node was registered under.
func (nc *NodeContext) Name() string { return nc.name }

// Shader returns the pass's compiled shader pair.
func (nc *NodeContext) Shader() render.GraphicsShader { return nc.shader }

// Layouts returns the descriptor set layouts declared at setup.
func (nc *NodeContext) Layouts() []render.DescriptorSetLayout { return nc.layouts }

// Pipeline returns the pass's resolved render pipeline.
func (nc *NodeContext) Pipeline() render.Pipeline { return nc.pipeline }

// Target returns where the pass draws.
func (nc *NodeContext) Target() render.Target { return nc.target }
