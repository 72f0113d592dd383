package rendergraph

import (
	"errors"
	"fmt"
	"sort"

	"github.com/ToothlessBrush/maple/render"
)

// edge is a directed ordering constraint: producer must draw before
// consumer.
type edge struct {
	producer string
	consumer string
}

// nodeEntry pairs a registered node with its resolved pipeline state.
type nodeEntry struct {
	node RenderNode
	ctx  *NodeContext
}

// RenderGraph owns the node registry, the edge set and the shared
// resource context, and drives per-frame draw and resize across all
// passes.
//
// Node and edge registration happens once during application setup; the
// execution order is derived from the declared edges, never from
// insertion order. The graph is not safe for concurrent use.
type RenderGraph struct {
	nodes map[string]*nodeEntry
	edges []edge
	ctx   *Context

	// order caches the last computed topological order. Cleared whenever
	// the node or edge set changes.
	order []string
}

// New returns an empty graph with a fresh shared-resource context.
func New() *RenderGraph {
	return &RenderGraph{
		nodes: make(map[string]*nodeEntry),
		ctx:   NewContext(),
	}
}

// Context returns the graph's shared-resource store.
func (g *RenderGraph) Context() *Context { return g.ctx }

// Len returns the number of registered nodes.
func (g *RenderGraph) Len() int { return len(g.nodes) }

// AddNode installs a node and its resolved state under name, replacing
// any previous registration. Edges referencing the name are not
// validated here; validation happens at ordering time.
func (g *RenderGraph) AddNode(name string, node RenderNode, nc *NodeContext) {
	g.nodes[name] = &nodeEntry{node: node, ctx: nc}
	g.order = nil
}

// AddEdge declares that producer's draw must complete before consumer's
// draw starts. Neither endpoint needs to be registered yet.
func (g *RenderGraph) AddEdge(producer, consumer string) {
	g.edges = append(g.edges, edge{producer: producer, consumer: consumer})
	g.order = nil
}

// OrderNodes returns a draw order consistent with every declared edge,
// using Kahn's algorithm over the current node/edge snapshot.
//
// Every edge endpoint must name a registered node ([UnknownNodeError]
// otherwise), and the edge set must be acyclic ([ErrCycleDetected]).
// When several nodes are ready at once they drain FIFO, seeded in
// lexicographic name order, so the order is stable run to run; only the
// partial order implied by the edges is contractual.
//
// The returned slice is the caller's to keep; mutating it does not
// affect the graph.
func (g *RenderGraph) OrderNodes() ([]string, error) {
	order, err := g.orderNodes()
	if err != nil {
		return nil, err
	}
	return append([]string(nil), order...), nil
}

// orderNodes computes and caches the topological order.
func (g *RenderGraph) orderNodes() ([]string, error) {
	if g.order != nil {
		return g.order, nil
	}

	indegree := make(map[string]int, len(g.nodes))
	for name := range g.nodes {
		indegree[name] = 0
	}

	successors := make(map[string][]string, len(g.nodes))
	for _, e := range g.edges {
		if _, ok := g.nodes[e.producer]; !ok {
			return nil, &UnknownNodeError{Name: e.producer}
		}
		if _, ok := g.nodes[e.consumer]; !ok {
			return nil, &UnknownNodeError{Name: e.consumer}
		}
		successors[e.producer] = append(successors[e.producer], e.consumer)
		indegree[e.consumer]++
	}

	queue := make([]string, 0, len(g.nodes))
	for name, deg := range indegree {
		if deg == 0 {
			queue = append(queue, name)
		}
	}
	sort.Strings(queue)

	order := make([]string, 0, len(g.nodes))
	for len(queue) > 0 {
		name := queue[0]
		queue = queue[1:]
		order = append(order, name)

		for _, succ := range successors[name] {
			indegree[succ]--
			if indegree[succ] == 0 {
				queue = append(queue, succ)
			}
		}
	}

	if len(order) != len(g.nodes) {
		return nil, ErrCycleDetected
	}

	g.order = order
	return order, nil
}

// Render draws one frame: it derives the execution order and invokes
// each node's Draw exactly once, in that order. The first draw error
// aborts the frame and is returned wrapped with the failing pass name;
// ordering failures are returned as-is.
func (g *RenderGraph) Render(rc *render.Context, world *render.World) error {
	order, err := g.orderNodes()
	if err != nil {
		return err
	}

	for _, name := range order {
		entry := g.nodes[name]
		if err := entry.node.Draw(rc, entry.ctx, g.ctx, world); err != nil {
			return fmt.Errorf("render node %q: %w", name, err)
		}
	}
	return nil
}

// Close destroys the pipeline of every registered node and clears the
// registry. The shared-resource store is cleared too; stored handles
// are owned by the nodes that created them.
func (g *RenderGraph) Close() {
	for _, entry := range g.nodes {
		if p := entry.ctx.Pipeline(); p != nil {
			p.Destroy()
		}
	}
	g.nodes = make(map[string]*nodeEntry)
	g.edges = nil
	g.order = nil
	g.ctx = NewContext()
}

// Resize notifies every registered node of the new surface dimensions.
// Resize has no dependency semantics: nodes are visited in arbitrary
// order and every node is visited even when an earlier one fails. The
// collected failures are returned joined.
func (g *RenderGraph) Resize(dims render.Dimensions) error {
	var errs []error
	for name, entry := range g.nodes {
		if err := entry.node.Resize(dims); err != nil {
			errs = append(errs, fmt.Errorf("resize node %q: %w", name, err))
		}
	}
	return errors.Join(errs...)
}
