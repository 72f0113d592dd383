package rendergraph

// Context is the shared-resource broker for one graph. Producer nodes
// publish GPU-bindable resources by name (typically a descriptor set
// exposing a texture+sampler pair); consumer nodes look them up during
// draw.
//
// Entries persist for the life of the graph unless overwritten; there
// is no frame scoping or automatic expiry. Freshness is only guaranteed
// when an edge orders the producer before the consumer; the context
// itself performs no dependency validation.
//
// Context is not safe for concurrent use; the graph visits one node at
// a time during a frame.
type Context struct {
	resources map[string]any
}

// NewContext returns an empty shared-resource store.
func NewContext() *Context {
	return &Context{resources: make(map[string]any)}
}

// AddSharedResource publishes a resource under name, replacing any
// previous entry. Called from a producer's Setup for long-lived
// resources, or from Draw for per-frame ones.
func (c *Context) AddSharedResource(name string, resource any) {
	c.resources[name] = resource
}

// GetSharedResource returns the resource published under name. ok is
// false when nothing was published, including when the producer simply
// has not run yet this frame because no edge orders it first.
func (c *Context) GetSharedResource(name string) (resource any, ok bool) {
	resource, ok = c.resources[name]
	return resource, ok
}

// RemoveSharedResource deletes the entry for name, if any.
func (c *Context) RemoveSharedResource(name string) {
	delete(c.resources, name)
}

// Len returns the number of published resources.
func (c *Context) Len() int { return len(c.resources) }
