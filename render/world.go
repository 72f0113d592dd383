package render

// Drawable is one renderable item produced by the scene layer. The
// render core never interprets drawables; passes pull buffers and
// per-item resources out of them during draw.
type Drawable interface {
	// VertexBuffer returns the item's vertex buffer.
	VertexBuffer() Buffer

	// IndexBuffer returns the item's index buffer, or nil for non-indexed
	// geometry.
	IndexBuffer() Buffer

	// Resource returns a per-item bindable resource by key (e.g. a
	// material's descriptor set). ok is false when the item has none.
	Resource(key string) (ds DescriptorSet, ok bool)
}

// Global is a frame-wide resource provider (camera, lights), looked up
// by key the same way as Drawable resources.
type Global interface {
	// Resource returns the global's descriptor set for key.
	Resource(key string) (ds DescriptorSet, ok bool)
}

// World is the per-frame, read-only scene snapshot handed to every
// pass's draw. The render core only passes it through.
type World struct {
	Drawables []Drawable
	Globals   []Global
}
