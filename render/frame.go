package render

// FrameBuilder records the draw calls of one pass. Implementations wrap
// a live render pass encoder; the builder is only valid inside the
// function passed to [Context.Render].
//
// Calls chain:
//
//	fb.BindVertexBuffer(vb).
//	    BindDescriptorSet(0, set).
//	    Draw()
type FrameBuilder interface {
	// BindVertexBuffer binds the vertex buffer for the next Draw. The
	// buffer's element count becomes the draw's vertex count.
	BindVertexBuffer(buf Buffer) FrameBuilder

	// BindIndexBuffer binds the index buffer for the next DrawIndexed.
	BindIndexBuffer(buf Buffer) FrameBuilder

	// BindDescriptorSet binds set at the given set index. The index must
	// match the pipeline layout the pass was created with.
	BindDescriptorSet(set uint32, ds DescriptorSet) FrameBuilder

	// DebugMarker inserts a labeled marker into the pass for capture
	// tools. A no-op on backends without marker support.
	DebugMarker(label string) FrameBuilder

	// Draw draws the last bound vertex buffer.
	Draw() FrameBuilder

	// DrawIndexed draws the last bound index buffer.
	DrawIndexed() FrameBuilder
}
