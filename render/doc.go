// Package render defines the GPU resource model shared by render passes
// and backends.
//
// The package is split along one seam: the [Backend] interface is what a
// concrete GPU implementation (backend/wgpu) or the headless stand-in
// provides, and [Context] is the narrow facade handed to render nodes
// during setup and draw. Nodes never talk to a Backend directly; they
// receive a *Context and opaque resource handles ([Buffer], [Texture],
// [DescriptorSet], ...) whose concrete types belong to the active backend.
//
// All resource handles are created through the Context and remain valid
// until destroyed or until the backend is closed. Handles from one backend
// must not be passed to another.
package render
