// Package backend provides the GPU backend registry.
//
// Backend implementations register themselves from init() functions in
// their own packages, so applications choose which backends to compile
// in via blank imports:
//
//	import _ "github.com/ToothlessBrush/maple/backend/wgpu"
//
// The headless backend is always registered and serves as the final
// fallback when no GPU backend can open a device.
package backend
