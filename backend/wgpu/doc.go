// Package wgpu implements the GPU backend on top of gogpu/wgpu's HAL.
//
// The backend renders to an offscreen surface texture; window
// presentation is the host application's job, wired through
// render.Options.Present for pixel readback. Importing the package
// registers it in the backend registry:
//
//	import _ "github.com/ToothlessBrush/maple/backend/wgpu"
package wgpu
