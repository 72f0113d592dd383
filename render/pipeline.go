package render

import "github.com/gogpu/gputypes"

// PipelineCreateInfo describes a render pipeline to create for a pass.
type PipelineCreateInfo struct {
	// Label is an optional debug label, typically the pass name.
	Label string

	// Shader is the compiled vertex+fragment pair.
	Shader GraphicsShader

	// Layouts lists the descriptor set layouts bound at set 0..n-1.
	Layouts []DescriptorSetLayout

	// ColorFormat is the format of the pass's color target: the surface
	// format for surface passes, the texture's format otherwise.
	ColorFormat gputypes.TextureFormat
}

// Pipeline is an opaque render pipeline handle, resolved once per pass
// at registration time.
type Pipeline interface {
	// Label returns the debug label the pipeline was created with.
	Label() string

	// Destroy releases the pipeline.
	Destroy()
}
