package wgpu

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/ToothlessBrush/maple/render"
)

// gpuPipeline wraps a HAL render pipeline and its pipeline layout.
type gpuPipeline struct {
	device     hal.Device
	handle     hal.RenderPipeline
	pipeLayout hal.PipelineLayout
	label      string
}

func (p *gpuPipeline) Label() string { return p.label }

func (p *gpuPipeline) Destroy() {
	if p.handle != nil {
		p.device.DestroyRenderPipeline(p.handle)
		p.handle = nil
	}
	if p.pipeLayout != nil {
		p.device.DestroyPipelineLayout(p.pipeLayout)
		p.pipeLayout = nil
	}
}

// CreatePipeline creates a render pipeline binding a shader pair,
// descriptor set layouts and a color target format together.
func (b *Backend) CreatePipeline(info render.PipelineCreateInfo) (render.Pipeline, error) {
	shader, ok := info.Shader.(*gpuShader)
	if !ok || shader.vertModule == nil {
		return nil, fmt.Errorf("create pipeline %q: shader is not a live wgpu shader", info.Label)
	}

	layouts := make([]hal.BindGroupLayout, len(info.Layouts))
	for i, l := range info.Layouts {
		gl, ok := l.(*gpuLayout)
		if !ok || gl.handle == nil {
			return nil, fmt.Errorf("create pipeline %q: layout %d is not a live wgpu layout", info.Label, i)
		}
		layouts[i] = gl.handle
	}

	pipeLayout, err := b.device.CreatePipelineLayout(&hal.PipelineLayoutDescriptor{
		Label:            info.Label + "_layout",
		BindGroupLayouts: layouts,
	})
	if err != nil {
		return nil, fmt.Errorf("create pipeline layout %q: %w", info.Label, err)
	}

	format := info.ColorFormat
	if format == gputypes.TextureFormatUndefined {
		format = surfaceFormat
	}

	premulBlend := gputypes.BlendStatePremultiplied()
	pipeline, err := b.device.CreateRenderPipeline(&hal.RenderPipelineDescriptor{
		Label:  info.Label,
		Layout: pipeLayout,
		Vertex: hal.VertexState{
			Module:     shader.vertModule,
			EntryPoint: shader.vertEntry,
			Buffers:    vertexLayout(),
		},
		Fragment: &hal.FragmentState{
			Module:     shader.fragModule,
			EntryPoint: shader.fragEntry,
			Targets: []gputypes.ColorTargetState{
				{
					Format:    format,
					Blend:     &premulBlend,
					WriteMask: gputypes.ColorWriteMaskAll,
				},
			},
		},
		Primitive: gputypes.PrimitiveState{
			Topology: gputypes.PrimitiveTopologyTriangleList,
			CullMode: gputypes.CullModeNone,
		},
		Multisample: gputypes.MultisampleState{
			Count: 1,
			Mask:  0xFFFFFFFF,
		},
	})
	if err != nil {
		b.device.DestroyPipelineLayout(pipeLayout)
		return nil, fmt.Errorf("create render pipeline %q: %w", info.Label, err)
	}

	return &gpuPipeline{
		device:     b.device,
		handle:     pipeline,
		pipeLayout: pipeLayout,
		label:      info.Label,
	}, nil
}

// vertexLayout returns the vertex buffer layout matching render.Vertex.
func vertexLayout() []gputypes.VertexBufferLayout {
	return []gputypes.VertexBufferLayout{
		{
			ArrayStride: render.VertexStride,
			StepMode:    gputypes.VertexStepModeVertex,
			Attributes: []gputypes.VertexAttribute{
				{Format: gputypes.VertexFormatFloat32x3, Offset: 0, ShaderLocation: 0},  // position
				{Format: gputypes.VertexFormatFloat32x3, Offset: 12, ShaderLocation: 1}, // normal
				{Format: gputypes.VertexFormatFloat32x2, Offset: 24, ShaderLocation: 2}, // tex_uv
			},
		},
	}
}
