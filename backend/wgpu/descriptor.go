package wgpu

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/ToothlessBrush/maple/render"
)

// gpuLayout wraps a HAL bind group layout.
type gpuLayout struct {
	device   hal.Device
	handle   hal.BindGroupLayout
	bindings int
}

func (l *gpuLayout) BindingCount() int { return l.bindings }

func (l *gpuLayout) Destroy() {
	if l.handle != nil {
		l.device.DestroyBindGroupLayout(l.handle)
		l.handle = nil
	}
}

// gpuDescriptorSet wraps a HAL bind group.
type gpuDescriptorSet struct {
	device hal.Device
	handle hal.BindGroup
}

func (s *gpuDescriptorSet) Destroy() {
	if s.handle != nil {
		s.device.DestroyBindGroup(s.handle)
		s.handle = nil
	}
}

// CreateDescriptorSetLayout creates a bind group layout from the
// binding types listed in binding-index order.
func (b *Backend) CreateDescriptorSetLayout(desc render.DescriptorSetLayoutDescriptor) (render.DescriptorSetLayout, error) {
	visibility := shaderStages(desc.Visibility)
	entries := make([]gputypes.BindGroupLayoutEntry, len(desc.Layout))
	for i, bt := range desc.Layout {
		entry := gputypes.BindGroupLayoutEntry{
			Binding:    uint32(i),
			Visibility: visibility,
		}
		switch bt {
		case render.BindingUniformBuffer:
			entry.Buffer = &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeUniform}
		case render.BindingStorageBuffer:
			entry.Buffer = &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeStorage}
		case render.BindingStorageBufferReadOnly:
			entry.Buffer = &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeReadOnlyStorage}
		case render.BindingTextureView:
			entry.Texture = &gputypes.TextureBindingLayout{
				SampleType:    gputypes.TextureSampleTypeFloat,
				ViewDimension: gputypes.TextureViewDimension2D,
			}
		case render.BindingSampler:
			entry.Sampler = &gputypes.SamplerBindingLayout{Type: gputypes.SamplerBindingTypeFiltering}
		default:
			return nil, fmt.Errorf("create descriptor set layout %q: unknown binding type %d", desc.Label, bt)
		}
		entries[i] = entry
	}

	layout, err := b.device.CreateBindGroupLayout(&hal.BindGroupLayoutDescriptor{
		Label:   desc.Label,
		Entries: entries,
	})
	if err != nil {
		return nil, fmt.Errorf("create descriptor set layout %q: %w", desc.Label, err)
	}
	return &gpuLayout{device: b.device, handle: layout, bindings: len(desc.Layout)}, nil
}

// BuildDescriptorSet resolves a builder's writes into a HAL bind group.
func (b *Backend) BuildDescriptorSet(builder *render.DescriptorSetBuilder) (render.DescriptorSet, error) {
	layout, ok := builder.BuildLayout().(*gpuLayout)
	if !ok || layout.handle == nil {
		return nil, fmt.Errorf("build descriptor set %q: layout is not a live wgpu layout", builder.BuildLabel())
	}

	writes := builder.Writes()
	entries := make([]gputypes.BindGroupEntry, len(writes))
	for i, w := range writes {
		entry := gputypes.BindGroupEntry{Binding: w.Binding}
		switch {
		case w.Buffer != nil:
			buf, ok := w.Buffer.(*gpuBuffer)
			if !ok || buf.handle == nil {
				return nil, fmt.Errorf("build descriptor set %q: binding %d is not a live wgpu buffer", builder.BuildLabel(), w.Binding)
			}
			entry.Resource = gputypes.BufferBinding{
				Buffer: buf.handle.NativeHandle(),
				Offset: 0,
				Size:   buf.size,
			}
		case w.View != nil:
			view, ok := w.View.(*gpuTextureView)
			if !ok || view.handle == nil {
				return nil, fmt.Errorf("build descriptor set %q: binding %d is not a live wgpu texture view", builder.BuildLabel(), w.Binding)
			}
			entry.Resource = gputypes.TextureViewBinding{
				TextureView: view.handle.NativeHandle(),
			}
		case w.Sampler != nil:
			sampler, ok := w.Sampler.(*gpuSampler)
			if !ok || sampler.handle == nil {
				return nil, fmt.Errorf("build descriptor set %q: binding %d is not a live wgpu sampler", builder.BuildLabel(), w.Binding)
			}
			entry.Resource = gputypes.SamplerBinding{
				Sampler: sampler.handle.NativeHandle(),
			}
		default:
			return nil, fmt.Errorf("build descriptor set %q: binding %d has no resource", builder.BuildLabel(), w.Binding)
		}
		entries[i] = entry
	}

	group, err := b.device.CreateBindGroup(&hal.BindGroupDescriptor{
		Label:   builder.BuildLabel(),
		Layout:  layout.handle,
		Entries: entries,
	})
	if err != nil {
		return nil, fmt.Errorf("build descriptor set %q: %w", builder.BuildLabel(), err)
	}
	return &gpuDescriptorSet{device: b.device, handle: group}, nil
}

func shaderStages(flags render.StageFlags) gputypes.ShaderStage {
	var stages gputypes.ShaderStage
	if flags&render.StageVertex != 0 {
		stages |= gputypes.ShaderStageVertex
	}
	if flags&render.StageFragment != 0 {
		stages |= gputypes.ShaderStageFragment
	}
	return stages
}
