package wgpu

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/ToothlessBrush/maple/render"
)

// gpuBuffer wraps a HAL buffer with the metadata draw recording needs.
type gpuBuffer struct {
	device hal.Device
	handle hal.Buffer
	kind   render.BufferKind
	count  int
	size   uint64
}

func (b *gpuBuffer) Kind() render.BufferKind { return b.kind }
func (b *gpuBuffer) Count() int              { return b.count }
func (b *gpuBuffer) SizeBytes() uint64       { return b.size }

func (b *gpuBuffer) Destroy() {
	if b.handle != nil {
		b.device.DestroyBuffer(b.handle)
		b.handle = nil
	}
}

// createBuffer creates a HAL buffer and uploads data through the queue.
func (b *Backend) createBuffer(label string, data []byte, kind render.BufferKind, count int, usage gputypes.BufferUsage) (render.Buffer, error) {
	buf, err := b.device.CreateBuffer(&hal.BufferDescriptor{
		Label: label,
		Size:  uint64(len(data)),
		Usage: usage | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		return nil, fmt.Errorf("create %s buffer: %w", kind, err)
	}
	if len(data) > 0 {
		b.queue.WriteBuffer(buf, 0, data)
	}
	return &gpuBuffer{
		device: b.device,
		handle: buf,
		kind:   kind,
		count:  count,
		size:   uint64(len(data)),
	}, nil
}

// CreateVertexBuffer uploads vertices into a new vertex buffer.
func (b *Backend) CreateVertexBuffer(vertices []render.Vertex) (render.Buffer, error) {
	return b.createBuffer("vertex", render.PackVertices(vertices),
		render.BufferVertex, len(vertices), gputypes.BufferUsageVertex)
}

// CreateIndexBuffer uploads 32-bit indices into a new index buffer.
func (b *Backend) CreateIndexBuffer(indices []uint32) (render.Buffer, error) {
	return b.createBuffer("index", render.PackIndices(indices),
		render.BufferIndex, len(indices), gputypes.BufferUsageIndex)
}

// CreateUniformBuffer creates a uniform buffer holding data.
func (b *Backend) CreateUniformBuffer(data []byte) (render.Buffer, error) {
	return b.createBuffer("uniform", data,
		render.BufferUniform, 1, gputypes.BufferUsageUniform)
}

// CreateStorageBuffer creates a storage buffer holding data.
func (b *Backend) CreateStorageBuffer(data []byte) (render.Buffer, error) {
	return b.createBuffer("storage", data,
		render.BufferStorage, 1, gputypes.BufferUsageStorage)
}

// WriteBuffer replaces the contents of a previously created buffer.
func (b *Backend) WriteBuffer(buf render.Buffer, data []byte) error {
	gb, ok := buf.(*gpuBuffer)
	if !ok || gb.handle == nil {
		return fmt.Errorf("write buffer: not a live wgpu buffer")
	}
	if uint64(len(data)) > gb.size {
		return fmt.Errorf("write buffer: %d bytes exceeds buffer size %d", len(data), gb.size)
	}
	b.queue.WriteBuffer(gb.handle, 0, data)
	return nil
}
