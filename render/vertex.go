package render

import (
	"encoding/binary"
	"math"
)

// VertexStride is the byte stride per vertex.
// Layout per vertex:
//
//	position (vec3<f32>) = 12 bytes (location 0)
//	normal   (vec3<f32>) = 12 bytes (location 1)
//	texUV    (vec2<f32>) = 8 bytes  (location 2)
//
// Total = 32 bytes per vertex.
const VertexStride = 32

// Vertex is the canonical vertex format passes upload through
// [Context.CreateVertexBuffer].
type Vertex struct {
	Position [3]float32
	Normal   [3]float32
	TexUV    [2]float32
}

// PackVertices encodes vertices into the tightly packed little-endian
// layout GPU vertex buffers expect, VertexStride bytes per vertex.
func PackVertices(vertices []Vertex) []byte {
	out := make([]byte, 0, len(vertices)*VertexStride)
	for i := range vertices {
		v := &vertices[i]
		out = putF32(out, v.Position[:])
		out = putF32(out, v.Normal[:])
		out = putF32(out, v.TexUV[:])
	}
	return out
}

// PackIndices encodes 32-bit indices little-endian.
func PackIndices(indices []uint32) []byte {
	out := make([]byte, 0, len(indices)*4)
	for _, idx := range indices {
		out = binary.LittleEndian.AppendUint32(out, idx)
	}
	return out
}

func putF32(dst []byte, vals []float32) []byte {
	for _, f := range vals {
		dst = binary.LittleEndian.AppendUint32(dst, math.Float32bits(f))
	}
	return dst
}
