package render

import (
	"encoding/binary"
	"math"
	"testing"
)

func TestPackVerticesLayout(t *testing.T) {
	verts := []Vertex{
		{
			Position: [3]float32{1, 2, 3},
			Normal:   [3]float32{0, 1, 0},
			TexUV:    [2]float32{0.25, 0.75},
		},
		{
			Position: [3]float32{-1, -2, -3},
		},
	}

	data := PackVertices(verts)
	if len(data) != 2*VertexStride {
		t.Fatalf("packed %d bytes, want %d", len(data), 2*VertexStride)
	}

	f32At := func(off int) float32 {
		return math.Float32frombits(binary.LittleEndian.Uint32(data[off : off+4]))
	}
	if f32At(0) != 1 || f32At(4) != 2 || f32At(8) != 3 {
		t.Errorf("position bytes wrong: %v %v %v", f32At(0), f32At(4), f32At(8))
	}
	if f32At(12) != 0 || f32At(16) != 1 || f32At(20) != 0 {
		t.Errorf("normal bytes wrong")
	}
	if f32At(24) != 0.25 || f32At(28) != 0.75 {
		t.Errorf("uv bytes wrong: %v %v", f32At(24), f32At(28))
	}
	if f32At(VertexStride) != -1 {
		t.Errorf("second vertex starts with %v, want -1", f32At(VertexStride))
	}
}

func TestPackIndices(t *testing.T) {
	data := PackIndices([]uint32{0, 1, 0xDEADBEEF})
	if len(data) != 12 {
		t.Fatalf("packed %d bytes, want 12", len(data))
	}
	if got := binary.LittleEndian.Uint32(data[8:12]); got != 0xDEADBEEF {
		t.Errorf("third index = %#x", got)
	}
}
