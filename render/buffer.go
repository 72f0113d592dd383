package render

// BufferKind identifies what a buffer was created for.
type BufferKind int

const (
	BufferVertex BufferKind = iota
	BufferIndex
	BufferUniform
	BufferStorage
)

// String returns the lowercase kind name.
func (k BufferKind) String() string {
	switch k {
	case BufferVertex:
		return "vertex"
	case BufferIndex:
		return "index"
	case BufferUniform:
		return "uniform"
	case BufferStorage:
		return "storage"
	}
	return "unknown"
}

// Buffer is an opaque GPU buffer handle.
//
// Count reports the number of elements the buffer was created with
// (vertices for vertex buffers, indices for index buffers, 1 for uniform
// and storage buffers); the FrameBuilder uses it to size draw calls.
type Buffer interface {
	// Kind returns what the buffer was created for.
	Kind() BufferKind

	// Count returns the element count at creation time.
	Count() int

	// SizeBytes returns the buffer size in bytes.
	SizeBytes() uint64

	// Destroy releases the buffer. Safe to call more than once.
	Destroy()
}
