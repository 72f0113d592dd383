package render

// StageFlags selects the shader stages a binding is visible to.
type StageFlags uint32

const (
	StageVertex StageFlags = 1 << iota
	StageFragment
)

// BindingType identifies the resource kind bound at one slot of a
// descriptor set layout. Binding indices are implied by position in
// [DescriptorSetLayoutDescriptor.Layout].
type BindingType int

const (
	BindingUniformBuffer BindingType = iota
	BindingTextureView
	BindingSampler
	BindingStorageBuffer
	BindingStorageBufferReadOnly
)

// DescriptorSetLayoutDescriptor describes the bindings of one set index.
type DescriptorSetLayoutDescriptor struct {
	// Label is an optional debug label.
	Label string

	// Visibility applies to every binding in the layout.
	Visibility StageFlags

	// Layout lists binding types in binding-index order.
	Layout []BindingType
}

// DescriptorSetLayout is an opaque layout handle.
type DescriptorSetLayout interface {
	// BindingCount returns the number of bindings in the layout.
	BindingCount() int

	// Destroy releases the layout.
	Destroy()
}

// DescriptorSet is an opaque bindable set handle. Sets are the usual
// currency of the shared-resource store: a producer pass publishes a set
// exposing its output texture, a consumer binds it.
type DescriptorSet interface {
	// Destroy releases the set.
	Destroy()
}

// DescriptorWrite is a single resource write within a set under
// construction. Exactly one field is non-nil.
type DescriptorWrite struct {
	Binding uint32
	Buffer  Buffer
	View    TextureView
	Sampler Sampler
}

// DescriptorSetBuilder accumulates writes for [Context.BuildDescriptorSet].
//
//	set, err := rc.BuildDescriptorSet(
//	    render.NewDescriptorSet(layout).
//	        Label("main/output").
//	        Sampler(0, sampler).
//	        TextureView(1, tex.View()),
//	)
type DescriptorSetBuilder struct {
	label  string
	layout DescriptorSetLayout
	writes []DescriptorWrite
}

// NewDescriptorSet starts a builder for the given layout.
func NewDescriptorSet(layout DescriptorSetLayout) *DescriptorSetBuilder {
	return &DescriptorSetBuilder{layout: layout}
}

// Label sets an optional debug label.
func (b *DescriptorSetBuilder) Label(label string) *DescriptorSetBuilder {
	b.label = label
	return b
}

// Uniform writes a uniform buffer at binding.
func (b *DescriptorSetBuilder) Uniform(binding uint32, buf Buffer) *DescriptorSetBuilder {
	b.writes = append(b.writes, DescriptorWrite{Binding: binding, Buffer: buf})
	return b
}

// Storage writes a storage buffer at binding.
func (b *DescriptorSetBuilder) Storage(binding uint32, buf Buffer) *DescriptorSetBuilder {
	b.writes = append(b.writes, DescriptorWrite{Binding: binding, Buffer: buf})
	return b
}

// TextureView writes a texture view at binding.
func (b *DescriptorSetBuilder) TextureView(binding uint32, view TextureView) *DescriptorSetBuilder {
	b.writes = append(b.writes, DescriptorWrite{Binding: binding, View: view})
	return b
}

// Sampler writes a sampler at binding.
func (b *DescriptorSetBuilder) Sampler(binding uint32, s Sampler) *DescriptorSetBuilder {
	b.writes = append(b.writes, DescriptorWrite{Binding: binding, Sampler: s})
	return b
}

// BuildLabel returns the builder's label.
func (b *DescriptorSetBuilder) BuildLabel() string { return b.label }

// BuildLayout returns the target layout.
func (b *DescriptorSetBuilder) BuildLayout() DescriptorSetLayout { return b.layout }

// Writes returns the accumulated writes in call order.
func (b *DescriptorSetBuilder) Writes() []DescriptorWrite { return b.writes }
