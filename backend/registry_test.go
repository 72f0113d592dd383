package backend

import (
	"errors"
	"testing"

	"github.com/ToothlessBrush/maple/render"
)

type fakeBackend struct {
	headlessBackend
	name string
}

func (f *fakeBackend) Name() string { return f.name }

func TestRegisterAndOpen(t *testing.T) {
	Register("fake", func(opts render.Options) (render.Backend, error) {
		return &fakeBackend{name: "fake"}, nil
	})
	defer Unregister("fake")

	if !IsRegistered("fake") {
		t.Fatal("fake backend not registered")
	}

	b, err := Open("fake", render.Options{})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if b.Name() != "fake" {
		t.Fatalf("Name = %q, want fake", b.Name())
	}
}

func TestOpenUnknown(t *testing.T) {
	if _, err := Open("nope", render.Options{}); !errors.Is(err, ErrBackendNotAvailable) {
		t.Fatalf("got %v, want ErrBackendNotAvailable", err)
	}
}

func TestAvailableIncludesHeadless(t *testing.T) {
	for _, name := range Available() {
		if name == BackendHeadless {
			return
		}
	}
	t.Fatal("headless backend missing from Available()")
}

func TestOpenDefaultFallsThroughToHeadless(t *testing.T) {
	// A wgpu factory that fails to open should not stop selection.
	Register(BackendWGPU, func(opts render.Options) (render.Backend, error) {
		return nil, errors.New("no adapter")
	})
	defer Unregister(BackendWGPU)

	b, err := OpenDefault(render.Options{Dimensions: render.Dimensions{Width: 8, Height: 8}})
	if err != nil {
		t.Fatalf("OpenDefault: %v", err)
	}
	if b.Name() != BackendHeadless {
		t.Fatalf("selected %q, want headless", b.Name())
	}
	if b.Dimensions() != (render.Dimensions{Width: 8, Height: 8}) {
		t.Fatalf("dimensions not carried through: %+v", b.Dimensions())
	}
}

func TestHeadlessOperationsAreFatal(t *testing.T) {
	b, err := Open(BackendHeadless, render.Options{})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}

	tests := []struct {
		name string
		call func() error
	}{
		{"vertex buffer", func() error { _, err := b.CreateVertexBuffer(nil); return err }},
		{"index buffer", func() error { _, err := b.CreateIndexBuffer(nil); return err }},
		{"uniform buffer", func() error { _, err := b.CreateUniformBuffer(nil); return err }},
		{"storage buffer", func() error { _, err := b.CreateStorageBuffer(nil); return err }},
		{"write buffer", func() error { return b.WriteBuffer(nil, nil) }},
		{"texture", func() error { _, err := b.CreateTexture(render.TextureCreateInfo{}); return err }},
		{"sampler", func() error { _, err := b.CreateSampler(render.SamplerOptions{}); return err }},
		{"layout", func() error {
			_, err := b.CreateDescriptorSetLayout(render.DescriptorSetLayoutDescriptor{})
			return err
		}},
		{"descriptor set", func() error { _, err := b.BuildDescriptorSet(nil); return err }},
		{"shader", func() error { _, err := b.CreateShaderPair(render.ShaderPair{}); return err }},
		{"pipeline", func() error { _, err := b.CreatePipeline(render.PipelineCreateInfo{}); return err }},
		{"render", func() error { return b.Render(nil, render.SurfaceTarget(), nil) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.call()
			if !errors.Is(err, render.ErrHeadless) {
				t.Fatalf("got %v, want ErrHeadless", err)
			}
			if !render.IsFatal(err) {
				t.Fatalf("error %v is not fatal", err)
			}
		})
	}
}

func TestHeadlessResizeAndVsync(t *testing.T) {
	b, err := Open(BackendHeadless, render.Options{})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	dims := render.Dimensions{Width: 320, Height: 240}
	if err := b.Resize(dims); err != nil {
		t.Fatalf("Resize: %v", err)
	}
	if b.Dimensions() != dims {
		t.Fatalf("Dimensions = %+v, want %+v", b.Dimensions(), dims)
	}
	if err := b.SetVsync(render.VsyncOn); err != nil {
		t.Fatalf("SetVsync: %v", err)
	}
}
