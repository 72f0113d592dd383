package render

import (
	"testing"

	"github.com/gogpu/gputypes"
)

type stubLayout struct{ bindings int }

func (l stubLayout) BindingCount() int { return l.bindings }
func (l stubLayout) Destroy()          {}

type stubView struct{}

func (stubView) Destroy() {}

type stubSampler struct{}

func (stubSampler) Destroy() {}

func TestDescriptorSetBuilder(t *testing.T) {
	layout := stubLayout{bindings: 3}
	view := stubView{}
	sampler := stubSampler{}

	b := NewDescriptorSet(layout).
		Label("composite/input").
		Sampler(0, sampler).
		TextureView(1, view)

	if b.BuildLabel() != "composite/input" {
		t.Errorf("BuildLabel = %q", b.BuildLabel())
	}
	if b.BuildLayout() != DescriptorSetLayout(layout) {
		t.Error("BuildLayout did not return the given layout")
	}

	writes := b.Writes()
	if len(writes) != 2 {
		t.Fatalf("got %d writes, want 2", len(writes))
	}
	if writes[0].Binding != 0 || writes[0].Sampler == nil {
		t.Errorf("write 0 = %+v, want sampler at binding 0", writes[0])
	}
	if writes[1].Binding != 1 || writes[1].View == nil {
		t.Errorf("write 1 = %+v, want view at binding 1", writes[1])
	}
}

type stubTexture struct{ w, h uint32 }

func (s stubTexture) Width() uint32                  { return s.w }
func (s stubTexture) Height() uint32                 { return s.h }
func (s stubTexture) Format() gputypes.TextureFormat { return gputypes.TextureFormatRGBA8Unorm }
func (s stubTexture) View() TextureView              { return stubView{} }
func (s stubTexture) Destroy()                       {}

func TestTarget(t *testing.T) {
	if !SurfaceTarget().IsSurface() {
		t.Error("SurfaceTarget().IsSurface() = false")
	}
	var zero Target
	if !zero.IsSurface() {
		t.Error("zero Target is not the surface")
	}

	tex := stubTexture{w: 4, h: 4}
	target := TextureTarget(tex)
	if target.IsSurface() {
		t.Error("TextureTarget reports surface")
	}
	if target.Texture() != Texture(tex) {
		t.Error("Texture() did not return the given texture")
	}
}
