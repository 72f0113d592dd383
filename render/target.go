package render

// Target is where a pass's color output goes: the presentable surface or
// an off-screen texture another pass may later sample.
//
// The zero value is the surface target.
type Target struct {
	texture Texture
}

// SurfaceTarget returns the swapchain-presented surface target.
func SurfaceTarget() Target { return Target{} }

// TextureTarget returns an off-screen target drawing into tex. The
// texture must have been created with TextureCreateInfo.RenderTarget.
func TextureTarget(tex Texture) Target { return Target{texture: tex} }

// IsSurface reports whether the target is the presentable surface.
func (t Target) IsSurface() bool { return t.texture == nil }

// Texture returns the off-screen texture, or nil for the surface target.
func (t Target) Texture() Texture { return t.texture }
