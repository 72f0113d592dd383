package maple

import (
	"github.com/ToothlessBrush/maple/render"
)

// Config configures renderer construction.
type Config struct {
	// Width and Height are the initial surface size in pixels.
	Width  uint32
	Height uint32

	// Vsync is the initial presentation pacing mode.
	Vsync render.VsyncMode

	// Backend selects a backend by name ("wgpu", "headless"). Empty
	// selects the best available backend, falling back to headless when
	// no GPU device can be opened.
	Backend string

	// Device optionally supplies a shared GPU device from the host
	// application instead of letting the backend create its own.
	Device render.DeviceHandle

	// Present, if non-nil, receives the surface pixels after each frame
	// that draws to the surface target.
	Present render.PresentFunc
}

// DefaultConfig returns a 800x600 vsync-on configuration with automatic
// backend selection.
func DefaultConfig() Config {
	return Config{
		Width:  800,
		Height: 600,
		Vsync:  render.VsyncOn,
	}
}

func (c Config) options() render.Options {
	return render.Options{
		Dimensions: render.Dimensions{Width: c.Width, Height: c.Height},
		Vsync:      c.Vsync,
		Device:     c.Device,
		Present:    c.Present,
	}
}
