package wgpu

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
	_ "github.com/gogpu/wgpu/hal/vulkan"

	"github.com/ToothlessBrush/maple/backend"
	"github.com/ToothlessBrush/maple/render"
)

func init() {
	backend.Register(backend.BackendWGPU, func(opts render.Options) (render.Backend, error) {
		return New(opts)
	})
}

// surfaceFormat is the pixel format of the offscreen surface texture.
// Readback hands tightly packed RGBA to the present callback.
const surfaceFormat = gputypes.TextureFormatRGBA8Unorm

// Backend renders through gogpu/wgpu's HAL. It owns the device unless
// one was adopted from the host application, plus the offscreen surface
// texture every surface-targeted pass draws into.
type Backend struct {
	instance hal.Instance
	device   hal.Device
	queue    hal.Queue

	// externalDevice is set when the device came from Options.Device;
	// adopted devices are never destroyed on Close.
	externalDevice bool

	dims    render.Dimensions
	vsync   render.VsyncMode
	present render.PresentFunc

	surfaceTex  hal.Texture
	surfaceView hal.TextureView
}

// New opens a backend for opts. When opts.Device is non-nil the host's
// device is adopted; otherwise a standalone Vulkan device is created.
func New(opts render.Options) (*Backend, error) {
	b := &Backend{
		dims:    opts.Dimensions,
		vsync:   opts.Vsync,
		present: opts.Present,
	}

	if opts.Device != nil {
		if err := b.adoptDevice(opts.Device); err != nil {
			return nil, err
		}
	} else if err := b.initGPU(); err != nil {
		return nil, err
	}

	if err := b.ensureSurface(opts.Dimensions); err != nil {
		b.Close()
		return nil, err
	}
	return b, nil
}

// NewWithDevice wraps an already opened HAL device and queue. Used by
// tests and by hosts that manage device lifetime themselves; Close will
// not destroy the device.
func NewWithDevice(device hal.Device, queue hal.Queue, opts render.Options) (*Backend, error) {
	b := &Backend{
		device:         device,
		queue:          queue,
		externalDevice: true,
		dims:           opts.Dimensions,
		vsync:          opts.Vsync,
		present:        opts.Present,
	}
	if err := b.ensureSurface(opts.Dimensions); err != nil {
		return nil, err
	}
	return b, nil
}

// adoptDevice extracts HAL handles from a host device provider. The
// provider must expose HalDevice() any and HalQueue() any returning
// hal.Device and hal.Queue.
func (b *Backend) adoptDevice(provider render.DeviceHandle) error {
	type halProvider interface {
		HalDevice() any
		HalQueue() any
	}
	hp, ok := provider.(halProvider)
	if !ok {
		return fmt.Errorf("wgpu: device provider does not expose HAL types")
	}
	device, ok := hp.HalDevice().(hal.Device)
	if !ok || device == nil {
		return fmt.Errorf("wgpu: provider HalDevice is not hal.Device")
	}
	queue, ok := hp.HalQueue().(hal.Queue)
	if !ok || queue == nil {
		return fmt.Errorf("wgpu: provider HalQueue is not hal.Queue")
	}
	b.device = device
	b.queue = queue
	b.externalDevice = true
	return nil
}

// initGPU creates a standalone Vulkan device, preferring a discrete or
// integrated GPU over software adapters.
func (b *Backend) initGPU() error {
	api, ok := hal.GetBackend(gputypes.BackendVulkan)
	if !ok {
		return fmt.Errorf("wgpu: vulkan backend not available")
	}
	instance, err := api.CreateInstance(&hal.InstanceDescriptor{Flags: 0})
	if err != nil {
		return fmt.Errorf("wgpu: create instance: %w", err)
	}
	b.instance = instance

	adapters := instance.EnumerateAdapters(nil)
	if len(adapters) == 0 {
		instance.Destroy()
		b.instance = nil
		return fmt.Errorf("wgpu: no GPU adapters found")
	}

	var selected *hal.ExposedAdapter
	for i := range adapters {
		if adapters[i].Info.DeviceType == gputypes.DeviceTypeDiscreteGPU ||
			adapters[i].Info.DeviceType == gputypes.DeviceTypeIntegratedGPU {
			selected = &adapters[i]
			break
		}
	}
	if selected == nil {
		selected = &adapters[0]
	}

	openDev, err := selected.Adapter.Open(gputypes.Features(0), gputypes.DefaultLimits())
	if err != nil {
		instance.Destroy()
		b.instance = nil
		return fmt.Errorf("wgpu: open device: %w", err)
	}
	b.device = openDev.Device
	b.queue = openDev.Queue

	slogger().Info("wgpu: device opened", "adapter", selected.Info.Name)
	return nil
}

// ensureSurface (re)creates the offscreen surface texture at dims.
func (b *Backend) ensureSurface(dims render.Dimensions) error {
	b.destroySurface()
	if dims.Width == 0 || dims.Height == 0 {
		// Zero-sized surface (e.g. minimized window). Surface passes
		// will report ErrSurfaceOutdated until a real resize arrives.
		b.dims = dims
		return nil
	}

	tex, err := b.device.CreateTexture(&hal.TextureDescriptor{
		Label: "surface",
		Size: hal.Extent3D{
			Width:              dims.Width,
			Height:             dims.Height,
			DepthOrArrayLayers: 1,
		},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     gputypes.TextureDimension2D,
		Format:        surfaceFormat,
		Usage:         gputypes.TextureUsageRenderAttachment | gputypes.TextureUsageCopySrc,
	})
	if err != nil {
		return render.Fatal("create surface texture", err)
	}
	view, err := b.device.CreateTextureView(tex, &hal.TextureViewDescriptor{
		Label:         "surface_view",
		Format:        surfaceFormat,
		Dimension:     gputypes.TextureViewDimension2D,
		Aspect:        gputypes.TextureAspectAll,
		MipLevelCount: 1,
	})
	if err != nil {
		b.device.DestroyTexture(tex)
		return render.Fatal("create surface view", err)
	}

	b.surfaceTex = tex
	b.surfaceView = view
	b.dims = dims
	return nil
}

func (b *Backend) destroySurface() {
	if b.surfaceView != nil {
		b.device.DestroyTextureView(b.surfaceView)
		b.surfaceView = nil
	}
	if b.surfaceTex != nil {
		b.device.DestroyTexture(b.surfaceTex)
		b.surfaceTex = nil
	}
}

// Name returns "wgpu".
func (b *Backend) Name() string { return backend.BackendWGPU }

// SurfaceFormat returns the surface texture format.
func (b *Backend) SurfaceFormat() gputypes.TextureFormat { return surfaceFormat }

// Dimensions returns the current surface size.
func (b *Backend) Dimensions() render.Dimensions { return b.dims }

// Resize recreates the surface texture at the new dimensions.
func (b *Backend) Resize(dims render.Dimensions) error {
	if dims == b.dims && b.surfaceTex != nil {
		return nil
	}
	slogger().Debug("wgpu: resize", "width", dims.Width, "height", dims.Height)
	return b.ensureSurface(dims)
}

// SetVsync records the presentation pacing mode. The offscreen surface
// has no swapchain; the mode takes effect when the host presents.
func (b *Backend) SetVsync(mode render.VsyncMode) error {
	b.vsync = mode
	slogger().Debug("wgpu: vsync", "mode", mode)
	return nil
}

// Vsync returns the current presentation pacing mode.
func (b *Backend) Vsync() render.VsyncMode { return b.vsync }

// Close releases the surface and, for devices this backend created, the
// device and instance.
func (b *Backend) Close() {
	if b.device != nil {
		b.destroySurface()
	}
	if !b.externalDevice && b.device != nil {
		b.device.Destroy()
	}
	b.device = nil
	b.queue = nil
	if b.instance != nil {
		b.instance.Destroy()
		b.instance = nil
	}
}
