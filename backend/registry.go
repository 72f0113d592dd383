package backend

import (
	"errors"
	"sync"

	"github.com/ToothlessBrush/maple/render"
)

// Backend names.
const (
	BackendWGPU     = "wgpu"
	BackendHeadless = "headless"
)

// ErrBackendNotAvailable is returned when a requested backend is not
// registered.
var ErrBackendNotAvailable = errors.New("backend: not available")

// Factory opens a backend instance for the given options.
type Factory func(opts render.Options) (render.Backend, error)

var (
	registryMu sync.RWMutex
	backends   = make(map[string]Factory)
	// Priority order for backend selection (first to open wins).
	// Headless is last: it accepts any options but cannot draw.
	backendPriority = []string{BackendWGPU, BackendHeadless}
)

// Register registers a backend factory with the given name.
// This is typically called from init() functions in backend packages.
// If a backend with the same name is already registered, it will be replaced.
func Register(name string, factory Factory) {
	registryMu.Lock()
	defer registryMu.Unlock()
	backends[name] = factory
}

// Unregister removes a backend from the registry.
// This is useful for testing.
func Unregister(name string) {
	registryMu.Lock()
	defer registryMu.Unlock()
	delete(backends, name)
}

// Available returns a list of registered backend names.
func Available() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()

	names := make([]string, 0, len(backends))
	for name := range backends {
		names = append(names, name)
	}
	return names
}

// IsRegistered checks if a backend with the given name is registered.
func IsRegistered(name string) bool {
	registryMu.RLock()
	defer registryMu.RUnlock()
	_, ok := backends[name]
	return ok
}

// Open opens a backend instance by name.
func Open(name string, opts render.Options) (render.Backend, error) {
	registryMu.RLock()
	factory, ok := backends[name]
	registryMu.RUnlock()
	if !ok {
		return nil, ErrBackendNotAvailable
	}
	return factory(opts)
}

// OpenDefault opens the best available backend based on priority,
// falling through to the next candidate when a factory fails to open a
// device. The registry is never empty in practice since the headless
// backend registers itself from this package.
func OpenDefault(opts render.Options) (render.Backend, error) {
	registryMu.RLock()
	candidates := make([]Factory, 0, len(backendPriority))
	for _, name := range backendPriority {
		if factory, ok := backends[name]; ok {
			candidates = append(candidates, factory)
		}
	}
	registryMu.RUnlock()

	var errs []error
	for _, factory := range candidates {
		b, err := factory(opts)
		if err == nil {
			return b, nil
		}
		errs = append(errs, err)
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return nil, ErrBackendNotAvailable
}
