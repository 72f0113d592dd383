package render

import (
	"errors"
	"fmt"
)

// Common backend error conditions.
var (
	// ErrHeadless is returned when a GPU operation is attempted on the
	// headless backend. Headless mode exists for resource-free testing;
	// any resource creation or render call against it is a hard failure.
	ErrHeadless = errors.New("render: headless backend")

	// ErrDeviceLost is returned when the GPU device has been lost and
	// cannot service further work.
	ErrDeviceLost = errors.New("render: device lost")

	// ErrSurfaceOutdated is returned when the presentation surface no
	// longer matches the backend's configured dimensions (for example
	// after a window resize). The frame should be dropped and Resize
	// called before the next one; this is not a fatal condition.
	ErrSurfaceOutdated = errors.New("render: surface outdated")
)

// FatalError marks a backend failure the renderer cannot recover from.
// Callers detect it with errors.As (or errors.Is against the wrapped
// sentinel) and decide shutdown policy themselves; the render core never
// panics on backend loss.
type FatalError struct {
	// Op names the operation that failed, e.g. "create texture".
	Op string

	// Err is the underlying cause.
	Err error
}

func (e *FatalError) Error() string {
	return fmt.Sprintf("render: fatal: %s: %v", e.Op, e.Err)
}

func (e *FatalError) Unwrap() error { return e.Err }

// Fatal wraps err as a FatalError for the named operation.
func Fatal(op string, err error) error {
	return &FatalError{Op: op, Err: err}
}

// IsFatal reports whether err carries a FatalError anywhere in its chain.
func IsFatal(err error) bool {
	var fe *FatalError
	return errors.As(err, &fe)
}
