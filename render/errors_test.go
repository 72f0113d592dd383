package render

import (
	"errors"
	"fmt"
	"testing"
)

func TestFatalError(t *testing.T) {
	err := Fatal("create texture", ErrDeviceLost)

	want := "render: fatal: create texture: render: device lost"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
	if !errors.Is(err, ErrDeviceLost) {
		t.Error("wrapped sentinel not reachable via errors.Is")
	}
	if !IsFatal(err) {
		t.Error("IsFatal = false for a FatalError")
	}

	wrapped := fmt.Errorf("render node %q: %w", "main pass", err)
	if !IsFatal(wrapped) {
		t.Error("IsFatal = false when FatalError is nested")
	}
}

func TestIsFatalPlainError(t *testing.T) {
	if IsFatal(errors.New("plain")) {
		t.Error("IsFatal = true for a plain error")
	}
	if IsFatal(ErrSurfaceOutdated) {
		t.Error("IsFatal = true for the surface outdated sentinel")
	}
	if IsFatal(nil) {
		t.Error("IsFatal = true for nil")
	}
}
