package rendergraph

import (
	"errors"
	"fmt"
)

// ErrCycleDetected is returned by ordering when the edge set contains a
// cycle. The graph cannot be scheduled; this is a configuration error,
// not a per-frame one.
var ErrCycleDetected = errors.New("rendergraph: cycle detected")

// UnknownNodeError is returned by ordering when an edge endpoint names a
// node that was never registered.
type UnknownNodeError struct {
	// Name is the missing node name.
	Name string
}

func (e *UnknownNodeError) Error() string {
	return fmt.Sprintf("rendergraph: edge references unknown node %q", e.Name)
}
