package chartboard

import (
	"errors"
	"fmt"
	"strings"
)

// ErrContainerNotFound is matched by errors.Is for any error reporting a
// container that could not be used, whether absent or not drawable.
var ErrContainerNotFound = errors.New("container not found")

// MissingContainerError reports every container that could not be resolved
// during an [Initializer.Run] under the [FailFast] policy.
type MissingContainerError struct {
	// IDs lists the unresolved container ids in binding order.
	IDs []string

	// Causes holds one error per id, in the same order.
	Causes []error
}

func (e *MissingContainerError) Error() string {
	if len(e.IDs) == 1 {
		return fmt.Sprintf("dashboard container %q: %v", e.IDs[0], e.Causes[0])
	}
	parts := make([]string, len(e.IDs))
	for i, id := range e.IDs {
		parts[i] = fmt.Sprintf("%q (%v)", id, e.Causes[i])
	}
	return fmt.Sprintf("%d dashboard containers unavailable: %s", len(e.IDs), strings.Join(parts, ", "))
}

// Unwrap exposes the individual causes to errors.Is and errors.As.
func (e *MissingContainerError) Unwrap() []error {
	return e.Causes
}

// ContainerError describes why a single container cannot be used.
type ContainerError struct {
	ID  string
	Tag string
}

func (e *ContainerError) Error() string {
	if e.Tag == "" {
		return fmt.Sprintf("no element with id %q", e.ID)
	}
	return fmt.Sprintf("element %q is a <%s>, want <canvas> or <div>", e.ID, e.Tag)
}

// Is makes every ContainerError match [ErrContainerNotFound].
func (e *ContainerError) Is(target error) bool {
	return target == ErrContainerNotFound
}
