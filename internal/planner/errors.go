package planner

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidBaseName indicates the base name is empty after trimming.
	ErrInvalidBaseName = errors.New("invalid base name")

	// ErrInvalidFormat indicates an unknown naming format.
	ErrInvalidFormat = errors.New("invalid format")

	// ErrNameCollision indicates planned targets already exist at the destination.
	ErrNameCollision = errors.New("name collision")
)

// Collision describes one planned target that cannot be written.
type Collision struct {
	// Name is the planned target file name
	Name string `json:"name"`

	// Path is the absolute target path
	Path string `json:"path"`

	// Reason is a human-readable explanation
	Reason string `json:"reason"`
}

// CollisionError reports every colliding target in a plan.
// It matches ErrNameCollision under errors.Is.
type CollisionError struct {
	Destination string
	Collisions  []Collision
}

// Error implements the error interface.
func (e *CollisionError) Error() string {
	return fmt.Sprintf("%s: %d target(s) already exist in %s: %s",
		ErrNameCollision, len(e.Collisions), e.Destination, strings.Join(e.Names(), ", "))
}

// Is reports whether target is ErrNameCollision.
func (e *CollisionError) Is(target error) bool {
	return target == ErrNameCollision
}

// Names returns the colliding target names in plan order.
func (e *CollisionError) Names() []string {
	names := make([]string, len(e.Collisions))
	for i, c := range e.Collisions {
		names[i] = c.Name
	}
	return names
}
