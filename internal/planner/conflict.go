package planner

import (
	"fmt"

	"github.com/danieljhkim/photobatch/internal/fsops"
)

// CollisionChecker checks a plan against the destination directory.
// It only ever reads from the filesystem.
type CollisionChecker struct {
	fs fsops.FS
}

// NewCollisionChecker creates a new CollisionChecker.
func NewCollisionChecker(fs fsops.FS) *CollisionChecker {
	return &CollisionChecker{fs: fs}
}

// Check returns nil if no target in the plan exists yet, or a
// *CollisionError listing every colliding target.
func (c *CollisionChecker) Check(plan *RenamePlan) error {
	collisions := c.Collisions(plan)
	if len(collisions) == 0 {
		return nil
	}
	return &CollisionError{
		Destination: plan.Destination,
		Collisions:  collisions,
	}
}

// Collisions returns all colliding targets in plan order. A target that
// cannot be checked is reported as a collision as well.
func (c *CollisionChecker) Collisions(plan *RenamePlan) []Collision {
	var collisions []Collision
	for _, entry := range plan.Entries {
		if conflict := c.CheckTarget(plan.TargetPath(entry), entry.TargetName); conflict != nil {
			collisions = append(collisions, *conflict)
		}
	}
	return collisions
}

// CheckTarget checks a single target path.
// Returns a Collision if one is detected, or nil if the path is free.
func (c *CollisionChecker) CheckTarget(targetPath, targetName string) *Collision {
	exists, err := c.fs.Exists(targetPath)
	if err != nil {
		return &Collision{
			Name:   targetName,
			Path:   targetPath,
			Reason: fmt.Sprintf("Failed to check target: %v", err),
		}
	}
	if !exists {
		return nil
	}
	return &Collision{
		Name:   targetName,
		Path:   targetPath,
		Reason: "File already exists at destination",
	}
}
