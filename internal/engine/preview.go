package engine

import (
	"fmt"
	"strings"

	"github.com/danieljhkim/photobatch/internal/config"
	"github.com/danieljhkim/photobatch/internal/planner"
)

// Preview builds the rename plan for the current selection and reports any
// targets that already exist. Nothing is written, and the destination
// directory is not created.
func (e *Engine) Preview(req *PreviewRequest) (*PreviewResult, error) {
	if req == nil {
		return nil, fmt.Errorf("%w: request is required", ErrValidation)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	plan, err := e.planLocked(req.BaseName, req.Format)
	if err != nil {
		return nil, err
	}

	return &PreviewResult{
		Plan:       plan,
		Collisions: e.checker.Collisions(plan),
	}, nil
}

// CheckCollisions checks a plan against its destination directory.
// It returns nil or a *planner.CollisionError naming every colliding target.
func (e *Engine) CheckCollisions(plan *planner.RenamePlan) error {
	if plan == nil {
		return fmt.Errorf("%w: plan is required", ErrValidation)
	}
	return e.checker.Check(plan)
}

// planLocked builds a plan for the session selection under the effective
// export root. Caller must hold e.mu.
func (e *Engine) planLocked(baseName string, format planner.Format) (*planner.RenamePlan, error) {
	name := strings.TrimSpace(baseName)
	if name != "" {
		// The base name doubles as the export folder name.
		if err := e.fs.ValidateIdentifier(name); err != nil {
			return nil, fmt.Errorf("%w: %v", planner.ErrInvalidBaseName, err)
		}
	}

	return planner.Build(e.selection, name, format, config.ExportDir(e.exportRoot(), name))
}
