package engine

import "github.com/danieljhkim/photobatch/internal/planner"

// PreviewRequest represents a request to build a rename plan for the current
// selection without writing anything.
type PreviewRequest struct {
	// BaseName is the name every target starts with; also the export folder name
	BaseName string

	// Format selects the numbering style
	Format planner.Format
}

// ExecuteRequest represents a request to carry out a prepared plan.
type ExecuteRequest struct {
	// Plan is the rename plan to execute
	Plan *planner.RenamePlan

	// DeleteOriginals removes each source after it was copied
	DeleteOriginals bool
}

// ExportRequest represents a request to plan and execute an export of the
// current selection in one step.
type ExportRequest struct {
	// BaseName is the name every target starts with; also the export folder name
	BaseName string

	// Format selects the numbering style
	Format planner.Format

	// DeleteOriginals removes each source after it was copied
	DeleteOriginals bool

	// DryRun builds and checks the plan but performs no writes
	DryRun bool
}
