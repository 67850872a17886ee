package engine

import (
	"time"

	"github.com/danieljhkim/photobatch/internal/history"
	"github.com/danieljhkim/photobatch/internal/planner"
	"github.com/danieljhkim/photobatch/internal/selection"
)

// SelectResult represents the session selection after a change.
type SelectResult struct {
	// Files is the working set in export order
	Files []selection.ImageFile `json:"files"`

	// Ignored is the number of candidates that were not accepted
	Ignored int `json:"ignored"`
}

// PreviewResult represents the result of a preview.
type PreviewResult struct {
	// Plan is the generated rename plan
	Plan *planner.RenamePlan `json:"plan"`

	// Collisions lists targets that already exist at the destination
	Collisions []planner.Collision `json:"collisions,omitempty"`
}

// Clear reports whether the plan can be executed as is.
func (r *PreviewResult) Clear() bool {
	return len(r.Collisions) == 0
}

// ExportResult represents the result of an export.
type ExportResult struct {
	// Destination is the directory the files were written to
	Destination string `json:"destination"`

	// Planned is the number of entries in the plan
	Planned int `json:"planned"`

	// Copied is the number of files written
	Copied int `json:"copied"`

	// Deleted is the number of originals removed
	Deleted int `json:"deleted"`

	// Written lists the target paths in the order they were written
	Written []string `json:"written"`

	// BytesCopied is the total size of the written files
	BytesCopied int64 `json:"bytesCopied"`

	// DeleteFailures lists originals that could not be removed
	DeleteFailures []DeleteFailure `json:"deleteFailures,omitempty"`

	// OperationID identifies the history record, empty if none was created
	OperationID string `json:"operationId,omitempty"`

	// OriginalsDeleted reports that originals were requested to be deleted
	OriginalsDeleted bool `json:"originalsDeleted"`

	// DryRun indicates no writes were performed
	DryRun bool `json:"dryRun,omitempty"`

	// Plan is the executed plan
	Plan *planner.RenamePlan `json:"plan,omitempty"`
}

// Undoable reports whether this export can be reversed by Undo.
func (r *ExportResult) Undoable() bool {
	return r.OperationID != "" && !r.OriginalsDeleted
}

// UndoResult represents the result of an undo.
type UndoResult struct {
	// OperationID is the reversed history record
	OperationID string `json:"operationId"`

	// Destination is the export directory of the reversed operation
	Destination string `json:"destination"`

	// Removed lists the exported files that were deleted
	Removed []string `json:"removed"`

	// Missing lists exported files that no longer existed
	Missing []string `json:"missing,omitempty"`

	// Modified lists removed files whose content changed since the export
	Modified []string `json:"modified,omitempty"`

	// DirectoryRemoved reports that the emptied destination was removed
	DirectoryRemoved bool `json:"directoryRemoved"`
}

// HistoryEntry is a read-only view of one recorded export.
type HistoryEntry struct {
	// ID is the operation ID
	ID string `json:"id"`

	// Destination is the export directory
	Destination string `json:"destination"`

	// Files is the number of written files
	Files int `json:"files"`

	// Timestamp is when the export was recorded
	Timestamp time.Time `json:"timestamp"`

	// State is completed or irreversible
	State history.State `json:"state"`
}
