package engine

import (
	"context"
	"fmt"

	"github.com/danieljhkim/photobatch/internal/hash"
	"github.com/danieljhkim/photobatch/internal/history"
)

// Undo reverses the most recent export.
//
// Every file the export wrote is removed if it still exists, then the
// destination directory is removed if that left it empty. Source files are
// never touched. The history entry is only dropped once every removal
// succeeded, so a failed undo can be retried.
//
// An export that deleted its originals cannot be undone; Undo returns
// history.ErrIrreversible and the history is left as it was.
func (e *Engine) Undo(ctx context.Context) (*UndoResult, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	op, err := e.ledger.NextUndo()
	if err != nil {
		return nil, err
	}

	result := &UndoResult{
		OperationID: op.ID,
		Destination: op.Destination,
	}

	for _, path := range op.Paths {
		exists, err := e.fs.Exists(path)
		if err != nil {
			return result, fmt.Errorf("failed to check %s: %w", path, err)
		}
		if !exists {
			result.Missing = append(result.Missing, path)
			continue
		}

		if changed, err := hash.Changed(e.hasher, path, op.Checksums[path]); err != nil {
			e.logger.Debug("failed to hash exported file", "path", path, "error", err)
		} else if changed {
			result.Modified = append(result.Modified, path)
		}

		if err := e.fs.Remove(path); err != nil {
			return result, fmt.Errorf("failed to remove %s: %w", path, err)
		}
		result.Removed = append(result.Removed, path)
	}

	empty, err := e.fs.IsEmptyDir(op.Destination)
	if err != nil {
		e.logger.Warn("failed to inspect export directory", "path", op.Destination, "error", err)
	} else if empty {
		if err := e.fs.Remove(op.Destination); err != nil {
			e.logger.Warn("failed to remove export directory", "path", op.Destination, "error", err)
		} else {
			result.DirectoryRemoved = true
		}
	}

	if _, err := e.ledger.Pop(op.ID); err != nil {
		return result, err
	}

	e.logger.Info("export undone",
		"operation", op.ID,
		"removed", len(result.Removed),
		"missing", len(result.Missing),
		"modified", len(result.Modified),
		"directoryRemoved", result.DirectoryRemoved)

	return result, nil
}

// History returns every recorded export, oldest first.
func (e *Engine) History() []HistoryEntry {
	e.mu.Lock()
	defer e.mu.Unlock()

	ops := e.ledger.List()
	entries := make([]HistoryEntry, len(ops))
	for i, op := range ops {
		entries[i] = newHistoryEntry(op)
	}
	return entries
}

// NextUndo returns the export Undo would reverse, or the reason it cannot.
// history.ErrIrreversible is returned together with the blocking entry.
func (e *Engine) NextUndo() (*HistoryEntry, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	op, err := e.ledger.NextUndo()
	if op.ID == "" {
		return nil, err
	}
	entry := newHistoryEntry(op)
	return &entry, err
}

func newHistoryEntry(op history.Operation) HistoryEntry {
	return HistoryEntry{
		ID:          op.ID,
		Destination: op.Destination,
		Files:       len(op.Paths),
		Timestamp:   op.Timestamp,
		State:       op.State(),
	}
}
