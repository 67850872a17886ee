package engine

import (
	"errors"
	"fmt"

	"github.com/danieljhkim/photobatch/internal/selection"
)

// Select replaces the session selection with the image files among paths.
//
// An empty candidate list returns selection.ErrNoInput and leaves the
// current selection alone. A non-empty list without any image clears the
// selection and returns selection.ErrEmptySelection.
func (e *Engine) Select(paths []string) (*SelectResult, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	ws, err := selection.Validate(paths)
	if err != nil {
		if errors.Is(err, selection.ErrEmptySelection) {
			e.selection = selection.WorkingSet{}
		}
		return nil, err
	}

	e.selection = ws
	e.logger.Debug("selection replaced", "files", ws.Len(), "candidates", len(paths))
	return &SelectResult{
		Files:   ws.Files(),
		Ignored: len(paths) - ws.Len(),
	}, nil
}

// Add merges the image files among paths into the session selection.
// Files already selected are not duplicated.
func (e *Engine) Add(paths []string) (*SelectResult, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if len(paths) == 0 {
		return nil, selection.ErrNoInput
	}

	before := e.selection.Len()
	merged := append(e.selection.Paths(), paths...)
	ws, err := selection.Validate(merged)
	if err != nil {
		return nil, err
	}

	e.selection = ws
	added := ws.Len() - before
	e.logger.Debug("selection extended", "added", added, "files", ws.Len())
	return &SelectResult{
		Files:   ws.Files(),
		Ignored: len(paths) - added,
	}, nil
}

// Remove drops the given paths from the session selection.
// Paths that are not selected are ignored.
func (e *Engine) Remove(paths []string) (*SelectResult, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if len(paths) == 0 {
		return nil, selection.ErrNoInput
	}

	before := e.selection.Len()
	e.selection = e.selection.Without(paths...)
	removed := before - e.selection.Len()
	e.logger.Debug("selection reduced", "removed", removed, "files", e.selection.Len())
	return &SelectResult{
		Files:   e.selection.Files(),
		Ignored: len(paths) - removed,
	}, nil
}

// Clear empties the session selection.
func (e *Engine) Clear() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.selection = selection.WorkingSet{}
}

// Selection returns the selected files in export order.
func (e *Engine) Selection() []selection.ImageFile {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.selection.Files()
}

// ExportRoot returns the directory exports are currently written under.
func (e *Engine) ExportRoot() string {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.exportRoot()
}

// SetExportRoot overrides the export root for the rest of the session.
// The directory is created lazily by the first export.
func (e *Engine) SetExportRoot(root string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	abs, err := e.configPaths.ResolveRoot(root)
	if err != nil {
		return err
	}
	if exists, err := e.fs.Exists(abs); err != nil {
		return fmt.Errorf("failed to check export root: %w", err)
	} else if exists {
		info, err := e.fs.Stat(abs)
		if err != nil {
			return fmt.Errorf("failed to stat export root: %w", err)
		}
		if !info.IsDir() {
			return fmt.Errorf("%w: export root %s is not a directory", ErrValidation, abs)
		}
	}

	e.customRoot = abs
	e.logger.Info("export root changed", "root", abs)
	return nil
}

// ResetExportRoot restores the default export root.
func (e *Engine) ResetExportRoot() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.customRoot = ""
	e.logger.Info("export root reset", "root", e.configPaths.ExportRoot)
}
