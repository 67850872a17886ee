package planner

import (
	"fmt"
	"strings"

	"github.com/danieljhkim/photobatch/internal/selection"
)

// Build generates a deterministic rename plan.
//
// Files are numbered 1..N in working set order and each target name is
// baseName + format suffix + the source extension, case preserved. Build is
// pure: identical inputs always yield an identical plan.
func Build(ws selection.WorkingSet, baseName string, format Format, destination string) (*RenamePlan, error) {
	baseName = strings.TrimSpace(baseName)
	if baseName == "" {
		return nil, ErrInvalidBaseName
	}
	if !format.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidFormat, format)
	}
	if ws.IsEmpty() {
		return nil, selection.ErrEmptySelection
	}

	plan := &RenamePlan{
		Destination: destination,
		BaseName:    baseName,
		Format:      format,
		Entries:     make([]Entry, 0, ws.Len()),
	}

	for i, f := range ws.Files() {
		index := i + 1
		plan.Entries = append(plan.Entries, Entry{
			Index:      index,
			SourcePath: f.Path,
			SourceName: f.Name,
			TargetName: baseName + format.Suffix(index) + f.Ext,
		})
	}

	return plan, nil
}
