package cli

import (
	"fmt"
	"strconv"

	"github.com/danieljhkim/photobatch/internal/engine"
	"github.com/danieljhkim/photobatch/internal/history"
	"github.com/danieljhkim/photobatch/internal/planner"
	"github.com/danieljhkim/photobatch/internal/selection"
)

// collisionPreviewLimit caps how many collisions are listed individually.
const collisionPreviewLimit = 10

func printPlan(plan *planner.RenamePlan) {
	PrintLabelValue("Destination", plan.Destination)
	PrintLabelValue("Format", fmt.Sprintf("%s (%s)", plan.Format, plan.Format.Example()))
	_, _ = fmt.Fprintln(stdout)

	rows := make([][]string, 0, plan.Len())
	for _, e := range plan.Entries {
		rows = append(rows, []string{strconv.Itoa(e.Index), e.SourceName, e.TargetName})
	}
	PrintTable([]string{"#", "Source", "Target"}, rows)
}

func printCollisions(collisions []planner.Collision) {
	PrintSection("Name Collisions")
	for i, c := range collisions {
		if i == collisionPreviewLimit {
			PrintError(fmt.Sprintf("... and %d more", len(collisions)-collisionPreviewLimit))
			break
		}
		PrintError(fmt.Sprintf("%s: %s", c.Name, c.Reason))
	}
	_, _ = fmt.Fprintln(stdout)
	PrintWarning("Choose a different name or destination.")
}

func printSelection(files []selection.ImageFile) {
	if len(files) == 0 {
		PrintEmptyState("No images selected")
		return
	}
	rows := make([][]string, 0, len(files))
	for i, f := range files {
		rows = append(rows, []string{strconv.Itoa(i + 1), f.Name, f.Path})
	}
	PrintTable([]string{"#", "Name", "Path"}, rows)
}

func printExportResult(result *engine.ExportResult) {
	verb := "Exported"
	if result.OriginalsDeleted {
		verb = "Exported and deleted"
	}
	PrintSuccess(fmt.Sprintf("%s %s (%s)", verb,
		PrintCount(result.Copied, "image", "images"), formatBytes(result.BytesCopied)))
	PrintLabelValue("Destination", result.Destination)
	if result.OperationID != "" {
		PrintLabelValue("Operation", result.OperationID)
	}

	if len(result.DeleteFailures) > 0 {
		PrintWarning(fmt.Sprintf("Could not delete %s:",
			PrintCount(len(result.DeleteFailures), "original", "originals")))
		for _, f := range result.DeleteFailures {
			PrintError(fmt.Sprintf("%s: %s", f.Path, f.Reason))
		}
	}
	if result.OriginalsDeleted && result.OperationID != "" {
		PrintWarning("Originals were deleted; this export cannot be undone.")
	}
}

func printPartialExport(result *engine.ExportResult) {
	if result == nil || result.Copied == 0 {
		return
	}
	PrintWarning(fmt.Sprintf("Export stopped after %d of %d images",
		result.Copied, result.Planned))
	PrintLabelValue("Destination", result.Destination)
	if result.Undoable() {
		PrintInfo("  Use 'undo' to remove the files that were written.")
	}
}

func printUndoResult(result *engine.UndoResult) {
	PrintSuccess(fmt.Sprintf("Undid export %s: removed %s",
		result.OperationID, PrintCount(len(result.Removed), "file", "files")))
	if len(result.Missing) > 0 {
		PrintWarning(fmt.Sprintf("%s already gone:", PrintCount(len(result.Missing), "file was", "files were")))
		PrintList(result.Missing, 1)
	}
	if len(result.Modified) > 0 {
		PrintWarning(fmt.Sprintf("%s changed after export and were removed anyway:",
			PrintCount(len(result.Modified), "file", "files")))
		PrintList(result.Modified, 1)
	}
	if result.DirectoryRemoved {
		PrintLabelValue("Removed folder", result.Destination)
	}
}

func printHistory(entries []engine.HistoryEntry) {
	if len(entries) == 0 {
		PrintEmptyState("No exports this session")
		return
	}
	rows := make([][]string, 0, len(entries))
	for i := len(entries) - 1; i >= 0; i-- {
		e := entries[i]
		state := string(e.State)
		if e.State == history.StateIrreversible {
			state = "irreversible (originals deleted)"
		}
		rows = append(rows, []string{
			e.ID,
			formatAge(e.Timestamp),
			strconv.Itoa(e.Files),
			state,
			e.Destination,
		})
	}
	PrintTable([]string{"Operation", "When", "Files", "State", "Destination"}, rows)
}
