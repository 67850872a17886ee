package engine

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/danieljhkim/photobatch/internal/history"
	"github.com/danieljhkim/photobatch/internal/planner"
	"github.com/stretchr/testify/require"
)

func exportTrip(t *testing.T, f *fixture, deleteOriginals bool) *ExportResult {
	t.Helper()
	result, err := f.engine.Export(context.Background(), &ExportRequest{
		BaseName:        "Trip",
		Format:          planner.FormatDash,
		DeleteOriginals: deleteOriginals,
	})
	require.NoError(t, err)
	return result
}

func TestExport_CopiesInPlanOrder(t *testing.T) {
	f := newFixture(t)
	f.selectTrip()
	mtime := time.Date(2020, 6, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, os.Chtimes(filepath.Join(f.srcDir, "b.PNG"), mtime, mtime))

	result := exportTrip(t, f, false)

	dest := f.dest("Trip")
	require.Equal(t, dest, result.Destination)
	require.Equal(t, 3, result.Planned)
	require.Equal(t, 3, result.Copied)
	require.Equal(t, 0, result.Deleted)
	require.Equal(t, int64(6), result.BytesCopied)
	require.Equal(t, []string{
		filepath.Join(dest, "Trip-1.jpg"),
		filepath.Join(dest, "Trip-2.PNG"),
		filepath.Join(dest, "Trip-3.jpg"),
	}, result.Written)
	require.NotEmpty(t, result.OperationID)
	require.True(t, result.Undoable())

	requireFileContent(t, filepath.Join(dest, "Trip-1.jpg"), "a")
	requireFileContent(t, filepath.Join(dest, "Trip-2.PNG"), "bb")
	requireFileContent(t, filepath.Join(dest, "Trip-3.jpg"), "ccc")

	info, err := os.Stat(filepath.Join(dest, "Trip-2.PNG"))
	require.NoError(t, err)
	require.True(t, info.ModTime().Equal(mtime))

	// Originals untouched
	requireFileContent(t, filepath.Join(f.srcDir, "a.jpg"), "a")

	// Selection is reset after a successful export
	require.Empty(t, f.engine.Selection())

	entries := f.engine.History()
	require.Len(t, entries, 1)
	require.Equal(t, result.OperationID, entries[0].ID)
	require.Equal(t, 3, entries[0].Files)
	require.Equal(t, history.StateCompleted, entries[0].State)
}

func TestExport_CollisionRefusesWithoutWrites(t *testing.T) {
	f := newFixture(t)
	f.selectTrip()
	dest := f.dest("Trip")
	require.NoError(t, os.MkdirAll(dest, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dest, "Trip-2.PNG"), []byte("old"), 0o644))

	result, err := f.engine.Export(context.Background(), &ExportRequest{BaseName: "Trip", Format: planner.FormatDash})
	require.ErrorIs(t, err, planner.ErrNameCollision)

	var collisionErr *planner.CollisionError
	require.ErrorAs(t, err, &collisionErr)
	require.Equal(t, []string{"Trip-2.PNG"}, collisionErr.Names())

	require.Equal(t, 0, result.Copied)
	require.Empty(t, f.engine.History())
	require.Equal(t, 0, f.fs.copyCalls)
	requireNotExist(t, filepath.Join(dest, "Trip-1.jpg"))
	requireFileContent(t, filepath.Join(dest, "Trip-2.PNG"), "old")

	// A refused export keeps the selection for another attempt
	require.Len(t, f.engine.Selection(), 3)
}

func TestExport_CopyFailureStopsAndRecordsPartialRun(t *testing.T) {
	f := newFixture(t)
	f.selectTrip()
	f.fs.failCopyAt = 2

	result, err := f.engine.Export(context.Background(), &ExportRequest{BaseName: "Trip", Format: planner.FormatDash})
	require.ErrorIs(t, err, ErrCopyFailure)
	require.ErrorIs(t, err, errInjected)

	var copyErr *CopyError
	require.ErrorAs(t, err, &copyErr)
	require.Equal(t, filepath.Join(f.srcDir, "b.PNG"), copyErr.Source)

	dest := f.dest("Trip")
	require.Equal(t, 1, result.Copied)
	require.Equal(t, []string{filepath.Join(dest, "Trip-1.jpg")}, result.Written)
	require.NotEmpty(t, result.OperationID)
	requireNotExist(t, filepath.Join(dest, "Trip-2.PNG"))
	requireNotExist(t, filepath.Join(dest, "Trip-3.jpg"))
	require.Equal(t, 2, f.fs.copyCalls)

	require.Len(t, f.engine.History(), 1)
	require.Len(t, f.engine.Selection(), 3)

	// The partial run can be undone
	undo, err := f.engine.Undo(context.Background())
	require.NoError(t, err)
	require.Equal(t, result.Written, undo.Removed)
	require.True(t, undo.DirectoryRemoved)
}

func TestExport_FirstCopyFailureRecordsNothing(t *testing.T) {
	f := newFixture(t)
	f.selectTrip()
	f.fs.failCopyAt = 1

	result, err := f.engine.Export(context.Background(), &ExportRequest{BaseName: "Trip", Format: planner.FormatDash})
	require.ErrorIs(t, err, ErrCopyFailure)
	require.Equal(t, 0, result.Copied)
	require.Empty(t, result.OperationID)
	require.Empty(t, f.engine.History())
	requireNotExist(t, f.dest("Trip"))
}

func TestExport_FirstCopyFailureKeepsExistingDestination(t *testing.T) {
	f := newFixture(t)
	f.selectTrip()
	require.NoError(t, os.MkdirAll(f.dest("Trip"), 0o755))
	f.fs.failCopyAt = 1

	_, err := f.engine.Export(context.Background(), &ExportRequest{BaseName: "Trip", Format: planner.FormatDash})
	require.ErrorIs(t, err, ErrCopyFailure)

	info, err := os.Stat(f.dest("Trip"))
	require.NoError(t, err)
	require.True(t, info.IsDir())
}

func TestExport_RelativeAliasesExportOnce(t *testing.T) {
	f := newFixture(t)
	src := f.writeSource("a.jpg", "a")

	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(f.srcDir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
	here, err := os.Getwd()
	require.NoError(t, err)

	selected, err := f.engine.Select([]string{"a.jpg", "./a.jpg", filepath.Join(here, "a.jpg")})
	require.NoError(t, err)
	require.Len(t, selected.Files, 1)
	require.Equal(t, 2, selected.Ignored)

	result, err := f.engine.Export(context.Background(), &ExportRequest{
		BaseName:        "Trip",
		Format:          planner.FormatDash,
		DeleteOriginals: true,
	})
	require.NoError(t, err)
	require.Equal(t, 1, result.Copied)
	require.Equal(t, 1, result.Deleted)
	requireFileContent(t, filepath.Join(f.dest("Trip"), "Trip-1.jpg"), "a")
	requireNotExist(t, src)
}

func TestExport_MissingSourceIsCopyFailure(t *testing.T) {
	f := newFixture(t)
	f.selectTrip()
	require.NoError(t, os.Remove(filepath.Join(f.srcDir, "c.jpg")))

	result, err := f.engine.Export(context.Background(), &ExportRequest{BaseName: "Trip", Format: planner.FormatDash})
	require.ErrorIs(t, err, ErrCopyFailure)
	require.Equal(t, 2, result.Copied)
	requireNotExist(t, filepath.Join(f.dest("Trip"), "Trip-3.jpg"))
}

func TestExport_DeleteOriginals(t *testing.T) {
	f := newFixture(t)
	f.selectTrip()

	result := exportTrip(t, f, true)
	require.Equal(t, 3, result.Copied)
	require.Equal(t, 3, result.Deleted)
	require.Empty(t, result.DeleteFailures)
	require.False(t, result.Undoable())

	requireNotExist(t, filepath.Join(f.srcDir, "a.jpg"))
	requireNotExist(t, filepath.Join(f.srcDir, "b.PNG"))
	requireNotExist(t, filepath.Join(f.srcDir, "c.jpg"))
	requireFileContent(t, filepath.Join(f.dest("Trip"), "Trip-3.jpg"), "ccc")

	entries := f.engine.History()
	require.Len(t, entries, 1)
	require.Equal(t, history.StateIrreversible, entries[0].State)
}

func TestExport_DeleteFailureDoesNotAbort(t *testing.T) {
	f := newFixture(t)
	f.selectTrip()
	stuck := filepath.Join(f.srcDir, "a.jpg")
	f.fs.removeErrs[stuck] = errInjected

	result := exportTrip(t, f, true)
	require.Equal(t, 3, result.Copied)
	require.Equal(t, 2, result.Deleted)
	require.Len(t, result.DeleteFailures, 1)
	require.Equal(t, stuck, result.DeleteFailures[0].Path)
	require.ErrorIs(t, result.DeleteFailures[0], errInjected)

	requireFileContent(t, stuck, "a")
	// History records the intent, so the export is still irreversible
	require.Equal(t, history.StateIrreversible, f.engine.History()[0].State)
}

func TestExport_DryRunWritesNothing(t *testing.T) {
	f := newFixture(t)
	f.selectTrip()

	result, err := f.engine.Export(context.Background(), &ExportRequest{
		BaseName: "Trip",
		Format:   planner.FormatUnderscore,
		DryRun:   true,
	})
	require.NoError(t, err)
	require.True(t, result.DryRun)
	require.Equal(t, 3, result.Planned)
	require.Equal(t, []string{"Trip_1.jpg", "Trip_2.PNG", "Trip_3.jpg"}, result.Plan.TargetNames())

	requireNotExist(t, f.root)
	require.Empty(t, f.engine.History())
	require.Len(t, f.engine.Selection(), 3)
}

func TestExecute_CanceledContext(t *testing.T) {
	f := newFixture(t)
	f.selectTrip()
	preview, err := f.engine.Preview(&PreviewRequest{BaseName: "Trip", Format: planner.FormatDash})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = f.engine.Execute(ctx, &ExecuteRequest{Plan: preview.Plan})
	require.ErrorIs(t, err, context.Canceled)
	require.Equal(t, 0, f.fs.copyCalls)
	requireNotExist(t, f.root)
}

func TestExecute_RejectsEmptyRequest(t *testing.T) {
	f := newFixture(t)

	_, err := f.engine.Execute(context.Background(), &ExecuteRequest{})
	require.ErrorIs(t, err, ErrValidation)

	_, err = f.engine.Execute(context.Background(), nil)
	require.ErrorIs(t, err, ErrValidation)
}

func TestExecute_RechecksCollisionsAfterPreview(t *testing.T) {
	f := newFixture(t)
	f.selectTrip()
	preview, err := f.engine.Preview(&PreviewRequest{BaseName: "Trip", Format: planner.FormatSpace})
	require.NoError(t, err)
	require.True(t, preview.Clear())

	// Someone else writes a target between preview and execute
	dest := f.dest("Trip")
	require.NoError(t, os.MkdirAll(dest, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dest, "Trip 3.jpg"), []byte("x"), 0o644))

	_, err = f.engine.Execute(context.Background(), &ExecuteRequest{Plan: preview.Plan})
	require.ErrorIs(t, err, planner.ErrNameCollision)
	require.Equal(t, 0, f.fs.copyCalls)
}
