package engine

import (
	"context"
	"fmt"

	"github.com/danieljhkim/photobatch/internal/history"
	"github.com/danieljhkim/photobatch/internal/selection"
)

// Execute copies every entry of a plan into its destination directory and
// optionally deletes the originals.
//
// The process:
//  1. Re-check the plan for collisions (refuse with zero writes)
//  2. Create the destination directory
//  3. Copy each entry in plan order, stopping at the first failure
//  4. Delete each original after its copy succeeded, if requested
//  5. Record a history operation if anything was copied
//
// On a copy failure the partial result is returned together with a
// *CopyError. Delete failures never abort; they are listed in the result.
func (e *Engine) Execute(ctx context.Context, req *ExecuteRequest) (*ExportResult, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.executeLocked(ctx, req)
}

// Export plans the current selection and executes it in one step.
// On full success the selection is cleared, ready for the next batch.
func (e *Engine) Export(ctx context.Context, req *ExportRequest) (*ExportResult, error) {
	if req == nil {
		return nil, fmt.Errorf("%w: request is required", ErrValidation)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	plan, err := e.planLocked(req.BaseName, req.Format)
	if err != nil {
		return nil, err
	}

	if req.DryRun {
		result := &ExportResult{
			Destination:      plan.Destination,
			Planned:          plan.Len(),
			OriginalsDeleted: req.DeleteOriginals,
			DryRun:           true,
			Plan:             plan,
		}
		return result, e.checker.Check(plan)
	}

	result, err := e.executeLocked(ctx, &ExecuteRequest{
		Plan:            plan,
		DeleteOriginals: req.DeleteOriginals,
	})
	if err != nil {
		return result, err
	}

	e.selection = selection.WorkingSet{}
	return result, nil
}

// executeLocked runs a plan. Caller must hold e.mu.
func (e *Engine) executeLocked(ctx context.Context, req *ExecuteRequest) (*ExportResult, error) {
	if req == nil || req.Plan == nil {
		return nil, fmt.Errorf("%w: plan is required", ErrValidation)
	}
	plan := req.Plan
	if plan.Len() == 0 {
		return nil, selection.ErrEmptySelection
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	result := &ExportResult{
		Destination:      plan.Destination,
		Planned:          plan.Len(),
		OriginalsDeleted: req.DeleteOriginals,
		Plan:             plan,
	}

	// Step 1: Re-check collisions, the destination may have changed since preview
	if err := e.checker.Check(plan); err != nil {
		e.logger.Info("export refused", "destination", plan.Destination, "error", err)
		return result, err
	}

	// Step 2: Create destination
	existed, err := e.fs.Exists(plan.Destination)
	if err != nil {
		return result, fmt.Errorf("failed to check destination %s: %w", plan.Destination, err)
	}
	if err := e.fs.MkdirAll(plan.Destination, 0o755); err != nil {
		return result, fmt.Errorf("failed to create destination %s: %w", plan.Destination, err)
	}

	e.logger.Info("export started",
		"destination", plan.Destination,
		"files", plan.Len(),
		"deleteOriginals", req.DeleteOriginals)

	// Steps 3 and 4: Copy, then delete the original
	checksums := make(map[string]string, plan.Len())
	var copyErr error
	for _, entry := range plan.Entries {
		target := plan.TargetPath(entry)

		n, err := e.fs.CopyFile(entry.SourcePath, target)
		if err != nil {
			copyErr = &CopyError{Source: entry.SourcePath, Target: target, Err: err}
			e.logger.Error("copy failed", "source", entry.SourcePath, "target", target, "error", err)
			break
		}

		result.Copied++
		result.Written = append(result.Written, target)
		result.BytesCopied += n

		if sum, err := e.hasher.HashFile(target); err != nil {
			e.logger.Debug("failed to hash exported file", "path", target, "error", err)
		} else {
			checksums[target] = sum
		}

		if !req.DeleteOriginals {
			continue
		}
		if err := e.fs.Remove(entry.SourcePath); err != nil {
			result.DeleteFailures = append(result.DeleteFailures, DeleteFailure{
				Path:   entry.SourcePath,
				Reason: err.Error(),
				Err:    err,
			})
			e.logger.Warn("failed to delete original", "path", entry.SourcePath, "error", err)
			continue
		}
		result.Deleted++
	}

	// A destination created here and never written to is unreachable by undo
	if result.Copied == 0 && !existed {
		e.removeIfEmpty(plan.Destination)
	}

	// Step 5: Record history
	if result.Copied > 0 {
		op, err := history.NewOperation(plan.Destination, result.Written, checksums, e.clock.Now(), req.DeleteOriginals)
		if err != nil {
			if copyErr != nil {
				return result, copyErr
			}
			return result, fmt.Errorf("failed to record export: %w", err)
		}
		e.ledger.Push(op)
		result.OperationID = op.ID
	}

	e.logger.Info("export finished",
		"destination", plan.Destination,
		"copied", result.Copied,
		"deleted", result.Deleted,
		"deleteFailures", len(result.DeleteFailures),
		"operation", result.OperationID)

	return result, copyErr
}

// removeIfEmpty deletes dir when it holds no entries. Failures are logged.
func (e *Engine) removeIfEmpty(dir string) {
	empty, err := e.fs.IsEmptyDir(dir)
	if err != nil || !empty {
		return
	}
	if err := e.fs.Remove(dir); err != nil {
		e.logger.Warn("failed to remove empty destination", "path", dir, "error", err)
	}
}
