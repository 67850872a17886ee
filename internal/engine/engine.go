// Package engine provides the core business logic for photobatch operations.
//
// The engine package is the orchestration layer between the presentation
// layer and the lower-level packages. It owns one export session: the
// current selection, the export root and the in-memory history ledger.
//
// Key components:
//   - Engine: session object that coordinates all operations
//   - Select/Add/Remove/Clear: manage the working set
//   - Preview: build a rename plan and report collisions without writing
//   - Execute/Export: copy files, optionally delete originals, record history
//   - Undo: reverse the most recent reversible export
package engine

import (
	"io"
	"log/slog"
	"sync"

	"github.com/danieljhkim/photobatch/internal/clock"
	"github.com/danieljhkim/photobatch/internal/config"
	"github.com/danieljhkim/photobatch/internal/fsops"
	"github.com/danieljhkim/photobatch/internal/hash"
	"github.com/danieljhkim/photobatch/internal/history"
	"github.com/danieljhkim/photobatch/internal/planner"
	"github.com/danieljhkim/photobatch/internal/selection"
)

// Engine orchestrates all photobatch operations for a single session.
// It is the main API surface called by the CLI.
//
// All methods are safe for concurrent use; operations are serialized so
// that an export and an undo never overlap.
type Engine struct {
	fs          fsops.FS
	hasher      hash.Hasher
	clock       clock.Clock
	configPaths config.Paths
	logger      *slog.Logger
	checker     *planner.CollisionChecker

	mu         sync.Mutex
	selection  selection.WorkingSet
	customRoot string
	ledger     *history.Ledger
}

// New creates a new Engine with the given dependencies.
// A nil logger discards all log output.
func New(
	fs fsops.FS,
	hasher hash.Hasher,
	clk clock.Clock,
	paths config.Paths,
	logger *slog.Logger,
) *Engine {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Engine{
		fs:          fs,
		hasher:      hasher,
		clock:       clk,
		configPaths: paths,
		logger:      logger,
		checker:     planner.NewCollisionChecker(fs),
		ledger:      history.NewLedger(),
	}
}

// exportRoot returns the effective export root. Caller must hold e.mu.
func (e *Engine) exportRoot() string {
	if e.customRoot != "" {
		return e.customRoot
	}
	return e.configPaths.ExportRoot
}
