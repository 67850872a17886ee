package cli

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/danieljhkim/photobatch/internal/clock"
	"github.com/danieljhkim/photobatch/internal/config"
	"github.com/danieljhkim/photobatch/internal/engine"
	"github.com/danieljhkim/photobatch/internal/fsops"
	"github.com/danieljhkim/photobatch/internal/hash"
	"github.com/danieljhkim/photobatch/internal/planner"
)

// newEngine creates a new engine with real implementations of all dependencies.
func newEngine() (*engine.Engine, error) {
	// Get default paths
	paths, err := config.DefaultPaths()
	if err != nil {
		return nil, fmt.Errorf("failed to get config paths: %w", err)
	}

	// Create real implementations
	fs := fsops.NewRealFS()
	hasher := hash.NewSHA256Hasher()
	clk := &clock.RealClock{}

	// Create engine
	return engine.New(fs, hasher, clk, *paths, newLogger()), nil
}

// newLogger creates the diagnostic logger. Diagnostics go to stderr so
// they never mix with --json output.
func newLogger() *slog.Logger {
	level := slog.LevelError
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))
}

// batchOptions holds the naming flags shared by preview and export.
type batchOptions struct {
	name   string
	format string
	dest   string
}

// prepare selects files and applies the destination override.
func (o *batchOptions) prepare(eng *engine.Engine, files []string) (planner.Format, error) {
	format, err := planner.ParseFormat(o.format)
	if err != nil {
		return "", err
	}
	if o.dest != "" {
		if err := eng.SetExportRoot(o.dest); err != nil {
			return "", err
		}
	}
	result, err := eng.Select(files)
	if err != nil {
		return "", err
	}
	if result.Ignored > 0 && !jsonOutput {
		PrintWarning(fmt.Sprintf("Ignored %s that are not supported images or are duplicates",
			PrintCount(result.Ignored, "path", "paths")))
	}
	return format, nil
}

// formatJSON formats a value as JSON.
func formatJSON(v interface{}) (string, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// formatError formats an error for display.
func formatError(err error) string {
	return errorColor.Sprintf("Error: %v", err)
}

// outputJSON outputs a value as JSON to stdout.
func outputJSON(v interface{}) error {
	enc := json.NewEncoder(stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
