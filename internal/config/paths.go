// Package config resolves where photobatch writes exported images.
//
// Exports land in {exportRoot}/{baseName}/. The export root defaults to an
// "exports" directory next to the photobatch executable and can be
// overridden with the PHOTOBATCH_EXPORT_ROOT environment variable or per
// session by the caller. Nothing is persisted.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// EnvExportRoot is the environment variable that overrides the default export root.
const EnvExportRoot = "PHOTOBATCH_EXPORT_ROOT"

// exportDirName is the directory created next to the executable by default.
const exportDirName = "exports"

// Paths contains the filesystem paths used by photobatch.
type Paths struct {
	// ExportRoot is the directory under which per-base-name folders are created
	ExportRoot string
}

// DefaultPaths returns the default paths for photobatch.
// Paths can be overridden with environment variables:
// - PHOTOBATCH_EXPORT_ROOT: Override the export root directory
func DefaultPaths() (*Paths, error) {
	if root := os.Getenv(EnvExportRoot); root != "" {
		abs, err := filepath.Abs(root)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve %s: %w", EnvExportRoot, err)
		}
		return &Paths{ExportRoot: abs}, nil
	}

	exe, err := os.Executable()
	if err != nil {
		return nil, fmt.Errorf("failed to locate executable: %w", err)
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}

	return &Paths{
		ExportRoot: filepath.Join(filepath.Dir(exe), exportDirName),
	}, nil
}

// ResolveRoot returns custom as an absolute path, or the default root if
// custom is empty.
func (p *Paths) ResolveRoot(custom string) (string, error) {
	if strings.TrimSpace(custom) == "" {
		return p.ExportRoot, nil
	}
	abs, err := filepath.Abs(custom)
	if err != nil {
		return "", fmt.Errorf("failed to resolve export root %q: %w", custom, err)
	}
	return abs, nil
}

// ExportDir returns the destination folder for a base name under root.
func ExportDir(root, baseName string) string {
	return filepath.Join(root, strings.TrimSpace(baseName))
}
