// Package fsops provides filesystem operations with safety guarantees.
//
// All filesystem access in photobatch goes through the FS interface so the
// export engine can be exercised against fakes in tests.
//
// Key features:
//   - Exclusive-create copies that never overwrite an existing target
//   - Modification time and permission bits preserved on copy
//   - Identifier validation for names used as directory components
//   - Testable via the FS interface
package fsops

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// FS provides an abstraction for filesystem operations.
// All filesystem mutations in photobatch must go through this interface.
type FS interface {
	// Stat returns file info, following symlinks.
	Stat(path string) (os.FileInfo, error)

	// Exists checks if a path exists.
	Exists(path string) (bool, error)

	// MkdirAll creates a directory and all parent directories.
	MkdirAll(path string, perm os.FileMode) error

	// Remove removes a file or empty directory.
	Remove(path string) error

	// CopyFile copies a regular file from src to dst and returns the number
	// of bytes written. dst must not exist.
	CopyFile(src, dst string) (int64, error)

	// IsEmptyDir reports whether path is a directory with no entries.
	IsEmptyDir(path string) (bool, error)

	// ValidateIdentifier validates a single path component for safety.
	ValidateIdentifier(id string) error
}

// RealFS implements FS using actual OS operations.
type RealFS struct{}

// NewRealFS creates a new RealFS.
func NewRealFS() *RealFS {
	return &RealFS{}
}

// Stat returns file info, following symlinks.
func (fs *RealFS) Stat(path string) (os.FileInfo, error) {
	return os.Stat(path)
}

// Exists checks if a path exists. A dangling symlink counts as existing.
func (fs *RealFS) Exists(path string) (bool, error) {
	_, err := os.Lstat(path)
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, err
}

// MkdirAll creates a directory and all parent directories.
func (fs *RealFS) MkdirAll(path string, perm os.FileMode) error {
	return os.MkdirAll(path, perm)
}

// Remove removes a file or empty directory.
func (fs *RealFS) Remove(path string) error {
	return os.Remove(path)
}

// CopyFile copies a single regular file from src to dst.
//
// The destination is created with O_EXCL, so a file that appeared after
// planning is reported as an error instead of being overwritten. On any
// failure the partially written destination is removed. The source's
// permission bits and modification time are carried over.
func (fs *RealFS) CopyFile(src, dst string) (int64, error) {
	srcInfo, err := os.Stat(src)
	if err != nil {
		return 0, fmt.Errorf("failed to stat source: %w", err)
	}
	if !srcInfo.Mode().IsRegular() {
		return 0, fmt.Errorf("source %q is not a regular file", src)
	}

	srcFile, err := os.Open(src)
	if err != nil {
		return 0, fmt.Errorf("failed to open source: %w", err)
	}
	defer func() {
		_ = srcFile.Close()
	}()

	dstFile, err := os.OpenFile(dst, os.O_CREATE|os.O_EXCL|os.O_WRONLY, srcInfo.Mode().Perm())
	if err != nil {
		return 0, fmt.Errorf("failed to create destination: %w", err)
	}

	written, err := io.Copy(dstFile, srcFile)
	if err == nil {
		err = dstFile.Sync()
	}
	if closeErr := dstFile.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		_ = os.Remove(dst)
		return 0, fmt.Errorf("failed to copy file contents: %w", err)
	}

	mtime := srcInfo.ModTime()
	if err := os.Chtimes(dst, mtime, mtime); err != nil {
		_ = os.Remove(dst)
		return 0, fmt.Errorf("failed to preserve modification time: %w", err)
	}

	return written, nil
}

// IsEmptyDir reports whether path is a directory with no entries.
// A missing path is not an error and reports false.
func (fs *RealFS) IsEmptyDir(path string) (bool, error) {
	dir, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	defer func() {
		_ = dir.Close()
	}()

	info, err := dir.Stat()
	if err != nil {
		return false, err
	}
	if !info.IsDir() {
		return false, nil
	}

	_, err = dir.Readdirnames(1)
	if errors.Is(err, io.EOF) {
		return true, nil
	}
	return false, err
}

// ValidateIdentifier validates an identifier (e.g. a base name used as the
// export folder) for safety. Returns an error if the identifier contains path
// separators or is a traversal component.
func (fs *RealFS) ValidateIdentifier(id string) error {
	if id == "" {
		return fmt.Errorf("invalid identifier: empty")
	}

	if strings.Contains(id, string(filepath.Separator)) || strings.Contains(id, "/") || strings.Contains(id, "\\") {
		return fmt.Errorf("invalid identifier: must not contain path separators")
	}

	if id == "." || id == ".." {
		return fmt.Errorf("invalid identifier: path traversal not allowed")
	}

	if strings.ContainsRune(id, 0) {
		return fmt.Errorf("invalid identifier: contains NUL byte")
	}

	return nil
}
