// Package selection turns raw candidate paths into the ordered working set
// of image files that an export operates on.
//
// A file qualifies by its extension alone and no file is read from disk.
// Relative candidates are resolved against the working directory.
package selection

import (
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
)

var (
	// ErrNoInput indicates the candidate list itself was empty.
	ErrNoInput = errors.New("no input files")

	// ErrEmptySelection indicates candidates were given but none was an image.
	ErrEmptySelection = errors.New("no image files selected")
)

// SupportedExtensions lists the accepted image extensions, lower case
// and without the leading dot.
var SupportedExtensions = []string{"jpg", "jpeg", "png", "gif", "bmp", "webp", "tiff", "tif"}

var supported = func() map[string]bool {
	m := make(map[string]bool, len(SupportedExtensions))
	for _, ext := range SupportedExtensions {
		m["."+ext] = true
	}
	return m
}()

// ImageFile is a selected source image.
type ImageFile struct {
	// Path is the clean absolute source path
	Path string `json:"path"`

	// Name is the final path element
	Name string `json:"name"`

	// Ext is the extension with its leading dot, original case preserved
	Ext string `json:"ext"`
}

// NewImageFile derives an ImageFile from a path.
func NewImageFile(path string) ImageFile {
	name := filepath.Base(path)
	return ImageFile{
		Path: path,
		Name: name,
		Ext:  filepath.Ext(name),
	}
}

// IsSupported reports whether path has a supported image extension.
func IsSupported(path string) bool {
	return supported[strings.ToLower(filepath.Ext(path))]
}

// WorkingSet is an ordered, deduplicated list of image files.
// Values are never mutated; operations return a new WorkingSet.
type WorkingSet struct {
	files []ImageFile
}

// Validate filters candidates down to supported images, resolves them to
// clean absolute paths, removes duplicates and sorts by full path using
// byte-wise comparison. Relative candidates resolve against the working
// directory, so "a.jpg" and "./a.jpg" name the same file.
func Validate(paths []string) (WorkingSet, error) {
	if len(paths) == 0 {
		return WorkingSet{}, ErrNoInput
	}

	seen := make(map[string]bool, len(paths))
	kept := make([]string, 0, len(paths))
	for _, p := range paths {
		if !IsSupported(p) {
			continue
		}
		abs, err := filepath.Abs(p)
		if err != nil {
			return WorkingSet{}, fmt.Errorf("failed to resolve %q: %w", p, err)
		}
		if seen[abs] {
			continue
		}
		seen[abs] = true
		kept = append(kept, abs)
	}

	if len(kept) == 0 {
		return WorkingSet{}, ErrEmptySelection
	}

	sort.Strings(kept)

	files := make([]ImageFile, len(kept))
	for i, p := range kept {
		files[i] = NewImageFile(p)
	}
	return WorkingSet{files: files}, nil
}

// Len returns the number of files.
func (ws WorkingSet) Len() int {
	return len(ws.files)
}

// IsEmpty reports whether the set has no files.
func (ws WorkingSet) IsEmpty() bool {
	return len(ws.files) == 0
}

// Files returns a copy of the files in order.
func (ws WorkingSet) Files() []ImageFile {
	out := make([]ImageFile, len(ws.files))
	copy(out, ws.files)
	return out
}

// Paths returns the source paths in order.
func (ws WorkingSet) Paths() []string {
	out := make([]string, len(ws.files))
	for i, f := range ws.files {
		out[i] = f.Path
	}
	return out
}

// Without returns a new WorkingSet with the given paths removed. Relative
// paths are resolved the same way Validate resolves them. Unknown paths are
// ignored. Order of the remaining files is unchanged.
func (ws WorkingSet) Without(paths ...string) WorkingSet {
	drop := make(map[string]bool, len(paths))
	for _, p := range paths {
		drop[p] = true
		if abs, err := filepath.Abs(p); err == nil {
			drop[abs] = true
		}
	}

	files := make([]ImageFile, 0, len(ws.files))
	for _, f := range ws.files {
		if !drop[f.Path] {
			files = append(files, f)
		}
	}
	return WorkingSet{files: files}
}
