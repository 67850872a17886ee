package planner

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Format selects how the sequence number is joined to the base name.
type Format string

// Format constants
const (
	FormatParenthetical Format = "parenthetical" // Name (1).jpg
	FormatUnderscore    Format = "underscore"    // Name_1.jpg
	FormatDash          Format = "dash"          // Name-1.jpg
	FormatSpace         Format = "space"         // Name 1.jpg
)

// Formats returns all supported formats in display order.
func Formats() []Format {
	return []Format{FormatParenthetical, FormatUnderscore, FormatDash, FormatSpace}
}

// ParseFormat parses a format name. "parentheses" is accepted as an alias
// for parenthetical.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "parenthetical", "parentheses":
		return FormatParenthetical, nil
	case "underscore":
		return FormatUnderscore, nil
	case "dash":
		return FormatDash, nil
	case "space":
		return FormatSpace, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidFormat, s)
	}
}

// Valid reports whether f is one of the supported formats.
func (f Format) Valid() bool {
	switch f {
	case FormatParenthetical, FormatUnderscore, FormatDash, FormatSpace:
		return true
	}
	return false
}

// Suffix renders the separator and index for position i.
func (f Format) Suffix(i int) string {
	switch f {
	case FormatParenthetical:
		return fmt.Sprintf(" (%d)", i)
	case FormatUnderscore:
		return fmt.Sprintf("_%d", i)
	case FormatDash:
		return fmt.Sprintf("-%d", i)
	default:
		return fmt.Sprintf(" %d", i)
	}
}

// Example renders a sample file name, used by help output.
func (f Format) Example() string {
	return "Name" + f.Suffix(1) + ".jpg"
}

// RenamePlan is an ordered mapping of source files to target names inside
// a single destination directory.
type RenamePlan struct {
	// Destination is the resolved export directory (may not exist yet)
	Destination string `json:"destination"`

	// BaseName is the trimmed base name used to build target names
	BaseName string `json:"baseName"`

	// Format is the naming format used
	Format Format `json:"format"`

	// Entries is the ordered list of planned copies
	Entries []Entry `json:"entries"`
}

// Entry is a single planned copy.
type Entry struct {
	// Index is the 1-based sequence number
	Index int `json:"index"`

	// SourcePath is the path of the file to copy
	SourcePath string `json:"sourcePath"`

	// SourceName is the final element of SourcePath
	SourceName string `json:"sourceName"`

	// TargetName is the generated file name inside Destination
	TargetName string `json:"targetName"`
}

// Len returns the number of entries.
func (p *RenamePlan) Len() int {
	return len(p.Entries)
}

// TargetPath returns the absolute target path of an entry.
func (p *RenamePlan) TargetPath(e Entry) string {
	return filepath.Join(p.Destination, e.TargetName)
}

// TargetNames returns the target names in plan order.
func (p *RenamePlan) TargetNames() []string {
	names := make([]string, len(p.Entries))
	for i, e := range p.Entries {
		names[i] = e.TargetName
	}
	return names
}
