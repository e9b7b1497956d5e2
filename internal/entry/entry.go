// Package entry resolves filesystem paths into Entry records for the file browser.
package entry

import (
	"fmt"
)

// Type discriminates files from directories.
type Type int

// Entry types.
const (
	TypeFile Type = iota
	TypeDirectory
)

// String returns the wire name of the type.
func (t Type) String() string {
	switch t {
	case TypeFile:
		return "file"
	case TypeDirectory:
		return "directory"
	default:
		return fmt.Sprintf("Type(%d)", int(t))
	}
}

// MarshalText implements encoding.TextMarshaler.
func (t Type) MarshalText() ([]byte, error) {
	switch t {
	case TypeFile, TypeDirectory:
		return []byte(t.String()), nil
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownEntryType, int(t))
	}
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *Type) UnmarshalText(text []byte) error {
	switch string(text) {
	case "file":
		*t = TypeFile
	case "directory":
		*t = TypeDirectory
	default:
		return fmt.Errorf("%w: %q", ErrUnknownEntryType, text)
	}
	return nil
}

// Entry is a metadata snapshot of one path at the moment it was resolved.
// Dates are milliseconds since the Unix epoch.
type Entry struct {
	DateCreated    int64  `json:"dateCreated"`
	DateLastOpened int64  `json:"dateLastOpened"`
	DateModified   int64  `json:"dateModified"`
	Name           string `json:"name"`
	Path           string `json:"path"`
	Size           int64  `json:"size"`
	Type           Type   `json:"type"`
	URL            string `json:"url"`
}

// IsDir reports whether the entry is a directory.
func (e Entry) IsDir() bool {
	return e.Type == TypeDirectory
}

// Node is an entry with its resolved children, used for hierarchies.
type Node struct {
	Entry
	Children []*Node `json:"children,omitempty"`
}

// Result is the outcome of resolving one path in a batch.
type Result struct {
	Path  string
	Entry Entry
	Err   error
}

// OK reports whether the path resolved.
func (r Result) OK() bool {
	return r.Err == nil
}
