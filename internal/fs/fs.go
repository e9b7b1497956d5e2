// Package fs provides the filesystem port used to resolve entries, with an OS-backed
// implementation and an in-memory one.
package fs

import (
	"os"
	"time"
)

// FileInfo holds file metadata as reported by a single stat call.
// A zero time means the filesystem did not report that timestamp.
type FileInfo struct {
	Name       string
	Mode       os.FileMode
	Size       int64
	ModTime    time.Time
	AccessTime time.Time
	BirthTime  time.Time
}

// IsDir reports whether the info describes a directory.
func (i FileInfo) IsDir() bool {
	return i.Mode.IsDir()
}

// IsRegular reports whether the info describes a regular file.
func (i FileInfo) IsRegular() bool {
	return i.Mode.IsRegular()
}

// DirEntry represents a single directory entry.
type DirEntry struct {
	Name  string
	IsDir bool
}

// FileSystem abstracts the two read-only operations entry resolution needs so callers
// can work with either the local filesystem or an in-memory tree.
type FileSystem interface {
	Stat(path string) (FileInfo, error)
	ReadDir(path string) ([]DirEntry, error)
}
