package entry

import (
	"context"
	"errors"
	"io/fs"
)

// Resolution errors. OS-level failures are returned as the underlying *fs.PathError.
var (
	// ErrUnknownEntryType indicates the path is neither a regular file nor a directory
	ErrUnknownEntryType = errors.New("unknown entry type")

	// ErrInvalidFileTime indicates a timestamp was not reported or predates the epoch
	ErrInvalidFileTime = errors.New("invalid file time")

	// ErrInvalidFileName indicates the path has no final component
	ErrInvalidFileName = errors.New("invalid file name")

	// ErrInvalidFilePath indicates the path cannot be expressed as a file URL
	ErrInvalidFilePath = errors.New("invalid file path")

	// ErrParentNotFound indicates the path has no parent component
	ErrParentNotFound = errors.New("parent not found")
)

// Kind labels an error for logs and metrics.
func Kind(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "canceled"
	case errors.Is(err, fs.ErrNotExist):
		return "not_found"
	case errors.Is(err, fs.ErrPermission):
		return "permission"
	case errors.Is(err, ErrUnknownEntryType):
		return "unknown_type"
	case errors.Is(err, ErrInvalidFileTime):
		return "invalid_time"
	case errors.Is(err, ErrInvalidFileName):
		return "invalid_name"
	case errors.Is(err, ErrInvalidFilePath):
		return "invalid_path"
	case errors.Is(err, ErrParentNotFound):
		return "parent_not_found"
	default:
		return "io"
	}
}
