package scanner

import (
	"context"
	"errors"
	"io/fs"
)

// Error kinds surfaced by the scan engine.
var (
	ErrPathNotFound     = errors.New("path not found")
	ErrPermissionDenied = errors.New("permission denied")
	ErrReadInterrupted  = errors.New("read interrupted")
	ErrCancelled        = errors.New("scan cancelled")
)

// classify maps an OS-level error onto one of the scan error kinds.
// Anything unrecognized is treated as a mid-scan race (file deleted or
// modified between discovery and read).
func classify(err error) error {
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return ErrPathNotFound
	case errors.Is(err, fs.ErrPermission):
		return ErrPermissionDenied
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return ErrCancelled
	default:
		return ErrReadInterrupted
	}
}

func kindOf(err error) string {
	switch classify(err) {
	case ErrPathNotFound:
		return "not-found"
	case ErrPermissionDenied:
		return "permission-denied"
	case ErrCancelled:
		return "cancelled"
	default:
		return "read-interrupted"
	}
}
