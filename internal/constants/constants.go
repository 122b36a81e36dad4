package constants

// Scan defaults
const (
	// DefaultPartialReadSize is the number of leading bytes hashed during
	// the prefilter stage. Files at or below this size are fully consumed
	// by the partial read and never read a second time.
	DefaultPartialReadSize = 64 * 1024

	// DefaultMinFileSize excludes empty files, which are trivially
	// identical and never meaningful duplicates.
	DefaultMinFileSize = 1

	// CompareBufferSize is the chunk size used for byte-by-byte
	// confirmation of hash-equal files.
	CompareBufferSize = 64 * 1024
)

// Display constants
const (
	HashDisplayLength = 12 // Length of digest to display in output
)

// Config file
const (
	DefaultConfigFileName = ".dupescan.yaml"
)

// File permissions
const (
	StandardDirPerms  = 0o755 // Standard directory permissions
	StandardFilePerms = 0o644 // Standard file permissions
)
