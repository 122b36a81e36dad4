package config

import (
	"fmt"
	"runtime"

	"github.com/substantialcattle5/dupescan/internal/constants"
	"github.com/substantialcattle5/dupescan/internal/hashing"
)

// ScanConfig holds every knob of a duplicate scan. The zero value is not
// usable; start from DefaultScanConfig.
type ScanConfig struct {
	// FollowSymlinks makes the enumerator descend into symlinked
	// directories and hash symlinked files.
	FollowSymlinks bool `yaml:"follow_symlinks"`

	// SkipHidden excludes dot-files and dot-directories.
	SkipHidden bool `yaml:"skip_hidden"`

	// MinSize excludes files smaller than this many bytes. Empty files
	// are always excluded regardless of this value.
	MinSize int64 `yaml:"min_size"`

	// PartialReadSize is the prefix length hashed by the prefilter stage.
	PartialReadSize int64 `yaml:"partial_read_size"`

	// WorkerCount bounds the hashing worker pool. Zero means one worker
	// per logical CPU.
	WorkerCount int `yaml:"worker_count"`

	// Algorithm selects the digest backend.
	Algorithm string `yaml:"algorithm"`

	// SortBy orders the final duplicate sets: reclaimable, size or count.
	SortBy string `yaml:"sort_by"`
}

// DefaultScanConfig returns the documented defaults.
func DefaultScanConfig() ScanConfig {
	return ScanConfig{
		FollowSymlinks:  false,
		SkipHidden:      false,
		MinSize:         constants.DefaultMinFileSize,
		PartialReadSize: constants.DefaultPartialReadSize,
		WorkerCount:     runtime.NumCPU(),
		Algorithm:       string(hashing.AlgorithmXXHash),
		SortBy:          "reclaimable",
	}
}

// Validate normalizes zero values and rejects settings the pipeline
// cannot run with.
func (c *ScanConfig) Validate() error {
	if c.PartialReadSize <= 0 {
		return fmt.Errorf("partial_read_size must be positive, got %d", c.PartialReadSize)
	}
	if c.MinSize < 0 {
		return fmt.Errorf("min_size must not be negative, got %d", c.MinSize)
	}
	if c.WorkerCount < 0 {
		return fmt.Errorf("worker_count must not be negative, got %d", c.WorkerCount)
	}
	if c.WorkerCount == 0 {
		c.WorkerCount = runtime.NumCPU()
	}
	if _, err := hashing.Parse(c.Algorithm); err != nil {
		return err
	}
	return nil
}
