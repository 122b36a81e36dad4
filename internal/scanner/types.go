package scanner

// Phase identifies a pipeline stage in progress events and warnings.
type Phase string

const (
	PhaseEnumerate   Phase = "enumerate"
	PhasePartialHash Phase = "partial-hash"
	PhaseFullHash    Phase = "full-hash"
	PhaseConfirm     Phase = "confirm"
)

// fileEntry tracks a candidate file through the pipeline. Each entry is
// owned by the scan that discovered it and is hashed by exactly one worker
// per stage.
type fileEntry struct {
	path string
	size int64

	partialDigest string
	fullDigest    string

	// fullyHashed is set when the partial read consumed the whole file,
	// in which case partialDigest covers the full content and the file
	// needs no second read.
	fullyHashed bool

	// failed entries carry a warning and drop out of their group.
	failed bool
}

// DuplicateSet is a confirmed group of byte-identical files. Paths keep
// the enumerator's discovery order.
type DuplicateSet struct {
	Digest string   `json:"digest"`
	Size   int64    `json:"size"`
	Paths  []string `json:"paths"`
}

// Reclaimable is the space freed by keeping a single copy.
func (s *DuplicateSet) Reclaimable() int64 {
	if len(s.Paths) < 2 {
		return 0
	}
	return int64(len(s.Paths)-1) * s.Size
}

// Warning records a file that was skipped at some stage, and why.
type Warning struct {
	Path   string `json:"path"`
	Phase  Phase  `json:"phase"`
	Kind   string `json:"kind"`
	Reason string `json:"reason"`
}

// Stats summarizes a completed (or cancelled) scan.
type Stats struct {
	FilesScanned     int64     `json:"files_scanned"`
	BytesRead        int64     `json:"bytes_read"`
	DuplicateFiles   int       `json:"duplicate_files"`
	DuplicateSets    int       `json:"duplicate_sets"`
	ReclaimableBytes int64     `json:"reclaimable_bytes"`
	SkippedFiles     int       `json:"skipped_files"`
	Warnings         []Warning `json:"warnings,omitempty"`
}

// Result is the final output of a scan. When Cancelled is set, Sets holds
// only the sets that were fully confirmed before cancellation.
type Result struct {
	Sets      []DuplicateSet `json:"sets"`
	Stats     Stats          `json:"stats"`
	Cancelled bool           `json:"cancelled"`
}

// ProgressEvent reports pipeline progress. FilesProcessed and FilesTotal
// are scoped to the current phase; BytesRead is cumulative.
type ProgressEvent struct {
	Phase          Phase
	FilesProcessed int64
	FilesTotal     int64
	BytesRead      int64
}
