// Package scanner implements the staged duplicate-detection pipeline:
// size bucketing, a bounded-prefix hash prefilter, full-content hashing,
// and byte-by-byte confirmation of every hash-equal pair. The engine only
// reads the filesystem; acting on duplicates is the caller's business.
package scanner

import (
	"context"
	"errors"
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"

	"github.com/substantialcattle5/dupescan/internal/config"
	"github.com/substantialcattle5/dupescan/internal/enumerate"
	"github.com/substantialcattle5/dupescan/internal/hashing"
)

// Scanner runs duplicate scans with a fixed configuration. Safe to reuse
// across scans; each Start call owns its own state.
type Scanner struct {
	cfg  config.ScanConfig
	algo hashing.Algorithm
}

// New validates the configuration and builds a Scanner.
func New(cfg config.ScanConfig) (*Scanner, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	algo, err := hashing.Parse(cfg.Algorithm)
	if err != nil {
		return nil, err
	}
	return &Scanner{cfg: cfg, algo: algo}, nil
}

// Scan is a cancellable in-flight scan.
type Scan struct {
	events chan ProgressEvent
	cancel context.CancelFunc
	done   chan struct{}

	result *Result
	err    error
}

// Events streams progress. The channel is closed when the scan finishes;
// consumers that lag miss intermediate events, never the completion.
func (sc *Scan) Events() <-chan ProgressEvent {
	return sc.events
}

// Cancel requests a best-effort stop. In-flight reads complete; the
// result from Wait holds only fully confirmed duplicate sets.
func (sc *Scan) Cancel() {
	sc.cancel()
}

// Wait blocks until the scan finishes and returns the result. A cancelled
// scan returns its partial result together with ErrCancelled.
func (sc *Scan) Wait() (*Result, error) {
	<-sc.done
	return sc.result, sc.err
}

// Start validates the roots and launches the pipeline. A root that cannot
// be read is a configuration error and fails here; failures on files
// inside a root merely become warnings during the scan.
func (s *Scanner) Start(ctx context.Context, roots []string) (*Scan, error) {
	if len(roots) == 0 {
		return nil, errors.New("at least one root path is required")
	}
	for _, root := range roots {
		info, err := os.Stat(root)
		if err != nil {
			return nil, fmt.Errorf("root %s: %w: %v", root, classify(err), err)
		}
		if !info.IsDir() {
			return nil, fmt.Errorf("root %s is not a directory", root)
		}
	}

	ctx, cancel := context.WithCancel(ctx)
	state := newScanContext()
	scan := &Scan{
		events: state.events,
		cancel: cancel,
		done:   make(chan struct{}),
	}

	go func() {
		defer close(scan.done)
		defer close(state.events)
		defer cancel()
		scan.result, scan.err = s.run(ctx, state, roots)
	}()

	return scan, nil
}

// Scan runs a complete scan synchronously, discarding progress events.
func (s *Scanner) Scan(ctx context.Context, roots []string) (*Result, error) {
	scan, err := s.Start(ctx, roots)
	if err != nil {
		return nil, err
	}
	for range scan.Events() {
	}
	return scan.Wait()
}

// run drives the pipeline: enumerate → size bucket → partial hash → full
// hash → byte confirmation → aggregate. Singleton groups are pruned after
// every stage, which is what keeps most files from ever being read fully.
func (s *Scanner) run(ctx context.Context, state *scanContext, roots []string) (*Result, error) {
	entries, err := s.enumerateStage(ctx, state, roots)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return state.result(nil, true), ErrCancelled
		}
		return nil, err
	}
	log.Debugf("enumerated %d candidate files under %d roots", len(entries), len(roots))

	groups := bucketBySize(entries)
	log.Debugf("%d size groups with 2+ members", len(groups))

	groups = s.partialStage(ctx, state, groups)
	if ctx.Err() != nil {
		return state.result(nil, true), ErrCancelled
	}
	log.Debugf("%d groups after partial-hash prefilter", len(groups))

	groups = s.fullStage(ctx, state, groups)
	if ctx.Err() != nil {
		return state.result(nil, true), ErrCancelled
	}
	log.Debugf("%d groups after full hashing", len(groups))

	sets, cancelled := s.confirmStage(ctx, state, groups)
	sortSets(sets, ParseSortPolicy(s.cfg.SortBy))

	result := state.result(sets, cancelled)
	if cancelled {
		return result, ErrCancelled
	}
	return result, nil
}

// enumerateStage walks the roots and materializes the candidate list.
// Sizes are cheap metadata reads, so unlike the hashing stages the whole
// list is held in memory for bucketing.
func (s *Scanner) enumerateStage(ctx context.Context, state *scanContext, roots []string) ([]*fileEntry, error) {
	state.startPhase(PhaseEnumerate, 0)

	policy := enumerate.Policy{
		FollowSymlinks: s.cfg.FollowSymlinks,
		SkipHidden:     s.cfg.SkipHidden,
		MinSize:        s.cfg.MinSize,
	}

	var entries []*fileEntry
	err := enumerate.Walk(ctx, roots, policy,
		func(e enumerate.Entry) {
			entries = append(entries, &fileEntry{path: e.Path, size: e.Size})
			state.filesScanned.Add(1)
			state.fileDone()
		},
		func(path string, err error) {
			state.warn(path, PhaseEnumerate, err)
		},
	)
	if err != nil {
		return nil, err
	}
	return entries, nil
}
