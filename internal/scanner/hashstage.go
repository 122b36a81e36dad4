package scanner

import (
	"context"
	"fmt"
	"io"
	"os"

	log "github.com/sirupsen/logrus"

	"github.com/substantialcattle5/dupescan/internal/hashing"
)

// hashWriter adapts a hashing.Hasher to io.Writer for io.Copy.
type hashWriter struct {
	h hashing.Hasher
}

func (w *hashWriter) Write(p []byte) (int, error) {
	w.h.Update(p)
	return len(p), nil
}

// partialStage computes the prefix digest for every surviving candidate
// and regroups by (size, partial digest). Files fully consumed by the
// prefix read are flagged so the full-hash stage never reads them again.
func (s *Scanner) partialStage(ctx context.Context, state *scanContext, groups [][]*fileEntry) [][]*fileEntry {
	members := flatten(groups)
	state.startPhase(PhasePartialHash, int64(len(members)))

	runPool(ctx, s.cfg.WorkerCount, members, func(entry *fileEntry) {
		if err := s.partialHash(state, entry); err != nil {
			entry.failed = true
			state.warn(entry.path, PhasePartialHash, err)
			log.Debugf("partial hash failed for %s: %v", entry.path, err)
		}
		state.fileDone()
	})

	return regroup(groups, func(e *fileEntry) string { return e.partialDigest })
}

func (s *Scanner) partialHash(state *scanContext, entry *fileEntry) error {
	file, err := os.Open(entry.path)
	if err != nil {
		return fmt.Errorf("opening file: %w", err)
	}
	defer file.Close()

	hasher, err := hashing.New(s.algo)
	if err != nil {
		return err
	}

	n, err := io.Copy(&hashWriter{h: hasher}, io.LimitReader(file, s.cfg.PartialReadSize))
	state.addBytes(n)
	if err != nil {
		return fmt.Errorf("reading prefix: %w", err)
	}

	entry.partialDigest = hasher.Finalize()
	if entry.size <= s.cfg.PartialReadSize {
		// The prefix read consumed the whole file: the partial digest
		// already covers the full content.
		entry.fullyHashed = true
		entry.fullDigest = entry.partialDigest
	}
	return nil
}

// fullStage digests the complete content of every member the partial
// stage did not already consume, then regroups by (size, full digest).
func (s *Scanner) fullStage(ctx context.Context, state *scanContext, groups [][]*fileEntry) [][]*fileEntry {
	var pending []*fileEntry
	for _, entry := range flatten(groups) {
		if !entry.fullyHashed {
			pending = append(pending, entry)
		}
	}
	state.startPhase(PhaseFullHash, int64(len(pending)))

	runPool(ctx, s.cfg.WorkerCount, pending, func(entry *fileEntry) {
		if err := s.fullHash(state, entry); err != nil {
			entry.failed = true
			state.warn(entry.path, PhaseFullHash, err)
			log.Debugf("full hash failed for %s: %v", entry.path, err)
		}
		state.fileDone()
	})

	return regroup(groups, func(e *fileEntry) string { return e.fullDigest })
}

func (s *Scanner) fullHash(state *scanContext, entry *fileEntry) error {
	file, err := os.Open(entry.path)
	if err != nil {
		return fmt.Errorf("opening file: %w", err)
	}
	defer file.Close()

	hasher, err := hashing.New(s.algo)
	if err != nil {
		return err
	}

	n, err := io.Copy(&hashWriter{h: hasher}, file)
	state.addBytes(n)
	if err != nil {
		return fmt.Errorf("reading content: %w", err)
	}

	entry.fullDigest = hasher.Finalize()
	return nil
}
