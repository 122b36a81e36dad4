package scanner

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	log "github.com/sirupsen/logrus"

	"github.com/substantialcattle5/dupescan/internal/constants"
)

// confirmStage turns full-digest groups into DuplicateSets by direct byte
// comparison, so a digest collision between different files can never
// produce a false positive. Returns the confirmed sets and whether the
// stage was cut short by cancellation; a group interrupted mid-comparison
// contributes nothing, only fully confirmed sets are returned.
func (s *Scanner) confirmStage(ctx context.Context, state *scanContext, groups [][]*fileEntry) ([]DuplicateSet, bool) {
	var total int64
	for _, group := range groups {
		total += int64(len(group))
	}
	state.startPhase(PhaseConfirm, total)

	var sets []DuplicateSet
	for _, group := range groups {
		if ctx.Err() != nil {
			return sets, true
		}

		for _, class := range s.byteClasses(state, group) {
			if len(class) < 2 {
				continue
			}
			set := DuplicateSet{
				Digest: class[0].fullDigest,
				Size:   class[0].size,
				Paths:  make([]string, len(class)),
			}
			for i, entry := range class {
				set.Paths[i] = entry.path
			}
			sets = append(sets, set)
		}
	}
	return sets, false
}

// byteClasses partitions a digest group into classes of byte-identical
// files. Each member is compared against the representative (first file)
// of every existing class; with an honest digest nearly every group
// collapses into a single class after one comparison.
//
// A comparison error demotes whichever file actually failed. When that is
// the class representative (it vanished or became unreadable mid-scan),
// the next member is promoted and the comparison retried, so readable
// duplicates behind a bad representative are never lost with it.
func (s *Scanner) byteClasses(state *scanContext, group []*fileEntry) [][]*fileEntry {
	var classes [][]*fileEntry

member:
	for _, entry := range group {
		for i := 0; i < len(classes); i++ {
			rep := classes[i][0]
			equal, failedPath, err := s.sameContent(state, rep, entry)
			if err != nil {
				if failedPath == rep.path {
					rep.failed = true
					state.warn(rep.path, PhaseConfirm, err)
					log.Debugf("byte comparison failed for %s: %v", rep.path, err)
					classes[i] = classes[i][1:]
					if len(classes[i]) == 0 {
						classes = append(classes[:i], classes[i+1:]...)
					}
					// Retry the entry against the promoted representative.
					i--
					continue
				}
				entry.failed = true
				state.warn(entry.path, PhaseConfirm, err)
				log.Debugf("byte comparison failed for %s: %v", entry.path, err)
				state.fileDone()
				continue member
			}
			if equal {
				classes[i] = append(classes[i], entry)
				state.fileDone()
				continue member
			}
		}
		classes = append(classes, []*fileEntry{entry})
		state.fileDone()
	}
	return classes
}

// sameContent reports whether two files are byte-for-byte identical. On
// error it also returns the path of the file that failed, so the caller
// can demote the right one.
func (s *Scanner) sameContent(state *scanContext, a, b *fileEntry) (bool, string, error) {
	fa, err := os.Open(a.path)
	if err != nil {
		return false, a.path, fmt.Errorf("opening %s: %w", a.path, err)
	}
	defer fa.Close()

	fb, err := os.Open(b.path)
	if err != nil {
		return false, b.path, fmt.Errorf("opening %s: %w", b.path, err)
	}
	defer fb.Close()

	bufA := make([]byte, constants.CompareBufferSize)
	bufB := make([]byte, constants.CompareBufferSize)
	for {
		na, errA := readFull(fa, bufA)
		nb, errB := readFull(fb, bufB)
		state.addBytes(int64(na + nb))

		if errA != nil {
			return false, a.path, fmt.Errorf("reading %s: %w", a.path, errA)
		}
		if errB != nil {
			return false, b.path, fmt.Errorf("reading %s: %w", b.path, errB)
		}
		if na != nb || !bytes.Equal(bufA[:na], bufB[:nb]) {
			return false, "", nil
		}
		if na < len(bufA) {
			// Both hit EOF at the same offset.
			return true, "", nil
		}
	}
}

// readFull fills buf as far as the file allows. End of file is not an
// error: the caller distinguishes it by a short count.
func readFull(f *os.File, buf []byte) (int, error) {
	n, err := io.ReadFull(f, buf)
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		err = nil
	}
	return n, err
}
