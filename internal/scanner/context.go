package scanner

import (
	"sort"
	"sync"
	"sync/atomic"
)

const eventBufferSize = 64

// scanContext carries the shared mutable state of one scan run: progress
// counters, the event channel and accumulated warnings. Counters are
// atomics; there is no ambient global state.
type scanContext struct {
	events chan ProgressEvent

	phase          Phase
	filesTotal     atomic.Int64
	filesProcessed atomic.Int64
	filesScanned   atomic.Int64
	bytesRead      atomic.Int64

	warnMu   sync.Mutex
	warnings []Warning
}

func newScanContext() *scanContext {
	return &scanContext{
		events: make(chan ProgressEvent, eventBufferSize),
	}
}

// startPhase resets the per-phase counters and announces the new phase.
func (sc *scanContext) startPhase(phase Phase, total int64) {
	sc.phase = phase
	sc.filesTotal.Store(total)
	sc.filesProcessed.Store(0)
	sc.emit()
}

// fileDone marks one file processed in the current phase.
func (sc *scanContext) fileDone() {
	sc.filesProcessed.Add(1)
	sc.emit()
}

func (sc *scanContext) addBytes(n int64) {
	sc.bytesRead.Add(n)
}

// emit publishes a progress event without ever blocking a worker; when
// the consumer lags, intermediate events are dropped.
func (sc *scanContext) emit() {
	event := ProgressEvent{
		Phase:          sc.phase,
		FilesProcessed: sc.filesProcessed.Load(),
		FilesTotal:     sc.filesTotal.Load(),
		BytesRead:      sc.bytesRead.Load(),
	}
	select {
	case sc.events <- event:
	default:
	}
}

// warn records a skipped file. Safe for concurrent workers.
func (sc *scanContext) warn(path string, phase Phase, err error) {
	sc.warnMu.Lock()
	defer sc.warnMu.Unlock()
	sc.warnings = append(sc.warnings, Warning{
		Path:   path,
		Phase:  phase,
		Kind:   kindOf(err),
		Reason: err.Error(),
	})
}

// result assembles the final Result from the accumulated state. Warnings
// are sorted by path so output is identical across runs regardless of
// worker scheduling.
func (sc *scanContext) result(sets []DuplicateSet, cancelled bool) *Result {
	sc.warnMu.Lock()
	warnings := make([]Warning, len(sc.warnings))
	copy(warnings, sc.warnings)
	sc.warnMu.Unlock()

	sort.Slice(warnings, func(i, j int) bool {
		if warnings[i].Path != warnings[j].Path {
			return warnings[i].Path < warnings[j].Path
		}
		return warnings[i].Phase < warnings[j].Phase
	})

	stats := Stats{
		FilesScanned: sc.filesScanned.Load(),
		BytesRead:    sc.bytesRead.Load(),
		SkippedFiles: len(warnings),
		Warnings:     warnings,
	}
	for i := range sets {
		stats.DuplicateSets++
		stats.DuplicateFiles += len(sets[i].Paths)
		stats.ReclaimableBytes += sets[i].Reclaimable()
	}

	return &Result{Sets: sets, Stats: stats, Cancelled: cancelled}
}
