package progress

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/schollz/progressbar/v3"

	"github.com/substantialcattle5/dupescan/internal/scanner"
)

// Options configures progress bar behavior
type Options struct {
	Quiet   bool
	Verbose bool
}

// Manager renders scan progress and handles cancellation signals.
type Manager struct {
	options    Options
	bar        *progressbar.ProgressBar
	phase      scanner.Phase
	cancelFunc context.CancelFunc
	cancelled  bool
	cancelMux  sync.Mutex
	signalChan chan os.Signal
}

// NewManager creates a new progress manager
func NewManager(options Options) *Manager {
	return &Manager{
		options:    options,
		signalChan: make(chan os.Signal, 1),
	}
}

// SetupCancellation sets up signal handling for cancellation
func (pm *Manager) SetupCancellation(ctx context.Context) context.Context {
	ctx, cancel := context.WithCancel(ctx)
	pm.cancelFunc = cancel

	signal.Notify(pm.signalChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		select {
		case <-pm.signalChan:
			pm.cancelMux.Lock()
			pm.cancelled = true
			pm.cancelMux.Unlock()
			// #nosec G104 - cancellation message is not critical for functionality
			fmt.Println("\nScan cancelled by user")
			cancel()
		case <-ctx.Done():
			// Context already cancelled
		}
	}()

	return ctx
}

// IsCancelled checks if the operation was cancelled
func (pm *Manager) IsCancelled() bool {
	pm.cancelMux.Lock()
	defer pm.cancelMux.Unlock()
	return pm.cancelled
}

// Cleanup removes signal handlers
func (pm *Manager) Cleanup() {
	signal.Stop(pm.signalChan)
	if pm.cancelFunc != nil {
		pm.cancelFunc()
	}
}

// Consume renders the scan's progress events until the channel closes.
// One bar is shown per pipeline phase.
func (pm *Manager) Consume(events <-chan scanner.ProgressEvent) {
	for ev := range events {
		if pm.options.Quiet {
			continue
		}
		if ev.Phase != pm.phase || pm.bar == nil {
			pm.finishBar()
			pm.phase = ev.Phase
			pm.initPhaseBar(ev)
		}
		// #nosec G104 - progress bar errors are not critical for functionality
		pm.bar.Set64(ev.FilesProcessed)
	}
	pm.finishBar()
}

func (pm *Manager) initPhaseBar(ev scanner.ProgressEvent) {
	total := ev.FilesTotal
	if total == 0 {
		// Unknown total (enumeration): -1 renders a spinner.
		total = -1
	}

	pm.bar = progressbar.NewOptions64(total,
		progressbar.OptionSetDescription(describePhase(ev.Phase)),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionSetWidth(50),
		progressbar.OptionThrottle(65),
		progressbar.OptionShowCount(),
		progressbar.OptionOnCompletion(func() {
			// #nosec G104 - progress bar completion message is not critical
			fmt.Fprint(os.Stderr, "\n")
		}),
		progressbar.OptionSpinnerType(14),
		progressbar.OptionFullWidth(),
	)
}

func (pm *Manager) finishBar() {
	if pm.bar == nil {
		return
	}
	// #nosec G104 - progress bar errors are not critical for functionality
	pm.bar.Finish()
	pm.bar = nil
}

func describePhase(phase scanner.Phase) string {
	switch phase {
	case scanner.PhaseEnumerate:
		return "Indexing files"
	case scanner.PhasePartialHash:
		return "Prefix hashing"
	case scanner.PhaseFullHash:
		return "Full hashing"
	case scanner.PhaseConfirm:
		return "Confirming duplicates"
	default:
		return string(phase)
	}
}

// PrintVerbose prints verbose information if verbose mode is enabled
func (pm *Manager) PrintVerbose(format string, args ...interface{}) {
	if pm.options.Verbose {
		if pm.bar != nil {
			// #nosec G104 - progress bar clear is not critical for functionality
			pm.bar.Clear()
		}

		// #nosec G104 - verbose output errors are not critical for functionality
		fmt.Printf(format, args...)
		if len(format) == 0 || format[len(format)-1] != '\n' {
			// #nosec G104 - newline output is not critical for functionality
			fmt.Println()
		}
	}
}

// PrintInfo prints informational messages (unless quiet mode)
func (pm *Manager) PrintInfo(format string, args ...interface{}) {
	if !pm.options.Quiet {
		if pm.bar != nil {
			// #nosec G104 - progress bar clear is not critical for functionality
			pm.bar.Clear()
		}

		// #nosec G104 - info output errors are not critical for functionality
		fmt.Printf(format, args...)
	}
}
