package scanner

import (
	"context"
	"sync"
)

// runPool distributes entries across a bounded set of hashing workers.
// Each entry is handed to exactly one worker. On cancellation the
// remaining entries are left untouched; in-flight work completes.
func runPool(ctx context.Context, workers int, entries []*fileEntry, work func(*fileEntry)) {
	if len(entries) == 0 {
		return
	}
	if workers > len(entries) {
		workers = len(entries)
	}
	if workers < 1 {
		workers = 1
	}

	jobs := make(chan *fileEntry)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for entry := range jobs {
				work(entry)
			}
		}()
	}

feed:
	for _, entry := range entries {
		select {
		case jobs <- entry:
		case <-ctx.Done():
			break feed
		}
	}
	close(jobs)
	wg.Wait()
}
