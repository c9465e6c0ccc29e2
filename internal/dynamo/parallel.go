package dynamo

import (
	"runtime"
	"sync"
)

// FallbackWorkers is used when the number of CPUs cannot be determined.
const FallbackWorkers = 4

// DefaultWorkers returns the number of available execution units.
func DefaultWorkers() int {
	if n := runtime.NumCPU(); n > 0 {
		return n
	}
	return FallbackWorkers
}

// Band is the half-open range [Start, End).
type Band struct {
	Start, End int
}

// Bands splits [0, n) into contiguous, non-overlapping bands. Each band gets
// n/workers items and the last band absorbs the remainder. workers is clamped
// to [1, n] so no band is empty when n > 0.
func Bands(n, workers int) []Band {
	if n <= 0 {
		return nil
	}
	if workers < 1 {
		workers = 1
	}
	if workers > n {
		workers = n
	}

	per := n / workers
	bands := make([]Band, workers)
	for i := 0; i < workers; i++ {
		start := i * per
		end := start + per
		if i == workers-1 {
			end = n
		}
		bands[i] = Band{Start: start, End: end}
	}
	return bands
}

// ParallelBands runs fn once per band of [0, n) on its own goroutine and
// returns after all of them finish. fn receives the band index so callers can
// keep per-band accumulators without locking.
func ParallelBands(n, workers int, fn func(idx, start, end int)) {
	bands := Bands(n, workers)
	if len(bands) == 1 {
		fn(0, bands[0].Start, bands[0].End)
		return
	}

	var wg sync.WaitGroup
	wg.Add(len(bands))

	for i, b := range bands {
		go func(idx int, s, e int) {
			defer wg.Done()
			fn(idx, s, e)
		}(i, b.Start, b.End)
	}

	wg.Wait()
}
