package simulation

import (
	"golang.org/x/sync/errgroup"
)

// minBand is the smallest slice of work worth handing to its own goroutine.
const minBand = 64

// forEachBand splits [0, n) into contiguous bands and calls fn on each, using
// up to workers goroutines. It returns once every band is done, which is the
// barrier between the phases of a step.
func forEachBand(n, workers int, fn func(lo, hi int)) {
	bands := min(workers, (n+minBand-1)/minBand)
	if bands <= 1 {
		fn(0, n)
		return
	}

	size := (n + bands - 1) / bands
	var g errgroup.Group
	g.SetLimit(workers)
	for lo := 0; lo < n; lo += size {
		hi := min(lo+size, n)
		g.Go(func() error {
			fn(lo, hi)
			return nil
		})
	}
	_ = g.Wait() // bands never fail
}
