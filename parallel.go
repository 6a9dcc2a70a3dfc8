package dent

import "golang.org/x/sync/errgroup"

// forEach calls fn over contiguous chunks of [0,n) on up to workers
// goroutines and waits for all of them.
func forEach(n, workers int, fn func(lo, hi int)) {
	if n == 0 {
		return
	}
	if workers < 1 {
		workers = 1
	}
	if workers == 1 {
		fn(0, n)
		return
	}
	chunk := (n + workers - 1) / workers
	var g errgroup.Group
	g.SetLimit(workers)
	for lo := 0; lo < n; lo += chunk {
		lo, hi := lo, min(lo+chunk, n)
		g.Go(func() error {
			fn(lo, hi)
			return nil
		})
	}
	g.Wait()
}
