// SPDX-License-Identifier: AGPL-3.0-or-later

// Package workpool fans independent tasks out over a bounded ants pool.
package workpool

import (
	"context"
	"fmt"
	"sync"

	"github.com/panjf2000/ants/v2"
)

// DefaultWorkers is the pool size used when none is configured.
const DefaultWorkers = 8

// Each calls fn once for every index in [0, n) using at most workers goroutines
// and returns after all submitted calls finish. Callers write results into
// per-index slots, so no shared collection is appended concurrently.
// Indices not yet submitted when ctx is cancelled are skipped.
func Each(ctx context.Context, workers, n int, fn func(ctx context.Context, i int)) error {
	if n <= 0 {
		return ctx.Err()
	}
	if workers < 1 {
		workers = DefaultWorkers
	}
	if workers > n {
		workers = n
	}

	pool, err := ants.NewPool(workers)
	if err != nil {
		return fmt.Errorf("creating worker pool: %w", err)
	}
	defer pool.Release()

	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		if ctx.Err() != nil {
			break
		}
		wg.Add(1)
		task := func() {
			defer wg.Done()
			fn(ctx, i)
		}
		if err := pool.Submit(task); err != nil {
			// The pool only refuses work once released; run inline instead of dropping it.
			task()
		}
	}
	wg.Wait()

	return ctx.Err()
}
