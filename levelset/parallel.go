package levelset

import (
	"runtime"
	"sync"
)

// parallelFor runs body(i) for every i in [0, n) across worker goroutines
// and blocks until all calls complete. Calls are independent and unordered,
// matching the data-parallel for_each both extractor passes require.
func parallelFor(n uint64, body func(uint64)) {
	if n == 0 {
		return
	}
	workers := runtime.NumCPU()
	if workers < 1 {
		workers = 1
	}
	if uint64(workers) > n {
		workers = int(n)
	}
	chunk := (n + uint64(workers) - 1) / uint64(workers)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		lo := uint64(w) * chunk
		if lo >= n {
			break
		}
		hi := lo + chunk
		if hi > n {
			hi = n
		}
		wg.Add(1)
		go func(lo, hi uint64) {
			defer wg.Done()
			for i := lo; i < hi; i++ {
				body(i)
			}
		}(lo, hi)
	}
	wg.Wait()
}
