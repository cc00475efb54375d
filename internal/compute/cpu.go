package compute

import (
	"runtime"
	"sync"
)

// parallelThreshold is the particle count below which chunked dispatch costs
// more than it saves.
const parallelThreshold = 64

type CPUBackend struct {
	workers int
}

func NewCPUBackend() *CPUBackend {
	return &CPUBackend{
		workers: runtime.NumCPU(),
	}
}

func (c *CPUBackend) Name() string    { return "cpu" }
func (c *CPUBackend) Available() bool { return true }

func (c *CPUBackend) Map(n int, fn func(start, end int)) {
	if n <= 0 {
		return
	}

	if n < parallelThreshold || c.workers <= 1 {
		fn(0, n)
		return
	}

	var wg sync.WaitGroup
	chunkSize := (n + c.workers - 1) / c.workers

	for w := 0; w < c.workers; w++ {
		start := w * chunkSize
		if start >= n {
			break
		}
		end := start + chunkSize
		if end > n {
			end = n
		}

		wg.Add(1)
		go func(start, end int) {
			defer wg.Done()
			fn(start, end)
		}(start, end)
	}

	wg.Wait()
}
