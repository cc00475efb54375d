// Package compute provides the execution backend for per-particle loops.
//
// Force computation within a single step is embarrassingly parallel: each
// particle's output depends only on a read-only snapshot of the previous
// state. The [Backend] seam lets those loops run serially or across a worker
// pool without the callers knowing which.
package compute

// Backend executes an index range [0, n), partitioned into contiguous chunks.
// Workers may only read shared inputs and write their own output slots.
type Backend interface {
	Name() string
	Available() bool
	Map(n int, fn func(start, end int))
}

var activeBackend Backend

func init() {
	activeBackend = NewCPUBackend()
}

func SetBackend(b Backend) {
	activeBackend = b
}

func GetBackend() Backend {
	return activeBackend
}
