//go:build lockbench_cachelinesize_64

package opt

// CacheLineSize pinned to 64 bytes via the lockbench_cachelinesize_64
// build tag, for builds targeting hosts the `golang.org/x/sys` detection
// does not describe.
const CacheLineSize = 64
