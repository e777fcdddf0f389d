//go:build lockbench_cachelinesize_128 && !lockbench_cachelinesize_64

package opt

// CacheLineSize pinned to 128 bytes via the lockbench_cachelinesize_128
// build tag. Useful on cores with 128-byte coherency granules (for
// example Apple silicon) when cross-compiling.
const CacheLineSize = 128
