//go:build !lockbench_compact_counters

package opt

import (
	"unsafe"
)

// CounterStripe is a per-worker tally padded out to a whole number of
// cache lines, keeping neighbouring workers off each other's lines.
type CounterStripe struct {
	Ops uint64  // completed cycles, published atomically
	Acc float64 // accumulated workload results, written at loop exit
	_   [(CacheLineSize - unsafe.Sizeof(struct {
		Ops uint64
		Acc float64
	}{})%CacheLineSize) % CacheLineSize]byte
}
