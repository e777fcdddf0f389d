//go:build !lockbench_compact_counters

package opt

import (
	"testing"
	"unsafe"
)

func TestCounterStripeFillsCacheLines(t *testing.T) {
	sz := unsafe.Sizeof(CounterStripe{})
	if sz%CacheLineSize != 0 {
		t.Fatalf("CounterStripe size %d is not a multiple of the cache line size %d",
			sz, CacheLineSize)
	}
	var stripes [2]CounterStripe
	gap := uintptr(unsafe.Pointer(&stripes[1].Ops)) - uintptr(unsafe.Pointer(&stripes[0].Ops))
	if gap < CacheLineSize {
		t.Fatalf("adjacent counters are %d bytes apart, want at least %d", gap, CacheLineSize)
	}
}
