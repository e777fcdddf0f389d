// Package lockbench measures how an exclusive mutex and a reader-writer
// lock behave over shared state under configurable concurrent read and
// write workloads.
//
// The contended resource is a Store. A Strategy decides which locker each
// role acquires, and RoleFor assigns roles by worker ordinal. A Case binds
// store, strategy, and workloads into a RunOnce cycle that a measurement
// driver calls in a timed loop.
package lockbench

import (
	"math"
	"sync"

	"github.com/llxisdsh/lockbench/internal/opt"
)

// NumKeys is the number of keys Setup populates.
const NumKeys = 1000

// Store is the shared state under measurement: a dense mapping from
// integer keys [0, NumKeys) to float64 values, plus the two locks that
// guard it. The locks and the mapping header are separated by full
// cache-line pads, so the contention measured is the lock protocol itself
// and not unrelated fields sharing a line.
//
// The zero value is an empty store. Call Setup before running workloads.
//
// Properties:
//   - Setup populates exactly once; later calls are no-ops.
//   - Read and Write assume the caller holds a lock appropriate to the
//     active strategy. Neither acquires anything itself.
//   - Keys outside the populated range are a contract violation and panic.
type Store struct {
	mu   sync.Mutex
	_    [opt.CacheLineSize]byte
	rw   sync.RWMutex
	_    [opt.CacheLineSize]byte
	vals []float64
}

// Setup populates vals[k] = sqrt(k) for k in [0, NumKeys) if and only if
// the store is still empty. Safe to call redundantly and concurrently.
// Run it before the timed region so population cost stays out of the
// measurement.
func (s *Store) Setup() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.vals) != 0 {
		return
	}
	vals := make([]float64, NumKeys)
	for k := range vals {
		vals[k] = math.Sqrt(float64(k))
	}
	s.vals = vals
}

// Len reports how many keys are populated.
func (s *Store) Len() int { return len(s.vals) }

// Read returns the value at key. The caller must hold either side of the
// active strategy.
func (s *Store) Read(key int) float64 {
	return s.vals[key]
}

// Write adds delta to the value at key and returns the new value. The
// caller must hold the writer side of the active strategy.
func (s *Store) Write(key int, delta float64) float64 {
	s.vals[key] += delta
	return s.vals[key]
}
