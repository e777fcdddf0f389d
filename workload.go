package lockbench

import "math"

const (
	// WriteKey is the single key the write workload updates.
	WriteKey = 0
	// LightReadKey is the key LightRead looks up.
	LightReadKey = 500
	// WriteDelta is the constant each WriteBump adds to WriteKey.
	WriteDelta = 1.1
	// HeavyReadSpan is the number of lookups one HeavyRead performs.
	HeavyReadSpan = 50
)

// A Workload is one unit of work executed against the store per lock
// acquisition. Bodies are pure functions of the store and never touch the
// locks; the caller owns the acquisition around them.
//
// Every body returns the value it produced. Callers keep the result live
// (accumulate it, then publish the sum) so the work cannot be eliminated
// as dead code.
type Workload func(*Store) float64

// HeavyRead performs HeavyReadSpan lookups cycling through the key range
// and accumulates the sine of each value. Models CPU-bound read work whose
// duration clearly exceeds lock overhead.
func HeavyRead(s *Store) float64 {
	var total float64
	for i := range HeavyReadSpan {
		total += math.Sin(s.Read(i % NumKeys))
	}
	return total
}

// LightRead performs a single lookup at LightReadKey. Models a read so
// cheap that per-acquisition lock overhead dominates.
func LightRead(s *Store) float64 {
	return s.Read(LightReadKey)
}

// WriteBump adds WriteDelta to WriteKey and returns the new value. Only
// the writer role invokes it.
func WriteBump(s *Store) float64 {
	return s.Write(WriteKey, WriteDelta)
}
