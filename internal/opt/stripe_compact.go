//go:build lockbench_compact_counters

package opt

// CounterStripe without padding, selected via the lockbench_compact_counters
// build tag. Adjacent workers may then share cache lines; measurements taken
// this way include that interference.
// Use: go build -tags=lockbench_compact_counters
type CounterStripe struct {
	Ops uint64  // completed cycles, published atomically
	Acc float64 // accumulated workload results, written at loop exit
}
