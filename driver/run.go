package driver

import (
	"runtime"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"github.com/golang/glog"
	"github.com/llxisdsh/lockbench"
	"github.com/llxisdsh/lockbench/internal/opt"
	"github.com/outcaste-io/ristretto/z"
	"github.com/pkg/errors"
)

const (
	defaultCycles = 100000
	defaultWarmup = 3
	defaultRounds = 5

	// stripePublishMask throttles how often a worker publishes its cycle
	// count. Between publishes the count stays worker-private.
	stripePublishMask = 1<<10 - 1

	// maxWindowSamples caps latency samples per round in window mode,
	// where the cycle count is unknown up front.
	maxWindowSamples = 1 << 16
)

// Options tune a run. The zero value measures defaultRounds rounds of
// defaultCycles cycles per worker after defaultWarmup warmup rounds, with
// latency sampling disabled.
type Options struct {
	// Workers overrides the config's worker-count sweep.
	Workers []int
	// Cycles is the per-worker cycle quota per round. Zero or negative
	// selects the default.
	Cycles int
	// Window is the wall-clock duration of one round. When positive it
	// replaces the cycle quota; workers run until the window closes.
	Window time.Duration
	// Warmup is the number of untimed rounds run first. Zero selects
	// the default; negative disables warmup.
	Warmup int
	// Rounds is the number of timed rounds aggregated per worker count.
	// Zero or negative selects the default.
	Rounds int
	// SampleBatch is the number of cycles timed per latency sample.
	// Zero or negative disables latency sampling.
	SampleBatch int
	// OnResult, when set, receives each Result as it completes.
	OnResult func(Result)
}

func (o Options) withDefaults() Options {
	if o.Cycles <= 0 {
		o.Cycles = defaultCycles
	}
	if o.Warmup == 0 {
		o.Warmup = defaultWarmup
	} else if o.Warmup < 0 {
		o.Warmup = 0
	}
	if o.Rounds <= 0 {
		o.Rounds = defaultRounds
	}
	if o.SampleBatch < 0 {
		o.SampleBatch = 0
	}
	if o.Window < 0 {
		o.Window = 0
	}
	return o
}

// Run measures one config at one worker count and returns the aggregate
// across rounds. Each round gets a freshly populated store.
func Run(cfg *Config, workers int, opts Options) (Result, error) {
	if err := cfg.validate(); err != nil {
		return Result{}, err
	}
	if workers < 1 {
		return Result{}, errors.Errorf("config %q: invalid worker count %d", cfg.Name, workers)
	}
	opts = opts.withDefaults()

	warmupCycles := max(opts.Cycles/10, 1)
	warmupWindow := opts.Window / 10
	if opts.Window > 0 && warmupWindow < 5*time.Millisecond {
		warmupWindow = 5 * time.Millisecond
	}
	for range opts.Warmup {
		c := cfg.newCase()
		c.Setup()
		measureRound(c, workers, warmupCycles, warmupWindow, 0)
	}
	runtime.GC()
	time.Sleep(10 * time.Millisecond)

	res := Result{Config: cfg.Name, Workers: workers, Rounds: opts.Rounds}
	if opts.SampleBatch > 0 {
		res.Hist = z.NewHistogramData(z.HistogramBounds(0, 30))
	}

	for r := range opts.Rounds {
		c := cfg.newCase()
		c.Setup()
		out := measureRound(c, workers, opts.Cycles, opts.Window, opts.SampleBatch)
		glog.V(2).Infof("%s workers=%d round=%d/%d ops=%d elapsed=%s",
			cfg.Name, workers, r+1, opts.Rounds, out.ops, out.elapsed)

		res.Ops += out.ops
		res.Elapsed += out.elapsed
		res.Throughput += float64(out.ops) / out.elapsed.Seconds()
		if len(out.samples) > 0 {
			res.Avg += meanNs(out.samples)
			res.P50 += quantile(out.samples, 0.50)
			res.P99 += quantile(out.samples, 0.99)
			res.P999 += quantile(out.samples, 0.999)
			res.Max += time.Duration(out.samples[len(out.samples)-1])
			for _, ns := range out.samples {
				res.Hist.Update(ns)
			}
		}
		runtime.GC()
	}

	n := time.Duration(opts.Rounds)
	res.Throughput /= float64(opts.Rounds)
	res.Avg /= n
	res.P50 /= n
	res.P99 /= n
	res.P999 /= n
	res.Max /= n

	if opts.OnResult != nil {
		opts.OnResult(res)
	}
	return res, nil
}

// Sweep measures cfg across its worker counts and returns one Result per
// count, in sweep order.
func Sweep(cfg *Config, opts Options) ([]Result, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	counts := cfg.WorkerCounts()
	if len(opts.Workers) != 0 {
		counts = opts.Workers
	}
	results := make([]Result, 0, len(counts))
	for _, w := range counts {
		glog.V(1).Infof("measuring %s with %d workers", cfg.Name, w)
		res, err := Run(cfg, w, opts)
		if err != nil {
			return nil, errors.Wrapf(err, "sweep %s", cfg.Name)
		}
		results = append(results, res)
	}
	return results, nil
}

type roundOut struct {
	ops     uint64
	elapsed time.Duration
	samples []int64 // sorted per-cycle ns, nil when sampling is off
}

// measureRound runs one timed window. Each worker keeps the ordinal it is
// spawned with for the whole round; per-worker tallies live in padded
// stripes so the harness adds no false sharing of its own. Elapsed time is
// wall clock, since workers spend much of the round blocked on locks.
func measureRound(c *lockbench.Case, workers, cycles int, window time.Duration, batch int) roundOut {
	stripes := make([]opt.CounterStripe, workers)

	var samples []int64
	var sampleIdx atomic.Int64
	if batch > 0 {
		total := workers * ((cycles + batch - 1) / batch)
		if window > 0 {
			total = maxWindowSamples
		}
		samples = make([]int64, total)
	}

	var stop atomic.Bool
	var wg sync.WaitGroup
	wg.Add(workers)
	start := time.Now()

	for w := range workers {
		go func(ord int) {
			defer wg.Done()
			stripe := &stripes[ord]
			quota := uint64(cycles)
			var acc float64
			var done uint64
			for {
				if window > 0 {
					if stop.Load() {
						break
					}
				} else if done >= quota {
					break
				}
				if batch > 0 {
					n := batch
					if window == 0 {
						if rem := quota - done; rem < uint64(batch) {
							n = int(rem)
						}
					}
					t0 := time.Now()
					for range n {
						acc += c.RunOnce(ord)
					}
					perOp := time.Since(t0).Nanoseconds() / int64(n)
					if idx := sampleIdx.Add(1) - 1; idx < int64(len(samples)) {
						samples[idx] = perOp
					}
					done += uint64(n)
				} else {
					acc += c.RunOnce(ord)
					done++
				}
				if done&stripePublishMask == 0 {
					atomic.StoreUint64(&stripe.Ops, done)
				}
			}
			atomic.StoreUint64(&stripe.Ops, done)
			stripe.Acc = acc
		}(w)
	}

	if window > 0 {
		timer := time.AfterFunc(window, func() { stop.Store(true) })
		defer timer.Stop()
	}
	wg.Wait()
	elapsed := time.Since(start)

	var ops uint64
	for i := range stripes {
		ops += atomic.LoadUint64(&stripes[i].Ops)
	}
	if batch > 0 {
		n := min(sampleIdx.Load(), int64(len(samples)))
		samples = samples[:n]
		slices.Sort(samples)
	}
	return roundOut{ops: ops, elapsed: elapsed, samples: samples}
}

func quantile(sorted []int64, q float64) time.Duration {
	if len(sorted) == 0 {
		return 0
	}
	return time.Duration(sorted[int(float64(len(sorted)-1)*q)])
}

func meanNs(samples []int64) time.Duration {
	var sum int64
	for _, v := range samples {
		sum += v
	}
	return time.Duration(sum / int64(len(samples)))
}
