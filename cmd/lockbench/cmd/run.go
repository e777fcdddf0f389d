package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/golang/glog"
	"github.com/llxisdsh/lockbench/driver"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"golang.org/x/sync/errgroup"
)

var runCmd = &cobra.Command{
	Use:   "run [config ...]",
	Short: "Measure the named configs, or all of them.",
	Long: `Run sweeps each selected config across its worker counts. Without
arguments every registered config is measured. Results stream as they
complete and a summary table is printed at the end.`,
	RunE: doRun,
}

var (
	runWorkers   []int
	runCycles    int
	runDuration  time.Duration
	runWarmup    int
	runRounds    int
	runBatch     int
	runHistogram bool
	runQuiet     bool
)

func init() {
	RootCmd.AddCommand(runCmd)
	registerRunFlags(runCmd.Flags())
}

func registerRunFlags(flag *pflag.FlagSet) {
	flag.IntSliceVar(&runWorkers, "workers", nil,
		"Worker counts to sweep. Empty uses each config's own sweep.")
	flag.IntVar(&runCycles, "cycles", 0,
		"Cycles per worker per round. Zero uses the driver default.")
	flag.DurationVar(&runDuration, "duration", 0,
		"Wall-clock window per round. Replaces the cycle quota when set.")
	flag.IntVar(&runWarmup, "warmup", 0,
		"Warmup rounds before measuring. Zero uses the driver default, negative disables warmup.")
	flag.IntVar(&runRounds, "rounds", 0,
		"Measured rounds per worker count. Zero uses the driver default.")
	flag.IntVar(&runBatch, "batch", 64,
		"Cycles timed per latency sample. Zero disables latency sampling.")
	flag.BoolVar(&runHistogram, "histogram", false,
		"Print a latency histogram under the summary table.")
	flag.BoolVar(&runQuiet, "quiet", false,
		"Suppress live result lines; print only the final table.")
}

func doRun(cmd *cobra.Command, args []string) error {
	reg := defaultRegistry()
	names := args
	if len(names) == 0 {
		names = reg.Names()
	}
	cfgs := make([]*driver.Config, 0, len(names))
	for _, name := range names {
		cfg, ok := reg.Lookup(name)
		if !ok {
			return errors.Errorf("unknown config %q, registered: %v", name, reg.Names())
		}
		cfgs = append(cfgs, cfg)
	}

	opts := driver.Options{
		Workers:     runWorkers,
		Cycles:      runCycles,
		Window:      runDuration,
		Warmup:      runWarmup,
		Rounds:      runRounds,
		SampleBatch: runBatch,
	}
	if !runQuiet {
		opts.OnResult = func(r driver.Result) { fmt.Println(r.String()) }
	}

	var results []driver.Result
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	g, ctx := errgroup.WithContext(ctx)

	start := time.Now()
	g.Go(func() error {
		defer cancel()
		for _, cfg := range cfgs {
			rs, err := driver.Sweep(cfg, opts)
			if err != nil {
				return err
			}
			results = append(results, rs...)
		}
		return nil
	})
	g.Go(func() error {
		tick := time.NewTicker(30 * time.Second)
		defer tick.Stop()
		for {
			select {
			case <-ctx.Done():
				return nil
			case <-tick.C:
				glog.Infof("still measuring after %s", time.Since(start).Round(time.Second))
			}
		}
	})
	if err := g.Wait(); err != nil {
		return err
	}

	fmt.Println()
	driver.WriteReport(os.Stdout, results, runHistogram)
	return nil
}
