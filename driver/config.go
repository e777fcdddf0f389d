// Package driver runs lockbench cases across worker-count sweeps and
// aggregates throughput and latency statistics.
//
// It fills the measurement-driver role: spawn one goroutine per worker,
// hand each a stable ordinal, run warmup rounds and then timed rounds,
// and aggregate wall-clock elapsed time, operation counts, and optional
// latency percentiles per worker count.
package driver

import (
	"github.com/llxisdsh/lockbench"
	"github.com/pkg/errors"
)

// A Config names one measurable combination of lock strategy and
// workloads, selected at registration time.
type Config struct {
	// Name identifies the config in the registry, reports, and the CLI.
	Name string
	// Strategy constructs the lock strategy over a fresh store.
	Strategy func(*lockbench.Store) lockbench.Strategy
	// Read is the body every reader runs.
	Read lockbench.Workload
	// Write is the body ordinal 0 runs. Nil makes the config read-only;
	// every ordinal then reads.
	Write lockbench.Workload
	// Workers are the counts swept when Options does not override them.
	// Empty means doubling counts: 1 to 8 for read-only configs, 2 to 8
	// for mixed ones.
	Workers []int
}

func (c *Config) validate() error {
	if c == nil {
		return errors.New("nil config")
	}
	if c.Name == "" {
		return errors.New("config needs a name")
	}
	if c.Strategy == nil {
		return errors.Errorf("config %q needs a strategy", c.Name)
	}
	if c.Read == nil {
		return errors.Errorf("config %q needs a read body", c.Name)
	}
	for _, w := range c.Workers {
		if w < 1 {
			return errors.Errorf("config %q has invalid worker count %d", c.Name, w)
		}
	}
	return nil
}

// WorkerCounts resolves the sweep for this config.
func (c *Config) WorkerCounts() []int {
	if len(c.Workers) != 0 {
		return c.Workers
	}
	if c.Write == nil {
		return []int{1, 2, 4, 8}
	}
	return []int{2, 4, 8}
}

// newCase builds a fresh store and case for one measurement round, so
// rounds never see residue from earlier configs or rounds.
func (c *Config) newCase() *lockbench.Case {
	store := new(lockbench.Store)
	return lockbench.NewCase(store, c.Strategy(store), c.Read, c.Write)
}

// Defaults returns the six canonical configurations: both strategies
// crossed with the read-only heavy, mixed heavy, and mixed light
// workloads.
func Defaults() []*Config {
	return []*Config{
		{Name: "exclusive/read-heavy", Strategy: lockbench.Exclusive, Read: lockbench.HeavyRead},
		{Name: "rwshared/read-heavy", Strategy: lockbench.SharedReaderWriter, Read: lockbench.HeavyRead},
		{Name: "exclusive/mixed-heavy", Strategy: lockbench.Exclusive, Read: lockbench.HeavyRead, Write: lockbench.WriteBump},
		{Name: "rwshared/mixed-heavy", Strategy: lockbench.SharedReaderWriter, Read: lockbench.HeavyRead, Write: lockbench.WriteBump},
		{Name: "exclusive/mixed-light", Strategy: lockbench.Exclusive, Read: lockbench.LightRead, Write: lockbench.WriteBump},
		{Name: "rwshared/mixed-light", Strategy: lockbench.SharedReaderWriter, Read: lockbench.LightRead, Write: lockbench.WriteBump},
	}
}
