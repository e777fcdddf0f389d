package driver

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/outcaste-io/ristretto/z"
)

// Result aggregates one (config, workers) measurement: Ops and Elapsed
// are summed over rounds, Throughput and the latency fields are averaged
// across rounds. Latency fields stay zero when sampling is disabled.
type Result struct {
	Config  string
	Workers int
	Rounds  int

	Ops        uint64
	Elapsed    time.Duration
	Throughput float64 // ops per second

	Avg  time.Duration
	P50  time.Duration
	P99  time.Duration
	P999 time.Duration
	Max  time.Duration

	// Hist accumulates per-sample latencies in nanoseconds across all
	// rounds; nil when sampling is disabled.
	Hist *z.HistogramData
}

// String renders one line suitable for live output.
func (r Result) String() string {
	line := fmt.Sprintf("%-24s workers=%-3d ops=%-12s throughput=%s",
		r.Config, r.Workers, humanize.Comma(int64(r.Ops)), humanize.SI(r.Throughput, "op/s"))
	if r.P99 > 0 {
		line += fmt.Sprintf(" p99=%s", us(r.P99))
	}
	return line
}

// us formats a duration as microseconds with two decimals.
func us(d time.Duration) string {
	return fmt.Sprintf("%.2fµs", float64(d.Nanoseconds())/float64(time.Microsecond))
}

func usOrDash(d time.Duration) string {
	if d == 0 {
		return "-"
	}
	return us(d)
}

// WriteReport renders results as a fixed-width table. When withHist is
// set, each result that sampled latencies gets its histogram printed
// after the table.
func WriteReport(w io.Writer, results []Result, withHist bool) {
	fmt.Fprintf(w, "%-24s | %7s | %14s | %10s | %14s | %10s | %10s | %10s\n",
		"config", "workers", "ops", "elapsed", "throughput", "p50", "p99", "max")
	fmt.Fprintln(w, strings.Repeat("-", 118))
	for _, r := range results {
		fmt.Fprintf(w, "%-24s | %7d | %14s | %10s | %12.0f/s | %10s | %10s | %10s\n",
			r.Config, r.Workers, humanize.Comma(int64(r.Ops)),
			r.Elapsed.Round(time.Millisecond), r.Throughput,
			usOrDash(r.P50), usOrDash(r.P99), usOrDash(r.Max))
	}
	if !withHist {
		return
	}
	for _, r := range results {
		if r.Hist == nil {
			continue
		}
		fmt.Fprintf(w, "\nLatency in nanoseconds: %s workers=%d\n", r.Config, r.Workers)
		fmt.Fprintln(w, r.Hist.String())
	}
}
