package cmd

import (
	goflag "flag"
	"fmt"
	"os"

	"github.com/golang/glog"
	"github.com/llxisdsh/lockbench/driver"
	"github.com/spf13/cobra"
)

// RootCmd represents the base command when called without any subcommands.
var RootCmd = &cobra.Command{
	Use:   "lockbench",
	Short: "Measure mutex and reader-writer lock contention.",
	Long: `lockbench runs configurable read and write workloads against a shared
float store, once behind an exclusive mutex and once behind a
reader-writer lock, and reports throughput and latency per worker count.`,
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main().
func Execute() {
	err := RootCmd.Execute()
	glog.Flush()
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	// glog registers its flags (-v, -logtostderr, ...) on the standard
	// flag package; surface them on every subcommand.
	RootCmd.PersistentFlags().AddGoFlagSet(goflag.CommandLine)
}

func defaultRegistry() *driver.Registry {
	var reg driver.Registry
	for _, cfg := range driver.Defaults() {
		reg.MustRegister(cfg)
	}
	return &reg
}
