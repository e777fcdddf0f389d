package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the registered configs.",
	Run:   doList,
}

func init() {
	RootCmd.AddCommand(listCmd)
}

func doList(cmd *cobra.Command, args []string) {
	reg := defaultRegistry()
	fmt.Printf("%-24s %-6s %v\n", "config", "kind", "workers")
	for _, name := range reg.Names() {
		cfg, ok := reg.Lookup(name)
		if !ok {
			continue
		}
		kind := "read"
		if cfg.Write != nil {
			kind = "mixed"
		}
		fmt.Printf("%-24s %-6s %v\n", cfg.Name, kind, cfg.WorkerCounts())
	}
}
