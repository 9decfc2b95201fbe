package main

import (
	"os"

	"github.com/spf13/cobra"
	"gitlab.com/emptyspace/pest/pnch"
)

var onceCPU int

func newOnceCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "once <benchmark>",
		Short: "Execute one benchmark closure exactly once",
		Long: "Execute a single invocation of the named benchmark closure under the\n" +
			"one-shot harness, reporting elapsed time and resource deltas without\n" +
			"statistical aggregation.",
		Args: cobra.ExactArgs(1),
		Run:  runOnce,
	}
	cmd.Flags().IntVar(&onceCPU, "cpu", 0, "pin the measuring thread to this logical cpu")
	return cmd
}

// runOnce implements the once command.
func runOnce(_ *cobra.Command, args []string) {
	selected, err := selectBenchmarks(args)
	if err != nil {
		die(err)
	}
	b := selected[0]
	pnch.NewOneshot().
		Pin(onceCPU).
		Run(b.Name, b.Closure()).
		ReportTo(os.Stdout)
}
