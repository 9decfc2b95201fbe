// pnch runs the pest reference micro-benchmarks from the command line and
// reports wall-clock statistics.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gitlab.com/emptyspace/pest/build"
)

const (
	exitCodeGeneral = 1
	exitCodeUsage   = 64
)

// die prints its arguments to stderr and exits with the general error code.
func die(args ...interface{}) {
	fmt.Fprintln(os.Stderr, args...)
	os.Exit(exitCodeGeneral)
}

func main() {
	root := &cobra.Command{
		Use:   "pnch",
		Short: "Micro-benchmark runner v" + build.Version,
		Long: "pnch runs the pest reference micro-benchmarks and reports wall-clock\n" +
			"statistics. Reports can be persisted as JSON under the data directory\n" +
			"(" + build.DataDirEnvvar() + ", default ~/.pnch).",
		Run: func(cmd *cobra.Command, _ []string) {
			_ = cmd.Usage()
		},
	}

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(*cobra.Command, []string) {
			fmt.Printf("%s v%s\n", build.BinaryName, build.Version)
			if build.GitRevision != "" {
				fmt.Println("Git Revision " + build.GitRevision)
				fmt.Println("Build Time   " + build.BuildTime)
			}
		},
	}

	root.AddCommand(versionCmd, newRunCmd(), newOnceCmd())

	if err := root.Execute(); err != nil {
		os.Exit(exitCodeUsage)
	}
}
