package main

import (
	"bytes"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/vbauerster/mpb/v5"
	"github.com/vbauerster/mpb/v5/decor"
	"gitlab.com/NebulousLabs/errors"
	"gitlab.com/NebulousLabs/threadgroup"
	"gitlab.com/emptyspace/pest/build"
	"gitlab.com/emptyspace/pest/persist"
	"gitlab.com/emptyspace/pest/pnch"
)

// reportMetadata identifies persisted report files.
var reportMetadata = persist.Metadata{
	Header:  "pnch benchmark report",
	Version: build.Version,
}

var (
	runInner  uint64
	runOuter  uint32
	runCPU    int
	runOutput string
	runSave   bool
	runList   bool
)

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run [benchmark...]",
		Short: "Run reference benchmarks",
		Long: "Run the named reference benchmarks, or all of them when no names are\n" +
			"given. SIGINT stops the run after the benchmark that is currently\n" +
			"measuring; a timed batch is never interrupted.",
		Run: runBenchmarks,
	}
	cmd.Flags().Uint64Var(&runInner, "inner", 100000, "closure invocations per timed batch")
	cmd.Flags().Uint32Var(&runOuter, "outer", 23, "timed batches per benchmark")
	cmd.Flags().IntVar(&runCPU, "cpu", -1, "pin the measuring thread to this logical cpu")
	cmd.Flags().StringVar(&runOutput, "output", "", "write the JSON report to this file")
	cmd.Flags().BoolVar(&runSave, "save", false, "write the JSON report to the data directory")
	cmd.Flags().BoolVar(&runList, "list", false, "list available benchmarks and exit")
	return cmd
}

// runBenchmarks implements the run command.
func runBenchmarks(_ *cobra.Command, args []string) {
	if runList {
		for _, b := range benchmarks {
			fmt.Printf("%-16s %s\n", b.Name, b.Detail)
		}
		return
	}
	selected, err := selectBenchmarks(args)
	if err != nil {
		die(err)
	}
	if runInner == 0 || runOuter == 0 {
		die("--inner and --outer must be positive")
	}

	if runCPU >= 0 {
		if err := pnch.Pin(runCPU); err != nil {
			fmt.Fprintf(os.Stderr, "pinning thread to cpu %d failed: %v\n", runCPU, err)
		}
	}

	// Resolve the report destination before measuring so a bad path fails
	// fast instead of discarding finished measurements.
	if runSave && runOutput == "" {
		runOutput = filepath.Join(build.DataDir(), "report-"+persist.RandomSuffix()+".json")
	}

	var tg threadgroup.ThreadGroup
	var logger *persist.Logger
	if runOutput != "" {
		logger, err = persist.NewFileLogger(filepath.Join(filepath.Dir(runOutput), "pnch.log"))
		if err != nil {
			die(errors.AddContext(err, "unable to open log file"))
		}
		if err := tg.AfterStop(logger.Close); err != nil {
			die(err)
		}
	}

	// SIGINT and SIGTERM stop the run between benchmarks. A measurement that
	// is already in flight always runs to completion.
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		select {
		case <-sigChan:
			fmt.Fprintln(os.Stderr, "Stopping after the current benchmark...")
			_ = tg.Stop()
		case <-tg.StopChan():
		}
	}()

	progress := mpb.New(mpb.WithWidth(40), mpb.WithOutput(os.Stderr))
	bar := progress.AddBar(int64(len(selected)),
		mpb.PrependDecorators(
			decor.Name("benchmarks", decor.WC{W: 11}),
			decor.CountersNoUnit("%d / %d"),
		),
		mpb.AppendDecorators(decor.Percentage()),
	)

	var out bytes.Buffer
	reports := make([]pnch.Report, 0, len(selected))
	cfg := pnch.NewConfig().InnerLoops(runInner).OuterLoops(runOuter)
	for _, b := range selected {
		if tg.Add() != nil {
			break // stopped
		}
		if logger != nil {
			logger.Println("running benchmark:", b.Name)
		}
		cfg.Run(b.Name, b.Closure()).ReportTo(&out)
		reports = append(reports, cfg.Report())
		bar.Increment()
		tg.Done()
	}
	if !bar.Completed() {
		bar.Abort(false)
	}
	progress.Wait()

	os.Stdout.Write(out.Bytes())

	if runOutput != "" && len(reports) > 0 {
		if err := persist.SaveJSON(reportMetadata, reports, runOutput); err != nil {
			die(errors.AddContext(err, "unable to save report"))
		}
		fmt.Println("Report written to", runOutput)
	}
	_ = tg.Stop()
}
