package main

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"github.com/spf13/cobra"

	"github.com/okian/catalog/internal/probe"
	"github.com/okian/catalog/pkg/logger"
)

// Default configuration constants.
const (
	defaultIterations = 100
	defaultTimeout    = 5 * time.Second
	defaultRunTimeout = 5 * time.Minute
)

var (
	probeURL        string
	probeIterations int
	probeWorkers    int
	probeTimeout    time.Duration
	probeDataset    string
	probeSampleSize int
	probeLogFormat  string
	probeVerbose    bool
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run every check once",
	Example: `  catalog-probe run --url http://localhost:9080
  catalog-probe run --iterations 500 --dataset db.json --verbose`,
	Args: cobra.NoArgs,
	RunE: runProbe,
}

func init() {
	runCmd.Flags().StringVar(&probeURL, "url", "http://localhost:9080", "Base URL of the service")
	runCmd.Flags().IntVar(&probeIterations, "iterations", defaultIterations, "Number of /random-entries calls")
	runCmd.Flags().IntVar(&probeWorkers, "workers", runtime.NumCPU(), "Concurrent /random-entries callers")
	runCmd.Flags().DurationVar(&probeTimeout, "timeout", defaultTimeout, "HTTP request timeout")
	runCmd.Flags().StringVar(&probeDataset, "dataset", "", "Dataset file the service was started with; enables membership checks")
	runCmd.Flags().IntVar(&probeSampleSize, "sample-size", 0, "Expected sample size (default 5)")
	runCmd.Flags().StringVar(&probeLogFormat, "log-format", "text", "Log format (text, json)")
	runCmd.Flags().BoolVar(&probeVerbose, "verbose", false, "Log every passing check")
	rootCmd.AddCommand(runCmd)
}

func runProbe(cmd *cobra.Command, _ []string) error {
	if err := logger.Init(logger.WithWriter(cmd.ErrOrStderr()), logger.WithFormat(probeLogFormat)); err != nil {
		return err
	}
	if probeVerbose {
		_ = logger.SetLevelString("debug")
	}

	parent := cmd.Context()
	if parent == nil {
		parent = context.Background()
	}
	ctx, cancel := context.WithTimeout(parent, defaultRunTimeout)
	defer cancel()

	report, err := probe.Run(ctx, &probe.Config{
		BaseURL:     probeURL,
		Iterations:  probeIterations,
		Workers:     probeWorkers,
		Timeout:     probeTimeout,
		DatasetPath: probeDataset,
		SampleSize:  probeSampleSize,
		Verbose:     probeVerbose,
	})
	if report != nil {
		printReport(cmd, report)
	}
	return err
}

func printReport(cmd *cobra.Command, r *probe.Report) {
	out := cmd.OutOrStdout()
	status := "PASS"
	if !r.OK() {
		status = "FAIL"
	}
	fmt.Fprintf(out, "%s run=%s requests=%d samples=%d violations=%d duration=%s\n",
		status, r.RunID, r.Requests, r.Samples, len(r.Violations), r.Duration.Round(time.Millisecond))
	for _, v := range r.Violations {
		fmt.Fprintf(out, "  - %s\n", v)
	}
}
