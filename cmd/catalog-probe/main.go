package main

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "catalog-probe",
	Short: "Check a running catalog service",
	Long: `catalog-probe calls the catalog service over HTTP and verifies the
observable properties of its routes: bounded distinct samples, empty-bodied
status routes, and the scores aggregate.`,
	SilenceUsage: true,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
