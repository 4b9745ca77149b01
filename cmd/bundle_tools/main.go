// Package main provides the entry point for the replication-bundle CLI.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "bundle_tools",
	Short: "Replication bundle utilities (CSV-first)",
	Long:  "bundle_tools validates research-data replication bundles against their CSV data dictionaries, summarizes datasets, rebuilds the file manifest, and packages the bundle with checksums.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
