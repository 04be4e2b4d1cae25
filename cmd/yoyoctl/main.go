package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	logLevel string
	indexed  bool
)

var rootCmd = &cobra.Command{
	Use:           "yoyoctl",
	Short:         "Query the hotel database from the command line",
	Long:          `Runs the same proximity search and hotel detail lookups as the HTTP API, printing JSON.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().BoolVar(&indexed, "indexed", false, "Use the R-tree city index instead of a table scan")

	rootCmd.AddCommand(searchCmd(), hotelCmd(), distanceCmd())
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
