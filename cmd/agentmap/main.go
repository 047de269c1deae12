package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/fleetglass/agentmap/internal/logging"
)

// Version information (set at build time with -ldflags)
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

var (
	flagLogLevel  string
	flagLogFormat string
	flagRegistry  string
)

var rootCmd = &cobra.Command{
	Use:     "agentmap",
	Short:   "agentmap - CSV column mapping for bulk agent import",
	Long:    `agentmap infers which agent configuration field each column of a CSV file represents, with a confidence score per column and for the whole mapping`,
	Version: Version,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logging.Init(logging.Config{
			Format:    flagLogFormat,
			Level:     flagLogLevel,
			Component: "agentmap",
		})
	},
}

func init() {
	// Environment defaults may come from a .env alongside the binary
	_ = godotenv.Load()

	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", envOr("AGENTMAP_LOG_LEVEL", "info"), "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&flagLogFormat, "log-format", envOr("AGENTMAP_LOG_FORMAT", "auto"), "log format (json, console, auto)")
	rootCmd.PersistentFlags().StringVar(&flagRegistry, "registry", os.Getenv("AGENTMAP_REGISTRY"), "path to a registry YAML file (default: built-in registry)")

	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(evalCmd)
	rootCmd.AddCommand(corpusCmd)
	rootCmd.AddCommand(registryCmd)
	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("agentmap %s\n", Version)
		if BuildTime != "unknown" {
			fmt.Printf("Built: %s\n", BuildTime)
		}
		if GitCommit != "unknown" {
			fmt.Printf("Commit: %s\n", GitCommit)
		}
	},
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
