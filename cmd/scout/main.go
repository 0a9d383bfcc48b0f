// Package main provides the entry point for the scout reconnaissance CLI.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:           "scout",
	Short:         "OSINT contact and file reconnaissance",
	Long:          "Scout discovers employee contact emails and publicly indexed files for a target organization using a search API, a real browser, or both.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

var (
	rootConfigPath string
	rootAPIKey     string
	rootQuiet      bool
)

func init() {
	rootCmd.PersistentFlags().StringVar(&rootConfigPath, "config", "", "Config file path (default: ~/.scout.yaml)")
	rootCmd.PersistentFlags().StringVar(&rootAPIKey, "api-key", "", "Search API key (overrides SCOUT_API_KEY env var)")
	rootCmd.PersistentFlags().BoolVar(&rootQuiet, "quiet", false, "Suppress progress output (warnings still print)")
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
