// Package main is the entry point for the chartboard CLI.
//
// chartboard can be run either as a library (SDK) or as a standalone binary
// with YAML configuration. This CLI provides the standalone binary approach.
//
// Usage:
//
//	chartboard serve -c chartboard.yaml    # Start the dev server
//	chartboard build -c chartboard.yaml    # Write a static build to out_dir
//	chartboard validate -c chartboard.yaml # Validate configuration
//	chartboard version                     # Show version info
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// Version information - set by GoReleaser at build time via ldflags.
// Example: go build -ldflags "-X main.version=1.0.0"
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// rootCmd is the base command when called without subcommands.
// It just displays help - actual functionality is in subcommands.
var rootCmd = &cobra.Command{
	Use:   "chartboard",
	Short: "A static chart dashboard with a dev server and build",
	Long: `chartboard serves and builds the Wigest overview dashboard.

The dashboard mounts one Chart.js chart per container of the page:
attendance (line), profiles (doughnut), applications (bar) and
synchronisation (pie). The data is literal, taken from the built-in
dashboard or from the charts section of the config file.

Quick start:
  1. Run: chartboard serve
  2. Open http://localhost:1122 in your browser

Example config:
  title: Wigest
  base: ./
  build:
    out_dir: dist
    empty_out_dir: true
  server:
    port: 1122
    open: true
  missing_containers: fail`,
	PersistentPreRunE: loadEnv,
	// No Run/RunE means this just shows help when called without subcommands
}

// Execute runs the root command.
// This is the main entry point called from main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		// Cobra already prints the error, just exit with code 1
		os.Exit(1)
	}
}

func main() {
	Execute()
}

// versionCmd prints version information.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Long:  `Print the version, commit hash, and build date of this chartboard binary.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("chartboard %s\n", version)
		fmt.Printf("  commit: %s\n", commit)
		fmt.Printf("  built:  %s\n", date)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)

	rootCmd.PersistentFlags().String("env-file", "", "load environment variables from this file before reading the config")
}

// loadEnv loads --env-file, or a .env in the working directory when
// present, so that ${VAR} references in the config can use it.
func loadEnv(cmd *cobra.Command, args []string) error {
	envFile, _ := cmd.Flags().GetString("env-file")
	if envFile == "" {
		_ = godotenv.Load()
		return nil
	}
	if err := godotenv.Load(envFile); err != nil {
		return fmt.Errorf("failed to load env file: %w", err)
	}
	return nil
}
