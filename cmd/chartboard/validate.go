package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/wigest/chartboard/config"
)

// validateCmd validates a config file without starting the server.
var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a config file",
	Long: `Validate a chartboard configuration file without starting the server.

This command parses the YAML, expands environment variables, validates
all fields and builds every chart. It prints the resolved build settings
and the chart table. It's useful for CI/CD pipelines or pre-deployment
checks.

Exit codes:
  0 - Config is valid
  1 - Config is invalid (error details printed to stderr)

Example:
  chartboard validate -c chartboard.yaml
  chartboard validate --config /etc/chartboard/chartboard.yaml`,
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)

	addConfigFlag(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	bindings, err := config.BuildCharts(cfg)
	if err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	source := "config"
	if len(cfg.Charts) == 0 {
		source = "built-in"
	}

	fmt.Printf("Config is valid!\n")
	fmt.Printf("  Title:         %s\n", cfg.Title)
	fmt.Printf("  Root:          %s\n", cfg.Root)
	fmt.Printf("  Base:          %s\n", cfg.Base)
	fmt.Printf("  Out dir:       %s (empty before build: %t)\n", cfg.Build.OutDir, cfg.Build.ShouldEmptyOutDir())
	fmt.Printf("  Port:          %d (open browser: %t)\n", cfg.Server.Port, cfg.Server.ShouldOpen())
	fmt.Printf("  Missing:       %s\n", cfg.MissingContainers)
	fmt.Printf("  Charts:        %d (%s)\n", len(bindings), source)

	tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	for _, b := range bindings {
		fmt.Fprintf(tw, "    %s\t%s\t%d labels\t%d datasets\n",
			b.ContainerID, b.Chart.Kind(), len(b.Chart.Labels()), len(b.Chart.Datasets()))
	}
	return tw.Flush()
}
