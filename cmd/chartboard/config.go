package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wigest/chartboard/config"
)

// addConfigFlag registers the optional -c/--config flag on cmd.
func addConfigFlag(cmd *cobra.Command) {
	cmd.Flags().StringP("config", "c", "", "path to config file (defaults apply when omitted)")
}

// loadConfig reads the file named by --config, or returns the defaults
// when no file was given.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	configFile, _ := cmd.Flags().GetString("config")
	if configFile == "" {
		return config.Default(), nil
	}

	cfg, err := config.Load(configFile)
	if err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}
