package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/wigest/chartboard"
	"github.com/wigest/chartboard/config"
	"github.com/wigest/chartboard/internal/assets"
)

// buildCmd writes a static build of the dashboard.
var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Write a static build of the dashboard",
	Long: `Write a static build of the dashboard to build.out_dir.

The build empties the output directory (unless build.empty_out_dir is
false), bundles src/main.js with esbuild and writes index.html with the
chart data inlined. Sources are read from root when it holds index.html
and src/main.js, and from the embedded dashboard otherwise.

Example:
  chartboard build
  chartboard build -c chartboard.yaml --env-file .env.production`,
	RunE: runBuild,
}

func init() {
	rootCmd.AddCommand(buildCmd)

	addConfigFlag(buildCmd)
}

func runBuild(cmd *cobra.Command, args []string) error {
	logger := newLogger()

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	bindings, err := config.BuildCharts(cfg)
	if err != nil {
		return err
	}
	policy, err := chartboard.ParseMissingPolicy(cfg.MissingContainers)
	if err != nil {
		return err
	}

	p, err := assets.New(assets.Config{
		Root:        cfg.Root,
		OutDir:      cfg.Build.OutDir,
		EmptyOutDir: cfg.Build.ShouldEmptyOutDir(),
		Minify:      cfg.Build.Minify,
		Sourcemap:   cfg.Build.Sourcemap,
		Title:       cfg.Title,
		Base:        cfg.Base,
		Bindings:    bindings,
		Policy:      policy,
	}, logger)
	if err != nil {
		return err
	}

	files, err := p.Build()
	if err != nil {
		return fmt.Errorf("build failed: %w", err)
	}

	fmt.Printf("Built %d files in %s\n", len(files), cfg.Build.OutDir)
	for _, f := range files {
		fmt.Printf("  %s\n", filepath.Join(cfg.Build.OutDir, f))
	}
	return nil
}
