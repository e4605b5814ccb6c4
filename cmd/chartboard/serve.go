package main

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/wigest/chartboard"
	"github.com/wigest/chartboard/config"
	"github.com/wigest/chartboard/internal/assets"
)

const (
	shutdownTimeout = 10 * time.Second
)

// newLogger creates a JSON logger for CLI use.
func newLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
}

// serveCmd starts the dashboard dev server.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the dashboard dev server",
	Long: `Start the chartboard dev server.

The server will:
  - Load configuration from the YAML file, if given
  - Mount every chart into its container, failing on a missing
    container unless missing_containers is "skip"
  - Serve the dashboard on the configured port and open it in a browser

When the root directory holds index.html and src/main.js the server
serves those; otherwise it serves the embedded page.

With --dist the server serves the output of "chartboard build" instead
of the embedded page.

The server runs until interrupted (Ctrl+C) or receives SIGTERM.

Example:
  chartboard serve
  chartboard serve -c chartboard.yaml --no-open
  chartboard serve -c chartboard.yaml --dist --env-file .env.local`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	addConfigFlag(serveCmd)
	serveCmd.Flags().Bool("dist", false, "serve the build output directory instead of the embedded page")
	serveCmd.Flags().Bool("no-open", false, "do not open the dashboard in a browser")
}

func runServe(cmd *cobra.Command, args []string) error {
	logger := newLogger()

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	opts, err := config.BuildOptions(cfg)
	if err != nil {
		return fmt.Errorf("failed to build options: %w", err)
	}
	opts = append(opts, chartboard.WithLogger(logger))

	if noOpen, _ := cmd.Flags().GetBool("no-open"); noOpen {
		opts = append(opts, chartboard.WithOpenBrowser(false))
	}

	srcOpts, err := sourceOptions(cfg.Root)
	if err != nil {
		return err
	}
	if srcOpts != nil {
		opts = append(opts, srcOpts...)
		logger.Info("serving sources", "root", cfg.Root)
	}

	if dist, _ := cmd.Flags().GetBool("dist"); dist {
		distOpts, err := distOptions(cfg.Build.OutDir)
		if err != nil {
			return err
		}
		opts = append(opts, distOpts...)
		logger.Info("serving build output", "out_dir", cfg.Build.OutDir)
	}

	logger.Info("config loaded",
		"charts", len(cfg.Charts),
		"missing_containers", cfg.MissingContainers,
	)
	logger.Info("starting server", "port", cfg.Server.Port, "base", cfg.Base)

	b, err := chartboard.New(opts...)
	if err != nil {
		return fmt.Errorf("failed to create board: %w", err)
	}

	// set up context with signal handling - cancel on SIGINT/SIGTERM
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// start server - blocks until context cancelled
	errChan := make(chan error, 1)
	go func() {
		errChan <- b.Start(ctx)
	}()

	select {
	case err := <-errChan:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		logger.Info("shutdown complete")
		return nil

	case <-ctx.Done():
		// signal received, wait for graceful shutdown with timeout
		select {
		case err := <-errChan:
			if err != nil {
				return fmt.Errorf("server error: %w", err)
			}
			logger.Info("shutdown complete")
			return nil
		case <-time.After(shutdownTimeout):
			logger.Warn("shutdown timed out",
				"timeout", shutdownTimeout.String(),
				"action", "forcing exit",
			)
			return nil
		}
	}
}

// sourceOptions points the board at the page and scripts under root. It
// returns no options when root lacks them, leaving the embedded dashboard.
func sourceOptions(root string) ([]chartboard.Option, error) {
	src, onDisk := assets.Source(root)
	if !onDisk {
		return nil, nil
	}

	index, err := fs.ReadFile(src, "index.html")
	if err != nil {
		return nil, fmt.Errorf("failed to read page in %s: %w", root, err)
	}
	scripts, err := fs.Sub(src, "src")
	if err != nil {
		return nil, fmt.Errorf("failed to open scripts in %s: %w", root, err)
	}
	return []chartboard.Option{
		chartboard.WithPage(index),
		chartboard.WithStatic(scripts),
	}, nil
}

// distOptions points the board at a build output directory.
func distOptions(outDir string) ([]chartboard.Option, error) {
	index, err := os.ReadFile(filepath.Join(outDir, "index.html"))
	if err != nil {
		return nil, fmt.Errorf("no build output in %s (run chartboard build first): %w", outDir, err)
	}
	return []chartboard.Option{
		chartboard.WithPage(index),
		chartboard.WithStatic(os.DirFS(filepath.Join(outDir, "assets"))),
	}, nil
}
