package chartboard

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/browser"

	"github.com/wigest/chartboard/chart"
	"github.com/wigest/chartboard/dashboard"
	"github.com/wigest/chartboard/internal/server"
	"github.com/wigest/chartboard/internal/store"
)

const (
	defaultPort  = 1122
	defaultBase  = "./"
	defaultTitle = "Wigest"
)

// Board hosts the dashboard: it mounts the configured charts into the page
// and serves the page, its script and the chart API over HTTP.
//
// Board is created using [New] with functional options and started with
// [Board.Start]. The typical lifecycle is:
//
//	b, err := chartboard.New(chartboard.WithCharts(chartboard.SampleBindings()...))
//	if err != nil {
//	    slog.Error("failed to create board", "error", err)
//	    os.Exit(1)
//	}
//
//	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
//	defer cancel()
//
//	b.Start(ctx) // blocks until context cancelled
type Board struct {
	title       string
	base        string
	port        int
	openBrowser bool
	bindings    []Binding
	policy      MissingPolicy
	logger      *slog.Logger
	page        []byte
	static      fs.FS
	cacheSize   int

	store  *store.MemoryStore
	opener func(url string) error
}

// New creates a new [Board] with the given options.
//
// At least one chart must be configured via [WithChart] or [WithCharts].
// Other options have defaults:
//   - Port: 1122
//   - Title: "Wigest"
//   - Base: "./"
//   - Missing containers: [FailFast]
//   - Page and script: the embedded dashboard assets
//
// Returns an error if no charts are configured, a container id is repeated,
// or any option is invalid.
func New(opts ...Option) (*Board, error) {
	cfg := &boardConfig{
		title:  defaultTitle,
		base:   defaultBase,
		port:   defaultPort,
		policy: FailFast,
	}

	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}

	if len(cfg.bindings) == 0 {
		return nil, errors.New("at least one chart is required")
	}

	// validate container uniqueness up front rather than on first mount
	seen := make(map[string]bool, len(cfg.bindings))
	for _, b := range cfg.bindings {
		if seen[b.ContainerID] {
			return nil, fmt.Errorf("duplicate container id: %q", b.ContainerID)
		}
		seen[b.ContainerID] = true
	}

	logger := cfg.logger
	if logger == nil {
		logger = slog.Default()
	}

	page := cfg.page
	if page == nil {
		data, err := fs.ReadFile(dashboard.Assets, dashboard.IndexPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read dashboard page: %w", err)
		}
		page = data
	}

	static := cfg.static
	if static == nil {
		sub, err := fs.Sub(dashboard.Assets, "assets/src")
		if err != nil {
			return nil, fmt.Errorf("failed to open dashboard scripts: %w", err)
		}
		static = sub
	}

	return &Board{
		title:       cfg.title,
		base:        cfg.base,
		port:        cfg.port,
		openBrowser: cfg.openBrowser,
		bindings:    cfg.bindings,
		policy:      cfg.policy,
		logger:      logger,
		page:        page,
		static:      static,
		cacheSize:   cfg.cacheSize,
		store:       store.NewMemoryStore(),
		opener:      browser.OpenURL,
	}, nil
}

// Mount parses the dashboard page and mounts every configured chart into it.
//
// Mount is the run-once initializer of the page. It may be called again;
// each call replaces the previous mounts with structurally identical ones.
// Under [FailFast] a missing container returns a [*MissingContainerError]
// and nothing is mounted.
func (b *Board) Mount() ([]Mount, error) {
	doc, err := ParseDocument(bytes.NewReader(b.page))
	if err != nil {
		return nil, err
	}

	in, err := NewInitializer(b.bindings, WithPolicy(b.policy), WithInitLogger(b.logger))
	if err != nil {
		return nil, err
	}

	b.store.Reset()
	mounts, err := in.Run(doc, b.recorder())
	if err != nil {
		b.store.Reset()
		return nil, err
	}
	return mounts, nil
}

// recorder returns the [Renderer] that records charts for the HTTP server.
// The browser draws them; each mount gets a fresh handle id.
func (b *Board) recorder() Renderer {
	return RendererFunc(func(c Container, spec chart.Chart) (Handle, error) {
		h := Handle{ID: uuid.NewString()}
		b.store.Put(store.Record{
			ContainerID: c.ID,
			HandleID:    h.ID,
			Chart:       spec,
			MountedAt:   time.Now(),
		})
		return h, nil
	})
}

// Start mounts the charts and serves the dashboard.
//
// Start is a blocking call that runs until the provided context is cancelled.
// During execution:
//
//   - The charts are mounted into the page (see [Board.Mount])
//   - The HTTP server starts on the configured port
//   - The dashboard is opened in a browser if [WithOpenBrowser] was set
//
// Returns nil on graceful shutdown. Returns an error if mounting fails or
// the HTTP server fails to start; in both cases no port stays bound.
func (b *Board) Start(ctx context.Context) error {
	// check if context already cancelled
	if ctx.Err() != nil {
		return nil
	}

	mounts, err := b.Mount()
	if err != nil {
		return fmt.Errorf("failed to mount charts: %w", err)
	}
	b.logger.Info("charts mounted", "count", len(mounts), "configured", len(b.bindings))

	srv, err := server.NewServer(b.store, server.Config{
		Port:      b.port,
		Title:     b.title,
		Base:      b.base,
		Missing:   b.policy.String(),
		Page:      b.page,
		Static:    b.static,
		CacheSize: b.cacheSize,
	}, b.logger)
	if err != nil {
		return err
	}
	if err := srv.Start(ctx); err != nil {
		return fmt.Errorf("failed to start HTTP server: %w", err)
	}

	b.logger.Info("dashboard available", "url", b.URL())

	if b.openBrowser {
		if err := b.opener(b.URL()); err != nil {
			b.logger.Warn("failed to open browser", "url", b.URL(), "error", err)
		}
	}

	<-ctx.Done()
	b.logger.Info("chartboard stopped")
	return nil
}

// Bindings returns a copy of the configured chart bindings.
func (b *Board) Bindings() []Binding {
	return append([]Binding(nil), b.bindings...)
}

// Port returns the configured HTTP port.
func (b *Board) Port() int {
	return b.port
}

// URL returns the local address of the dashboard.
func (b *Board) URL() string {
	return fmt.Sprintf("http://localhost:%d/", b.port)
}
