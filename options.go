package chartboard

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"strings"

	"github.com/wigest/chartboard/chart"
)

// boardConfig holds mutable state during Board construction.
type boardConfig struct {
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
}

// Option is a function that configures a [Board] during construction.
//
// Option implements the functional options pattern, allowing optional
// configuration to be passed to [New] in a type-safe, extensible way.
// Options return an error if validation fails.
type Option func(*boardConfig) error

// WithChart binds a chart to the container with the given id.
//
// Can be called multiple times to add multiple charts. At least one
// chart must be configured for [New] to succeed.
//
// Example:
//
//	b, err := chartboard.New(
//	    chartboard.WithChart("chartSync", syncChart),
//	)
//
// Returns an error if the container id is empty.
func WithChart(containerID string, c chart.Chart) Option {
	return func(cfg *boardConfig) error {
		if strings.TrimSpace(containerID) == "" {
			return errors.New("container id cannot be empty")
		}
		cfg.bindings = append(cfg.bindings, Binding{ContainerID: containerID, Chart: c})
		return nil
	}
}

// WithCharts adds several bindings at once, in order.
//
// Example:
//
//	b, err := chartboard.New(
//	    chartboard.WithCharts(chartboard.SampleBindings()...),
//	)
func WithCharts(bindings ...Binding) Option {
	return func(cfg *boardConfig) error {
		for _, b := range bindings {
			if strings.TrimSpace(b.ContainerID) == "" {
				return errors.New("container id cannot be empty")
			}
		}
		cfg.bindings = append(cfg.bindings, bindings...)
		return nil
	}
}

// WithPort sets the HTTP port for the dashboard server.
//
// The dashboard will be available at http://localhost:<port>.
// Defaults to 1122 if not specified.
//
// Returns an error if the port is outside the valid range (1-65535).
func WithPort(port int) Option {
	return func(cfg *boardConfig) error {
		if port < 1 || port > 65535 {
			return fmt.Errorf("port must be between 1 and 65535, got %d", port)
		}
		cfg.port = port
		return nil
	}
}

// WithBase sets the public path prefix of asset URLs in the page.
//
// Use "./" (the default) for relative URLs, or an absolute prefix such as
// "/dashboard/" when the page is served below the site root.
//
// Returns an error if base is empty or does not end with "/".
func WithBase(base string) Option {
	return func(cfg *boardConfig) error {
		if !strings.HasSuffix(base, "/") {
			return fmt.Errorf("base must end with \"/\", got %q", base)
		}
		cfg.base = base
		return nil
	}
}

// WithTitle sets the dashboard title displayed in the browser tab and header.
//
// If not specified, defaults to "Wigest".
func WithTitle(title string) Option {
	return func(cfg *boardConfig) error {
		cfg.title = title
		return nil
	}
}

// WithMissingContainers sets what happens when a bound container is not in
// the page. Defaults to [FailFast].
func WithMissingContainers(p MissingPolicy) Option {
	return func(cfg *boardConfig) error {
		if p != FailFast && p != SkipMissing {
			return fmt.Errorf("unknown missing container policy %d", int(p))
		}
		cfg.policy = p
		return nil
	}
}

// WithOpenBrowser opens the dashboard in the default browser once the
// server is listening. Failure to open is logged, not returned.
func WithOpenBrowser(open bool) Option {
	return func(cfg *boardConfig) error {
		cfg.openBrowser = open
		return nil
	}
}

// WithLogger sets a custom [slog.Logger] for the Board.
//
// If not specified, [slog.Default] is used.
//
// Returns an error if the logger is nil.
func WithLogger(logger *slog.Logger) Option {
	return func(cfg *boardConfig) error {
		if logger == nil {
			return errors.New("logger cannot be nil")
		}
		cfg.logger = logger
		return nil
	}
}

// WithPage replaces the embedded page template.
//
// The template must contain the containers of the configured charts and
// may use the {{.Title}}, {{.Base}} and {{.ChartData}} placeholders.
//
// Returns an error if the template is empty.
func WithPage(tmpl []byte) Option {
	return func(cfg *boardConfig) error {
		if len(tmpl) == 0 {
			return errors.New("page template cannot be empty")
		}
		cfg.page = tmpl
		return nil
	}
}

// WithStatic replaces the filesystem served under /assets/, for example
// with the assets directory of a build output.
//
// Returns an error if fsys is nil.
func WithStatic(fsys fs.FS) Option {
	return func(cfg *boardConfig) error {
		if fsys == nil {
			return errors.New("static filesystem cannot be nil")
		}
		cfg.static = fsys
		return nil
	}
}

// WithImageCacheSize sets how many rendered chart images are kept in memory.
//
// Returns an error if n is not positive.
func WithImageCacheSize(n int) Option {
	return func(cfg *boardConfig) error {
		if n <= 0 {
			return errors.New("image cache size must be positive")
		}
		cfg.cacheSize = n
		return nil
	}
}
