// Package assets builds a static copy of the dashboard.
//
// The build bundles the browser entry point with esbuild and writes the
// page with the chart data inlined, so the output can be served by any
// static file server.
package assets

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/evanw/esbuild/pkg/api"

	"github.com/wigest/chartboard"
	"github.com/wigest/chartboard/chart"
	"github.com/wigest/chartboard/dashboard"
	"github.com/wigest/chartboard/internal/chartjs"
	"github.com/wigest/chartboard/internal/page"
)

// Source file names, relative to the source root.
const (
	indexFile = "index.html"
	entryFile = "src/main.js"
)

// Pipeline runs static builds. It is safe for concurrent use; builds are
// serialized.
type Pipeline struct {
	mu     sync.Mutex
	config Config
	logger *slog.Logger
}

// New creates a Pipeline. A nil logger uses [slog.Default].
func New(cfg Config, logger *slog.Logger) (*Pipeline, error) {
	if strings.TrimSpace(cfg.OutDir) == "" {
		return nil, errors.New("output directory cannot be empty")
	}
	if cfg.Root == "" {
		cfg.Root = "."
	}
	if len(cfg.Bindings) == 0 {
		return nil, errors.New("at least one chart is required")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Pipeline{config: cfg, logger: logger}, nil
}

// Build writes the dashboard into the output directory and returns the
// written files relative to it, sorted.
//
// The page is checked against the chart bindings first: under
// [chartboard.FailFast] a missing container aborts the build before
// anything is written.
func (p *Pipeline) Build() ([]string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	src, onDisk := Source(p.config.Root)
	tmpl, err := fs.ReadFile(src, indexFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", indexFile, err)
	}
	script, err := fs.ReadFile(src, entryFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", entryFile, err)
	}

	entries, err := p.mount(tmpl)
	if err != nil {
		return nil, err
	}

	outDir, err := filepath.Abs(p.config.OutDir)
	if err != nil {
		return nil, err
	}
	if p.config.EmptyOutDir {
		if err := p.emptyOutDir(outDir); err != nil {
			return nil, err
		}
	}

	p.logger.Info("building assets", "root", p.config.Root, "embedded", !onDisk, "out_dir", outDir)

	opts := api.BuildOptions{
		Stdin: &api.StdinOptions{
			Contents:   string(script),
			Sourcefile: entryFile,
			Loader:     api.LoaderJS,
		},
		Bundle:            true,
		Write:             true,
		Outfile:           filepath.Join(outDir, "assets", "main.js"),
		Format:            api.FormatIIFE,
		Target:            api.ES2017,
		MinifyWhitespace:  p.config.Minify,
		MinifyIdentifiers: p.config.Minify,
		MinifySyntax:      p.config.Minify,
		Sourcemap:         cond(p.config.Sourcemap, api.SourceMapLinked, api.SourceMapNone),
		LogLevel:          api.LogLevelSilent,
	}
	if onDisk {
		// relative imports in main.js resolve against src/
		resolveDir, err := filepath.Abs(filepath.Join(p.config.Root, "src"))
		if err != nil {
			return nil, err
		}
		opts.Stdin.ResolveDir = resolveDir
	}

	result := api.Build(opts)
	if len(result.Errors) > 0 {
		for _, msg := range result.Errors {
			p.logger.Error("build error", "error", msg.Text)
		}
		return nil, fmt.Errorf("esbuild failed with %d errors: %s", len(result.Errors), result.Errors[0].Text)
	}

	written := make([]string, 0, len(result.OutputFiles)+1)
	for _, file := range result.OutputFiles {
		rel, err := filepath.Rel(outDir, file.Path)
		if err != nil {
			return nil, err
		}
		written = append(written, filepath.ToSlash(rel))
		p.logger.Info("built file", "file", file.Path)
	}

	body, err := page.Render(tmpl, page.Data{
		Title:   p.config.Title,
		Base:    p.config.Base,
		Missing: p.config.Policy.String(),
		Charts:  entries,
	})
	if err != nil {
		return nil, err
	}
	if err := os.WriteFile(filepath.Join(outDir, indexFile), body, 0o644); err != nil {
		return nil, fmt.Errorf("failed to write %s: %w", indexFile, err)
	}
	written = append(written, indexFile)
	p.logger.Info("built file", "file", filepath.Join(outDir, indexFile))

	sort.Strings(written)
	return written, nil
}

// mount runs the initializer over the page template and collects the
// Chart.js configuration of every chart that has a container.
func (p *Pipeline) mount(tmpl []byte) ([]page.Entry, error) {
	doc, err := chartboard.ParseDocument(bytes.NewReader(tmpl))
	if err != nil {
		return nil, err
	}

	in, err := chartboard.NewInitializer(p.config.Bindings,
		chartboard.WithPolicy(p.config.Policy),
		chartboard.WithInitLogger(p.logger),
	)
	if err != nil {
		return nil, err
	}

	var entries []page.Entry
	collect := chartboard.RendererFunc(func(c chartboard.Container, spec chart.Chart) (chartboard.Handle, error) {
		entries = append(entries, page.Entry{ID: c.ID, Config: chartjs.FromChart(spec)})
		return chartboard.Handle{ID: c.ID}, nil
	})

	if _, err := in.Run(doc, collect); err != nil {
		return nil, fmt.Errorf("failed to mount charts: %w", err)
	}
	return entries, nil
}

// emptyOutDir removes and recreates outDir. It refuses to remove the
// source root, one of its parents, or the filesystem root.
func (p *Pipeline) emptyOutDir(outDir string) error {
	root, err := filepath.Abs(p.config.Root)
	if err != nil {
		return err
	}

	if outDir == filepath.Dir(outDir) {
		return fmt.Errorf("refusing to empty filesystem root %q", outDir)
	}
	if outDir == root || strings.HasPrefix(root, outDir+string(filepath.Separator)) {
		return fmt.Errorf("refusing to empty %q: it contains the source root %q", outDir, root)
	}

	if err := os.RemoveAll(outDir); err != nil {
		return fmt.Errorf("failed to empty output directory: %w", err)
	}
	p.logger.Debug("emptied output directory", "out_dir", outDir)
	return os.MkdirAll(outDir, 0o755)
}

// Source returns the filesystem holding index.html and src/main.js.
// It is root on disk when both files exist there, and the embedded
// dashboard sources otherwise. The boolean reports whether root was used.
func Source(root string) (fs.FS, bool) {
	disk := os.DirFS(root)
	if exists(disk, indexFile) && exists(disk, entryFile) {
		return disk, true
	}

	sub, err := fs.Sub(dashboard.Assets, "assets")
	if err != nil {
		// unreachable: the directory is embedded at compile time
		panic(err)
	}
	return sub, false
}

func exists(fsys fs.FS, name string) bool {
	info, err := fs.Stat(fsys, name)
	return err == nil && !info.IsDir()
}

func cond[T any](condition bool, trueVal, falseVal T) T {
	if condition {
		return trueVal
	}
	return falseVal
}
