package assets

import "github.com/wigest/chartboard"

// Config controls a static build of the dashboard.
type Config struct {
	// Root holds index.html and src/main.js. When either is missing the
	// embedded dashboard sources are used.
	Root string

	// OutDir receives index.html and assets/main.js.
	OutDir string

	// EmptyOutDir removes everything in OutDir before writing.
	EmptyOutDir bool

	// Minify minifies the bundled script.
	Minify bool

	// Sourcemap writes a linked main.js.map next to the bundle.
	Sourcemap bool

	// Title and Base are substituted into the page.
	Title string
	Base  string

	// Bindings are the charts inlined into the page.
	Bindings []chartboard.Binding

	// Policy decides what happens when the page lacks a bound container.
	Policy chartboard.MissingPolicy
}

// DefaultConfig returns the configuration of a plain "chartboard build".
func DefaultConfig() Config {
	return Config{
		Root:        ".",
		OutDir:      "dist",
		EmptyOutDir: true,
		Title:       "Wigest",
		Base:        "./",
		Bindings:    chartboard.SampleBindings(),
		Policy:      chartboard.FailFast,
	}
}
