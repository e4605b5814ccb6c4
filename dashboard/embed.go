// Package dashboard provides the embedded web UI assets for chartboard.
//
// This package uses Go's embed directive to include the dashboard page and
// its script at compile time. This enables single-binary deployment without
// external asset files.
//
// The page is a template: the server and the build pipeline substitute the
// title, the public base path and the inlined chart data before serving or
// writing it. Users of the chartboard library should not need to interact
// with this package directly.
package dashboard

import "embed"

// Assets is an embedded filesystem containing the dashboard web UI.
//
// The filesystem structure is:
//
//	assets/
//	  index.html    - Page template with the four chart containers
//	  src/main.js   - Browser entry point that mounts charts with Chart.js
//
//go:embed assets
var Assets embed.FS

// Paths of the embedded files, relative to [Assets].
const (
	IndexPath = "assets/index.html"
	EntryPath = "assets/src/main.js"
)

// Placeholders substituted in the page template.
const (
	TitlePlaceholder     = "{{.Title}}"
	BasePlaceholder      = "{{.Base}}"
	ChartDataPlaceholder = "{{.ChartData}}"
)
