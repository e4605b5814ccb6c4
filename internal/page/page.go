// Package page renders the dashboard page template.
//
// The template carries three placeholders (see package dashboard): the
// title, the public base path and the inlined chart data. The same
// rendering serves the live page and the static build output.
package page

import (
	"bytes"
	"encoding/json"
	"fmt"
	"html"

	"github.com/wigest/chartboard/dashboard"
	"github.com/wigest/chartboard/internal/chartjs"
)

// DefaultTitle is used when no title is configured.
const DefaultTitle = "Wigest"

// Entry is one chart inlined into the page.
type Entry struct {
	ID     string         `json:"id"`
	Config chartjs.Config `json:"config"`
}

// Data is substituted into the template.
type Data struct {
	Title string

	// Base prefixes asset URLs, e.g. "./" or "/dashboard/".
	Base string

	// Missing is the browser-side missing container policy, "fail" or "skip".
	Missing string

	Charts []Entry
}

// payload is the JSON inlined in the #chart-data element.
type payload struct {
	Missing string  `json:"missing"`
	Charts  []Entry `json:"charts"`
}

// Render substitutes d into tmpl.
//
// Title and base are HTML-escaped. The chart data is JSON encoded with
// HTML escaping, so it cannot terminate the surrounding script element.
func Render(tmpl []byte, d Data) ([]byte, error) {
	title := d.Title
	if title == "" {
		title = DefaultTitle
	}
	missing := d.Missing
	if missing == "" {
		missing = "fail"
	}
	charts := d.Charts
	if charts == nil {
		charts = []Entry{}
	}

	data, err := json.Marshal(payload{Missing: missing, Charts: charts})
	if err != nil {
		return nil, fmt.Errorf("failed to encode chart data: %w", err)
	}

	out := bytes.ReplaceAll(tmpl, []byte(dashboard.TitlePlaceholder), []byte(html.EscapeString(title)))
	out = bytes.ReplaceAll(out, []byte(dashboard.BasePlaceholder), []byte(html.EscapeString(d.Base)))
	out = bytes.ReplaceAll(out, []byte(dashboard.ChartDataPlaceholder), data)
	return out, nil
}
