// Package chartjs converts chart specifications into Chart.js configurations.
//
// The output marshals to the object passed as the second argument of
// `new Chart(canvas, config)` in the browser.
package chartjs

import "github.com/wigest/chartboard/chart"

// Config is a Chart.js chart configuration.
type Config struct {
	Type    string  `json:"type"`
	Data    Data    `json:"data"`
	Options Options `json:"options"`
}

// Data holds the labels and datasets.
type Data struct {
	Labels   []string  `json:"labels"`
	Datasets []Dataset `json:"datasets"`
}

// Dataset is one Chart.js dataset.
//
// BackgroundColor is a string when a single colour applies to every point
// and a []string when there is one colour per label.
type Dataset struct {
	Label           string    `json:"label"`
	Data            []float64 `json:"data"`
	BackgroundColor any       `json:"backgroundColor,omitempty"`
	BorderColor     string    `json:"borderColor,omitempty"`
	Fill            *bool     `json:"fill,omitempty"`
	Tension         *float64  `json:"tension,omitempty"`
}

// Options holds display options.
type Options struct {
	Responsive bool    `json:"responsive"`
	Plugins    Plugins `json:"plugins"`
}

// Plugins holds the title and legend plugin options.
type Plugins struct {
	Title  Title  `json:"title"`
	Legend Legend `json:"legend"`
}

// Title configures the title plugin.
type Title struct {
	Display bool   `json:"display"`
	Text    string `json:"text,omitempty"`
}

// Legend configures the legend plugin.
type Legend struct {
	Display  bool   `json:"display"`
	Position string `json:"position,omitempty"`
}

// FromChart converts a chart specification into a Chart.js configuration.
func FromChart(c chart.Chart) Config {
	datasets := c.Datasets()
	out := make([]Dataset, len(datasets))
	for i, ds := range datasets {
		out[i] = fromDataset(c.Kind(), ds)
	}

	legend := c.Legend()
	cfg := Config{
		Type: c.Kind().String(),
		Data: Data{
			Labels:   c.Labels(),
			Datasets: out,
		},
		Options: Options{
			Responsive: true,
			Plugins: Plugins{
				Title:  Title{Display: c.Title() != "", Text: c.Title()},
				Legend: Legend{Display: legend.Display},
			},
		},
	}
	if legend.Display {
		cfg.Options.Plugins.Legend.Position = string(legend.Position)
	}
	return cfg
}

func fromDataset(kind chart.Kind, ds chart.Dataset) Dataset {
	out := Dataset{
		Label:       ds.Label(),
		Data:        ds.Values(),
		BorderColor: ds.Border(),
	}

	switch bg := ds.Backgrounds(); len(bg) {
	case 0:
	case 1:
		out.BackgroundColor = bg[0]
	default:
		out.BackgroundColor = bg
	}

	// fill and tension only mean something for lines
	if kind == chart.KindLine {
		fill := ds.Fill()
		tension := ds.Tension()
		out.Fill = &fill
		out.Tension = &tension
	}
	return out
}
