package chart

import (
	"errors"
	"fmt"
	"strings"
)

// Chart is an immutable chart specification.
//
// Charts are created with [New] and configured with [Option] values such as
// [WithDataset], [WithTitle] and [WithLegend]. Construction enforces that
// every dataset is aligned with the labels, so renderers can index values
// by label position without further checks.
type Chart struct {
	kind     Kind
	labels   []string
	datasets []Dataset
	title    string
	legend   Legend
}

// Kind returns the chart type.
func (c Chart) Kind() Kind {
	return c.kind
}

// Labels returns a copy of the category labels.
func (c Chart) Labels() []string {
	return append([]string(nil), c.labels...)
}

// Datasets returns a copy of the datasets in declaration order.
func (c Chart) Datasets() []Dataset {
	return append([]Dataset(nil), c.datasets...)
}

// Title returns the chart title, or "" for no title.
func (c Chart) Title() string {
	return c.title
}

// Legend returns the legend options.
func (c Chart) Legend() Legend {
	return c.legend
}

// chartConfig holds mutable state during chart construction.
type chartConfig struct {
	datasets []Dataset
	title    string
	legend   Legend
}

// Option configures a [Chart] during construction.
//
// Option implements the functional options pattern for [New].
// Options return an error if validation fails.
type Option func(*chartConfig) error

// WithDataset appends a dataset to the chart.
// Can be called multiple times; datasets keep their declaration order.
func WithDataset(ds Dataset) Option {
	return func(cfg *chartConfig) error {
		cfg.datasets = append(cfg.datasets, ds)
		return nil
	}
}

// WithDatasets appends several datasets at once.
func WithDatasets(ds ...Dataset) Option {
	return func(cfg *chartConfig) error {
		cfg.datasets = append(cfg.datasets, ds...)
		return nil
	}
}

// WithTitle sets the chart title.
func WithTitle(title string) Option {
	return func(cfg *chartConfig) error {
		cfg.title = title
		return nil
	}
}

// WithLegend shows the legend at the given position.
//
// Returns an error if the position is not top, bottom, left or right.
func WithLegend(pos LegendPosition) Option {
	return func(cfg *chartConfig) error {
		if !pos.Valid() {
			return fmt.Errorf("invalid legend position %q", pos)
		}
		cfg.legend = Legend{Display: true, Position: pos}
		return nil
	}
}

// WithoutLegend hides the legend.
func WithoutLegend() Option {
	return func(cfg *chartConfig) error {
		cfg.legend.Display = false
		return nil
	}
}

// New creates a [Chart] of the given kind over the given labels.
//
// The legend is displayed at the top unless [WithLegend] or [WithoutLegend]
// says otherwise.
//
// Returns an error if:
//   - kind is not a supported [Kind]
//   - labels is empty or contains a blank label
//   - no dataset was supplied
//   - a dataset's value count differs from the label count
//   - a dataset has more than one background colour but not one per label
//   - a pie or doughnut dataset contains a negative value
func New(kind Kind, labels []string, opts ...Option) (Chart, error) {
	if !kind.Valid() {
		return Chart{}, fmt.Errorf("unknown chart kind %q", kind)
	}
	if len(labels) == 0 {
		return Chart{}, errors.New("chart must have at least one label")
	}
	for i, l := range labels {
		if strings.TrimSpace(l) == "" {
			return Chart{}, fmt.Errorf("label[%d] cannot be empty", i)
		}
	}

	cfg := &chartConfig{
		legend: Legend{Display: true, Position: LegendTop},
	}
	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return Chart{}, err
		}
	}

	if len(cfg.datasets) == 0 {
		return Chart{}, errors.New("chart must have at least one dataset")
	}
	for i, ds := range cfg.datasets {
		if err := checkDataset(kind, len(labels), ds); err != nil {
			return Chart{}, fmt.Errorf("dataset[%d] (%s): %w", i, ds.label, err)
		}
	}
	if cfg.legend.Position == "" {
		cfg.legend.Position = LegendTop
	}

	return Chart{
		kind:     kind,
		labels:   append([]string(nil), labels...),
		datasets: append([]Dataset(nil), cfg.datasets...),
		title:    cfg.title,
		legend:   cfg.legend,
	}, nil
}

// checkDataset validates a dataset against the chart it is attached to.
func checkDataset(kind Kind, labelCount int, ds Dataset) error {
	if ds.Len() != labelCount {
		return fmt.Errorf("has %d values for %d labels", ds.Len(), labelCount)
	}
	if n := len(ds.backgrounds); n > 1 && n != labelCount {
		return fmt.Errorf("has %d background colours, want 1 or %d", n, labelCount)
	}
	if kind.Circular() {
		for i, v := range ds.values {
			if v < 0 {
				return fmt.Errorf("value[%d] is negative (%g), not allowed for %s charts", i, v, kind)
			}
		}
	}
	return nil
}
