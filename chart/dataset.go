package chart

import (
	"errors"
	"fmt"
	"math"
)

// Dataset is one series of values plotted against a chart's labels.
//
// Dataset is immutable after creation via [NewDataset]. Getters return
// copies of slices so a dataset cannot be modified once built.
type Dataset struct {
	label       string
	values      []float64
	backgrounds []string
	border      string
	fill        bool
	tension     float64
}

// Label returns the series name shown in legends and tooltips.
func (d Dataset) Label() string {
	return d.label
}

// Values returns a copy of the dataset values.
func (d Dataset) Values() []float64 {
	return append([]float64(nil), d.values...)
}

// Backgrounds returns a copy of the background colours.
// A single colour applies to every point; otherwise there is one per label.
func (d Dataset) Backgrounds() []string {
	if d.backgrounds == nil {
		return nil
	}
	return append([]string(nil), d.backgrounds...)
}

// Border returns the border (line) colour, or "" if unset.
func (d Dataset) Border() string {
	return d.border
}

// Fill reports whether the area under a line is filled.
func (d Dataset) Fill() bool {
	return d.fill
}

// Tension returns the bezier curve tension for line charts (0 draws straight lines).
func (d Dataset) Tension() float64 {
	return d.tension
}

// Len returns the number of values in the dataset.
func (d Dataset) Len() int {
	return len(d.values)
}

// datasetConfig holds mutable state during dataset construction.
type datasetConfig struct {
	backgrounds []string
	border      string
	fill        bool
	tension     float64
}

// DatasetOption configures a [Dataset] during construction.
type DatasetOption func(*datasetConfig) error

// WithBackground sets the background colours of a dataset.
//
// Pass a single colour to paint every point or bar the same, or one colour
// per label (the usual form for pie and doughnut slices). The count is
// checked against the labels when the dataset is attached to a chart.
//
// Returns an error if any colour fails to parse.
func WithBackground(colors ...string) DatasetOption {
	return func(cfg *datasetConfig) error {
		for i, c := range colors {
			if _, err := ParseColor(c); err != nil {
				return fmt.Errorf("background[%d]: %w", i, err)
			}
		}
		cfg.backgrounds = append(cfg.backgrounds, colors...)
		return nil
	}
}

// WithBorder sets the border colour, which is the stroke colour of a line chart.
func WithBorder(color string) DatasetOption {
	return func(cfg *datasetConfig) error {
		if _, err := ParseColor(color); err != nil {
			return fmt.Errorf("border: %w", err)
		}
		cfg.border = color
		return nil
	}
}

// WithFill fills the area under a line.
func WithFill(fill bool) DatasetOption {
	return func(cfg *datasetConfig) error {
		cfg.fill = fill
		return nil
	}
}

// WithTension sets the line curve tension, between 0 and 1.
func WithTension(t float64) DatasetOption {
	return func(cfg *datasetConfig) error {
		if t < 0 || t > 1 || math.IsNaN(t) {
			return errors.New("tension must be between 0 and 1")
		}
		cfg.tension = t
		return nil
	}
}

// NewDataset creates a [Dataset] with the given label and values.
//
// Returns an error if values is empty, contains NaN or infinity, or if
// any option is invalid.
func NewDataset(label string, values []float64, opts ...DatasetOption) (Dataset, error) {
	if len(values) == 0 {
		return Dataset{}, errors.New("dataset must have at least one value")
	}
	for i, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return Dataset{}, fmt.Errorf("value[%d] is not a finite number", i)
		}
	}

	cfg := &datasetConfig{}
	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return Dataset{}, err
		}
	}

	return Dataset{
		label:       label,
		values:      append([]float64(nil), values...),
		backgrounds: cfg.backgrounds,
		border:      cfg.border,
		fill:        cfg.fill,
		tension:     cfg.tension,
	}, nil
}
