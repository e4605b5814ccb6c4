package config

import (
	"fmt"
	"strings"

	"github.com/wigest/chartboard"
	"github.com/wigest/chartboard/chart"
)

// BuildCharts converts parsed configuration into SDK chart bindings.
//
// An empty charts list yields [chartboard.SampleBindings]. Errors name the
// offending entry, for example "charts[1] (chartProfils): ...".
func BuildCharts(cfg *Config) ([]chartboard.Binding, error) {
	if len(cfg.Charts) == 0 {
		return chartboard.SampleBindings(), nil
	}

	bindings := make([]chartboard.Binding, 0, len(cfg.Charts))
	seen := make(map[string]struct{}, len(cfg.Charts))

	for i, cc := range cfg.Charts {
		if strings.TrimSpace(cc.Container) == "" {
			return nil, fmt.Errorf("charts[%d]: container is required", i)
		}
		if _, exists := seen[cc.Container]; exists {
			return nil, fmt.Errorf("charts[%d] (%s): duplicate container", i, cc.Container)
		}
		seen[cc.Container] = struct{}{}

		c, err := buildChart(cc)
		if err != nil {
			return nil, fmt.Errorf("charts[%d] (%s): %w", i, cc.Container, err)
		}
		bindings = append(bindings, chartboard.Binding{ContainerID: cc.Container, Chart: c})
	}

	return bindings, nil
}

// buildChart converts a single ChartConfig to a chart.
func buildChart(cc ChartConfig) (chart.Chart, error) {
	kind, err := chart.ParseKind(cc.Type)
	if err != nil {
		return chart.Chart{}, err
	}

	datasets := make([]chart.Dataset, 0, len(cc.Datasets))
	for j, dc := range cc.Datasets {
		ds, err := buildDataset(dc)
		if err != nil {
			return chart.Chart{}, fmt.Errorf("datasets[%d]: %w", j, err)
		}
		datasets = append(datasets, ds)
	}

	opts := []chart.Option{chart.WithDatasets(datasets...)}

	if cc.Title != "" {
		opts = append(opts, chart.WithTitle(cc.Title))
	}

	switch {
	case cc.Legend.Hidden:
		opts = append(opts, chart.WithoutLegend())
	case cc.Legend.Position != "":
		opts = append(opts, chart.WithLegend(chart.LegendPosition(cc.Legend.Position)))
	}

	return chart.New(kind, cc.Labels, opts...)
}

// buildDataset converts a DatasetConfig to a dataset.
func buildDataset(dc DatasetConfig) (chart.Dataset, error) {
	var opts []chart.DatasetOption

	if len(dc.Background) > 0 {
		opts = append(opts, chart.WithBackground(dc.Background...))
	}
	if dc.Border != "" {
		opts = append(opts, chart.WithBorder(dc.Border))
	}
	if dc.Fill {
		opts = append(opts, chart.WithFill(true))
	}
	if dc.Tension != 0 {
		opts = append(opts, chart.WithTension(dc.Tension))
	}

	return chart.NewDataset(dc.Label, dc.Data, opts...)
}

// BuildOptions converts parsed configuration into [chartboard.Option]s for
// [chartboard.New]: title, base, port, browser launch, missing container
// policy and charts.
func BuildOptions(cfg *Config) ([]chartboard.Option, error) {
	policy, err := chartboard.ParseMissingPolicy(cfg.MissingContainers)
	if err != nil {
		return nil, fmt.Errorf("missing_containers: %w", err)
	}

	bindings, err := BuildCharts(cfg)
	if err != nil {
		return nil, err
	}

	return []chartboard.Option{
		chartboard.WithTitle(cfg.Title),
		chartboard.WithBase(cfg.Base),
		chartboard.WithPort(cfg.Server.Port),
		chartboard.WithOpenBrowser(cfg.Server.ShouldOpen()),
		chartboard.WithMissingContainers(policy),
		chartboard.WithCharts(bindings...),
	}, nil
}
