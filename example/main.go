package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/wigest/chartboard"
	"github.com/wigest/chartboard/chart"
)

func main() {
	// compare two weeks of attendance in place of the single-week chart
	thisWeek, err := chart.NewDataset("Cette semaine", []float64{120, 135, 128, 142, 110},
		chart.WithBorder("#4e73df"),
		chart.WithBackground("rgba(78, 115, 223, 0.1)"),
		chart.WithFill(true),
		chart.WithTension(0.3),
	)
	if err != nil {
		slog.Error("failed to create dataset", "error", err)
		os.Exit(1)
	}
	lastWeek, err := chart.NewDataset("Semaine dernière", []float64{98, 121, 130, 125, 104},
		chart.WithBorder("#858796"),
		chart.WithTension(0.3),
	)
	if err != nil {
		slog.Error("failed to create dataset", "error", err)
		os.Exit(1)
	}

	presences, err := chart.New(chart.KindLine,
		[]string{"Lundi", "Mardi", "Mercredi", "Jeudi", "Vendredi"},
		chart.WithDatasets(thisWeek, lastWeek),
		chart.WithTitle("Présences"),
		chart.WithLegend(chart.LegendBottom),
	)
	if err != nil {
		slog.Error("failed to create chart", "error", err)
		os.Exit(1)
	}

	// keep the other three built-in charts
	bindings := []chartboard.Binding{{ContainerID: chartboard.ContainerPresences, Chart: presences}}
	for _, b := range chartboard.SampleBindings() {
		if b.ContainerID != chartboard.ContainerPresences {
			bindings = append(bindings, b)
		}
	}

	b, err := chartboard.New(
		chartboard.WithCharts(bindings...),
		chartboard.WithTitle("Wigest (démo)"),
		chartboard.WithPort(8080),
	)
	if err != nil {
		slog.Error("failed to create board", "error", err)
		os.Exit(1)
	}

	fmt.Println()
	fmt.Println("  ╔═══════════════════════════════════════════════════════╗")
	fmt.Println("  ║                                                       ║")
	fmt.Println("  ║   chartboard Demo                                     ║")
	fmt.Println("  ║                                                       ║")
	fmt.Println("  ║   Open http://localhost:8080 in your browser          ║")
	fmt.Println("  ║                                                       ║")
	fmt.Println("  ║   Charts:                                             ║")
	fmt.Println("  ║   • attendance, two weeks (line)                      ║")
	fmt.Println("  ║   • 3 built-in (doughnut, bar, pie)                   ║")
	fmt.Println("  ║   • PNG: http://localhost:8080/charts/chartSync.png   ║")
	fmt.Println("  ║                                                       ║")
	fmt.Println("  ║   Press Ctrl+C to stop                                ║")
	fmt.Println("  ║                                                       ║")
	fmt.Println("  ╚═══════════════════════════════════════════════════════╝")
	fmt.Println()

	// set up context with signal handling for graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := b.Start(ctx); err != nil {
		slog.Error("chartboard error", "error", err)
		os.Exit(1)
	}
}
