// Package chartboard mounts a small set of declarative charts into a web
// dashboard and serves it.
//
// chartboard is SDK-first: charts are typed, immutable specifications from
// package chart, bound to the ids of container elements in the dashboard
// page. An [Initializer] resolves those containers in a [Document] and hands
// each chart to a [Renderer] exactly once. A [Board] wraps this in an HTTP
// server whose page draws the charts with Chart.js.
//
// # Quick Start
//
// Serve the sample Wigest dashboard with graceful shutdown:
//
//	b, _ := chartboard.New(chartboard.WithCharts(chartboard.SampleBindings()...))
//
//	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
//	defer stop()
//
//	b.Start(ctx) // blocks until context is cancelled
//
// # Missing Containers
//
// When a bound container is absent from the page, the [MissingPolicy]
// decides the outcome. [FailFast] (the default) returns a
// [*MissingContainerError] naming every missing id before anything is
// rendered. [SkipMissing] logs each one and mounts the rest. Containers
// must be <canvas> or <div> elements.
//
// # Architecture
//
// chartboard consists of several internal packages (under internal/):
//
//   - internal/store: registry of mounted charts
//   - internal/server: HTTP server for the page, JSON API and chart images
//   - internal/chartjs: conversion to Chart.js configurations
//   - internal/render: server-side PNG/SVG rendering
//   - internal/page: page template rendering
//   - internal/assets: esbuild-based static build
//   - dashboard: embedded page template and browser script
//
// The config package loads the YAML build specification used by the
// chartboard command.
package chartboard
