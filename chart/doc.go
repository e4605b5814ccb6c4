// Package chart defines the typed chart specifications rendered by chartboard.
//
// A [Chart] describes one widget: its [Kind], category labels, one or more
// [Dataset] values aligned positionally with those labels, and a small set of
// display options (title and legend). Charts are immutable once built and are
// validated at construction time, so an invalid specification never reaches
// a renderer.
//
//	ds, _ := chart.NewDataset("Présences", []float64{42, 38, 45, 40, 36},
//	    chart.WithBorder("#4e73df"),
//	)
//	c, err := chart.New(chart.KindLine,
//	    []string{"Lun", "Mar", "Mer", "Jeu", "Ven"},
//	    chart.WithDataset(ds),
//	    chart.WithTitle("Présences de la semaine"),
//	)
//
// The package has no rendering logic of its own. The browser dashboard hands
// charts to Chart.js; server-side images are produced by internal/render.
package chart
