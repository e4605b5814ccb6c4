package chartboard

import "github.com/wigest/chartboard/chart"

// Container ids of the sample dashboard page.
const (
	ContainerPresences    = "chartPresences"
	ContainerProfils      = "chartProfils"
	ContainerCandidatures = "chartCandidatures"
	ContainerSync         = "chartSync"
)

// SampleBindings returns the four charts of the Wigest overview page.
//
// The values are literal constants; every call returns structurally
// identical charts. SampleBindings panics if a literal is invalid, which
// the package tests rule out.
func SampleBindings() []Binding {
	return []Binding{
		{ContainerID: ContainerPresences, Chart: presencesChart()},
		{ContainerID: ContainerProfils, Chart: profilsChart()},
		{ContainerID: ContainerCandidatures, Chart: candidaturesChart()},
		{ContainerID: ContainerSync, Chart: syncChart()},
	}
}

func presencesChart() chart.Chart {
	ds := must(chart.NewDataset("Présences", []float64{120, 135, 128, 142, 110},
		chart.WithBorder("#4e73df"),
		chart.WithBackground("rgba(78, 115, 223, 0.1)"),
		chart.WithFill(true),
		chart.WithTension(0.3),
	))
	return must(chart.New(chart.KindLine,
		[]string{"Lundi", "Mardi", "Mercredi", "Jeudi", "Vendredi"},
		chart.WithDataset(ds),
		chart.WithTitle("Présences de la semaine"),
		chart.WithoutLegend(),
	))
}

func profilsChart() chart.Chart {
	ds := must(chart.NewDataset("Profils", []float64{55, 30, 15},
		chart.WithBackground("#4e73df", "#1cc88a", "#36b9cc"),
	))
	return must(chart.New(chart.KindDoughnut,
		[]string{"Développeurs", "Designers", "Managers"},
		chart.WithDataset(ds),
		chart.WithTitle("Répartition des profils"),
		chart.WithLegend(chart.LegendBottom),
	))
}

func candidaturesChart() chart.Chart {
	ds := must(chart.NewDataset("Candidatures", []float64{42, 18, 9},
		chart.WithBackground("#36b9cc", "#f6c23e", "#e74a3b"),
	))
	return must(chart.New(chart.KindBar,
		[]string{"Reçues", "En cours", "Refusées"},
		chart.WithDataset(ds),
		chart.WithTitle("Suivi des candidatures"),
		chart.WithoutLegend(),
	))
}

func syncChart() chart.Chart {
	ds := must(chart.NewDataset("Synchronisation", []float64{87, 13},
		chart.WithBackground("#1cc88a", "#e74a3b"),
	))
	return must(chart.New(chart.KindPie,
		[]string{"Synchronisés", "En échec"},
		chart.WithDataset(ds),
		chart.WithTitle("État de la synchronisation"),
		chart.WithLegend(chart.LegendBottom),
	))
}

func must[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}
