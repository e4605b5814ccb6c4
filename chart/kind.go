package chart

import "fmt"

// Kind identifies the chart type.
//
// Kind is a string type so that it serializes directly into the "type" field
// of a Chart.js configuration.
type Kind string

const (
	// KindLine plots each dataset as a line across the labels.
	KindLine Kind = "line"

	// KindDoughnut is a pie with a hollow centre.
	KindDoughnut Kind = "doughnut"

	// KindBar draws one bar per label.
	KindBar Kind = "bar"

	// KindPie draws one slice per label.
	KindPie Kind = "pie"
)

// String returns the string representation of the kind.
// This implements the fmt.Stringer interface.
func (k Kind) String() string {
	return string(k)
}

// Valid reports whether k is one of the supported kinds.
func (k Kind) Valid() bool {
	switch k {
	case KindLine, KindDoughnut, KindBar, KindPie:
		return true
	}
	return false
}

// Circular reports whether the kind is drawn as slices of a circle.
// Circular charts require non-negative values.
func (k Kind) Circular() bool {
	return k == KindPie || k == KindDoughnut
}

// ParseKind converts s into a [Kind].
// Returns an error if s does not name a supported kind.
func ParseKind(s string) (Kind, error) {
	k := Kind(s)
	if !k.Valid() {
		return "", fmt.Errorf("unknown chart kind %q (expected line, doughnut, bar, or pie)", s)
	}
	return k, nil
}

// LegendPosition places the legend relative to the chart area.
type LegendPosition string

const (
	LegendTop    LegendPosition = "top"
	LegendBottom LegendPosition = "bottom"
	LegendLeft   LegendPosition = "left"
	LegendRight  LegendPosition = "right"
)

// Valid reports whether p is a supported legend position.
func (p LegendPosition) Valid() bool {
	switch p {
	case LegendTop, LegendBottom, LegendLeft, LegendRight:
		return true
	}
	return false
}

// Legend holds legend display options.
type Legend struct {
	// Display controls whether the legend is shown.
	Display bool

	// Position is where the legend is drawn when displayed.
	Position LegendPosition
}
