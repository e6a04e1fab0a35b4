package view

import (
	"fmt"
	"strings"
)

// Mode selects one of the two dashboard views.
type Mode string

const (
	ByCountry Mode = "by-country"
	ByScore   Mode = "by-score"
)

// ChartType selects how the country distribution is drawn.
type ChartType string

const (
	Bar ChartType = "bar"
	Pie ChartType = "pie"
)

// Order selects which end of the score range ByScore shows.
type Order string

const (
	// Ascending shows the n lowest overall scores, lowest first.
	Ascending Order = "ascending"
	// Descending shows the n highest overall scores, highest first.
	Descending Order = "descending"
)

// Ascending reports whether the order maps to the smallest-first selection.
func (o Order) Ascending() bool { return o == Ascending }

// Slider bounds and defaults offered by the UI adapters.
const (
	MinCountLow     = 1
	MinCountHigh    = 50
	DefaultMinCount = 1
	DefaultTopN     = 20
)

// Params carries the control values for one render. ByCountry reads
// MinCount and ChartType; ByScore reads TopN and Order.
type Params struct {
	MinCount  int       `json:"min_count,omitempty" yaml:"min_count,omitempty"`
	ChartType ChartType `json:"chart_type,omitempty" yaml:"chart_type,omitempty"`
	TopN      int       `json:"top_n,omitempty" yaml:"top_n,omitempty"`
	Order     Order     `json:"order,omitempty" yaml:"order,omitempty"`
}

// Key identifies a (mode, params) pair, ignoring fields the mode does not read.
func Key(mode Mode, p Params) string {
	switch mode {
	case ByCountry:
		return fmt.Sprintf("%s|%d|%s", mode, p.MinCount, p.ChartType)
	case ByScore:
		return fmt.Sprintf("%s|%d|%s", mode, p.TopN, p.Order)
	default:
		return string(mode)
	}
}

// ParseMode accepts the canonical names plus the dashboard labels.
func ParseMode(s string) (Mode, error) {
	switch normalize(s) {
	case "by-country", "bycountry", "country", "top-universities-by-country":
		return ByCountry, nil
	case "by-score", "byscore", "score", "top-universities-based-on-score":
		return ByScore, nil
	}
	return "", fmt.Errorf("unknown mode %q (use by-country or by-score)", s)
}

// ParseChartType accepts "bar", "pie" and the "... chart" labels.
func ParseChartType(s string) (ChartType, error) {
	switch normalize(s) {
	case "bar", "bar-chart":
		return Bar, nil
	case "pie", "pie-chart":
		return Pie, nil
	}
	return "", fmt.Errorf("unknown chart type %q (use bar or pie)", s)
}

// ParseOrder accepts "ascending"/"descending" and their short forms.
func ParseOrder(s string) (Order, error) {
	switch normalize(s) {
	case "ascending", "asc":
		return Ascending, nil
	case "descending", "desc":
		return Descending, nil
	}
	return "", fmt.Errorf("unknown order %q (use ascending or descending)", s)
}

// ClampMinCount pins v to the min-count slider range.
func ClampMinCount(v int) int { return clamp(v, MinCountLow, MinCountHigh) }

// ClampTopN pins v to [1, size]. With an empty dataset there is no valid n
// and 0 is returned.
func ClampTopN(v, size int) int {
	if size < 1 {
		return 0
	}
	return clamp(v, 1, size)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func normalize(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(strings.ReplaceAll(s, "_", " "))), "-")
}
