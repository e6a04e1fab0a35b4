package view

import "github.com/KaramelBytes/unirank-cli/internal/rankings"

// Kind is the chart kind a renderer should draw.
type Kind string

const (
	KindBar     Kind = "bar"
	KindPie     Kind = "pie"
	KindScatter Kind = "scatter"
	// KindError carries a message to show as plain text instead of a chart.
	KindError Kind = "error"
	// KindNoData marks a session whose dataset is empty or failed to load.
	KindNoData Kind = "no_data"
)

// Layout holds presentation hints that do not change the data.
type Layout struct {
	BarGap float64 `json:"bar_gap,omitempty" yaml:"bar_gap,omitempty"`
}

// ChartSpec is a declarative chart: kind, channel-to-field mappings, title
// and the rows to plot. Renderers must not modify the slices.
type ChartSpec struct {
	Kind  Kind   `json:"kind" yaml:"kind"`
	Title string `json:"title,omitempty" yaml:"title,omitempty"`
	// Fields maps an encoding channel (x, y, size, color, label, names,
	// values) to the data field that feeds it.
	Fields     map[string]string       `json:"fields,omitempty" yaml:"fields,omitempty"`
	Layout     *Layout                 `json:"layout,omitempty" yaml:"layout,omitempty"`
	Categories []rankings.CountryCount `json:"categories,omitempty" yaml:"categories,omitempty"`
	Points     []rankings.Record       `json:"points,omitempty" yaml:"points,omitempty"`
	Message    string                  `json:"message,omitempty" yaml:"message,omitempty"`

	// Err is the typed cause behind an error spec.
	Err error `json:"-" yaml:"-"`
}

// IsError reports whether the spec is an error message.
func (s ChartSpec) IsError() bool { return s.Kind == KindError }

// Drawable reports whether a renderer has something to plot.
func (s ChartSpec) Drawable() bool {
	switch s.Kind {
	case KindBar, KindPie:
		return len(s.Categories) > 0
	case KindScatter:
		return len(s.Points) > 0
	}
	return false
}

// ErrorSpec wraps err as a renderable error message.
func ErrorSpec(err error) ChartSpec {
	return ChartSpec{Kind: KindError, Message: err.Error(), Err: err}
}

// NoDataSpec is shown when the session has no rows to chart.
func NoDataSpec(reason string) ChartSpec {
	if reason == "" {
		reason = "No data available"
	}
	return ChartSpec{Kind: KindNoData, Message: reason}
}
