package view

import (
	"errors"
	"fmt"

	"github.com/KaramelBytes/unirank-cli/internal/rankings"
)

// Chart titles, matching the dashboard headings.
const (
	TitleCountryBar = "Number of Top Universities by Country"
	TitleCountryPie = "Distribution of Top Universities by Country"
	titleScoreFmt   = "Top %d Universities Based on Overall Score and Research Score"
)

// ErrInvalidParam matches a ParamError.
var ErrInvalidParam = errors.New("invalid parameter")

// ParamError reports a control value outside what the mode accepts.
type ParamError struct {
	Name   string
	Value  any
	Reason string
}

func (e *ParamError) Error() string {
	return fmt.Sprintf("invalid %s %v: %s", e.Name, e.Value, e.Reason)
}

func (e *ParamError) Is(target error) bool { return target == ErrInvalidParam }

// ComputeError wraps an unexpected failure while building a view.
type ComputeError struct {
	Mode Mode
	Err  error
}

func (e *ComputeError) Error() string {
	return fmt.Sprintf("compute %s view: %v", e.Mode, e.Err)
}

func (e *ComputeError) Unwrap() error { return e.Err }

// Render builds the chart for mode. It never panics and never returns an
// error: any failure comes back as an error spec.
func Render(mode Mode, p Params, ds *rankings.Dataset) (spec ChartSpec) {
	defer func() {
		if r := recover(); r != nil {
			spec = ErrorSpec(&ComputeError{Mode: mode, Err: fmt.Errorf("panic: %v", r)})
		}
	}()
	build, ok := builders[mode]
	if !ok {
		return ErrorSpec(&ComputeError{Mode: mode, Err: fmt.Errorf("unknown mode %q", mode)})
	}
	return build(p, ds)
}

// builders maps each mode to the function that computes its chart.
var builders = map[Mode]func(Params, *rankings.Dataset) ChartSpec{
	ByCountry: byCountry,
	ByScore:   byScore,
}

func byCountry(p Params, ds *rankings.Dataset) ChartSpec {
	if p.MinCount < MinCountLow || p.MinCount > MinCountHigh {
		return ErrorSpec(&ParamError{Name: "min count", Value: p.MinCount, Reason: fmt.Sprintf("must be between %d and %d", MinCountLow, MinCountHigh)})
	}
	counts := rankings.SortByCount(rankings.AggregateByCountry(ds, p.MinCount))
	switch p.ChartType {
	case Bar:
		return ChartSpec{
			Kind:       KindBar,
			Title:      TitleCountryBar,
			Fields:     map[string]string{"x": "country", "y": "count"},
			Layout:     &Layout{BarGap: 0.1},
			Categories: counts,
		}
	case Pie:
		return ChartSpec{
			Kind:       KindPie,
			Title:      TitleCountryPie,
			Fields:     map[string]string{"names": "country", "values": "count"},
			Categories: counts,
		}
	default:
		return ErrorSpec(&ParamError{Name: "chart type", Value: p.ChartType, Reason: "must be bar or pie"})
	}
}

func byScore(p Params, ds *rankings.Dataset) ChartSpec {
	if p.Order != Ascending && p.Order != Descending {
		return ErrorSpec(&ParamError{Name: "order", Value: p.Order, Reason: "must be ascending or descending"})
	}
	top, err := rankings.SelectTopN(ds, p.TopN, p.Order.Ascending())
	if err != nil {
		return ErrorSpec(err)
	}
	return ChartSpec{
		Kind:  KindScatter,
		Title: fmt.Sprintf(titleScoreFmt, p.TopN),
		Fields: map[string]string{
			"x":     "rank",
			"y":     "overall_score",
			"size":  "research_score",
			"color": "location",
			"label": "name",
		},
		Points: top,
	}
}
