package analysis

import (
	"fmt"
	"math"
	"path/filepath"
	"sort"
	"strings"

	"github.com/KaramelBytes/unirank-cli/internal/rankings"
)

// Options controls summary behavior.
type Options struct {
	// TopLocations limits the categorical top list; 0 means 8.
	TopLocations int
	// Outlier detection via robust Z-score (MAD). Counts |z|>threshold.
	Outliers         bool
	OutlierThreshold float64
}

// DefaultOptions returns reasonable defaults for a rankings summary.
func DefaultOptions() Options {
	return Options{TopLocations: 8, Outliers: true, OutlierThreshold: 3.5}
}

// Report is a markdown-friendly description of a loaded dataset.
type Report struct {
	Name     string          `json:"name"`
	Rows     int             `json:"rows"`
	Kept     int             `json:"kept"`
	Dropped  int             `json:"dropped"`
	Cols     []ColumnSummary `json:"columns"`
	Warnings []string        `json:"warnings,omitempty"`
}

// ColumnSummary captures statistics for one required column.
type ColumnSummary struct {
	Name string `json:"name"`
	Kind string `json:"kind"` // numeric|categorical|text
	// Numeric stats
	Count  int     `json:"count"`
	Min    float64 `json:"min,omitempty"`
	Max    float64 `json:"max,omitempty"`
	Mean   float64 `json:"mean,omitempty"`
	Std    float64 `json:"std,omitempty"`
	Median float64 `json:"median,omitempty"`
	// Outliers (robust Z via MAD)
	OutliersCount    int     `json:"outliers,omitempty"`
	OutliersMaxAbsZ  float64 `json:"outliers_max_abs_z,omitempty"`
	OutlierThreshold float64 `json:"outlier_threshold,omitempty"`
	// Categorical
	Unique    int                     `json:"unique,omitempty"`
	TopValues []rankings.CountryCount `json:"top_values,omitempty"`
}

// welford accumulates count, mean and variance in one pass.
type welford struct {
	n        int
	mean, m2 float64
	min, max float64
	vals     []float64
}

func newWelford() *welford { return &welford{min: math.Inf(1), max: math.Inf(-1)} }

func (w *welford) add(x float64) {
	w.n++
	if x < w.min {
		w.min = x
	}
	if x > w.max {
		w.max = x
	}
	delta := x - w.mean
	w.mean += delta / float64(w.n)
	w.m2 += delta * (x - w.mean)
	w.vals = append(w.vals, x)
}

func (w *welford) summary(name string, opt Options) ColumnSummary {
	s := ColumnSummary{Name: name, Kind: "numeric", Count: w.n}
	if w.n == 0 {
		return s
	}
	s.Min, s.Max, s.Mean = w.min, w.max, w.mean
	if w.n > 1 {
		s.Std = math.Sqrt(w.m2 / float64(w.n-1))
	}
	median, mad := medianMAD(w.vals)
	s.Median = median
	if opt.Outliers && w.n >= 8 {
		thr := opt.OutlierThreshold
		if thr <= 0 {
			thr = 3.5
		}
		s.OutlierThreshold = thr
		if mad > 0 {
			for _, v := range w.vals {
				az := math.Abs(0.6745 * (v - median) / mad)
				if az > thr {
					s.OutliersCount++
				}
				if az > s.OutliersMaxAbsZ {
					s.OutliersMaxAbsZ = az
				}
			}
		}
	}
	return s
}

// Summarize computes per-column statistics over the cleaned records.
func Summarize(ds *rankings.Dataset, opt Options) *Report {
	rep := &Report{Rows: ds.Len(), Kept: ds.Len()}
	if ds != nil {
		rep.Rows = ds.RawRows
		rep.Dropped = ds.Dropped()
		if ds.Source != "" {
			rep.Name = filepath.Base(ds.Source)
		}
	}
	rank, overall, research := newWelford(), newWelford(), newWelford()
	names := make(map[string]struct{})
	for _, r := range ds.Records() {
		rank.add(float64(r.Rank))
		overall.add(r.OverallScore)
		research.add(r.ResearchScore)
		names[r.Name] = struct{}{}
	}
	rep.Cols = append(rep.Cols,
		rank.summary(rankings.ColRank, opt),
		overall.summary(rankings.ColOverall, opt),
		research.summary(rankings.ColResearch, opt),
	)

	top := opt.TopLocations
	if top <= 0 {
		top = 8
	}
	locs := rankings.SortByCount(rankings.AggregateByCountry(ds, 1))
	loc := ColumnSummary{Name: rankings.ColLocation, Kind: "categorical", Count: ds.Len(), Unique: len(locs)}
	if len(locs) > top {
		locs = locs[:top]
	}
	loc.TopValues = locs
	rep.Cols = append(rep.Cols, loc, ColumnSummary{Name: rankings.ColName, Kind: "text", Count: ds.Len(), Unique: len(names)})

	if rep.Dropped > 0 {
		rep.Warnings = append(rep.Warnings, fmt.Sprintf("dropped %d/%d rows missing a required column", rep.Dropped, rep.Rows))
	}
	if rep.Kept == 0 {
		rep.Warnings = append(rep.Warnings, "no rows left after cleaning")
	}
	if dup := ds.Len() - len(names); dup > 0 {
		rep.Warnings = append(rep.Warnings, fmt.Sprintf("%d duplicate university names", dup))
	}
	return rep
}

// Markdown renders a compact report for terminals and the dashboard.
func (r *Report) Markdown() string {
	var b strings.Builder
	b.WriteString("[DATASET SUMMARY]\n")
	if r.Name != "" {
		b.WriteString(fmt.Sprintf("File: %s\n", r.Name))
	}
	if r.Dropped > 0 {
		b.WriteString(fmt.Sprintf("Rows: %d (kept %d, dropped %d)\n", r.Rows, r.Kept, r.Dropped))
	} else {
		b.WriteString(fmt.Sprintf("Rows: %d\n", r.Rows))
	}
	b.WriteString("\n[SCHEMA]\n")
	for _, c := range r.Cols {
		b.WriteString(fmt.Sprintf("- %s: %s", safeName(c.Name), c.Kind))
		switch c.Kind {
		case "numeric":
			if c.Count > 0 {
				b.WriteString(fmt.Sprintf(" — min %.4g, max %.4g, mean %.4g, median %.4g, std %.4g", c.Min, c.Max, c.Mean, c.Median, c.Std))
			}
			if c.OutlierThreshold > 0 {
				b.WriteString(fmt.Sprintf("; outliers: %d above |z|>%.1f", c.OutliersCount, c.OutlierThreshold))
			}
		case "categorical":
			if len(c.TopValues) > 0 {
				b.WriteString(" — top: ")
				for i, kv := range c.TopValues {
					if i > 0 {
						b.WriteString(", ")
					}
					b.WriteString(fmt.Sprintf("%s(%d)", safeVal(kv.Country), kv.Count))
				}
			}
			b.WriteString(fmt.Sprintf("; unique=%d", c.Unique))
		case "text":
			b.WriteString(fmt.Sprintf(" — unique=%d", c.Unique))
		}
		b.WriteString("\n")
	}
	if len(r.Warnings) > 0 {
		b.WriteString("\n[NOTES]\n")
		for _, w := range r.Warnings {
			b.WriteString("- ")
			b.WriteString(w)
			b.WriteString("\n")
		}
	}
	return b.String()
}

func safeName(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return "(unnamed)"
	}
	return s
}
func safeVal(s string) string { return strings.ReplaceAll(strings.ReplaceAll(s, "\n", " "), "|", "/") }

// medianMAD computes median and MAD (median absolute deviation) of values.
func medianMAD(vals []float64) (median, mad float64) {
	if len(vals) == 0 {
		return 0, 0
	}
	cp := make([]float64, len(vals))
	copy(cp, vals)
	sort.Float64s(cp)
	median = quantile(cp, 0.5)
	dev := make([]float64, len(cp))
	for i, v := range cp {
		dev[i] = math.Abs(v - median)
	}
	sort.Float64s(dev)
	mad = quantile(dev, 0.5)
	return
}

func quantile(sorted []float64, q float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	if q <= 0 {
		return sorted[0]
	}
	if q >= 1 {
		return sorted[len(sorted)-1]
	}
	pos := q * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	w := pos - float64(lo)
	return sorted[lo]*(1-w) + sorted[hi]*w
}
