package analysis

import (
	"math"
	"strings"
	"testing"

	"github.com/KaramelBytes/unirank-cli/internal/rankings"
)

func sample() *rankings.Dataset {
	recs := []rankings.Record{
		{Rank: 1, OverallScore: 96, ResearchScore: 99, Location: "United Kingdom", Name: "Oxford"},
		{Rank: 2, OverallScore: 95, ResearchScore: 98, Location: "United States", Name: "Harvard"},
		{Rank: 3, OverallScore: 94, ResearchScore: 97, Location: "United States", Name: "Stanford"},
		{Rank: 4, OverallScore: 93, ResearchScore: 96, Location: "United States", Name: "MIT"},
		{Rank: 5, OverallScore: 92, ResearchScore: 95, Location: "United Kingdom", Name: "Cambridge"},
		{Rank: 6, OverallScore: 91, ResearchScore: 94, Location: "Switzerland", Name: "ETH"},
		{Rank: 7, OverallScore: 90, ResearchScore: 93, Location: "China", Name: "Tsinghua"},
		{Rank: 8, OverallScore: 89, ResearchScore: 92, Location: "China", Name: "Peking"},
		{Rank: 9, OverallScore: 20, ResearchScore: 10, Location: "Japan", Name: "Outlier U"},
	}
	ds := rankings.NewDataset(recs)
	ds.RawRows = 11
	ds.Source = "/tmp/data/World University Rankings 2023.csv"
	return ds
}

func TestSummarize(t *testing.T) {
	rep := Summarize(sample(), DefaultOptions())
	if rep.Name != "World University Rankings 2023.csv" {
		t.Fatalf("name = %q", rep.Name)
	}
	if rep.Rows != 11 || rep.Kept != 9 || rep.Dropped != 2 {
		t.Fatalf("rows=%d kept=%d dropped=%d", rep.Rows, rep.Kept, rep.Dropped)
	}
	if len(rep.Cols) != 5 {
		t.Fatalf("cols = %d, want 5", len(rep.Cols))
	}
	rank := rep.Cols[0]
	if rank.Name != rankings.ColRank || rank.Min != 1 || rank.Max != 9 || rank.Mean != 5 || rank.Median != 5 {
		t.Fatalf("rank summary = %#v", rank)
	}
	if math.Abs(rank.Std-math.Sqrt(7.5)) > 1e-9 {
		t.Fatalf("rank std = %v", rank.Std)
	}
	overall := rep.Cols[1]
	if overall.OutliersCount != 1 || overall.OutlierThreshold != 3.5 {
		t.Fatalf("overall outliers = %d (thr %v)", overall.OutliersCount, overall.OutlierThreshold)
	}
	loc := rep.Cols[3]
	if loc.Unique != 5 || loc.TopValues[0].Country != "United States" || loc.TopValues[0].Count != 3 {
		t.Fatalf("location summary = %#v", loc)
	}
	if len(rep.Warnings) != 1 || !strings.Contains(rep.Warnings[0], "dropped 2/11") {
		t.Fatalf("warnings = %#v", rep.Warnings)
	}
}

func TestSummarizeEmpty(t *testing.T) {
	rep := Summarize(rankings.NewDataset(nil), DefaultOptions())
	if rep.Kept != 0 || rep.Cols[0].Count != 0 {
		t.Fatalf("report = %#v", rep)
	}
	found := false
	for _, w := range rep.Warnings {
		if w == "no rows left after cleaning" {
			found = true
		}
	}
	if !found {
		t.Fatalf("warnings = %#v", rep.Warnings)
	}
}

func TestMarkdown(t *testing.T) {
	md := Summarize(sample(), DefaultOptions()).Markdown()
	for _, want := range []string{
		"[DATASET SUMMARY]",
		"File: World University Rankings 2023.csv",
		"Rows: 11 (kept 9, dropped 2)",
		"- OverAll Score: numeric",
		"outliers: 1 above |z|>3.5",
		"United States(3)",
		"[NOTES]",
	} {
		if !strings.Contains(md, want) {
			t.Fatalf("markdown missing %q:\n%s", want, md)
		}
	}
}
