package session_test

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/KaramelBytes/unirank-cli/internal/rankings"
	"github.com/KaramelBytes/unirank-cli/internal/session"
	"github.com/KaramelBytes/unirank-cli/internal/view"
)

func writeCSV(t *testing.T, lines ...string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "rankings.csv")
	if err := os.WriteFile(path, []byte(strings.Join(lines, "\n")), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

const header = "University Rank,OverAll Score,Research Score,Location,Name of University"

func TestOpenAndRenderWithCache(t *testing.T) {
	path := writeCSV(t, header,
		"1,90,50,US,A",
		"2,80,40,US,B",
		"3,95,60,UK,C",
	)
	s := session.Open(path, session.Options{Cache: true})
	if s.Err != nil {
		t.Fatalf("open: %v", s.Err)
	}
	if s.ID == "" || s.Source != path || s.Size() != 3 || s.NoData() {
		t.Fatalf("session = %#v", s)
	}
	p := view.Params{MinCount: 1, ChartType: view.Bar}
	first := s.Render(view.ByCountry, p)
	second := s.Render(view.ByCountry, p)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("cached render differs")
	}
	if s.CachedViews() != 1 {
		t.Fatalf("cached = %d, want 1", s.CachedViews())
	}
	s.Render(view.ByScore, view.Params{TopN: 2, Order: view.Descending})
	if s.CachedViews() != 2 {
		t.Fatalf("cached = %d, want 2", s.CachedViews())
	}
}

func TestOpenWithoutCache(t *testing.T) {
	path := writeCSV(t, header, "1,90,50,US,A")
	s := session.Open(path, session.Options{})
	s.Render(view.ByCountry, view.Params{MinCount: 1, ChartType: view.Pie})
	if s.CachedViews() != 0 {
		t.Fatalf("cache should stay empty when disabled")
	}
}

func TestOpenMissingFileIsNoData(t *testing.T) {
	s := session.Open(filepath.Join(t.TempDir(), "nope.csv"), session.Options{Cache: true})
	if !errors.Is(s.Err, rankings.ErrNotFound) {
		t.Fatalf("err = %v", s.Err)
	}
	if !s.NoData() || s.Size() != 0 {
		t.Fatalf("missing file should be no-data")
	}
	spec := s.Render(view.ByCountry, view.Params{MinCount: 1, ChartType: view.Bar})
	if spec.Kind != view.KindNoData || !strings.Contains(spec.Message, "not found") {
		t.Fatalf("spec = %#v", spec)
	}
}

func TestEmptyDatasetIsNoData(t *testing.T) {
	path := writeCSV(t, header, "1,,50,US,A")
	s := session.Open(path, session.Options{})
	if s.Err != nil {
		t.Fatalf("empty dataset is not an error: %v", s.Err)
	}
	if !s.NoData() || s.NoDataReason() == "" {
		t.Fatalf("want no-data session")
	}
	if spec := s.Render(view.ByScore, view.Params{TopN: 1, Order: view.Ascending}); spec.Kind != view.KindNoData {
		t.Fatalf("spec = %#v", spec)
	}
}

func TestFromDatasetGetsFreshID(t *testing.T) {
	ds := rankings.NewDataset([]rankings.Record{{Rank: 1, OverallScore: 1, ResearchScore: 1, Location: "X", Name: "Y"}})
	a := session.FromDataset(ds, session.Options{})
	b := session.FromDataset(ds, session.Options{})
	if a.ID == b.ID {
		t.Fatalf("sessions share id %q", a.ID)
	}
}
