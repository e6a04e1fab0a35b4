package server

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/KaramelBytes/unirank-cli/internal/config"
	"github.com/KaramelBytes/unirank-cli/internal/view"
)

const header = "University Rank,OverAll Score,Research Score,Location,Name of University"

func writeCSV(t *testing.T, path string, rows ...string) {
	t.Helper()
	body := header + "\n" + strings.Join(rows, "\n") + "\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write csv: %v", err)
	}
}

func newTestServer(t *testing.T, rows ...string) (*Server, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "rankings.csv")
	if rows != nil {
		writeCSV(t, path, rows...)
	}
	cfg := config.Defaults()
	cfg.DataPath = path
	cfg.ChartWidth, cfg.ChartHeight = 400, 300
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return New(cfg, logger), path
}

func get(t *testing.T, h http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

var sampleRows = []string{
	"1,90,50,US,A",
	"2,80,40,US,B",
	"3,95,60,UK,C",
}

func TestChartJSON(t *testing.T) {
	s, _ := newTestServer(t, sampleRows...)
	h := s.Handler()

	rec := get(t, h, "/api/chart?mode=by-country&min_count=2&chart_type=pie")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var spec view.ChartSpec
	if err := json.NewDecoder(rec.Body).Decode(&spec); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if spec.Kind != view.KindPie || len(spec.Categories) != 1 || spec.Categories[0].Country != "US" || spec.Categories[0].Count != 2 {
		t.Fatalf("spec = %+v", spec)
	}

	rec = get(t, h, "/api/chart?mode=by-score&top_n=999&order=desc")
	spec = view.ChartSpec{}
	if err := json.NewDecoder(rec.Body).Decode(&spec); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if spec.Kind != view.KindScatter || len(spec.Points) != 3 || spec.Points[0].Name != "C" {
		t.Fatalf("top_n not clamped to dataset size: %+v", spec)
	}
}

func TestChartImages(t *testing.T) {
	s, _ := newTestServer(t, sampleRows...)
	h := s.Handler()

	rec := get(t, h, "/api/chart.svg?mode=by-score&top_n=2")
	if rec.Code != http.StatusOK || rec.Header().Get("Content-Type") != "image/svg+xml" {
		t.Fatalf("svg: status=%d type=%q", rec.Code, rec.Header().Get("Content-Type"))
	}
	if !strings.Contains(rec.Body.String(), "<svg") {
		t.Fatalf("svg body missing <svg")
	}

	rec = get(t, h, "/api/chart.png")
	if rec.Code != http.StatusOK || !strings.HasPrefix(rec.Body.String(), "\x89PNG") {
		t.Fatalf("png: status=%d", rec.Code)
	}

	rec = get(t, h, "/api/chart.svg?mode=by-country&min_count=50")
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("empty chart status = %d, want 422", rec.Code)
	}
}

func TestIndexPage(t *testing.T) {
	s, _ := newTestServer(t, sampleRows...)
	rec := get(t, s.Handler(), "/?mode=by-score&top_n=2&order=ascending")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	body := rec.Body.String()
	for _, want := range []string{
		"Top Universities Analysis",
		"Top 2 Universities Based on Overall Score and Research Score",
		"/api/chart.svg?",
		`value="ascending" selected`,
	} {
		if !strings.Contains(body, want) {
			t.Fatalf("page missing %q", want)
		}
	}
	if rec := get(t, s.Handler(), "/nope"); rec.Code != http.StatusNotFound {
		t.Fatalf("unknown path status = %d", rec.Code)
	}
}

func TestNoDataAndReload(t *testing.T) {
	s, path := newTestServer(t)
	h := s.Handler()

	rec := get(t, h, "/")
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `class="message"`) {
		t.Fatalf("index without data should show a message, got %d", rec.Code)
	}
	rec = get(t, h, "/api/summary")
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("summary status = %d, want 503", rec.Code)
	}
	var health healthResponse
	json.NewDecoder(get(t, h, "/api/health").Body).Decode(&health)
	if health.Status != "no_data" || health.Error == "" {
		t.Fatalf("health = %+v", health)
	}

	first := s.Session().ID
	writeCSV(t, path, sampleRows...)
	s.Reload()
	if s.Session().ID == first {
		t.Fatalf("reload kept the old session")
	}
	health = healthResponse{}
	json.NewDecoder(get(t, h, "/api/health").Body).Decode(&health)
	if health.Status != "ok" || health.Rows != 3 {
		t.Fatalf("health after reload = %+v", health)
	}
	rec = get(t, h, "/api/summary")
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `"kept":3`) {
		t.Fatalf("summary after reload: %d %s", rec.Code, rec.Body.String())
	}
}

func TestControlsFallBackToDefaults(t *testing.T) {
	s, _ := newTestServer(t, sampleRows...)
	q := map[string][]string{"mode": {"sideways"}, "min_count": {"0"}, "chart_type": {"donut"}, "order": {"up"}}
	mode, p := s.controls(q, 3)
	if mode != view.ByCountry || p.MinCount != 1 || p.ChartType != view.Bar || p.Order != view.Descending || p.TopN != 3 {
		t.Fatalf("controls = %s %+v", mode, p)
	}
}
