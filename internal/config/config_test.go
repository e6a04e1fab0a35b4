package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/KaramelBytes/unirank-cli/internal/view"
)

func TestLoadDefaultsWithMissingFile(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	c, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if *c != *Defaults() {
		t.Fatalf("got %+v, want defaults", c)
	}
}

func TestSaveLoadRoundTripAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	c := Defaults()
	c.DataPath = "/data/rankings.csv"
	c.DefaultTopN = 50
	c.CacheCharts = false
	if err := Save(c, path); err != nil {
		t.Fatalf("save: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("config not written: %v", err)
	}
	t.Setenv("UNIRANK_ADDR", ":9000")
	got, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.DataPath != "/data/rankings.csv" || got.DefaultTopN != 50 || got.CacheCharts {
		t.Fatalf("file values lost: %+v", got)
	}
	if got.Addr != ":9000" {
		t.Fatalf("env override ignored: addr=%q", got.Addr)
	}
}

func TestSet(t *testing.T) {
	c := Defaults()
	for _, kv := range [][2]string{
		{"chart_width", "800"},
		{"cache_charts", "off"},
		{"log_level", "DEBUG"},
		{"default_order", "ascending"},
	} {
		if err := c.Set(kv[0], kv[1]); err != nil {
			t.Fatalf("set %s: %v", kv[0], err)
		}
	}
	if c.ChartWidth != 800 || c.CacheCharts || c.SlogLevel() != slog.LevelDebug || c.DefaultOrder != "ascending" {
		t.Fatalf("unexpected config %+v", c)
	}
	for _, kv := range [][2]string{
		{"chart_width", "-1"},
		{"cache_charts", "maybe"},
		{"log_level", "loud"},
		{"api_key", "x"},
	} {
		if err := c.Set(kv[0], kv[1]); err == nil {
			t.Fatalf("set %s=%s should fail", kv[0], kv[1])
		}
	}
}

func TestViewDefaults(t *testing.T) {
	c := Defaults()
	want := view.Params{MinCount: 1, ChartType: view.Bar, TopN: 20, Order: view.Descending}
	if got := c.ViewDefaults(); got != want {
		t.Fatalf("ViewDefaults = %+v, want %+v", got, want)
	}
	c.DefaultMinCount = 500
	c.DefaultTopN = 0
	c.DefaultChartType = "Pie Chart"
	c.DefaultOrder = "sideways"
	want = view.Params{MinCount: 50, ChartType: view.Pie, TopN: 20, Order: view.Descending}
	if got := c.ViewDefaults(); got != want {
		t.Fatalf("ViewDefaults = %+v, want %+v", got, want)
	}
}
