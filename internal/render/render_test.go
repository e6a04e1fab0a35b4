package render

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/KaramelBytes/unirank-cli/internal/rankings"
	"github.com/KaramelBytes/unirank-cli/internal/view"
)

func dataset() *rankings.Dataset {
	return rankings.NewDataset([]rankings.Record{
		{Rank: 1, OverallScore: 90, ResearchScore: 50, Location: "US", Name: "A"},
		{Rank: 2, OverallScore: 80, ResearchScore: 40, Location: "US", Name: "B"},
		{Rank: 3, OverallScore: 95, ResearchScore: 60, Location: "UK", Name: "C"},
		{Rank: 4, OverallScore: 70, ResearchScore: 30, Location: "DE", Name: "D"},
	})
}

func TestRenderSVGForEveryKind(t *testing.T) {
	specs := map[string]view.ChartSpec{
		"bar":     view.Render(view.ByCountry, view.Params{MinCount: 1, ChartType: view.Bar}, dataset()),
		"pie":     view.Render(view.ByCountry, view.Params{MinCount: 1, ChartType: view.Pie}, dataset()),
		"scatter": view.Render(view.ByScore, view.Params{TopN: 3, Order: view.Descending}, dataset()),
	}
	for name, spec := range specs {
		var buf bytes.Buffer
		if err := Render(&buf, spec, SVG, DefaultOptions()); err != nil {
			t.Fatalf("%s: render: %v", name, err)
		}
		if !strings.Contains(buf.String(), "<svg") {
			t.Fatalf("%s: output is not svg: %.80q", name, buf.String())
		}
	}
}

func TestRenderPNG(t *testing.T) {
	spec := view.Render(view.ByCountry, view.Params{MinCount: 1, ChartType: view.Bar}, dataset())
	var buf bytes.Buffer
	if err := Render(&buf, spec, PNG, Options{Width: 400, Height: 300}); err != nil {
		t.Fatalf("render: %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("\x89PNG")) {
		t.Fatalf("output is not png")
	}
}

func TestRenderSinglePointAndSingleBar(t *testing.T) {
	one := view.Render(view.ByScore, view.Params{TopN: 1, Order: view.Ascending}, dataset())
	var buf bytes.Buffer
	if err := Render(&buf, one, SVG, DefaultOptions()); err != nil {
		t.Fatalf("single point: %v", err)
	}
	bar := view.Render(view.ByCountry, view.Params{MinCount: 2, ChartType: view.Bar}, dataset())
	buf.Reset()
	if err := Render(&buf, bar, SVG, DefaultOptions()); err != nil {
		t.Fatalf("single bar: %v", err)
	}
}

func TestRenderRejectsUndrawableSpecs(t *testing.T) {
	cases := []view.ChartSpec{
		view.Render(view.ByScore, view.Params{TopN: 10, Order: view.Ascending}, dataset()),
		view.Render(view.ByCountry, view.Params{MinCount: 50, ChartType: view.Pie}, dataset()),
		view.NoDataSpec(""),
	}
	for i, spec := range cases {
		var buf bytes.Buffer
		if err := Render(&buf, spec, SVG, DefaultOptions()); !errors.Is(err, ErrNothingToDraw) {
			t.Fatalf("case %d: err = %v, want ErrNothingToDraw", i, err)
		}
		if buf.Len() != 0 {
			t.Fatalf("case %d: wrote %d bytes", i, buf.Len())
		}
	}
}

func TestParseFormat(t *testing.T) {
	if f, err := ParseFormat(".SVG"); err != nil || f != SVG || f.ContentType() != "image/svg+xml" {
		t.Fatalf("ParseFormat(.SVG) = %q, %v", f, err)
	}
	if f, err := ParseFormat("png"); err != nil || f.ContentType() != "image/png" {
		t.Fatalf("ParseFormat(png) = %q, %v", f, err)
	}
	if _, err := ParseFormat("gif"); err == nil {
		t.Fatalf("gif should be rejected")
	}
}

func TestDotSize(t *testing.T) {
	if got := dotSize(50, 50, 50); got != 8.5 {
		t.Fatalf("flat range = %v", got)
	}
	if dotSize(10, 10, 20) != 3 || dotSize(20, 10, 20) != 14 {
		t.Fatalf("bounds not mapped to 3..14")
	}
}
