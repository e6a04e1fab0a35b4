package cmd

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/KaramelBytes/unirank-cli/internal/rankings"
	"github.com/KaramelBytes/unirank-cli/internal/utils"
	"github.com/KaramelBytes/unirank-cli/internal/view"
)

// Control flags shared by countries, top and chart.
var (
	flagMinCount  int
	flagChartType string
	flagTopN      int
	flagOrder     string
)

func addCountryFlags(c *cobra.Command) {
	c.Flags().IntVar(&flagMinCount, "min-count", view.DefaultMinCount, fmt.Sprintf("minimum universities per country (%d-%d)", view.MinCountLow, view.MinCountHigh))
	c.Flags().StringVar(&flagChartType, "chart", "", "chart type: bar|pie (default from config)")
}

func addScoreFlags(c *cobra.Command) {
	c.Flags().IntVarP(&flagTopN, "n", "n", view.DefaultTopN, "number of universities")
	c.Flags().StringVar(&flagOrder, "order", "", "ascending (lowest scores) or descending (highest scores); default from config")
}

func addFormatFlag(c *cobra.Command, dst *string, formats ...string) {
	c.Flags().StringVarP(dst, "format", "f", formats[0], "output format: "+strings.Join(formats, "|"))
}

// viewParams starts from the configured defaults and applies the flags the
// user set. Values are validated by the view, not clamped.
func viewParams(c *cobra.Command) (view.Params, error) {
	p := cfg.ViewDefaults()
	f := c.Flags()
	if f.Changed("min-count") {
		p.MinCount = flagMinCount
	}
	if f.Changed("n") {
		p.TopN = flagTopN
	}
	if flagChartType != "" {
		ct, err := view.ParseChartType(flagChartType)
		if err != nil {
			return p, err
		}
		p.ChartType = ct
	}
	if flagOrder != "" {
		o, err := view.ParseOrder(flagOrder)
		if err != nil {
			return p, err
		}
		p.Order = o
	}
	return p, nil
}

// defaultTopN fits a configured n that the user did not pass to the dataset,
// the way the dashboard slider does. An explicit --n is left to validation.
func defaultTopN(c *cobra.Command, p *view.Params, size int) {
	if !c.Flags().Changed("n") && size > 0 {
		p.TopN = view.ClampTopN(p.TopN, size)
	}
}

// writeStructured prints v as json or yaml. It reports false for other formats.
func writeStructured(w io.Writer, format string, v any) (bool, error) {
	switch format {
	case "json":
		b, err := utils.PrettyJSON(v)
		if err != nil {
			return true, err
		}
		_, err = fmt.Fprintln(w, string(b))
		return true, err
	case "yaml", "yml":
		b, err := yaml.Marshal(v)
		if err != nil {
			return true, fmt.Errorf("marshal yaml: %w", err)
		}
		_, err = w.Write(b)
		return true, err
	}
	return false, nil
}

func countryTable(w io.Writer, counts []rankings.CountryCount) {
	t := tablewriter.NewWriter(w)
	t.SetHeader([]string{"Country", "Universities"})
	t.SetAlignment(tablewriter.ALIGN_LEFT)
	for _, c := range counts {
		t.Append([]string{c.Country, strconv.Itoa(c.Count)})
	}
	t.Render()
}

func recordTable(w io.Writer, recs []rankings.Record) {
	t := tablewriter.NewWriter(w)
	t.SetHeader([]string{"#", "Rank", "Name", "Location", "Overall", "Research"})
	for i, r := range recs {
		t.Append([]string{
			strconv.Itoa(i + 1),
			strconv.Itoa(r.Rank),
			r.Name,
			r.Location,
			strconv.FormatFloat(r.OverallScore, 'f', 1, 64),
			strconv.FormatFloat(r.ResearchScore, 'f', 1, 64),
		})
	}
	t.Render()
}

// specError returns the typed cause of an error or no-data spec.
func specError(spec view.ChartSpec) error {
	switch spec.Kind {
	case view.KindError:
		if spec.Err != nil {
			return spec.Err
		}
		return fmt.Errorf("%s", spec.Message)
	case view.KindNoData:
		return fmt.Errorf("%s", spec.Message)
	}
	return nil
}
