// Package mcptools exposes the rankings views as MCP tools.
package mcptools

import (
	"context"
	"fmt"
	"math"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/KaramelBytes/unirank-cli/internal/analysis"
	"github.com/KaramelBytes/unirank-cli/internal/session"
	"github.com/KaramelBytes/unirank-cli/internal/utils"
	"github.com/KaramelBytes/unirank-cli/internal/view"
)

// Source hands out the current session.
type Source interface {
	Session() *session.Session
}

// Register adds the rankings tools to srv. def supplies values for omitted
// arguments.
func Register(srv *server.MCPServer, src Source, def view.Params) {
	registerCountryDistribution(srv, src, def)
	registerTopUniversities(srv, src, def)
	registerDatasetSummary(srv, src)
}

func registerCountryDistribution(srv *server.MCPServer, src Source, def view.Params) {
	tool := mcp.NewTool("country_distribution",
		mcp.WithDescription("Count top universities per country, keeping countries with at least min_count universities, largest first."),
		mcp.WithNumber("min_count", mcp.Description(fmt.Sprintf("Minimum universities per country (%d-%d)", view.MinCountLow, view.MinCountHigh))),
		mcp.WithString("chart_type", mcp.Description("Chart kind for the returned spec"), mcp.Enum("bar", "pie")),
	)
	srv.AddTool(tool, func(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := req.GetArguments()
		p := def
		if v, ok := intArg(args, "min_count"); ok {
			p.MinCount = v
		} else if _, given := args["min_count"]; given {
			return mcp.NewToolResultError(fmt.Sprintf("min_count must be a whole number, got %v", args["min_count"])), nil
		}
		if s, _ := args["chart_type"].(string); s != "" {
			ct, err := view.ParseChartType(s)
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}
			p.ChartType = ct
		}
		return specResult(src.Session().Render(view.ByCountry, p))
	})
}

func registerTopUniversities(srv *server.MCPServer, src Source, def view.Params) {
	tool := mcp.NewTool("top_universities",
		mcp.WithDescription("Select the n highest (descending) or lowest (ascending) universities by overall score."),
		mcp.WithNumber("n", mcp.Description("Number of universities, between 1 and the dataset size")),
		mcp.WithString("order", mcp.Description("Which end of the score range to return"), mcp.Enum("descending", "ascending")),
	)
	srv.AddTool(tool, func(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := req.GetArguments()
		sess := src.Session()
		p := def
		if v, ok := intArg(args, "n"); ok {
			p.TopN = v
		} else if _, given := args["n"]; given {
			return mcp.NewToolResultError(fmt.Sprintf("n must be a whole number, got %v", args["n"])), nil
		} else if sess.Size() > 0 {
			p.TopN = view.ClampTopN(p.TopN, sess.Size())
		}
		if s, _ := args["order"].(string); s != "" {
			o, err := view.ParseOrder(s)
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}
			p.Order = o
		}
		return specResult(sess.Render(view.ByScore, p))
	})
}

func registerDatasetSummary(srv *server.MCPServer, src Source) {
	tool := mcp.NewTool("dataset_summary",
		mcp.WithDescription("Describe the loaded rankings dataset: row counts, score statistics and top locations."),
	)
	srv.AddTool(tool, func(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		sess := src.Session()
		if sess.Err != nil {
			return mcp.NewToolResultError(sess.NoDataReason()), nil
		}
		return mcp.NewToolResultText(analysis.Summarize(sess.Dataset, analysis.DefaultOptions()).Markdown()), nil
	})
}

// specResult returns the spec as JSON, or its message as a tool error.
func specResult(spec view.ChartSpec) (*mcp.CallToolResult, error) {
	switch spec.Kind {
	case view.KindError, view.KindNoData:
		return mcp.NewToolResultError(spec.Message), nil
	}
	b, err := utils.PrettyJSON(spec)
	if err != nil {
		return nil, err
	}
	return mcp.NewToolResultText(string(b)), nil
}

// intArg reads a whole number in int32 range. JSON numbers arrive as float64.
func intArg(args map[string]any, key string) (int, bool) {
	switch v := args[key].(type) {
	case float64:
		if v != math.Trunc(v) || v < math.MinInt32 || v > math.MaxInt32 {
			return 0, false
		}
		return int(v), true
	case int:
		if v < math.MinInt32 || v > math.MaxInt32 {
			return 0, false
		}
		return v, true
	}
	return 0, false
}
