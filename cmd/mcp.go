package cmd

import (
	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"

	"github.com/KaramelBytes/unirank-cli/internal/mcptools"
	"github.com/KaramelBytes/unirank-cli/internal/server"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Serve the rankings tools over MCP on stdio",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		// stdout carries the protocol; logs go to stderr
		logger := newLogger()
		src := server.New(cfg, logger)

		s := mcpserver.NewMCPServer("unirank", version, mcpserver.WithToolCapabilities(true))
		mcptools.Register(s, src, cfg.ViewDefaults())
		logger.Info("mcp server ready", "tools", 3, "session", src.Session().ID)
		return mcpserver.ServeStdio(s)
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
