package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	cfgpkg "github.com/KaramelBytes/unirank-cli/internal/config"
	"github.com/KaramelBytes/unirank-cli/internal/session"
	"github.com/KaramelBytes/unirank-cli/internal/utils"
)

var version = "dev"

var (
	// Global flags
	cfgFile  string
	dataPath string
	debug    bool

	// Loaded configuration
	cfg *cfgpkg.Global
)

var (
	okColor   = color.New(color.FgGreen)
	warnColor = color.New(color.FgYellow)
	errColor  = color.New(color.FgRed)
)

var rootCmd = &cobra.Command{
	Use:     "unirank",
	Short:   "Explore world university rankings by country and by score",
	Long:    `unirank loads a university rankings CSV and charts how many top universities each country has, or the top universities by overall and research score, from the terminal, a local web dashboard or an MCP client.`,
	Version: version,
}

// Execute is the entry point called by main.main()
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		errColor.Fprintln(os.Stderr, "✗ Error:", err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(loadConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ~/.unirank/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&dataPath, "data", "", "rankings CSV/TSV file (overrides config)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug output")
}

func loadConfig() {
	c, err := cfgpkg.Load(cfgFile)
	if err != nil {
		// Non-fatal: fall back to built-in defaults
		warnColor.Fprintf(os.Stderr, "⚠ Warning: failed to load config: %v\n", err)
		c = cfgpkg.Defaults()
	}
	cfg = c

	// Apply CLI overrides if provided
	f := rootCmd.PersistentFlags()
	if f.Changed("data") && dataPath != "" {
		cfg.DataPath = dataPath
	}
	if debug {
		cfg.LogLevel = "debug"
	}
	if p, err := utils.ExpandHome(cfg.DataPath); err == nil {
		cfg.DataPath = p
	}
}

func newLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.SlogLevel()}))
}

// openSession loads the configured dataset. Unlike the dashboard, the CLI
// treats a failed load as an error.
func openSession() (*session.Session, error) {
	sess := session.Open(cfg.DataPath, session.Options{})
	if sess.Err != nil {
		return nil, sess.Err
	}
	if debug {
		fmt.Fprintf(os.Stderr, "loaded %s: %d rows, %d kept\n", cfg.DataPath, sess.Dataset.RawRows, sess.Size())
	}
	if n := sess.Dataset.Dropped(); n > 0 {
		warnColor.Fprintf(os.Stderr, "⚠ Warning: dropped %d rows missing a required column\n", n)
	}
	return sess, nil
}
