package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/KaramelBytes/unirank-cli/internal/server"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the rankings dashboard in the browser",
	Long: `Serve the interactive dashboard and its JSON/image API.
SIGHUP reloads the dataset; SIGINT and SIGTERM shut down gracefully.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if serveAddr != "" {
			cfg.Addr = serveAddr
		}
		logger := newLogger()
		srv := server.New(cfg, logger)

		// SIGHUP: reload dataset.
		// SIGINT/SIGTERM: graceful shutdown.
		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		sighup := make(chan os.Signal, 1)
		signal.Notify(sighup, syscall.SIGHUP)
		defer signal.Stop(sighup)
		go reloadOnHangup(ctx, sighup, func() {
			logger.Info("SIGHUP received, reloading dataset")
			srv.Reload()
		})

		return srv.Run(ctx)
	},
}

// reloadOnHangup calls reload for every signal on sig until ctx is done.
func reloadOnHangup(ctx context.Context, sig <-chan os.Signal, reload func()) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-sig:
			reload()
		}
	}
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (overrides config)")
}
