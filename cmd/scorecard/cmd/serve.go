package cmd

import (
	"github.com/spf13/cobra"

	"github.com/sbmops/scorecard/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the scorecard dashboard service",
	Long: `Serve starts the HTTP dashboard over the reconciled review data:
a rendered dashboard page, a JSON API and Prometheus metrics.
Configuration comes from SCORECARD_* environment variables; the
--scorecards-dir flag overrides the export directory.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().String("addr", "", `listen address (default ":8080" or SCORECARD_ADDR)`)
}

func runServe(cmd *cobra.Command, _ []string) error {
	client, err := application.Client()
	if err != nil {
		return err
	}

	cfg := server.Load()
	if dir := application.Config().ScorecardsDir; dir != "" {
		cfg.ScorecardsDir = dir
	}
	if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
		cfg.ServerAddr = addr
	}

	srv := server.New(cfg, client)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	application.Logger().Info().
		Str("addr", cfg.ServerAddr).
		Str("scorecards_dir", cfg.ScorecardsDir).
		Msg("dashboard listening")

	select {
	case err := <-errCh:
		return err
	case <-cmd.Context().Done():
		application.Logger().Info().Msg("shutting down")
		return srv.Shutdown()
	}
}
