// Package cmd defines the scorecard command tree.
package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/sbmops/scorecard/cmd/scorecard/app"
	"github.com/sbmops/scorecard/pkg/logging"
)

var application *app.App

var rootCmd = &cobra.Command{
	Use:   "scorecard",
	Short: "Scorecard review reconciliation",
	Long: `Scorecard reconciles monthly account review exports against the
canonical account roster. Free-form account names from the survey
exports are resolved through synonyms and fuzzy matching, and every
canonical account appears in the output whether or not a review
arrived.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		cfg := application.Config()
		flags := cmd.Flags()
		if flags.Changed("verbose") {
			cfg.Verbose, _ = flags.GetBool("verbose")
		}
		if flags.Changed("quiet") {
			cfg.Quiet, _ = flags.GetBool("quiet")
		}
		if flags.Changed("scorecards-dir") {
			cfg.ScorecardsDir, _ = flags.GetString("scorecards-dir")
		}
		if flags.Changed("roster-dir") {
			cfg.RosterDir, _ = flags.GetString("roster-dir")
		}
		if flags.Changed("threshold") {
			cfg.Threshold, _ = flags.GetFloat64("threshold")
		}
		logger := app.NewLogger(cfg)
		logging.SetDefault(logger)
		cmd.SetContext(logging.WithLogger(cmd.Context(), &logger))
		return nil
	},
}

// Execute runs the command tree with the given application context.
func Execute(ctx context.Context, a *app.App, args []string) error {
	application = a
	rootCmd.Version = a.Version()
	rootCmd.SetVersionTemplate(a.VersionDetails() + "\n")
	rootCmd.SetArgs(args)
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.BoolP("verbose", "v", false, "enable debug logging")
	pf.BoolP("quiet", "q", false, "only log warnings and errors")
	pf.String("scorecards-dir", "", "directory containing monthly scorecard CSV exports")
	pf.String("roster-dir", "", "directory with roster YAML overrides")
	pf.Float64("threshold", 0, "fuzzy match acceptance threshold (0, 1]")

	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(verifyCmd)
	rootCmd.AddCommand(serveCmd)
}
