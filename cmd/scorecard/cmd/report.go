package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/sbmops/scorecard/pkg/reconciler"
	"github.com/sbmops/scorecard/pkg/review"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Reconcile a month's scorecard export and print the report",
	Long: `Report loads one monthly CSV export, reconciles it against the
roster and prints the per-account results: scores for accounts that
reported, the accounts still missing data, and any raw names that
could not be resolved.`,
	RunE: runReport,
}

func init() {
	reportCmd.Flags().String("month", "", `month to report, e.g. "December_2025" (default: newest export)`)
	reportCmd.Flags().StringP("output", "o", "table", "output format: table or json")
}

func runReport(cmd *cobra.Command, _ []string) error {
	client, err := application.Client()
	if err != nil {
		return err
	}

	month, _ := cmd.Flags().GetString("month")
	result, err := client.ReconcileMonth(cmd.Context(), application.Config().ScorecardsDir, month)
	if err != nil {
		return err
	}

	output, _ := cmd.Flags().GetString("output")
	if output == "json" {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}
	return printReport(result)
}

func printReport(result *reconciler.Result) error {
	table := tablewriter.NewTable(os.Stdout)
	table.Header("Account", "Vertical", "Score", "Review Date", "Responses")
	for _, a := range result.WithData() {
		if err := table.Append(
			a.Account.Name,
			string(a.Account.Vertical),
			formatScore(a.Data),
			formatDate(a.Data),
			fmt.Sprintf("%d", a.Responses),
		); err != nil {
			return err
		}
	}
	if err := table.Render(); err != nil {
		return err
	}

	if missing := result.Missing(); len(missing) > 0 {
		fmt.Printf("\nMissing data (%d accounts):\n", len(missing))
		for _, a := range missing {
			fmt.Printf("  %s (%s)\n", a.Account.Name, a.Account.Vertical)
		}
	}

	if len(result.Unresolved) > 0 {
		fmt.Printf("\nUnresolved names (%d):\n", len(result.Unresolved))
		diag := tablewriter.NewTable(os.Stdout)
		diag.Header("Raw Name", "Row", "Nearest Account", "Score")
		for _, d := range result.Unresolved {
			nearest, score := "-", "-"
			if d.Nearest != "" {
				nearest = d.Nearest
				score = fmt.Sprintf("%.2f", d.Score)
			}
			if err := diag.Append(d.RawName, fmt.Sprintf("%d", d.Row), nearest, score); err != nil {
				return err
			}
		}
		if err := diag.Render(); err != nil {
			return err
		}
	}

	for _, w := range result.Warnings {
		fmt.Printf("warning: %s\n", w)
	}

	fmt.Printf("\n%s\n", result.Summary())
	return nil
}

func formatScore(rec *review.Record) string {
	if rec.Score != nil {
		return fmt.Sprintf("%.2f", *rec.Score)
	}
	if rec.ScoreRaw != "" {
		return rec.ScoreRaw
	}
	return "-"
}

func formatDate(rec *review.Record) string {
	if rec.ReviewDate == nil {
		return "-"
	}
	return rec.ReviewDate.Format("Jan 2, 2006")
}
