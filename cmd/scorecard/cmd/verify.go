package cmd

import (
	"fmt"
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/sbmops/scorecard/pkg/roster"
)

var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Validate the roster and print its statistics",
	Long: `Verify loads the account roster (embedded or from --roster-dir),
validates its consistency and prints per-vertical statistics. A
roster configuration error exits non-zero.`,
	RunE: runVerify,
}

func runVerify(_ *cobra.Command, _ []string) error {
	client, err := application.Client()
	if err != nil {
		return err
	}
	r := client.Roster()

	table := tablewriter.NewTable(os.Stdout)
	table.Header("Vertical", "Accounts")
	for _, v := range roster.Verticals() {
		if err := table.Append(string(v), fmt.Sprintf("%d", len(r.AccountsByVertical(v)))); err != nil {
			return err
		}
	}
	if err := table.Render(); err != nil {
		return err
	}

	fmt.Printf("\n%d accounts, %d synonyms, %d omitted names\n",
		r.Len(), len(r.Synonyms()), len(r.Omissions()))
	return nil
}
