package commands

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/subtrack-dev/subtrack/internal/ledger"
	"github.com/subtrack-dev/subtrack/internal/recur"
)

func newDetectCommand() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "detect <ledger.csv>",
		Short: "Detect likely recurring subscriptions in a ledger export",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDetect(cmd, args[0], asJSON)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print suggestions as JSON")

	return cmd
}

func runDetect(cmd *cobra.Command, path string, asJSON bool) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading ledger: %w", err)
	}

	suggestions := recur.Detect(ledger.Parse(string(data)))

	if asJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(suggestions)
	}

	if len(suggestions) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No recurring charges detected.")
		return nil
	}

	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "MERCHANT\tCADENCE\tAVG AMOUNT\tLAST CHARGE\tSAMPLES")
	for _, sug := range suggestions {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%d\n",
			sug.DisplayName, sug.Cadence, sug.AverageAmount.StringFixed(2),
			sug.LastChargeDate, len(sug.SampleTransactions))
	}
	return tw.Flush()
}
