package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/muadel/muadel/adapters/llm"
)

var usageCmd = &cobra.Command{
	Use:   "usage",
	Short: "View today's assistant quota",
	Long: `View today's usage counters for the gated assistant features.

Counters reset at local midnight. Premium subscribers have no limits.

Examples:
  muadel usage status`,
}

var usageStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show remaining uses per feature",
	RunE:  runUsageStatus,
}

func init() {
	rootCmd.AddCommand(usageCmd)
	usageCmd.AddCommand(usageStatusCmd)
}

func runUsageStatus(cmd *cobra.Command, args []string) error {
	app, err := openApp()
	if err != nil {
		return err
	}
	defer app.Shutdown()

	features := []string{llm.FeatureSummary, llm.FeatureCoverLetter, llm.FeatureJobMatch}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "FEATURE\tUSED\tLIMIT\tSTATUS")
	for _, f := range features {
		d := app.Ledger.CanUse(cmd.Context(), f, false)
		status := "available"
		limit := fmt.Sprintf("%d", d.Limit)
		switch {
		case d.Gated:
			status = "premium only"
			limit = "-"
		case !d.Allowed:
			status = "limit reached"
		}
		fmt.Fprintf(w, "%s\t%d\t%s\t%s\n", f, d.Used, limit, status)
	}
	return w.Flush()
}
