package main

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/warp/budget-engine/config"
)

var totalCmd = &cobra.Command{
	Use:   "total START END",
	Short: "Print the prorated budget for an inclusive date range",
	Long: `Print the prorated budget for [START, END], both days included.
Dates are YYYYMMDD or YYYY-MM-DD. END before START prints 0.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := config.NewLogger(cfg, os.Stderr)
		svc, closeStore, err := openService(logger)
		if err != nil {
			return err
		}
		defer closeStore()

		total, err := svc.TotalAmount(cmd.Context(), args[0], args[1])
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), total.String())
		return nil
	},
}

var breakdownCmd = &cobra.Command{
	Use:   "breakdown START END",
	Short: "Print the prorated budget month by month",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := config.NewLogger(cfg, os.Stderr)
		svc, closeStore, err := openService(logger)
		if err != nil {
			return err
		}
		defer closeStore()

		b, err := svc.Breakdown(cmd.Context(), args[0], args[1])
		if err != nil {
			return err
		}

		if jsonOutput {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(b)
		}

		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "MONTH\tALLOCATION\tDAYS\tCONTRIBUTION")
		for _, m := range b.Months {
			allocation := "-"
			if m.Allocated {
				allocation = m.Amount.String()
			}
			fmt.Fprintf(tw, "%s\t%s\t%d/%d\t%s\n", m.Month, allocation, m.OverlapDays, m.DaysInMonth, m.Contribution)
		}
		fmt.Fprintf(tw, "TOTAL\t\t\t%s\n", b.Total)
		return tw.Flush()
	},
}

func init() {
	breakdownCmd.Flags().BoolVar(&jsonOutput, "json", false, "print JSON instead of a table")
}
