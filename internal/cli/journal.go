package cli

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/compound/currency"
	"github.com/rustyeddy/compound/journal"
)

func newJournalCmd(rc *RootConfig) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "journal",
		Short: "Show and edit the calendar journal",
		Long: `Show and edit the per-day journal of results.

Subcommands:
  show    - Print every day, or a single day, as Org-mode
  month   - Calendar weeks and total profit for a month
  set     - Overwrite one day
  delete  - Remove one day
  clear   - Remove every day (plan progress is kept)
  export  - Write the journal as CSV or Org-mode

Examples:
  compound journal show 2024-01-15
  compound journal month 2024-01
  compound journal set 2024-01-15 --profit 12.5 --trades 3 --wins 2
  compound journal export --csv journal.csv`,
	}

	cmd.AddCommand(
		newJournalShowCmd(rc),
		newJournalMonthCmd(rc),
		newJournalSetCmd(rc),
		newJournalDeleteCmd(rc),
		newJournalClearCmd(rc),
		newJournalExportCmd(rc),
	)
	return cmd
}

func newJournalShowCmd(rc *RootConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "show [YYYY-MM-DD]",
		Short: "Print the journal as Org-mode",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := rc.open(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()

			st, err := a.coord.Journal(cmd.Context())
			if err != nil {
				return err
			}
			p, err := a.coord.Progress(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(args) == 1 {
				d, ok := st[args[0]]
				if !ok {
					return fmt.Errorf("no journal entry for %s", args[0])
				}
				fmt.Fprint(out, journal.FormatDayOrg(d, p))
				return nil
			}
			if len(st) == 0 {
				fmt.Fprintln(out, "Journal is empty.")
				return nil
			}
			fmt.Fprint(out, journal.FormatDaysOrg(st, p))
			return nil
		},
	}
}

func newJournalMonthCmd(rc *RootConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "month [YYYY-MM]",
		Short: "Weekly totals and profit for a month (default this month)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t := time.Now()
			if len(args) == 1 {
				var err error
				if t, err = time.Parse("2006-01", args[0]); err != nil {
					return fmt.Errorf("month must be YYYY-MM: %w", err)
				}
			}

			a, err := rc.open(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()

			st, err := a.coord.Journal(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s %d\n\n", t.Month(), t.Year())

			tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintf(tw, "WEEK\tFROM\tTO\tDAYS\tPROFIT\n")
			for _, w := range journal.WeeklyTotals(st, t.Year(), t.Month()) {
				fmt.Fprintf(tw, "%d\t%s\t%s\t%d\t%s\n", w.Week, w.Start, w.End, w.Days, a.signed(w.Profit))
			}
			tw.Flush()

			fmt.Fprintf(out, "\nMonthly profit: %s\n", a.signed(journal.MonthlyProfit(st, t.Year(), t.Month())))
			return nil
		},
	}
}

func newJournalSetCmd(rc *RootConfig) *cobra.Command {
	var (
		profit float64
		trades int
		wins   int
	)

	cmd := &cobra.Command{
		Use:   "set <YYYY-MM-DD>",
		Short: "Overwrite one day of the journal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := rc.open(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()

			d := journal.DailyTradeData{
				Date:   args[0],
				Profit: currency.ToCanonical(profit, a.code),
				Trades: trades,
				Wins:   wins,
			}
			if _, err := a.coord.SetDay(cmd.Context(), d); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ %s: %s over %d trades (%d W / %d L)\n",
				d.Date, a.signed(d.Profit), d.Trades, d.Wins, d.Losses())
			return nil
		},
	}

	cmd.Flags().Float64Var(&profit, "profit", 0, "Day profit in display currency")
	cmd.Flags().IntVar(&trades, "trades", 0, "Number of trades")
	cmd.Flags().IntVar(&wins, "wins", 0, "Number of winning trades")
	return cmd
}

func newJournalDeleteCmd(rc *RootConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <YYYY-MM-DD>",
		Short: "Remove one day of the journal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := rc.open(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()

			if _, err := a.coord.DeleteDay(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Deleted %s\n", args[0])
			return nil
		},
	}
}

func newJournalClearCmd(rc *RootConfig) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Remove every day of the journal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return fmt.Errorf("refusing to clear the journal without --yes")
			}
			a, err := rc.open(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()

			if err := a.coord.ClearJournal(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "✓ Journal cleared")
			return nil
		},
	}
	cmd.Flags().BoolVar(&yes, "yes", false, "Confirm clearing the journal")
	return cmd
}

func newJournalExportCmd(rc *RootConfig) *cobra.Command {
	var csvPath, orgPath string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the journal as CSV and/or Org-mode",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if csvPath == "" && orgPath == "" {
				return fmt.Errorf("--csv or --org is required")
			}
			a, err := rc.open(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()

			st, err := a.coord.Journal(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if csvPath != "" {
				if err := journal.ExportCSV(csvPath, st); err != nil {
					return err
				}
				fmt.Fprintf(out, "✓ Wrote %d days to %s\n", len(st), csvPath)
			}
			if orgPath != "" {
				p, err := a.coord.Progress(cmd.Context())
				if err != nil {
					return err
				}
				if err := os.WriteFile(orgPath, []byte(journal.FormatDaysOrg(st, p)), 0o644); err != nil {
					return fmt.Errorf("write %s: %w", orgPath, err)
				}
				fmt.Fprintf(out, "✓ Wrote %d days to %s\n", len(st), orgPath)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&csvPath, "csv", "", "CSV output path")
	cmd.Flags().StringVar(&orgPath, "org", "", "Org-mode output path")
	return cmd
}
