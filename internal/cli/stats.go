package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/compound/journal"
)

func newStatsCmd(rc *RootConfig) *cobra.Command {
	var curve bool

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Aggregate statistics over the journal",
		Args:  cobra.NoArgs,
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
			s := journal.ComputeStats(st, a.cfg.Plan.StartAmount)

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Trades:        %d (%d W / %d L)\n", s.TotalTrades, s.TotalWins, s.TotalLosses)
			fmt.Fprintf(out, "Win rate:      %.1f%%\n", s.WinRate)
			fmt.Fprintf(out, "Net P/L:       %s\n", a.signed(s.NetPL))
			fmt.Fprintf(out, "Gross profit:  %s\n", a.money(s.GrossProfit))
			fmt.Fprintf(out, "Gross loss:    %s\n", a.money(s.GrossLoss))
			fmt.Fprintf(out, "Profit factor: %.2f\n", s.ProfitFactor)
			fmt.Fprintf(out, "Avg win day:   %s\n", a.signed(s.AvgWinDay))
			fmt.Fprintf(out, "Avg loss day:  %s\n", a.signed(s.AvgLossDay))
			fmt.Fprintf(out, "Best day:      %s\n", a.signed(s.BestDay))
			fmt.Fprintf(out, "Worst day:     %s\n", a.signed(s.WorstDay))

			if curve {
				fmt.Fprintln(out, "\nEquity curve:")
				for _, p := range s.EquityCurve {
					fmt.Fprintf(out, "  %-10s  %s\n", p.Date, a.money(p.Balance))
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&curve, "curve", false, "Also print the equity curve")
	return cmd
}
