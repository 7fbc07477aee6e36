package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/compound/currency"
	"github.com/rustyeddy/compound/journal"
	"github.com/rustyeddy/compound/plan"
	"github.com/rustyeddy/compound/tracker"
)

func newStepCmd(rc *RootConfig) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "step",
		Short: "Register results against the plan",
		Long: `Resolve the current plan step as a WIN or a LOSS.

Subcommands:
  win     - Register the current step as won (+profit)
  loss    - Register the current step as lost (-risk)
  status  - Show the current step and the resolved history

Examples:
  compound step win
  compound step loss --date 2024-01-15
  compound step win --amount 3.50`,
	}

	cmd.AddCommand(
		newStepResultCmd(rc, journal.Win),
		newStepResultCmd(rc, journal.Loss),
		newStepStatusCmd(rc),
	)
	return cmd
}

func newStepResultCmd(rc *RootConfig, outcome journal.Outcome) *cobra.Command {
	var (
		date   string
		amount float64
	)

	name := "win"
	if outcome == journal.Loss {
		name = "loss"
	}

	cmd := &cobra.Command{
		Use:   name,
		Short: fmt.Sprintf("Register the current step as %s", outcome),
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := rc.open(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()

			ctx := cmd.Context()
			rows := plan.Generate(a.cfg.Plan)

			var res tracker.Result
			if cmd.Flags().Changed("amount") {
				p, err := a.coord.Progress(ctx)
				if err != nil {
					return err
				}
				res, err = a.coord.RegisterResult(ctx, p.CurrentStep, outcome,
					currency.ToCanonical(amount, a.code), date)
				if err != nil {
					return err
				}
			} else {
				res, err = a.coord.RegisterOutcome(ctx, rows, outcome, date)
				if err != nil {
					return err
				}
			}

			step := res.Progress.CurrentStep - 1
			r := res.Progress.History[step]
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "✓ Step %d %s: %s on %s\n", step, r.Status, a.signed(r.Amount), r.Date)
			fmt.Fprintf(out, "  Day %s: %s over %d trades (%d W / %d L)\n",
				res.Entry.Date, a.signed(res.Entry.Profit), res.Entry.Trades, res.Entry.Wins, res.Entry.Losses())
			if next, ok := plan.Find(rows, res.Progress.CurrentStep); ok {
				fmt.Fprintf(out, "  Next: step %d at %s (%.2f lots)\n", next.ID, a.money(next.Amount), next.LotSize)
			} else {
				fmt.Fprintln(out, "  Plan complete.")
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Day of the result, YYYY-MM-DD (default today)")
	cmd.Flags().Float64Var(&amount, "amount", 0, "Realized signed P/L in display currency (default planned payoff)")
	return cmd
}

func newStepStatusCmd(rc *RootConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the current step and history",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := rc.open(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()

			p, err := a.coord.Progress(cmd.Context())
			if err != nil {
				return err
			}
			rows := plan.Generate(a.cfg.Plan)
			out := cmd.OutOrStdout()

			if row, ok := plan.Find(rows, p.CurrentStep); ok {
				fmt.Fprintf(out, "Current step %d of %d: balance %s, %.2f lots, risk %s, target %s\n",
					row.ID, len(rows), a.money(row.Amount), row.LotSize, a.money(row.RiskAmount), a.money(row.Total))
			} else {
				fmt.Fprintf(out, "Plan complete: %d of %d steps resolved\n", p.CurrentStep-1, len(rows))
			}

			for _, r := range rows {
				if tracker.StepState(p, r.ID) != tracker.Resolved {
					continue
				}
				h, ok := p.History[r.ID]
				if !ok {
					continue
				}
				fmt.Fprintf(out, "  %3d  %-4s  %s  %s\n", r.ID, h.Status, h.Date, a.signed(h.Amount))
			}
			return nil
		},
	}
}
