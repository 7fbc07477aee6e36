package cli

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/compound/currency"
	"github.com/rustyeddy/compound/plan"
)

// planFlags binds the plan overrides shared by plan and analyze.
type planFlags struct {
	s plan.Settings
}

func (f *planFlags) bind(cmd *cobra.Command) {
	def := plan.DefaultSettings()
	cmd.Flags().Float64Var(&f.s.StartAmount, "start", def.StartAmount, "Starting balance (display currency)")
	cmd.Flags().Float64Var(&f.s.RiskPercentage, "risk", def.RiskPercentage, "Risk per trade in percent")
	cmd.Flags().Float64Var(&f.s.RewardRatio, "reward", def.RewardRatio, "Reward ratio (1 = 1:1)")
	cmd.Flags().Float64Var(&f.s.LotDivisor, "divisor", def.LotDivisor, "Balance per 1.00 lot")
	cmd.Flags().IntVar(&f.s.Steps, "steps", def.Steps, "Number of checkpoints")
}

// apply overlays the flags the user actually set onto base. The start amount
// is entered in the display currency.
func (f *planFlags) apply(cmd *cobra.Command, base plan.Settings, code currency.Code) (plan.Settings, error) {
	out := base
	if cmd.Flags().Changed("start") {
		out.StartAmount = currency.ToCanonical(f.s.StartAmount, code)
	}
	if cmd.Flags().Changed("risk") {
		out.RiskPercentage = f.s.RiskPercentage
	}
	if cmd.Flags().Changed("reward") {
		out.RewardRatio = f.s.RewardRatio
	}
	if cmd.Flags().Changed("divisor") {
		out.LotDivisor = f.s.LotDivisor
	}
	if cmd.Flags().Changed("steps") {
		out.Steps = f.s.Steps
	}
	if err := plan.Check(out).Err(); err != nil {
		return out, err
	}
	return out, nil
}

func newPlanCmd(rc *RootConfig) *cobra.Command {
	var pf planFlags

	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Print the projected compounding plan",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := rc.loadConfig()
			if err != nil {
				return err
			}
			code := cfg.DisplayCurrency()
			settings, err := pf.apply(cmd, cfg.Plan, code)
			if err != nil {
				return err
			}

			rows := plan.Generate(settings)
			if !plan.Finite(rows) {
				return fmt.Errorf("plan overflows: reduce risk, reward or steps")
			}
			writePlan(cmd.OutOrStdout(), rows, code)
			writeSummary(cmd.OutOrStdout(), plan.Summarize(settings, rows), code)
			return nil
		},
	}
	pf.bind(cmd)
	return cmd
}

func writePlan(w io.Writer, rows []plan.Checkpoint, code currency.Code) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "STEP\tBALANCE\tLOTS\tRISK\tPROFIT\tTARGET\n")
	for _, r := range rows {
		fmt.Fprintf(tw, "%d\t%s\t%.2f\t%s\t%s\t%s\n",
			r.ID,
			currency.Format(r.Amount, code),
			r.LotSize,
			currency.Format(r.RiskAmount, code),
			currency.Format(r.Profit, code),
			currency.Format(r.Total, code),
		)
	}
	tw.Flush()
}

func writeSummary(w io.Writer, s plan.Summary, code currency.Code) {
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Steps:         %d\n", s.Steps)
	fmt.Fprintf(w, "Start balance: %s\n", currency.Format(s.StartBalance, code))
	fmt.Fprintf(w, "Final balance: %s\n", currency.Format(s.FinalBalance, code))
	fmt.Fprintf(w, "Total profit:  %s\n", currency.FormatSigned(s.TotalProfit, code))
	fmt.Fprintf(w, "Growth:        %.2f%%\n", s.GrowthPct)
	fmt.Fprintf(w, "Final lots:    %.2f\n", s.FinalLotSize)
}
