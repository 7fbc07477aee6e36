package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newResetCmd(rc *RootConfig) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Reset plan progress and clear the journal",
		Long: `Reset returns the plan to step 1 and removes every journal day.
This cannot be undone.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return fmt.Errorf("refusing to reset without --yes")
			}
			a, err := rc.open(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()

			p, _, err := a.coord.FullReset(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Reset: current step %d, journal empty\n", p.CurrentStep)
			return nil
		},
	}

	cmd.Flags().BoolVar(&yes, "yes", false, "Confirm the reset")
	return cmd
}
