package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/compound/analysis"
	"github.com/rustyeddy/compound/internal/logger"
	"github.com/rustyeddy/compound/plan"
)

func newAnalyzeCmd(rc *RootConfig) *cobra.Command {
	var pf planFlags

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Ask the analysis service for an assessment of the plan",
		Long: `Analyze sends a summary of the plan to an OpenAI-compatible chat completion
endpoint. The API key is read from analysis.api_key, COMPOUND_API_KEY or API_KEY
(a .env file is honored).`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := rc.loadConfig()
			if err != nil {
				return err
			}
			settings, err := pf.apply(cmd, cfg.Plan, cfg.DisplayCurrency())
			if err != nil {
				return err
			}

			rows := plan.Generate(settings)
			if !plan.Finite(rows) {
				return fmt.Errorf("plan overflows: reduce risk, reward or steps")
			}

			out := cmd.OutOrStdout()
			client, err := analysis.New(cfg.Analysis, logger.New(cfg.Logging.Level))
			if err != nil {
				fmt.Fprintln(out, analysis.DisplayError(err))
				return nil
			}

			text, err := client.Analyze(cmd.Context(), rows, settings.RiskPercentage, settings.RewardRatio)
			if err != nil {
				fmt.Fprintln(out, analysis.DisplayError(err))
				return nil
			}
			fmt.Fprintln(out, text)
			return nil
		},
	}
	pf.bind(cmd)
	return cmd
}
