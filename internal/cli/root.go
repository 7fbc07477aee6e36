package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// RootConfig holds the persistent flags shared by every subcommand.
type RootConfig struct {
	ConfigPath string
	EnvFile    string
	DBPath     string
	StoreType  string
	LogLevel   string
	Currency   string
}

func NewRootCmd() *cobra.Command {
	rc := &RootConfig{}

	cmd := &cobra.Command{
		Use:   "compound",
		Short: "Compound: trade compounding planner and progress journal",
		Long: `Compound projects a fixed-risk compounding plan and tracks your progress
through it one WIN or LOSS at a time, keeping a calendar journal of results.

Examples:
  compound plan --steps 10
  compound step win
  compound journal month 2024-01
  compound stats`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global / persistent flags
	cmd.PersistentFlags().StringVar(&rc.ConfigPath, "config", "", "Path to config file (optional)")
	cmd.PersistentFlags().StringVar(&rc.EnvFile, "env-file", "", "Path to .env file (default ./.env)")
	cmd.PersistentFlags().StringVar(&rc.DBPath, "db", "", "SQLite database (overrides config)")
	cmd.PersistentFlags().StringVar(&rc.StoreType, "store", "", "Store backend: memory|sqlite|redis (overrides config)")
	cmd.PersistentFlags().StringVar(&rc.LogLevel, "log-level", "", "Log level: debug|info|warn|error")
	cmd.PersistentFlags().StringVar(&rc.Currency, "currency", "", "Display currency: USD|NGN")

	cmd.AddCommand(
		newPlanCmd(rc),
		newStepCmd(rc),
		newJournalCmd(rc),
		newStatsCmd(rc),
		newResetCmd(rc),
		newAnalyzeCmd(rc),
		newServeCmd(rc),
		newConfigCmd(),
		newVersionCmd(),
	)

	return cmd
}

func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
