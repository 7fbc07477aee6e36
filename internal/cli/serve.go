package cli

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/compound/analysis"
	"github.com/rustyeddy/compound/api"
)

func newServeCmd(rc *RootConfig) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the JSON HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			a, err := rc.open(ctx)
			if err != nil {
				return err
			}
			defer a.Close()

			var analyzer api.Analyzer
			if client, err := analysis.New(a.cfg.Analysis, a.log); err == nil {
				analyzer = client
			} else {
				a.log.Warn("analysis disabled", "reason", analysis.DisplayError(err))
			}

			if addr == "" {
				addr = a.cfg.Server.Addr
			}
			return api.NewServer(a.coord, a.cfg.Plan, analyzer, a.log).ListenAndServe(ctx, addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default server.addr)")
	return cmd
}

