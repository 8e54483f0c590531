package cli

import (
	"github.com/spf13/cobra"

	"github.com/maastricht-university/veracity-pipeline/scoring"
	"github.com/maastricht-university/veracity-pipeline/server"
)

func (a *app) serveCmd() *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the prediction API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if addr == "" {
				addr = a.cfg.Server.Addr
			}
			var store server.Store
			s, err := a.openHistory(cmd.Context())
			if err != nil {
				return err
			}
			if s != nil {
				defer s.Close()
				store = s
			}
			srv := server.New(scoring.NewEngine(scoring.DefaultModel()), store, a.log)
			return srv.ListenAndServe(cmd.Context(), addr)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config)")
	return cmd
}
