package cli

import (
	"github.com/spf13/cobra"

	"github.com/example/docgen/internal/server"
)

func newServeCommand(opts *rootOptions) *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve [dir]",
		Short: "Serve generated pages for local preview",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, opts)
			if err != nil {
				return err
			}
			dir := cfg.Output
			if len(args) == 1 {
				dir = args[0]
			}
			logger, err := newLogger(cfg.Log, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			return server.Serve(cmd.Context(), addr, server.NewHandler(dir, cfg.Title, logger), logger)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "127.0.0.1:8080", "Address to listen on")
	return cmd
}
