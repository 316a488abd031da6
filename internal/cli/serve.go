package cli

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/eringen/mcgen"
)

func newServeCmd(g *globals) *cobra.Command {
	var addr, staticDir string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the web server",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())
			cfg := g.cfg
			if addr != "" {
				cfg.Addr = addr
			}

			app := mcgen.New(cfg, mcgen.WithLogger(logger), mcgen.WithStaticDir(staticDir))
			defer func() {
				if err := app.Close(); err != nil {
					logger.Warn("closing app", "err", err)
				}
			}()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return app.Start(ctx)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides config)")
	cmd.Flags().StringVar(&staticDir, "public", "public", "directory holding main.wasm and wasm_exec.js")
	return cmd
}
