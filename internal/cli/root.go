package cli

import (
	"context"
	"fmt"
	"os"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/eringen/mcgen"
)

var (
	version = "dev"
	commit  string
	date    string
)

// SetVersion sets the version information displayed by --version.
func SetVersion(v, c, d string) {
	version = v
	commit = c
	date = d
}

// globals are the persistent flags shared by every command.
type globals struct {
	verbose    bool
	configPath string
	cfg        mcgen.Config
}

// Execute runs the mcgen CLI.
func Execute() error {
	return newRootCmd().ExecuteContext(context.Background())
}

func newRootCmd() *cobra.Command {
	g := &globals{}

	root := &cobra.Command{
		Use:          "mcgen",
		Short:        "mcgen generates Minecraft achievement images",
		Long:         `mcgen serves Minecraft-style achievement images over HTTP, together with a page that previews them while you type.`,
		Version:      version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := mcgen.LoadConfig(g.configPath)
			if err != nil {
				return err
			}
			g.cfg = cfg

			level := charmlog.InfoLevel
			if g.verbose {
				level = charmlog.DebugLevel
			}
			cmd.SetContext(withLogger(cmd.Context(), newLogger(os.Stderr, level, cfg.Production())))
			return nil
		},
	}

	root.SetVersionTemplate(fmt.Sprintf("mcgen %s\ncommit: %s\nbuilt: %s\n", version, commit, date))
	root.PersistentFlags().BoolVarP(&g.verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVarP(&g.configPath, "config", "c", os.Getenv("MCGEN_CONFIG"), "TOML config file")

	root.AddCommand(newServeCmd(g))
	root.AddCommand(newRenderCmd(g))
	root.AddCommand(newBackgroundsCmd(g))

	return root
}
