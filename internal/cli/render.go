package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/eringen/mcgen"
	"github.com/eringen/mcgen/generator"
)

func newRenderCmd(g *globals) *cobra.Command {
	var (
		req    generator.Request
		output string
	)

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render one achievement to a PNG file",
		Example: `  mcgen render --background dirt --title "Achievement get!" --text "Mined a block" -o out.png
  mcgen render --title "Big" --scale 4 -o big.png`,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())
			prog := newProgress(logger)

			gen, err := mcgen.NewGenerator(g.cfg, logger)
			if err != nil {
				return err
			}
			if req.Background == "" {
				req.Background = generator.PlainBackground
			}
			data, err := gen.Generate(req)
			if err != nil {
				return fmt.Errorf("render %s: %w", req.Background, err)
			}
			if err := os.WriteFile(output, data, 0o644); err != nil {
				return err
			}
			prog.done(fmt.Sprintf("Wrote %s", output))
			return nil
		},
	}

	cmd.Flags().StringVarP(&req.Background, "background", "b", "", "background identifier (default plain)")
	cmd.Flags().StringVar(&req.Title, "title", "Achievement get!", "title line")
	cmd.Flags().StringVar(&req.Text, "text", "", "text line")
	cmd.Flags().IntVar(&req.Scale, "scale", 1, "integer upscale factor")
	cmd.Flags().StringVarP(&output, "output", "o", "achievement.png", "output file")
	return cmd
}
