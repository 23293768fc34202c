package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/stsysd/calheat/heatmap"
	"github.com/stsysd/calheat/view"
)

func newExportCmd(app *App) *cobra.Command {
	var (
		flags selectionFlags
		out   string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write every view of a year as an interactive HTML calendar page",
		RunE: func(cmd *cobra.Command, args []string) error {
			sel, err := flags.selection(app)
			if err != nil {
				return err
			}
			d, err := app.display(sel)
			if err != nil {
				return err
			}
			set, err := view.BuildSet(sel.Year, d, app.Source)
			if err != nil {
				return err
			}

			f, err := os.Create(out)
			if err != nil {
				return fmt.Errorf("could not create %s: %w", out, err)
			}
			defer f.Close()

			if err := heatmap.RenderSetHTML(f, set); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", out)
			return nil
		},
	}

	flags.bind(cmd)
	cmd.Flags().StringVarP(&out, "out", "o", "calheat.html", "output HTML file")
	return cmd
}
