package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/stsysd/calheat/heatmap"
	"github.com/stsysd/calheat/state"
	"github.com/stsysd/calheat/tui"
)

func newTermCmd(app *App) *cobra.Command {
	var flags selectionFlags

	cmd := &cobra.Command{
		Use:   "term",
		Short: "Browse the views interactively in the terminal",
		RunE: func(cmd *cobra.Command, args []string) error {
			sel, err := flags.selection(app)
			if err != nil {
				return err
			}
			store, err := state.NewStore(app.Registry, app.Source,
				state.WithLogger(app.Logger),
				state.WithSelection(sel),
				state.WithCellSize(app.Config.CellSize),
			)
			if err != nil {
				return err
			}

			if !app.IsInteractive() {
				out, err := heatmap.RenderTerminal(store.Views().Yearly)
				if err != nil {
					return err
				}
				_, err = fmt.Fprint(cmd.OutOrStdout(), out)
				return err
			}

			_, err = tea.NewProgram(tui.New(store), tea.WithAltScreen()).Run()
			return err
		},
	}

	flags.bind(cmd)
	return cmd
}
