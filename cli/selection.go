package cli

import (
	"github.com/spf13/cobra"

	"github.com/stsysd/calheat/model"
	"github.com/stsysd/calheat/state"
	"github.com/stsysd/calheat/view"
)

// selectionFlags are the four selectors shared by the rendering commands.
type selectionFlags struct {
	year    string
	palette string
	legend  bool
	locale  string
}

func (f *selectionFlags) bind(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.year, "year", "", "year to render (default: current year)")
	cmd.Flags().StringVar(&f.palette, "palette", model.DefaultPaletteName, "palette variant name")
	cmd.Flags().BoolVar(&f.legend, "legend", true, "show the legend")
	cmd.Flags().StringVar(&f.locale, "locale", model.DefaultLocale, "locale (en, tr, fr, de, ja, zh)")
}

// selection validates the flags against the registry of app.
func (f *selectionFlags) selection(app *App) (state.Selection, error) {
	year, err := model.ParseYear(f.year)
	if err != nil {
		return state.Selection{}, err
	}
	return state.Normalize(state.Selection{
		Year:          year.Int(),
		Palette:       f.palette,
		LegendVisible: f.legend,
		Locale:        f.locale,
	}, app.Registry)
}

func (app *App) display(sel state.Selection) (view.Display, error) {
	return state.Display(sel, app.Registry, view.Display{CellSize: app.Config.CellSize})
}
