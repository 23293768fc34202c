package cli

import (
	"errors"
	"strconv"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/stsysd/calheat/series"
	"github.com/stsysd/calheat/state"
)

// pickChoices holds the values bound to the pick form fields.
type pickChoices struct {
	Year    string
	Palette string
	Legend  bool
	Locale  string
	View    string
}

func newPickChoices(defaults state.Selection) *pickChoices {
	return &pickChoices{
		Year:    strconv.Itoa(defaults.Year),
		Palette: defaults.Palette,
		Legend:  defaults.LegendVisible,
		Locale:  defaults.Locale,
		View:    series.Yearly.String(),
	}
}

func (c *pickChoices) flags() selectionFlags {
	return selectionFlags{
		year:    c.Year,
		palette: c.Palette,
		legend:  c.Legend,
		locale:  c.Locale,
	}
}

func pickForm(opts state.Options, c *pickChoices) *huh.Form {
	years := make([]string, len(opts.Years))
	for i, y := range opts.Years {
		years[i] = strconv.Itoa(y)
	}
	kinds := []string{series.Yearly.String(), series.Monthly.String(), series.Weekly.String()}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Year").
				Options(huh.NewOptions(years...)...).
				Value(&c.Year),
			huh.NewSelect[string]().
				Title("Palette").
				Options(huh.NewOptions(opts.Palettes...)...).
				Value(&c.Palette),
			huh.NewConfirm().
				Title("Show legend?").
				Value(&c.Legend),
			huh.NewSelect[string]().
				Title("Locale").
				Options(huh.NewOptions(opts.Locales...)...).
				Value(&c.Locale),
			huh.NewSelect[string]().
				Title("View").
				Options(huh.NewOptions(kinds...)...).
				Value(&c.View),
		),
	).WithShowHelp(false)
}

func newPickCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "pick",
		Short: "Choose the selectors in a form, then render to the terminal",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !app.IsInteractive() {
				return errors.New("pick requires an interactive terminal")
			}

			opts := state.SelectorOptions(app.Registry)
			choices := newPickChoices(opts.Defaults)
			if err := pickForm(opts, choices).Run(); err != nil {
				if errors.Is(err, huh.ErrUserAborted) {
					return nil
				}
				return err
			}
			return renderChoices(cmd, app, choices)
		},
	}
}

func renderChoices(cmd *cobra.Command, app *App, c *pickChoices) error {
	kind, err := series.ParseKind(c.View)
	if err != nil {
		return err
	}
	f := c.flags()
	sel, err := f.selection(app)
	if err != nil {
		return err
	}
	d, err := app.display(sel)
	if err != nil {
		return err
	}
	cfg, err := buildView(kind, sel.Year, 1, d, app.Source)
	if err != nil {
		return err
	}
	return writeView(cmd.OutOrStdout(), cfg, "term")
}
