package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/stsysd/calheat/heatmap"
	"github.com/stsysd/calheat/model"
	"github.com/stsysd/calheat/series"
	"github.com/stsysd/calheat/view"
)

func newRenderCmd(app *App) *cobra.Command {
	var (
		flags  selectionFlags
		kind   string
		month  string
		format string
	)

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render one view to stdout",
		Example: `  calheat render --view yearly --year 2024 --palette variant2
  calheat render --view monthly --month 2 --format term`,
		RunE: func(cmd *cobra.Command, args []string) error {
			k, err := series.ParseKind(kind)
			if err != nil {
				return model.NewValidationError(err.Error())
			}
			m, err := model.ParseMonth(month)
			if err != nil {
				return err
			}
			sel, err := flags.selection(app)
			if err != nil {
				return err
			}
			d, err := app.display(sel)
			if err != nil {
				return err
			}

			cfg, err := buildView(k, sel.Year, m, d, app.Source)
			if err != nil {
				return err
			}
			return writeView(cmd.OutOrStdout(), cfg, format)
		},
	}

	flags.bind(cmd)
	cmd.Flags().StringVar(&kind, "view", series.Yearly.String(), "view kind (yearly, monthly, weekly)")
	cmd.Flags().StringVar(&month, "month", "", "month for the monthly view (1-12, default 1)")
	cmd.Flags().StringVar(&format, "format", "svg", "output format (svg, json, term)")
	return cmd
}

func buildView(kind series.Kind, year int, month time.Month, d view.Display, src series.CountSource) (view.ViewConfig, error) {
	switch kind {
	case series.Monthly:
		return view.Month(year, month, d, src)
	case series.Weekly:
		return view.Weekly(year, d, src)
	default:
		return view.Yearly(year, d, src)
	}
}

func writeView(w io.Writer, cfg view.ViewConfig, format string) error {
	switch format {
	case "svg":
		svg, err := heatmap.GenerateSVG(cfg, nil)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, svg)
		return err
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(cfg)
	case "term":
		out, err := heatmap.RenderTerminal(cfg)
		if err != nil {
			return err
		}
		_, err = fmt.Fprint(w, out)
		return err
	default:
		return model.NewValidationError(fmt.Sprintf("unknown format %q (svg, json, term)", format))
	}
}
