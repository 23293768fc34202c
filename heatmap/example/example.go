// Package main demonstrates the use of the heatmap package to generate SVG heatmaps.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/stsysd/calheat/heatmap"
	"github.com/stsysd/calheat/palette"
	"github.com/stsysd/calheat/series"
	"github.com/stsysd/calheat/view"
)

func main() {
	// Generate random activity for the current year
	src := series.NewRandomSource()
	pal, err := palette.Builtin().Lookup("variant2")
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	cfg, err := view.Yearly(time.Now().Year(), view.Display{
		Palette:       pal,
		LegendVisible: true,
	}, src)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	// Create SVG heatmap
	svg, err := heatmap.GenerateYearlyHeatmapSVG(cfg, nil)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	// Output to stdout
	fmt.Println(svg)
}
