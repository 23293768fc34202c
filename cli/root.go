// Package cli wires the calheat commands.
package cli

import (
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/stsysd/calheat/config"
	"github.com/stsysd/calheat/palette"
	"github.com/stsysd/calheat/series"
)

// App holds the dependencies shared by all commands.
type App struct {
	Config   *config.Config
	Logger   *zap.Logger
	Registry *palette.Registry
	Source   series.CountSource

	// IsInteractive reports whether stdout is attached to a terminal.
	IsInteractive func() bool
}

// NewApp builds the palette registry and count source described by cfg.
func NewApp(cfg *config.Config, logger *zap.Logger) (*App, error) {
	reg := palette.Builtin()
	if cfg.PaletteFile != "" {
		extra, err := palette.LoadFile(cfg.PaletteFile)
		if err != nil {
			return nil, fmt.Errorf("loading palettes from %s: %w", cfg.PaletteFile, err)
		}
		reg = reg.Merge(extra)
		logger.Debug("loaded palettes", zap.String("file", cfg.PaletteFile), zap.Strings("names", extra.Names()))
	}

	var src series.CountSource = series.NewRandomSource()
	if cfg.Seed != 0 {
		src = series.NewSeededSource(cfg.Seed)
	}

	return &App{
		Config:   cfg,
		Logger:   logger,
		Registry: reg,
		Source:   src,
		IsInteractive: func() bool {
			return isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
		},
	}, nil
}

// NewRootCmd creates the top-level "calheat" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "calheat",
		Short:         "Calendar heatmap views of daily activity counts",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newServeCmd(app),
		newRenderCmd(app),
		newExportCmd(app),
		newTermCmd(app),
		newPickCmd(app),
	)

	return root
}
