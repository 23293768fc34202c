package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/stsysd/calheat/config"
	"github.com/stsysd/calheat/model"
	"github.com/stsysd/calheat/series"
	"github.com/stsysd/calheat/state"
)

func selection2024() state.Selection {
	sel := state.DefaultSelection()
	sel.Year = 2024
	return sel
}

func testApp(t *testing.T) *App {
	t.Helper()
	app, err := NewApp(&config.Config{CellSize: 15, Seed: 7, CORSOrigins: []string{"*"}}, zap.NewNop())
	require.NoError(t, err)
	app.Source = series.Constant(4)
	app.IsInteractive = func() bool { return false }
	return app
}

func execute(t *testing.T, app *App, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := NewRootCmd(app)
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestRootCmd_Subcommands(t *testing.T) {
	cmd := NewRootCmd(testApp(t))

	var names []string
	for _, c := range cmd.Commands() {
		names = append(names, c.Name())
	}
	for _, want := range []string{"serve", "render", "export", "term", "pick"} {
		assert.Contains(t, names, want)
	}
}

func TestRender_SVG(t *testing.T) {
	tests := []struct {
		name  string
		args  []string
		cells int
	}{
		{"yearly default", []string{"render", "--year", "2025"}, 365},
		{"leap year", []string{"render", "--year", "2024"}, 366},
		{"monthly", []string{"render", "--view", "monthly", "--month", "2", "--year", "2024"}, 29},
		{"weekly", []string{"render", "--view", "weekly", "--year", "2025", "--palette", "variant3"}, 7},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := execute(t, testApp(t), tt.args...)
			require.NoError(t, err)
			assert.True(t, strings.HasPrefix(out, "<svg"))
			assert.Equal(t, tt.cells, strings.Count(out, `data-date="`))
		})
	}
}

func TestRender_JSON(t *testing.T) {
	out, err := execute(t, testApp(t), "render", "--view", "weekly", "--year", "2025", "--format", "json", "--locale", "de", "--legend=false")
	require.NoError(t, err)

	var body struct {
		Options struct {
			Type   string `json:"type"`
			Locale string `json:"locale"`
			Legend struct {
				Display bool `json:"display"`
			} `json:"heatmapLegend"`
		} `json:"options"`
		Data []struct {
			Date  string `json:"date"`
			Count int    `json:"count"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &body))
	assert.Equal(t, "WEEKLY", body.Options.Type)
	assert.Equal(t, "de", body.Options.Locale)
	assert.False(t, body.Options.Legend.Display)
	require.Len(t, body.Data, 7)
	assert.Equal(t, 4, body.Data[0].Count)
}

func TestRender_Term(t *testing.T) {
	out, err := execute(t, testApp(t), "render", "--view", "monthly", "--month", "3", "--year", "2025", "--format", "term")
	require.NoError(t, err)
	assert.Contains(t, out, "March 2025")
}

func TestRender_Invalid(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"year out of range", []string{"render", "--year", "1900"}},
		{"unknown view", []string{"render", "--view", "daily"}},
		{"bad month", []string{"render", "--view", "monthly", "--month", "13"}},
		{"unknown palette", []string{"render", "--palette", "nope"}},
		{"unsupported locale", []string{"render", "--locale", "es"}},
		{"unknown format", []string{"render", "--format", "png"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := execute(t, testApp(t), tt.args...)
			var validationErr *model.ValidationError
			assert.True(t, errors.As(err, &validationErr), "got %v", err)
		})
	}
}

func TestExport(t *testing.T) {
	path := filepath.Join(t.TempDir(), "calendar.html")

	out, err := execute(t, testApp(t), "export", "--year", "2025", "--out", path)
	require.NoError(t, err)
	assert.Contains(t, out, "wrote "+path)

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(b), "echarts")
	assert.Contains(t, string(b), "2025-12-31")
}

func TestTerm_NonInteractive(t *testing.T) {
	out, err := execute(t, testApp(t), "term", "--year", "2025")
	require.NoError(t, err)

	assert.Contains(t, out, "2025")
	assert.Equal(t, 365+5, strings.Count(out, "■"))
}

func TestPick_NonInteractive(t *testing.T) {
	_, err := execute(t, testApp(t), "pick")
	assert.EqualError(t, err, "pick requires an interactive terminal")
}

func TestRenderChoices(t *testing.T) {
	app := testApp(t)
	c := newPickChoices(selection2024())
	c.View = "weekly"
	c.Palette = "variant4"

	var out bytes.Buffer
	cmd := NewRootCmd(app)
	cmd.SetOut(&out)
	require.NoError(t, renderChoices(cmd, app, c))
	assert.Contains(t, out.String(), "Jan 1 - Jan 7")
	assert.Equal(t, 7+6, strings.Count(out.String(), "■"))
}

func TestPickForm(t *testing.T) {
	app := testApp(t)
	c := newPickChoices(selection2024())
	assert.NotNil(t, pickForm(state.SelectorOptions(app.Registry), c))
	assert.Equal(t, "2024", c.Year)
	assert.Equal(t, "yearly", c.View)
}

func TestNewApp_PaletteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "palettes.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[[variant]]
name = "mono"

[[variant.bucket]]
min = -inf
max = 1.0
default = true
label = "mono-0"
color = "#ffffff"

[[variant.bucket]]
min = 1.0
max = inf
label = "mono-1"
color = "#000000"
`), 0o644))

	app, err := NewApp(&config.Config{CellSize: 15, PaletteFile: path}, zap.NewNop())
	require.NoError(t, err)
	assert.Contains(t, app.Registry.Names(), "mono")
	assert.Contains(t, app.Registry.Names(), "variant1")

	_, err = NewApp(&config.Config{PaletteFile: filepath.Join(t.TempDir(), "missing.toml")}, zap.NewNop())
	assert.Error(t, err)
}
