package api

import (
	"bytes"
	"html/template"
	"net/http"

	"go.uber.org/zap"

	"github.com/stsysd/calheat/heatmap"
	"github.com/stsysd/calheat/state"
	"github.com/stsysd/calheat/view"
)

var indexTemplate = template.Must(template.New("index").Parse(`<!DOCTYPE html>
<html lang="{{.Selection.Locale}}">
<head>
<meta charset="utf-8">
<title>calheat {{.Selection.Year}}</title>
<style>
body { font-family: sans-serif; margin: 2em; }
form { display: flex; gap: 1em; margin-bottom: 2em; }
section { margin-bottom: 2em; }
</style>
</head>
<body>
<form method="get" action="/">
  <label>Year
    <select name="year">
    {{- range .Options.Years}}
      <option value="{{.}}"{{if eq . $.Selection.Year}} selected{{end}}>{{.}}</option>
    {{- end}}
    </select>
  </label>
  <label>Palette
    <select name="palette">
    {{- range .Options.Palettes}}
      <option value="{{.}}"{{if eq . $.Selection.Palette}} selected{{end}}>{{.}}</option>
    {{- end}}
    </select>
  </label>
  <label>Legend
    <select name="legend">
    {{- range .Options.Legend}}
      <option value="{{.}}"{{if eq . $.Selection.LegendVisible}} selected{{end}}>{{if .}}show{{else}}hide{{end}}</option>
    {{- end}}
    </select>
  </label>
  <label>Locale
    <select name="locale">
    {{- range .Options.Locales}}
      <option value="{{.}}"{{if eq . $.Selection.Locale}} selected{{end}}>{{.}}</option>
    {{- end}}
    </select>
  </label>
  <button type="submit">Apply</button>
</form>
<section id="yearly">{{.Yearly}}</section>
<section id="monthly">
{{- range .Monthly}}
{{.}}
{{- end}}
</section>
<section id="weekly">{{.Weekly}}</section>
<script>
document.querySelectorAll("section rect[data-date]").forEach(function (cell) {
  cell.addEventListener("click", function () {
    fetch("/api/v0/clicks", {
      method: "POST",
      headers: {"Content-Type": "application/json"},
      body: JSON.stringify({date: cell.dataset.date, count: Number(cell.dataset.count)})
    });
  });
});
</script>
</body>
</html>
`))

type indexPage struct {
	Options   state.Options
	Selection state.Selection
	Yearly    template.HTML
	Monthly   []template.HTML
	Weekly    template.HTML
}

// handleIndex はセレクタと年・月・週のビューを含むHTMLページを返します。
// 月ビューは選択した年の12か月分をすべて並べます。
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	params, err := NewSelectionParams(r, s.registry)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	d, err := s.display(r, params.Selection)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	set, err := view.BuildSet(params.Selection.Year, d, s.source)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	page := indexPage{
		Options:   state.SelectorOptions(s.registry),
		Selection: params.Selection,
	}
	if page.Yearly, err = inlineSVG(set.Yearly); err != nil {
		s.writeError(w, r, err)
		return
	}
	for _, cfg := range set.Monthly {
		svg, err := inlineSVG(cfg)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		page.Monthly = append(page.Monthly, svg)
	}
	if page.Weekly, err = inlineSVG(set.Weekly); err != nil {
		s.writeError(w, r, err)
		return
	}

	var buf bytes.Buffer
	if err := indexTemplate.Execute(&buf, page); err != nil {
		s.logger.Error("Error rendering index", zap.Error(err))
		s.writeJSONError(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(buf.Bytes())
}

// inlineSVG はビューをページに埋め込むSVGに変換します。
// 生成したSVGは属性値とテキストをエスケープ済み
func inlineSVG(cfg view.ViewConfig) (template.HTML, error) {
	svg, err := heatmap.GenerateSVG(cfg, nil)
	if err != nil {
		return "", err
	}
	return template.HTML(svg), nil
}
