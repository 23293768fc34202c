package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/stsysd/calheat/config"
	"github.com/stsysd/calheat/palette"
	"github.com/stsysd/calheat/series"
)

// テスト用の設定を生成するヘルパー関数
func newTestConfig() *config.Config {
	return &config.Config{
		Port:        "8080",
		Env:         "development",
		LogLevel:    "info",
		CellSize:    15,
		CORSOrigins: []string{"*"},
	}
}

func newTestServer(t *testing.T) (*Server, *observer.ObservedLogs) {
	t.Helper()
	core, logs := observer.New(zap.InfoLevel)
	return NewServer(palette.Builtin(), series.Constant(5), newTestConfig(), zap.New(core)), logs
}

func doRequest(t *testing.T, s *Server, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	return rec
}

type viewBody struct {
	Options struct {
		Type      string `json:"type"`
		StartDate string `json:"startDate"`
		CellSize  int    `json:"cellSize"`
		Locale    string `json:"locale"`
		Clickable bool   `json:"clickable"`
		Legend    struct {
			Display   bool   `json:"display"`
			Direction string `json:"direction"`
		} `json:"heatmapLegend"`
		Colors []struct {
			ClassName string `json:"className"`
		} `json:"colors"`
	} `json:"options"`
	Data []struct {
		Date  string `json:"date"`
		Count int    `json:"count"`
	} `json:"data"`
}

func TestHealthCheck(t *testing.T) {
	s, _ := newTestServer(t)

	rec := doRequest(t, s, http.MethodGet, "/healthz", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestGetSelectors(t *testing.T) {
	s, _ := newTestServer(t)

	rec := doRequest(t, s, http.MethodGet, "/api/v0/selectors", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Years    []int    `json:"years"`
		Palettes []string `json:"palettes"`
		Legend   []bool   `json:"legend"`
		Locales  []string `json:"locales"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

	require.Len(t, body.Years, 30)
	assert.Equal(t, 2027, body.Years[0])
	assert.Equal(t, 1998, body.Years[29])
	assert.Equal(t, "default", body.Palettes[0])
	assert.Equal(t, []bool{true, false}, body.Legend)
	assert.Equal(t, []string{"en", "tr", "fr", "de", "ja", "zh"}, body.Locales)
}

func TestGetViews(t *testing.T) {
	s, _ := newTestServer(t)

	rec := doRequest(t, s, http.MethodGet, "/api/v0/views?year=2024&palette=variant1&legend=false&locale=ja-JP", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Yearly  viewBody   `json:"yearly"`
		Monthly []viewBody `json:"monthly"`
		Weekly  viewBody   `json:"weekly"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

	// 2024年はうるう年
	assert.Equal(t, "YEARLY", body.Yearly.Options.Type)
	assert.Len(t, body.Yearly.Data, 366)
	assert.Equal(t, "2024-01-01", body.Yearly.Data[0].Date)
	assert.Equal(t, "2024-12-31", body.Yearly.Data[365].Date)
	assert.Equal(t, "ja", body.Yearly.Options.Locale)
	assert.False(t, body.Yearly.Options.Legend.Display)
	assert.True(t, body.Yearly.Options.Clickable)
	assert.Equal(t, "custom-variant1-level-0", body.Yearly.Options.Colors[0].ClassName)

	require.Len(t, body.Monthly, 12)
	assert.Len(t, body.Monthly[1].Data, 29)
	assert.Equal(t, "2024-02-01", body.Monthly[1].Options.StartDate)

	assert.Equal(t, "WEEKLY", body.Weekly.Options.Type)
	assert.Len(t, body.Weekly.Data, 7)
	assert.Equal(t, "LEFT", body.Weekly.Options.Legend.Direction)
}

func TestGetViews_Defaults(t *testing.T) {
	s, _ := newTestServer(t)

	rec := doRequest(t, s, http.MethodGet, "/api/v0/views", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Yearly viewBody `json:"yearly"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

	assert.Equal(t, "en", body.Yearly.Options.Locale)
	assert.True(t, body.Yearly.Options.Legend.Display)
	assert.Equal(t, 15, body.Yearly.Options.CellSize)
	// パレット未選択時は組み込みの配色
	assert.Equal(t, "level-0", body.Yearly.Options.Colors[0].ClassName)
}

func TestGetViews_InvalidParams(t *testing.T) {
	tests := []struct {
		name        string
		query       string
		description string
	}{
		{"year not a number", "year=abc", "数値でない年"},
		{"year out of range", "year=1900", "選択範囲外の年"},
		{"unknown palette", "palette=nope", "存在しないパレット"},
		{"bad legend", "legend=maybe", "真偽値でない凡例指定"},
		{"unsupported locale", "locale=es", "未対応のロケール"},
		{"malformed locale", "locale=!!", "不正なロケール"},
	}

	s, _ := newTestServer(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doRequest(t, s, http.MethodGet, "/api/v0/views?"+tt.query, "")

			assert.Equal(t, http.StatusBadRequest, rec.Code, tt.description)
			var body ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, http.StatusBadRequest, body.Code)
			assert.NotEmpty(t, body.Error)
		})
	}
}

func TestGetView(t *testing.T) {
	s, _ := newTestServer(t)

	t.Run("weekly", func(t *testing.T) {
		rec := doRequest(t, s, http.MethodGet, "/api/v0/views/weekly?year=2025", "")
		require.Equal(t, http.StatusOK, rec.Code)

		var body viewBody
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		require.Len(t, body.Data, 7)
		assert.Equal(t, "2025-01-01", body.Data[0].Date)
		assert.Equal(t, "2025-01-07", body.Data[6].Date)
		assert.Equal(t, 5, body.Data[0].Count)
	})

	t.Run("monthly", func(t *testing.T) {
		rec := doRequest(t, s, http.MethodGet, "/api/v0/views/monthly?year=2025", "")
		require.Equal(t, http.StatusOK, rec.Code)

		var body []viewBody
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		require.Len(t, body, 12)
		assert.Len(t, body[1].Data, 28)
	})

	t.Run("unknown kind", func(t *testing.T) {
		rec := doRequest(t, s, http.MethodGet, "/api/v0/views/daily", "")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestGetViewFile_SVG(t *testing.T) {
	s, _ := newTestServer(t)

	tests := []struct {
		name   string
		target string
		cells  int
	}{
		{"yearly", "/views/yearly.svg?year=2025", 365},
		{"monthly default month", "/views/monthly.svg?year=2024", 31},
		{"monthly february", "/views/monthly.svg?year=2024&month=2", 29},
		{"weekly", "/views/weekly.svg?year=2025", 7},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doRequest(t, s, http.MethodGet, tt.target, "")

			require.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, "image/svg+xml", rec.Header().Get("Content-Type"))
			assert.Equal(t, tt.cells, strings.Count(rec.Body.String(), `data-date="`))
		})
	}
}

func TestGetViewFile_Errors(t *testing.T) {
	s, _ := newTestServer(t)

	rec := doRequest(t, s, http.MethodGet, "/views/monthly.svg?month=13", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doRequest(t, s, http.MethodGet, "/views/daily.svg", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doRequest(t, s, http.MethodGet, "/views/yearly.png", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetViewFile_Calendar(t *testing.T) {
	s, _ := newTestServer(t)

	rec := doRequest(t, s, http.MethodGet, "/views/calendar.html?year=2025", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Body.String(), "echarts")
	assert.Contains(t, rec.Body.String(), "2025-12-31")
}

func TestClick(t *testing.T) {
	s, logs := newTestServer(t)

	rec := doRequest(t, s, http.MethodPost, "/api/v0/clicks", `{"date":"2025-01-05","count":3}`)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, 1, logs.FilterMessage("Clicked on 2025-01-05 with value 3").Len())
}

func TestClick_SameHandlerAsViews(t *testing.T) {
	s, logs := newTestServer(t)

	rec := doRequest(t, s, http.MethodGet, "/api/v0/views/weekly?year=2025", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"clickable":true`)

	req := httptest.NewRequest(http.MethodPost, "/api/v0/clicks", strings.NewReader(`{"date":"2025-01-02","count":7}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(middleware.RequestIDHeader, "click-1")
	rec = httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	require.Equal(t, http.StatusNoContent, rec.Code)

	entries := logs.FilterMessage("Clicked on 2025-01-02 with value 7").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "click-1", entries[0].ContextMap()["request_id"])
}

func TestClick_Invalid(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"not json", `date=2025-01-05`},
		{"bad date", `{"date":"05/01/2025","count":3}`},
		{"negative count", `{"date":"2025-01-05","count":-1}`},
	}

	s, logs := newTestServer(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doRequest(t, s, http.MethodPost, "/api/v0/clicks", tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
	assert.Zero(t, logs.FilterMessageSnippet("Clicked on").Len())
}

func TestIndex(t *testing.T) {
	s, _ := newTestServer(t)

	rec := doRequest(t, s, http.MethodGet, "/?year=2024&palette=variant2&locale=de", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))

	html := rec.Body.String()
	assert.Contains(t, html, `<option value="2024" selected>2024</option>`)
	assert.Contains(t, html, `<option value="variant2" selected>variant2</option>`)
	assert.Contains(t, html, `<option value="de" selected>de</option>`)
	assert.Equal(t, 1, strings.Count(html, `data-type="YEARLY"`))
	assert.Equal(t, 12, strings.Count(html, `data-type="MONTHLY"`))
	assert.Equal(t, 1, strings.Count(html, `data-type="WEEKLY"`))
	assert.Contains(t, html, "Januar 2024")
	assert.Contains(t, html, "März 2024")
	assert.Contains(t, html, "Dezember 2024")
	assert.Contains(t, html, "custom-variant2-level")
}

func TestIndex_InvalidParams(t *testing.T) {
	s, _ := newTestServer(t)

	rec := doRequest(t, s, http.MethodGet, "/?year=3000", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAccessLogAndCORS(t *testing.T) {
	s, logs := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set("Origin", "http://example.com")
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)

	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))

	entries := logs.FilterMessage("request").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "/healthz", fields["path"])
	assert.Equal(t, int64(http.StatusOK), fields["status"])
	assert.NotEmpty(t, fields["request_id"])
}

func TestNotFound(t *testing.T) {
	s, _ := newTestServer(t)

	rec := doRequest(t, s, http.MethodGet, "/nope", "")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":"Not found","code":404}`, rec.Body.String())
}

func TestRateLimit(t *testing.T) {
	cfg := newTestConfig()
	cfg.RateLimit = 2
	s := NewServer(palette.Builtin(), series.Constant(1), cfg, zap.NewNop())

	for range 2 {
		rec := doRequest(t, s, http.MethodGet, "/healthz", "")
		require.Equal(t, http.StatusOK, rec.Code)
	}
	rec := doRequest(t, s, http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
}
