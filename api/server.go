// Package api はcalheatのHTTPサーバー実装を提供します。
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"go.uber.org/zap"

	"github.com/stsysd/calheat/config"
	"github.com/stsysd/calheat/heatmap"
	"github.com/stsysd/calheat/model"
	"github.com/stsysd/calheat/palette"
	"github.com/stsysd/calheat/series"
	"github.com/stsysd/calheat/state"
	"github.com/stsysd/calheat/view"
)

// Server はAPIサーバーの構造体です。
// リクエストごとにセレクションとビューを組み立てるため、共有する可変状態はカウントソースのみです。
type Server struct {
	router   chi.Router
	registry *palette.Registry
	source   series.CountSource
	config   *config.Config
	logger   *zap.Logger
}

// ErrorResponse はエラーレスポンスの構造体です。
type ErrorResponse struct {
	Error string `json:"error"`
	Code  int    `json:"code"`
}

// writeJSON はJSON形式でレスポンスを返却します。
func (s *Server) writeJSON(w http.ResponseWriter, v any, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("Error encoding response", zap.Error(err))
	}
}

// writeJSONError はJSON形式でエラーレスポンスを返却します。
func (s *Server) writeJSONError(w http.ResponseWriter, message string, statusCode int) {
	s.writeJSON(w, ErrorResponse{
		Error: message,
		Code:  statusCode,
	}, statusCode)
}

// writeError はエラーの種類に応じてステータスコードを決定します。
// ValidationErrorは400、ConfigurationErrorとその他は500です。
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	var validationErr *model.ValidationError
	if errors.As(err, &validationErr) {
		s.writeJSONError(w, validationErr.Error(), http.StatusBadRequest)
		return
	}

	s.logger.Error("request failed",
		zap.String("request_id", middleware.GetReqID(r.Context())),
		zap.Error(err),
	)
	var configErr *model.ConfigurationError
	if errors.As(err, &configErr) {
		s.writeJSONError(w, configErr.Error(), http.StatusInternalServerError)
		return
	}
	s.writeJSONError(w, "Internal server error", http.StatusInternalServerError)
}

// NewServer は新しいAPIサーバーインスタンスを生成します。
func NewServer(registry *palette.Registry, source series.CountSource, config *config.Config, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Server{
		registry: registry,
		source:   source,
		config:   config,
		logger:   logger,
	}
	s.routes()
	return s
}

// routes はAPIエンドポイントのルーティングを設定します。
func (s *Server) routes() {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.accessLogMiddleware)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.config.CORSOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		ExposedHeaders: []string{middleware.RequestIDHeader},
		MaxAge:         300,
	}))
	if s.config.RateLimit > 0 {
		r.Use(httprate.LimitByIP(s.config.RateLimit, time.Minute))
	}

	r.Get("/healthz", s.handleHealthCheck)
	r.Get("/", s.handleIndex)

	r.Route("/api/v0", func(r chi.Router) {
		r.Get("/selectors", s.handleGetSelectors)
		r.Get("/views", s.handleGetViews)
		r.Get("/views/{kind}", s.handleGetView)
		r.Post("/clicks", s.handleClick)
	})

	// SVG (/views/yearly.svg など) とカレンダーページ (/views/calendar.html)
	r.Get("/views/{file}", s.handleGetViewFile)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		s.writeJSONError(w, "Not found", http.StatusNotFound)
	})

	s.router = r
}

// ServeHTTP はServer構造体をhttp.Handlerとして実装します。
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// handleHealthCheck はヘルスチェックエンドポイントのハンドラーです。
func (s *Server) handleHealthCheck(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, map[string]string{"status": "ok"}, http.StatusOK)
}

// handleGetSelectors はセレクタの選択肢とデフォルト値を返します。
func (s *Server) handleGetSelectors(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, state.SelectorOptions(s.registry), http.StatusOK)
}

// SelectionParams はクエリパラメータから読み取ったセレクタ入力です。
type SelectionParams struct {
	Selection state.Selection
}

// NewSelectionParams はHTTPリクエストからセレクタ入力を生成し、検証します。
func NewSelectionParams(r *http.Request, registry *palette.Registry) (*SelectionParams, error) {
	q := r.URL.Query()

	year, err := model.ParseYear(q.Get("year"))
	if err != nil {
		return nil, err
	}
	legend, err := model.ParseLegendVisibility(q.Get("legend"))
	if err != nil {
		return nil, err
	}

	sel, err := state.Normalize(state.Selection{
		Year:          year.Int(),
		Palette:       model.NewPaletteName(q.Get("palette")).String(),
		LegendVisible: legend,
		Locale:        q.Get("locale"),
	}, registry)
	if err != nil {
		return nil, err
	}
	return &SelectionParams{Selection: sel}, nil
}

// display はセレクションからビューの表示設定を組み立てます。
// ビューに渡すクリックハンドラは POST /api/v0/clicks が呼び出すものと同一です。
func (s *Server) display(r *http.Request, sel state.Selection) (view.Display, error) {
	return state.Display(sel, s.registry, view.Display{
		CellSize: s.config.CellSize,
		OnClick:  s.clickHandler(r),
	})
}

// clickHandler はリクエストIDを付けてクリックを記録するハンドラを返します。
func (s *Server) clickHandler(r *http.Request) func(series.DayRecord) {
	requestID := middleware.GetReqID(r.Context())
	return func(day series.DayRecord) {
		s.logClick(requestID, day)
	}
}

// handleGetViews は年・月・週のすべてのビューを返します。
func (s *Server) handleGetViews(w http.ResponseWriter, r *http.Request) {
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
	s.writeJSON(w, set, http.StatusOK)
}

// ViewParams は単一種別のビュー取得パラメータです。
type ViewParams struct {
	SelectionParams
	Kind  series.Kind
	Month time.Month
}

// NewViewParams はHTTPリクエストからビュー取得パラメータを生成します。
func NewViewParams(r *http.Request, registry *palette.Registry, kindStr string) (*ViewParams, error) {
	kind, err := series.ParseKind(kindStr)
	if err != nil {
		return nil, model.NewValidationError(err.Error())
	}
	month, err := model.ParseMonth(r.URL.Query().Get("month"))
	if err != nil {
		return nil, err
	}
	sel, err := NewSelectionParams(r, registry)
	if err != nil {
		return nil, err
	}
	return &ViewParams{SelectionParams: *sel, Kind: kind, Month: month}, nil
}

// handleGetView は指定された種別のビューを返します。monthlyは12か月分の配列です。
func (s *Server) handleGetView(w http.ResponseWriter, r *http.Request) {
	params, err := NewViewParams(r, s.registry, chi.URLParam(r, "kind"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	d, err := s.display(r, params.Selection)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	var body any
	year := params.Selection.Year
	switch params.Kind {
	case series.Yearly:
		body, err = view.Yearly(year, d, s.source)
	case series.Monthly:
		body, err = view.Monthly(year, d, s.source)
	case series.Weekly:
		body, err = view.Weekly(year, d, s.source)
	}
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, body, http.StatusOK)
}

// buildView は単一のビュー設定を生成します。monthlyの場合はparams.Monthの月です。
func (s *Server) buildView(r *http.Request, params *ViewParams) (view.ViewConfig, error) {
	d, err := s.display(r, params.Selection)
	if err != nil {
		return view.ViewConfig{}, err
	}
	year := params.Selection.Year
	switch params.Kind {
	case series.Monthly:
		return view.Month(year, params.Month, d, s.source)
	case series.Weekly:
		return view.Weekly(year, d, s.source)
	default:
		return view.Yearly(year, d, s.source)
	}
}

// handleGetViewFile はSVGまたはカレンダーHTMLを返します。
func (s *Server) handleGetViewFile(w http.ResponseWriter, r *http.Request) {
	file := chi.URLParam(r, "file")

	if file == "calendar.html" {
		params, err := NewViewParams(r, s.registry, series.Yearly.String())
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		cfg, err := s.buildView(r, params)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := heatmap.RenderCalendarHTML(w, cfg); err != nil {
			s.logger.Error("Error rendering calendar", zap.Error(err))
		}
		return
	}

	kindStr, ok := strings.CutSuffix(file, ".svg")
	if !ok {
		s.writeJSONError(w, "Not found", http.StatusNotFound)
		return
	}
	params, err := NewViewParams(r, s.registry, kindStr)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	cfg, err := s.buildView(r, params)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	svg, err := heatmap.GenerateSVG(cfg, nil)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "image/svg+xml")
	w.Write([]byte(svg))
}

// ClickParams はセルのクリック通知です。
type ClickParams struct {
	Day series.DayRecord
}

// NewClickParams はリクエストボディからクリック通知を生成します。
func NewClickParams(r *http.Request) (*ClickParams, error) {
	var day series.DayRecord
	if err := json.NewDecoder(r.Body).Decode(&day); err != nil {
		return nil, model.NewValidationError(fmt.Sprintf("invalid request body: %v", err))
	}
	if day.Count < 0 {
		return nil, model.NewValidationError("count must not be negative")
	}
	return &ClickParams{Day: day}, nil
}

// handleClick はクリックされたセルを記録します。
func (s *Server) handleClick(w http.ResponseWriter, r *http.Request) {
	params, err := NewClickParams(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.clickHandler(r)(params.Day)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) logClick(requestID string, day series.DayRecord) {
	s.logger.Info(fmt.Sprintf("Clicked on %s with value %d", day.Date.Format(time.DateOnly), day.Count),
		zap.String("request_id", requestID),
	)
}

// Run はサーバーを起動し、ctxがキャンセルされると処理中のリクエストを待ってから停止します。
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("Server starting", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("Waiting for pending requests to finish")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}
	s.logger.Info("Server exiting")
	return nil
}
