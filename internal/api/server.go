// Package api serves the benefit engine and the risk pricer over HTTP.
package api

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/moneylife/benefits/internal/config"
	"github.com/moneylife/benefits/internal/domain"
	"github.com/moneylife/benefits/internal/events"
	"github.com/moneylife/benefits/internal/metrics"
	"github.com/moneylife/benefits/internal/riskpricing"
	"github.com/moneylife/benefits/pkg/dateutil"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/shopspring/decimal"
	"github.com/valyala/fasthttp"
	"github.com/valyala/fasthttp/fasthttpadaptor"
	"go.uber.org/zap"
)

// Sentinel kinds for API errors.
var (
	ErrBadRequest = errors.New("bad request")
	ErrNoLegal    = errors.New("no legal tables loaded")
)

const contentTypeJSON = "application/json; charset=utf-8"

var fullDegree = decimal.NewFromInt(100)

// Server wires the HTTP routes to the engine and the pricer.
type Server struct {
	book    *domain.LegalBook
	engine  *events.Engine
	pricer  *riskpricing.Pricer
	metrics *metrics.Manager
	parser  *config.InputParser
	log     *zap.Logger
	now     func() time.Time

	metricsHandler fasthttp.RequestHandler
}

// NewServer builds a server. A nil logger discards, a nil pricer uses the
// built-in tariff and a nil manager gets a private registry.
func NewServer(book *domain.LegalBook, pricer *riskpricing.Pricer, m *metrics.Manager, log *zap.Logger) (*Server, error) {
	if book == nil || len(book.Years) == 0 {
		return nil, ErrNoLegal
	}
	if log == nil {
		log = zap.NewNop()
	}
	if pricer == nil {
		pricer = riskpricing.NewPricer(riskpricing.DefaultTariff())
	}
	if m == nil {
		m = metrics.NewManager()
	}
	engine := events.NewEngine()
	engine.SetLogger(log.Sugar())
	engine.Observer = m

	return &Server{
		book:    book,
		engine:  engine,
		pricer:  pricer,
		metrics: m,
		parser:  config.NewInputParser(),
		log:     log,
		now:     time.Now,
		metricsHandler: fasthttpadaptor.NewFastHTTPHandler(
			promhttp.HandlerFor(m.Registry(), promhttp.HandlerOpts{}),
		),
	}, nil
}

// Handler returns the fasthttp entry point.
func (s *Server) Handler() fasthttp.RequestHandler {
	return func(ctx *fasthttp.RequestCtx) {
		start := time.Now()
		path := string(ctx.Path())
		switch path {
		case "/healthz":
			s.handleHealth(ctx)
		case "/metrics":
			s.metricsHandler(ctx)
		case "/v1/report":
			s.post(ctx, s.handleReport)
		case "/v1/risk-premiums":
			s.post(ctx, s.handleRiskPremiums)
		default:
			s.writeError(ctx, fasthttp.StatusNotFound, fmt.Sprintf("no route for %s", path))
		}
		s.log.Debug("request",
			zap.String("method", string(ctx.Method())),
			zap.String("path", path),
			zap.Int("status", ctx.Response.StatusCode()),
			zap.Duration("elapsed", time.Since(start)))
	}
}

// ListenAndServe blocks serving on addr.
func (s *Server) ListenAndServe(addr string) error {
	srv := &fasthttp.Server{
		Handler:      s.Handler(),
		Name:         "mlbenefits",
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}
	s.log.Info("listening", zap.String("addr", addr))
	return srv.ListenAndServe(addr)
}

func (s *Server) post(ctx *fasthttp.RequestCtx, h fasthttp.RequestHandler) {
	if !ctx.IsPost() {
		s.writeError(ctx, fasthttp.StatusMethodNotAllowed, "method not allowed")
		return
	}
	h(ctx)
}

type healthResponse struct {
	Status     string `json:"status"`
	LegalYears []int  `json:"legal_years"`
	Tariff     string `json:"tariff_version"`
}

func (s *Server) handleHealth(ctx *fasthttp.RequestCtx) {
	years := make([]int, 0, len(s.book.Years))
	for _, y := range s.book.Years {
		years = append(years, y.Settings.Year)
	}
	s.writeJSON(ctx, fasthttp.StatusOK, healthResponse{Status: "ok", LegalYears: years, Tariff: s.pricer.Tariff().Version})
}

type errorResponse struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
}

func (s *Server) writeJSON(ctx *fasthttp.RequestCtx, status int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		s.log.Error("encode response", zap.Error(err))
		ctx.Error("internal error", fasthttp.StatusInternalServerError)
		return
	}
	ctx.SetContentType(contentTypeJSON)
	ctx.SetStatusCode(status)
	ctx.SetBody(data)
}

func (s *Server) writeError(ctx *fasthttp.RequestCtx, status int, message string) {
	s.metrics.RecordRequestError(status)
	s.writeJSON(ctx, status, errorResponse{Status: status, Message: message})
}

func (s *Server) badRequest(ctx *fasthttp.RequestCtx, err error) {
	s.log.Info("rejected request", zap.String("path", string(ctx.Path())), zap.Error(err))
	s.writeError(ctx, fasthttp.StatusBadRequest, err.Error())
}

// parseDate reads a DD.MM.YYYY or YYYY-MM-DD date, defaulting to today.
func (s *Server) parseDate(field, v string) (time.Time, error) {
	if strings.TrimSpace(v) == "" {
		return dateutil.FromTime(s.now()).Time(), nil
	}
	d, ok := dateutil.Parse(v)
	if !ok {
		return time.Time{}, fmt.Errorf("%w: invalid %s %q", ErrBadRequest, field, v)
	}
	return d.Time(), nil
}
