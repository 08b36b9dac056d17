package api

import (
	"fmt"

	"github.com/goccy/go-json"
	"github.com/moneylife/benefits/internal/config"
	"github.com/moneylife/benefits/internal/domain"
	"github.com/moneylife/benefits/internal/events"
	"github.com/moneylife/benefits/internal/output"
	"github.com/moneylife/benefits/internal/riskpricing"
	"github.com/shopspring/decimal"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"
)

// reportRequest is the body of POST /v1/report.
type reportRequest struct {
	Client           *domain.ClientData `json:"client"`
	EventDate        string             `json:"event_date"`
	DisabilityDegree *decimal.Decimal   `json:"disability_degree,omitempty"`
	Events           []string           `json:"events,omitempty"`
	// LegalYear defaults to the event year.
	LegalYear int `json:"legal_year,omitempty"`
}

// riskRequest is the body of POST /v1/risk-premiums.
type riskRequest struct {
	Client      *domain.ClientData      `json:"client"`
	Riders      riskpricing.RiderConfig `json:"riders"`
	PricingDate string                  `json:"pricing_date"`
}

func (s *Server) decodeClient(body []byte, v any, client func() *domain.ClientData) error {
	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("%w: invalid request body: %v", ErrBadRequest, err)
	}
	c := client()
	if c == nil {
		return fmt.Errorf("%w: missing client", ErrBadRequest)
	}
	if err := s.parser.ValidateClient(c); err != nil {
		return fmt.Errorf("%w: %v", ErrBadRequest, err)
	}
	return nil
}

func (s *Server) handleReport(ctx *fasthttp.RequestCtx) {
	var req reportRequest
	if err := s.decodeClient(ctx.PostBody(), &req, func() *domain.ClientData { return req.Client }); err != nil {
		s.badRequest(ctx, err)
		return
	}

	eventDate, err := s.parseDate("event_date", req.EventDate)
	if err != nil {
		s.badRequest(ctx, err)
		return
	}

	degree := fullDegree
	if req.DisabilityDegree != nil {
		degree = *req.DisabilityDegree
		if degree.IsNegative() || degree.GreaterThan(fullDegree) {
			s.badRequest(ctx, fmt.Errorf("%w: disability_degree must be within [0, 100]", ErrBadRequest))
			return
		}
	}

	kinds := make([]events.Kind, 0, len(req.Events))
	for _, name := range req.Events {
		k, ok := events.ParseKind(name)
		if !ok {
			s.badRequest(ctx, fmt.Errorf("%w: unknown event %q", ErrBadRequest, name))
			return
		}
		kinds = append(kinds, k)
	}

	year := req.LegalYear
	if year == 0 {
		year = eventDate.Year()
	}
	legal, err := config.LegalForYear(s.book, year)
	if err != nil {
		s.badRequest(ctx, err)
		return
	}

	report, err := s.engine.Compute(events.Input{
		Client:           req.Client,
		Legal:            legal,
		EventDate:        eventDate,
		DisabilityDegree: degree,
	}, kinds...)
	if err != nil {
		s.badRequest(ctx, err)
		return
	}

	data, err := output.JSONFormatter{}.Format(report)
	if err != nil {
		s.log.Error("encode report", zap.Error(err))
		s.writeError(ctx, fasthttp.StatusInternalServerError, "failed to encode report")
		return
	}
	ctx.SetContentType(contentTypeJSON)
	ctx.SetStatusCode(fasthttp.StatusOK)
	ctx.SetBody(data)
}

func (s *Server) handleRiskPremiums(ctx *fasthttp.RequestCtx) {
	var req riskRequest
	if err := s.decodeClient(ctx.PostBody(), &req, func() *domain.ClientData { return req.Client }); err != nil {
		s.badRequest(ctx, err)
		return
	}
	if err := config.ValidateRiders(&req.Riders); err != nil {
		s.badRequest(ctx, fmt.Errorf("%w: %v", ErrBadRequest, err))
		return
	}
	at, err := s.parseDate("pricing_date", req.PricingDate)
	if err != nil {
		s.badRequest(ctx, err)
		return
	}

	premiums := s.pricer.ComputeRiskPremiums(req.Riders, riskpricing.NewContext(req.Client, at))
	s.metrics.RecordQuote()
	s.writeJSON(ctx, fasthttp.StatusOK, premiums)
}
