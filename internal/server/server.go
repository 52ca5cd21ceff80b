// Package server exposes the schedule engine over a small JSON HTTP API.
package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/rgehrsitz/mortgo/internal/breakeven"
	"github.com/rgehrsitz/mortgo/internal/calculation"
	"github.com/rgehrsitz/mortgo/internal/compare"
	"github.com/rgehrsitz/mortgo/internal/config"
	"github.com/rgehrsitz/mortgo/internal/domain"
	"github.com/rgehrsitz/mortgo/internal/output"
)

// Options configures the HTTP handler
type Options struct {
	Logger      *zap.Logger
	Engine      *calculation.Engine
	Tracer      trace.Tracer
	RateLimit   float64 // requests per second, 0 disables limiting
	RateBurst   int
	MaxBodySize int64
	Version     string
}

type handler struct {
	logger      *zap.Logger
	engine      *calculation.Engine
	compare     *compare.CompareEngine
	solver      *breakeven.Solver
	tracer      trace.Tracer
	maxBodySize int64
	version     string
}

// NewHandler constructs the HTTP handler that serves the schedule API
func NewHandler(opts Options) http.Handler {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	engine := opts.Engine
	if engine == nil {
		engine = calculation.NewEngine()
	}
	tracer := opts.Tracer
	if tracer == nil {
		tracer = otel.Tracer("mortgo")
	}
	maxBodySize := opts.MaxBodySize
	if maxBodySize <= 0 {
		maxBodySize = config.DefaultMaxBodySize
	}
	version := strings.TrimSpace(opts.Version)
	if version == "" {
		version = "dev"
	}

	h := &handler{
		logger:      logger,
		engine:      engine,
		compare:     compare.NewCompareEngine(engine),
		solver:      breakeven.NewDefaultSolver(engine),
		tracer:      tracer,
		maxBodySize: maxBodySize,
		version:     version,
	}

	mux := http.NewServeMux()
	mux.Handle("POST /api/v1/schedule", h.instrument("schedule", h.handleSchedule))
	mux.Handle("POST /api/v1/compare", h.instrument("compare", h.handleCompare))
	mux.Handle("POST /api/v1/solve", h.instrument("solve", h.handleSolve))
	mux.Handle("GET /api/v1/version", h.instrument("version", h.handleVersion))
	mux.HandleFunc("GET /healthz", h.handleHealth)
	mux.Handle("GET /metrics", promhttp.Handler())

	var limiter *rate.Limiter
	if opts.RateLimit > 0 {
		limiter = rate.NewLimiter(rate.Limit(opts.RateLimit), opts.RateBurst)
	}

	return h.logRequests(rateLimit(limiter, logger, mux))
}

type scheduleRequest struct {
	domain.LoanInput
	Months int  `json:"months"` // rows to return, 0 returns all
	Yearly bool `json:"yearly"`
}

type compareRequest struct {
	domain.LoanInput
	Templates []string `json:"templates"` // defaults to the other method
}

func (h *handler) handleSchedule(w http.ResponseWriter, r *http.Request) {
	var req scheduleRequest
	if !h.decode(w, r, &req, "server.handleSchedule") {
		return
	}

	result, err := h.engine.Calculate(r.Context(), req.LoanInput)
	if err != nil {
		h.respondEngineError(w, err, "server.handleSchedule")
		return
	}

	limit := req.Months
	if limit <= 0 {
		limit = -1
	}
	report := output.NewReport(req.Name, result, output.ReportOptions{RowLimit: limit, Yearly: req.Yearly})
	h.writeJSON(w, http.StatusOK, report)
}

func (h *handler) handleCompare(w http.ResponseWriter, r *http.Request) {
	var req compareRequest
	if !h.decode(w, r, &req, "server.handleCompare") {
		return
	}

	params, err := calculation.NormalizeInput(req.LoanInput)
	if err != nil {
		h.respondEngineError(w, err, "server.handleCompare")
		return
	}

	name := req.Name
	if name == "" {
		name = "base"
	}

	var set *compare.ComparisonSet
	if len(req.Templates) == 0 {
		set, err = h.compare.CompareMethods(r.Context(), name, params)
	} else {
		for _, t := range req.Templates {
			if _, ok := h.compare.TemplateRegistry.Get(t); !ok {
				h.respondError(w, http.StatusBadRequest, fmt.Sprintf("unknown template %q", t), "server.handleCompare")
				return
			}
		}
		set, err = h.compare.CompareParameters(r.Context(), name, params, req.Templates)
	}
	if err != nil {
		h.respondEngineError(w, err, "server.handleCompare")
		return
	}

	h.writeJSON(w, http.StatusOK, set)
}

type solveRequest struct {
	domain.LoanInput
	MonthlyBudget decimal.Decimal `json:"monthlyBudget"`
	Target        string          `json:"target"` // empty solves every target
}

func (h *handler) handleSolve(w http.ResponseWriter, r *http.Request) {
	var req solveRequest
	if !h.decode(w, r, &req, "server.handleSolve") {
		return
	}

	params, err := calculation.NormalizeInput(req.LoanInput)
	if err != nil {
		h.respondEngineError(w, err, "server.handleSolve")
		return
	}

	if req.Target == "" {
		multi, err := h.solver.OptimizeAllTargets(r.Context(), params, req.MonthlyBudget)
		if err != nil {
			h.respondSolverError(w, err)
			return
		}
		h.writeJSON(w, http.StatusOK, multi)
		return
	}

	target, err := breakeven.ParseTarget(req.Target)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error(), "server.handleSolve")
		return
	}
	result, err := h.solver.Optimize(r.Context(), breakeven.OptimizationRequest{
		Base:          params,
		Target:        target,
		MonthlyBudget: req.MonthlyBudget,
	})
	if err != nil {
		h.respondSolverError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, result)
}

// respondSolverError reports bad requests and unmet budgets as client errors
func (h *handler) respondSolverError(w http.ResponseWriter, err error) {
	if errors.Is(err, domain.ErrCalculationFailure) {
		h.respondError(w, http.StatusInternalServerError, err.Error(), "server.handleSolve")
		return
	}
	h.respondError(w, http.StatusUnprocessableEntity, err.Error(), "server.handleSolve")
}

func (h *handler) handleVersion(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{
		"version": h.version,
	})
}

func (h *handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *handler) decode(w http.ResponseWriter, r *http.Request, dst any, op string) bool {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxBodySize)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			h.respondError(w, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("request exceeds limit of %d bytes", h.maxBodySize), op)
			return false
		}
		h.respondError(w, http.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err), op)
		return false
	}
	return true
}

// respondEngineError maps engine errors onto HTTP statuses
func (h *handler) respondEngineError(w http.ResponseWriter, err error, op string) {
	status := http.StatusInternalServerError
	if errors.Is(err, domain.ErrInvalidParameter) {
		status = http.StatusBadRequest
	}
	h.respondError(w, status, err.Error(), op)
}

func (h *handler) respondError(w http.ResponseWriter, status int, msg string, op string) {
	if status >= http.StatusInternalServerError {
		h.logger.Error("request failed",
			zap.String("op", op),
			zap.Int("status", status),
			zap.String("error", msg),
		)
	} else {
		h.logger.Debug("request rejected",
			zap.String("op", op),
			zap.Int("status", status),
			zap.String("error", msg),
		)
	}

	h.writeJSON(w, status, map[string]string{"error": msg})
}

func (h *handler) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error("failed to write JSON response", zap.Error(err))
	}
}
