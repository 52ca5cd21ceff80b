package calculation

import (
	"context"
	"errors"
	"time"

	"github.com/rgehrsitz/mortgo/internal/cache"
	"github.com/rgehrsitz/mortgo/internal/domain"
	"github.com/rgehrsitz/mortgo/internal/metrics"
)

// Engine runs schedule builds on behalf of the CLI, the TUI and the HTTP
// service. It adds logging, metrics and an optional cache around the pure
// BuildSchedule function and holds no per-request state.
type Engine struct {
	Logger Logger
	Cache  cache.ScheduleCache
	Debug  bool // re-verify every schedule after building it
}

// NewEngine creates an engine with a no-op logger and no cache
func NewEngine() *Engine {
	return &Engine{Logger: NopLogger{}}
}

// SetLogger replaces the logger; nil restores the no-op logger
func (e *Engine) SetLogger(l Logger) {
	if l == nil {
		l = NopLogger{}
	}
	e.Logger = l
}

// SetCache installs a schedule cache; nil disables caching
func (e *Engine) SetCache(c cache.ScheduleCache) {
	e.Cache = c
}

// Calculate normalizes user-facing input and builds its schedule
func (e *Engine) Calculate(ctx context.Context, input domain.LoanInput) (*domain.ScheduleResult, error) {
	params, err := NormalizeInput(input)
	if err != nil {
		metrics.ScheduleBuilds.WithLabelValues("unknown", metrics.StatusInvalid).Inc()
		e.Logger.Debugf("rejected input %q: %v", input.Name, err)
		return nil, err
	}
	return e.BuildSchedule(ctx, params)
}

// BuildSchedule returns the schedule for params, from the cache when possible
func (e *Engine) BuildSchedule(ctx context.Context, params domain.LoanParameters) (*domain.ScheduleResult, error) {
	method := string(params.Method)

	if e.Cache != nil {
		if cached, ok := e.Cache.Get(ctx, params); ok {
			metrics.CacheLookups.WithLabelValues(e.Cache.Backend(), "hit").Inc()
			e.Logger.Debugf("schedule cache hit for %s", params.CacheKey())
			return cached, nil
		}
		metrics.CacheLookups.WithLabelValues(e.Cache.Backend(), "miss").Inc()
	}

	start := time.Now()
	result, err := BuildSchedule(params)
	metrics.ScheduleBuildDuration.WithLabelValues(method).Observe(time.Since(start).Seconds())
	if err == nil && e.Debug {
		err = VerifySchedule(result)
		if err != nil {
			result = nil
		}
	}
	if err != nil {
		status := metrics.StatusFailed
		if errors.Is(err, domain.ErrInvalidParameter) {
			status = metrics.StatusInvalid
			e.Logger.Debugf("invalid loan parameters: %v", err)
		} else {
			e.Logger.Errorf("schedule build failed for %s: %v", params.CacheKey(), err)
		}
		metrics.ScheduleBuilds.WithLabelValues(method, status).Inc()
		return nil, err
	}
	metrics.ScheduleBuilds.WithLabelValues(method, metrics.StatusOK).Inc()

	e.Logger.Debugf("built %d-month %s schedule: total payment %s, total interest %s",
		len(result.Rows), method, result.TotalPayment.String(), result.TotalInterest.String())

	if e.Cache != nil {
		if err := e.Cache.Set(ctx, params, result); err != nil {
			e.Logger.Warnf("failed to cache schedule: %v", err)
		}
	}
	return result, nil
}
