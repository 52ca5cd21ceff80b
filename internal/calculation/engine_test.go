package calculation

import (
	"context"
	"testing"
	"time"

	"github.com/rgehrsitz/mortgo/internal/cache"
	"github.com/rgehrsitz/mortgo/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEngine(t *testing.T) {
	engine := NewEngine()

	assert.NotNil(t, engine, "Should create engine")
	assert.NotNil(t, engine.Logger, "Should initialize logger")
	assert.Nil(t, engine.Cache, "Caching is off by default")
}

func TestEngine_SetLogger(t *testing.T) {
	engine := NewEngine()

	customLogger := &TestLogger{}
	engine.SetLogger(customLogger)
	assert.Equal(t, customLogger, engine.Logger, "Should set custom logger")

	engine.SetLogger(nil)
	assert.NotNil(t, engine.Logger, "Should not be nil")
	assert.IsType(t, NopLogger{}, engine.Logger, "Should be no-op logger")
}

func TestEngine_Calculate(t *testing.T) {
	engine := NewEngine()
	logger := &TestLogger{}
	engine.SetLogger(logger)

	result, err := engine.Calculate(context.Background(), domain.LoanInput{
		Name:              "base",
		LoanAmountManYen:  d(3500),
		AnnualRatePercent: rate("0.525"),
		TermYears:         35,
		Method:            "annuity",
	})
	require.NoError(t, err)

	assert.Len(t, result.Rows, 420)
	assert.True(t, result.Rows[0].Payment.Equal(d(91242)))
	assert.NotEmpty(t, logger.messages, "Should log the build")
}

func TestEngine_Calculate_InvalidInput(t *testing.T) {
	engine := NewEngine()

	result, err := engine.Calculate(context.Background(), domain.LoanInput{
		LoanAmountManYen:  d(3500),
		AnnualRatePercent: rate("0.525"),
		TermYears:         -1,
	})

	assert.Nil(t, result)
	assert.ErrorIs(t, err, domain.ErrInvalidParameter)
}

func TestEngine_BuildSchedule_UsesCache(t *testing.T) {
	engine := NewEngine()
	memory := cache.NewMemoryCache(time.Minute)
	engine.SetCache(memory)

	params := bonusParams(domain.EqualPrincipal)
	first, err := engine.BuildSchedule(context.Background(), params)
	require.NoError(t, err)
	assert.Equal(t, 1, memory.Len())

	second, err := engine.BuildSchedule(context.Background(), params)
	require.NoError(t, err)
	assert.Same(t, first, second, "second call should be served from the cache")

	other := params
	other.TermYears = 11
	third, err := engine.BuildSchedule(context.Background(), other)
	require.NoError(t, err)
	assert.NotSame(t, first, third)
	assert.Equal(t, 2, memory.Len())
}

func TestEngine_BuildSchedule_DebugVerifies(t *testing.T) {
	engine := NewEngine()
	engine.Debug = true

	result, err := engine.BuildSchedule(context.Background(), baseParams())
	require.NoError(t, err)
	assert.NoError(t, VerifySchedule(result))
}

func TestEngine_BuildSchedule_DoesNotCacheFailures(t *testing.T) {
	engine := NewEngine()
	memory := cache.NewMemoryCache(time.Minute)
	engine.SetCache(memory)

	params := baseParams()
	params.Principal = d(-5)

	_, err := engine.BuildSchedule(context.Background(), params)
	assert.ErrorIs(t, err, domain.ErrInvalidParameter)
	assert.Equal(t, 0, memory.Len())
}

// TestLogger is a simple logger for testing
type TestLogger struct {
	messages []string
}

func (tl *TestLogger) Debugf(format string, args ...any) {
	tl.messages = append(tl.messages, "DEBUG: "+format)
}

func (tl *TestLogger) Infof(format string, args ...any) {
	tl.messages = append(tl.messages, "INFO: "+format)
}

func (tl *TestLogger) Warnf(format string, args ...any) {
	tl.messages = append(tl.messages, "WARN: "+format)
}

func (tl *TestLogger) Errorf(format string, args ...any) {
	tl.messages = append(tl.messages, "ERROR: "+format)
}
