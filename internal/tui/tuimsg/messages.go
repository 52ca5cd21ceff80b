// Package tuimsg holds the messages exchanged between TUI scenes and the
// root model. It is separate from package tui to avoid import cycles.
package tuimsg

import (
	"github.com/rgehrsitz/mortgo/internal/compare"
	"github.com/rgehrsitz/mortgo/internal/domain"
)

// ParametersChangedMsg signals the simulator form now describes a new loan
type ParametersChangedMsg struct {
	Input domain.LoanInput
}

// CalculationCompleteMsg carries a finished schedule. Seq matches the
// ParametersChangedMsg it answers so stale results can be dropped.
type CalculationCompleteMsg struct {
	Seq        int
	Input      domain.LoanInput
	Result     *domain.ScheduleResult
	Comparison *compare.ComparisonSet
	Err        error
}

// ErrorMsg displays an error to the user
type ErrorMsg struct {
	Err error
}
