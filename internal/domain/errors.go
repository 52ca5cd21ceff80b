package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidParameter marks out-of-range or malformed loan inputs
	ErrInvalidParameter = errors.New("invalid parameter")
	// ErrCalculationFailure marks an arithmetic failure while building a schedule
	ErrCalculationFailure = errors.New("calculation failure")
)

// ParameterError describes which input was rejected and why
type ParameterError struct {
	Field  string
	Reason string
}

func (e *ParameterError) Error() string {
	return fmt.Sprintf("%s: %s %s", ErrInvalidParameter, e.Field, e.Reason)
}

// Unwrap lets errors.Is match ErrInvalidParameter
func (e *ParameterError) Unwrap() error {
	return ErrInvalidParameter
}

// CalculationError reports a schedule build failure at a given month
type CalculationError struct {
	Month  int
	Track  string
	Reason string
}

func (e *CalculationError) Error() string {
	switch {
	case e.Month > 0 && e.Track != "":
		return fmt.Sprintf("%s: %s track, month %d: %s", ErrCalculationFailure, e.Track, e.Month, e.Reason)
	case e.Month > 0:
		return fmt.Sprintf("%s: month %d: %s", ErrCalculationFailure, e.Month, e.Reason)
	case e.Track != "":
		return fmt.Sprintf("%s: %s track: %s", ErrCalculationFailure, e.Track, e.Reason)
	default:
		return fmt.Sprintf("%s: %s", ErrCalculationFailure, e.Reason)
	}
}

// Unwrap lets errors.Is match ErrCalculationFailure
func (e *CalculationError) Unwrap() error {
	return ErrCalculationFailure
}
