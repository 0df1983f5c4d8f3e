package breakeven

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Request describes a break-even search: find the interest rate at which two
// keep-years strategies have equal net present value.
type Request struct {
	KeepYearsA int
	KeepYearsB int

	// Rate bounds for the search. Zero values fall back to SolverOptions.
	MinRate decimal.Decimal
	MaxRate decimal.Decimal

	MaxIterations int
	Tolerance     decimal.Decimal
}

// Result is the outcome of a break-even search.
type Result struct {
	KeepYearsA int             `json:"keepYearsA"`
	KeepYearsB int             `json:"keepYearsB"`
	Rate       decimal.Decimal `json:"rate"`
	NPVAtRateA decimal.Decimal `json:"npvAtRateA"`
	NPVAtRateB decimal.Decimal `json:"npvAtRateB"`
	Iterations int             `json:"iterations"`

	ConvergenceInfo string `json:"convergenceInfo"`
}

// SolverOptions holds search defaults.
type SolverOptions struct {
	MinRate       decimal.Decimal
	MaxRate       decimal.Decimal
	MaxIterations int
	Tolerance     decimal.Decimal
}

// DefaultSolverOptions searches rates from 0% to 100% and converges when the
// two strategies' NPVs are within a cent.
func DefaultSolverOptions() SolverOptions {
	return SolverOptions{
		MinRate:       decimal.Zero,
		MaxRate:       decimal.NewFromInt(1),
		MaxIterations: 100,
		Tolerance:     decimal.NewFromFloat(0.01),
	}
}

// Validate rejects degenerate requests.
func (r *Request) Validate() error {
	if r.KeepYearsA < 0 || r.KeepYearsB < 0 {
		return &Error{Operation: "validate", Message: "keep-years must be non-negative"}
	}
	if r.KeepYearsA == r.KeepYearsB {
		return &Error{Operation: "validate",
			Message: fmt.Sprintf("strategies must differ, both are k=%d", r.KeepYearsA)}
	}
	return nil
}

// Error is a break-even solver failure.
type Error struct {
	Operation string
	Message   string
	Cause     error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("break-even %s: %s: %v", e.Operation, e.Message, e.Cause)
	}
	return fmt.Sprintf("break-even %s: %s", e.Operation, e.Message)
}

func (e *Error) Unwrap() error { return e.Cause }
