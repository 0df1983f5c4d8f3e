package breakeven

import (
	"context"
	"fmt"

	"github.com/optimach/optimach/internal/calculation"
	"github.com/optimach/optimach/internal/domain"
	"github.com/shopspring/decimal"
)

// Solver finds the discount rate at which two strategies break even.
type Solver struct {
	Engine  *calculation.Engine
	Options SolverOptions
}

// NewSolver creates a break-even solver.
func NewSolver(engine *calculation.Engine, options SolverOptions) *Solver {
	return &Solver{Engine: engine, Options: options}
}

// NewDefaultSolver creates a solver with default options.
func NewDefaultSolver(engine *calculation.Engine) *Solver {
	return NewSolver(engine, DefaultSolverOptions())
}

// Solve bisects the rate interval until the two strategies' NPVs agree
// within tolerance. It fails when the NPV difference has the same sign at
// both bounds, meaning one strategy dominates across the whole interval.
func (s *Solver) Solve(ctx context.Context, inputs *domain.MachineInputs, req Request) (*Result, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if inputs == nil {
		return nil, &Error{Operation: "solve", Message: "machine inputs are required"}
	}
	if err := inputs.Validate(); err != nil {
		return nil, &Error{Operation: "solve", Message: "invalid machine inputs", Cause: err}
	}

	lo, hi := req.MinRate, req.MaxRate
	if hi.IsZero() {
		lo, hi = s.Options.MinRate, s.Options.MaxRate
	}
	maxIter := req.MaxIterations
	if maxIter == 0 {
		maxIter = s.Options.MaxIterations
	}
	tolerance := req.Tolerance
	if tolerance.IsZero() {
		tolerance = s.Options.Tolerance
	}

	diffLo := s.npvDiff(inputs, req, lo)
	diffHi := s.npvDiff(inputs, req, hi)
	if diffLo.Sign() == diffHi.Sign() && diffLo.Sign() != 0 {
		return nil, &Error{
			Operation: "solve",
			Message: fmt.Sprintf("strategies k=%d and k=%d do not cross between rates %s and %s",
				req.KeepYearsA, req.KeepYearsB, lo.String(), hi.String()),
		}
	}

	iterations := 0
	for iterations < maxIter {
		iterations++

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		mid := lo.Add(hi).Div(decimal.NewFromInt(2))
		diff := s.npvDiff(inputs, req, mid)

		if diff.Abs().LessThan(tolerance) || hi.Sub(lo).LessThan(decimal.NewFromFloat(1e-9)) {
			return s.resultAt(inputs, req, mid, iterations,
				fmt.Sprintf("converged within $%s after %d iterations", tolerance.String(), iterations)), nil
		}

		if diff.Sign() == diffLo.Sign() {
			lo = mid
			diffLo = diff
		} else {
			hi = mid
		}
	}

	mid := lo.Add(hi).Div(decimal.NewFromInt(2))
	return s.resultAt(inputs, req, mid, iterations,
		fmt.Sprintf("max iterations (%d) reached", maxIter)), nil
}

// npvDiff evaluates NPV(A) - NPV(B) at the given rate.
func (s *Solver) npvDiff(inputs *domain.MachineInputs, req Request, rate decimal.Decimal) decimal.Decimal {
	probe := *inputs
	probe.DiscountRate = rate
	a := s.Engine.EvaluateStrategy(req.KeepYearsA, &probe)
	b := s.Engine.EvaluateStrategy(req.KeepYearsB, &probe)
	return a.NPV.Sub(b.NPV)
}

func (s *Solver) resultAt(inputs *domain.MachineInputs, req Request, rate decimal.Decimal, iterations int, info string) *Result {
	probe := *inputs
	probe.DiscountRate = rate
	a := s.Engine.EvaluateStrategy(req.KeepYearsA, &probe)
	b := s.Engine.EvaluateStrategy(req.KeepYearsB, &probe)
	return &Result{
		KeepYearsA:      req.KeepYearsA,
		KeepYearsB:      req.KeepYearsB,
		Rate:            rate,
		NPVAtRateA:      a.NPV,
		NPVAtRateB:      b.NPV,
		Iterations:      iterations,
		ConvergenceInfo: info,
	}
}
