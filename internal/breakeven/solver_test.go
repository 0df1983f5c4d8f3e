package breakeven

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/optimach/optimach/internal/calculation"
	"github.com/optimach/optimach/internal/domain"
)

func testInputs() *domain.MachineInputs {
	return &domain.MachineInputs{
		DiscountRate: decimal.NewFromFloat(0.10),
		HorizonYears: 5,
		OldMachine: domain.OldMachine{
			CurrentValue:     decimal.NewFromInt(6000),
			ValueLossPerYear: decimal.NewFromInt(2000),
			OpCostFirstYear:  decimal.NewFromInt(9000),
			OpCostIncrease:   decimal.NewFromInt(2000),
			MaxUsableYears:   3,
		},
		NewMachine: domain.NewMachine{
			PurchasePrice:         decimal.NewFromInt(22000),
			DepreciationYears1to2: decimal.NewFromInt(3000),
			DepreciationYear3Plus: decimal.NewFromInt(4000),
			OpCostFirstYear:       decimal.NewFromInt(6000),
			OpCostIncrease:        decimal.NewFromInt(1000),
		},
	}
}

func TestNewSolver(t *testing.T) {
	engine := calculation.NewEngine()
	options := DefaultSolverOptions()

	solver := NewSolver(engine, options)

	if solver == nil {
		t.Fatal("Expected solver to be created, got nil")
	}
	if solver.Engine != engine {
		t.Error("Expected Engine to match input")
	}
	if solver.Options.MaxIterations != options.MaxIterations {
		t.Error("Expected Options to match input")
	}
}

func TestSolver_Solve_Converges(t *testing.T) {
	// Keeping the old machine two years beats three at low rates; at very
	// high rates the later outlay wins. The cross lies between 0 and 100%.
	solver := NewDefaultSolver(calculation.NewEngine())

	result, err := solver.Solve(context.Background(), testInputs(), Request{
		KeepYearsA: 2,
		KeepYearsB: 3,
	})
	if err != nil {
		t.Fatalf("Expected convergence, got error: %v", err)
	}

	if result.Rate.LessThanOrEqual(decimal.NewFromFloat(0.10)) {
		t.Errorf("Expected break-even above 10%%, got %s", result.Rate.String())
	}
	if result.Rate.GreaterThanOrEqual(decimal.NewFromInt(1)) {
		t.Errorf("Expected break-even below 100%%, got %s", result.Rate.String())
	}

	diff := result.NPVAtRateA.Sub(result.NPVAtRateB).Abs()
	if diff.GreaterThan(decimal.NewFromFloat(0.02)) {
		t.Errorf("Expected NPVs to agree within tolerance at break-even, diff %s", diff.String())
	}
}

func TestSolver_Solve_NoCrossing(t *testing.T) {
	// Replacing immediately never beats keeping two years at any rate in
	// the default bounds, so there is no break-even to find.
	solver := NewDefaultSolver(calculation.NewEngine())

	result, err := solver.Solve(context.Background(), testInputs(), Request{
		KeepYearsA: 0,
		KeepYearsB: 2,
	})
	if err == nil {
		t.Fatal("Expected error when strategies do not cross")
	}
	if result != nil {
		t.Error("Expected nil result when strategies do not cross")
	}
}

func TestSolver_Solve_InvalidRequest(t *testing.T) {
	solver := NewDefaultSolver(calculation.NewEngine())

	_, err := solver.Solve(context.Background(), testInputs(), Request{KeepYearsA: 2, KeepYearsB: 2})
	if err == nil {
		t.Error("Expected error for identical strategies")
	}

	_, err = solver.Solve(context.Background(), testInputs(), Request{KeepYearsA: -1, KeepYearsB: 2})
	if err == nil {
		t.Error("Expected error for negative keep-years")
	}

	_, err = solver.Solve(context.Background(), nil, Request{KeepYearsA: 0, KeepYearsB: 2})
	if err == nil {
		t.Error("Expected error for missing inputs")
	}
}

func TestSolver_Solve_ContextCancellation(t *testing.T) {
	solver := NewDefaultSolver(calculation.NewEngine())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := solver.Solve(ctx, testInputs(), Request{KeepYearsA: 2, KeepYearsB: 3})
	if err != context.Canceled {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
}
