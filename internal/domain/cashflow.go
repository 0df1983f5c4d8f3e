package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// CashFlow is a single dated cash movement. Period counts whole years from
// t=0 (beginning of year 1). Outflows are negative, inflows positive.
type CashFlow struct {
	Period int             `json:"period"`
	Amount decimal.Decimal `json:"amount"`

	// Label says what the flow is (operating cost, purchase, salvage) for
	// display purposes only; it never affects the arithmetic.
	Label string `json:"label,omitempty"`
}

// IsInflow reports whether the flow is money received.
func (cf CashFlow) IsInflow() bool {
	return cf.Amount.GreaterThan(decimal.Zero)
}

// StrategyResult is the full evaluation of one "keep old for k years"
// strategy: its ordered cash flows and their net present value.
type StrategyResult struct {
	KeepOldYears     int             `json:"keepOldYears"`
	NPV              decimal.Decimal `json:"npv"`
	PresentWorthCost decimal.Decimal `json:"presentWorthCost"`
	CashFlows        []CashFlow      `json:"cashFlows"`
}

// AnalysisResult is the outcome of one analysis run: every evaluated
// strategy in ascending keep-years order plus the selected best one.
type AnalysisResult struct {
	Inputs     MachineInputs    `json:"inputs"`
	Strategies []StrategyResult `json:"strategies"`
	Best       *StrategyResult  `json:"best"`
}

// Recommendation renders the decision as a single actionable sentence.
func (ar *AnalysisResult) Recommendation() string {
	if ar.Best == nil {
		return ""
	}
	ratePct := ar.Inputs.DiscountRate.Mul(decimal.NewFromInt(100))
	if ar.Best.KeepOldYears == 0 {
		return fmt.Sprintf(
			"At an interest rate of %s%%, sell the existing machine now and purchase a new one immediately (present worth cost $%s).",
			ratePct.StringFixed(1), ar.Best.PresentWorthCost.StringFixed(2))
	}
	yearWord := "years"
	if ar.Best.KeepOldYears == 1 {
		yearWord = "year"
	}
	return fmt.Sprintf(
		"At an interest rate of %s%%, keep the existing machine for %d %s and purchase a new machine at the beginning of year %d (present worth cost $%s).",
		ratePct.StringFixed(1), ar.Best.KeepOldYears, yearWord,
		ar.Best.KeepOldYears+1, ar.Best.PresentWorthCost.StringFixed(2))
}

// StrategyFor returns the evaluated strategy for the given keep-years, or nil
// when it was not in the candidate set.
func (ar *AnalysisResult) StrategyFor(keepOldYears int) *StrategyResult {
	for i := range ar.Strategies {
		if ar.Strategies[i].KeepOldYears == keepOldYears {
			return &ar.Strategies[i]
		}
	}
	return nil
}
