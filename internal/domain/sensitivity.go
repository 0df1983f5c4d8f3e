package domain

import (
	"github.com/shopspring/decimal"
)

// RateSweep configures an interest-rate sensitivity sweep.
type RateSweep struct {
	MinRate decimal.Decimal `yaml:"min_rate" json:"minRate"`
	MaxRate decimal.Decimal `yaml:"max_rate" json:"maxRate"`
	Steps   int             `yaml:"steps" json:"steps"`
}

// RatePoint is the analysis outcome at a single swept rate.
type RatePoint struct {
	Rate             decimal.Decimal `json:"rate"`
	BestKeepYears    int             `json:"bestKeepYears"`
	PresentWorthCost decimal.Decimal `json:"presentWorthCost"`

	// StrategyPWCs maps keep-years to present worth cost at this rate,
	// so formatters can show the whole candidate set per row.
	StrategyPWCs map[int]decimal.Decimal `json:"strategyPwcs"`
}

// RateSweepResult is the full sweep: one point per rate, ascending, plus the
// rates at which the recommended strategy changed from the previous point.
type RateSweepResult struct {
	Sweep     RateSweep         `json:"sweep"`
	Points    []RatePoint       `json:"points"`
	FlipRates []decimal.Decimal `json:"flipRates"`
}

// IsStable reports whether the recommendation held across the whole sweep.
func (rsr *RateSweepResult) IsStable() bool {
	return len(rsr.FlipRates) == 0
}
