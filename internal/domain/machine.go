package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// OldMachine describes the machine currently in service.
type OldMachine struct {
	CurrentValue     decimal.Decimal `yaml:"current_value" json:"currentValue"`
	ValueLossPerYear decimal.Decimal `yaml:"value_loss_per_year" json:"valueLossPerYear"`
	OpCostFirstYear  decimal.Decimal `yaml:"op_cost_first_year" json:"opCostFirstYear"`
	OpCostIncrease   decimal.Decimal `yaml:"op_cost_increase" json:"opCostIncrease"`
	MaxUsableYears   int             `yaml:"max_usable_years" json:"maxUsableYears"`
}

// NewMachine describes the replacement candidate.
type NewMachine struct {
	PurchasePrice         decimal.Decimal `yaml:"purchase_price" json:"purchasePrice"`
	DepreciationYears1to2 decimal.Decimal `yaml:"depreciation_years_1_2" json:"depreciationYears1to2"`
	DepreciationYear3Plus decimal.Decimal `yaml:"depreciation_year_3_plus" json:"depreciationYear3Plus"`
	OpCostFirstYear       decimal.Decimal `yaml:"op_cost_first_year" json:"opCostFirstYear"`
	OpCostIncrease        decimal.Decimal `yaml:"op_cost_increase" json:"opCostIncrease"`
}

// MachineInputs is the complete parameter set for one replacement analysis.
// It is treated as read-only by the engine; every analysis run derives all of
// its output from a value of this type.
type MachineInputs struct {
	DiscountRate decimal.Decimal `yaml:"discount_rate" json:"discountRate"`
	HorizonYears int             `yaml:"horizon_years" json:"horizonYears"`
	OldMachine   OldMachine      `yaml:"old_machine" json:"oldMachine"`
	NewMachine   NewMachine      `yaml:"new_machine" json:"newMachine"`

	// CandidateKeepYears lists the "keep old for k years" strategies to
	// evaluate. Empty means the default candidate set {0, 1, 2, 3}.
	CandidateKeepYears []int `yaml:"candidate_keep_years,omitempty" json:"candidateKeepYears,omitempty"`
}

// DefaultCandidateKeepYears is the candidate strategy set used when the
// inputs do not name one: replace now through keep three more years.
var DefaultCandidateKeepYears = []int{0, 1, 2, 3}

// Candidates returns the candidate keep-years set, falling back to the
// default set when none was configured. The returned slice is a copy.
func (mi *MachineInputs) Candidates() []int {
	src := mi.CandidateKeepYears
	if len(src) == 0 {
		src = DefaultCandidateKeepYears
	}
	out := make([]int, len(src))
	copy(out, src)
	return out
}

// Validate rejects malformed parameter sets before any arithmetic runs.
// Errors name the offending field so callers can surface them directly.
func (mi *MachineInputs) Validate() error {
	if mi.DiscountRate.LessThan(decimal.Zero) {
		return fmt.Errorf("discount_rate cannot be negative, got %s", mi.DiscountRate.String())
	}
	if mi.HorizonYears <= 0 {
		return fmt.Errorf("horizon_years must be positive, got %d", mi.HorizonYears)
	}
	if mi.OldMachine.CurrentValue.LessThan(decimal.Zero) {
		return fmt.Errorf("old_machine.current_value cannot be negative")
	}
	if mi.OldMachine.ValueLossPerYear.LessThan(decimal.Zero) {
		return fmt.Errorf("old_machine.value_loss_per_year cannot be negative")
	}
	if mi.OldMachine.OpCostFirstYear.LessThan(decimal.Zero) {
		return fmt.Errorf("old_machine.op_cost_first_year cannot be negative")
	}
	if mi.OldMachine.OpCostIncrease.LessThan(decimal.Zero) {
		return fmt.Errorf("old_machine.op_cost_increase cannot be negative")
	}
	if mi.OldMachine.MaxUsableYears < 0 {
		return fmt.Errorf("old_machine.max_usable_years cannot be negative, got %d", mi.OldMachine.MaxUsableYears)
	}
	if mi.NewMachine.PurchasePrice.LessThan(decimal.Zero) {
		return fmt.Errorf("new_machine.purchase_price cannot be negative")
	}
	if mi.NewMachine.DepreciationYears1to2.LessThan(decimal.Zero) {
		return fmt.Errorf("new_machine.depreciation_years_1_2 cannot be negative")
	}
	if mi.NewMachine.DepreciationYear3Plus.LessThan(decimal.Zero) {
		return fmt.Errorf("new_machine.depreciation_year_3_plus cannot be negative")
	}
	if mi.NewMachine.OpCostFirstYear.LessThan(decimal.Zero) {
		return fmt.Errorf("new_machine.op_cost_first_year cannot be negative")
	}
	if mi.NewMachine.OpCostIncrease.LessThan(decimal.Zero) {
		return fmt.Errorf("new_machine.op_cost_increase cannot be negative")
	}
	for i, k := range mi.CandidateKeepYears {
		if k < 0 {
			return fmt.Errorf("candidate_keep_years[%d] cannot be negative, got %d", i, k)
		}
	}
	return nil
}

// SalvageValueAfter returns the old machine's market value after using it for
// the given number of years, floored at zero. A worn-out machine is worth $0,
// never a liability.
func (om *OldMachine) SalvageValueAfter(years int) decimal.Decimal {
	value := om.CurrentValue.Sub(om.ValueLossPerYear.Mul(decimal.NewFromInt(int64(years))))
	if value.LessThan(decimal.Zero) {
		return decimal.Zero
	}
	return value
}

// OperatingCostForYear returns the old machine's operating cost for its
// year-th year of use (1-based), escalating linearly.
func (om *OldMachine) OperatingCostForYear(year int) decimal.Decimal {
	return om.OpCostFirstYear.Add(om.OpCostIncrease.Mul(decimal.NewFromInt(int64(year - 1))))
}

// OperatingCostForYear returns the new machine's operating cost for its
// year-th year of use (1-based).
func (nm *NewMachine) OperatingCostForYear(year int) decimal.Decimal {
	return nm.OpCostFirstYear.Add(nm.OpCostIncrease.Mul(decimal.NewFromInt(int64(year - 1))))
}

// SalvageValueAfter returns the new machine's value after the given number of
// years of use under its depreciation schedule: the 1-2 rate for the first
// two years, the 3+ rate thereafter, floored at zero. Computing the schedule
// arithmetically covers any horizon without padding a slice.
func (nm *NewMachine) SalvageValueAfter(years int) decimal.Decimal {
	if years <= 0 {
		return nm.PurchasePrice
	}
	earlyYears := years
	if earlyYears > 2 {
		earlyYears = 2
	}
	lateYears := years - earlyYears
	total := nm.DepreciationYears1to2.Mul(decimal.NewFromInt(int64(earlyYears))).
		Add(nm.DepreciationYear3Plus.Mul(decimal.NewFromInt(int64(lateYears))))
	value := nm.PurchasePrice.Sub(total)
	if value.LessThan(decimal.Zero) {
		return decimal.Zero
	}
	return value
}
