package calculation

import (
	"fmt"
	"sort"

	"github.com/optimach/optimach/internal/domain"
	"github.com/shopspring/decimal"
)

// Engine runs machine replacement analyses. Each call is a pure function of
// the parameter set it receives; the engine itself holds no run state.
type Engine struct {
	Logger Logger
	Debug  bool
}

// NewEngine creates an engine with the no-op logger.
func NewEngine() *Engine {
	return &Engine{Logger: NopLogger{}}
}

// SetLogger replaces the engine logger. A nil logger restores the no-op one.
func (e *Engine) SetLogger(l Logger) {
	if l == nil {
		l = NopLogger{}
	}
	e.Logger = l
}

// PresentValue discounts an amount paid or received at the beginning of the
// given period back to t=0: amount / (1+rate)^period. A zero rate returns the
// nominal amount unchanged.
func PresentValue(amount decimal.Decimal, period int, rate decimal.Decimal) decimal.Decimal {
	if period == 0 || rate.IsZero() {
		return amount
	}
	factor := decimal.NewFromInt(1).Add(rate).Pow(decimal.NewFromInt(int64(period)))
	return amount.Div(factor)
}

// StrategyCashFlows builds the ordered cash-flow sequence for the strategy
// "keep the old machine for keepOldYears, then replace if the horizon is not
// yet covered". Timeline convention: the beginning of year y is period y-1.
// The function is total for validated inputs; it never fails.
func StrategyCashFlows(keepOldYears int, inputs *domain.MachineInputs) []domain.CashFlow {
	flows := []domain.CashFlow{}

	usedOldYears := keepOldYears
	if usedOldYears > inputs.OldMachine.MaxUsableYears {
		usedOldYears = inputs.OldMachine.MaxUsableYears
	}
	if usedOldYears > inputs.HorizonYears {
		usedOldYears = inputs.HorizonYears
	}

	// Old machine operating costs, paid at the beginning of each used year.
	for y := 1; y <= usedOldYears; y++ {
		flows = append(flows, domain.CashFlow{
			Period: y - 1,
			Amount: inputs.OldMachine.OperatingCostForYear(y).Neg(),
			Label:  "old machine operating cost",
		})
	}

	// Sell the old machine when we stop using it. With no use at all the
	// sale happens immediately at t=0.
	sellPeriod := usedOldYears
	salvage := inputs.OldMachine.SalvageValueAfter(usedOldYears)
	if salvage.GreaterThan(decimal.Zero) {
		flows = append(flows, domain.CashFlow{
			Period: sellPeriod,
			Amount: salvage,
			Label:  "old machine sale",
		})
	}

	yearsRemaining := inputs.HorizonYears - usedOldYears
	if yearsRemaining <= 0 {
		// Horizon fully served by the old machine; nothing to buy.
		return flows
	}

	flows = append(flows, domain.CashFlow{
		Period: usedOldYears,
		Amount: inputs.NewMachine.PurchasePrice.Neg(),
		Label:  "new machine purchase",
	})

	for y := 1; y <= yearsRemaining; y++ {
		flows = append(flows, domain.CashFlow{
			Period: usedOldYears + y - 1,
			Amount: inputs.NewMachine.OperatingCostForYear(y).Neg(),
			Label:  "new machine operating cost",
		})
	}

	// Salvage the new machine at the end of the horizon.
	flows = append(flows, domain.CashFlow{
		Period: usedOldYears + yearsRemaining,
		Amount: inputs.NewMachine.SalvageValueAfter(yearsRemaining),
		Label:  "new machine salvage",
	})

	return flows
}

// EvaluateStrategy generates a strategy's cash flows and discounts them into
// a single NPV. NPV is typically negative (a net cost); present worth cost is
// its negation for display.
func (e *Engine) EvaluateStrategy(keepOldYears int, inputs *domain.MachineInputs) domain.StrategyResult {
	flows := StrategyCashFlows(keepOldYears, inputs)

	npv := decimal.Zero
	for _, cf := range flows {
		npv = npv.Add(PresentValue(cf.Amount, cf.Period, inputs.DiscountRate))
	}

	if e.Debug {
		e.Logger.Debugf("strategy k=%d: %d cash flows, NPV %s", keepOldYears, len(flows), npv.StringFixed(2))
	}

	return domain.StrategyResult{
		KeepOldYears:     keepOldYears,
		NPV:              npv,
		PresentWorthCost: npv.Neg(),
		CashFlows:        flows,
	}
}

// Analyze evaluates every candidate strategy and selects the one with the
// highest NPV, i.e. the lowest present worth cost.
func (e *Engine) Analyze(inputs *domain.MachineInputs) (*domain.AnalysisResult, error) {
	if inputs == nil {
		return nil, fmt.Errorf("machine inputs are required")
	}
	if err := inputs.Validate(); err != nil {
		return nil, fmt.Errorf("invalid machine inputs: %w", err)
	}

	candidates := inputs.Candidates()
	sort.Ints(candidates)

	result := &domain.AnalysisResult{
		Inputs:     *inputs,
		Strategies: make([]domain.StrategyResult, 0, len(candidates)),
	}

	prev := -1
	for _, k := range candidates {
		if k == prev {
			continue
		}
		prev = k
		result.Strategies = append(result.Strategies, e.EvaluateStrategy(k, inputs))
	}

	// Candidates run in ascending keep-years order and the best is replaced
	// only on a strictly greater NPV, so an exact tie goes to the smallest
	// k: when economically indifferent, replace earlier.
	for i := range result.Strategies {
		if result.Best == nil || result.Strategies[i].NPV.GreaterThan(result.Best.NPV) {
			result.Best = &result.Strategies[i]
		}
	}

	if result.Best != nil {
		e.Logger.Infof("best strategy: keep old machine %d year(s), present worth cost $%s",
			result.Best.KeepOldYears, result.Best.PresentWorthCost.StringFixed(2))
	}

	return result, nil
}
