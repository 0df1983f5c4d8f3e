package calculation

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/optimach/optimach/internal/domain"
)

// referenceInputs is the stock textbook scenario: 10% interest, 5-year
// horizon, $6,000 old machine with 3 usable years left, $22,000 replacement.
func referenceInputs() *domain.MachineInputs {
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

func TestPresentValue_ZeroRate(t *testing.T) {
	amount := decimal.NewFromInt(1234)
	for _, period := range []int{0, 1, 5, 20} {
		pv := PresentValue(amount, period, decimal.Zero)
		assert.True(t, pv.Equal(amount), "zero rate should return the nominal amount at period %d", period)
	}
}

func TestPresentValue_TenPercent(t *testing.T) {
	pv := PresentValue(decimal.NewFromInt(100), 1, decimal.NewFromFloat(0.10))
	assert.InDelta(t, 90.91, pv.InexactFloat64(), 0.005, "100 one period out at 10%% should be about 90.91")

	pv2 := PresentValue(decimal.NewFromInt(121), 2, decimal.NewFromFloat(0.10))
	assert.InDelta(t, 100.0, pv2.InexactFloat64(), 0.005, "121 two periods out at 10%% should be 100")
}

func TestStrategyCashFlows_ReferenceScenario_ReplaceNow(t *testing.T) {
	flows := StrategyCashFlows(0, referenceInputs())
	require.Len(t, flows, 8, "k=0 should produce sale, purchase, five operating costs and a salvage")

	// Sale of the old machine at t=0.
	assert.Equal(t, 0, flows[0].Period)
	assert.True(t, flows[0].Amount.Equal(decimal.NewFromInt(6000)), "old machine sells for 6000 at t=0")

	// Purchase at t=0.
	assert.Equal(t, 0, flows[1].Period)
	assert.True(t, flows[1].Amount.Equal(decimal.NewFromInt(-22000)), "purchase outflow of 22000 at t=0")

	// Escalating operating costs at t=0..4.
	wantOps := []int64{-6000, -7000, -8000, -9000, -10000}
	for i, want := range wantOps {
		cf := flows[2+i]
		assert.Equal(t, i, cf.Period, "operating cost %d at beginning of year %d", i+1, i+1)
		assert.True(t, cf.Amount.Equal(decimal.NewFromInt(want)),
			"operating cost year %d should be %d, got %s", i+1, want, cf.Amount.String())
	}

	// Salvage of 22000 - (3000+3000+4000+4000+4000) = 4000 exactly at the horizon.
	last := flows[7]
	assert.Equal(t, 5, last.Period, "salvage lands exactly at the horizon")
	assert.True(t, last.Amount.Equal(decimal.NewFromInt(4000)), "new machine salvage should be 4000")
}

func TestStrategyCashFlows_ReferenceScenario_NPV(t *testing.T) {
	engine := NewEngine()
	result := engine.EvaluateStrategy(0, referenceInputs())

	assert.InDelta(t, -46083.49, result.NPV.InexactFloat64(), 0.01)
	assert.InDelta(t, 46083.49, result.PresentWorthCost.InexactFloat64(), 0.01)
}

func TestStrategyCashFlows_ZeroFloor(t *testing.T) {
	inputs := referenceInputs()
	// Value loss far beyond current value and a horizon past full depreciation.
	inputs.OldMachine.ValueLossPerYear = decimal.NewFromInt(5000)
	inputs.HorizonYears = 12
	inputs.OldMachine.MaxUsableYears = 10

	for k := 0; k <= 12; k++ {
		for _, cf := range StrategyCashFlows(k, inputs) {
			if cf.IsInflow() {
				assert.True(t, cf.Amount.GreaterThanOrEqual(decimal.Zero),
					"salvage amounts must never be negative (k=%d)", k)
			}
		}
	}
}

func TestStrategyCashFlows_HorizonCoverage(t *testing.T) {
	inputs := referenceInputs()
	for k := 0; k <= 8; k++ {
		flows := StrategyCashFlows(k, inputs)
		for _, cf := range flows {
			assert.LessOrEqual(t, cf.Period, inputs.HorizonYears,
				"no cash flow may land beyond the horizon (k=%d)", k)
		}
	}
}

func TestStrategyCashFlows_NoReplacementWhenHorizonCovered(t *testing.T) {
	inputs := referenceInputs()
	inputs.HorizonYears = 3 // old machine can cover the whole horizon

	flows := StrategyCashFlows(3, inputs)
	for _, cf := range flows {
		assert.NotEqual(t, "new machine purchase", cf.Label,
			"no purchase when the old machine serves the full horizon")
	}

	// Three operating costs and no old-machine sale (value fully depreciated).
	require.Len(t, flows, 3)
}

func TestStrategyCashFlows_ClampsToMaxUsableYears(t *testing.T) {
	inputs := referenceInputs()

	// k beyond the machine's usable life behaves exactly like k = max.
	a := StrategyCashFlows(3, inputs)
	b := StrategyCashFlows(7, inputs)
	require.Equal(t, len(a), len(b))
	for i := range a {
		assert.Equal(t, a[i].Period, b[i].Period)
		assert.True(t, a[i].Amount.Equal(b[i].Amount))
	}
}

func TestStrategyCashFlows_Idempotent(t *testing.T) {
	inputs := referenceInputs()
	first := StrategyCashFlows(2, inputs)
	second := StrategyCashFlows(2, inputs)

	require.Equal(t, len(first), len(second))
	for i := range first {
		assert.Equal(t, first[i].Period, second[i].Period)
		assert.True(t, first[i].Amount.Equal(second[i].Amount),
			"repeated generation must produce identical flows")
	}
}

func TestAnalyze_SelectsArgmaxNPV(t *testing.T) {
	engine := NewEngine()
	result, err := engine.Analyze(referenceInputs())
	require.NoError(t, err)
	require.NotNil(t, result.Best)

	for _, s := range result.Strategies {
		assert.True(t, result.Best.NPV.GreaterThanOrEqual(s.NPV),
			"best NPV must dominate k=%d", s.KeepOldYears)
	}

	// With the stock parameters, keeping the old machine two more years is
	// the cheapest plan.
	assert.Equal(t, 2, result.Best.KeepOldYears)
	assert.InDelta(t, 43759.86, result.Best.PresentWorthCost.InexactFloat64(), 0.01)
}

func TestAnalyze_TieBreakPrefersLowestK(t *testing.T) {
	// With every cost and value zeroed, all strategies have NPV 0; the
	// earliest replacement point must win.
	inputs := &domain.MachineInputs{
		DiscountRate: decimal.Zero,
		HorizonYears: 5,
	}

	engine := NewEngine()
	result, err := engine.Analyze(inputs)
	require.NoError(t, err)
	require.NotNil(t, result.Best)
	assert.Equal(t, 0, result.Best.KeepOldYears, "exact ties go to the lowest k")
}

func TestAnalyze_CustomCandidates(t *testing.T) {
	inputs := referenceInputs()
	inputs.CandidateKeepYears = []int{3, 1, 1, 0}

	engine := NewEngine()
	result, err := engine.Analyze(inputs)
	require.NoError(t, err)

	require.Len(t, result.Strategies, 3, "duplicates collapse")
	assert.Equal(t, 0, result.Strategies[0].KeepOldYears)
	assert.Equal(t, 1, result.Strategies[1].KeepOldYears)
	assert.Equal(t, 3, result.Strategies[2].KeepOldYears)
}

func TestAnalyze_RejectsInvalidInputs(t *testing.T) {
	engine := NewEngine()

	_, err := engine.Analyze(nil)
	assert.Error(t, err, "nil inputs must be rejected")

	inputs := referenceInputs()
	inputs.HorizonYears = 0
	_, err = engine.Analyze(inputs)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "horizon_years", "error should name the offending field")

	inputs = referenceInputs()
	inputs.DiscountRate = decimal.NewFromFloat(-0.05)
	_, err = engine.Analyze(inputs)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "discount_rate")
}

func TestAnalyze_ZeroRate(t *testing.T) {
	inputs := referenceInputs()
	inputs.DiscountRate = decimal.Zero

	engine := NewEngine()
	result, err := engine.Analyze(inputs)
	require.NoError(t, err)

	// Undiscounted, k=0 sums to 6000 - 22000 - 40000 + 4000 = -52000.
	k0 := result.StrategyFor(0)
	require.NotNil(t, k0)
	assert.True(t, k0.NPV.Equal(decimal.NewFromInt(-52000)), "got %s", k0.NPV.String())
}
