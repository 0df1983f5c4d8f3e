package calculation

import (
	"fmt"

	"github.com/optimach/optimach/internal/domain"
	"github.com/shopspring/decimal"
)

// SweepRates re-runs the analysis at evenly spaced interest rates between
// the sweep bounds (inclusive) and records where the recommended strategy
// flips. The base inputs are never mutated; each point gets its own copy.
func (e *Engine) SweepRates(inputs *domain.MachineInputs, sweep domain.RateSweep) (*domain.RateSweepResult, error) {
	if inputs == nil {
		return nil, fmt.Errorf("machine inputs are required")
	}
	if sweep.Steps < 2 {
		return nil, fmt.Errorf("sweep steps must be at least 2, got %d", sweep.Steps)
	}
	if sweep.MinRate.LessThan(decimal.Zero) {
		return nil, fmt.Errorf("sweep min_rate cannot be negative, got %s", sweep.MinRate.String())
	}
	if sweep.MaxRate.LessThan(sweep.MinRate) {
		return nil, fmt.Errorf("sweep max_rate %s is below min_rate %s",
			sweep.MaxRate.String(), sweep.MinRate.String())
	}

	step := sweep.MaxRate.Sub(sweep.MinRate).Div(decimal.NewFromInt(int64(sweep.Steps - 1)))

	result := &domain.RateSweepResult{
		Sweep:  sweep,
		Points: make([]domain.RatePoint, 0, sweep.Steps),
	}

	for i := 0; i < sweep.Steps; i++ {
		rate := sweep.MinRate.Add(step.Mul(decimal.NewFromInt(int64(i))))
		if i == sweep.Steps-1 {
			// Land exactly on the upper bound regardless of division rounding.
			rate = sweep.MaxRate
		}

		swept := *inputs
		swept.DiscountRate = rate

		analysis, err := e.Analyze(&swept)
		if err != nil {
			return nil, fmt.Errorf("sweep failed at rate %s: %w", rate.String(), err)
		}

		point := domain.RatePoint{
			Rate:             rate,
			BestKeepYears:    analysis.Best.KeepOldYears,
			PresentWorthCost: analysis.Best.PresentWorthCost,
			StrategyPWCs:     make(map[int]decimal.Decimal, len(analysis.Strategies)),
		}
		for _, s := range analysis.Strategies {
			point.StrategyPWCs[s.KeepOldYears] = s.PresentWorthCost
		}

		if n := len(result.Points); n > 0 && result.Points[n-1].BestKeepYears != point.BestKeepYears {
			result.FlipRates = append(result.FlipRates, rate)
			e.Logger.Infof("recommendation flips to k=%d at rate %s", point.BestKeepYears, rate.String())
		}

		result.Points = append(result.Points, point)
	}

	return result, nil
}
