package output

import (
	"fmt"
	"sort"
	"strings"

	"github.com/optimach/optimach/internal/domain"
	"github.com/shopspring/decimal"
)

// SweepConsoleFormatter renders an interest-rate sweep as a console table.
type SweepConsoleFormatter struct{}

// FormatRateSweep renders one row per swept rate with the recommended
// strategy, plus a stability note.
func (SweepConsoleFormatter) FormatRateSweep(result *domain.RateSweepResult) (string, error) {
	if result == nil || len(result.Points) == 0 {
		return "", fmt.Errorf("rate sweep result is empty")
	}

	var sb strings.Builder
	sb.WriteString("INTEREST RATE SENSITIVITY\n")
	sb.WriteString(strings.Repeat("=", 72) + "\n")

	// Candidate columns, from the first point's map.
	ks := make([]int, 0, len(result.Points[0].StrategyPWCs))
	for k := range result.Points[0].StrategyPWCs {
		ks = append(ks, k)
	}
	sort.Ints(ks)

	sb.WriteString(fmt.Sprintf("%-10s %-8s", "Rate", "Best k"))
	for _, k := range ks {
		sb.WriteString(fmt.Sprintf(" %14s", fmt.Sprintf("PWC k=%d", k)))
	}
	sb.WriteString("\n" + strings.Repeat("-", 72) + "\n")

	for _, p := range result.Points {
		sb.WriteString(fmt.Sprintf("%-10s %-8d",
			p.Rate.Mul(decimal.NewFromInt(100)).StringFixed(2)+"%", p.BestKeepYears))
		for _, k := range ks {
			sb.WriteString(fmt.Sprintf(" %14s", p.StrategyPWCs[k].StringFixed(0)))
		}
		sb.WriteString("\n")
	}

	sb.WriteString("\n")
	if result.IsStable() {
		sb.WriteString("The recommendation is stable across the swept range.\n")
	} else {
		flips := make([]string, 0, len(result.FlipRates))
		for _, r := range result.FlipRates {
			flips = append(flips, r.Mul(decimal.NewFromInt(100)).StringFixed(2)+"%")
		}
		sb.WriteString("The recommendation flips near: " + strings.Join(flips, ", ") + "\n")
	}

	return sb.String(), nil
}
