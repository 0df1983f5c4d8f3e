package breakeven

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// FormatConsole renders a break-even result for terminal display.
func FormatConsole(result *Result) string {
	var sb strings.Builder

	sb.WriteString("BREAK-EVEN INTEREST RATE\n")
	sb.WriteString(strings.Repeat("=", 50) + "\n")
	sb.WriteString(fmt.Sprintf("Strategies: keep old %d year(s) vs %d year(s)\n",
		result.KeepYearsA, result.KeepYearsB))
	sb.WriteString(fmt.Sprintf("Break-even rate: %s%%\n",
		result.Rate.Mul(decimal.NewFromInt(100)).StringFixed(2)))
	sb.WriteString(fmt.Sprintf("NPV at break-even (k=%d): $%s\n", result.KeepYearsA, result.NPVAtRateA.StringFixed(2)))
	sb.WriteString(fmt.Sprintf("NPV at break-even (k=%d): $%s\n", result.KeepYearsB, result.NPVAtRateB.StringFixed(2)))
	sb.WriteString(fmt.Sprintf("Convergence: %s\n", result.ConvergenceInfo))
	sb.WriteString("\nAt this rate the two strategies are economically indifferent.\n")

	return sb.String()
}
