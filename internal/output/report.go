package output

import (
	"fmt"
	"sort"
	"strings"

	"github.com/optimach/optimach/internal/calculation"
	"github.com/optimach/optimach/internal/domain"
	"github.com/shopspring/decimal"
)

// Formatter renders an analysis result in one output format.
type Formatter interface {
	Name() string
	Format(result *domain.AnalysisResult) ([]byte, error)
}

// GetFormatterByName returns the named formatter, or nil if unknown.
func GetFormatterByName(name string) Formatter {
	switch name {
	case "console":
		return ConsoleFormatter{}
	case "console-all":
		return ConsoleFormatter{AllStrategies: true}
	case "console-lite":
		return ConsoleLiteFormatter{}
	case "csv":
		return CSVFormatter{}
	case "json":
		return JSONFormatter{Pretty: true}
	default:
		return nil
	}
}

// FormatCurrency renders a decimal as a dollar amount with two decimals,
// keeping the sign in front of the dollar symbol.
func FormatCurrency(d decimal.Decimal) string {
	if d.LessThan(decimal.Zero) {
		return "-$" + d.Abs().StringFixed(2)
	}
	return "$" + d.StringFixed(2)
}

// ConsoleFormatter renders the full report: the per-strategy summary table,
// the detailed cash-flow table, and the decision sentence.
type ConsoleFormatter struct {
	// AllStrategies includes the detailed cash-flow table for every
	// candidate instead of only the best one.
	AllStrategies bool
}

func (ConsoleFormatter) Name() string { return "console" }

// Format renders the report.
func (cf ConsoleFormatter) Format(result *domain.AnalysisResult) ([]byte, error) {
	var sb strings.Builder

	ratePct := result.Inputs.DiscountRate.Mul(decimal.NewFromInt(100))

	sb.WriteString("MACHINE REPLACEMENT ANALYSIS\n")
	sb.WriteString(strings.Repeat("=", 72) + "\n")
	sb.WriteString(fmt.Sprintf("Interest rate: %s%%   Horizon: %d years\n\n",
		ratePct.StringFixed(1), result.Inputs.HorizonYears))

	sb.WriteString("SUMMARY: PRESENT VALUES BY STRATEGY\n")
	sb.WriteString(strings.Repeat("-", 72) + "\n")
	sb.WriteString(fmt.Sprintf("%-22s %24s %24s\n", "Keep old (years)", "NPV (inflows +)", "Present Worth Cost"))
	for _, s := range result.Strategies {
		marker := ""
		if result.Best != nil && s.KeepOldYears == result.Best.KeepOldYears {
			marker = " *"
		}
		sb.WriteString(fmt.Sprintf("%-22d %24s %24s%s\n",
			s.KeepOldYears, FormatCurrency(s.NPV), FormatCurrency(s.PresentWorthCost), marker))
	}
	sb.WriteString("\n")

	if cf.AllStrategies {
		for i := range result.Strategies {
			writeCashFlowTable(&sb, &result.Strategies[i], result.Inputs.DiscountRate)
		}
	} else if result.Best != nil {
		writeCashFlowTable(&sb, result.Best, result.Inputs.DiscountRate)
	}

	sb.WriteString("DECISION\n")
	sb.WriteString(strings.Repeat("-", 72) + "\n")
	sb.WriteString(result.Recommendation() + "\n")

	return []byte(sb.String()), nil
}

// writeCashFlowTable writes one strategy's cash flows sorted by period, with
// each flow's discounted present value.
func writeCashFlowTable(sb *strings.Builder, s *domain.StrategyResult, rate decimal.Decimal) {
	sb.WriteString(fmt.Sprintf("DETAILED CASH FLOWS: KEEP OLD FOR %d YEAR(S)\n", s.KeepOldYears))
	sb.WriteString(strings.Repeat("-", 72) + "\n")
	sb.WriteString(fmt.Sprintf("%-8s %-28s %16s %16s\n", "Time t", "Description", "Cash Flow", "PV at t=0"))

	flows := append([]domain.CashFlow(nil), s.CashFlows...)
	sort.SliceStable(flows, func(i, j int) bool { return flows[i].Period < flows[j].Period })

	for _, cfl := range flows {
		pv := calculation.PresentValue(cfl.Amount, cfl.Period, rate)
		sb.WriteString(fmt.Sprintf("%-8d %-28s %16s %16s\n",
			cfl.Period, cfl.Label, FormatCurrency(cfl.Amount), FormatCurrency(pv)))
	}
	sb.WriteString(fmt.Sprintf("%-8s %-28s %16s %16s\n",
		"", "TOTAL (NPV)", "", FormatCurrency(s.NPV)))
	sb.WriteString("\n")
}

// ConsoleLiteFormatter renders just the summary line per strategy and the
// decision sentence.
type ConsoleLiteFormatter struct{}

func (ConsoleLiteFormatter) Name() string { return "console-lite" }

func (ConsoleLiteFormatter) Format(result *domain.AnalysisResult) ([]byte, error) {
	var sb strings.Builder
	for _, s := range result.Strategies {
		marker := " "
		if result.Best != nil && s.KeepOldYears == result.Best.KeepOldYears {
			marker = "*"
		}
		sb.WriteString(fmt.Sprintf("%s k=%d  PWC %s\n", marker, s.KeepOldYears, FormatCurrency(s.PresentWorthCost)))
	}
	sb.WriteString(result.Recommendation() + "\n")
	return []byte(sb.String()), nil
}
