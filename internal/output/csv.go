package output

import (
	"bytes"
	"encoding/csv"
	"sort"
	"strconv"

	"github.com/optimach/optimach/internal/calculation"
	"github.com/optimach/optimach/internal/domain"
)

// CSVFormatter implements the cash-flow detail CSV output: one row per cash
// flow of every evaluated strategy, sorted by strategy then period.
type CSVFormatter struct{}

func (CSVFormatter) Name() string { return "csv" }

func (CSVFormatter) Format(result *domain.AnalysisResult) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)

	header := []string{"KeepOldYears", "Period", "Description", "Amount", "PresentValue", "StrategyNPV", "Best"}
	if err := w.Write(header); err != nil {
		return nil, err
	}

	for _, s := range result.Strategies {
		best := result.Best != nil && s.KeepOldYears == result.Best.KeepOldYears

		flows := append([]domain.CashFlow(nil), s.CashFlows...)
		sort.SliceStable(flows, func(i, j int) bool { return flows[i].Period < flows[j].Period })

		for _, cf := range flows {
			pv := calculation.PresentValue(cf.Amount, cf.Period, result.Inputs.DiscountRate)
			row := []string{
				strconv.Itoa(s.KeepOldYears),
				strconv.Itoa(cf.Period),
				cf.Label,
				cf.Amount.StringFixed(2),
				pv.StringFixed(2),
				s.NPV.StringFixed(2),
				strconv.FormatBool(best),
			}
			if err := w.Write(row); err != nil {
				return nil, err
			}
		}
	}

	w.Flush()
	return buf.Bytes(), w.Error()
}
