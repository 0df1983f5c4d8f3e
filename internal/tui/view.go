package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/optimach/optimach/internal/output"
)

// View renders the current state of the application.
func (m Model) View() string {
	var content string
	switch m.scene {
	case SceneForm:
		content = m.renderForm()
	case SceneResults:
		content = m.renderResults()
	}

	title := TitleStyle.Render("OptiMach - Machine Replacement Analyzer")
	subtitle := SubtitleStyle.Render("Present-worth analysis: keep the old machine or buy a new one?")

	return lipgloss.JoinVertical(lipgloss.Left, title, subtitle, "", content)
}

// renderForm renders the parameter entry form.
func (m Model) renderForm() string {
	var sb strings.Builder

	sections := []struct {
		header string
		from   int
		to     int
	}{
		{"Analysis", fieldDiscountRate, fieldHorizonYears},
		{"Existing machine", fieldOldCurrentValue, fieldOldMaxYears},
		{"New machine", fieldNewPurchasePrice, fieldNewOpCostIncrease},
	}

	for _, sec := range sections {
		sb.WriteString(SectionStyle.Render(sec.header) + "\n")
		for i := sec.from; i <= sec.to; i++ {
			label := LabelStyle
			if i == m.focused {
				label = FocusedLabelStyle
			}
			sb.WriteString(fmt.Sprintf("%s %s\n", label.Render(fieldLabels[i]), m.fields[i].View()))
		}
		sb.WriteString("\n")
	}

	if m.err != nil {
		sb.WriteString(ErrorStyle.Render("Error: "+m.err.Error()) + "\n")
	}

	sb.WriteString(HelpStyle.Render("tab/shift+tab move - enter next/run - ctrl+r run - esc quit"))
	return sb.String()
}

// renderResults renders the summary table and the decision sentence.
func (m Model) renderResults() string {
	if m.result == nil {
		return ErrorStyle.Render("No results yet.")
	}

	var sb strings.Builder

	ratePct := m.result.Inputs.DiscountRate.Mul(decimal.NewFromInt(100))
	sb.WriteString(SectionStyle.Render("Present values by strategy") + "\n")
	sb.WriteString(fmt.Sprintf("  %-18s %16s %20s\n", "Keep old (years)",
		fmt.Sprintf("NPV at %s%%", ratePct.StringFixed(1)), "Present Worth Cost"))

	for _, s := range m.result.Strategies {
		row := fmt.Sprintf("  %-18d %16s %20s",
			s.KeepOldYears, output.FormatCurrency(s.NPV), output.FormatCurrency(s.PresentWorthCost))
		if m.result.Best != nil && s.KeepOldYears == m.result.Best.KeepOldYears {
			row = BestRowStyle.Render(row + "  <- best")
		}
		sb.WriteString(row + "\n")
	}

	sb.WriteString("\n")
	sb.WriteString(DecisionStyle.Render(m.result.Recommendation()) + "\n")
	sb.WriteString(HelpStyle.Render("e edit parameters - q quit"))

	return sb.String()
}
