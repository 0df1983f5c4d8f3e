package tui

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/shopspring/decimal"

	"github.com/optimach/optimach/internal/calculation"
	"github.com/optimach/optimach/internal/domain"
)

// Scene identifies which view the application is showing.
type Scene int

const (
	SceneForm Scene = iota
	SceneResults
)

// Field indices into Model.fields; the order is the on-screen order.
const (
	fieldDiscountRate = iota
	fieldHorizonYears
	fieldOldCurrentValue
	fieldOldValueLoss
	fieldOldOpCostFirst
	fieldOldOpCostIncrease
	fieldOldMaxYears
	fieldNewPurchasePrice
	fieldNewDep1to2
	fieldNewDep3Plus
	fieldNewOpCostFirst
	fieldNewOpCostIncrease
	fieldCount
)

var fieldLabels = [fieldCount]string{
	"Interest rate (per year, as decimal)",
	"Horizon (years)",
	"Old machine: current market value ($)",
	"Old machine: value loss per year ($)",
	"Old machine: operating cost, first year ($)",
	"Old machine: operating cost increase ($/yr)",
	"Old machine: max usable years",
	"New machine: purchase price ($)",
	"New machine: depreciation, years 1-2 ($/yr)",
	"New machine: depreciation, year 3+ ($/yr)",
	"New machine: operating cost, first year ($)",
	"New machine: operating cost increase ($/yr)",
}

// Model is the entire TUI application state.
type Model struct {
	engine *calculation.Engine

	scene   Scene
	fields  [fieldCount]textinput.Model
	focused int

	result *domain.AnalysisResult
	err    error

	width  int
	height int
}

// NewModel creates the application model prefilled from the given inputs.
func NewModel(inputs *domain.MachineInputs) Model {
	m := Model{
		engine: calculation.NewEngine(),
		scene:  SceneForm,
		width:  80,
		height: 24,
	}

	defaults := [fieldCount]string{
		inputs.DiscountRate.String(),
		strconv.Itoa(inputs.HorizonYears),
		inputs.OldMachine.CurrentValue.String(),
		inputs.OldMachine.ValueLossPerYear.String(),
		inputs.OldMachine.OpCostFirstYear.String(),
		inputs.OldMachine.OpCostIncrease.String(),
		strconv.Itoa(inputs.OldMachine.MaxUsableYears),
		inputs.NewMachine.PurchasePrice.String(),
		inputs.NewMachine.DepreciationYears1to2.String(),
		inputs.NewMachine.DepreciationYear3Plus.String(),
		inputs.NewMachine.OpCostFirstYear.String(),
		inputs.NewMachine.OpCostIncrease.String(),
	}

	for i := 0; i < fieldCount; i++ {
		ti := textinput.New()
		ti.SetValue(defaults[i])
		ti.CharLimit = 16
		ti.Width = 14
		ti.Prompt = "> "
		m.fields[i] = ti
	}
	m.fields[0].Focus()

	return m
}

// Init satisfies tea.Model; there is nothing to load up front.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// parseInputs converts the form fields back into a parameter set.
func (m *Model) parseInputs() (*domain.MachineInputs, error) {
	dec := func(idx int) (decimal.Decimal, error) {
		d, err := decimal.NewFromString(m.fields[idx].Value())
		if err != nil {
			return decimal.Zero, fmt.Errorf("%s: not a number: %q", fieldLabels[idx], m.fields[idx].Value())
		}
		return d, nil
	}
	num := func(idx int) (int, error) {
		n, err := strconv.Atoi(m.fields[idx].Value())
		if err != nil {
			return 0, fmt.Errorf("%s: not a whole number: %q", fieldLabels[idx], m.fields[idx].Value())
		}
		return n, nil
	}

	inputs := &domain.MachineInputs{}
	var err error

	if inputs.DiscountRate, err = dec(fieldDiscountRate); err != nil {
		return nil, err
	}
	if inputs.HorizonYears, err = num(fieldHorizonYears); err != nil {
		return nil, err
	}
	if inputs.OldMachine.CurrentValue, err = dec(fieldOldCurrentValue); err != nil {
		return nil, err
	}
	if inputs.OldMachine.ValueLossPerYear, err = dec(fieldOldValueLoss); err != nil {
		return nil, err
	}
	if inputs.OldMachine.OpCostFirstYear, err = dec(fieldOldOpCostFirst); err != nil {
		return nil, err
	}
	if inputs.OldMachine.OpCostIncrease, err = dec(fieldOldOpCostIncrease); err != nil {
		return nil, err
	}
	if inputs.OldMachine.MaxUsableYears, err = num(fieldOldMaxYears); err != nil {
		return nil, err
	}
	if inputs.NewMachine.PurchasePrice, err = dec(fieldNewPurchasePrice); err != nil {
		return nil, err
	}
	if inputs.NewMachine.DepreciationYears1to2, err = dec(fieldNewDep1to2); err != nil {
		return nil, err
	}
	if inputs.NewMachine.DepreciationYear3Plus, err = dec(fieldNewDep3Plus); err != nil {
		return nil, err
	}
	if inputs.NewMachine.OpCostFirstYear, err = dec(fieldNewOpCostFirst); err != nil {
		return nil, err
	}
	if inputs.NewMachine.OpCostIncrease, err = dec(fieldNewOpCostIncrease); err != nil {
		return nil, err
	}

	return inputs, nil
}

// analyzeCmd runs the analysis off the update loop.
func (m *Model) analyzeCmd() tea.Cmd {
	inputs, err := m.parseInputs()
	if err != nil {
		return func() tea.Msg { return analysisCompleteMsg{Err: err} }
	}
	engine := m.engine
	return func() tea.Msg {
		result, err := engine.Analyze(inputs)
		return analysisCompleteMsg{Result: result, Err: err}
	}
}
