package config

import (
	"fmt"
	"os"

	"github.com/optimach/optimach/internal/domain"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// InputParser handles parsing of analysis input files.
type InputParser struct{}

// NewInputParser creates a new input parser.
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadFromFile loads a parameter set from a YAML file and validates it.
func (ip *InputParser) LoadFromFile(filename string) (*domain.MachineInputs, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	inputs := DefaultInputs()
	if err := yaml.Unmarshal(data, inputs); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := inputs.Validate(); err != nil {
		return nil, fmt.Errorf("input validation failed: %w", err)
	}

	return inputs, nil
}

// DefaultInputs returns the stock textbook parameter set: a $6,000 machine
// with three usable years left against a $22,000 replacement, compared at
// 10% over a five-year horizon.
func DefaultInputs() *domain.MachineInputs {
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
