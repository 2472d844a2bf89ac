// Package fixtures holds the static data served by the mock providers.
package fixtures

import (
	"errors"
	"fmt"
	"os"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/bobmcallan/vire-dashboard/internal/models"
)

// Set is one complete fixture: the summary and the holdings behind it.
type Set struct {
	Summary  models.PortfolioSummary `toml:"summary"`
	Holdings []models.Holding        `toml:"holdings"`
}

// Clone returns a deep copy.
func (s *Set) Clone() *Set {
	return &Set{
		Summary:  *s.Summary.Clone(),
		Holdings: models.CloneHoldings(s.Holdings),
	}
}

// Validate checks the summary and holdings shape. Problems in both are
// reported together.
func (s *Set) Validate() error {
	return errors.Join(
		models.ValidateSummary(&s.Summary),
		models.ValidateHoldings(s.Holdings),
	)
}

// Default returns a fresh copy of the reference fixture.
func Default() *Set {
	return &Set{
		Summary: models.PortfolioSummary{
			TotalInvested: 50000,
			TotalGain:     6200,
			AllocationByIndustry: []models.Allocation{
				{Name: "Technology", Value: 25000},
				{Name: "Healthcare", Value: 10000},
				{Name: "Financials", Value: 8000},
				{Name: "Energy", Value: 7000},
			},
			AllocationBySector: []models.Allocation{
				{Name: "Information Technology", Value: 20000},
				{Name: "Consumer Discretionary", Value: 12000},
				{Name: "Health Care", Value: 10000},
				{Name: "Communication Services", Value: 8000},
			},
			AllocationByCompany: []models.Allocation{
				{Name: "Apple", Value: 15000},
				{Name: "Microsoft", Value: 12000},
				{Name: "Amazon", Value: 10000},
				{Name: "Tesla", Value: 8000},
				{Name: "Other", Value: 5000},
			},
		},
		Holdings: []models.Holding{
			{
				Symbol:       "AAPL",
				Quantity:     50,
				CurrentPrice: 180,
				MarketValue:  9000,
				GainLoss:     1200,
				Sparkline:    []float64{170, 172, 175, 180, 178, 182, 180},
			},
			{
				Symbol:       "MSFT",
				Quantity:     25,
				CurrentPrice: 380,
				MarketValue:  9500,
				GainLoss:     1800,
				Sparkline:    []float64{360, 365, 370, 368, 375, 378, 380},
			},
			{
				Symbol:       "TSLA",
				Quantity:     40,
				CurrentPrice: 250,
				MarketValue:  10000,
				GainLoss:     -800,
				Sparkline:    []float64{270, 265, 260, 255, 258, 252, 250},
			},
			{
				Symbol:       "AMZN",
				Quantity:     60,
				CurrentPrice: 145,
				MarketValue:  8700,
				GainLoss:     4000,
				Sparkline:    []float64{130, 133, 137, 140, 142, 144, 145},
			},
		},
	}
}

// Load reads a TOML fixture file and validates it.
func Load(path string) (*Set, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read fixture file %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes a TOML fixture and validates it.
func Parse(data []byte) (*Set, error) {
	var set Set
	if err := toml.Unmarshal(data, &set); err != nil {
		return nil, fmt.Errorf("failed to parse fixture: %w", err)
	}
	if err := set.Validate(); err != nil {
		return nil, err
	}
	return &set, nil
}
