// Package models defines the data exchanged between providers and the dashboard.
package models

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Allocation is one named slice of invested capital.
type Allocation struct {
	Name  string  `json:"name" toml:"name"`
	Value float64 `json:"value" toml:"value"`
}

// AllocationKind names one of the summary's breakdowns.
type AllocationKind string

const (
	AllocationIndustry AllocationKind = "industry"
	AllocationSector   AllocationKind = "sector"
	AllocationCompany  AllocationKind = "company"
)

// AllocationKinds lists the breakdowns in display order.
var AllocationKinds = []AllocationKind{AllocationIndustry, AllocationSector, AllocationCompany}

// PortfolioSummary is the aggregate snapshot shown on the portfolio page.
// The JSON names are consumed as-is by the view layer.
type PortfolioSummary struct {
	TotalInvested        float64      `json:"totalInvested" toml:"total_invested"`
	TotalGain            float64      `json:"totalGain" toml:"total_gain"`
	AllocationByIndustry []Allocation `json:"allocationByIndustry" toml:"allocation_by_industry"`
	AllocationBySector   []Allocation `json:"allocationBySector" toml:"allocation_by_sector"`
	AllocationByCompany  []Allocation `json:"allocationByCompany" toml:"allocation_by_company"`
}

// Breakdown returns the allocation slice for kind, or nil for an unknown kind.
func (s *PortfolioSummary) Breakdown(kind AllocationKind) []Allocation {
	switch kind {
	case AllocationIndustry:
		return s.AllocationByIndustry
	case AllocationSector:
		return s.AllocationBySector
	case AllocationCompany:
		return s.AllocationByCompany
	}
	return nil
}

// AllocationTotal sums a breakdown exactly.
func (s *PortfolioSummary) AllocationTotal(kind AllocationKind) decimal.Decimal {
	total := decimal.Zero
	for _, a := range s.Breakdown(kind) {
		total = total.Add(decimal.NewFromFloat(a.Value))
	}
	return total
}

// AllocationDrift is the breakdown total minus TotalInvested. Zero when the
// breakdown partitions the invested capital exactly.
func (s *PortfolioSummary) AllocationDrift(kind AllocationKind) decimal.Decimal {
	return s.AllocationTotal(kind).Sub(decimal.NewFromFloat(s.TotalInvested))
}

// Clone returns a deep copy.
func (s *PortfolioSummary) Clone() *PortfolioSummary {
	if s == nil {
		return nil
	}
	c := *s
	c.AllocationByIndustry = cloneAllocations(s.AllocationByIndustry)
	c.AllocationBySector = cloneAllocations(s.AllocationBySector)
	c.AllocationByCompany = cloneAllocations(s.AllocationByCompany)
	return &c
}

func cloneAllocations(in []Allocation) []Allocation {
	if in == nil {
		return nil
	}
	out := make([]Allocation, len(in))
	copy(out, in)
	return out
}

// Holding is a single portfolio position.
type Holding struct {
	Symbol       string    `json:"symbol" toml:"symbol"`
	Quantity     float64   `json:"quantity" toml:"quantity"`
	CurrentPrice float64   `json:"currentPrice" toml:"current_price"`
	MarketValue  float64   `json:"marketValue" toml:"market_value"`
	GainLoss     float64   `json:"gainLoss" toml:"gain_loss"`
	Sparkline    []float64 `json:"sparkline" toml:"sparkline"` // chronological price samples
}

// ExpectedMarketValue is quantity times current price.
func (h Holding) ExpectedMarketValue() float64 {
	return decimal.NewFromFloat(h.Quantity).Mul(decimal.NewFromFloat(h.CurrentPrice)).InexactFloat64()
}

// Clone returns a deep copy.
func (h Holding) Clone() Holding {
	if h.Sparkline != nil {
		h.Sparkline = append([]float64(nil), h.Sparkline...)
	}
	return h
}

// CloneHoldings deep-copies a holdings sequence, preserving order.
func CloneHoldings(in []Holding) []Holding {
	if in == nil {
		return nil
	}
	out := make([]Holding, len(in))
	for i, h := range in {
		out[i] = h.Clone()
	}
	return out
}

// FindHolding returns the holding with the given symbol, ignoring case.
func FindHolding(holdings []Holding, symbol string) (Holding, bool) {
	for _, h := range holdings {
		if strings.EqualFold(h.Symbol, symbol) {
			return h, true
		}
	}
	return Holding{}, false
}
