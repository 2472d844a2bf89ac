package models

import (
	"fmt"
	"math"
	"strings"
)

// ValidationError lists every structural problem found in a payload.
type ValidationError struct {
	Subject  string
	Problems []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Subject, strings.Join(e.Problems, "; "))
}

func (e *ValidationError) add(format string, args ...interface{}) {
	e.Problems = append(e.Problems, fmt.Sprintf(format, args...))
}

func (e *ValidationError) orNil() error {
	if len(e.Problems) == 0 {
		return nil
	}
	return e
}

// ValidateSummary checks the shape the view layer relies on. Allocation
// sums are not checked; see AllocationDrift.
func ValidateSummary(s *PortfolioSummary) error {
	verr := &ValidationError{Subject: "portfolio summary"}
	if s == nil {
		verr.add("summary is missing")
		return verr
	}
	if !finite(s.TotalInvested) {
		verr.add("totalInvested is not finite (%v)", s.TotalInvested)
	} else if s.TotalInvested < 0 {
		verr.add("totalInvested is negative (%v)", s.TotalInvested)
	}
	if !finite(s.TotalGain) {
		verr.add("totalGain is not finite (%v)", s.TotalGain)
	}
	for _, kind := range AllocationKinds {
		breakdown := s.Breakdown(kind)
		if len(breakdown) == 0 {
			verr.add("allocation by %s is empty", kind)
			continue
		}
		for i, a := range breakdown {
			if strings.TrimSpace(a.Name) == "" {
				verr.add("allocation by %s [%d] has no name", kind, i)
			}
			if !finite(a.Value) {
				verr.add("allocation by %s [%d] value is not finite (%v)", kind, i, a.Value)
			}
		}
	}
	return verr.orNil()
}

// ValidateHoldings checks symbols are present and unique (ignoring case),
// that every number is finite and that quantities and prices are
// non-negative.
func ValidateHoldings(holdings []Holding) error {
	verr := &ValidationError{Subject: "holdings"}
	seen := make(map[string]bool, len(holdings))
	for i, h := range holdings {
		key := strings.ToUpper(h.Symbol)
		if h.Symbol == "" {
			verr.add("holding [%d] has no symbol", i)
		} else if seen[key] {
			verr.add("duplicate symbol %s", h.Symbol)
		}
		seen[key] = true

		if !finite(h.Quantity) {
			verr.add("%s: quantity is not finite (%v)", h.Symbol, h.Quantity)
		} else if h.Quantity < 0 {
			verr.add("%s: negative quantity %v", h.Symbol, h.Quantity)
		}
		if !finite(h.CurrentPrice) {
			verr.add("%s: currentPrice is not finite (%v)", h.Symbol, h.CurrentPrice)
		} else if h.CurrentPrice < 0 {
			verr.add("%s: negative currentPrice %v", h.Symbol, h.CurrentPrice)
		}
		if !finite(h.MarketValue) {
			verr.add("%s: marketValue is not finite (%v)", h.Symbol, h.MarketValue)
		}
		if !finite(h.GainLoss) {
			verr.add("%s: gainLoss is not finite (%v)", h.Symbol, h.GainLoss)
		}
		for j, v := range h.Sparkline {
			if !finite(v) {
				verr.add("%s: sparkline [%d] is not finite (%v)", h.Symbol, j, v)
			}
		}
	}
	return verr.orNil()
}

// finite reports whether v can be encoded as a JSON number.
func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
