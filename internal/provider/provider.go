// Package provider supplies portfolio data to the dashboard.
//
// Mock serves static fixtures after a simulated network delay and never
// fails. Remote fetches the same shapes from an HTTP backend and surfaces
// transport and payload failures as distinguishable errors.
package provider

import (
	"context"
	"errors"

	"github.com/bobmcallan/vire-dashboard/internal/models"
)

// PortfolioSummaryProvider produces the aggregate portfolio snapshot.
type PortfolioSummaryProvider interface {
	FetchPortfolioSummary(ctx context.Context) (*models.PortfolioSummary, error)
}

// HoldingsProvider produces the ordered list of positions.
type HoldingsProvider interface {
	FetchHoldings(ctx context.Context) ([]models.Holding, error)
}

// Provider serves both dashboard data sets.
type Provider interface {
	PortfolioSummaryProvider
	HoldingsProvider
}

var (
	// ErrUnavailable marks transport failures and non-200 responses.
	ErrUnavailable = errors.New("portfolio backend unavailable")
	// ErrMalformed marks payloads that could not be decoded or failed validation.
	ErrMalformed = errors.New("malformed portfolio payload")
)
