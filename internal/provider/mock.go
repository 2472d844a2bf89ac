package provider

import (
	"context"
	"time"

	"github.com/bobmcallan/vire-dashboard/internal/clock"
	"github.com/bobmcallan/vire-dashboard/internal/common"
	"github.com/bobmcallan/vire-dashboard/internal/fixtures"
	"github.com/bobmcallan/vire-dashboard/internal/models"
)

// DefaultDelay is the simulated network latency of the mock.
const DefaultDelay = 500 * time.Millisecond

// Mock serves fixture data after a fixed delay. It holds no mutable state:
// every call returns a fresh copy of the fixture.
type Mock struct {
	delay    time.Duration
	clock    clock.Clock
	fixtures *fixtures.Set
	logger   *common.Logger
}

// MockOption configures a Mock.
type MockOption func(*Mock)

// WithDelay sets the simulated latency. Negative values are treated as zero.
func WithDelay(d time.Duration) MockOption {
	return func(m *Mock) {
		if d < 0 {
			d = 0
		}
		m.delay = d
	}
}

// WithClock sets the clock used to wait out the delay.
func WithClock(c clock.Clock) MockOption {
	return func(m *Mock) {
		m.clock = c
	}
}

// WithFixtures replaces the reference fixture. The set is copied.
func WithFixtures(set *fixtures.Set) MockOption {
	return func(m *Mock) {
		if set != nil {
			m.fixtures = set.Clone()
		}
	}
}

// WithMockLogger sets the logger.
func WithMockLogger(logger *common.Logger) MockOption {
	return func(m *Mock) {
		m.logger = logger
	}
}

// NewMock creates a mock provider with the reference fixture and DefaultDelay.
func NewMock(opts ...MockOption) *Mock {
	m := &Mock{
		delay:    DefaultDelay,
		clock:    clock.Real(),
		fixtures: fixtures.Default(),
		logger:   common.NewSilentLogger(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Delay returns the configured latency.
func (m *Mock) Delay() time.Duration {
	return m.delay
}

// FetchPortfolioSummary waits out the delay and returns the fixture summary.
// The delay is not interrupted by ctx and the error is always nil.
func (m *Mock) FetchPortfolioSummary(_ context.Context) (*models.PortfolioSummary, error) {
	m.wait("portfolio_summary")
	return m.fixtures.Summary.Clone(), nil
}

// FetchHoldings waits out the delay and returns the fixture holdings.
// The delay is not interrupted by ctx and the error is always nil.
func (m *Mock) FetchHoldings(_ context.Context) ([]models.Holding, error) {
	m.wait("holdings")
	return models.CloneHoldings(m.fixtures.Holdings), nil
}

func (m *Mock) wait(what string) {
	start := m.clock.Now()
	if m.delay > 0 {
		m.clock.Sleep(m.delay)
	}
	m.logger.Debug().
		Str("fetch", what).
		Int("delay_ms", int(m.delay.Milliseconds())).
		Int("elapsed_ms", int(m.clock.Now().Sub(start).Milliseconds())).
		Msg("mock fetch resolved")
}
