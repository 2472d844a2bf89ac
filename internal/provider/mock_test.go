package provider

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bobmcallan/vire-dashboard/internal/clock"
	"github.com/bobmcallan/vire-dashboard/internal/fixtures"
	"github.com/bobmcallan/vire-dashboard/internal/models"
)

var epoch = time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)

func newFakeClockMock(opts ...MockOption) (*Mock, clock.Fake) {
	vc := clock.NewFake(epoch)
	return NewMock(append([]MockOption{WithClock(vc)}, opts...)...), vc
}

func TestNewMock_Defaults(t *testing.T) {
	m := NewMock()
	assert.Equal(t, DefaultDelay, m.Delay())
	assert.Equal(t, 500*time.Millisecond, m.Delay())
}

func TestWithDelay_NegativeClampsToZero(t *testing.T) {
	m := NewMock(WithDelay(-time.Second))
	assert.Equal(t, time.Duration(0), m.Delay())
}

func TestFetchHoldings_ReferenceFixture(t *testing.T) {
	m := NewMock(WithDelay(0))

	holdings, err := m.FetchHoldings(context.Background())
	require.NoError(t, err)
	require.Len(t, holdings, 4)

	assert.Equal(t, models.Holding{
		Symbol:       "AAPL",
		Quantity:     50,
		CurrentPrice: 180,
		MarketValue:  9000,
		GainLoss:     1200,
		Sparkline:    []float64{170, 172, 175, 180, 178, 182, 180},
	}, holdings[0])

	for _, h := range holdings {
		assert.InDelta(t, h.Quantity*h.CurrentPrice, h.MarketValue, 1e-9, h.Symbol)
	}
}

func TestFetchPortfolioSummary_ReferenceFixture(t *testing.T) {
	m := NewMock(WithDelay(0))

	summary, err := m.FetchPortfolioSummary(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 50000.0, summary.TotalInvested)
	assert.Equal(t, 6200.0, summary.TotalGain)
	assert.Equal(t, "50000", summary.AllocationTotal(models.AllocationIndustry).String())

	for _, kind := range models.AllocationKinds {
		breakdown := summary.Breakdown(kind)
		require.NotEmpty(t, breakdown, "allocation by %s", kind)
		for _, a := range breakdown {
			assert.NotEmpty(t, a.Name)
		}
	}
}

func TestMock_ResolvesOnlyAfterDelay(t *testing.T) {
	m, vc := newFakeClockMock(WithDelay(500 * time.Millisecond))

	f := Go(func() ([]models.Holding, error) {
		return m.FetchHoldings(context.Background())
	})

	vc.BlockUntil(1)
	assert.False(t, f.Resolved())

	vc.Advance(499 * time.Millisecond)
	assert.False(t, f.Resolved())

	vc.Advance(time.Millisecond)
	holdings, err := f.Wait()
	require.NoError(t, err)
	assert.Len(t, holdings, 4)
	assert.Equal(t, epoch.Add(500*time.Millisecond), vc.Now())
}

func TestMock_IgnoresCancellation(t *testing.T) {
	m, vc := newFakeClockMock()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	f := Go(func() (*models.PortfolioSummary, error) {
		return m.FetchPortfolioSummary(ctx)
	})

	vc.BlockUntil(1)
	assert.False(t, f.Resolved(), "cancelled context must not cut the delay short")

	vc.Advance(DefaultDelay)
	summary, err := f.Wait()
	require.NoError(t, err)
	assert.Equal(t, 50000.0, summary.TotalInvested)
}

func TestMock_ConcurrentFetchesAreIndependent(t *testing.T) {
	m, vc := newFakeClockMock()

	summaries := make([]*Future[*models.PortfolioSummary], 5)
	holdings := make([]*Future[[]models.Holding], 5)
	for i := range summaries {
		summaries[i] = Go(func() (*models.PortfolioSummary, error) { return m.FetchPortfolioSummary(context.Background()) })
		holdings[i] = Go(func() ([]models.Holding, error) { return m.FetchHoldings(context.Background()) })
	}

	vc.BlockUntil(10)
	vc.Advance(DefaultDelay)

	first, err := summaries[0].Wait()
	require.NoError(t, err)
	for _, f := range summaries[1:] {
		s, err := f.Wait()
		require.NoError(t, err)
		assert.Equal(t, first, s)
		assert.NotSame(t, first, s)
	}

	firstHoldings, err := holdings[0].Wait()
	require.NoError(t, err)
	for _, f := range holdings[1:] {
		h, err := f.Wait()
		require.NoError(t, err)
		assert.Equal(t, firstHoldings, h)
	}
}

func TestMock_RepeatedCallsAreValueEqualAndFresh(t *testing.T) {
	m := NewMock(WithDelay(0))
	ctx := context.Background()

	a, err := m.FetchHoldings(ctx)
	require.NoError(t, err)
	a[0].Sparkline[0] = -1
	a[1].Symbol = "CHANGED"

	b, err := m.FetchHoldings(ctx)
	require.NoError(t, err)
	assert.Equal(t, 170.0, b[0].Sparkline[0])
	assert.Equal(t, "MSFT", b[1].Symbol)

	s1, err := m.FetchPortfolioSummary(ctx)
	require.NoError(t, err)
	s1.AllocationBySector[0].Value = 0

	s2, err := m.FetchPortfolioSummary(ctx)
	require.NoError(t, err)
	assert.Equal(t, 20000.0, s2.AllocationBySector[0].Value)
}

func TestMock_InjectedFixtures(t *testing.T) {
	set := fixtures.Default()
	set.Holdings = set.Holdings[:1]
	set.Summary.TotalGain = -10

	m := NewMock(WithDelay(0), WithFixtures(set))

	// Mutating the caller's set after construction has no effect.
	set.Holdings[0].Symbol = "ZZZ"

	holdings, err := m.FetchHoldings(context.Background())
	require.NoError(t, err)
	require.Len(t, holdings, 1)
	assert.Equal(t, "AAPL", holdings[0].Symbol)

	summary, err := m.FetchPortfolioSummary(context.Background())
	require.NoError(t, err)
	assert.Equal(t, -10.0, summary.TotalGain)
}

func TestMock_RealClockLatency(t *testing.T) {
	delay := 20 * time.Millisecond
	m := NewMock(WithDelay(delay))

	start := time.Now()
	_, err := m.FetchHoldings(context.Background())
	require.NoError(t, err)
	assert.GreaterOrEqual(t, time.Since(start), delay)
}

func TestMock_SatisfiesProvider(t *testing.T) {
	var p Provider = NewMock()
	assert.NotNil(t, p)
}
