package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/bobmcallan/vire-dashboard/internal/common"
	"github.com/bobmcallan/vire-dashboard/internal/models"
)

const (
	DefaultRemoteTimeout   = 10 * time.Second
	DefaultRemoteRateLimit = 5 // requests per second

	summaryPath  = "/api/portfolio/summary"
	holdingsPath = "/api/portfolio/holdings"

	maxResponseBytes = 1 << 20
)

// Remote fetches dashboard data from an HTTP backend serving the same JSON
// shapes as the mock. Failures are returned to the caller, never retried.
type Remote struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
	logger     *common.Logger
}

// RemoteOption configures a Remote.
type RemoteOption func(*Remote)

// WithBaseURL sets the backend base URL.
func WithBaseURL(baseURL string) RemoteOption {
	return func(r *Remote) {
		r.baseURL = strings.TrimRight(baseURL, "/")
	}
}

// WithTimeout sets the HTTP timeout.
func WithTimeout(timeout time.Duration) RemoteOption {
	return func(r *Remote) {
		r.httpClient.Timeout = timeout
	}
}

// WithRateLimit caps outgoing requests per second. Zero or less disables the limit.
func WithRateLimit(requestsPerSecond int) RemoteOption {
	return func(r *Remote) {
		if requestsPerSecond <= 0 {
			r.limiter = rate.NewLimiter(rate.Inf, 0)
			return
		}
		r.limiter = rate.NewLimiter(rate.Limit(requestsPerSecond), requestsPerSecond)
	}
}

// WithRemoteLogger sets the logger.
func WithRemoteLogger(logger *common.Logger) RemoteOption {
	return func(r *Remote) {
		r.logger = logger
	}
}

// NewRemote creates a provider backed by the API at baseURL.
func NewRemote(baseURL string, opts ...RemoteOption) *Remote {
	r := &Remote{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: DefaultRemoteTimeout,
		},
		limiter: rate.NewLimiter(rate.Limit(DefaultRemoteRateLimit), DefaultRemoteRateLimit),
		logger:  common.NewSilentLogger(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// APIError is a non-200 response from the backend. It matches ErrUnavailable.
type APIError struct {
	StatusCode int
	Message    string
	Endpoint   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("portfolio API error: %s (status: %d, endpoint: %s)", e.Message, e.StatusCode, e.Endpoint)
}

// Is lets errors.Is(err, ErrUnavailable) match API errors.
func (e *APIError) Is(target error) bool {
	return target == ErrUnavailable
}

// FetchPortfolioSummary fetches and validates the summary.
func (r *Remote) FetchPortfolioSummary(ctx context.Context) (*models.PortfolioSummary, error) {
	var summary models.PortfolioSummary
	if err := r.get(ctx, summaryPath, &summary); err != nil {
		return nil, err
	}
	if err := models.ValidateSummary(&summary); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformed, err)
	}
	return &summary, nil
}

// FetchHoldings fetches and validates the holdings.
func (r *Remote) FetchHoldings(ctx context.Context) ([]models.Holding, error) {
	var holdings []models.Holding
	if err := r.get(ctx, holdingsPath, &holdings); err != nil {
		return nil, err
	}
	if holdings == nil {
		return nil, fmt.Errorf("%w: holdings payload is null", ErrMalformed)
	}
	if err := models.ValidateHoldings(holdings); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformed, err)
	}
	return holdings, nil
}

// get performs a rate-limited GET and decodes the JSON body into result.
func (r *Remote) get(ctx context.Context, path string, result interface{}) error {
	if err := r.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limit wait: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	r.logger.Debug().Str("url", path).Msg("portfolio API request")

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return fmt.Errorf("%w: failed to read response: %w", ErrUnavailable, err)
	}

	if resp.StatusCode != http.StatusOK {
		return &APIError{
			StatusCode: resp.StatusCode,
			Message:    strings.TrimSpace(string(body)),
			Endpoint:   path,
		}
	}

	if err := json.Unmarshal(body, result); err != nil {
		return fmt.Errorf("%w: failed to decode %s: %w", ErrMalformed, path, err)
	}
	return nil
}
