package app

import (
	"fmt"

	"github.com/bobmcallan/vire-dashboard/internal/common"
	"github.com/bobmcallan/vire-dashboard/internal/config"
	"github.com/bobmcallan/vire-dashboard/internal/fixtures"
	"github.com/bobmcallan/vire-dashboard/internal/handlers"
	"github.com/bobmcallan/vire-dashboard/internal/mcp"
	"github.com/bobmcallan/vire-dashboard/internal/provider"
)

// App holds all application components and dependencies.
type App struct {
	Config   *config.Config
	Logger   *common.Logger
	Provider provider.Provider

	// HTTP handlers
	HealthHandler    *handlers.HealthHandler
	VersionHandler   *handlers.VersionHandler
	PortfolioHandler *handlers.PortfolioHandler
	MCPHandler       *mcp.Handler
}

// New initializes the application with all dependencies.
func New(cfg *config.Config, logger *common.Logger) (*App, error) {
	a := &App{
		Config: cfg,
		Logger: logger,
	}

	p, err := NewProvider(cfg, logger)
	if err != nil {
		return nil, err
	}
	a.Provider = p

	a.initHandlers()

	logger.Info().
		Str("provider", cfg.Provider.Source).
		Msg("application initialization complete")

	return a, nil
}

// NewProvider builds the provider selected by cfg.Provider.Source.
func NewProvider(cfg *config.Config, logger *common.Logger) (provider.Provider, error) {
	switch cfg.Provider.Source {
	case config.SourceMock, "":
		opts := []provider.MockOption{
			provider.WithDelay(cfg.Provider.GetDelay()),
			provider.WithMockLogger(logger),
		}
		if cfg.Provider.Fixtures != "" {
			set, err := fixtures.Load(cfg.Provider.Fixtures)
			if err != nil {
				return nil, fmt.Errorf("failed to load fixtures: %w", err)
			}
			opts = append(opts, provider.WithFixtures(set))
			logger.Info().
				Str("path", cfg.Provider.Fixtures).
				Int("holdings", len(set.Holdings)).
				Msg("fixtures loaded")
		}
		m := provider.NewMock(opts...)
		if cfg.IsDevMode() {
			logger.Warn().Msg("serving mock portfolio data")
		}
		logger.Debug().Int("delay_ms", int(m.Delay().Milliseconds())).Msg("mock provider ready")
		return m, nil

	case config.SourceRemote:
		remote := provider.NewRemote(cfg.Provider.Remote.URL,
			provider.WithTimeout(cfg.Provider.Remote.GetTimeout()),
			provider.WithRateLimit(cfg.Provider.Remote.RateLimit),
			provider.WithRemoteLogger(logger),
		)
		logger.Info().Str("url", cfg.Provider.Remote.URL).Msg("remote provider ready")
		return remote, nil
	}
	return nil, fmt.Errorf("unknown provider source %q", cfg.Provider.Source)
}

// initHandlers initializes all HTTP handlers.
func (a *App) initHandlers() {
	a.HealthHandler = handlers.NewHealthHandler()
	a.VersionHandler = handlers.NewVersionHandler()
	a.PortfolioHandler = handlers.NewPortfolioHandler(a.Logger, a.Provider)
	a.MCPHandler = mcp.NewHandler(a.Provider, a.Logger)

	a.Logger.Debug().Msg("HTTP handlers initialized")
}

// Close closes all application resources.
func (a *App) Close() error {
	return nil
}
