package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/bobmcallan/vire-dashboard/internal/app"
	"github.com/bobmcallan/vire-dashboard/internal/common"
	"github.com/bobmcallan/vire-dashboard/internal/config"
	"github.com/bobmcallan/vire-dashboard/internal/models"
	"github.com/bobmcallan/vire-dashboard/internal/provider"
	"github.com/bobmcallan/vire-dashboard/internal/server"
)

const (
	configFileName  = "vire-dashboard.toml"
	shutdownTimeout = 10 * time.Second
	warmupTimeout   = 15 * time.Second
)

// configPaths collects repeated -config flags.
type configPaths []string

func (c *configPaths) String() string { return fmt.Sprintf("%v", *c) }

func (c *configPaths) Set(value string) error {
	*c = append(*c, value)
	return nil
}

type options struct {
	configFiles configPaths
	port        int
	host        string
	version     bool
}

func parseFlags(fs *flag.FlagSet, args []string) (*options, error) {
	opts := &options{}
	var shortPort int
	fs.Var(&opts.configFiles, "config", "Configuration file path (repeatable)")
	fs.Var(&opts.configFiles, "c", "Configuration file path (shorthand)")
	fs.IntVar(&opts.port, "port", 0, "Server port (overrides config)")
	fs.IntVar(&shortPort, "p", 0, "Server port (shorthand)")
	fs.StringVar(&opts.host, "host", "", "Server host (overrides config)")
	fs.BoolVar(&opts.version, "version", false, "Print version information")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if shortPort != 0 {
		opts.port = shortPort
	}
	return opts, nil
}

func main() {
	opts, err := parseFlags(flag.CommandLine, os.Args[1:])
	if err != nil {
		os.Exit(2)
	}
	if opts.version {
		fmt.Printf("vire-dashboard version %s\n", config.GetFullVersion())
		return
	}
	if err := run(opts); err != nil {
		fmt.Fprintf(os.Stderr, "vire-dashboard: %v\n", err)
		os.Exit(1)
	}
}

func run(opts *options) error {
	files := opts.configFiles
	if len(files) == 0 {
		if path, ok := findConfig(configSearchPaths()); ok {
			files = append(files, path)
		}
	}

	cfg, err := config.LoadFromFiles(files...)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	config.ApplyFlagOverrides(cfg, opts.port, opts.host)

	if issues := cfg.Validate(); len(issues) > 0 {
		fmt.Fprintln(os.Stderr, "Configuration error:")
		for _, issue := range issues {
			fmt.Fprintf(os.Stderr, "  - %s\n", issue)
		}
		fmt.Fprintln(os.Stderr, "Values can be set via TOML file, VIRE_* environment variables, or CLI flags.")
		return fmt.Errorf("%d configuration issue(s)", len(issues))
	}

	logger := common.NewLoggerFromConfig(cfg.LoggerConfig())
	logger.Info().
		Str("environment", cfg.Environment).
		Str("provider", cfg.Provider.Source).
		Str("config_files", files.String()).
		Msg("configuration loaded")

	application, err := app.New(cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}
	defer application.Close()

	warmup(logger, application.Provider)

	srv := server.New(application)
	serveErr := make(chan error, 1)
	go func() { serveErr <- srv.Start() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	select {
	case err := <-serveErr:
		return err
	case <-ctx.Done():
		logger.Info().Msg("shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// warmup fetches the portfolio once so the log shows what the dashboard
// will serve. A failing backend is reported but does not stop startup.
func warmup(logger *common.Logger, p provider.Provider) {
	ctx, cancel := context.WithTimeout(context.Background(), warmupTimeout)
	defer cancel()

	summaryFuture := provider.Go(func() (*models.PortfolioSummary, error) {
		return p.FetchPortfolioSummary(ctx)
	})
	holdingsFuture := provider.Go(func() ([]models.Holding, error) {
		return p.FetchHoldings(ctx)
	})

	summary, err := summaryFuture.Wait()
	if err != nil {
		logger.Warn().Str("error", err.Error()).Msg("portfolio summary unavailable at startup")
		return
	}
	holdings, err := holdingsFuture.Wait()
	if err != nil {
		logger.Warn().Str("error", err.Error()).Msg("holdings unavailable at startup")
		return
	}

	logger.Info().
		Float64("total_invested", summary.TotalInvested).
		Float64("total_gain", summary.TotalGain).
		Int("holdings", len(holdings)).
		Msg("portfolio source ready")
}

func findConfig(candidates []string) (string, bool) {
	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return path, true
		}
	}
	return "", false
}

// configSearchPaths lists config locations next to the binary, then in the
// working directory. Duplicates are dropped.
func configSearchPaths() []string {
	var dirs []string
	if exe, err := os.Executable(); err == nil {
		dirs = append(dirs, filepath.Dir(exe))
	}
	dirs = append(dirs, ".")

	seen := make(map[string]bool)
	var paths []string
	for _, dir := range dirs {
		for _, p := range []string{
			filepath.Join(dir, configFileName),
			filepath.Join(dir, "config", configFileName),
		} {
			abs, err := filepath.Abs(p)
			if err != nil {
				abs = p
			}
			if !seen[abs] {
				seen[abs] = true
				paths = append(paths, p)
			}
		}
	}
	return paths
}
