package main

import (
	"bytes"
	"context"
	"flag"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bobmcallan/vire-dashboard/internal/common"
	"github.com/bobmcallan/vire-dashboard/internal/models"
	"github.com/bobmcallan/vire-dashboard/internal/provider"
)

func TestConfigSearchPaths_Deduplicated(t *testing.T) {
	paths := configSearchPaths()
	require.NotEmpty(t, paths)

	seen := map[string]bool{}
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		require.NoError(t, err)
		assert.False(t, seen[abs], "duplicate search path %s", p)
		seen[abs] = true
	}

	want, _ := filepath.Abs(configFileName)
	assert.True(t, seen[want], "expected %s in search paths", configFileName)
}

func TestFindConfig_FirstExistingWins(t *testing.T) {
	dir := t.TempDir()
	second := filepath.Join(dir, "b.toml")
	require.NoError(t, os.WriteFile(second, nil, 0644))

	path, ok := findConfig([]string{filepath.Join(dir, "a.toml"), second})
	assert.True(t, ok)
	assert.Equal(t, second, path)

	_, ok = findConfig([]string{filepath.Join(dir, "missing.toml")})
	assert.False(t, ok)
}

func TestParseFlags(t *testing.T) {
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	opts, err := parseFlags(fs, []string{"-c", "a.toml", "-config", "b.toml", "-port", "9000", "-p", "9001", "-host", "0.0.0.0"})
	require.NoError(t, err)
	assert.Equal(t, configPaths{"a.toml", "b.toml"}, opts.configFiles)
	assert.Equal(t, 9001, opts.port, "shorthand wins")
	assert.Equal(t, "0.0.0.0", opts.host)
	assert.False(t, opts.version)
}

type brokenHoldings struct{ *provider.Mock }

func (brokenHoldings) FetchHoldings(context.Context) ([]models.Holding, error) {
	return nil, provider.ErrUnavailable
}

func TestWarmup_LogsPortfolio(t *testing.T) {
	var buf bytes.Buffer
	logger := common.NewLoggerWithOutput("info", &buf)

	warmup(logger, provider.NewMock(provider.WithDelay(0)))
	assert.Eventually(t, func() bool {
		return strings.Contains(buf.String(), "portfolio source ready")
	}, time.Second, 10*time.Millisecond)
}

func TestWarmup_BackendFailureDoesNotPanic(t *testing.T) {
	var buf bytes.Buffer
	logger := common.NewLoggerWithOutput("info", &buf)

	warmup(logger, brokenHoldings{provider.NewMock(provider.WithDelay(0))})
	assert.Eventually(t, func() bool {
		return strings.Contains(buf.String(), "holdings unavailable at startup")
	}, time.Second, 10*time.Millisecond)
}
