package mcp

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/bobmcallan/vire-dashboard/internal/common"
	"github.com/bobmcallan/vire-dashboard/internal/config"
	"github.com/bobmcallan/vire-dashboard/internal/models"
	"github.com/bobmcallan/vire-dashboard/internal/provider"
)

// errorResult creates an MCP error result.
func errorResult(message string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.NewTextContent(message),
		},
		IsError: true,
	}
}

// jsonResult marshals v into a single text content block.
func jsonResult(v interface{}) *mcp.CallToolResult {
	out, err := json.Marshal(v)
	if err != nil {
		return errorResult("failed to marshal result: " + err.Error())
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{mcp.NewTextContent(string(out))},
	}
}

// Tools returns the tool definitions in registration order.
func Tools() []mcp.Tool {
	return []mcp.Tool{
		PortfolioSummaryTool(),
		HoldingsTool(),
		VersionTool(),
	}
}

// RegisterTools adds every tool to s.
func RegisterTools(s *server.MCPServer, p provider.Provider, logger *common.Logger) {
	s.AddTool(PortfolioSummaryTool(), PortfolioSummaryToolHandler(p, logger))
	s.AddTool(HoldingsTool(), HoldingsToolHandler(p, logger))
	s.AddTool(VersionTool(), VersionToolHandler())
}

// PortfolioSummaryTool returns the get_portfolio_summary definition.
func PortfolioSummaryTool() mcp.Tool {
	return mcp.NewTool("get_portfolio_summary",
		mcp.WithDescription("Get the portfolio summary: total invested, total gain, and allocation breakdowns by industry, sector and company."),
	)
}

// PortfolioSummaryToolHandler fetches the summary from p.
func PortfolioSummaryToolHandler(p provider.PortfolioSummaryProvider, logger *common.Logger) server.ToolHandlerFunc {
	return func(ctx context.Context, r mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		summary, err := p.FetchPortfolioSummary(ctx)
		if err != nil {
			logger.Warn().Str("tool", "get_portfolio_summary").Str("error", err.Error()).Msg("tool fetch failed")
			return errorResult("failed to fetch portfolio summary: " + err.Error()), nil
		}
		return jsonResult(summary), nil
	}
}

// HoldingsTool returns the get_holdings definition.
func HoldingsTool() mcp.Tool {
	return mcp.NewTool("get_holdings",
		mcp.WithDescription("Get portfolio holdings with quantity, price, market value, gain/loss and a 7-point price sparkline."),
		mcp.WithString("symbol",
			mcp.Description("Optional ticker symbol (e.g. AAPL) to return a single holding"),
		),
	)
}

// HoldingsToolHandler fetches holdings from p, optionally filtered by symbol.
func HoldingsToolHandler(p provider.HoldingsProvider, logger *common.Logger) server.ToolHandlerFunc {
	return func(ctx context.Context, r mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		holdings, err := p.FetchHoldings(ctx)
		if err != nil {
			logger.Warn().Str("tool", "get_holdings").Str("error", err.Error()).Msg("tool fetch failed")
			return errorResult("failed to fetch holdings: " + err.Error()), nil
		}

		symbol := strings.ToUpper(strings.TrimSpace(r.GetString("symbol", "")))
		if symbol == "" {
			return jsonResult(holdings), nil
		}

		holding, ok := models.FindHolding(holdings, symbol)
		if !ok {
			return errorResult("holding not found: " + symbol), nil
		}
		return jsonResult([]models.Holding{holding}), nil
	}
}

// VersionTool returns the get_version definition.
func VersionTool() mcp.Tool {
	return mcp.NewTool("get_version",
		mcp.WithDescription("Get vire-dashboard version information. Use this to verify connectivity."),
	)
}

// VersionToolHandler reports the build metadata.
func VersionToolHandler() server.ToolHandlerFunc {
	return func(ctx context.Context, r mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return jsonResult(config.GetVersionInfo()), nil
	}
}
