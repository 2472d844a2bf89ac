// Package mcp exposes the portfolio providers as MCP tools over streamable HTTP.
package mcp

import (
	"net/http"

	"github.com/bobmcallan/vire-dashboard/internal/common"
	"github.com/bobmcallan/vire-dashboard/internal/config"
	"github.com/bobmcallan/vire-dashboard/internal/provider"
	mcpserver "github.com/mark3labs/mcp-go/server"
)

const serverName = "vire-dashboard"

// Handler is the HTTP handler for the MCP endpoint.
// It wraps mcp-go's StreamableHTTPServer and delegates to it.
type Handler struct {
	server     *mcpserver.MCPServer
	streamable *mcpserver.StreamableHTTPServer
	logger     *common.Logger
}

// NewHandler creates an MCP handler with the portfolio tools registered.
func NewHandler(p provider.Provider, logger *common.Logger) *Handler {
	if logger == nil {
		logger = common.NewSilentLogger()
	}

	mcpSrv := NewServer(p, logger)

	streamable := mcpserver.NewStreamableHTTPServer(mcpSrv,
		mcpserver.WithStateLess(true),
	)

	logger.Info().
		Int("tools", len(Tools())).
		Msg("MCP handler initialized")

	return &Handler{
		server:     mcpSrv,
		streamable: streamable,
		logger:     logger,
	}
}

// NewServer builds the MCP server and registers every tool.
func NewServer(p provider.Provider, logger *common.Logger) *mcpserver.MCPServer {
	mcpSrv := mcpserver.NewMCPServer(
		serverName,
		config.GetVersion(),
		mcpserver.WithToolCapabilities(true),
	)
	RegisterTools(mcpSrv, p, logger)
	return mcpSrv
}

// Server returns the underlying MCP server.
func (h *Handler) Server() *mcpserver.MCPServer {
	return h.server
}

// ServeHTTP delegates to the mcp-go StreamableHTTPServer.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.streamable.ServeHTTP(w, r)
}
