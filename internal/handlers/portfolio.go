package handlers

import (
	"net/http"
	"path"
	"strings"

	"github.com/bobmcallan/vire-dashboard/internal/chart"
	"github.com/bobmcallan/vire-dashboard/internal/common"
	"github.com/bobmcallan/vire-dashboard/internal/models"
	"github.com/bobmcallan/vire-dashboard/internal/provider"
)

// PortfolioHandler serves the portfolio summary, holdings and sparkline charts.
type PortfolioHandler struct {
	logger   *common.Logger
	provider provider.Provider
}

// NewPortfolioHandler creates a portfolio handler over p.
func NewPortfolioHandler(logger *common.Logger, p provider.Provider) *PortfolioHandler {
	if logger == nil {
		logger = common.NewSilentLogger()
	}
	return &PortfolioHandler{logger: logger, provider: p}
}

// Summary handles GET /api/portfolio/summary.
func (h *PortfolioHandler) Summary(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}
	logger := h.logger.WithCorrelationId(common.CorrelationID(r.Context()))

	summary, err := h.provider.FetchPortfolioSummary(r.Context())
	if err != nil {
		h.writeProviderError(w, logger, "portfolio_summary", err)
		return
	}

	logDrift(logger, summary)
	h.writeJSON(w, logger, summary)
}

// Overview is the combined dashboard payload.
type Overview struct {
	Summary  *models.PortfolioSummary `json:"summary"`
	Holdings []models.Holding         `json:"holdings"`
}

// Overview handles GET /api/portfolio. The summary and holdings are
// fetched concurrently, so the response takes one provider delay, not two.
func (h *PortfolioHandler) Overview(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}
	ctx := r.Context()
	logger := h.logger.WithCorrelationId(common.CorrelationID(ctx))

	summaryFuture := provider.Go(func() (*models.PortfolioSummary, error) {
		return h.provider.FetchPortfolioSummary(ctx)
	})
	holdingsFuture := provider.Go(func() ([]models.Holding, error) {
		return h.provider.FetchHoldings(ctx)
	})

	summary, err := summaryFuture.Wait()
	holdings, holdingsErr := holdingsFuture.Wait()
	if err != nil {
		h.writeProviderError(w, logger, "portfolio_summary", err)
		return
	}
	if holdingsErr != nil {
		h.writeProviderError(w, logger, "holdings", holdingsErr)
		return
	}

	logDrift(logger, summary)
	h.writeJSON(w, logger, Overview{Summary: summary, Holdings: holdings})
}

// Holdings handles GET /api/portfolio/holdings.
func (h *PortfolioHandler) Holdings(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}
	logger := h.logger.WithCorrelationId(common.CorrelationID(r.Context()))

	holdings, err := h.provider.FetchHoldings(r.Context())
	if err != nil {
		h.writeProviderError(w, logger, "holdings", err)
		return
	}

	logger.Debug().Int("count", len(holdings)).Msg("holdings served")
	h.writeJSON(w, logger, holdings)
}

// Sparkline handles GET /api/portfolio/holdings/{symbol}/{file}, where
// file is "sparkline.png" or "sparkline.svg".
func (h *PortfolioHandler) Sparkline(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}
	logger := h.logger.WithCorrelationId(common.CorrelationID(r.Context()))

	symbol := strings.ToUpper(r.PathValue("symbol"))
	file := r.PathValue("file")
	ext := path.Ext(file)
	if strings.TrimSuffix(file, ext) != "sparkline" {
		WriteError(w, http.StatusNotFound, "unknown chart "+file)
		return
	}
	format, err := chart.ParseFormat(ext)
	if err != nil {
		WriteError(w, http.StatusNotFound, err.Error())
		return
	}

	holdings, err := h.provider.FetchHoldings(r.Context())
	if err != nil {
		h.writeProviderError(w, logger, "holdings", err)
		return
	}

	holding, ok := models.FindHolding(holdings, symbol)
	if !ok {
		WriteError(w, http.StatusNotFound, "holding not found: "+symbol)
		return
	}

	img, err := chart.RenderSparkline(holding.Symbol, holding.Sparkline, format)
	if err != nil {
		logger.Warn().Str("symbol", symbol).Str("error", err.Error()).Msg("sparkline render failed")
		WriteError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	w.Header().Set("Content-Type", format.ContentType())
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	w.Write(img)
}

func (h *PortfolioHandler) writeProviderError(w http.ResponseWriter, logger *common.Logger, fetch string, err error) {
	status, message := ProviderErrorStatus(err)
	logger.Error().
		Str("fetch", fetch).
		Int("status", status).
		Str("error", err.Error()).
		Msg("portfolio fetch failed")
	WriteError(w, status, message)
}

func (h *PortfolioHandler) writeJSON(w http.ResponseWriter, logger *common.Logger, data interface{}) {
	if err := WriteJSON(w, http.StatusOK, data); err != nil {
		logger.Error().Str("error", err.Error()).Msg("failed to encode response")
	}
}

// logDrift warns for each breakdown that does not sum to totalInvested.
func logDrift(logger *common.Logger, s *models.PortfolioSummary) {
	for _, kind := range models.AllocationKinds {
		if drift := s.AllocationDrift(kind); !drift.IsZero() {
			logger.Warn().
				Str("allocation", string(kind)).
				Str("drift", drift.String()).
				Msg("allocation breakdown does not sum to total invested")
		}
	}
}
