package api

import (
	"github.com/labstack/echo/v4"

	"InvestAgent/internal/domain/models"
	xhttp "InvestAgent/pkg/http"
)

// ListConfigs returns the caller's stored broker credentials.
func (h *Handler) ListConfigs(c echo.Context) error {
	userID, err := h.userID(c)
	if err != nil {
		return h.respondError(c, err)
	}

	configs, err := h.configs.List(c.Request().Context(), userID)
	if err != nil {
		return h.respondError(c, err)
	}
	return xhttp.SuccessResponse(c, configs)
}

// UpsertConfig stores broker credentials, replacing an existing record for
// the same provider.
func (h *Handler) UpsertConfig(c echo.Context) error {
	userID, err := h.userID(c)
	if err != nil {
		return h.respondError(c, err)
	}

	req := &models.TradingConfigRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	cfg, err := h.configs.Upsert(c.Request().Context(), userID, *req)
	if err != nil {
		return h.respondError(c, err)
	}
	return xhttp.CreatedResponse(c, cfg)
}

// DeleteConfig removes one credential record; not-owned and missing are both 404.
func (h *Handler) DeleteConfig(c echo.Context) error {
	userID, err := h.userID(c)
	if err != nil {
		return h.respondError(c, err)
	}

	if err := h.configs.Delete(c.Request().Context(), userID, c.Param("id")); err != nil {
		return h.respondError(c, err)
	}
	return xhttp.SuccessResponse(c, map[string]string{"message": "Configuration deleted"})
}

// Trades returns the caller's executed orders, newest first.
func (h *Handler) Trades(c echo.Context) error {
	userID, err := h.userID(c)
	if err != nil {
		return h.respondError(c, err)
	}

	req := &models.TradesRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	trades, err := h.trades.List(c.Request().Context(), userID, req.Limit)
	if err != nil {
		return h.respondError(c, err)
	}
	return xhttp.SuccessResponse(c, trades)
}
