package api

import (
	"github.com/labstack/echo/v4"

	"InvestAgent/internal/domain/models"
	xhttp "InvestAgent/pkg/http"
)

// RiskSettings returns the caller's risk singleton, seeding defaults once.
func (h *Handler) RiskSettings(c echo.Context) error {
	userID, err := h.userID(c)
	if err != nil {
		return h.respondError(c, err)
	}

	settings, err := h.settings.Risk(c.Request().Context(), userID)
	if err != nil {
		return h.respondError(c, err)
	}
	return xhttp.SuccessResponse(c, settings)
}

// UpdateRiskSettings replaces the singleton's thresholds. Identity fields are
// server-side; the payload carries thresholds only.
func (h *Handler) UpdateRiskSettings(c echo.Context) error {
	userID, err := h.userID(c)
	if err != nil {
		return h.respondError(c, err)
	}

	req := &models.RiskSettingsRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	settings, err := h.settings.UpdateRisk(c.Request().Context(), userID, *req)
	if err != nil {
		return h.respondError(c, err)
	}
	return xhttp.SuccessResponse(c, settings)
}
