package api

import (
	"fmt"

	"github.com/labstack/echo/v4"

	"InvestAgent/internal/domain/models"
	xhttp "InvestAgent/pkg/http"
	xlogger "InvestAgent/pkg/logger"
)

// Signals returns the caller's signals, newest first.
func (h *Handler) Signals(c echo.Context) error {
	userID, err := h.userID(c)
	if err != nil {
		return h.respondError(c, err)
	}

	req := &models.SignalsRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	signals, err := h.signals.List(c.Request().Context(), userID, req.ActiveOnly, req.Limit)
	if err != nil {
		return h.respondError(c, err)
	}
	return xhttp.SuccessResponse(c, signals)
}

// GenerateSignals produces one fresh signal per requested symbol with a
// correlated alert each.
func (h *Handler) GenerateSignals(c echo.Context) error {
	userID, err := h.userID(c)
	if err != nil {
		return h.respondError(c, err)
	}

	req := &models.GenerateSignalsRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	signals, err := h.signals.Generate(c.Request().Context(), userID, req.Symbols)
	if err != nil {
		return h.respondError(c, err)
	}

	return xhttp.SuccessResponse(c, map[string]any{
		"message": fmt.Sprintf("Generated %d signals", len(signals)),
		"signals": signals,
	})
}

// AIModels returns the fixed model catalog.
func (h *Handler) AIModels(c echo.Context) error {
	catalog, err := h.aiModels.List(c.Request().Context())
	if err != nil {
		return h.respondError(c, err)
	}
	return xhttp.SuccessResponse(c, catalog)
}

// Alerts returns the caller's notifications, newest first.
func (h *Handler) Alerts(c echo.Context) error {
	userID, err := h.userID(c)
	if err != nil {
		return h.respondError(c, err)
	}

	req := &models.AlertsRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	alerts, err := h.alerts.List(c.Request().Context(), userID, req.UnreadOnly)
	if err != nil {
		return h.respondError(c, err)
	}
	return xhttp.SuccessResponse(c, alerts)
}

// MarkAlertRead flips one alert to read; missing or foreign alerts are 404.
func (h *Handler) MarkAlertRead(c echo.Context) error {
	userID, err := h.userID(c)
	if err != nil {
		return h.respondError(c, err)
	}

	alertID := c.Param("id")
	if err := h.alerts.MarkRead(c.Request().Context(), userID, alertID); err != nil {
		return h.respondError(c, err)
	}

	h.logger.Debug("alert marked read", xlogger.String("alert_id", alertID))
	return xhttp.SuccessResponse(c, map[string]string{"message": "Alert marked as read"})
}
