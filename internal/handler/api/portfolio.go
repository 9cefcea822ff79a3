package api

import (
	"github.com/labstack/echo/v4"

	xhttp "InvestAgent/pkg/http"
)

// PortfolioSummary returns the latest snapshot, seeding the fixed one first.
func (h *Handler) PortfolioSummary(c echo.Context) error {
	userID, err := h.userID(c)
	if err != nil {
		return h.respondError(c, err)
	}

	summary, err := h.portfolio.Summary(c.Request().Context(), userID)
	if err != nil {
		return h.respondError(c, err)
	}
	return xhttp.SuccessResponse(c, summary)
}

// Positions returns open holdings with assets joined in.
func (h *Handler) Positions(c echo.Context) error {
	userID, err := h.userID(c)
	if err != nil {
		return h.respondError(c, err)
	}

	positions, err := h.portfolio.Positions(c.Request().Context(), userID)
	if err != nil {
		return h.respondError(c, err)
	}
	return xhttp.SuccessResponse(c, positions)
}

// PortfolioHistory returns the valuation series oldest-first.
func (h *Handler) PortfolioHistory(c echo.Context) error {
	userID, err := h.userID(c)
	if err != nil {
		return h.respondError(c, err)
	}

	history, err := h.portfolio.History(c.Request().Context(), userID)
	if err != nil {
		return h.respondError(c, err)
	}
	return xhttp.SuccessResponse(c, history)
}
