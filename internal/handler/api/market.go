package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	"InvestAgent/internal/domain/models"
	domrepo "InvestAgent/internal/domain/repository"
	xhttp "InvestAgent/pkg/http"
	xlogger "InvestAgent/pkg/logger"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// The demo API serves browser clients from any origin, same as CORS.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Assets returns the seeded catalog, optionally filtered by class.
func (h *Handler) Assets(c echo.Context) error {
	req := &models.AssetsRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	assets, err := h.market.Assets(c.Request().Context(), req.AssetType)
	if err != nil {
		return h.respondError(c, err)
	}
	return xhttp.SuccessResponse(c, assets)
}

// MarketData returns a synthesized OHLCV series for one symbol.
func (h *Handler) MarketData(c echo.Context) error {
	req := &models.MarketDataRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	symbol := c.Param("symbol")
	data, err := h.market.Data(c.Request().Context(), symbol, req.Interval, req.Limit)
	if err != nil {
		if errors.Is(err, domrepo.ErrNotFound) {
			return xhttp.AppErrorResponse(c, xhttp.NotFoundErrorf("asset with symbol %s not found", symbol))
		}
		return h.respondError(c, err)
	}
	return xhttp.SuccessResponse(c, data)
}

// MarketStream upgrades to a websocket and pushes one synthetic bar per tick
// until the client goes away.
func (h *Handler) MarketStream(c echo.Context) error {
	req := &models.MarketDataRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	symbol := c.Param("symbol")

	conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		return err
	}
	defer conn.Close()

	err = h.market.Stream(c.Request().Context(), symbol, req.Interval, func(bar models.PriceBar) error {
		return conn.WriteJSON(bar)
	})
	if err != nil && !errors.Is(err, context.Canceled) {
		if errors.Is(err, domrepo.ErrNotFound) {
			msg := websocket.FormatCloseMessage(websocket.ClosePolicyViolation, "unknown symbol")
			_ = conn.WriteMessage(websocket.CloseMessage, msg)
			return nil
		}
		h.logger.Debug("market stream ended",
			xlogger.String("symbol", symbol), xlogger.Error(err))
	}
	return nil
}

// News returns sentiment-scored items, optionally scoped to one symbol.
func (h *Handler) News(c echo.Context) error {
	req := &models.NewsRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	items, err := h.news.List(c.Request().Context(), req.Symbol, req.Limit)
	if err != nil {
		return h.respondError(c, err)
	}
	return xhttp.SuccessResponse(c, items)
}
