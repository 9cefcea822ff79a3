package api

import (
	"errors"

	"github.com/labstack/echo/v4"

	"InvestAgent/internal/service/auth"
	"InvestAgent/internal/usecase"
	xhttp "InvestAgent/pkg/http"
	"InvestAgent/pkg/http/middleware"
	xlogger "InvestAgent/pkg/logger"

	domrepo "InvestAgent/internal/domain/repository"
)

// Handler exposes the investment API over Echo.
type Handler struct {
	logger    *xlogger.Logger
	auth      *auth.Service
	tokens    *auth.TokenService
	configs   *usecase.Configs
	portfolio *usecase.Portfolio
	signals   *usecase.Signals
	trades    *usecase.Trades
	alerts    *usecase.Alerts
	settings  *usecase.Settings
	aiModels  *usecase.AIModels
	market    *usecase.Market
	news      *usecase.News
}

// NewHandler wires the API handler.
func NewHandler(
	logger *xlogger.Logger,
	authSvc *auth.Service,
	tokens *auth.TokenService,
	configs *usecase.Configs,
	portfolio *usecase.Portfolio,
	signals *usecase.Signals,
	trades *usecase.Trades,
	alerts *usecase.Alerts,
	settings *usecase.Settings,
	aiModels *usecase.AIModels,
	market *usecase.Market,
	news *usecase.News,
) *Handler {
	return &Handler{
		logger:    logger,
		auth:      authSvc,
		tokens:    tokens,
		configs:   configs,
		portfolio: portfolio,
		signals:   signals,
		trades:    trades,
		alerts:    alerts,
		settings:  settings,
		aiModels:  aiModels,
		market:    market,
		news:      news,
	}
}

// RegisterRoutes mounts all API routes. Registration, token issuance, the
// market catalog/series endpoints and the model catalog are public; everything
// else requires a bearer token.
func (h *Handler) RegisterRoutes(e *echo.Echo) {
	e.GET("/", h.Root)

	g := e.Group("/api")
	g.POST("/auth/register", h.Register)
	g.POST("/auth/token", h.Token)
	g.GET("/ai/models", h.AIModels)
	g.GET("/market/assets", h.Assets)
	g.GET("/market/data/:symbol", h.MarketData)
	g.GET("/market/stream/:symbol", h.MarketStream)

	p := g.Group("", middleware.BearerAuth(h.tokens))
	p.GET("/auth/me", h.Me)
	p.GET("/trading/config", h.ListConfigs)
	p.POST("/trading/config", h.UpsertConfig)
	p.DELETE("/trading/config/:id", h.DeleteConfig)
	p.GET("/portfolio/summary", h.PortfolioSummary)
	p.GET("/portfolio/positions", h.Positions)
	p.GET("/portfolio/history", h.PortfolioHistory)
	p.GET("/signals", h.Signals)
	p.GET("/trades", h.Trades)
	p.GET("/alerts", h.Alerts)
	p.POST("/alerts/:id/read", h.MarkAlertRead)
	p.GET("/settings/risk", h.RiskSettings)
	p.POST("/settings/risk", h.UpdateRiskSettings)
	p.POST("/ai/generate_signals", h.GenerateSignals)
	p.GET("/news", h.News)
}

// Root returns the API greeting.
func (h *Handler) Root(c echo.Context) error {
	return xhttp.SuccessResponse(c, map[string]string{"message": "AI Investment Agent API"})
}

// userID resolves the authenticated subject to a stored credential id.
func (h *Handler) userID(c echo.Context) (string, error) {
	subject, ok := middleware.Subject(c)
	if !ok {
		return "", auth.ErrTokenInvalid
	}
	user, err := h.auth.GetUser(c.Request().Context(), subject)
	if err != nil {
		if errors.Is(err, domrepo.ErrNotFound) {
			return "", auth.ErrTokenInvalid
		}
		return "", err
	}
	return user.ID, nil
}

// respondError maps service errors onto the error taxonomy; anything
// unexpected is logged and surfaced as a 500.
func (h *Handler) respondError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, auth.ErrTokenInvalid):
		return xhttp.AppErrorResponse(c, xhttp.TokenInvalidError())
	case errors.Is(err, auth.ErrAuthFailed):
		return xhttp.AppErrorResponse(c, xhttp.AuthFailureError())
	case errors.Is(err, auth.ErrDuplicateUsername):
		return xhttp.AppErrorResponse(c, xhttp.DuplicateIdentityError("username"))
	case errors.Is(err, auth.ErrDuplicateEmail):
		return xhttp.AppErrorResponse(c, xhttp.DuplicateIdentityError("email"))
	case errors.Is(err, domrepo.ErrNotFound):
		return xhttp.AppErrorResponse(c, xhttp.NotFoundError("resource not found"))
	default:
		h.logger.Error("request failed",
			xlogger.String("path", c.Path()), xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
}
