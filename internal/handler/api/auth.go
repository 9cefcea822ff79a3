package api

import (
	"github.com/labstack/echo/v4"

	"InvestAgent/internal/domain/models"
	"InvestAgent/internal/service/auth"
	xhttp "InvestAgent/pkg/http"
	"InvestAgent/pkg/http/middleware"
	xlogger "InvestAgent/pkg/logger"
)

// Register creates a credential. Duplicate usernames and emails are 400s.
func (h *Handler) Register(c echo.Context) error {
	req := &models.RegisterRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	user, err := h.auth.Register(c.Request().Context(), req.Username, req.Email, req.Password)
	if err != nil {
		return h.respondError(c, err)
	}

	h.logger.Info("user registered", xlogger.String("username", user.Username))
	return xhttp.CreatedResponse(c, user)
}

// Token exchanges a username/password pair for a bearer token.
func (h *Handler) Token(c echo.Context) error {
	req := &models.TokenRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	user, err := h.auth.Authenticate(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		return h.respondError(c, err)
	}

	token, err := h.tokens.IssueToken(user.Username)
	if err != nil {
		return h.respondError(c, err)
	}

	return xhttp.SuccessResponse(c, models.TokenPair{AccessToken: token, TokenType: "bearer"})
}

// Me returns the authenticated credential, hash excluded by serialization.
func (h *Handler) Me(c echo.Context) error {
	subject, ok := middleware.Subject(c)
	if !ok {
		return h.respondError(c, auth.ErrTokenInvalid)
	}
	user, err := h.auth.GetUser(c.Request().Context(), subject)
	if err != nil {
		return h.respondError(c, err)
	}
	return xhttp.SuccessResponse(c, user)
}
