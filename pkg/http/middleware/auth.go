package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

// SubjectKey is the context key the bearer middleware stores the token subject under.
const SubjectKey = "auth.subject"

// TokenVerifier validates a bearer token and returns its subject.
type TokenVerifier interface {
	VerifyToken(token string) (string, error)
}

// BearerAuth rejects requests without a valid bearer token.
// Missing, malformed, forged and expired tokens are indistinguishable 401s.
func BearerAuth(v TokenVerifier) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || token == "" {
				return unauthorized(c)
			}

			subject, err := v.VerifyToken(token)
			if err != nil {
				return unauthorized(c)
			}

			c.Set(SubjectKey, subject)
			return next(c)
		}
	}
}

// Subject returns the authenticated token subject, if any.
func Subject(c echo.Context) (string, bool) {
	s, ok := c.Get(SubjectKey).(string)
	return s, ok && s != ""
}

func unauthorized(c echo.Context) error {
	return c.JSON(http.StatusUnauthorized, map[string]interface{}{
		"status":  http.StatusUnauthorized,
		"message": http.StatusText(http.StatusUnauthorized),
		"data": []map[string]string{{
			"code":    "ERR_TOKEN_INVALID",
			"message": "could not validate credentials",
		}},
	})
}
