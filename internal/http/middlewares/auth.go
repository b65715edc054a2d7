package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	apperrors "task-tracker.com/task-tracker/internal/errors"
)

const callerKey = "caller"

type TokenVerifier interface {
	VerifyToken(token string) (string, error)
}

// Auth requires a bearer token and stores the authenticated username on the
// context.
func Auth(verifier TokenVerifier) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, ok := bearerToken(c.Request().Header.Get(echo.HeaderAuthorization))
			if !ok {
				return unauthorized(c)
			}

			username, err := verifier.VerifyToken(token)
			if err != nil {
				return unauthorized(c)
			}

			c.Set(callerKey, username)
			return next(c)
		}
	}
}

// Caller returns the username set by Auth.
func Caller(c echo.Context) string {
	username, _ := c.Get(callerKey).(string)
	return username
}

func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

func unauthorized(c echo.Context) error {
	c.Response().Header().Set(echo.HeaderWWWAuthenticate, "Bearer")
	return echo.NewHTTPError(http.StatusUnauthorized, apperrors.Message(apperrors.ErrUnauthorized))
}
