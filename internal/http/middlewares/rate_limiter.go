package middleware

import (
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	apperrors "task-tracker.com/task-tracker/internal/errors"
	"task-tracker.com/task-tracker/internal/ratelimit"
)

// RateLimiter rejects clients that exceed their budget. A failing limiter
// store lets the request through.
func RateLimiter(limiter ratelimit.Limiter) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			key := c.RealIP()

			allowed, err := limiter.Allow(c.Request().Context(), key)
			if err != nil {
				log.Warn().Err(err).Str("client", key).Msg("rate limiter unavailable")
				return next(c)
			}

			if !allowed {
				return echo.NewHTTPError(
					apperrors.StatusCode(apperrors.ErrRateLimited),
					apperrors.Message(apperrors.ErrRateLimited),
				)
			}

			return next(c)
		}
	}
}
