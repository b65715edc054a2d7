package http

import (
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	apperrors "task-tracker.com/task-tracker/internal/errors"
	"task-tracker.com/task-tracker/internal/services"
)

type Handler struct {
	taskService      *services.TaskService
	memberService    *services.MemberService
	dashboardService *services.DashboardService
	authService      *services.AuthService
}

func NewHandler(
	taskService *services.TaskService,
	memberService *services.MemberService,
	dashboardService *services.DashboardService,
	authService *services.AuthService,
) *Handler {
	return &Handler{
		taskService:      taskService,
		memberService:    memberService,
		dashboardService: dashboardService,
		authService:      authService,
	}
}

// toHTTPError renders a service error as {"message": ...}. The cause stays
// internal and is only logged.
func toHTTPError(c echo.Context, err error) error {
	status := apperrors.StatusCode(err)
	if status >= 500 {
		log.Error().
			Err(err).
			Str("request_id", c.Response().Header().Get(echo.HeaderXRequestID)).
			Str("path", c.Path()).
			Msg("request failed")
	}
	return echo.NewHTTPError(status, apperrors.Message(err)).SetInternal(err)
}

func parseID(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, apperrors.ErrInvalidID
	}
	return uint(id), nil
}

// queryInt reads an optional integer query parameter. A malformed value is
// reported as invalid.
func queryInt(c echo.Context, name string, def int, invalid error) (int, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, invalid
	}
	return v, nil
}
