package validators

import (
	"net/http"

	"github.com/labstack/echo/v4"

	dto "task-tracker.com/task-tracker/internal/data_models"
)

func ValidateLoginRequest(r *dto.LoginRequest) error {
	if r.Username == "" || r.Password == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "username and password are required")
	}
	return nil
}
