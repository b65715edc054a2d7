package validators

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	dto "task-tracker.com/task-tracker/internal/data_models"
)

func ValidateCreateMemberRequest(r *dto.CreateMemberRequest) error {
	if strings.TrimSpace(r.Name) == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "name is required")
	}
	return nil
}

func ValidateUpdateMemberRequest(r *dto.UpdateMemberRequest) error {
	if r.Name != nil && strings.TrimSpace(*r.Name) == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "name must not be empty")
	}
	return nil
}
