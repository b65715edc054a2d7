package validators

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	dto "task-tracker.com/task-tracker/internal/data_models"
	apperrors "task-tracker.com/task-tracker/internal/errors"
)

func ValidateCreateTaskRequest(r *dto.CreateTaskRequest) error {
	if strings.TrimSpace(r.Title) == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "title is required")
	}
	if r.Status != nil && !r.Status.Valid() {
		return echo.NewHTTPError(http.StatusBadRequest, apperrors.Message(apperrors.InvalidStatus(string(*r.Status))))
	}
	return nil
}

func ValidateUpdateTaskRequest(r *dto.UpdateTaskRequest) error {
	if r.Title != nil && strings.TrimSpace(*r.Title) == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "title must not be empty")
	}
	if r.Status != nil && !r.Status.Valid() {
		return echo.NewHTTPError(http.StatusBadRequest, apperrors.Message(apperrors.InvalidStatus(string(*r.Status))))
	}
	return nil
}
