package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	apperrors "task-tracker.com/task-tracker/internal/errors"
	"task-tracker.com/task-tracker/internal/services"
)

func (h *Handler) DashboardStats(c echo.Context) error {
	stats, err := h.dashboardService.Stats(c.Request().Context())
	if err != nil {
		return toHTTPError(c, err)
	}
	return c.JSON(http.StatusOK, stats)
}

func (h *Handler) TaskSummary(c echo.Context) error {
	summary, err := h.dashboardService.TaskSummary(c.Request().Context())
	if err != nil {
		return toHTTPError(c, err)
	}
	return c.JSON(http.StatusOK, summary)
}

func (h *Handler) MemberStats(c echo.Context) error {
	stats, err := h.dashboardService.MemberStats(c.Request().Context())
	if err != nil {
		return toHTTPError(c, err)
	}
	return c.JSON(http.StatusOK, stats)
}

func (h *Handler) RecentActivities(c echo.Context) error {
	limit, err := queryInt(c, "limit", services.DefaultRecentActivities, apperrors.ErrInvalidLimit)
	if err != nil {
		return toHTTPError(c, err)
	}

	activities, err := h.dashboardService.RecentActivities(c.Request().Context(), limit)
	if err != nil {
		return toHTTPError(c, err)
	}
	return c.JSON(http.StatusOK, activities)
}

func (h *Handler) UpcomingDeadlines(c echo.Context) error {
	days, err := queryInt(c, "days_ahead", services.DefaultDeadlineDays, apperrors.ErrInvalidDaysAhead)
	if err != nil {
		return toHTTPError(c, err)
	}

	deadlines, err := h.dashboardService.UpcomingDeadlines(c.Request().Context(), days)
	if err != nil {
		return toHTTPError(c, err)
	}
	return c.JSON(http.StatusOK, deadlines)
}

func (h *Handler) PerformanceMetrics(c echo.Context) error {
	metric, err := h.dashboardService.PerformanceMetrics(c.Request().Context())
	if err != nil {
		return toHTTPError(c, err)
	}
	return c.JSON(http.StatusOK, metric)
}
