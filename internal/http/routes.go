package http

import (
	"github.com/labstack/echo/v4"
)

func Register(e *echo.Echo, h *Handler, auth echo.MiddlewareFunc) {
	e.GET("/healthz", h.Health)
	e.POST("/token", h.Login)

	api := e.Group("", auth)

	api.GET("/users/me", h.CurrentUser)

	api.POST("/tasks", h.CreateTask)
	api.GET("/tasks", h.ListTasks)
	api.GET("/tasks/:id", h.GetTask)
	api.PUT("/tasks/:id", h.UpdateTask)
	api.DELETE("/tasks/:id", h.DeleteTask)

	api.POST("/members", h.CreateMember)
	api.GET("/members", h.ListMembers)
	api.GET("/members/:id", h.GetMember)
	api.PUT("/members/:id", h.UpdateMember)
	api.DELETE("/members/:id", h.DeleteMember)

	dashboard := api.Group("/dashboard")
	dashboard.GET("/stats", h.DashboardStats)
	dashboard.GET("/task-summary", h.TaskSummary)
	dashboard.GET("/member-stats", h.MemberStats)
	dashboard.GET("/recent-activities", h.RecentActivities)
	dashboard.GET("/upcoming-deadlines", h.UpcomingDeadlines)
	dashboard.GET("/performance", h.PerformanceMetrics)
}
