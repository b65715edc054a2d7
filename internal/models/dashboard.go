package model

import (
	"encoding/json"
	"time"

	"task-tracker.com/task-tracker/internal/constants"
)

// TaskSummary counts tasks per summary bucket. Total is always the sum of
// Counts.
type TaskSummary struct {
	Counts map[string]int
	Total  int
}

func NewTaskSummary() TaskSummary {
	counts := make(map[string]int, len(constants.TaskStatuses))
	for _, s := range constants.TaskStatuses {
		counts[s.SummaryKey()] = 0
	}
	return TaskSummary{Counts: counts}
}

func (s *TaskSummary) Add(status constants.TaskStatus, n int) {
	if s.Counts == nil {
		*s = NewTaskSummary()
	}
	s.Counts[status.SummaryKey()] += n
	s.Total += n
}

func (s TaskSummary) Count(status constants.TaskStatus) int {
	return s.Counts[status.SummaryKey()]
}

func (s TaskSummary) MarshalJSON() ([]byte, error) {
	out := make(map[string]int, len(s.Counts)+1)
	for k, v := range s.Counts {
		out[k] = v
	}
	out["total"] = s.Total
	return json.Marshal(out)
}

type MemberStats struct {
	MemberID        uint   `json:"member_id"`
	MemberName      string `json:"member_name"`
	TaskCount       int    `json:"task_count"`
	CompletedTasks  int    `json:"completed_tasks"`
	InProgressTasks int    `json:"in_progress_tasks"`
}

type RecentActivity struct {
	ID         uint                  `json:"id"`
	TaskID     uint                  `json:"task_id"`
	TaskTitle  string                `json:"task_title"`
	MemberName string                `json:"member_name"`
	OldStatus  *constants.TaskStatus `json:"old_status"`
	NewStatus  constants.TaskStatus  `json:"new_status"`
	Timestamp  time.Time             `json:"timestamp"`
}

type TaskDeadline struct {
	ID            uint                 `json:"id"`
	Title         string               `json:"title"`
	MemberName    *string              `json:"member_name"`
	Status        constants.TaskStatus `json:"status"`
	StartDate     *time.Time           `json:"start_date"`
	EndDate       *time.Time           `json:"end_date"`
	DaysRemaining int                  `json:"days_remaining"`
}

type PerformanceMetric struct {
	TotalTasks        int      `json:"total_tasks"`
	CompletedTasks    int      `json:"completed_tasks"`
	CompletionRate    float64  `json:"completion_rate"`
	AvgCompletionDays *float64 `json:"avg_completion_days"`
	OverdueTasks      int      `json:"overdue_tasks"`
}

type DashboardStats struct {
	TaskSummary        TaskSummary       `json:"task_summary"`
	MemberStats        []MemberStats     `json:"member_stats"`
	RecentActivities   []RecentActivity  `json:"recent_activities"`
	UpcomingDeadlines  []TaskDeadline    `json:"upcoming_deadlines"`
	PerformanceMetrics PerformanceMetric `json:"performance_metrics"`
}
