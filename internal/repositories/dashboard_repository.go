package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"task-tracker.com/task-tracker/internal/constants"
	model "task-tracker.com/task-tracker/internal/models"
)

// DashboardRepository runs the read-only queries behind the dashboard. It
// never writes.
type DashboardRepository struct {
	db *gorm.DB
}

type StatusCount struct {
	Status constants.TaskStatus
	Count  int
}

type CompletionSpan struct {
	StartDate time.Time
	EndDate   time.Time
}

func NewDashboardRepository(db *gorm.DB) *DashboardRepository {
	return &DashboardRepository{db: db}
}

func (r *DashboardRepository) CountByStatus(ctx context.Context) ([]StatusCount, error) {
	var rows []StatusCount
	err := r.db.WithContext(ctx).
		Model(&model.Task{}).
		Select("status, COUNT(id) AS count").
		Group("status").
		Scan(&rows).Error
	return rows, err
}

// MemberStats returns per member task counts, busiest first. Members without
// tasks are included with zero counts.
func (r *DashboardRepository) MemberStats(ctx context.Context, limit int) ([]model.MemberStats, error) {
	stats := make([]model.MemberStats, 0)
	err := r.db.WithContext(ctx).
		Table("members").
		Select(
			`members.id AS member_id, members.name AS member_name, COUNT(tasks.id) AS task_count,
			COALESCE(SUM(CASE WHEN tasks.status = ? THEN 1 ELSE 0 END), 0) AS completed_tasks,
			COALESCE(SUM(CASE WHEN tasks.status = ? THEN 1 ELSE 0 END), 0) AS in_progress_tasks`,
			string(constants.StatusDone),
			string(constants.StatusInProgress),
		).
		Joins("LEFT JOIN tasks ON tasks.member_id = members.id").
		Group("members.id, members.name").
		Order("task_count DESC").
		Order("members.id ASC").
		Limit(limit).
		Scan(&stats).Error
	return stats, err
}

// RecentActivities returns the newest logs joined with their task title and
// assignee name. Logs of tasks without an assignee have no member name to
// show and are left out by the inner join.
func (r *DashboardRepository) RecentActivities(ctx context.Context, limit int) ([]model.RecentActivity, error) {
	activities := make([]model.RecentActivity, 0)
	err := r.db.WithContext(ctx).
		Table("task_logs").
		Select(`task_logs.id AS id, task_logs.task_id AS task_id, tasks.title AS task_title,
			members.name AS member_name, task_logs.old_status AS old_status,
			task_logs.new_status AS new_status, task_logs.timestamp AS timestamp`).
		Joins("JOIN tasks ON tasks.id = task_logs.task_id").
		Joins("JOIN members ON members.id = tasks.member_id").
		Order("task_logs.timestamp DESC").
		Order("task_logs.id DESC").
		Limit(limit).
		Scan(&activities).Error
	return activities, err
}

// OpenTasksWithDeadline returns every unfinished task that has an end date,
// earliest deadline first. Date windows are applied by the caller so they
// follow the configured timezone rather than the database's.
func (r *DashboardRepository) OpenTasksWithDeadline(ctx context.Context) ([]model.TaskDeadline, error) {
	tasks := make([]model.TaskDeadline, 0)
	err := r.db.WithContext(ctx).
		Table("tasks").
		Select(`tasks.id AS id, tasks.title AS title, members.name AS member_name,
			tasks.status AS status, tasks.start_date AS start_date, tasks.end_date AS end_date`).
		Joins("LEFT JOIN members ON members.id = tasks.member_id").
		Where("tasks.status <> ? AND tasks.end_date IS NOT NULL", string(constants.StatusDone)).
		Order("tasks.end_date ASC").
		Order("tasks.id ASC").
		Scan(&tasks).Error
	return tasks, err
}

// CompletionSpans returns start and end dates of finished tasks that have both.
func (r *DashboardRepository) CompletionSpans(ctx context.Context) ([]CompletionSpan, error) {
	var spans []CompletionSpan
	err := r.db.WithContext(ctx).
		Model(&model.Task{}).
		Select("start_date, end_date").
		Where("status = ? AND start_date IS NOT NULL AND end_date IS NOT NULL", string(constants.StatusDone)).
		Scan(&spans).Error
	return spans, err
}
