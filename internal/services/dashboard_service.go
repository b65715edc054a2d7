package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/rs/zerolog/log"

	"task-tracker.com/task-tracker/internal/constants"
	apperrors "task-tracker.com/task-tracker/internal/errors"
	model "task-tracker.com/task-tracker/internal/models"
	repository "task-tracker.com/task-tracker/internal/repositories"
)

const (
	TopMemberStats          = 10
	DefaultRecentActivities = 10
	MaxRecentActivities     = 100
	DefaultDeadlineDays     = 7
)

// DashboardService derives every dashboard view from the current tasks,
// members and logs on each call. Nothing is cached or written.
type DashboardService struct {
	repo *repository.DashboardRepository
	loc  *time.Location
	now  func() time.Time
}

func NewDashboardService(repo *repository.DashboardRepository, loc *time.Location) *DashboardService {
	if loc == nil {
		loc = time.UTC
	}
	return &DashboardService{repo: repo, loc: loc, now: time.Now}
}

func (s *DashboardService) TaskSummary(ctx context.Context) (*model.TaskSummary, error) {
	summary, err := s.taskSummary(ctx)
	if err != nil {
		return nil, s.fail("task_summary", err)
	}
	return &summary, nil
}

func (s *DashboardService) MemberStats(ctx context.Context) ([]model.MemberStats, error) {
	stats, err := s.repo.MemberStats(ctx, TopMemberStats)
	if err != nil {
		return nil, s.fail("member_stats", err)
	}
	return stats, nil
}

func (s *DashboardService) RecentActivities(ctx context.Context, limit int) ([]model.RecentActivity, error) {
	if limit < 1 || limit > MaxRecentActivities {
		return nil, apperrors.ErrInvalidLimit
	}

	activities, err := s.repo.RecentActivities(ctx, limit)
	if err != nil {
		return nil, s.fail("recent_activities", err)
	}
	return activities, nil
}

func (s *DashboardService) UpcomingDeadlines(ctx context.Context, daysAhead int) ([]model.TaskDeadline, error) {
	if daysAhead < 0 {
		return nil, apperrors.ErrInvalidDaysAhead
	}

	deadlines, err := s.upcomingDeadlines(ctx, daysAhead)
	if err != nil {
		return nil, s.fail("upcoming_deadlines", err)
	}
	return deadlines, nil
}

func (s *DashboardService) PerformanceMetrics(ctx context.Context) (*model.PerformanceMetric, error) {
	metric, err := s.performanceMetrics(ctx)
	if err != nil {
		return nil, s.fail("performance_metrics", err)
	}
	return &metric, nil
}

// Stats assembles the full dashboard. Each view is computed independently;
// if any of them fails the whole call fails with a single aggregation error
// and no partial dashboard is returned.
func (s *DashboardService) Stats(ctx context.Context) (*model.DashboardStats, error) {
	var (
		stats model.DashboardStats
		errs  []error
		err   error
	)

	if stats.TaskSummary, err = s.taskSummary(ctx); err != nil {
		errs = append(errs, viewError("task_summary", err))
	}
	if stats.MemberStats, err = s.repo.MemberStats(ctx, TopMemberStats); err != nil {
		errs = append(errs, viewError("member_stats", err))
	}
	if stats.RecentActivities, err = s.repo.RecentActivities(ctx, DefaultRecentActivities); err != nil {
		errs = append(errs, viewError("recent_activities", err))
	}
	if stats.UpcomingDeadlines, err = s.upcomingDeadlines(ctx, DefaultDeadlineDays); err != nil {
		errs = append(errs, viewError("upcoming_deadlines", err))
	}
	if stats.PerformanceMetrics, err = s.performanceMetrics(ctx); err != nil {
		errs = append(errs, viewError("performance_metrics", err))
	}

	if len(errs) > 0 {
		return nil, s.fail("dashboard_stats", errors.Join(errs...))
	}
	return &stats, nil
}

func (s *DashboardService) taskSummary(ctx context.Context) (model.TaskSummary, error) {
	counts, err := s.repo.CountByStatus(ctx)
	if err != nil {
		return model.TaskSummary{}, err
	}

	summary := model.NewTaskSummary()
	for _, c := range counts {
		summary.Add(c.Status, c.Count)
	}
	return summary, nil
}

func (s *DashboardService) upcomingDeadlines(ctx context.Context, daysAhead int) ([]model.TaskDeadline, error) {
	open, err := s.repo.OpenTasksWithDeadline(ctx)
	if err != nil {
		return nil, err
	}

	today := s.today()
	upcoming := make([]model.TaskDeadline, 0)
	for _, task := range open {
		remaining := daysBetween(today, s.dateOf(*task.EndDate))
		if remaining < 0 || remaining > daysAhead {
			continue
		}
		task.DaysRemaining = remaining
		upcoming = append(upcoming, task)
	}
	return upcoming, nil
}

func (s *DashboardService) performanceMetrics(ctx context.Context) (model.PerformanceMetric, error) {
	summary, err := s.taskSummary(ctx)
	if err != nil {
		return model.PerformanceMetric{}, err
	}

	metric := model.PerformanceMetric{
		TotalTasks:     summary.Total,
		CompletedTasks: summary.Count(constants.StatusDone),
	}
	if metric.TotalTasks > 0 {
		metric.CompletionRate = round2(float64(metric.CompletedTasks) / float64(metric.TotalTasks) * 100)
	}

	spans, err := s.repo.CompletionSpans(ctx)
	if err != nil {
		return model.PerformanceMetric{}, err
	}
	if len(spans) > 0 {
		var totalDays float64
		for _, span := range spans {
			totalDays += span.EndDate.Sub(span.StartDate).Hours() / 24
		}
		avg := round2(totalDays / float64(len(spans)))
		metric.AvgCompletionDays = &avg
	}

	open, err := s.repo.OpenTasksWithDeadline(ctx)
	if err != nil {
		return model.PerformanceMetric{}, err
	}
	today := s.today()
	for _, task := range open {
		if s.dateOf(*task.EndDate).Before(today) {
			metric.OverdueTasks++
		}
	}

	return metric, nil
}

func (s *DashboardService) fail(view string, err error) error {
	log.Error().Err(err).Str("view", view).Msg("dashboard aggregation failed")
	return apperrors.AggregationFailed(err)
}

// today is midnight of the current calendar day in the configured zone,
// expressed as a UTC date so day arithmetic is free of DST shifts.
func (s *DashboardService) today() time.Time {
	return s.dateOf(s.now())
}

func (s *DashboardService) dateOf(t time.Time) time.Time {
	y, m, d := t.In(s.loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func daysBetween(from, to time.Time) int {
	return int(math.Round(to.Sub(from).Hours() / 24))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func viewError(view string, err error) error {
	return fmt.Errorf("%s: %w", view, err)
}
