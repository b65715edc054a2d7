package services

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog/log"

	"task-tracker.com/task-tracker/internal/constants"
	dto "task-tracker.com/task-tracker/internal/data_models"
	apperrors "task-tracker.com/task-tracker/internal/errors"
	model "task-tracker.com/task-tracker/internal/models"
	repository "task-tracker.com/task-tracker/internal/repositories"
)

// TaskService owns the task lifecycle. Status transitions are unrestricted;
// every change is recorded, none is refused.
type TaskService struct {
	repo    *repository.TaskRepository
	members *repository.MemberRepository
	loc     *time.Location
}

func NewTaskService(
	repo *repository.TaskRepository,
	members *repository.MemberRepository,
	loc *time.Location,
) *TaskService {
	if loc == nil {
		loc = time.UTC
	}
	return &TaskService{
		repo:    repo,
		members: members,
		loc:     loc,
	}
}

func (s *TaskService) CreateTask(ctx context.Context, req dto.CreateTaskRequest) (*model.Task, error) {
	status := constants.StatusNotStarted
	if req.Status != nil {
		status = *req.Status
	}
	if !status.Valid() {
		return nil, apperrors.InvalidStatus(string(status))
	}

	if req.MemberID != nil {
		if err := s.ensureMember(ctx, *req.MemberID); err != nil {
			return nil, err
		}
	}

	task := &model.Task{
		Title:       req.Title,
		Description: req.Description,
		MemberID:    req.MemberID,
		Status:      status,
		StartDate:   s.resolve(req.StartDate),
		EndDate:     s.resolve(req.EndDate),
	}

	if err := s.repo.CreateTask(ctx, task); err != nil {
		log.Error().Err(err).Str("title", task.Title).Msg("failed to create task")
		return nil, apperrors.CreationFailed("task", err)
	}

	log.Info().Uint("task_id", task.ID).Str("status", string(task.Status)).Msg("task created")
	return task, nil
}

// ListTasks returns all tasks, newest first. An empty statusFilter disables
// filtering; an unknown status simply matches nothing.
func (s *TaskService) ListTasks(ctx context.Context, statusFilter string) ([]model.Task, error) {
	var status *constants.TaskStatus
	if statusFilter != "" {
		st := constants.TaskStatus(statusFilter)
		status = &st
	}

	tasks, err := s.repo.List(ctx, status)
	if err != nil {
		log.Error().Err(err).Str("status_filter", statusFilter).Msg("failed to list tasks")
		return nil, apperrors.RetrievalFailed("tasks", err)
	}
	return tasks, nil
}

func (s *TaskService) GetTask(ctx context.Context, id uint) (*model.Task, error) {
	task, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrTaskNotFound) {
			return nil, apperrors.TaskNotFound(id)
		}
		log.Error().Err(err).Uint("task_id", id).Msg("failed to load task")
		return nil, apperrors.RetrievalFailed("task", err)
	}
	return task, nil
}

func (s *TaskService) UpdateTask(ctx context.Context, id uint, req dto.UpdateTaskRequest) (*model.Task, error) {
	changes, err := s.taskChanges(ctx, req)
	if err != nil {
		return nil, err
	}

	task, err := s.repo.Update(ctx, id, changes)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrTaskNotFound):
			return nil, apperrors.TaskNotFound(id)
		case errors.Is(err, repository.ErrOptimisticLock):
			log.Warn().Uint("task_id", id).Msg("optimistic lock conflict updating task")
			return nil, apperrors.TaskModifiedConcurrently(id)
		}
		log.Error().Err(err).Uint("task_id", id).Msg("failed to update task")
		return nil, apperrors.UpdateFailed("task", err)
	}

	log.Info().Uint("task_id", id).Int("fields", len(changes)).Msg("task updated")
	return task, nil
}

func (s *TaskService) DeleteTask(ctx context.Context, id uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrTaskNotFound) {
			return apperrors.TaskNotFound(id)
		}
		log.Error().Err(err).Uint("task_id", id).Msg("failed to delete task")
		return apperrors.DeletionFailed("task", err)
	}

	log.Info().Uint("task_id", id).Msg("task deleted")
	return nil
}

func (s *TaskService) taskChanges(ctx context.Context, req dto.UpdateTaskRequest) (map[string]any, error) {
	changes := make(map[string]any)

	if req.Title != nil {
		changes["title"] = *req.Title
	}
	if req.Description.Set {
		changes["description"] = req.Description.Value
	}
	if req.MemberID.Set {
		if req.MemberID.Value != nil {
			if err := s.ensureMember(ctx, *req.MemberID.Value); err != nil {
				return nil, err
			}
		}
		changes["member_id"] = req.MemberID.Value
	}
	if req.Status != nil {
		if !req.Status.Valid() {
			return nil, apperrors.InvalidStatus(string(*req.Status))
		}
		changes["status"] = *req.Status
	}
	if req.StartDate.Set {
		changes["start_date"] = s.resolve(req.StartDate.Value)
	}
	if req.EndDate.Set {
		changes["end_date"] = s.resolve(req.EndDate.Value)
	}

	return changes, nil
}

func (s *TaskService) ensureMember(ctx context.Context, id uint) error {
	exists, err := s.members.Exists(ctx, id)
	if err != nil {
		log.Error().Err(err).Uint("member_id", id).Msg("failed to check member")
		return apperrors.RetrievalFailed("member", err)
	}
	if !exists {
		return apperrors.MemberNotFound(id)
	}
	return nil
}

func (s *TaskService) resolve(d *dto.DateTime) *time.Time {
	if d == nil {
		return nil
	}
	t := d.In(s.loc)
	return &t
}
