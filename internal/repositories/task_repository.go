package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"task-tracker.com/task-tracker/internal/constants"
	model "task-tracker.com/task-tracker/internal/models"
)

type TaskRepository struct {
	db   *gorm.DB
	logs *TaskLogRepository
	now  func() time.Time
}

var (
	ErrTaskNotFound   = errors.New("task not found")
	ErrOptimisticLock = errors.New("optimistic locking conflict")
)

func NewTaskRepository(db *gorm.DB, logs *TaskLogRepository) *TaskRepository {
	return &TaskRepository{db: db, logs: logs, now: utcNow}
}

// CreateTask inserts the task and its creation log in one transaction.
func (r *TaskRepository) CreateTask(ctx context.Context, task *model.Task) error {
	task.Version = 1
	task.CreatedAt = r.now()
	task.StartDate = toUTC(task.StartDate)
	task.EndDate = toUTC(task.EndDate)

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(task).Error; err != nil {
			return err
		}

		entry, err := r.logs.WithTx(tx).Record(ctx, task.ID, nil, task.Status)
		if err != nil {
			return err
		}

		task.Logs = []model.TaskLog{*entry}
		return nil
	})
}

func (r *TaskRepository) FindByID(ctx context.Context, id uint) (*model.Task, error) {
	var task model.Task
	err := r.db.WithContext(ctx).
		Preload("Logs", chronological).
		First(&task, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, err
	}
	return &task, nil
}

// List returns tasks newest first. A nil status returns every task.
func (r *TaskRepository) List(ctx context.Context, status *constants.TaskStatus) ([]model.Task, error) {
	tasks := make([]model.Task, 0)

	query := r.db.WithContext(ctx).Preload("Logs", chronological)
	if status != nil {
		query = query.Where("status = ?", string(*status))
	}

	err := query.Order("created_at desc").Order("id desc").Find(&tasks).Error
	return tasks, err
}

// Update applies changes (column name to value) to the task. When the
// changes carry a status different from the stored one, the transition is
// logged in the same transaction. The write is guarded by the version read
// inside the transaction so a concurrent writer cannot slip in between the
// logged old status and the update.
func (r *TaskRepository) Update(ctx context.Context, id uint, changes map[string]any) (*model.Task, error) {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var current model.Task
		if err := tx.First(&current, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrTaskNotFound
			}
			return err
		}

		if next, ok := changes["status"].(constants.TaskStatus); ok && next != current.Status {
			old := current.Status
			if _, err := r.logs.WithTx(tx).Record(ctx, current.ID, &old, next); err != nil {
				return err
			}
		}

		updates := make(map[string]any, len(changes)+1)
		for column, value := range changes {
			switch v := value.(type) {
			case *time.Time:
				updates[column] = toUTC(v)
			case constants.TaskStatus:
				updates[column] = string(v)
			default:
				updates[column] = value
			}
		}
		updates["version"] = gorm.Expr("version + 1")

		res := tx.Model(&model.Task{}).
			Where("id = ? AND version = ?", current.ID, current.Version).
			Updates(updates)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrOptimisticLock
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return r.FindByID(ctx, id)
}

// Delete removes the task together with its logs.
func (r *TaskRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("task_id = ?", id).Delete(&model.TaskLog{}).Error; err != nil {
			return err
		}

		res := tx.Delete(&model.Task{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrTaskNotFound
		}
		return nil
	})
}

func toUTC(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	utc := t.UTC()
	return &utc
}
