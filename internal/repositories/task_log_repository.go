package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"task-tracker.com/task-tracker/internal/constants"
	model "task-tracker.com/task-tracker/internal/models"
)

// TaskLogRepository appends status transition records. Logs are write-once:
// there is no update path and rows only disappear together with their task.
type TaskLogRepository struct {
	db  *gorm.DB
	now func() time.Time
}

func NewTaskLogRepository(db *gorm.DB) *TaskLogRepository {
	return &TaskLogRepository{db: db, now: utcNow}
}

// WithTx binds the recorder to an open transaction so the log row commits or
// rolls back together with the task change that caused it.
func (r *TaskLogRepository) WithTx(tx *gorm.DB) *TaskLogRepository {
	return &TaskLogRepository{db: tx, now: r.now}
}

func (r *TaskLogRepository) Record(
	ctx context.Context,
	taskID uint,
	oldStatus *constants.TaskStatus,
	newStatus constants.TaskStatus,
) (*model.TaskLog, error) {
	entry := &model.TaskLog{
		TaskID:    taskID,
		OldStatus: oldStatus,
		NewStatus: newStatus,
		Timestamp: r.now(),
	}

	if err := r.db.WithContext(ctx).Create(entry).Error; err != nil {
		return nil, err
	}

	return entry, nil
}

func (r *TaskLogRepository) ListByTask(ctx context.Context, taskID uint) ([]model.TaskLog, error) {
	logs := make([]model.TaskLog, 0)
	err := r.db.WithContext(ctx).
		Where("task_id = ?", taskID).
		Scopes(chronological).
		Find(&logs).Error
	return logs, err
}

func chronological(db *gorm.DB) *gorm.DB {
	return db.Order("timestamp asc").Order("id asc")
}

func utcNow() time.Time {
	return time.Now().UTC()
}
