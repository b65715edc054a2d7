package model

import (
	"time"

	"task-tracker.com/task-tracker/internal/constants"
)

// TaskLog is one recorded status transition. OldStatus is nil only on the
// record written when the task is created.
type TaskLog struct {
	ID        uint                  `gorm:"primaryKey" json:"id"`
	TaskID    uint                  `gorm:"not null;index" json:"task_id"`
	OldStatus *constants.TaskStatus `gorm:"type:varchar(32)" json:"old_status"`
	NewStatus constants.TaskStatus  `gorm:"type:varchar(32);not null" json:"new_status"`
	Timestamp time.Time             `gorm:"not null;index" json:"timestamp"`
}
