package model

import (
	"time"

	"task-tracker.com/task-tracker/internal/constants"
)

type Task struct {
	ID          uint                 `gorm:"primaryKey" json:"id"`
	Title       string               `gorm:"not null;index" json:"title"`
	Description *string              `json:"description"`
	MemberID    *uint                `gorm:"index" json:"member_id"`
	Status      constants.TaskStatus `gorm:"type:varchar(32);not null;index" json:"status"`
	Version     uint                 `gorm:"not null;default:1" json:"version"`
	CreatedAt   time.Time            `gorm:"not null;index" json:"created_at"`
	StartDate   *time.Time           `json:"start_date"`
	EndDate     *time.Time           `gorm:"index" json:"end_date"`
	Logs        []TaskLog            `gorm:"foreignKey:TaskID;constraint:OnDelete:CASCADE" json:"logs"`
}
