package dto

import "task-tracker.com/task-tracker/internal/constants"

type CreateTaskRequest struct {
	Title       string                `json:"title"`
	Description *string               `json:"description"`
	MemberID    *uint                 `json:"member_id"`
	Status      *constants.TaskStatus `json:"status"`
	StartDate   *DateTime             `json:"start_date"`
	EndDate     *DateTime             `json:"end_date"`
}

// UpdateTaskRequest only touches the fields present in the payload.
type UpdateTaskRequest struct {
	Title       *string               `json:"title"`
	Description Nullable[string]      `json:"description"`
	MemberID    Nullable[uint]        `json:"member_id"`
	Status      *constants.TaskStatus `json:"status"`
	StartDate   Nullable[DateTime]    `json:"start_date"`
	EndDate     Nullable[DateTime]    `json:"end_date"`
}
