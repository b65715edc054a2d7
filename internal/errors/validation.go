package errors

import (
	"net/http"
	"strings"

	"task-tracker.com/task-tracker/internal/constants"
)

var ErrInvalidRequest = &Exception{
	Code:       "invalid_request",
	Message:    "invalid request",
	StatusCode: http.StatusBadRequest,
}

var ErrInvalidJSON = ErrInvalidRequest.with("invalid JSON payload", nil)

var ErrInvalidID = ErrInvalidRequest.with("id must be a positive integer", nil)

var ErrRateLimited = &Exception{
	Code:       "rate_limited",
	Message:    "rate limit exceeded",
	StatusCode: http.StatusTooManyRequests,
}

func Invalid(message string) *Exception {
	return ErrInvalidRequest.with(message, nil)
}

func InvalidStatus(status string) *Exception {
	valid := make([]string, 0, len(constants.TaskStatuses))
	for _, s := range constants.TaskStatuses {
		valid = append(valid, string(s))
	}
	return Invalid("invalid status '" + status + "', expected one of: " + strings.Join(valid, ", "))
}
