package errors

import (
	"fmt"
	"net/http"
)

var ErrNotFound = &Exception{
	Code:       "not_found",
	Message:    "resource not found",
	StatusCode: http.StatusNotFound,
}

func TaskNotFound(id uint) *Exception {
	return ErrNotFound.with(fmt.Sprintf("task with ID %d not found", id), nil)
}

func MemberNotFound(id uint) *Exception {
	return ErrNotFound.with(fmt.Sprintf("member with ID %d not found", id), nil)
}

func UserNotFound(username string) *Exception {
	return ErrNotFound.with(fmt.Sprintf("user %q not found", username), nil)
}
