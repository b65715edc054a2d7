package errors

import (
	"fmt"
	"net/http"
)

var ErrOptimisticLock = &Exception{
	Code:       "conflict",
	Message:    "optimistic locking conflict",
	StatusCode: http.StatusConflict,
}

func TaskModifiedConcurrently(id uint) *Exception {
	return ErrOptimisticLock.with(fmt.Sprintf("task with ID %d was modified by another request, retry", id), nil)
}
