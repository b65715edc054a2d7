package errors

import (
	"fmt"
	"net/http"
)

var ErrConflict = &Exception{
	Code:       "conflict",
	Message:    "conflict",
	StatusCode: http.StatusConflict,
}

func MemberNameTaken(name string) *Exception {
	return ErrConflict.with(fmt.Sprintf("member with name '%s' already exists", name), nil)
}

func MemberHasTasks(name string) *Exception {
	return ErrConflict.with(fmt.Sprintf("cannot delete member '%s' while tasks are still assigned", name), nil)
}
