package errors

import "net/http"

var ErrUnauthorized = &Exception{
	Code:       "unauthorized",
	Message:    "could not validate credentials",
	StatusCode: http.StatusUnauthorized,
}

var ErrInvalidCredentials = &Exception{
	Code:       "unauthorized",
	Message:    "incorrect username or password",
	StatusCode: http.StatusUnauthorized,
}
