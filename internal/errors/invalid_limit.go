package errors

import "net/http"

var ErrInvalidLimit = &Exception{
	Code:       "invalid_request",
	Message:    "limit must be between 1 and 100",
	StatusCode: http.StatusBadRequest,
}

var ErrInvalidDaysAhead = &Exception{
	Code:       "invalid_request",
	Message:    "days_ahead must be zero or positive",
	StatusCode: http.StatusBadRequest,
}
