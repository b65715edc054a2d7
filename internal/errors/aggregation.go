package errors

import "net/http"

var ErrAggregation = &Exception{
	Code:       "aggregation_failed",
	Message:    "failed to load dashboard data",
	StatusCode: http.StatusInternalServerError,
}

// AggregationFailed hides which dashboard view failed from the client while
// keeping the joined causes for logging.
func AggregationFailed(cause error) *Exception {
	return ErrAggregation.with(ErrAggregation.Message, cause)
}
