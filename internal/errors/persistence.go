package errors

import "net/http"

var (
	ErrCreation = &Exception{
		Code:       "creation_failed",
		Message:    "failed to create resource",
		StatusCode: http.StatusInternalServerError,
	}
	ErrUpdate = &Exception{
		Code:       "update_failed",
		Message:    "failed to update resource",
		StatusCode: http.StatusInternalServerError,
	}
	ErrDeletion = &Exception{
		Code:       "deletion_failed",
		Message:    "failed to delete resource",
		StatusCode: http.StatusInternalServerError,
	}
	ErrRetrieval = &Exception{
		Code:       "retrieval_failed",
		Message:    "failed to retrieve resource",
		StatusCode: http.StatusInternalServerError,
	}
)

func CreationFailed(entity string, cause error) *Exception {
	return ErrCreation.with("failed to create "+entity, cause)
}

func UpdateFailed(entity string, cause error) *Exception {
	return ErrUpdate.with("failed to update "+entity, cause)
}

func DeletionFailed(entity string, cause error) *Exception {
	return ErrDeletion.with("failed to delete "+entity, cause)
}

func RetrievalFailed(entity string, cause error) *Exception {
	return ErrRetrieval.with("failed to retrieve "+entity, cause)
}
