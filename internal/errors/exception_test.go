package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestException_IsMatchesByCode(t *testing.T) {
	err := fmt.Errorf("loading: %w", TaskNotFound(7))

	if !errors.Is(err, ErrNotFound) {
		t.Fatal("expected wrapped TaskNotFound to match ErrNotFound")
	}
	if errors.Is(err, ErrConflict) {
		t.Fatal("did not expect TaskNotFound to match ErrConflict")
	}
	if StatusCode(err) != http.StatusNotFound {
		t.Errorf("expected status %d, got %d", http.StatusNotFound, StatusCode(err))
	}
	if Message(err) != "task with ID 7 not found" {
		t.Errorf("unexpected message %q", Message(err))
	}
}

func TestException_MessageHidesCause(t *testing.T) {
	cause := errors.New("UNIQUE constraint failed: members.name")
	err := CreationFailed("member", cause)

	if !errors.Is(err, cause) {
		t.Fatal("expected cause to be reachable through Unwrap")
	}
	if Message(err) != "failed to create member" {
		t.Errorf("unexpected client message %q", Message(err))
	}
	if StatusCode(err) != http.StatusInternalServerError {
		t.Errorf("expected 500, got %d", StatusCode(err))
	}
}

func TestStatusCode_UnknownError(t *testing.T) {
	err := errors.New("boom")

	if StatusCode(err) != http.StatusInternalServerError {
		t.Errorf("expected 500, got %d", StatusCode(err))
	}
	if Message(err) != http.StatusText(http.StatusInternalServerError) {
		t.Errorf("unexpected message %q", Message(err))
	}
}

func TestOptimisticLock_IsConflict(t *testing.T) {
	if !errors.Is(TaskModifiedConcurrently(3), ErrConflict) {
		t.Error("expected optimistic lock failures to be conflicts")
	}
}
