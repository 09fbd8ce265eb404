package errs

import (
	"errors"
	"testing"
)

func TestError_Error(t *testing.T) {
	e := New("A secret message")
	got := e.Error()
	want := "A secret message"
	if got != want {
		t.Errorf("Received: %v, Expected: %v", got, want)
	}
}

func TestValidationError_Error(t *testing.T) {
	got := ErrInvalidRecord("pkg/foo/bar.go", "missed statements exceed total")
	want := "invalid coverage record for pkg/foo/bar.go: missed statements exceed total"
	if got.Error() != want {
		t.Errorf("Received: %v, Expected: %v", got, want)
	}

	e := &ValidationError{Remark: "negative statement count"}
	want = "invalid coverage input: negative statement count"
	if e.Error() != want {
		t.Errorf("Received: %v, Expected: %v", e.Error(), want)
	}
}

func TestPublishError_Unwrap(t *testing.T) {
	cause := New("connection refused")
	e := &PublishError{Identity: "github/org/repo/42", Cause: cause}
	want := "failed to publish annotation github/org/repo/42: connection refused"
	if e.Error() != want {
		t.Errorf("Received: %v, Expected: %v", e.Error(), want)
	}
	if !errors.Is(e, cause) {
		t.Errorf("expected PublishError to wrap its cause")
	}
}
