package errors

import (
	stdErrors "errors"
	"net/http"
	"testing"
)

func TestWrapPreservesCause(t *testing.T) {
	cause := stdErrors.New("connection refused")
	err := Wrap(CodeDependency, cause, "load order")

	if err.Code() != CodeDependency {
		t.Fatalf("expected dependency code, got %s", err.Code())
	}
	if !stdErrors.Is(err, cause) {
		t.Fatalf("expected wrapped cause to be reachable via errors.Is")
	}
}

func TestWrapNilCause(t *testing.T) {
	err := Wrap(CodeValidation, nil, "quantity required")
	if err.Unwrap() != nil {
		t.Fatalf("expected nil cause")
	}
	if err.Message() != "quantity required" {
		t.Fatalf("unexpected message %q", err.Message())
	}
}

func TestAsFindsTypedError(t *testing.T) {
	inner := New(CodeNotFound, "product not found")
	wrapped := Wrap(CodeDependency, inner, "projection failed")

	typed := As(wrapped)
	if typed == nil {
		t.Fatal("expected typed error")
	}
	if typed.Code() != CodeDependency {
		t.Fatalf("expected outermost code, got %s", typed.Code())
	}

	if As(stdErrors.New("plain")) != nil {
		t.Fatal("plain errors should not match")
	}
}

func TestMetadataForUnknownCode(t *testing.T) {
	meta := MetadataFor(Code("SOMETHING_ELSE"))
	if meta.HTTPStatus != http.StatusInternalServerError {
		t.Fatalf("unknown codes should map to internal, got %d", meta.HTTPStatus)
	}
}
