package validation

import (
	"testing"

	domainerrors "github.com/gatherly/gatherly-server/internal/errors"
)

type sampleInput struct {
	Email string `json:"email" validate:"required,email"`
	Name  string `json:"name" validate:"required,min=2"`
}

func TestValidate_OK(t *testing.T) {
	v := New()
	err := v.Validate(sampleInput{Email: "sam@example.com", Name: "Sam"})
	if err != nil {
		t.Fatalf("expected valid input, got %v", err)
	}
}

func TestValidate_FieldErrors(t *testing.T) {
	v := New()
	err := v.Validate(sampleInput{Email: "nope", Name: ""})
	if err == nil {
		t.Fatal("expected validation error")
	}

	var domainErr *domainerrors.Error
	if !domainerrors.As(err, &domainErr) {
		t.Fatalf("expected *errors.Error, got %T", err)
	}
	if domainErr.Code != domainerrors.CodeValidation {
		t.Errorf("expected validation code, got %s", domainErr.Code)
	}

	details, ok := domainErr.Details.(map[string]string)
	if !ok {
		t.Fatalf("expected field error map, got %T", domainErr.Details)
	}
	// JSON tag names, not struct field names.
	if _, ok := details["email"]; !ok {
		t.Errorf("expected email field error, got %v", details)
	}
	if details["name"] != "is required" {
		t.Errorf("expected friendly message, got %q", details["name"])
	}
}
