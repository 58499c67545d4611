package handlers

import (
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
)

func TestSanitizeEmail(t *testing.T) {
	cases := map[string]string{
		"  Alice@Example.COM ": "alice@example.com",
		"bob@example.com":      "bob@example.com",
		strings.Repeat("a", 255) + "@x.io": "",
	}
	for in, want := range cases {
		if got := SanitizeEmail(in); got != want {
			t.Errorf("SanitizeEmail(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestSanitizePassword(t *testing.T) {
	if got := SanitizePassword("  Passw0rd  "); got != "Passw0rd" {
		t.Errorf("SanitizePassword = %q", got)
	}
	if got := SanitizePassword(strings.Repeat("x", 129)); got != "" {
		t.Errorf("over-length password should be rejected, got %q", got)
	}
}

func TestValidationMessage(t *testing.T) {
	v := validator.New()
	var body struct {
		Email  string `json:"email" validate:"required,email"`
		Status string `json:"status" validate:"omitempty,oneof=active completed canceled"`
	}
	body.Email = "nope"
	body.Status = "archived"
	err := v.Struct(&body)
	if err == nil {
		t.Fatal("expected validation errors")
	}
	msg := validationMessage(err)
	if !strings.Contains(msg, "email must be a valid email address") {
		t.Errorf("message = %q", msg)
	}
	if !strings.Contains(msg, "status must be one of: active, completed, canceled") {
		t.Errorf("message = %q", msg)
	}
}
