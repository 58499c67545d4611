package errors

import "testing"

func TestSentinelErrors(t *testing.T) {
	if ErrEmailTaken == nil {
		t.Error("ErrEmailTaken should not be nil")
	}
	if ErrInvalidCredentials == nil {
		t.Error("ErrInvalidCredentials should not be nil")
	}
	if ErrProjectNotFound == nil {
		t.Error("ErrProjectNotFound should not be nil")
	}
	if ErrNotProjectOwner == nil {
		t.Error("ErrNotProjectOwner should not be nil")
	}
}
