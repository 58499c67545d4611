package errors

import "errors"

// Sentinel errors for handlers to map to HTTP status.
var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidEmail       = errors.New("invalid email address")
	ErrWeakPassword       = errors.New("password must be at least 6 characters and contain an uppercase letter and a digit")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrUserNotFound       = errors.New("user not found")
	ErrUserInactive       = errors.New("user not found or inactive")
	ErrProjectNotFound    = errors.New("project not found")
	ErrTaskNotFound       = errors.New("task not found")
	ErrAssigneeNotFound   = errors.New("assigned user not found")
	ErrNotProjectOwner    = errors.New("not authorized to modify this project")
)
