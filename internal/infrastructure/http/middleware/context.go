package middleware

import (
	"context"

	"github.com/niloofarsh/taskhub/internal/domain"
)

type contextKey string

const (
	identityContextKey contextKey = "identity"
	projectContextKey  contextKey = "project"
)

// Identity is the caller summary the authentication gate attaches to the
// request context. It reflects the freshly loaded user row, not token claims.
type Identity struct {
	ID    domain.UserID
	Email string
	Role  domain.Role
}

// WithIdentity injects the authenticated identity into the context.
func WithIdentity(ctx context.Context, ident Identity) context.Context {
	return context.WithValue(ctx, identityContextKey, ident)
}

// IdentityFromContext returns the authenticated identity, or nil.
func IdentityFromContext(ctx context.Context) *Identity {
	v := ctx.Value(identityContextKey)
	if v == nil {
		return nil
	}
	ident, _ := v.(Identity)
	return &ident
}

// WithProject injects the authorized project into the context so handlers
// do not reload it.
func WithProject(ctx context.Context, project *domain.Project) context.Context {
	return context.WithValue(ctx, projectContextKey, project)
}

// ProjectFromContext returns the project from the context, or nil.
func ProjectFromContext(ctx context.Context) *domain.Project {
	v := ctx.Value(projectContextKey)
	if v == nil {
		return nil
	}
	p, _ := v.(*domain.Project)
	return p
}
