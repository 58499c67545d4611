package ports

import "github.com/niloofarsh/taskhub/internal/domain"

// PasswordHasher hashes and verifies passwords (Argon2id).
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, hash string) bool
}

// TokenClaims are the identity claims carried inside an access token.
// They may be stale relative to the live user row; authentication always
// re-fetches the user by ID and uses the row's current role/active state.
type TokenClaims struct {
	UserID domain.UserID
	Email  string
	Role   domain.Role
}

// TokenCodec signs and verifies stateless access tokens (HS256 over an
// injected secret). Verify reports every malformed, tampered, or expired
// token as errors.ErrInvalidToken; it never consults storage.
type TokenCodec interface {
	Issue(user *domain.User) (string, error)
	Verify(token string) (*TokenClaims, error)
}
