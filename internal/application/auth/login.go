package auth

import (
	"context"
	"time"

	"github.com/niloofarsh/taskhub/internal/application/ports"
	"github.com/niloofarsh/taskhub/internal/domain"
	domerrors "github.com/niloofarsh/taskhub/internal/domain/errors"
)

type LoginInput struct {
	Email    string
	Password string
}

type LoginResult struct {
	Token     string
	ExpiresIn int64
	User      *domain.User
}

// Login verifies credentials and issues a stateless access token. Unknown
// email, wrong password and deactivated accounts all report the same
// ErrInvalidCredentials.
type Login struct {
	users  ports.UserRepository
	hasher ports.PasswordHasher
	codec  ports.TokenCodec
	expiry time.Duration
}

func NewLogin(users ports.UserRepository, hasher ports.PasswordHasher, codec ports.TokenCodec, expiry time.Duration) *Login {
	return &Login{users: users, hasher: hasher, codec: codec, expiry: expiry}
}

func (uc *Login) Execute(ctx context.Context, input LoginInput) (*LoginResult, error) {
	user, err := uc.users.GetByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	if user == nil || !user.Active || !uc.hasher.Verify(input.Password, user.PasswordHash) {
		return nil, domerrors.ErrInvalidCredentials
	}
	token, err := uc.codec.Issue(user)
	if err != nil {
		return nil, err
	}
	return &LoginResult{
		Token:     token,
		ExpiresIn: int64(uc.expiry.Seconds()),
		User:      user,
	}, nil
}
