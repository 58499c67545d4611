package auth

import (
	"context"
	"regexp"
	"time"

	"github.com/google/uuid"

	"github.com/niloofarsh/taskhub/internal/application/ports"
	"github.com/niloofarsh/taskhub/internal/domain"
	domerrors "github.com/niloofarsh/taskhub/internal/domain/errors"
)

var (
	emailRegex    = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	passwordDigit = regexp.MustCompile(`[0-9]`)
	passwordUpper = regexp.MustCompile(`[A-Z]`)
)

const minPasswordLength = 6

type RegisterInput struct {
	Email    string
	Password string
}

type RegisterResult struct {
	User *domain.User
}

// Register creates a new active account with the "user" role. The password
// is hashed here, before anything reaches the repository; persistence has no
// hashing hooks.
type Register struct {
	users  ports.UserRepository
	hasher ports.PasswordHasher
}

func NewRegister(users ports.UserRepository, hasher ports.PasswordHasher) *Register {
	return &Register{users: users, hasher: hasher}
}

func (uc *Register) Execute(ctx context.Context, input RegisterInput) (*RegisterResult, error) {
	if !emailRegex.MatchString(input.Email) {
		return nil, domerrors.ErrInvalidEmail
	}
	if len(input.Password) < minPasswordLength ||
		!passwordDigit.MatchString(input.Password) ||
		!passwordUpper.MatchString(input.Password) {
		return nil, domerrors.ErrWeakPassword
	}
	existing, err := uc.users.GetByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domerrors.ErrEmailTaken
	}
	hash, err := uc.hasher.Hash(input.Password)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	user := &domain.User{
		ID:           domain.NewUserID(uuid.New()),
		Email:        input.Email,
		PasswordHash: hash,
		Role:         domain.RoleUser,
		Active:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return &RegisterResult{User: user}, nil
}
