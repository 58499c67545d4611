package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/niloofarsh/taskhub/internal/application/ports"
	"github.com/niloofarsh/taskhub/internal/domain"
	domerrors "github.com/niloofarsh/taskhub/internal/domain/errors"
)

// TokenCodec implements ports.TokenCodec with HS256. The signing secret is
// injected at construction so tests can run with per-test secrets.
type TokenCodec struct {
	secret []byte
	issuer string
	expiry time.Duration
}

type accessClaims struct {
	jwt.RegisteredClaims
	Email string `json:"email"`
	Role  string `json:"role"`
}

func NewTokenCodec(secret []byte, issuer string, expiry time.Duration) *TokenCodec {
	return &TokenCodec{secret: secret, issuer: issuer, expiry: expiry}
}

func (t *TokenCodec) Issue(user *domain.User) (string, error) {
	now := time.Now()
	claims := accessClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    t.issuer,
			Subject:   user.ID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(t.expiry)),
		},
		Email: user.Email,
		Role:  string(user.Role),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(t.secret)
}

// Verify checks signature and expiry only; it never consults storage.
// Malformed, tampered and expired tokens all collapse to ErrInvalidToken so
// callers cannot distinguish them. The underlying cause is wrapped for
// server-side logging.
func (t *TokenCodec) Verify(tokenString string) (*ports.TokenClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &accessClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return t.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domerrors.ErrInvalidToken, err)
	}
	claims, ok := token.Claims.(*accessClaims)
	if !ok || !token.Valid {
		return nil, domerrors.ErrInvalidToken
	}
	subject, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, fmt.Errorf("%w: bad subject", domerrors.ErrInvalidToken)
	}
	return &ports.TokenClaims{
		UserID: domain.NewUserID(subject),
		Email:  claims.Email,
		Role:   domain.Role(claims.Role),
	}, nil
}

// Ensure TokenCodec implements ports.TokenCodec.
var _ ports.TokenCodec = (*TokenCodec)(nil)
