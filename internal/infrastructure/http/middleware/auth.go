package middleware

import (
	"net/http"
	"strings"

	"github.com/rs/zerolog"

	"github.com/niloofarsh/taskhub/internal/application/ports"
	"github.com/niloofarsh/taskhub/internal/infrastructure/http/render"
)

// Authenticator is the authentication gate: it verifies the bearer token,
// re-fetches the live user row, and attaches the identity to the request
// context. Role and active state always come from the row; token claims may
// be stale.
type Authenticator struct {
	codec ports.TokenCodec
	users ports.UserRepository
	log   zerolog.Logger
}

func NewAuthenticator(codec ports.TokenCodec, users ports.UserRepository, log zerolog.Logger) *Authenticator {
	return &Authenticator{codec: codec, users: users, log: log}
}

func (m *Authenticator) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if header == "" {
			render.Error(w, r, http.StatusUnauthorized, "no token provided")
			return
		}
		tokenString, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || tokenString == "" {
			render.Error(w, r, http.StatusUnauthorized, "invalid token format")
			return
		}
		claims, err := m.codec.Verify(tokenString)
		if err != nil {
			// Expired vs tampered is visible here and nowhere else.
			m.log.Debug().Err(err).Msg("token rejected")
			render.Error(w, r, http.StatusUnauthorized, "invalid or expired token")
			return
		}
		user, err := m.users.GetByID(r.Context(), claims.UserID)
		if err != nil {
			m.log.Error().Err(err).Str("user_id", claims.UserID.String()).Msg("load user for auth")
			render.Error(w, r, http.StatusInternalServerError, "authentication error")
			return
		}
		if user == nil || !user.Active {
			render.Error(w, r, http.StatusUnauthorized, "user not found or inactive")
			return
		}
		ctx := WithIdentity(r.Context(), Identity{
			ID:    user.ID,
			Email: user.Email,
			Role:  user.Role,
		})
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
