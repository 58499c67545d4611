package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/niloofarsh/taskhub/internal/domain"
	infraauth "github.com/niloofarsh/taskhub/internal/infrastructure/auth"
	"github.com/niloofarsh/taskhub/internal/infrastructure/http/render"
	"github.com/niloofarsh/taskhub/internal/infrastructure/persistence/memory"
)

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) render.Envelope {
	t.Helper()
	var env render.Envelope
	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
		t.Fatalf("unmarshal envelope: %v", err)
	}
	return env
}

func newAuthFixture(t *testing.T) (*Authenticator, *memory.UserRepository, *infraauth.TokenCodec, *domain.User) {
	t.Helper()
	users := memory.NewUserRepository()
	codec := infraauth.NewTokenCodec([]byte("test-secret"), "taskhub", time.Hour)
	now := time.Now()
	user := &domain.User{
		ID: domain.NewUserID(uuid.New()), Email: "alice@example.com",
		Role: domain.RoleUser, Active: true, CreatedAt: now, UpdatedAt: now,
	}
	if err := users.Create(context.Background(), user); err != nil {
		t.Fatalf("create user: %v", err)
	}
	return NewAuthenticator(codec, users, zerolog.Nop()), users, codec, user
}

func authProbe(captured **Identity) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*captured = IdentityFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuthenticatorNoToken(t *testing.T) {
	auth, _, _, _ := newAuthFixture(t)
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/projects", nil)
	var ident *Identity
	auth.Handler(authProbe(&ident)).ServeHTTP(w, r)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d", w.Code)
	}
	if env := decodeEnvelope(t, w); env.Message != "no token provided" {
		t.Errorf("message = %q", env.Message)
	}
	if ident != nil {
		t.Error("handler should not run")
	}
}

func TestAuthenticatorBadFormat(t *testing.T) {
	auth, _, codec, user := newAuthFixture(t)
	token, err := codec.Issue(user)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	for _, header := range []string{"Basic abc", token, "Bearer "} {
		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodGet, "/projects", nil)
		r.Header.Set("Authorization", header)
		var ident *Identity
		auth.Handler(authProbe(&ident)).ServeHTTP(w, r)

		if w.Code != http.StatusUnauthorized {
			t.Errorf("header %q: status = %d", header, w.Code)
		}
		if env := decodeEnvelope(t, w); env.Message != "invalid token format" {
			t.Errorf("header %q: message = %q", header, env.Message)
		}
	}
}

func TestAuthenticatorBadToken(t *testing.T) {
	auth, _, _, _ := newAuthFixture(t)
	other := infraauth.NewTokenCodec([]byte("other-secret"), "taskhub", time.Hour)
	token, err := other.Issue(&domain.User{ID: domain.NewUserID(uuid.New()), Email: "x@example.com", Role: domain.RoleUser})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/projects", nil)
	r.Header.Set("Authorization", "Bearer "+token)
	var ident *Identity
	auth.Handler(authProbe(&ident)).ServeHTTP(w, r)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d", w.Code)
	}
	if env := decodeEnvelope(t, w); env.Message != "invalid or expired token" {
		t.Errorf("message = %q", env.Message)
	}
}

func TestAuthenticatorInactiveUser(t *testing.T) {
	auth, users, codec, user := newAuthFixture(t)
	token, err := codec.Issue(user)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if err := users.Deactivate(context.Background(), user.ID); err != nil {
		t.Fatalf("deactivate: %v", err)
	}
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/projects", nil)
	r.Header.Set("Authorization", "Bearer "+token)
	var ident *Identity
	auth.Handler(authProbe(&ident)).ServeHTTP(w, r)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d", w.Code)
	}
	if env := decodeEnvelope(t, w); env.Message != "user not found or inactive" {
		t.Errorf("message = %q", env.Message)
	}
}

func TestAuthenticatorUnknownSubject(t *testing.T) {
	auth, _, codec, _ := newAuthFixture(t)
	// Valid token for a user that was never persisted.
	token, err := codec.Issue(&domain.User{ID: domain.NewUserID(uuid.New()), Email: "ghost@example.com", Role: domain.RoleUser})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/projects", nil)
	r.Header.Set("Authorization", "Bearer "+token)
	var ident *Identity
	auth.Handler(authProbe(&ident)).ServeHTTP(w, r)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d", w.Code)
	}
	if env := decodeEnvelope(t, w); env.Message != "user not found or inactive" {
		t.Errorf("message = %q", env.Message)
	}
}

func TestAuthenticatorSuccess(t *testing.T) {
	auth, _, codec, user := newAuthFixture(t)
	token, err := codec.Issue(user)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/projects", nil)
	r.Header.Set("Authorization", "Bearer "+token)
	var ident *Identity
	auth.Handler(authProbe(&ident)).ServeHTTP(w, r)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}
	if ident == nil {
		t.Fatal("identity not attached")
	}
	if ident.ID != user.ID || ident.Email != user.Email || ident.Role != user.Role {
		t.Errorf("identity = %+v", ident)
	}
}
