package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/niloofarsh/taskhub/internal/domain"
	"github.com/niloofarsh/taskhub/internal/infrastructure/http/middleware"
	"github.com/niloofarsh/taskhub/internal/infrastructure/http/render"
	"github.com/niloofarsh/taskhub/internal/infrastructure/persistence/memory"
)

func deactivateRequest(t *testing.T, users *memory.UserRepository, caller middleware.Identity, targetID string) (*httptest.ResponseRecorder, render.Envelope) {
	t.Helper()
	h := NewUsersHandler(users, zerolog.Nop())
	router := chi.NewRouter()
	router.Delete("/users/{id}", h.Deactivate)

	r := httptest.NewRequest(http.MethodDelete, "/users/"+targetID, nil)
	r = r.WithContext(middleware.WithIdentity(r.Context(), caller))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, r)

	var env render.Envelope
	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
		t.Fatalf("unmarshal envelope: %v", err)
	}
	return w, env
}

func TestDeactivateRequiresAdmin(t *testing.T) {
	users := memory.NewUserRepository()
	caller := middleware.Identity{ID: domain.NewUserID(uuid.New()), Role: domain.RoleUser}

	w, env := deactivateRequest(t, users, caller, uuid.NewString())
	if w.Code != http.StatusForbidden || env.Message != "admin role required" {
		t.Errorf("non-admin: %d %q", w.Code, env.Message)
	}
}

func TestDeactivateUnknownUser(t *testing.T) {
	users := memory.NewUserRepository()
	admin := middleware.Identity{ID: domain.NewUserID(uuid.New()), Role: domain.RoleAdmin}

	w, env := deactivateRequest(t, users, admin, uuid.NewString())
	if w.Code != http.StatusNotFound || env.Message != "user not found" {
		t.Errorf("unknown user: %d %q", w.Code, env.Message)
	}
}

func TestDeactivate(t *testing.T) {
	users := memory.NewUserRepository()
	admin := middleware.Identity{ID: domain.NewUserID(uuid.New()), Role: domain.RoleAdmin}
	now := time.Now()
	target := &domain.User{
		ID: domain.NewUserID(uuid.New()), Email: "bob@example.com",
		Role: domain.RoleUser, Active: true, CreatedAt: now, UpdatedAt: now,
	}
	if err := users.Create(context.Background(), target); err != nil {
		t.Fatalf("create: %v", err)
	}

	w, env := deactivateRequest(t, users, admin, target.ID.String())
	if w.Code != http.StatusOK || env.Message != "user deactivated" {
		t.Fatalf("deactivate: %d %q", w.Code, env.Message)
	}
	stored, err := users.GetByID(context.Background(), target.ID)
	if err != nil || stored == nil {
		t.Fatalf("reload: %v, %v", stored, err)
	}
	if stored.Active {
		t.Error("user should be inactive")
	}
}
