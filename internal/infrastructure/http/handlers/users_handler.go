package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/niloofarsh/taskhub/internal/application/ports"
	"github.com/niloofarsh/taskhub/internal/domain"
	"github.com/niloofarsh/taskhub/internal/infrastructure/http/middleware"
	"github.com/niloofarsh/taskhub/internal/infrastructure/http/render"
)

// UsersHandler serves admin account management. Deactivation is the only
// removal the system models; rows are never hard-deleted.
type UsersHandler struct {
	users ports.UserRepository
	log   zerolog.Logger
}

func NewUsersHandler(users ports.UserRepository, log zerolog.Logger) *UsersHandler {
	return &UsersHandler{users: users, log: log}
}

// Deactivate flips a user's active flag. Admin only; a deactivated user's
// tokens keep verifying but fail the authentication gate's live-user check.
func (h *UsersHandler) Deactivate(w http.ResponseWriter, r *http.Request) {
	ident := middleware.IdentityFromContext(r.Context())
	if ident == nil {
		render.Error(w, r, http.StatusUnauthorized, "authentication required")
		return
	}
	if ident.Role != domain.RoleAdmin {
		render.Error(w, r, http.StatusForbidden, "admin role required")
		return
	}
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		render.Error(w, r, http.StatusNotFound, "user not found")
		return
	}
	userID := domain.NewUserID(id)
	user, err := h.users.GetByID(r.Context(), userID)
	if err != nil {
		h.log.Error().Err(err).Msg("load user for deactivation")
		render.Error(w, r, http.StatusInternalServerError, "")
		return
	}
	if user == nil {
		render.Error(w, r, http.StatusNotFound, "user not found")
		return
	}
	if err := h.users.Deactivate(r.Context(), userID); err != nil {
		h.log.Error().Err(err).Msg("deactivate user")
		render.Error(w, r, http.StatusInternalServerError, "")
		return
	}
	AuditLog(h.log, r, "user.deactivate", userID.String(), true, "")
	render.WriteMessage(w, r, http.StatusOK, nil, "user deactivated")
}
