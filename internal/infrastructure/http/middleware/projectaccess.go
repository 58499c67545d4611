package middleware

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/niloofarsh/taskhub/internal/application/ports"
	"github.com/niloofarsh/taskhub/internal/domain"
	"github.com/niloofarsh/taskhub/internal/infrastructure/http/render"
)

const maxPeekBody = 1 << 20

// ProjectAccess is the authorization gate: owner-or-admin on the target
// project. It resolves the project id from the route ("projectID" or "id"),
// falling back to a project_id body field, loads the project, and attaches
// it to the context on success. Must run after Authenticator.
type ProjectAccess struct {
	projects ports.ProjectRepository
	log      zerolog.Logger
}

func NewProjectAccess(projects ports.ProjectRepository, log zerolog.Logger) *ProjectAccess {
	return &ProjectAccess{projects: projects, log: log}
}

func (m *ProjectAccess) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ident := IdentityFromContext(r.Context())
		if ident == nil {
			render.Error(w, r, http.StatusUnauthorized, "authentication required")
			return
		}
		idStr := chi.URLParam(r, "projectID")
		if idStr == "" {
			idStr = chi.URLParam(r, "id")
		}
		if idStr == "" {
			idStr = peekProjectID(r)
		}
		if idStr == "" {
			render.Error(w, r, http.StatusBadRequest, "project id not provided")
			return
		}
		projectID, err := uuid.Parse(idStr)
		if err != nil {
			render.Error(w, r, http.StatusNotFound, "project not found")
			return
		}
		p, err := m.projects.GetByID(r.Context(), domain.NewProjectID(projectID))
		if err != nil {
			m.log.Error().Err(err).Str("project_id", idStr).Msg("load project for authz")
			render.Error(w, r, http.StatusInternalServerError, "error verifying permissions")
			return
		}
		if p == nil {
			render.Error(w, r, http.StatusNotFound, "project not found")
			return
		}
		if !p.AccessibleBy(ident.ID, ident.Role) {
			render.Error(w, r, http.StatusForbidden, "not authorized to modify this project")
			return
		}
		next.ServeHTTP(w, r.WithContext(WithProject(r.Context(), p)))
	})
}

// peekProjectID reads a project_id field from a JSON body without consuming
// it for the handler.
func peekProjectID(r *http.Request) string {
	if r.Body == nil {
		return ""
	}
	buf, err := io.ReadAll(io.LimitReader(r.Body, maxPeekBody))
	_ = r.Body.Close()
	r.Body = io.NopCloser(bytes.NewReader(buf))
	if err != nil {
		return ""
	}
	var body struct {
		ProjectID string `json:"project_id"`
	}
	if err := json.Unmarshal(buf, &body); err != nil {
		return ""
	}
	return body.ProjectID
}
