package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/niloofarsh/taskhub/internal/application/ports"
	"github.com/niloofarsh/taskhub/internal/application/project"
	"github.com/niloofarsh/taskhub/internal/application/task"
	"github.com/niloofarsh/taskhub/internal/domain"
	"github.com/niloofarsh/taskhub/internal/infrastructure/http/middleware"
	"github.com/niloofarsh/taskhub/internal/infrastructure/http/render"
)

// ProjectsHandler serves /projects. Mutating routes and single-project reads
// sit behind the project access gate, which loads the project into context.
type ProjectsHandler struct {
	create    *project.Create
	list      *project.List
	update    *project.Update
	delete    *project.Delete
	listTasks *task.List
	validate  *validator.Validate
	log       zerolog.Logger
}

func NewProjectsHandler(create *project.Create, list *project.List, update *project.Update, del *project.Delete, listTasks *task.List, log zerolog.Logger) *ProjectsHandler {
	return &ProjectsHandler{
		create:    create,
		list:      list,
		update:    update,
		delete:    del,
		listTasks: listTasks,
		validate:  validator.New(),
		log:       log,
	}
}

func (h *ProjectsHandler) List(w http.ResponseWriter, r *http.Request) {
	ident := middleware.IdentityFromContext(r.Context())
	if ident == nil {
		render.Error(w, r, http.StatusUnauthorized, "authentication required")
		return
	}
	filter := ports.ProjectFilter{Search: r.URL.Query().Get("search")}
	if s := r.URL.Query().Get("status"); s != "" {
		status := domain.ProjectStatus(s)
		if !status.Valid() {
			render.Error(w, r, http.StatusBadRequest, "status must be one of: active, completed, canceled")
			return
		}
		filter.Status = status
	}
	projects, err := h.list.Execute(r.Context(), project.ListInput{
		CallerID:   ident.ID,
		CallerRole: ident.Role,
		Filter:     filter,
	})
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}
	render.Write(w, r, http.StatusOK, toProjectResponses(projects))
}

func (h *ProjectsHandler) Create(w http.ResponseWriter, r *http.Request) {
	ident := middleware.IdentityFromContext(r.Context())
	if ident == nil {
		render.Error(w, r, http.StatusUnauthorized, "authentication required")
		return
	}
	var body struct {
		Name        string     `json:"name" validate:"required,max=200"`
		Description string     `json:"description" validate:"max=2000"`
		Status      string     `json:"status" validate:"omitempty,oneof=active completed canceled"`
		StartDate   *time.Time `json:"start_date"`
		EndDate     *time.Time `json:"end_date"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		render.Error(w, r, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.validate.Struct(&body); err != nil {
		render.Error(w, r, http.StatusBadRequest, validationMessage(err))
		return
	}
	input := project.CreateInput{
		Name:        body.Name,
		Description: body.Description,
		Status:      domain.ProjectStatus(body.Status),
		EndDate:     body.EndDate,
		CreatedBy:   ident.ID,
	}
	if body.StartDate != nil {
		input.StartDate = *body.StartDate
	}
	result, err := h.create.Execute(r.Context(), input)
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}
	render.Write(w, r, http.StatusCreated, toProjectResponse(result.Project))
}

// Get returns the project with its tasks. The gate has already loaded the
// project and enforced owner-or-admin.
func (h *ProjectsHandler) Get(w http.ResponseWriter, r *http.Request) {
	p := middleware.ProjectFromContext(r.Context())
	if p == nil {
		render.Error(w, r, http.StatusNotFound, "project not found")
		return
	}
	tasks, err := h.listTasks.Execute(r.Context(), p.ID, ports.TaskFilter{})
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}
	render.Write(w, r, http.StatusOK, map[string]interface{}{
		"project": toProjectResponse(p),
		"tasks":   toTaskResponses(tasks),
	})
}

func (h *ProjectsHandler) Update(w http.ResponseWriter, r *http.Request) {
	p := middleware.ProjectFromContext(r.Context())
	if p == nil {
		render.Error(w, r, http.StatusNotFound, "project not found")
		return
	}
	var body struct {
		Name        *string    `json:"name" validate:"omitempty,max=200"`
		Description *string    `json:"description" validate:"omitempty,max=2000"`
		Status      *string    `json:"status" validate:"omitempty,oneof=active completed canceled"`
		StartDate   *time.Time `json:"start_date"`
		EndDate     *time.Time `json:"end_date"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		render.Error(w, r, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.validate.Struct(&body); err != nil {
		render.Error(w, r, http.StatusBadRequest, validationMessage(err))
		return
	}
	if body.Name != nil && *body.Name == "" {
		render.Error(w, r, http.StatusBadRequest, "name is required")
		return
	}
	input := project.UpdateInput{
		Project:     p,
		Name:        body.Name,
		Description: body.Description,
		StartDate:   body.StartDate,
		EndDate:     body.EndDate,
	}
	if body.Status != nil {
		status := domain.ProjectStatus(*body.Status)
		input.Status = &status
	}
	updated, err := h.update.Execute(r.Context(), input)
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}
	render.Write(w, r, http.StatusOK, toProjectResponse(updated))
}

func (h *ProjectsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	p := middleware.ProjectFromContext(r.Context())
	if p == nil {
		render.Error(w, r, http.StatusNotFound, "project not found")
		return
	}
	result, err := h.delete.Execute(r.Context(), p)
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}
	render.WriteMessage(w, r, http.StatusOK, map[string]interface{}{
		"tasks_removed": result.TasksRemoved,
	}, "project deleted")
}
