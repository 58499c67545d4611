package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/niloofarsh/taskhub/internal/application/ports"
	"github.com/niloofarsh/taskhub/internal/application/task"
	"github.com/niloofarsh/taskhub/internal/domain"
	"github.com/niloofarsh/taskhub/internal/infrastructure/http/middleware"
	"github.com/niloofarsh/taskhub/internal/infrastructure/http/render"
)

// TasksHandler serves project-scoped task routes (behind the project access
// gate) and task-id routes, which re-apply the same owner-or-admin rule via
// the task's parent project.
type TasksHandler struct {
	create   *task.Create
	list     *task.List
	get      *task.Get
	update   *task.Update
	delete   *task.Delete
	validate *validator.Validate
	log      zerolog.Logger
}

func NewTasksHandler(create *task.Create, list *task.List, get *task.Get, update *task.Update, del *task.Delete, log zerolog.Logger) *TasksHandler {
	return &TasksHandler{
		create:   create,
		list:     list,
		get:      get,
		update:   update,
		delete:   del,
		validate: validator.New(),
		log:      log,
	}
}

func (h *TasksHandler) ListByProject(w http.ResponseWriter, r *http.Request) {
	p := middleware.ProjectFromContext(r.Context())
	if p == nil {
		render.Error(w, r, http.StatusNotFound, "project not found")
		return
	}
	var filter ports.TaskFilter
	if s := r.URL.Query().Get("status"); s != "" {
		status := domain.TaskStatus(s)
		if !status.Valid() {
			render.Error(w, r, http.StatusBadRequest, "status must be one of: pending, in_progress, completed, canceled")
			return
		}
		filter.Status = status
	}
	if s := r.URL.Query().Get("priority"); s != "" {
		priority := domain.TaskPriority(s)
		if !priority.Valid() {
			render.Error(w, r, http.StatusBadRequest, "priority must be one of: low, medium, high")
			return
		}
		filter.Priority = priority
	}
	if s := r.URL.Query().Get("assigned_to"); s != "" {
		id, err := uuid.Parse(s)
		if err != nil {
			render.Error(w, r, http.StatusBadRequest, "assigned_to must be a valid id")
			return
		}
		assignee := domain.NewUserID(id)
		filter.AssignedTo = &assignee
	}
	tasks, err := h.list.Execute(r.Context(), p.ID, filter)
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}
	render.Write(w, r, http.StatusOK, toTaskResponses(tasks))
}

func (h *TasksHandler) Create(w http.ResponseWriter, r *http.Request) {
	p := middleware.ProjectFromContext(r.Context())
	if p == nil {
		render.Error(w, r, http.StatusNotFound, "project not found")
		return
	}
	var body struct {
		Title       string     `json:"title" validate:"required,max=200"`
		Description string     `json:"description" validate:"max=2000"`
		Status      string     `json:"status" validate:"omitempty,oneof=pending in_progress completed canceled"`
		Priority    string     `json:"priority" validate:"omitempty,oneof=low medium high"`
		DueDate     *time.Time `json:"due_date"`
		AssignedTo  string     `json:"assigned_to" validate:"omitempty,uuid"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		render.Error(w, r, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.validate.Struct(&body); err != nil {
		render.Error(w, r, http.StatusBadRequest, validationMessage(err))
		return
	}
	input := task.CreateInput{
		Project:     p,
		Title:       body.Title,
		Description: body.Description,
		Status:      domain.TaskStatus(body.Status),
		Priority:    domain.TaskPriority(body.Priority),
		DueDate:     body.DueDate,
	}
	if body.AssignedTo != "" {
		id, _ := uuid.Parse(body.AssignedTo)
		assignee := domain.NewUserID(id)
		input.AssignedTo = &assignee
	}
	result, err := h.create.Execute(r.Context(), input)
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}
	render.Write(w, r, http.StatusCreated, toTaskResponse(result.Task))
}

func (h *TasksHandler) Get(w http.ResponseWriter, r *http.Request) {
	ident, taskID, ok := h.taskRequest(w, r)
	if !ok {
		return
	}
	t, err := h.get.Execute(r.Context(), taskID, ident.ID, ident.Role)
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}
	render.Write(w, r, http.StatusOK, toTaskResponse(t))
}

func (h *TasksHandler) Update(w http.ResponseWriter, r *http.Request) {
	ident, taskID, ok := h.taskRequest(w, r)
	if !ok {
		return
	}
	var body struct {
		Title       *string    `json:"title" validate:"omitempty,max=200"`
		Description *string    `json:"description" validate:"omitempty,max=2000"`
		Status      *string    `json:"status" validate:"omitempty,oneof=pending in_progress completed canceled"`
		Priority    *string    `json:"priority" validate:"omitempty,oneof=low medium high"`
		DueDate     *time.Time `json:"due_date"`
		// Present-and-empty clears the assignee; absent leaves it untouched.
		AssignedTo *string `json:"assigned_to"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		render.Error(w, r, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.validate.Struct(&body); err != nil {
		render.Error(w, r, http.StatusBadRequest, validationMessage(err))
		return
	}
	if body.Title != nil && *body.Title == "" {
		render.Error(w, r, http.StatusBadRequest, "title is required")
		return
	}
	input := task.UpdateInput{
		TaskID:      taskID,
		CallerID:    ident.ID,
		CallerRole:  ident.Role,
		Title:       body.Title,
		Description: body.Description,
		DueDate:     body.DueDate,
	}
	if body.Status != nil {
		status := domain.TaskStatus(*body.Status)
		input.Status = &status
	}
	if body.Priority != nil {
		priority := domain.TaskPriority(*body.Priority)
		input.Priority = &priority
	}
	if body.AssignedTo != nil {
		if *body.AssignedTo == "" {
			input.Unassign = true
		} else {
			id, err := uuid.Parse(*body.AssignedTo)
			if err != nil {
				render.Error(w, r, http.StatusBadRequest, "assigned_to must be a valid id")
				return
			}
			assignee := domain.NewUserID(id)
			input.AssignedTo = &assignee
		}
	}
	t, err := h.update.Execute(r.Context(), input)
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}
	render.Write(w, r, http.StatusOK, toTaskResponse(t))
}

func (h *TasksHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ident, taskID, ok := h.taskRequest(w, r)
	if !ok {
		return
	}
	if err := h.delete.Execute(r.Context(), taskID, ident.ID, ident.Role); err != nil {
		respondError(w, r, h.log, err)
		return
	}
	render.WriteMessage(w, r, http.StatusOK, nil, "task deleted")
}

// taskRequest extracts the caller identity and the task id route parameter,
// writing the error response itself when either is missing.
func (h *TasksHandler) taskRequest(w http.ResponseWriter, r *http.Request) (*middleware.Identity, domain.TaskID, bool) {
	ident := middleware.IdentityFromContext(r.Context())
	if ident == nil {
		render.Error(w, r, http.StatusUnauthorized, "authentication required")
		return nil, domain.TaskID{}, false
	}
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		render.Error(w, r, http.StatusNotFound, "task not found")
		return nil, domain.TaskID{}, false
	}
	return ident, domain.NewTaskID(id), true
}
