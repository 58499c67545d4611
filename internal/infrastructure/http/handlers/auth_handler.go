package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/niloofarsh/taskhub/internal/application/auth"
	"github.com/niloofarsh/taskhub/internal/application/ports"
	"github.com/niloofarsh/taskhub/internal/infrastructure/http/middleware"
	"github.com/niloofarsh/taskhub/internal/infrastructure/http/render"
)

// AuthHandler serves /auth/*: registration, login and the caller's profile.
type AuthHandler struct {
	register *auth.Register
	login    *auth.Login
	users    ports.UserRepository
	validate *validator.Validate
	log      zerolog.Logger
}

func NewAuthHandler(register *auth.Register, login *auth.Login, users ports.UserRepository, log zerolog.Logger) *AuthHandler {
	return &AuthHandler{
		register: register,
		login:    login,
		users:    users,
		validate: validator.New(),
		log:      log,
	}
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Email    string `json:"email" validate:"required,email,max=254"`
		Password string `json:"password" validate:"required,max=128"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		render.Error(w, r, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.validate.Struct(&body); err != nil {
		render.Error(w, r, http.StatusBadRequest, validationMessage(err))
		return
	}
	email := SanitizeEmail(body.Email)
	password := SanitizePassword(body.Password)
	if email == "" || password == "" {
		render.Error(w, r, http.StatusBadRequest, "invalid email or password length")
		return
	}
	result, err := h.register.Execute(r.Context(), auth.RegisterInput{
		Email:    email,
		Password: password,
	})
	if err != nil {
		AuditLog(h.log, r, "user.register", "", false, err.Error())
		middleware.RecordAuthAttempt("register", false)
		respondError(w, r, h.log, err)
		return
	}
	AuditLog(h.log, r, "user.register", result.User.ID.String(), true, "")
	middleware.RecordAuthAttempt("register", true)
	render.Write(w, r, http.StatusCreated, toUserResponse(result.User))
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Email    string `json:"email" validate:"required,email,max=254"`
		Password string `json:"password" validate:"required,max=128"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		render.Error(w, r, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.validate.Struct(&body); err != nil {
		render.Error(w, r, http.StatusBadRequest, validationMessage(err))
		return
	}
	email := SanitizeEmail(body.Email)
	password := SanitizePassword(body.Password)
	if email == "" || password == "" {
		render.Error(w, r, http.StatusBadRequest, "invalid email or password length")
		return
	}
	result, err := h.login.Execute(r.Context(), auth.LoginInput{
		Email:    email,
		Password: password,
	})
	if err != nil {
		AuditLog(h.log, r, "user.login", "", false, err.Error())
		middleware.RecordAuthAttempt("login", false)
		respondError(w, r, h.log, err)
		return
	}
	AuditLog(h.log, r, "user.login", result.User.ID.String(), true, "")
	middleware.RecordAuthAttempt("login", true)
	render.Write(w, r, http.StatusOK, map[string]interface{}{
		"token":      result.Token,
		"expires_in": result.ExpiresIn,
		"user":       toUserResponse(result.User),
	})
}

// Profile returns the caller's account. Requires the authentication gate.
func (h *AuthHandler) Profile(w http.ResponseWriter, r *http.Request) {
	ident := middleware.IdentityFromContext(r.Context())
	if ident == nil {
		render.Error(w, r, http.StatusUnauthorized, "authentication required")
		return
	}
	user, err := h.users.GetByID(r.Context(), ident.ID)
	if err != nil {
		h.log.Error().Err(err).Msg("load profile")
		render.Error(w, r, http.StatusInternalServerError, "")
		return
	}
	if user == nil {
		render.Error(w, r, http.StatusNotFound, "user not found")
		return
	}
	render.Write(w, r, http.StatusOK, toUserResponse(user))
}
