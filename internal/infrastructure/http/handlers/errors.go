package handlers

import (
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	domerrors "github.com/niloofarsh/taskhub/internal/domain/errors"
	"github.com/niloofarsh/taskhub/internal/infrastructure/http/render"
)

// respondError maps sentinel errors to envelope statuses. Anything
// unrecognized is an internal error: logged server-side, generic message to
// the client.
func respondError(w http.ResponseWriter, r *http.Request, log zerolog.Logger, err error) {
	switch {
	case errors.Is(err, domerrors.ErrInvalidEmail),
		errors.Is(err, domerrors.ErrWeakPassword),
		errors.Is(err, domerrors.ErrEmailTaken):
		render.Error(w, r, http.StatusBadRequest, err.Error())
	case errors.Is(err, domerrors.ErrInvalidCredentials),
		errors.Is(err, domerrors.ErrInvalidToken),
		errors.Is(err, domerrors.ErrUserInactive):
		render.Error(w, r, http.StatusUnauthorized, err.Error())
	case errors.Is(err, domerrors.ErrNotProjectOwner):
		render.Error(w, r, http.StatusForbidden, err.Error())
	case errors.Is(err, domerrors.ErrUserNotFound),
		errors.Is(err, domerrors.ErrProjectNotFound),
		errors.Is(err, domerrors.ErrTaskNotFound),
		errors.Is(err, domerrors.ErrAssigneeNotFound):
		render.Error(w, r, http.StatusNotFound, err.Error())
	default:
		log.Error().Err(err).Str("path", r.URL.Path).Msg("request failed")
		render.Error(w, r, http.StatusInternalServerError, "")
	}
}
