package middleware

import (
	"net/http"

	"github.com/rs/zerolog"

	"github.com/niloofarsh/taskhub/internal/infrastructure/http/render"
)

// Recoverer converts panics anywhere below it into a 500 envelope in the
// request's format. The panic value is logged, never returned to the client.
func Recoverer(log zerolog.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rvr := recover(); rvr != nil {
					if rvr == http.ErrAbortHandler {
						panic(rvr)
					}
					log.Error().
						Interface("panic", rvr).
						Str("method", r.Method).
						Str("path", r.URL.Path).
						Msg("request panic")
					render.Error(w, r, http.StatusInternalServerError, "")
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}
