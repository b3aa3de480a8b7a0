package middleware

import (
	"net/http"
	"runtime/debug"

	"markova/internal/i18n"
	"markova/internal/infra"
)

// Recover turns a panic anywhere below it into a logged JSON 500.
func Recover(l infra.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rw := wrap(w)
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				l.Error().
					Str("request_id", RequestIDFromContext(r.Context())).
					Interface("panic", rec).
					Bytes("stack", debug.Stack()).
					Msg("handler panicked")
				if !rw.written {
					writeError(rw, r, http.StatusInternalServerError, i18n.MsgInternal)
				}
			}()
			next.ServeHTTP(rw, r)
		})
	}
}
