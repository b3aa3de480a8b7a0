package middleware

import (
	"encoding/json"
	"net/http"

	"markova/internal/i18n"
)

// writeError renders the same error envelope the handlers use, translated
// into the request locale.
func writeError(w http.ResponseWriter, r *http.Request, status int, code string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"error": map[string]string{
			"code":    code,
			"message": i18n.T(LocaleFromContext(r.Context()), code),
		},
	})
}
