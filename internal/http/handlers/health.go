package handlers

import (
	"errors"
	"net/http"

	"markova/internal/infra/credentials"
)

const (
	healthOnline       = "online"
	healthUnauthorized = "unauthorized"
)

// Health reports whether a generation credential is configured and looks
// usable. No remote call is made.
func (a *App) Health(w http.ResponseWriter, r *http.Request) {
	status := healthUnauthorized
	key, err := a.Credentials.APIKey(r.Context())
	switch {
	case err == nil && credentials.Presumed(key):
		status = healthOnline
	case err != nil && !errors.Is(err, credentials.ErrNoCredential):
		a.Logger.Warn().Err(err).Msg("health: credential lookup failed")
	}
	a.json(w, http.StatusOK, map[string]string{"status": status})
}
