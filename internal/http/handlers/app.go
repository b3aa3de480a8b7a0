package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"

	"markova/internal/domain"
	"markova/internal/generation"
	"markova/internal/i18n"
	"markova/internal/infra"
	"markova/internal/infra/credentials"
	"markova/internal/middleware"
	"markova/internal/session"
)

// maxBodyBytes fits three 4 MB reference images after base64 expansion.
const maxBodyBytes = 24 << 20

// App holds the dependencies shared by every handler.
type App struct {
	Config      *infra.Config
	Logger      infra.Logger
	Credentials credentials.Provider

	Generator    *generation.Service
	CampaignFlow *generation.CampaignFlow
	VideoJobs    *generation.VideoJobs

	BrandKits  domain.BrandKitRepository
	Campaigns  domain.CampaignRepository
	Users      domain.UserRepository
	Plans      domain.PlanRepository
	Strategies domain.StrategyRepository
	Videos     domain.VideoRepository
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
	Detail  string `json:"detail,omitempty"`
}

func (a *App) json(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func (a *App) error(w http.ResponseWriter, r *http.Request, status int, body errorBody) {
	if body.Message == "" {
		body.Message = i18n.T(middleware.LocaleFromContext(r.Context()), body.Code)
	}
	a.json(w, status, map[string]errorBody{"error": body})
}

// fail maps an error returned by a service or repository onto a status code
// and the JSON error envelope. Remote diagnostics are passed through verbatim.
func (a *App) fail(w http.ResponseWriter, r *http.Request, err error) {
	var (
		validationErr *domain.ValidationError
		remoteErr     *domain.RemoteServiceError
		noOutputErr   *domain.NoOutputError
		authErr       *domain.AuthExpiredError
	)
	switch {
	case errors.As(err, &validationErr):
		a.error(w, r, http.StatusBadRequest, errorBody{Code: i18n.MsgValidation, Field: validationErr.Field, Detail: validationErr.Message})
	case errors.As(err, &authErr):
		a.error(w, r, http.StatusUnauthorized, errorBody{Code: i18n.MsgAuthExpired, Detail: authErr.Message})
	case errors.As(err, &remoteErr):
		a.error(w, r, http.StatusBadGateway, errorBody{Code: i18n.MsgRemote, Message: remoteErr.Message})
	case errors.As(err, &noOutputErr):
		a.error(w, r, http.StatusBadGateway, errorBody{Code: i18n.MsgNoOutput, Detail: noOutputErr.Reason})
	case errors.Is(err, domain.ErrNotFound):
		a.error(w, r, http.StatusNotFound, errorBody{Code: i18n.MsgNotFound})
	case errors.Is(err, domain.ErrForbidden):
		a.error(w, r, http.StatusForbidden, errorBody{Code: i18n.MsgForbidden})
	case errors.Is(err, domain.ErrConflict):
		a.error(w, r, http.StatusConflict, errorBody{Code: i18n.MsgConflict})
	case errors.Is(err, credentials.ErrNoCredential):
		a.error(w, r, http.StatusServiceUnavailable, errorBody{Code: i18n.MsgCredentialMissing})
	case errors.Is(err, domain.ErrPollTimeout):
		a.error(w, r, http.StatusGatewayTimeout, errorBody{Code: i18n.MsgTimeout})
	case errors.Is(err, context.Canceled):
		a.Logger.Warn().Str("request_id", middleware.RequestIDFromContext(r.Context())).Msg("request cancelled by client")
	default:
		a.Logger.Error().Err(err).
			Str("request_id", middleware.RequestIDFromContext(r.Context())).
			Str("path", r.URL.Path).
			Msg("request failed")
		a.error(w, r, http.StatusInternalServerError, errorBody{Code: i18n.MsgInternal})
	}
}

// decode reads a JSON body into dst, answering 400 itself on failure.
func (a *App) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		a.error(w, r, http.StatusBadRequest, errorBody{Code: i18n.MsgBadRequest, Detail: err.Error()})
		return false
	}
	return true
}

// session returns the caller, answering 401 itself when there is none.
func (a *App) session(w http.ResponseWriter, r *http.Request) (session.Session, bool) {
	s, ok := session.From(r.Context())
	if !ok {
		a.error(w, r, http.StatusUnauthorized, errorBody{Code: i18n.MsgUnauthorized})
	}
	return s, ok
}

// UserRole looks up the stored role of a user for the admin gate.
func (a *App) UserRole(ctx context.Context, userID string) (domain.UserRole, error) {
	u, err := a.Users.GetByID(ctx, userID)
	if err != nil {
		return "", err
	}
	return u.Role, nil
}

// isUUID guards id lookups so a malformed path id reads as not found instead
// of a database cast error.
func isUUID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
