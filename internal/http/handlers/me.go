package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"markova/internal/domain"
	"markova/internal/session"
)

// Me returns the caller's account, creating it on the first request after
// sign-up at the auth provider.
func (a *App) Me(w http.ResponseWriter, r *http.Request) {
	s, ok := a.session(w, r)
	if !ok {
		return
	}
	user, err := a.ensureUser(r.Context(), s)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	a.json(w, http.StatusOK, user)
}

// ensureUser loads the session's user, creating the row on first sight.
// Rows owned by the user reference it, so writes call this first.
func (a *App) ensureUser(ctx context.Context, s session.Session) (*domain.User, error) {
	user, err := a.Users.GetByID(ctx, s.UserID)
	if !errors.Is(err, domain.ErrNotFound) {
		return user, err
	}
	name, _, _ := strings.Cut(s.Email, "@")
	user = &domain.User{
		ID:                 s.UserID,
		Name:               name,
		Email:              s.Email,
		Role:               domain.UserRoleUser,
		SubscriptionStatus: domain.SubscriptionInactive,
	}
	if _, err := a.Users.Save(ctx, user); err != nil {
		// A concurrent request may have created it first.
		if existing, getErr := a.Users.GetByID(ctx, s.UserID); getErr == nil {
			return existing, nil
		}
		return nil, err
	}
	return user, nil
}

// owner is session plus ensureUser for handlers that persist owned rows.
func (a *App) owner(w http.ResponseWriter, r *http.Request) (session.Session, bool) {
	s, ok := a.session(w, r)
	if !ok {
		return s, false
	}
	if _, err := a.ensureUser(r.Context(), s); err != nil {
		a.fail(w, r, err)
		return s, false
	}
	return s, true
}
