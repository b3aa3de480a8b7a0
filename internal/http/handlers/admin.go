package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"markova/internal/domain"
	"markova/internal/validation"
)

// AdminListUsers lists accounts, optionally narrowed by ?status=.
func (a *App) AdminListUsers(w http.ResponseWriter, r *http.Request) {
	status := r.URL.Query().Get("status")
	if status != "" {
		if err := validation.Var("status", status, "oneof=active inactive trialing banned"); err != nil {
			a.fail(w, r, err)
			return
		}
	}
	users, err := a.Users.List(r.Context(), domain.UserFilter{Status: domain.SubscriptionStatus(status)})
	if err != nil {
		a.fail(w, r, err)
		return
	}
	a.json(w, http.StatusOK, map[string]any{"users": users})
}

// AdminCreateUser registers an account ahead of its first sign-in. The id
// must match the subject the auth provider will issue; it is generated when
// omitted.
func (a *App) AdminCreateUser(w http.ResponseWriter, r *http.Request) {
	var user domain.User
	if !a.decode(w, r, &user) {
		return
	}
	if user.ID == "" {
		user.ID = uuid.NewString()
	} else if !isUUID(user.ID) {
		a.fail(w, r, domain.NewValidationError("id", "must be a UUID"))
		return
	}
	if user.Role == "" {
		user.Role = domain.UserRoleUser
	}
	if user.SubscriptionStatus == "" {
		user.SubscriptionStatus = domain.SubscriptionInactive
	}
	if err := validation.Struct(user); err != nil {
		a.fail(w, r, err)
		return
	}
	if _, err := a.Users.GetByID(r.Context(), user.ID); err == nil {
		a.fail(w, r, domain.ErrConflict)
		return
	} else if !errors.Is(err, domain.ErrNotFound) {
		a.fail(w, r, err)
		return
	}
	if _, err := a.Users.Save(r.Context(), &user); err != nil {
		a.fail(w, r, err)
		return
	}
	a.Logger.Info().Str("user_id", user.ID).Str("role", string(user.Role)).Msg("admin created user")
	a.json(w, http.StatusCreated, user)
}

// AdminUpdateUser changes role, plan or subscription of an account.
func (a *App) AdminUpdateUser(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !isUUID(id) {
		a.fail(w, r, domain.ErrNotFound)
		return
	}
	existing, err := a.Users.GetByID(r.Context(), id)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	user := *existing
	if !a.decode(w, r, &user) {
		return
	}
	user.ID, user.CreatedAt = existing.ID, existing.CreatedAt
	if err := validation.Struct(user); err != nil {
		a.fail(w, r, err)
		return
	}
	if err := a.Users.Update(r.Context(), &user); err != nil {
		a.fail(w, r, err)
		return
	}
	a.Logger.Info().Str("user_id", user.ID).Str("role", string(user.Role)).Str("status", string(user.SubscriptionStatus)).Msg("admin updated user")
	a.json(w, http.StatusOK, user)
}

func (a *App) AdminDeleteUser(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !isUUID(id) {
		a.fail(w, r, domain.ErrNotFound)
		return
	}
	if err := a.Users.Delete(r.Context(), id); err != nil {
		a.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// AdminListPlans lists plans; ?active=true hides retired ones.
func (a *App) AdminListPlans(w http.ResponseWriter, r *http.Request) {
	plans, err := a.Plans.List(r.Context(), domain.PlanFilter{ActiveOnly: r.URL.Query().Get("active") == "true"})
	if err != nil {
		a.fail(w, r, err)
		return
	}
	a.json(w, http.StatusOK, map[string]any{"plans": plans})
}

func (a *App) AdminCreatePlan(w http.ResponseWriter, r *http.Request) {
	var plan domain.Plan
	if !a.decode(w, r, &plan) {
		return
	}
	plan.ID = ""
	if err := validation.Struct(plan); err != nil {
		a.fail(w, r, err)
		return
	}
	if _, err := a.Plans.Save(r.Context(), &plan); err != nil {
		a.fail(w, r, err)
		return
	}
	a.json(w, http.StatusCreated, plan)
}

func (a *App) AdminUpdatePlan(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !isUUID(id) {
		a.fail(w, r, domain.ErrNotFound)
		return
	}
	existing, err := a.Plans.GetByID(r.Context(), id)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	plan := *existing
	if !a.decode(w, r, &plan) {
		return
	}
	plan.ID, plan.CreatedAt = existing.ID, existing.CreatedAt
	if err := validation.Struct(plan); err != nil {
		a.fail(w, r, err)
		return
	}
	if err := a.Plans.Update(r.Context(), &plan); err != nil {
		a.fail(w, r, err)
		return
	}
	a.json(w, http.StatusOK, plan)
}

func (a *App) AdminDeletePlan(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !isUUID(id) {
		a.fail(w, r, domain.ErrNotFound)
		return
	}
	if err := a.Plans.Delete(r.Context(), id); err != nil {
		a.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
