package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"markova/internal/domain"
	"markova/internal/generation"
)

// GenerateStrategy builds a strategic plan for one of the caller's brands and stores it.
func (a *App) GenerateStrategy(w http.ResponseWriter, r *http.Request) {
	s, ok := a.owner(w, r)
	if !ok {
		return
	}
	var req generation.StrategyRequest
	if !a.decode(w, r, &req) {
		return
	}
	req.UserID = s.UserID
	plan, err := a.Generator.SubmitStrategy(r.Context(), req)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	if _, err := a.Strategies.Save(r.Context(), plan); err != nil {
		a.fail(w, r, err)
		return
	}
	a.json(w, http.StatusCreated, plan)
}

func (a *App) ListStrategies(w http.ResponseWriter, r *http.Request) {
	s, ok := a.session(w, r)
	if !ok {
		return
	}
	plans, err := a.Strategies.List(r.Context(), s.UserID)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	a.json(w, http.StatusOK, map[string]any{"strategies": plans})
}

func (a *App) GetStrategy(w http.ResponseWriter, r *http.Request) {
	s, ok := a.session(w, r)
	if !ok {
		return
	}
	plan, err := a.ownedStrategy(r.Context(), s.UserID, chi.URLParam(r, "id"))
	if err != nil {
		a.fail(w, r, err)
		return
	}
	a.json(w, http.StatusOK, plan)
}

func (a *App) DeleteStrategy(w http.ResponseWriter, r *http.Request) {
	s, ok := a.session(w, r)
	if !ok {
		return
	}
	plan, err := a.ownedStrategy(r.Context(), s.UserID, chi.URLParam(r, "id"))
	if err == nil {
		err = a.Strategies.Delete(r.Context(), plan.ID)
	}
	if err != nil {
		a.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (a *App) ownedStrategy(ctx context.Context, userID, id string) (*domain.StrategicPlan, error) {
	if !isUUID(id) {
		return nil, domain.ErrNotFound
	}
	plan, err := a.Strategies.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if plan.UserID != userID {
		return nil, domain.ErrNotFound
	}
	return plan, nil
}
