package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"markova/internal/domain"
	"markova/internal/validation"
)

func (a *App) ListBrandKits(w http.ResponseWriter, r *http.Request) {
	s, ok := a.session(w, r)
	if !ok {
		return
	}
	kits, err := a.BrandKits.List(r.Context(), domain.BrandKitFilter{UserID: s.UserID})
	if err != nil {
		a.fail(w, r, err)
		return
	}
	a.json(w, http.StatusOK, map[string]any{"brand_kits": kits})
}

func (a *App) CreateBrandKit(w http.ResponseWriter, r *http.Request) {
	s, ok := a.owner(w, r)
	if !ok {
		return
	}
	var kit domain.BrandKit
	if !a.decode(w, r, &kit) {
		return
	}
	kit.ID = ""
	kit.UserID = s.UserID
	if kit.Language == "" {
		kit.Language = "both"
	}
	if err := validation.Struct(kit); err != nil {
		a.fail(w, r, err)
		return
	}
	if _, err := a.BrandKits.Save(r.Context(), &kit); err != nil {
		a.fail(w, r, err)
		return
	}
	a.json(w, http.StatusCreated, kit)
}

func (a *App) GetBrandKit(w http.ResponseWriter, r *http.Request) {
	s, ok := a.session(w, r)
	if !ok {
		return
	}
	kit, err := a.ownedBrandKit(r.Context(), s.UserID, chi.URLParam(r, "id"))
	if err != nil {
		a.fail(w, r, err)
		return
	}
	a.json(w, http.StatusOK, kit)
}

// UpdateBrandKit applies the fields present in the body on top of the stored kit.
func (a *App) UpdateBrandKit(w http.ResponseWriter, r *http.Request) {
	s, ok := a.session(w, r)
	if !ok {
		return
	}
	existing, err := a.ownedBrandKit(r.Context(), s.UserID, chi.URLParam(r, "id"))
	if err != nil {
		a.fail(w, r, err)
		return
	}
	kit := *existing
	if !a.decode(w, r, &kit) {
		return
	}
	kit.ID, kit.UserID, kit.CreatedAt = existing.ID, existing.UserID, existing.CreatedAt
	if err := validation.Struct(kit); err != nil {
		a.fail(w, r, err)
		return
	}
	if err := a.BrandKits.Update(r.Context(), &kit); err != nil {
		a.fail(w, r, err)
		return
	}
	a.json(w, http.StatusOK, kit)
}

func (a *App) DeleteBrandKit(w http.ResponseWriter, r *http.Request) {
	s, ok := a.session(w, r)
	if !ok {
		return
	}
	kit, err := a.ownedBrandKit(r.Context(), s.UserID, chi.URLParam(r, "id"))
	if err == nil {
		err = a.BrandKits.Delete(r.Context(), kit.ID)
	}
	if err != nil {
		a.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ownedBrandKit hides kits of other users behind ErrNotFound.
func (a *App) ownedBrandKit(ctx context.Context, userID, id string) (*domain.BrandKit, error) {
	if !isUUID(id) {
		return nil, domain.ErrNotFound
	}
	kit, err := a.BrandKits.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if kit.UserID != userID {
		return nil, domain.ErrNotFound
	}
	return kit, nil
}
