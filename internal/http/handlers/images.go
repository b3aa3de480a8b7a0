package handlers

import (
	"net/http"

	"markova/internal/generation"
)

type imageGenerateRequest struct {
	Prompt          string   `json:"prompt"`
	Aspect          string   `json:"aspect"`
	BrandID         string   `json:"brand_id"`
	ReferenceImages []string `json:"reference_images"`
}

// GenerateImage renders a single image and returns it as a data URL.
func (a *App) GenerateImage(w http.ResponseWriter, r *http.Request) {
	s, ok := a.session(w, r)
	if !ok {
		return
	}
	var req imageGenerateRequest
	if !a.decode(w, r, &req) {
		return
	}
	refs, err := generation.ParseDataURLs("reference_images", req.ReferenceImages)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	art, err := a.Generator.SubmitImage(r.Context(), generation.ImageRequest{
		UserID:          s.UserID,
		Prompt:          req.Prompt,
		Aspect:          req.Aspect,
		BrandID:         req.BrandID,
		ReferenceImages: refs,
	})
	if err != nil {
		a.fail(w, r, err)
		return
	}
	a.json(w, http.StatusOK, art)
}
