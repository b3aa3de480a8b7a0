package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"markova/internal/domain/jsoncfg"
	"markova/internal/generation"
)

type videoGenerateRequest struct {
	Prompt      string   `json:"prompt"`
	Images      []string `json:"images"`
	AspectRatio string   `json:"aspect_ratio"`
	Resolution  string   `json:"resolution"`
}

// StartVideo submits a video job and returns immediately; clients poll
// VideoStatus until the job is done or failed.
func (a *App) StartVideo(w http.ResponseWriter, r *http.Request) {
	s, ok := a.owner(w, r)
	if !ok {
		return
	}
	var req videoGenerateRequest
	if !a.decode(w, r, &req) {
		return
	}
	images, err := generation.ParseDataURLs("images", req.Images)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	status, err := a.VideoJobs.Start(r.Context(), generation.VideoRequest{
		UserID:  s.UserID,
		Prompt:  req.Prompt,
		Images:  images,
		Options: jsoncfg.VideoOptions{AspectRatio: req.AspectRatio, Resolution: req.Resolution},
	})
	if err != nil {
		a.fail(w, r, err)
		return
	}
	a.json(w, http.StatusAccepted, status)
}

func (a *App) VideoStatus(w http.ResponseWriter, r *http.Request) {
	s, ok := a.session(w, r)
	if !ok {
		return
	}
	status, err := a.VideoJobs.Status(s.UserID, chi.URLParam(r, "job_id"))
	if err != nil {
		a.fail(w, r, err)
		return
	}
	a.json(w, http.StatusOK, status)
}

// CancelVideo abandons a job. A result that arrives later is discarded.
func (a *App) CancelVideo(w http.ResponseWriter, r *http.Request) {
	s, ok := a.session(w, r)
	if !ok {
		return
	}
	if err := a.VideoJobs.Cancel(s.UserID, chi.URLParam(r, "job_id")); err != nil {
		a.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListVideos returns the caller's finished videos.
func (a *App) ListVideos(w http.ResponseWriter, r *http.Request) {
	s, ok := a.session(w, r)
	if !ok {
		return
	}
	videos, err := a.Videos.List(r.Context(), s.UserID)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	a.json(w, http.StatusOK, map[string]any{"videos": videos})
}
