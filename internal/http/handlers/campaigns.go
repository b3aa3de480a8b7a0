package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"markova/internal/domain"
	"markova/internal/generation"
	"markova/internal/storage"
	"markova/internal/validation"
	"markova/pkg/zip"
)

type campaignGenerateRequest struct {
	generation.CampaignRequest
	ProductImages []string `json:"product_images"`
}

// GenerateCampaign plans the posts, renders one image per post in sequence
// and stores the campaign.
func (a *App) GenerateCampaign(w http.ResponseWriter, r *http.Request) {
	s, ok := a.owner(w, r)
	if !ok {
		return
	}
	var req campaignGenerateRequest
	if !a.decode(w, r, &req) {
		return
	}
	images, err := generation.ParseDataURLs("product_images", req.ProductImages)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	req.CampaignRequest.UserID = s.UserID
	req.CampaignRequest.ProductImages = images
	req.CampaignRequest.Shape = generation.DefaultCampaignShape()

	campaign, err := a.CampaignFlow.Run(r.Context(), req.CampaignRequest)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	a.json(w, http.StatusCreated, campaign)
}

func (a *App) ListCampaigns(w http.ResponseWriter, r *http.Request) {
	s, ok := a.session(w, r)
	if !ok {
		return
	}
	filter := domain.CampaignFilter{UserID: s.UserID}
	if raw := r.URL.Query().Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 1 || limit > 200 {
			a.fail(w, r, domain.NewValidationError("limit", "must be between 1 and 200"))
			return
		}
		filter.Limit = limit
	}
	campaigns, err := a.Campaigns.List(r.Context(), filter)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	a.json(w, http.StatusOK, map[string]any{"campaigns": campaigns})
}

func (a *App) GetCampaign(w http.ResponseWriter, r *http.Request) {
	s, ok := a.session(w, r)
	if !ok {
		return
	}
	c, err := a.ownedCampaign(r.Context(), s.UserID, chi.URLParam(r, "id"))
	if err != nil {
		a.fail(w, r, err)
		return
	}
	a.json(w, http.StatusOK, c)
}

// UpdateCampaign edits the campaign header. Posts are edited one at a time
// through UpdateCampaignPost.
func (a *App) UpdateCampaign(w http.ResponseWriter, r *http.Request) {
	s, ok := a.session(w, r)
	if !ok {
		return
	}
	existing, err := a.ownedCampaign(r.Context(), s.UserID, chi.URLParam(r, "id"))
	if err != nil {
		a.fail(w, r, err)
		return
	}
	c := *existing
	if !a.decode(w, r, &c) {
		return
	}
	c.ID, c.UserID, c.BrandID, c.CreatedAt = existing.ID, existing.UserID, existing.BrandID, existing.CreatedAt
	c.Posts, c.Stories, c.Reels = existing.Posts, existing.Stories, existing.Reels
	if err := validation.Var("status", string(c.Status), "oneof=draft generated scheduled"); err != nil {
		a.fail(w, r, err)
		return
	}
	if err := validation.Struct(c.VisualPrefs); err != nil {
		a.fail(w, r, err)
		return
	}
	if err := a.Campaigns.Update(r.Context(), &c); err != nil {
		a.fail(w, r, err)
		return
	}
	a.json(w, http.StatusOK, c)
}

func (a *App) DeleteCampaign(w http.ResponseWriter, r *http.Request) {
	s, ok := a.session(w, r)
	if !ok {
		return
	}
	c, err := a.ownedCampaign(r.Context(), s.UserID, chi.URLParam(r, "id"))
	if err == nil {
		err = a.Campaigns.Delete(r.Context(), c.ID)
	}
	if err != nil {
		a.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// UpdateCampaignPost edits the captions, hashtags, notes or image of one post.
func (a *App) UpdateCampaignPost(w http.ResponseWriter, r *http.Request) {
	s, ok := a.session(w, r)
	if !ok {
		return
	}
	c, err := a.ownedCampaign(r.Context(), s.UserID, chi.URLParam(r, "id"))
	if err != nil {
		a.fail(w, r, err)
		return
	}
	postID := chi.URLParam(r, "post_id")
	var existing *domain.CampaignPost
	for i := range c.Posts {
		if c.Posts[i].ID == postID {
			existing = &c.Posts[i]
			break
		}
	}
	if existing == nil {
		a.fail(w, r, domain.ErrNotFound)
		return
	}
	post := *existing
	if !a.decode(w, r, &post) {
		return
	}
	post.ID, post.CampaignID, post.PostNumber = existing.ID, existing.CampaignID, existing.PostNumber
	if err := a.Campaigns.UpdatePost(r.Context(), &post); err != nil {
		a.fail(w, r, err)
		return
	}
	a.json(w, http.StatusOK, post)
}

// ExportCampaign streams a zip holding campaign.json and every post image
// that is stored inline. Remote image URLs stay referenced in the JSON only.
func (a *App) ExportCampaign(w http.ResponseWriter, r *http.Request) {
	s, ok := a.session(w, r)
	if !ok {
		return
	}
	c, err := a.ownedCampaign(r.Context(), s.UserID, chi.URLParam(r, "id"))
	if err != nil {
		a.fail(w, r, err)
		return
	}
	manifest, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		a.fail(w, r, err)
		return
	}
	assets := []zip.Asset{{Filename: "campaign.json", MIME: "application/json", Data: manifest}}
	for _, p := range c.Posts {
		if p.ImageURL == nil || !strings.HasPrefix(*p.ImageURL, "data:") {
			continue
		}
		img, err := generation.DecodeDataURL("image_url", *p.ImageURL)
		if err != nil {
			a.Logger.Warn().Err(err).Str("campaign_id", c.ID).Int("post_number", p.PostNumber).Msg("export: skipping undecodable image")
			continue
		}
		assets = append(assets, zip.Asset{
			Filename: storage.MediaKey("images", "", fmt.Sprintf("post-%d", p.PostNumber), img.MIMEType),
			MIME:     img.MIMEType,
			Data:     img.Data,
		})
	}
	archive, err := zip.ArchiveAssets(assets, time.Now().UTC())
	if err != nil {
		a.fail(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "application/zip")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="campaign-%s.zip"`, c.ID))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(archive)
}

func (a *App) ownedCampaign(ctx context.Context, userID, id string) (*domain.Campaign, error) {
	if !isUUID(id) {
		return nil, domain.ErrNotFound
	}
	c, err := a.Campaigns.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c.UserID != userID {
		return nil, domain.ErrNotFound
	}
	return c, nil
}
