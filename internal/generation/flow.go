package generation

import (
	"context"
	"strings"
	"time"

	"markova/internal/domain"
	"markova/internal/infra"
	"markova/internal/metrics"
)

// DefaultImageDelay spaces out per-post image calls in a campaign.
const DefaultImageDelay = 800 * time.Millisecond

const campaignImageAspect = "square"

// CampaignFlow plans a campaign, renders one image per post and stores the
// result. Image calls run strictly one after another.
type CampaignFlow struct {
	service   *Service
	campaigns domain.CampaignRepository
	delay     time.Duration
	sleep     func(ctx context.Context, d time.Duration) error
	logger    *infra.Logger
}

func NewCampaignFlow(service *Service, campaigns domain.CampaignRepository, delay time.Duration, logger *infra.Logger) *CampaignFlow {
	if logger == nil {
		logger = infra.NopLogger()
	}
	if delay < 0 {
		delay = 0
	}
	return &CampaignFlow{
		service:   service,
		campaigns: campaigns,
		delay:     delay,
		sleep:     sleepContext,
		logger:    logger,
	}
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// Run generates and persists a full campaign. A post whose image fails is
// logged and saved without an image; the campaign itself still succeeds.
func (f *CampaignFlow) Run(ctx context.Context, req CampaignRequest) (*domain.Campaign, error) {
	campaign, brand, err := f.service.submitCampaign(ctx, req)
	if err != nil {
		return nil, err
	}

	overlay := strings.TrimSpace(req.VisualPrefs.CustomText)
	for i := range campaign.Posts {
		if i > 0 {
			if err := f.sleep(ctx, f.delay); err != nil {
				return nil, err
			}
		}
		post := &campaign.Posts[i]
		img, err := f.service.SubmitImage(ctx, ImageRequest{
			UserID:          req.UserID,
			Prompt:          post.DesignNotes,
			Aspect:          campaignImageAspect,
			Brand:           brand,
			ReferenceImages: req.ProductImages,
			OverlayText:     &overlay,
		})
		metrics.CampaignImagesTotal.WithLabelValues(metrics.Outcome(err)).Inc()
		if err != nil {
			f.logger.Warn().Err(err).
				Str("user_id", req.UserID).
				Int("post_number", post.PostNumber).
				Msg("campaign post image failed")
			continue
		}
		url := img.ImageURL
		post.ImageURL = &url
	}

	campaign.Status = domain.CampaignStatusGenerated
	if _, err := f.campaigns.Save(ctx, campaign); err != nil {
		return nil, err
	}
	f.logger.Info().Str("campaign_id", campaign.ID).Str("user_id", req.UserID).Msg("campaign generated")
	return campaign, nil
}
