package domain

import "time"

// CampaignStatus enumerates the persisted lifecycle of a campaign.
type CampaignStatus string

const (
	CampaignStatusDraft     CampaignStatus = "draft"
	CampaignStatusGenerated CampaignStatus = "generated"
	CampaignStatusScheduled CampaignStatus = "scheduled"
)

// VisualPrefs steers the art direction of generated post images.
type VisualPrefs struct {
	ArtStyle         string `json:"artStyle" validate:"max=120"`
	IncludeCharacter bool   `json:"includeCharacter"`
	CustomText       string `json:"customText" validate:"max=200"`
	VisualEffect     string `json:"visualEffect" validate:"max=120"`
	AddedShapes      string `json:"addedShapes" validate:"max=120"`
	IncludeLogo      bool   `json:"includeLogo"`
	AddFooterShape   bool   `json:"addFooterShape"`
}

// Campaign is the materialized result of a campaign request.
type Campaign struct {
	ID             string          `json:"id"`
	UserID         string          `json:"user_id"`
	BrandID        *string         `json:"brand_id,omitempty"`
	Title          string          `json:"title"`
	Objective      string          `json:"objective"`
	Audience       string          `json:"audience"`
	TargetMarket   string          `json:"target_market"`
	ContentDialect string          `json:"content_dialect"`
	Language       string          `json:"language"`
	Status         CampaignStatus  `json:"status"`
	VisualPrefs    VisualPrefs     `json:"visual_prefs"`
	Posts          []CampaignPost  `json:"posts"`
	Stories        []CampaignStory `json:"stories"`
	Reels          []CampaignReel  `json:"reels"`
	CreatedAt      time.Time       `json:"created_at"`
}

// CampaignPost is one entry of a campaign. Order follows PostNumber.
type CampaignPost struct {
	ID          string  `json:"id"`
	CampaignID  string  `json:"campaign_id"`
	PostNumber  int     `json:"post_number"`
	Title       string  `json:"title"`
	CaptionAR   string  `json:"caption_ar"`
	CaptionEN   string  `json:"caption_en"`
	HashtagsAR  string  `json:"hashtags_ar"`
	HashtagsEN  string  `json:"hashtags_en"`
	CTA         string  `json:"cta"`
	DesignNotes string  `json:"design_notes"`
	ImageURL    *string `json:"image_url,omitempty"`
}

type CampaignStory struct {
	ID                 string `json:"id"`
	CampaignID         string `json:"campaign_id"`
	StoryNumber        int    `json:"story_number"`
	Content            string `json:"content"`
	InteractiveElement string `json:"interactive_element"`
}

type CampaignReel struct {
	ID         string `json:"id"`
	CampaignID string `json:"campaign_id"`
	ReelNumber int    `json:"reel_number"`
	Hook       string `json:"hook"`
	Script     string `json:"script"`
	CTA        string `json:"cta"`
}
