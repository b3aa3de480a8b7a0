package generation

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"markova/internal/domain"
	"markova/internal/genai"
	"markova/internal/validation"
)

// CampaignPostFields lists the fields every generated post must carry.
var CampaignPostFields = []string{
	"post_number", "title", "caption_ar", "caption_en", "hashtags_ar", "hashtags_en", "cta", "design_notes",
}

// DefaultCampaignPosts is the number of posts planned per campaign.
const DefaultCampaignPosts = 3

const campaignThinkingBudget = 4096

// OutputShape is what a campaign response must contain.
type OutputShape struct {
	PostCount      int
	RequiredFields []string
}

// DefaultCampaignShape returns the standard 3-post shape.
func DefaultCampaignShape() OutputShape {
	return OutputShape{PostCount: DefaultCampaignPosts, RequiredFields: CampaignPostFields}
}

// CampaignRequest asks for a planned multi-post campaign.
type CampaignRequest struct {
	UserID         string             `json:"-"`
	BrandID        string             `json:"brand_id" validate:"required"`
	Title          string             `json:"title" validate:"required,max=200"`
	Objective      string             `json:"objective" validate:"required,max=500"`
	Audience       string             `json:"audience" validate:"required,max=500"`
	TargetMarket   string             `json:"target_market" validate:"max=200"`
	ContentDialect string             `json:"content_dialect" validate:"max=100"`
	VisualPrefs    domain.VisualPrefs `json:"visual_prefs"`
	ProductImages  []ReferenceImage   `json:"-"`
	Shape          OutputShape        `json:"-"`
}

func (CampaignRequest) Kind() Kind { return KindCampaign }
func (r CampaignRequest) References() []ReferenceImage { return r.ProductImages }

func (r CampaignRequest) shape() OutputShape {
	shape := r.Shape
	if shape.PostCount <= 0 {
		shape.PostCount = DefaultCampaignPosts
	}
	if len(shape.RequiredFields) == 0 {
		shape.RequiredFields = CampaignPostFields
	}
	return shape
}

// TextDirective is the design-note line that decides whether overlay text
// appears in a post image. Exactly one of the two forms is produced.
func TextDirective(customText string) string {
	if text := strings.TrimSpace(customText); text != "" {
		return fmt.Sprintf("TEXT OVERLAY: render the exact text \"%s\" and no other text.", text)
	}
	return "TEXT OVERLAY: none. Do not render any typography or text."
}

func campaignTextRequirement(customText string) string {
	if text := strings.TrimSpace(customText); text != "" {
		return fmt.Sprintf("STRICT REQUIREMENT: You MUST include the exact text \"%s\" in the design_notes of every post.", text)
	}
	return "STRICT REQUIREMENT: Do NOT include ANY typography or text in design_notes."
}

// SubmitCampaign plans the campaign posts. Post images are not generated here.
func (s *Service) SubmitCampaign(ctx context.Context, req CampaignRequest) (*domain.Campaign, error) {
	campaign, _, err := s.submitCampaign(ctx, req)
	return campaign, err
}

func (s *Service) submitCampaign(ctx context.Context, req CampaignRequest) (*domain.Campaign, *domain.BrandKit, error) {
	if err := validation.Struct(req); err != nil {
		return nil, nil, err
	}
	if err := validateReferences("product_images", req.ProductImages); err != nil {
		return nil, nil, err
	}
	brand, err := s.brand(ctx, req.UserID, req.BrandID)
	if err != nil {
		return nil, nil, err
	}
	shape := req.shape()

	parts := make([]genai.Part, 0, len(req.ProductImages)+1)
	for _, img := range req.ProductImages {
		parts = append(parts, img.part())
	}
	parts = append(parts, genai.Part{Text: buildCampaignInstruction(req, brand, shape)})

	resp, err := s.remote.GenerateContent(ctx, s.models.Text, genai.GenerateContentRequest{
		Contents: []genai.Content{{Role: "user", Parts: parts}},
		GenerationConfig: &genai.GenerationConfig{
			ResponseMimeType: "application/json",
			ResponseSchema:   campaignSchema(shape),
			ThinkingConfig:   &genai.ThinkingConfig{ThinkingBudget: campaignThinkingBudget},
		},
	})
	if err != nil {
		return nil, nil, err
	}

	posts, err := parseCampaignPosts(resp.Text(), shape)
	if err != nil {
		return nil, nil, err
	}
	directive := TextDirective(req.VisualPrefs.CustomText)
	for i := range posts {
		posts[i].DesignNotes = strings.TrimSpace(posts[i].DesignNotes) + "\n" + directive
	}

	brandID := brand.ID
	campaign := &domain.Campaign{
		UserID:         req.UserID,
		BrandID:        &brandID,
		Title:          req.Title,
		Objective:      req.Objective,
		Audience:       req.Audience,
		TargetMarket:   req.TargetMarket,
		ContentDialect: req.ContentDialect,
		Language:       brand.Language,
		Status:         domain.CampaignStatusDraft,
		VisualPrefs:    req.VisualPrefs,
		Posts:          posts,
	}
	s.logger.Info().Str("user_id", req.UserID).Int("posts", len(posts)).Msg("campaign planned")
	return campaign, brand, nil
}

func buildCampaignInstruction(req CampaignRequest, brand *domain.BrandKit, shape OutputShape) string {
	prefs := req.VisualPrefs
	var b strings.Builder
	fmt.Fprintf(&b, "System: Senior Creative Director. Task: Plan a %d-post campaign.\n", shape.PostCount)
	fmt.Fprintf(&b, "Title: %s\n", req.Title)
	fmt.Fprintf(&b, "Objective: %s\n", req.Objective)
	fmt.Fprintf(&b, "Audience: %s\n", req.Audience)
	fmt.Fprintf(&b, "Market: %s\n", req.TargetMarket)
	fmt.Fprintf(&b, "Dialect: %s\n", req.ContentDialect)
	fmt.Fprintf(&b, "Brand: %s (%s). Tone: %s. Colours: %s, %s. Font: %s. Language: %s.\n",
		brand.Name, brand.Industry, brand.ToneOfVoice, brand.PrimaryColor, brand.SecondaryColor, brand.FontFamily, brand.Language)
	fmt.Fprintf(&b, "Style: %s, %s\n", prefs.ArtStyle, prefs.VisualEffect)
	if prefs.AddedShapes != "" {
		fmt.Fprintf(&b, "Shapes: %s\n", prefs.AddedShapes)
	}
	if prefs.IncludeCharacter {
		b.WriteString("Include a human character in each visual.\n")
	}
	if prefs.IncludeLogo {
		b.WriteString("Reserve space for the brand logo.\n")
	}
	if prefs.AddFooterShape {
		b.WriteString("Add a footer band in the brand colours.\n")
	}
	b.WriteString(campaignTextRequirement(prefs.CustomText))
	return b.String()
}

func campaignSchema(shape OutputShape) *genai.Schema {
	props := make(map[string]*genai.Schema, len(shape.RequiredFields))
	for _, f := range shape.RequiredFields {
		typ := "STRING"
		if f == "post_number" {
			typ = "INTEGER"
		}
		props[f] = &genai.Schema{Type: typ}
	}
	return &genai.Schema{
		Type: "OBJECT",
		Properties: map[string]*genai.Schema{
			"posts": {
				Type: "ARRAY",
				Items: &genai.Schema{
					Type:       "OBJECT",
					Properties: props,
					Required:   shape.RequiredFields,
				},
			},
		},
		Required: []string{"posts"},
	}
}

type campaignEnvelope struct {
	Posts []map[string]json.RawMessage `json:"posts"`
}

// parseCampaignPosts accepts the response only if it holds exactly the
// requested number of posts and every post carries every required field.
func parseCampaignPosts(text string, shape OutputShape) ([]domain.CampaignPost, error) {
	var env campaignEnvelope
	if err := json.Unmarshal([]byte(stripCodeFence(text)), &env); err != nil {
		return nil, &domain.NoOutputError{Reason: "campaign response is not valid JSON"}
	}
	if env.Posts == nil {
		return nil, &domain.NoOutputError{Reason: "campaign response has no posts"}
	}
	if len(env.Posts) != shape.PostCount {
		return nil, &domain.NoOutputError{Reason: fmt.Sprintf("expected %d posts, got %d", shape.PostCount, len(env.Posts))}
	}

	posts := make([]domain.CampaignPost, 0, len(env.Posts))
	for i, raw := range env.Posts {
		for _, f := range shape.RequiredFields {
			v, ok := raw[f]
			if !ok || string(v) == "null" {
				return nil, &domain.NoOutputError{Reason: fmt.Sprintf("post %d is missing %s", i+1, f)}
			}
		}
		encoded, _ := json.Marshal(raw)
		var post domain.CampaignPost
		if err := json.Unmarshal(encoded, &post); err != nil {
			return nil, &domain.NoOutputError{Reason: fmt.Sprintf("post %d has malformed fields", i+1)}
		}
		post.ID, post.CampaignID, post.ImageURL = "", "", nil
		posts = append(posts, post)
	}
	sort.SliceStable(posts, func(i, j int) bool { return posts[i].PostNumber < posts[j].PostNumber })
	return posts, nil
}

// stripCodeFence removes a surrounding ```json fence some models add.
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	return strings.TrimSpace(strings.TrimSuffix(s, "```"))
}
