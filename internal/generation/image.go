package generation

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"markova/internal/domain"
	"markova/internal/domain/jsoncfg"
	"markova/internal/genai"
	"markova/internal/materialize"
)

// ImageRequest asks for a single still image.
type ImageRequest struct {
	UserID          string
	Prompt          string
	Aspect          string
	BrandID         string
	Brand           *domain.BrandKit
	ReferenceImages []ReferenceImage
	// OverlayText fixes the text rendered on the image. Empty forbids any
	// text. When nil the first quoted phrase of Prompt is used instead.
	OverlayText *string
}

func (ImageRequest) Kind() Kind { return KindImage }

func (r ImageRequest) References() []ReferenceImage { return r.ReferenceImages }

// ImageArtifact is a generated image ready for display.
type ImageArtifact struct {
	ImageURL    string `json:"image_url"`
	AspectRatio string `json:"aspect_ratio"`
}

var quotedText = regexp.MustCompile(`"([^"]+)"|“([^”]+)”`)

// QuotedText returns the first quoted substring of prompt, if any.
func QuotedText(prompt string) (string, bool) {
	m := quotedText.FindStringSubmatch(prompt)
	if m == nil {
		return "", false
	}
	if m[1] != "" {
		return m[1], true
	}
	return m[2], true
}

// SubmitImage generates one image and returns it as a data URL.
func (s *Service) SubmitImage(ctx context.Context, req ImageRequest) (*ImageArtifact, error) {
	prompt := strings.TrimSpace(req.Prompt)
	if prompt == "" {
		return nil, domain.NewValidationError("prompt", "is required")
	}
	opts := jsoncfg.ImageOptions{Aspect: req.Aspect}
	opts.Normalize()
	ratio, err := opts.AspectRatio()
	if err != nil {
		return nil, &domain.ValidationError{Field: "aspect", Message: err.Error()}
	}
	if err := validateReferences("reference_images", req.ReferenceImages); err != nil {
		return nil, err
	}
	brand := req.Brand
	if brand == nil && req.BrandID != "" {
		if brand, err = s.brand(ctx, req.UserID, req.BrandID); err != nil {
			return nil, err
		}
	}

	parts := make([]genai.Part, 0, len(req.ReferenceImages)+1)
	for _, img := range req.ReferenceImages {
		parts = append(parts, img.part())
	}
	parts = append(parts, genai.Part{Text: buildImageInstruction(prompt, brand, req.OverlayText)})

	resp, err := s.remote.GenerateContent(ctx, s.models.Image, genai.GenerateContentRequest{
		Contents: []genai.Content{{Role: "user", Parts: parts}},
		GenerationConfig: &genai.GenerationConfig{
			ResponseModalities: []string{"IMAGE"},
			ImageConfig:        &genai.ImageConfig{AspectRatio: ratio},
		},
	})
	if err != nil {
		return nil, err
	}
	url, err := materialize.ImageDataURL(resp.FirstInlineData())
	if err != nil {
		return nil, err
	}
	return &ImageArtifact{ImageURL: url, AspectRatio: ratio}, nil
}

func buildImageInstruction(prompt string, brand *domain.BrandKit, overlay *string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "SCENE: %s\n", prompt)
	b.WriteString("TECHNICAL: Professional studio lighting, 8k resolution, cinematic.\n")
	if brand != nil {
		fmt.Fprintf(&b, "BRAND: %s. Primary colour %s, secondary colour %s. Typeface %s. Mood: %s.\n",
			brand.Name, brand.PrimaryColor, brand.SecondaryColor, brand.FontFamily, brand.ToneOfVoice)
	}
	text, ok := "", false
	if overlay != nil {
		text = strings.TrimSpace(*overlay)
		ok = text != ""
	} else {
		text, ok = QuotedText(prompt)
	}
	if ok {
		fmt.Fprintf(&b, "TEXT: Render exactly \"%s\", spelled precisely, and no other text.", text)
	} else {
		b.WriteString("EXCLUSION: No text, letters, logos with words or typography of any kind.")
	}
	return b.String()
}
