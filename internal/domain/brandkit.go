package domain

import "time"

// BrandKit holds the identity attributes fed into generation prompts.
type BrandKit struct {
	ID               string    `json:"id"`
	UserID           string    `json:"user_id"`
	Name             string    `json:"name" validate:"required,max=120"`
	LogoURL          *string   `json:"logo_url,omitempty" validate:"omitempty,url"`
	PrimaryColor     string    `json:"primary_color" validate:"required,hexcolor"`
	SecondaryColor   string    `json:"secondary_color" validate:"required,hexcolor"`
	AdditionalColors []string  `json:"additional_colors,omitempty" validate:"max=8,dive,hexcolor"`
	FontFamily       string    `json:"font_family" validate:"required,max=80"`
	ToneOfVoice      string    `json:"tone_of_voice" validate:"required,max=200"`
	Industry         string    `json:"industry" validate:"required,max=120"`
	Language         string    `json:"language" validate:"required,oneof=en ar both"`
	CreatedAt        time.Time `json:"created_at"`
}
