package jsoncfg

import (
	"encoding/json"
	"fmt"
)

// VideoOptions is the output shape a caller may ask of a video job.
type VideoOptions struct {
	AspectRatio string `json:"aspect_ratio"`
	Resolution  string `json:"resolution"`
}

// ImageOptions is the output shape of a single image request. Aspect is one of
// the named shapes square, landscape or portrait.
type ImageOptions struct {
	Aspect string `json:"aspect"`
}

var allowedVideoAspectRatios = map[string]struct{}{
	"16:9": {},
	"9:16": {},
}

var allowedVideoResolutions = map[string]struct{}{
	"720p":  {},
	"1080p": {},
}

var imageAspectRatios = map[string]string{
	"square":    "1:1",
	"landscape": "16:9",
	"portrait":  "9:16",
}

const (
	DefaultVideoAspectRatio = "9:16"
	DefaultVideoResolution  = "720p"
	// AssetModeAspectRatio and AssetModeResolution are the only output shape the
	// asset-reference video mode accepts.
	AssetModeAspectRatio = "16:9"
	AssetModeResolution  = "720p"
	DefaultImageAspect   = "square"
)

// Normalize fills defaults for unset fields.
func (o *VideoOptions) Normalize() {
	if o == nil {
		return
	}
	if o.AspectRatio == "" {
		o.AspectRatio = DefaultVideoAspectRatio
	}
	if o.Resolution == "" {
		o.Resolution = DefaultVideoResolution
	}
}

// ForceAssetMode overwrites the output shape with the asset-reference fallback.
func (o *VideoOptions) ForceAssetMode() {
	o.AspectRatio = AssetModeAspectRatio
	o.Resolution = AssetModeResolution
}

func (o VideoOptions) Validate() error {
	if _, ok := allowedVideoAspectRatios[o.AspectRatio]; !ok {
		return fmt.Errorf("aspect_ratio must be one of 16:9, 9:16")
	}
	if _, ok := allowedVideoResolutions[o.Resolution]; !ok {
		return fmt.Errorf("resolution must be one of 720p, 1080p")
	}
	return nil
}

func (o *ImageOptions) Normalize() {
	if o != nil && o.Aspect == "" {
		o.Aspect = DefaultImageAspect
	}
}

// AspectRatio maps the named aspect to the ratio the image model expects.
func (o ImageOptions) AspectRatio() (string, error) {
	ratio, ok := imageAspectRatios[o.Aspect]
	if !ok {
		return "", fmt.Errorf("aspect must be one of square, landscape, portrait")
	}
	return ratio, nil
}

// MustMarshal encodes v for a JSONB column. Only use it with values whose
// encoding cannot fail.
func MustMarshal(v any) json.RawMessage {
	b, err := json.Marshal(v)
	if err != nil {
		panic(fmt.Errorf("json marshal: %w", err))
	}
	return b
}

// Unmarshal decodes a JSONB column, treating an empty or null payload as the zero value.
func Unmarshal(raw []byte, dst any) error {
	if len(raw) == 0 || string(raw) == "null" {
		return nil
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("json unmarshal: %w", err)
	}
	return nil
}
