package generation

import (
	"encoding/base64"
	"fmt"
	"strings"

	"markova/internal/domain"
	"markova/internal/genai"
)

// Kind tags the variants of Request.
type Kind string

const (
	KindCampaign Kind = "campaign"
	KindImage    Kind = "image"
	KindVideo    Kind = "video"
)

const (
	MaxReferenceImages     = 3
	MaxReferenceImageBytes = 4 << 20
	defaultImageMIME       = "image/png"
)

// Request is implemented by CampaignRequest, ImageRequest and VideoRequest.
type Request interface {
	Kind() Kind
	References() []ReferenceImage
}

// ReferenceImage is a caller supplied image that steers generation.
type ReferenceImage struct {
	MIMEType string
	Data     []byte
}

func (r ReferenceImage) part() genai.Part {
	return genai.Part{InlineData: &genai.InlineData{
		MimeType: r.MIMEType,
		Data:     base64.StdEncoding.EncodeToString(r.Data),
	}}
}

func (r ReferenceImage) videoImage() *genai.VideoImage {
	return &genai.VideoImage{
		BytesBase64Encoded: base64.StdEncoding.EncodeToString(r.Data),
		MimeType:           r.MIMEType,
	}
}

// ParseDataURL decodes a browser data URL such as data:image/jpeg;base64,....
// A bare base64 string is accepted and assumed to be PNG.
func ParseDataURL(field, raw string) (ReferenceImage, error) {
	img, err := DecodeDataURL(field, raw)
	if err != nil {
		return ReferenceImage{}, err
	}
	if err := validateReference(field, img); err != nil {
		return ReferenceImage{}, err
	}
	return img, nil
}

// DecodeDataURL decodes a data URL or bare base64 payload without the
// reference image limits. Stored generated images go through here.
func DecodeDataURL(field, raw string) (ReferenceImage, error) {
	raw = strings.TrimSpace(raw)
	mime := defaultImageMIME
	payload := raw
	if strings.HasPrefix(raw, "data:") {
		header, data, ok := strings.Cut(raw, ",")
		if !ok {
			return ReferenceImage{}, domain.NewValidationError(field, "malformed data URL")
		}
		meta := strings.TrimPrefix(header, "data:")
		if !strings.HasSuffix(meta, ";base64") {
			return ReferenceImage{}, domain.NewValidationError(field, "data URL must be base64 encoded")
		}
		if m := strings.TrimSuffix(meta, ";base64"); m != "" {
			mime = m
		}
		payload = data
	}
	data, err := base64.StdEncoding.DecodeString(strings.TrimSpace(payload))
	if err != nil {
		return ReferenceImage{}, domain.NewValidationError(field, "invalid base64 payload")
	}
	return ReferenceImage{MIMEType: mime, Data: data}, nil
}

// ParseDataURLs decodes a list of data URLs, enforcing the reference image cap.
func ParseDataURLs(field string, raws []string) ([]ReferenceImage, error) {
	if len(raws) > MaxReferenceImages {
		return nil, domain.NewValidationError(field, "at most %d reference images are allowed", MaxReferenceImages)
	}
	out := make([]ReferenceImage, 0, len(raws))
	for i, raw := range raws {
		img, err := ParseDataURL(fmt.Sprintf("%s[%d]", field, i), raw)
		if err != nil {
			return nil, err
		}
		out = append(out, img)
	}
	return out, nil
}

func validateReference(field string, img ReferenceImage) error {
	if !strings.HasPrefix(img.MIMEType, "image/") {
		return domain.NewValidationError(field, "unsupported MIME type %q", img.MIMEType)
	}
	if len(img.Data) == 0 {
		return domain.NewValidationError(field, "image is empty")
	}
	if len(img.Data) > MaxReferenceImageBytes {
		return domain.NewValidationError(field, "image exceeds %d MB", MaxReferenceImageBytes>>20)
	}
	return nil
}

// validateReferences re-checks images that did not come through ParseDataURL.
func validateReferences(field string, imgs []ReferenceImage) error {
	if len(imgs) > MaxReferenceImages {
		return domain.NewValidationError(field, "at most %d reference images are allowed", MaxReferenceImages)
	}
	for i, img := range imgs {
		if err := validateReference(fmt.Sprintf("%s[%d]", field, i), img); err != nil {
			return err
		}
	}
	return nil
}
