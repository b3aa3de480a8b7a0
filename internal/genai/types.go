package genai

import "strings"

// Content is one turn of a generateContent request or response.
type Content struct {
	Role  string
	Parts []Part
}

type Part struct {
	Text       string
	InlineData *InlineData
}

// InlineData carries base64 encoded bytes with their MIME type.
type InlineData struct {
	MimeType string
	Data     string
}

// Schema is the subset of the OpenAPI schema object the response schema uses.
type Schema struct {
	Type        string
	Description string
	Properties  map[string]*Schema
	Items       *Schema
	Required    []string
}

type ImageConfig struct {
	AspectRatio string
}

type ThinkingConfig struct {
	ThinkingBudget int
}

type GenerationConfig struct {
	ResponseMimeType   string
	ResponseSchema     *Schema
	ResponseModalities []string
	ImageConfig        *ImageConfig
	ThinkingConfig     *ThinkingConfig
}

type GenerateContentRequest struct {
	Contents         []Content
	GenerationConfig *GenerationConfig
}

type Candidate struct {
	Content      Content
	FinishReason string
}

type GenerateContentResponse struct {
	Candidates []Candidate
}

// Text joins the text parts of the first candidate.
func (r *GenerateContentResponse) Text() string {
	if len(r.Candidates) == 0 {
		return ""
	}
	var b strings.Builder
	for _, p := range r.Candidates[0].Content.Parts {
		b.WriteString(p.Text)
	}
	return b.String()
}

// FirstInlineData scans every candidate's parts in order and returns the first
// binary payload, or nil when the response holds none.
func (r *GenerateContentResponse) FirstInlineData() *InlineData {
	for _, c := range r.Candidates {
		for _, p := range c.Content.Parts {
			if p.InlineData != nil && p.InlineData.Data != "" {
				return p.InlineData
			}
		}
	}
	return nil
}

// VideoImage is an image attached to a video instance, base64 encoded.
type VideoImage struct {
	BytesBase64Encoded string
	MimeType           string
}

type VideoReference struct {
	Image         VideoImage
	ReferenceType string
}

// ReferenceTypeAsset marks a reference image that anchors subject appearance.
const ReferenceTypeAsset = "asset"

type VideoInstance struct {
	Prompt          string
	Image           *VideoImage
	LastFrame       *VideoImage
	ReferenceImages []VideoReference
}

type VideoParameters struct {
	AspectRatio    string
	Resolution     string
	NumberOfVideos int
}

// PredictLongRunningRequest starts a video operation.
type PredictLongRunningRequest struct {
	Instances  []VideoInstance
	Parameters VideoParameters
}
