package genai

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	sdk "google.golang.org/genai"

	"markova/internal/domain"
	"markova/internal/infra"
	"markova/internal/infra/credentials"
	"markova/internal/metrics"
)

// DefaultBaseURL is the public Generative Language API root including its version.
const DefaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"

// entityNotFound is the diagnostic the status endpoint returns once the
// credential that started an operation is no longer valid.
const entityNotFound = "Requested entity was not found"

// Options controls how the Gemini client is configured.
type Options struct {
	Credentials credentials.Provider
	// BaseURL may carry the API version as its last path segment.
	BaseURL    string
	HTTPClient *http.Client
	Logger     *infra.Logger
}

// Client drives the Gemini and Veo models through the genai SDK. The API key
// is resolved from the credential provider on every call so rotations apply
// immediately.
type Client struct {
	creds      credentials.Provider
	baseURL    string
	apiVersion string
	httpClient *http.Client
	logger     *infra.Logger
}

func NewClient(opts Options) *Client {
	client := opts.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: 120 * time.Second}
	}
	raw := opts.BaseURL
	if raw == "" {
		raw = DefaultBaseURL
	}
	base, version := splitBaseURL(raw)
	logger := opts.Logger
	if logger == nil {
		logger = infra.NopLogger()
	}
	return &Client{
		creds:      opts.Credentials,
		baseURL:    base,
		apiVersion: version,
		httpClient: client,
		logger:     logger,
	}
}

// splitBaseURL separates a trailing "v1", "v1beta" or "v1alpha" segment from
// the root the SDK joins paths onto.
func splitBaseURL(raw string) (string, string) {
	raw = strings.TrimRight(raw, "/")
	u, err := url.Parse(raw)
	if err != nil {
		return raw + "/", ""
	}
	idx := strings.LastIndex(u.Path, "/")
	if last := u.Path[idx+1:]; idx >= 0 && strings.HasPrefix(last, "v1") {
		u.Path = u.Path[:idx]
		return strings.TrimRight(u.String(), "/") + "/", last
	}
	return raw + "/", ""
}

// session builds an SDK client bound to the current key.
func (c *Client) session(ctx context.Context) (*sdk.Client, error) {
	key, err := c.creds.APIKey(ctx)
	if err != nil {
		return nil, err
	}
	client, err := sdk.NewClient(ctx, &sdk.ClientConfig{
		APIKey:     key,
		Backend:    sdk.BackendGeminiAPI,
		HTTPClient: c.httpClient,
		HTTPOptions: sdk.HTTPOptions{
			BaseURL:    c.baseURL,
			APIVersion: c.apiVersion,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}
	return client, nil
}

// GenerateContent calls models/{model}:generateContent.
func (c *Client) GenerateContent(ctx context.Context, model string, req GenerateContentRequest) (*GenerateContentResponse, error) {
	client, err := c.session(ctx)
	if err != nil {
		return nil, err
	}
	contents, err := toContents(req.Contents)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	resp, err := client.Models.GenerateContent(ctx, model, contents, toConfig(req.GenerationConfig))
	err = remoteError(err)
	c.observe("generate_content", start, err)
	if err != nil {
		return nil, err
	}
	return fromResponse(resp), nil
}

// StartVideo starts a long running video operation and returns its name,
// which serves as the job handle.
func (c *Client) StartVideo(ctx context.Context, model string, req PredictLongRunningRequest) (string, error) {
	if len(req.Instances) == 0 {
		return "", fmt.Errorf("start video: no instance")
	}
	inst := req.Instances[0]
	client, err := c.session(ctx)
	if err != nil {
		return "", err
	}

	image, err := toImage(inst.Image)
	if err != nil {
		return "", err
	}
	cfg := &sdk.GenerateVideosConfig{
		AspectRatio:    req.Parameters.AspectRatio,
		Resolution:     req.Parameters.Resolution,
		NumberOfVideos: int32(req.Parameters.NumberOfVideos),
	}
	if cfg.LastFrame, err = toImage(inst.LastFrame); err != nil {
		return "", err
	}
	for _, ref := range inst.ReferenceImages {
		img, err := toImage(&ref.Image)
		if err != nil {
			return "", err
		}
		refType := sdk.VideoGenerationReferenceTypeStyle
		if ref.ReferenceType == ReferenceTypeAsset {
			refType = sdk.VideoGenerationReferenceTypeAsset
		}
		cfg.ReferenceImages = append(cfg.ReferenceImages, &sdk.VideoGenerationReferenceImage{Image: img, ReferenceType: refType})
	}

	start := time.Now()
	op, err := client.Models.GenerateVideos(ctx, model, inst.Prompt, image, cfg)
	err = remoteError(err)
	c.observe("start_video", start, err)
	if err != nil {
		return "", err
	}
	if op == nil || op.Name == "" {
		return "", &domain.NoOutputError{Reason: "video operation returned no name"}
	}
	return op.Name, nil
}

// VideoOperation fetches the operation and reports its state. An operation
// error or an entity-not-found response is returned inside the report so the
// job records it; transport failures are returned as err.
func (c *Client) VideoOperation(ctx context.Context, handle string) (domain.StatusReport, error) {
	client, err := c.session(ctx)
	if err != nil {
		return domain.StatusReport{}, err
	}

	start := time.Now()
	op, err := client.Operations.GetVideosOperation(ctx, &sdk.GenerateVideosOperation{Name: strings.TrimLeft(handle, "/")}, nil)
	err = remoteError(err)
	c.observe("video_status", start, err)
	if err != nil {
		var rse *domain.RemoteServiceError
		if errors.As(err, &rse) {
			if rse.Status == http.StatusNotFound || strings.Contains(rse.Message, entityNotFound) {
				return domain.StatusReport{Done: true, Err: &domain.AuthExpiredError{Message: rse.Message}}, nil
			}
			return domain.StatusReport{Done: true, Err: rse}, nil
		}
		return domain.StatusReport{}, err
	}
	if code, msg, failed := operationFailure(op.Error); failed {
		if strings.Contains(msg, entityNotFound) {
			return domain.StatusReport{Done: true, Err: &domain.AuthExpiredError{Message: msg}}, nil
		}
		return domain.StatusReport{Done: true, Err: &domain.RemoteServiceError{Status: code, Message: msg}}, nil
	}
	if !op.Done {
		return domain.StatusReport{}, nil
	}
	return domain.StatusReport{Done: true, ResultURI: videoURI(op)}, nil
}

// Download fetches a generated video file with the current key.
func (c *Client) Download(ctx context.Context, uri string) ([]byte, string, error) {
	client, err := c.session(ctx)
	if err != nil {
		return nil, "", err
	}

	start := time.Now()
	data, err := client.Files.Download(ctx, sdk.NewDownloadURIFromVideo(&sdk.Video{URI: uri}), nil)
	err = remoteError(err)
	c.observe("download", start, err)
	if err != nil {
		return nil, "", err
	}
	return data, mimetype.Detect(data).String(), nil
}

func (c *Client) observe(op string, start time.Time, err error) {
	elapsed := time.Since(start)
	metrics.RemoteCallsTotal.WithLabelValues(op, metrics.Outcome(err)).Inc()
	metrics.RemoteCallDuration.WithLabelValues(op).Observe(elapsed.Seconds())
	c.logger.Debug().Str("op", op).Dur("elapsed", elapsed).Err(err).Msg("genai: call finished")
}

// remoteError turns an SDK API error into a RemoteServiceError whose message
// is the remote diagnostic as sent.
func remoteError(err error) error {
	if err == nil {
		return nil
	}
	var apiErr sdk.APIError
	if errors.As(err, &apiErr) {
		return newRemoteServiceError(apiErr.Code, apiErr.Message)
	}
	var apiPtr *sdk.APIError
	if errors.As(err, &apiPtr) && apiPtr != nil {
		return newRemoteServiceError(apiPtr.Code, apiPtr.Message)
	}
	return fmt.Errorf("invoke gemini: %w", err)
}

func newRemoteServiceError(code int, msg string) error {
	if strings.TrimSpace(msg) == "" {
		msg = http.StatusText(code)
	}
	return &domain.RemoteServiceError{Status: code, Message: msg}
}

func operationFailure(raw map[string]any) (int, string, bool) {
	if len(raw) == 0 {
		return 0, "", false
	}
	msg, _ := raw["message"].(string)
	var code int
	switch v := raw["code"].(type) {
	case float64:
		code = int(v)
	case int:
		code = v
	case int32:
		code = int(v)
	case int64:
		code = int(v)
	}
	if msg == "" {
		msg = "video operation failed"
	}
	return code, msg, true
}

func videoURI(op *sdk.GenerateVideosOperation) string {
	if op.Response == nil {
		return ""
	}
	for _, v := range op.Response.GeneratedVideos {
		if v != nil && v.Video != nil && v.Video.URI != "" {
			return v.Video.URI
		}
	}
	return ""
}

func toContents(in []Content) ([]*sdk.Content, error) {
	out := make([]*sdk.Content, 0, len(in))
	for _, c := range in {
		role := c.Role
		if role == "" {
			role = string(sdk.RoleUser)
		}
		parts := make([]*sdk.Part, 0, len(c.Parts))
		for _, p := range c.Parts {
			if p.InlineData != nil {
				data, err := base64.StdEncoding.DecodeString(p.InlineData.Data)
				if err != nil {
					return nil, fmt.Errorf("decode inline data: %w", err)
				}
				parts = append(parts, sdk.NewPartFromBytes(data, p.InlineData.MimeType))
				continue
			}
			parts = append(parts, sdk.NewPartFromText(p.Text))
		}
		out = append(out, sdk.NewContentFromParts(parts, sdk.Role(role)))
	}
	return out, nil
}

func toConfig(g *GenerationConfig) *sdk.GenerateContentConfig {
	if g == nil {
		return nil
	}
	cfg := &sdk.GenerateContentConfig{
		ResponseMIMEType:   g.ResponseMimeType,
		ResponseSchema:     toSchema(g.ResponseSchema),
		ResponseModalities: g.ResponseModalities,
	}
	if g.ImageConfig != nil {
		cfg.ImageConfig = &sdk.ImageConfig{AspectRatio: g.ImageConfig.AspectRatio}
	}
	if g.ThinkingConfig != nil {
		cfg.ThinkingConfig = &sdk.ThinkingConfig{ThinkingBudget: sdk.Ptr(int32(g.ThinkingConfig.ThinkingBudget))}
	}
	return cfg
}

func toSchema(s *Schema) *sdk.Schema {
	if s == nil {
		return nil
	}
	out := &sdk.Schema{
		Type:        sdk.Type(strings.ToUpper(s.Type)),
		Description: s.Description,
		Items:       toSchema(s.Items),
		Required:    s.Required,
	}
	if len(s.Properties) > 0 {
		out.Properties = make(map[string]*sdk.Schema, len(s.Properties))
		for name, prop := range s.Properties {
			out.Properties[name] = toSchema(prop)
		}
	}
	return out
}

func toImage(img *VideoImage) (*sdk.Image, error) {
	if img == nil {
		return nil, nil
	}
	data, err := base64.StdEncoding.DecodeString(img.BytesBase64Encoded)
	if err != nil {
		return nil, fmt.Errorf("decode video image: %w", err)
	}
	return &sdk.Image{ImageBytes: data, MIMEType: img.MimeType}, nil
}

func fromResponse(resp *sdk.GenerateContentResponse) *GenerateContentResponse {
	out := &GenerateContentResponse{}
	if resp == nil {
		return out
	}
	for _, cand := range resp.Candidates {
		if cand == nil {
			continue
		}
		c := Candidate{FinishReason: string(cand.FinishReason)}
		if cand.Content != nil {
			c.Content.Role = cand.Content.Role
			for _, p := range cand.Content.Parts {
				if p == nil || p.Thought {
					continue
				}
				part := Part{Text: p.Text}
				if p.InlineData != nil {
					part.InlineData = &InlineData{
						MimeType: p.InlineData.MIMEType,
						Data:     base64.StdEncoding.EncodeToString(p.InlineData.Data),
					}
				}
				c.Content.Parts = append(c.Content.Parts, part)
			}
		}
		out.Candidates = append(out.Candidates, c)
	}
	return out
}
