package generation

import (
	"context"
	"encoding/json"
	"sync"

	"markova/internal/domain"
	"markova/internal/genai"
)

var testModels = Models{Text: "text-model", Image: "image-model", VeoFast: "veo-fast", VeoQuality: "veo-quality"}

type generateCall struct {
	model string
	req   genai.GenerateContentRequest
}

type fakeRemote struct {
	mu        sync.Mutex
	generate  func(model string, req genai.GenerateContentRequest) (*genai.GenerateContentResponse, error)
	calls     []generateCall
	startReqs []genai.PredictLongRunningRequest
	startMdl  []string
	handle    string
	startErr  error
	operation func(handle string) (domain.StatusReport, error)
}

func (f *fakeRemote) GenerateContent(ctx context.Context, model string, req genai.GenerateContentRequest) (*genai.GenerateContentResponse, error) {
	f.mu.Lock()
	f.calls = append(f.calls, generateCall{model: model, req: req})
	fn := f.generate
	f.mu.Unlock()
	return fn(model, req)
}

func (f *fakeRemote) StartVideo(ctx context.Context, model string, req genai.PredictLongRunningRequest) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.startMdl = append(f.startMdl, model)
	f.startReqs = append(f.startReqs, req)
	if f.startErr != nil {
		return "", f.startErr
	}
	return f.handle, nil
}

func (f *fakeRemote) VideoOperation(ctx context.Context, handle string) (domain.StatusReport, error) {
	return f.operation(handle)
}

func (f *fakeRemote) callsFor(model string) []generateCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []generateCall
	for _, c := range f.calls {
		if c.model == model {
			out = append(out, c)
		}
	}
	return out
}

type fakeBrands struct {
	kits map[string]*domain.BrandKit
}

func (f *fakeBrands) Save(ctx context.Context, kit *domain.BrandKit) (string, error) {
	f.kits[kit.ID] = kit
	return kit.ID, nil
}

func (f *fakeBrands) Update(ctx context.Context, kit *domain.BrandKit) error {
	f.kits[kit.ID] = kit
	return nil
}

func (f *fakeBrands) GetByID(ctx context.Context, id string) (*domain.BrandKit, error) {
	kit, ok := f.kits[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	copied := *kit
	return &copied, nil
}

func (f *fakeBrands) Delete(ctx context.Context, id string) error {
	delete(f.kits, id)
	return nil
}

func (f *fakeBrands) List(ctx context.Context, filter domain.BrandKitFilter) ([]domain.BrandKit, error) {
	var out []domain.BrandKit
	for _, k := range f.kits {
		if k.UserID == filter.UserID {
			out = append(out, *k)
		}
	}
	return out, nil
}

func testBrands() *fakeBrands {
	return &fakeBrands{kits: map[string]*domain.BrandKit{
		"brand-1": {
			ID:             "brand-1",
			UserID:         "user-1",
			Name:           "Qahwa House",
			PrimaryColor:   "#6B3E26",
			SecondaryColor: "#F2E3C6",
			FontFamily:     "Cairo",
			ToneOfVoice:    "warm",
			Industry:       "coffee",
			Language:       "both",
		},
	}}
}

type fakeCampaigns struct {
	saved []*domain.Campaign
	err   error
}

func (f *fakeCampaigns) Save(ctx context.Context, c *domain.Campaign) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	c.ID = "campaign-1"
	f.saved = append(f.saved, c)
	return c.ID, nil
}

func (f *fakeCampaigns) Update(ctx context.Context, c *domain.Campaign) error { return nil }
func (f *fakeCampaigns) UpdatePost(ctx context.Context, p *domain.CampaignPost) error { return nil }
func (f *fakeCampaigns) GetByID(ctx context.Context, id string) (*domain.Campaign, error) {
	return nil, domain.ErrNotFound
}
func (f *fakeCampaigns) Delete(ctx context.Context, id string) error { return nil }
func (f *fakeCampaigns) List(ctx context.Context, filter domain.CampaignFilter) ([]domain.Campaign, error) {
	return nil, nil
}

func textResponse(text string) *genai.GenerateContentResponse {
	return &genai.GenerateContentResponse{Candidates: []genai.Candidate{{
		Content: genai.Content{Parts: []genai.Part{{Text: text}}},
	}}}
}

func imageResponse(mime, data string) *genai.GenerateContentResponse {
	return &genai.GenerateContentResponse{Candidates: []genai.Candidate{{
		Content: genai.Content{Parts: []genai.Part{{InlineData: &genai.InlineData{MimeType: mime, Data: data}}}},
	}}}
}

func campaignJSON(n int) string {
	return campaignJSONWithNotes(n, "Steam rising from a cup")
}

func campaignJSONWithNotes(n int, notes string) string {
	posts := make([]map[string]any, 0, n)
	for i := n; i >= 1; i-- {
		posts = append(posts, map[string]any{
			"post_number":  i,
			"title":        "Post",
			"caption_ar":   "تعليق",
			"caption_en":   "Caption",
			"hashtags_ar":  "#قهوة",
			"hashtags_en":  "#coffee",
			"cta":          "Order now",
			"design_notes": notes,
		})
	}
	raw, _ := json.Marshal(map[string]any{"posts": posts})
	return string(raw)
}

func newTestService(remote *fakeRemote) *Service {
	return NewService(remote, testBrands(), testModels, nil)
}

func pngRef() ReferenceImage {
	return ReferenceImage{MIMEType: "image/png", Data: []byte{0x89, 'P', 'N', 'G'}}
}

func strPtr(s string) *string { return &s }
