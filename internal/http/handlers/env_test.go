package handlers_test

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"

	"markova/internal/domain"
	"markova/internal/genai"
	"markova/internal/generation"
	"markova/internal/http/handlers"
	"markova/internal/http/httpapi"
	"markova/internal/infra"
	"markova/internal/infra/credentials"
	"markova/internal/materialize"
	"markova/internal/middleware"
	"markova/internal/poller"
)

const (
	testSecret = "handlers-test-secret"
	testAPIKey = "AIza-handlers-test-key"
	videoURI   = "https://cdn.example.com/files/clip.mp4"
	opName     = "models/veo-quality/operations/op-42"
)

var testModels = generation.Models{
	Text:       "text-model",
	Image:      "image-model",
	VeoFast:    "veo-fast",
	VeoQuality: "veo-quality",
}

type recordedCall struct {
	Method string
	Path   string
	Key    string
	Body   []byte
}

// videoPayload is the predictLongRunning body as it goes over the wire.
type videoPayload struct {
	Instances []struct {
		Prompt          string          `json:"prompt"`
		Image           json.RawMessage `json:"image"`
		LastFrame       json.RawMessage `json:"lastFrame"`
		ReferenceImages []struct {
			Image struct {
				MimeType string `json:"mimeType"`
			} `json:"image"`
			ReferenceType string `json:"referenceType"`
		} `json:"referenceImages"`
	} `json:"instances"`
	Parameters struct {
		AspectRatio string `json:"aspectRatio"`
		Resolution  string `json:"resolution"`
	} `json:"parameters"`
}

type stub struct {
	status int
	body   string
}

// fakeGemini serves the generateContent, predictLongRunning and operation
// endpoints. Paths without an override get a canned success.
type fakeGemini struct {
	mu        sync.Mutex
	calls     []recordedCall
	overrides map[string]stub
	postCount int
}

func (g *fakeGemini) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)
	g.mu.Lock()
	g.calls = append(g.calls, recordedCall{Method: r.Method, Path: r.URL.Path, Key: r.Header.Get("x-goog-api-key"), Body: body})
	override, ok := g.overrides[r.URL.Path]
	posts := g.postCount
	g.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	if ok {
		w.WriteHeader(override.status)
		_, _ = io.WriteString(w, override.body)
		return
	}
	switch {
	case strings.HasSuffix(r.URL.Path, "/models/text-model:generateContent"):
		writeJSON(w, textResponse(campaignPlan(posts)))
	case strings.HasSuffix(r.URL.Path, "/models/image-model:generateContent"):
		writeJSON(w, map[string]any{"candidates": []any{map[string]any{"content": map[string]any{"parts": []any{
			map[string]any{"inlineData": map[string]string{"mimeType": "image/png", "data": base64.StdEncoding.EncodeToString([]byte("png-bytes"))}},
		}}}}})
	case strings.HasSuffix(r.URL.Path, ":predictLongRunning"):
		writeJSON(w, map[string]string{"name": opName})
	case strings.HasSuffix(r.URL.Path, "/"+opName):
		writeJSON(w, map[string]any{"name": opName, "done": true, "response": map[string]any{
			"generateVideoResponse": map[string]any{"generatedSamples": []any{map[string]any{"video": map[string]string{"uri": videoURI}}}},
		}})
	default:
		w.WriteHeader(http.StatusNotFound)
		_, _ = io.WriteString(w, `{"error":{"code":404,"message":"no route"}}`)
	}
}

func (g *fakeGemini) override(path string, status int, body string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.overrides[path] = stub{status: status, body: body}
}

func (g *fakeGemini) callsTo(suffix string) []recordedCall {
	g.mu.Lock()
	defer g.mu.Unlock()
	var out []recordedCall
	for _, c := range g.calls {
		if strings.HasSuffix(c.Path, suffix) {
			out = append(out, c)
		}
	}
	return out
}

func writeJSON(w http.ResponseWriter, v any) {
	_ = json.NewEncoder(w).Encode(v)
}

func textResponse(text string) map[string]any {
	return map[string]any{"candidates": []any{map[string]any{"content": map[string]any{"parts": []any{map[string]string{"text": text}}}}}}
}

func campaignPlan(n int) string {
	posts := make([]map[string]any, 0, n)
	for i := 1; i <= n; i++ {
		posts = append(posts, map[string]any{
			"post_number":  i,
			"title":        "Post",
			"caption_ar":   "تعليق",
			"caption_en":   "Caption",
			"hashtags_ar":  "#قهوة",
			"hashtags_en":  "#coffee",
			"cta":          "Order now",
			"design_notes": "Cup on a marble table",
		})
	}
	raw, _ := json.Marshal(map[string]any{"posts": posts})
	return string(raw)
}

type testEnv struct {
	app       *handlers.App
	router    http.Handler
	gemini    *fakeGemini
	brands    *memBrands
	campaigns *memCampaigns
	users     *memUsers
	videos    *memVideos
}

func newTestEnv(t *testing.T, apiKey string) *testEnv {
	t.Helper()
	gemini := &fakeGemini{overrides: map[string]stub{}, postCount: generation.DefaultCampaignPosts}
	srv := httptest.NewServer(gemini)
	t.Cleanup(srv.Close)

	creds := credentials.EnvProvider{Key: apiKey}
	client := genai.NewClient(genai.Options{Credentials: creds, BaseURL: srv.URL + "/v1beta", HTTPClient: srv.Client()})

	env := &testEnv{
		gemini:    gemini,
		brands:    &memBrands{items: map[string]domain.BrandKit{}},
		campaigns: &memCampaigns{items: map[string]domain.Campaign{}},
		users:     &memUsers{items: map[string]domain.User{}},
		videos:    &memVideos{},
	}
	service := generation.NewService(client, env.brands, testModels, nil)
	media, err := materialize.NewVideos(materialize.DeliveryPassthrough, nil, nil)
	if err != nil {
		t.Fatalf("NewVideos: %v", err)
	}
	env.app = &handlers.App{
		Config:       &infra.Config{JWTSecret: testSecret, CORSAllowedOrigins: []string{"http://localhost:5173"}},
		Logger:       *infra.NopLogger(),
		Credentials:  creds,
		Generator:    service,
		CampaignFlow: generation.NewCampaignFlow(service, env.campaigns, 0, nil),
		VideoJobs:    generation.NewVideoJobs(service, &poller.Poller{Interval: time.Millisecond}, media, env.videos, nil),
		BrandKits:    env.brands,
		Campaigns:    env.campaigns,
		Users:        env.users,
		Plans:        &memPlans{items: map[string]domain.Plan{}},
		Strategies:   &memStrategies{items: map[string]domain.StrategicPlan{}},
		Videos:       env.videos,
	}
	env.router = httpapi.NewRouter(env.app, nil)
	return env
}

func token(t *testing.T, sub, role string) string {
	t.Helper()
	tok, err := middleware.SignJWT(testSecret, middleware.TokenClaims{
		Sub:   sub,
		Email: sub + "@example.com",
		Role:  role,
		Exp:   time.Now().Add(time.Hour).Unix(),
	})
	if err != nil {
		t.Fatalf("SignJWT: %v", err)
	}
	return tok
}

func (e *testEnv) do(t *testing.T, method, path, tok string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode %q: %v", rec.Body.String(), err)
	}
	return out
}

type errorEnvelope struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
		Field   string `json:"field"`
		Detail  string `json:"detail"`
	} `json:"error"`
}

func (e *testEnv) seedBrand(userID string) domain.BrandKit {
	kit := domain.BrandKit{
		UserID:         userID,
		Name:           "Qahwa House",
		PrimaryColor:   "#6b3e26",
		SecondaryColor: "#f4e1c1",
		FontFamily:     "Cairo",
		ToneOfVoice:    "warm",
		Industry:       "coffee",
		Language:       "both",
	}
	_, _ = e.brands.Save(context.Background(), &kit)
	return kit
}

func pngDataURL() string {
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString([]byte{0x89, 'P', 'N', 'G', 0x0d, 0x0a})
}

type memBrands struct {
	mu    sync.Mutex
	items map[string]domain.BrandKit
}

func (m *memBrands) Save(_ context.Context, kit *domain.BrandKit) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	kit.ID = uuid.NewString()
	kit.CreatedAt = time.Now()
	m.items[kit.ID] = *kit
	return kit.ID, nil
}

func (m *memBrands) Update(_ context.Context, kit *domain.BrandKit) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.items[kit.ID]; !ok {
		return domain.ErrNotFound
	}
	m.items[kit.ID] = *kit
	return nil
}

func (m *memBrands) GetByID(_ context.Context, id string) (*domain.BrandKit, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	kit, ok := m.items[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &kit, nil
}

func (m *memBrands) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.items[id]; !ok {
		return domain.ErrNotFound
	}
	delete(m.items, id)
	return nil
}

func (m *memBrands) List(_ context.Context, filter domain.BrandKitFilter) ([]domain.BrandKit, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []domain.BrandKit{}
	for _, kit := range m.items {
		if kit.UserID == filter.UserID {
			out = append(out, kit)
		}
	}
	return out, nil
}

type memCampaigns struct {
	mu    sync.Mutex
	items map[string]domain.Campaign
}

func (m *memCampaigns) Save(_ context.Context, c *domain.Campaign) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c.ID = uuid.NewString()
	c.CreatedAt = time.Now()
	for i := range c.Posts {
		c.Posts[i].ID = uuid.NewString()
		c.Posts[i].CampaignID = c.ID
	}
	m.items[c.ID] = *c
	return c.ID, nil
}

func (m *memCampaigns) Update(_ context.Context, c *domain.Campaign) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.items[c.ID]; !ok {
		return domain.ErrNotFound
	}
	m.items[c.ID] = *c
	return nil
}

func (m *memCampaigns) UpdatePost(_ context.Context, post *domain.CampaignPost) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.items[post.CampaignID]
	if !ok {
		return domain.ErrNotFound
	}
	for i := range c.Posts {
		if c.Posts[i].ID == post.ID {
			c.Posts[i] = *post
			return nil
		}
	}
	return domain.ErrNotFound
}

func (m *memCampaigns) GetByID(_ context.Context, id string) (*domain.Campaign, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.items[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	c.Posts = append([]domain.CampaignPost(nil), c.Posts...)
	return &c, nil
}

func (m *memCampaigns) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.items, id)
	return nil
}

func (m *memCampaigns) List(_ context.Context, filter domain.CampaignFilter) ([]domain.Campaign, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []domain.Campaign{}
	for _, c := range m.items {
		if c.UserID == filter.UserID {
			out = append(out, c)
		}
	}
	return out, nil
}

type memUsers struct {
	mu    sync.Mutex
	items map[string]domain.User
}

func (m *memUsers) Save(_ context.Context, u *domain.User) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	u.CreatedAt = time.Now()
	m.items[u.ID] = *u
	return u.ID, nil
}

func (m *memUsers) Update(_ context.Context, u *domain.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.items[u.ID]; !ok {
		return domain.ErrNotFound
	}
	m.items[u.ID] = *u
	return nil
}

func (m *memUsers) GetByID(_ context.Context, id string) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.items[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &u, nil
}

func (m *memUsers) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.items[id]; !ok {
		return domain.ErrNotFound
	}
	delete(m.items, id)
	return nil
}

func (m *memUsers) List(_ context.Context, filter domain.UserFilter) ([]domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []domain.User{}
	for _, u := range m.items {
		if filter.Status == "" || u.SubscriptionStatus == filter.Status {
			out = append(out, u)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Email < out[j].Email })
	return out, nil
}

type memPlans struct {
	mu    sync.Mutex
	items map[string]domain.Plan
}

func (m *memPlans) Save(_ context.Context, p *domain.Plan) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p.ID = uuid.NewString()
	m.items[p.ID] = *p
	return p.ID, nil
}

func (m *memPlans) Update(_ context.Context, p *domain.Plan) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items[p.ID] = *p
	return nil
}

func (m *memPlans) GetByID(_ context.Context, id string) (*domain.Plan, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.items[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &p, nil
}

func (m *memPlans) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.items, id)
	return nil
}

func (m *memPlans) List(_ context.Context, filter domain.PlanFilter) ([]domain.Plan, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []domain.Plan{}
	for _, p := range m.items {
		if !filter.ActiveOnly || p.IsActive {
			out = append(out, p)
		}
	}
	return out, nil
}

type memStrategies struct {
	mu    sync.Mutex
	items map[string]domain.StrategicPlan
}

func (m *memStrategies) Save(_ context.Context, p *domain.StrategicPlan) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p.ID = uuid.NewString()
	m.items[p.ID] = *p
	return p.ID, nil
}

func (m *memStrategies) GetByID(_ context.Context, id string) (*domain.StrategicPlan, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.items[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &p, nil
}

func (m *memStrategies) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.items, id)
	return nil
}

func (m *memStrategies) List(_ context.Context, userID string) ([]domain.StrategicPlan, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []domain.StrategicPlan{}
	for _, p := range m.items {
		if p.UserID == userID {
			out = append(out, p)
		}
	}
	return out, nil
}

type memVideos struct {
	mu    sync.Mutex
	items []domain.VideoArtifact
}

func (m *memVideos) Save(_ context.Context, v *domain.VideoArtifact) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v.ID = uuid.NewString()
	m.items = append(m.items, *v)
	return v.ID, nil
}

func (m *memVideos) List(_ context.Context, userID string) ([]domain.VideoArtifact, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []domain.VideoArtifact{}
	for _, v := range m.items {
		if v.UserID == userID {
			out = append(out, v)
		}
	}
	return out, nil
}

func serve(e *testEnv, r *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, r)
	return rec
}
