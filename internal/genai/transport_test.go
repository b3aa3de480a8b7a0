package genai

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"sync"

	"markova/internal/infra/credentials"
)

const testKey = "AIza-test-key-123"

type captureTransport struct {
	mu        sync.Mutex
	responses map[string]responseStub
	requests  []*http.Request
	bodies    [][]byte
}

type responseStub struct {
	status int
	header http.Header
	body   []byte
}

func newCaptureTransport() *captureTransport {
	return &captureTransport{responses: map[string]responseStub{}}
}

func (c *captureTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	var body []byte
	if req.Body != nil {
		b, err := io.ReadAll(req.Body)
		if err != nil {
			return nil, err
		}
		req.Body.Close()
		body = b
	}
	c.mu.Lock()
	c.requests = append(c.requests, req)
	c.bodies = append(c.bodies, body)
	stub, ok := c.responses[req.URL.Path]
	c.mu.Unlock()
	if !ok {
		return responseStub{status: http.StatusNotFound, body: []byte(`{"error":{"code":404,"message":"no stub"}}`)}.toResponse(), nil
	}
	return stub.toResponse(), nil
}

func (c *captureTransport) setJSON(path string, status int, payload any) {
	body, _ := json.Marshal(payload)
	c.responses[path] = responseStub{
		status: status,
		header: http.Header{"Content-Type": []string{"application/json"}},
		body:   body,
	}
}

func (c *captureTransport) setBinary(path, mime string, data []byte) {
	c.responses[path] = responseStub{
		status: http.StatusOK,
		header: http.Header{"Content-Type": []string{mime}},
		body:   data,
	}
}

func (c *captureTransport) lastBody() []byte {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.bodies[len(c.bodies)-1]
}

func (s responseStub) toResponse() *http.Response {
	header := http.Header{}
	for k, v := range s.header {
		header[k] = append([]string(nil), v...)
	}
	return &http.Response{
		StatusCode: s.status,
		Header:     header,
		Body:       io.NopCloser(bytes.NewReader(s.body)),
	}
}

func newTestClient(transport http.RoundTripper) *Client {
	return NewClient(Options{
		Credentials: credentials.EnvProvider{Key: testKey},
		BaseURL:     "https://gemini.test/v1beta",
		HTTPClient:  &http.Client{Transport: transport},
	})
}
