package drafting

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// HTTPGenerator calls a text-generation endpoint over HTTP. The request and
// response shapes are the minimal contract of the drafting boundary:
// {"prompt": "..."} in, {"text": "..."} out.
type HTTPGenerator struct {
	url    string
	client *http.Client
}

// NewHTTPGenerator builds a generator for the given endpoint URL.
func NewHTTPGenerator(url string, timeout time.Duration) *HTTPGenerator {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &HTTPGenerator{
		url:    url,
		client: &http.Client{Timeout: timeout},
	}
}

type generateRequest struct {
	Prompt string `json:"prompt"`
}

type generateResponse struct {
	Text string `json:"text"`
}

// Generate posts the prompt and returns the generated text.
func (g *HTTPGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	payload, err := json.Marshal(generateRequest{Prompt: prompt})
	if err != nil {
		return "", fmt.Errorf("encode drafting request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.url, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("build drafting request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("call drafting endpoint: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("drafting endpoint returned status %d", resp.StatusCode)
	}

	var out generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("decode drafting response: %w", err)
	}
	if out.Text == "" {
		return "", fmt.Errorf("drafting endpoint returned empty text")
	}
	return out.Text, nil
}
