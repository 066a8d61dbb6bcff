// Package llm contains the thin client for the generative-text API used by
// the translate action when a client-held API key is configured.
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/physicalai/companion/internal/logging"
)

const defaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"

// GeminiClient calls the generateContent endpoint of the generative-text API.
type GeminiClient struct {
	apiKey  string
	model   string
	baseURL string
	client  *http.Client
	logger  logging.Logger
}

// NewGeminiClient creates a client for the given API key. The model defaults
// to gemini-pro when empty.
func NewGeminiClient(apiKey, model string, logger logging.Logger) *GeminiClient {
	if model == "" {
		model = "gemini-pro"
	}
	return &GeminiClient{
		apiKey:  apiKey,
		model:   model,
		baseURL: defaultBaseURL,
		client:  &http.Client{},
		logger:  logger.With("component", "llm", "model", model),
	}
}

// SetBaseURL overrides the API host. Used by tests.
func (c *GeminiClient) SetBaseURL(u string) {
	c.baseURL = strings.TrimRight(u, "/")
}

type generateRequest struct {
	Contents []content `json:"contents"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []part `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// GenerateText sends the prompt and returns the first candidate's text,
// trimmed. An empty string with nil error means the API answered but
// produced no usable candidate.
func (c *GeminiClient) GenerateText(ctx context.Context, prompt string) (string, error) {
	reqBody := generateRequest{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
	}

	body, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("gemini: marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", c.baseURL, c.model, c.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("gemini: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		c.logger.Error(ctx, "generate request failed", "error", err.Error())
		return "", fmt.Errorf("gemini: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4*1024))
		c.logger.Warn(ctx, "generate returned non-OK status", "status", resp.StatusCode)
		return "", fmt.Errorf("gemini: returned status %d: %s", resp.StatusCode, string(raw))
	}

	var result generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("gemini: decode response: %w", err)
	}

	if len(result.Candidates) == 0 || len(result.Candidates[0].Content.Parts) == 0 {
		return "", nil
	}
	return strings.TrimSpace(result.Candidates[0].Content.Parts[0].Text), nil
}
