package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/physicalai/companion/internal/client/models"
	"github.com/physicalai/companion/internal/common"
	"github.com/physicalai/companion/internal/logging"
)

// HTTPClient implements Client against the backend's REST endpoints.
type HTTPClient struct {
	baseURL string
	client  *http.Client
	logger  logging.Logger
}

// NewHTTPClient constructs an HTTPClient for the given base URL
// (e.g. "http://127.0.0.1:8000"). Timeouts are the caller's concern and are
// applied through request contexts.
func NewHTTPClient(baseURL string, logger logging.Logger) *HTTPClient {
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{},
		logger:  logger.With("component", "api"),
	}
}

// postJSON marshals body, POSTs it to path, and decodes a 2xx response into
// out. Non-2xx responses are converted to *common.BackendError carrying the
// "detail" field of the response body when one is present.
func (c *HTTPClient) postJSON(ctx context.Context, path, token string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set(common.AuthorizationHeader, common.BearerPrefix+token)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		c.logger.Error(ctx, "request failed", "path", path, "error", err.Error())
		return fmt.Errorf("post %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.backendError(ctx, path, resp)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s response: %w", path, err)
	}
	return nil
}

func (c *HTTPClient) backendError(ctx context.Context, path string, resp *http.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 64*1024))

	var body struct {
		Detail string `json:"detail"`
	}
	_ = json.Unmarshal(raw, &body)

	c.logger.Warn(ctx, "backend returned error status",
		"path", path, "status", resp.StatusCode, "detail", body.Detail)

	return &common.BackendError{StatusCode: resp.StatusCode, Detail: body.Detail}
}

func (c *HTTPClient) Signup(ctx context.Context, req SignupRequest) (*AuthResponse, error) {
	var out AuthResponse
	if err := c.postJSON(ctx, "/auth/signup", "", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) Login(ctx context.Context, email, password string) (*AuthResponse, error) {
	body := map[string]string{"email": email, "password": password}

	var out AuthResponse
	if err := c.postJSON(ctx, "/auth/login", "", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Me validates the token via GET /auth/me. A 401 is reported as
// common.ErrAuth so callers can distinguish a rejected token from the
// backend being unreachable.
func (c *HTTPClient) Me(ctx context.Context, token string) (*models.User, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/auth/me", nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set(common.AuthorizationHeader, common.BearerPrefix+token)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("get /auth/me: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		return nil, common.ErrAuth
	}
	if resp.StatusCode != http.StatusOK {
		return nil, c.backendError(ctx, "/auth/me", resp)
	}

	var user models.User
	if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
		return nil, fmt.Errorf("decode /auth/me response: %w", err)
	}
	return &user, nil
}

// Query posts the question to /query. The backend's current responses use
// the "answer" field; "response" is accepted for older deployments. An empty
// string is returned when neither is present.
func (c *HTTPClient) Query(ctx context.Context, query string, selectedText *string) (string, error) {
	body := struct {
		Query        string  `json:"query"`
		SelectedText *string `json:"selected_text"`
	}{Query: query, SelectedText: selectedText}

	var out struct {
		Answer   string `json:"answer"`
		Response string `json:"response"`
	}
	if err := c.postJSON(ctx, "/query", "", body, &out); err != nil {
		return "", err
	}

	if out.Answer != "" {
		return out.Answer, nil
	}
	return out.Response, nil
}

func (c *HTTPClient) Personalize(ctx context.Context, token, content, title string, profile UserProfile) (string, error) {
	body := struct {
		Content     string      `json:"content"`
		UserProfile UserProfile `json:"user_profile"`
		Title       string      `json:"title"`
	}{Content: content, UserProfile: profile, Title: title}

	var out struct {
		PersonalizedContent string `json:"personalized_content"`
	}
	if err := c.postJSON(ctx, "/personalize", token, body, &out); err != nil {
		return "", err
	}
	return out.PersonalizedContent, nil
}

func (c *HTTPClient) TranslateUrdu(ctx context.Context, token, content, title string) (string, error) {
	body := struct {
		Content string `json:"content"`
		Title   string `json:"title"`
	}{Content: content, Title: title}

	var out struct {
		UrduContent string `json:"urdu_content"`
	}
	if err := c.postJSON(ctx, "/translate_urdu", token, body, &out); err != nil {
		return "", err
	}
	return out.UrduContent, nil
}
