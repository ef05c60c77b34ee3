package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"brandforge/internal/domain"
)

// ErrMissingAPIKey indicates that the client was configured without credentials.
var ErrMissingAPIKey = errors.New("gemini: api key is required")

const providerName = "gemini"

// Options configures the Gemini generateContent client.
type Options struct {
	APIKey         string
	Model          string
	BaseURL        string
	HTTPClient     *http.Client
	RequestTimeout time.Duration
}

// Client performs HTTP calls against the Gemini REST API.
type Client struct {
	apiKey  string
	model   string
	baseURL string
	client  *http.Client
}

type generateRequest struct {
	Contents         []content         `json:"contents"`
	GenerationConfig *generationConfig `json:"generationConfig,omitempty"`
}

type content struct {
	Role  string `json:"role,omitempty"`
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text,omitempty"`
}

type generationConfig struct {
	Temperature     float64 `json:"temperature,omitempty"`
	TopK            int     `json:"topK,omitempty"`
	TopP            float64 `json:"topP,omitempty"`
	MaxOutputTokens int     `json:"maxOutputTokens,omitempty"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func NewClient(opts Options) (*Client, error) {
	baseURL := strings.TrimRight(opts.BaseURL, "/")
	if baseURL == "" {
		baseURL = "https://generativelanguage.googleapis.com/v1beta"
	}
	model := strings.TrimSpace(opts.Model)
	if model == "" {
		model = "gemini-pro"
	}
	client := opts.HTTPClient
	if client == nil {
		timeout := opts.RequestTimeout
		if timeout <= 0 {
			timeout = 45 * time.Second
		}
		client = &http.Client{Timeout: timeout}
	}
	return &Client{
		apiKey:  strings.TrimSpace(opts.APIKey),
		model:   model,
		baseURL: baseURL,
		client:  client,
	}, nil
}

// HasCredentials reports whether the client can perform remote calls.
func (c *Client) HasCredentials() bool {
	return c.apiKey != ""
}

// GenerateContent sends one prompt through generateContent and returns the
// first non-empty candidate text.
func (c *Client) GenerateContent(ctx context.Context, prompt string) (string, error) {
	if !c.HasCredentials() {
		return "", ErrMissingAPIKey
	}
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return "", domain.ErrEmptyPrompt
	}
	payload := generateRequest{
		Contents: []content{{
			Role:  "user",
			Parts: []part{{Text: prompt}},
		}},
		GenerationConfig: &generationConfig{
			Temperature:     0.9,
			TopK:            40,
			TopP:            0.95,
			MaxOutputTokens: 200,
		},
	}
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(payload); err != nil {
		return "", fmt.Errorf("gemini: encode request: %w", err)
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint(), &buf)
	if err != nil {
		return "", fmt.Errorf("gemini: build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-goog-api-key", c.apiKey)

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return "", &domain.ProviderError{Provider: providerName, Kind: domain.ProviderErrTransport, Err: err}
	}
	defer resp.Body.Close()

	var out generateResponse
	if resp.StatusCode >= 300 {
		kind := domain.ProviderErrBadRequest
		switch {
		case resp.StatusCode == http.StatusTooManyRequests:
			kind = domain.ProviderErrRateLimited
		case resp.StatusCode >= 500:
			kind = domain.ProviderErrUpstream
		}
		detail := fmt.Sprintf("status %d", resp.StatusCode)
		if err := json.NewDecoder(resp.Body).Decode(&out); err == nil && out.Error.Message != "" {
			detail += ": " + out.Error.Message
		}
		return "", &domain.ProviderError{Provider: providerName, Kind: kind, Err: errors.New(detail)}
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", &domain.ProviderError{
			Provider: providerName,
			Kind:     domain.ProviderErrBadRequest,
			Err:      fmt.Errorf("decode response: %w", err),
		}
	}
	text := extractText(out)
	if text == "" {
		return "", &domain.ProviderError{
			Provider: providerName,
			Kind:     domain.ProviderErrEmptyResponse,
			Err:      errors.New("no candidate text"),
		}
	}
	return text, nil
}

func (c *Client) endpoint() string {
	return fmt.Sprintf("%s/models/%s:generateContent", c.baseURL, url.PathEscape(c.model))
}

func extractText(resp generateResponse) string {
	for _, cand := range resp.Candidates {
		for _, p := range cand.Content.Parts {
			if text := strings.TrimSpace(p.Text); text != "" {
				return text
			}
		}
	}
	return ""
}
