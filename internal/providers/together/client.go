package together

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"brandforge/internal/domain"
	"brandforge/internal/infra"
)

// ErrMissingAPIKey indicates that the client was configured without credentials.
var ErrMissingAPIKey = errors.New("together: api key is required")

const providerName = "together"

// Options configures the Together AI client.
type Options struct {
	APIKey         string
	BaseURL        string
	ImageModel     string
	ChatModel      string
	HTTPClient     *http.Client
	Logger         *infra.Logger
	RequestTimeout time.Duration
}

// Client performs HTTP calls to the Together AI inference API.
type Client struct {
	apiKey     string
	baseURL    string
	imageModel string
	chatModel  string
	httpClient *http.Client
	logger     *infra.Logger
}

// ImageRequest captures the inputs for one text-to-image call.
type ImageRequest struct {
	Prompt         string
	NegativePrompt string
	Width          int
	Height         int
	Steps          int
	Seed           int
	CFGScale       float64
}

// ChatRequest captures the inputs for one chat completion call.
type ChatRequest struct {
	System            string
	Prompt            string
	MaxTokens         int
	Temperature       float64
	TopP              float64
	TopK              int
	RepetitionPenalty float64
	Stop              []string
}

type imageGenerationRequest struct {
	Model          string  `json:"model"`
	Prompt         string  `json:"prompt"`
	NegativePrompt string  `json:"negative_prompt,omitempty"`
	Width          int     `json:"width"`
	Height         int     `json:"height"`
	Steps          int     `json:"steps"`
	N              int     `json:"n"`
	Seed           int     `json:"seed"`
	CFGScale       float64 `json:"cfg_scale,omitempty"`
}

type imageGenerationResponse struct {
	Data []struct {
		URL string `json:"url"`
	} `json:"data"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatCompletionRequest struct {
	Model             string        `json:"model"`
	Messages          []chatMessage `json:"messages"`
	MaxTokens         int           `json:"max_tokens,omitempty"`
	Temperature       float64       `json:"temperature,omitempty"`
	TopP              float64       `json:"top_p,omitempty"`
	TopK              int           `json:"top_k,omitempty"`
	RepetitionPenalty float64       `json:"repetition_penalty,omitempty"`
	Stop              []string      `json:"stop,omitempty"`
}

type chatCompletionResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

type errorResponse struct {
	Error struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error"`
}

// NewClient constructs a client with sane defaults and injected dependencies.
func NewClient(opts Options) (*Client, error) {
	httpClient := opts.HTTPClient
	if httpClient == nil {
		timeout := opts.RequestTimeout
		if timeout <= 0 {
			timeout = 45 * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	baseURL := strings.TrimRight(opts.BaseURL, "/")
	if baseURL == "" {
		baseURL = "https://api.together.xyz/v1"
	}
	imageModel := strings.TrimSpace(opts.ImageModel)
	if imageModel == "" {
		imageModel = "black-forest-labs/FLUX.1-schnell-Free"
	}
	chatModel := strings.TrimSpace(opts.ChatModel)
	if chatModel == "" {
		chatModel = "meta-llama/Llama-Vision-Free"
	}
	var logger *infra.Logger
	if opts.Logger != nil {
		logger = opts.Logger
	} else {
		discard := zerolog.New(io.Discard)
		l := infra.Logger(discard)
		logger = &l
	}
	return &Client{
		apiKey:     strings.TrimSpace(opts.APIKey),
		baseURL:    baseURL,
		imageModel: imageModel,
		chatModel:  chatModel,
		httpClient: httpClient,
		logger:     logger,
	}, nil
}

// HasCredentials reports whether the client can perform remote calls.
func (c *Client) HasCredentials() bool {
	return c.apiKey != ""
}

// GenerateImage invokes the image generation endpoint once and returns the
// URL of the rendered image.
func (c *Client) GenerateImage(ctx context.Context, req ImageRequest) (string, error) {
	if !c.HasCredentials() {
		return "", ErrMissingAPIKey
	}
	prompt := strings.TrimSpace(req.Prompt)
	if prompt == "" {
		return "", domain.ErrEmptyPrompt
	}
	payload := imageGenerationRequest{
		Model:          c.imageModel,
		Prompt:         prompt,
		NegativePrompt: strings.TrimSpace(req.NegativePrompt),
		Width:          req.Width,
		Height:         req.Height,
		Steps:          req.Steps,
		N:              1,
		Seed:           req.Seed,
		CFGScale:       req.CFGScale,
	}

	var decoded imageGenerationResponse
	if err := c.postJSON(ctx, "/images/generations", payload, &decoded); err != nil {
		return "", err
	}
	if len(decoded.Data) == 0 || strings.TrimSpace(decoded.Data[0].URL) == "" {
		return "", &domain.ProviderError{
			Provider: providerName,
			Kind:     domain.ProviderErrEmptyResponse,
			Err:      errors.New("image response contained no url"),
		}
	}
	url := strings.TrimSpace(decoded.Data[0].URL)
	c.logger.Debug().
		Str("model", c.imageModel).
		Int("seed", req.Seed).
		Str("url", url).
		Msg("together: generated image")
	return url, nil
}

// Complete invokes the chat completions endpoint once and returns the raw
// assistant message content.
func (c *Client) Complete(ctx context.Context, req ChatRequest) (string, error) {
	if !c.HasCredentials() {
		return "", ErrMissingAPIKey
	}
	prompt := strings.TrimSpace(req.Prompt)
	if prompt == "" {
		return "", domain.ErrEmptyPrompt
	}
	var messages []chatMessage
	if system := strings.TrimSpace(req.System); system != "" {
		messages = append(messages, chatMessage{Role: "system", Content: system})
	}
	messages = append(messages, chatMessage{Role: "user", Content: prompt})

	payload := chatCompletionRequest{
		Model:             c.chatModel,
		Messages:          messages,
		MaxTokens:         req.MaxTokens,
		Temperature:       req.Temperature,
		TopP:              req.TopP,
		TopK:              req.TopK,
		RepetitionPenalty: req.RepetitionPenalty,
		Stop:              req.Stop,
	}

	var decoded chatCompletionResponse
	if err := c.postJSON(ctx, "/chat/completions", payload, &decoded); err != nil {
		return "", err
	}
	if len(decoded.Choices) == 0 {
		return "", &domain.ProviderError{
			Provider: providerName,
			Kind:     domain.ProviderErrEmptyResponse,
			Err:      errors.New("completion contained no choices"),
		}
	}
	content := strings.TrimSpace(decoded.Choices[0].Message.Content)
	if content == "" {
		return "", &domain.ProviderError{
			Provider: providerName,
			Kind:     domain.ProviderErrEmptyResponse,
			Err:      errors.New("completion message was empty"),
		}
	}
	return content, nil
}

func (c *Client) postJSON(ctx context.Context, path string, payload, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("together: encode request: %w", err)
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("together: build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return &domain.ProviderError{Provider: providerName, Kind: domain.ProviderErrTransport, Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return &domain.ProviderError{Provider: providerName, Kind: domain.ProviderErrTransport, Err: err}
	}
	if resp.StatusCode >= 300 {
		return classifyStatus(resp.StatusCode, raw)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return &domain.ProviderError{
			Provider: providerName,
			Kind:     domain.ProviderErrBadRequest,
			Err:      fmt.Errorf("decode response: %w", err),
		}
	}
	return nil
}

func classifyStatus(status int, raw []byte) error {
	detail := strings.TrimSpace(string(raw))
	var parsed errorResponse
	if err := json.Unmarshal(raw, &parsed); err == nil && parsed.Error.Message != "" {
		detail = parsed.Error.Message
	}
	kind := domain.ProviderErrBadRequest
	switch {
	case status == http.StatusTooManyRequests:
		kind = domain.ProviderErrRateLimited
	case status >= 500:
		kind = domain.ProviderErrUpstream
	}
	return &domain.ProviderError{
		Provider: providerName,
		Kind:     kind,
		Err:      fmt.Errorf("status %d: %s", status, detail),
	}
}
