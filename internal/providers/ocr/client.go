package ocr

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"brandforge/internal/domain"
)

// ErrMissingAPIKey indicates that the client was configured without credentials.
var ErrMissingAPIKey = errors.New("ocr: api key is required")

// Options configures the OCR.space client.
type Options struct {
	APIKey         string
	BaseURL        string
	HTTPClient     *http.Client
	RequestTimeout time.Duration
}

// Client extracts text from remote images through the OCR.space parse API.
type Client struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

type parseResponse struct {
	ParsedResults []struct {
		ParsedText string `json:"ParsedText"`
	} `json:"ParsedResults"`
	IsErroredOnProcessing bool            `json:"IsErroredOnProcessing"`
	ErrorMessage          json.RawMessage `json:"ErrorMessage"`
}

func NewClient(opts Options) (*Client, error) {
	baseURL := strings.TrimRight(opts.BaseURL, "/")
	if baseURL == "" {
		baseURL = "https://api.ocr.space"
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
		baseURL: baseURL,
		client:  client,
	}, nil
}

// HasCredentials reports whether the client can perform remote calls.
func (c *Client) HasCredentials() bool {
	return c.apiKey != ""
}

// ExtractText runs OCR against the image at imageURL and returns the raw
// extracted text. Transport problems surface as ErrVerificationUnavailable
// so callers can report the artifact as unverified rather than invalid.
func (c *Client) ExtractText(ctx context.Context, imageURL string) (string, error) {
	if !c.HasCredentials() {
		return "", ErrMissingAPIKey
	}
	imageURL = strings.TrimSpace(imageURL)
	if imageURL == "" {
		return "", errors.New("ocr: image url is required")
	}

	var body strings.Builder
	form := multipart.NewWriter(&body)
	fields := map[string]string{
		"apikey":            c.apiKey,
		"url":               imageURL,
		"language":          "eng",
		"OCREngine":         "2",
		"detectOrientation": "true",
		"scale":             "true",
	}
	for name, value := range fields {
		if err := form.WriteField(name, value); err != nil {
			return "", fmt.Errorf("ocr: encode form: %w", err)
		}
	}
	if err := form.Close(); err != nil {
		return "", fmt.Errorf("ocr: encode form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/parse/image", strings.NewReader(body.String()))
	if err != nil {
		return "", fmt.Errorf("ocr: build request: %w", err)
	}
	req.Header.Set("Content-Type", form.FormDataContentType())

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrVerificationUnavailable, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrVerificationUnavailable, err)
	}
	if resp.StatusCode >= 300 {
		return "", fmt.Errorf("%w: status %d", domain.ErrVerificationUnavailable, resp.StatusCode)
	}

	var decoded parseResponse
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return "", fmt.Errorf("%w: decode response: %v", domain.ErrVerificationUnavailable, err)
	}
	if decoded.IsErroredOnProcessing {
		return "", fmt.Errorf("%w: %s", domain.ErrVerificationUnavailable, errorDetail(decoded.ErrorMessage))
	}
	if len(decoded.ParsedResults) == 0 {
		return "", nil
	}
	return decoded.ParsedResults[0].ParsedText, nil
}

// ErrorMessage arrives as either a string or an array of strings.
func errorDetail(raw json.RawMessage) string {
	if len(raw) == 0 {
		return "processing error"
	}
	var single string
	if err := json.Unmarshal(raw, &single); err == nil {
		return single
	}
	var many []string
	if err := json.Unmarshal(raw, &many); err == nil && len(many) > 0 {
		return strings.Join(many, "; ")
	}
	return "processing error"
}
