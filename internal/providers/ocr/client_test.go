package ocr

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"testing"

	"brandforge/internal/domain"
)

type stubTransport struct {
	status  int
	payload any
	err     error
	fields  map[string]string
}

func (s *stubTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if s.err != nil {
		return nil, s.err
	}
	_, params, err := mime.ParseMediaType(req.Header.Get("Content-Type"))
	if err != nil {
		return nil, err
	}
	reader := multipart.NewReader(req.Body, params["boundary"])
	s.fields = map[string]string{}
	for {
		part, err := reader.NextPart()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		value, _ := io.ReadAll(part)
		s.fields[part.FormName()] = string(value)
	}
	raw, _ := json.Marshal(s.payload)
	return &http.Response{
		StatusCode: s.status,
		Body:       io.NopCloser(bytes.NewReader(raw)),
	}, nil
}

func TestExtractText(t *testing.T) {
	transport := &stubTransport{
		status: http.StatusOK,
		payload: map[string]any{
			"ParsedResults": []any{
				map[string]any{"ParsedText": "ACME CORP"},
			},
		},
	}
	client, err := NewClient(Options{APIKey: "test", HTTPClient: &http.Client{Transport: transport}})
	if err != nil {
		t.Fatalf("new client: %v", err)
	}

	text, err := client.ExtractText(context.Background(), "https://cdn.example.com/logo.png")
	if err != nil {
		t.Fatalf("extract text: %v", err)
	}
	if text != "ACME CORP" {
		t.Fatalf("text = %q", text)
	}
	if transport.fields["url"] != "https://cdn.example.com/logo.png" {
		t.Fatalf("url field = %q", transport.fields["url"])
	}
	if transport.fields["OCREngine"] != "2" {
		t.Fatalf("OCREngine field = %q", transport.fields["OCREngine"])
	}
	if transport.fields["language"] != "eng" {
		t.Fatalf("language field = %q", transport.fields["language"])
	}
}

func TestExtractTextTransportFailure(t *testing.T) {
	transport := &stubTransport{err: errors.New("connection refused")}
	client, _ := NewClient(Options{APIKey: "test", HTTPClient: &http.Client{Transport: transport}})

	_, err := client.ExtractText(context.Background(), "https://cdn.example.com/logo.png")
	if !errors.Is(err, domain.ErrVerificationUnavailable) {
		t.Fatalf("expected verification unavailable, got %v", err)
	}
}

func TestExtractTextProcessingError(t *testing.T) {
	transport := &stubTransport{
		status: http.StatusOK,
		payload: map[string]any{
			"ParsedResults":         []any{},
			"IsErroredOnProcessing": true,
			"ErrorMessage":          []any{"file too large"},
		},
	}
	client, _ := NewClient(Options{APIKey: "test", HTTPClient: &http.Client{Transport: transport}})

	_, err := client.ExtractText(context.Background(), "https://cdn.example.com/logo.png")
	if !errors.Is(err, domain.ErrVerificationUnavailable) {
		t.Fatalf("expected verification unavailable, got %v", err)
	}
}

func TestExtractTextNoResults(t *testing.T) {
	transport := &stubTransport{
		status:  http.StatusOK,
		payload: map[string]any{"ParsedResults": []any{}},
	}
	client, _ := NewClient(Options{APIKey: "test", HTTPClient: &http.Client{Transport: transport}})

	text, err := client.ExtractText(context.Background(), "https://cdn.example.com/logo.png")
	if err != nil {
		t.Fatalf("extract text: %v", err)
	}
	if text != "" {
		t.Fatalf("text = %q, want empty", text)
	}
}
