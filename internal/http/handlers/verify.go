package handlers

import (
	"net/http"
	"strings"
)

type verifyImageRequest struct {
	ImageURL     string `json:"imageUrl"`
	ExpectedText string `json:"expectedText"`
}

// VerifyImage OCRs a generated image and reports whether the expected brand
// text is present and correctly spelled.
func (a *App) VerifyImage(w http.ResponseWriter, r *http.Request) {
	if a.Verifier == nil {
		a.error(w, http.StatusServiceUnavailable, "verification_unavailable", "verification is not configured")
		return
	}
	var req verifyImageRequest
	if err := decode(r, &req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	if strings.TrimSpace(req.ImageURL) == "" || strings.TrimSpace(req.ExpectedText) == "" {
		a.error(w, http.StatusBadRequest, "bad_request", "imageUrl and expectedText are required")
		return
	}
	result, err := a.Verifier.VerifyImage(r.Context(), req.ImageURL, req.ExpectedText)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	a.json(w, http.StatusOK, result)
}

type extractTextRequest struct {
	ImageURL string `json:"imageUrl"`
}

// ExtractText returns the raw OCR output for an image without matching it
// against anything.
func (a *App) ExtractText(w http.ResponseWriter, r *http.Request) {
	if a.Extractor == nil {
		a.error(w, http.StatusServiceUnavailable, "verification_unavailable", "ocr is not configured")
		return
	}
	var req extractTextRequest
	if err := decode(r, &req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	if strings.TrimSpace(req.ImageURL) == "" {
		a.error(w, http.StatusBadRequest, "bad_request", "imageUrl is required")
		return
	}
	text, err := a.Extractor.ExtractText(r.Context(), req.ImageURL)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	a.json(w, http.StatusOK, map[string]string{"text": text})
}
