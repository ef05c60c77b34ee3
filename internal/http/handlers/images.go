package handlers

import (
	"context"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"brandforge/internal/domain"
	"brandforge/internal/storage"
)

// uploads are capped well above typical logo exports.
const maxUploadBytes = 10 << 20

type uploadImageRequest struct {
	ImageURL string `json:"imageUrl"`
	UserID   string `json:"userId"`
	Type     string `json:"type"`
}

// UploadImage re-hosts an image under the service origin. The JSON form
// fetches the bytes from a provider URL and stores them under the asset
// type's prefix; a multipart form with an "image" file covers direct
// uploads from the client.
func (a *App) UploadImage(w http.ResponseWriter, r *http.Request) {
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		a.uploadMultipart(w, r)
		return
	}

	var req uploadImageRequest
	if err := decode(r, &req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid request body")
		return
	}
	userID := strings.TrimSpace(req.UserID)
	if userID == "" {
		a.error(w, http.StatusUnauthorized, "unauthorized", "userId is required")
		return
	}
	assetType := domain.AssetType(strings.ToLower(strings.TrimSpace(req.Type)))
	if !assetType.IsImage() {
		a.error(w, http.StatusBadRequest, "bad_request", "type must be logo or banner")
		return
	}
	target, err := url.Parse(strings.TrimSpace(req.ImageURL))
	if err != nil || (target.Scheme != "http" && target.Scheme != "https") || target.Host == "" {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid image url")
		return
	}

	data, err := a.fetchImage(r.Context(), target.String())
	if err != nil {
		a.Logger.Warn().Err(err).Str("url", target.String()).Msg("could not fetch upload source")
		a.error(w, http.StatusBadGateway, "upstream", "could not fetch image")
		return
	}
	key := storage.AssetKey(string(assetType), userID, time.Now(), rand.Intn(1_000_000))
	storedKey, err := a.Blobs.Write(r.Context(), key, data)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	a.json(w, http.StatusOK, map[string]string{"url": a.Blobs.PublicURL(storedKey)})
}

// fetchImage pulls the source bytes, bounded by the upload cap.
func (a *App) fetchImage(ctx context.Context, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}
	client := a.ProxyHTTP
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return nil, fmt.Errorf("fetch status %d", resp.StatusCode)
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxUploadBytes+1))
	if err != nil {
		return nil, err
	}
	if len(data) > maxUploadBytes {
		return nil, fmt.Errorf("image exceeds %d byte limit", maxUploadBytes)
	}
	return data, nil
}

func (a *App) uploadMultipart(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid multipart payload")
		return
	}
	userID := strings.TrimSpace(r.FormValue("userId"))
	if userID == "" {
		a.error(w, http.StatusUnauthorized, "unauthorized", "userId is required")
		return
	}
	file, header, err := r.FormFile("image")
	if err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "image file is required")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxUploadBytes+1))
	if err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "could not read image")
		return
	}
	if len(data) > maxUploadBytes {
		a.error(w, http.StatusRequestEntityTooLarge, "too_large", "image exceeds upload limit")
		return
	}

	ext := strings.ToLower(path.Ext(header.Filename))
	switch ext {
	case ".png", ".jpg", ".jpeg", ".webp":
	default:
		ext = ".png"
	}
	key := fmt.Sprintf("uploads/%s_%d_%s%s", userID, time.Now().UnixMilli(), uuid.NewString()[:8], ext)
	storedKey, err := a.Blobs.Write(r.Context(), key, data)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	a.json(w, http.StatusOK, map[string]string{"url": a.Blobs.PublicURL(storedKey)})
}

// ProxyImage streams a remote provider image through the service origin so
// browser clients avoid cross-origin restrictions on ephemeral provider
// URLs. Responses cache for a year; provider URLs are single-use anyway.
func (a *App) ProxyImage(w http.ResponseWriter, r *http.Request) {
	raw := chi.URLParam(r, "*")
	if raw == "" {
		raw = r.URL.Query().Get("url")
	}
	raw = restoreScheme(strings.TrimSpace(raw))
	target, err := url.Parse(raw)
	if err != nil || (target.Scheme != "http" && target.Scheme != "https") || target.Host == "" {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid image url")
		return
	}
	if q := r.URL.RawQuery; q != "" && r.URL.Query().Get("url") == "" {
		target.RawQuery = q
	}

	req, err := http.NewRequestWithContext(r.Context(), http.MethodGet, target.String(), nil)
	if err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid image url")
		return
	}
	client := a.ProxyHTTP
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		a.error(w, http.StatusBadGateway, "upstream", "could not fetch image")
		return
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		a.error(w, http.StatusBadGateway, "upstream", "could not fetch image")
		return
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "image/png"
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Cache-Control", "public, max-age=31536000, immutable")
	w.WriteHeader(http.StatusOK)
	_, _ = io.Copy(w, resp.Body)
}

// restoreScheme repairs the double slash that path routing collapses out of
// an embedded absolute URL.
func restoreScheme(raw string) string {
	for _, scheme := range []string{"https", "http"} {
		prefix := scheme + ":/"
		if strings.HasPrefix(raw, prefix) && !strings.HasPrefix(raw, scheme+"://") {
			return scheme + "://" + strings.TrimPrefix(raw, prefix)
		}
	}
	return raw
}
