package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"brandforge/internal/domain"
	"brandforge/internal/infra"
	"brandforge/internal/orchestrator"
	"brandforge/internal/verify"
)

// Service is the orchestrator surface the handlers drive.
type Service interface {
	GenerateLogo(ctx context.Context, req orchestrator.LogoRequest) (*orchestrator.AssetResult, error)
	GenerateBanner(ctx context.Context, req orchestrator.BannerRequest) (*orchestrator.AssetResult, error)
	GenerateTagline(ctx context.Context, userID, prompt string) (*orchestrator.TextResult, error)
	GenerateBrandNames(ctx context.Context, userID, description, category string) (*orchestrator.TextResult, error)
	GenerateBrandAssets(ctx context.Context, req orchestrator.BrandAssetsRequest) (*orchestrator.BrandAssetsResult, error)
	ListAssets(ctx context.Context, userID string, limit int) ([]domain.GeneratedAsset, error)
	Balance(ctx context.Context, userID string) (*domain.CreditBalance, error)
}

type App struct {
	Service   Service
	Verifier  *verify.Verifier
	Extractor verify.TextExtractor
	Blobs     domain.BlobStore
	Feed      ActivityFeed
	Logger    *infra.Logger
	ProxyHTTP *http.Client
}

func (a *App) json(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func (a *App) error(w http.ResponseWriter, code int, errCode, message string) {
	a.json(w, code, map[string]string{"error": errCode, "message": message})
}

// fail maps domain errors to HTTP responses. Provider and persistence
// details are logged, never returned to the caller.
func (a *App) fail(w http.ResponseWriter, r *http.Request, err error) {
	a.Logger.Error().Err(err).Str("path", r.URL.Path).Msg("request failed")

	var cfgErr *domain.ConfigurationError
	var genErr *domain.GenerationError
	switch {
	case errors.Is(err, domain.ErrEmptyPrompt):
		a.error(w, http.StatusBadRequest, "bad_request", "prompt is required")
	case errors.Is(err, domain.ErrUnauthenticated):
		a.error(w, http.StatusUnauthorized, "unauthorized", "user id is required")
	case errors.Is(err, domain.ErrInsufficientCredits):
		a.error(w, http.StatusPaymentRequired, "insufficient_credits", "not enough credits remaining")
	case errors.Is(err, domain.ErrNotFound):
		a.error(w, http.StatusNotFound, "not_found", "resource not found")
	case errors.Is(err, domain.ErrVerificationUnavailable):
		a.error(w, http.StatusServiceUnavailable, "verification_unavailable", "verification service unavailable")
	case errors.As(err, &cfgErr):
		a.error(w, http.StatusBadRequest, "bad_request", cfgErr.Reason)
	case errors.As(err, &genErr):
		a.error(w, http.StatusBadGateway, "generation_failed", "generation failed after retries")
	default:
		a.error(w, http.StatusInternalServerError, "internal", "internal error")
	}
}

func decode(r *http.Request, v any) error {
	return json.NewDecoder(r.Body).Decode(v)
}
