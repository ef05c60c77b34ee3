package handlers

import (
	"net/http"
	"strings"

	"brandforge/internal/domain"
	"brandforge/internal/orchestrator"
)

type generateLogoRequest struct {
	UserID      string `json:"userId"`
	Prompt      string `json:"prompt"`
	Style       string `json:"style"`
	ColorScheme string `json:"colorScheme"`
	Premium     bool   `json:"premium"`
}

type imageResponse struct {
	ImageURL         string `json:"imageUrl"`
	Prompt           string `json:"prompt"`
	Attempts         int    `json:"attempts"`
	RemainingCredits int    `json:"remainingCredits"`
}

func (a *App) GenerateLogo(w http.ResponseWriter, r *http.Request) {
	var req generateLogoRequest
	if err := decode(r, &req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	if strings.TrimSpace(req.UserID) == "" {
		a.error(w, http.StatusUnauthorized, "unauthorized", "userId is required")
		return
	}
	res, err := a.Service.GenerateLogo(r.Context(), orchestrator.LogoRequest{
		UserID:      req.UserID,
		Prompt:      req.Prompt,
		Style:       req.Style,
		ColorScheme: req.ColorScheme,
		Premium:     req.Premium,
	})
	if err != nil {
		a.fail(w, r, err)
		return
	}
	a.json(w, http.StatusOK, imageResponse{
		ImageURL:         res.Asset.ImageURL,
		Prompt:           res.Asset.Prompt,
		Attempts:         res.Attempts,
		RemainingCredits: res.Balance.Remaining(),
	})
}

type generateBannerRequest struct {
	UserID string `json:"userId"`
	Prompt string `json:"prompt"`
}

func (a *App) GenerateBanner(w http.ResponseWriter, r *http.Request) {
	var req generateBannerRequest
	if err := decode(r, &req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	if strings.TrimSpace(req.UserID) == "" {
		a.error(w, http.StatusUnauthorized, "unauthorized", "userId is required")
		return
	}
	res, err := a.Service.GenerateBanner(r.Context(), orchestrator.BannerRequest{
		UserID: req.UserID,
		Prompt: req.Prompt,
	})
	if err != nil {
		a.fail(w, r, err)
		return
	}
	a.json(w, http.StatusOK, imageResponse{
		ImageURL:         res.Asset.ImageURL,
		Prompt:           res.Asset.Prompt,
		Attempts:         res.Attempts,
		RemainingCredits: res.Balance.Remaining(),
	})
}

type generateTaglineRequest struct {
	UserID string `json:"userId"`
	Prompt string `json:"prompt"`
}

type textResponse struct {
	Lines            []string `json:"lines"`
	RemainingCredits int      `json:"remainingCredits"`
}

func (a *App) GenerateTagline(w http.ResponseWriter, r *http.Request) {
	var req generateTaglineRequest
	if err := decode(r, &req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	if strings.TrimSpace(req.UserID) == "" {
		a.error(w, http.StatusUnauthorized, "unauthorized", "userId is required")
		return
	}
	res, err := a.Service.GenerateTagline(r.Context(), req.UserID, req.Prompt)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	a.json(w, http.StatusOK, map[string]any{
		"taglines":         res.Lines,
		"remainingCredits": res.Balance.Remaining(),
	})
}

type generateBrandNameRequest struct {
	UserID      string `json:"userId"`
	Description string `json:"description"`
	Category    string `json:"category"`
}

func (a *App) GenerateBrandName(w http.ResponseWriter, r *http.Request) {
	var req generateBrandNameRequest
	if err := decode(r, &req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	if strings.TrimSpace(req.UserID) == "" {
		a.error(w, http.StatusUnauthorized, "unauthorized", "userId is required")
		return
	}
	res, err := a.Service.GenerateBrandNames(r.Context(), req.UserID, req.Description, req.Category)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	a.json(w, http.StatusOK, map[string]any{
		"names":            res.Lines,
		"remainingCredits": res.Balance.Remaining(),
	})
}

func (a *App) Credits(w http.ResponseWriter, r *http.Request) {
	userID := strings.TrimSpace(r.URL.Query().Get("userId"))
	if userID == "" {
		a.error(w, http.StatusUnauthorized, "unauthorized", "userId is required")
		return
	}
	balance, err := a.Service.Balance(r.Context(), userID)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	a.json(w, http.StatusOK, map[string]any{
		"totalCredits":     balance.TotalCredits,
		"usedCredits":      balance.UsedCredits,
		"remainingCredits": balance.Remaining(),
	})
}

type assetResponse struct {
	ID        string           `json:"id"`
	ImageURL  string           `json:"imageUrl"`
	Type      domain.AssetType `json:"type"`
	Prompt    string           `json:"prompt"`
	CreatedAt string           `json:"createdAt"`
}

func (a *App) ListAssets(w http.ResponseWriter, r *http.Request) {
	userID := strings.TrimSpace(r.URL.Query().Get("userId"))
	if userID == "" {
		a.error(w, http.StatusUnauthorized, "unauthorized", "userId is required")
		return
	}
	assets, err := a.Service.ListAssets(r.Context(), userID, 50)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	out := make([]assetResponse, 0, len(assets))
	for _, asset := range assets {
		out = append(out, assetResponse{
			ID:        asset.ID,
			ImageURL:  asset.ImageURL,
			Type:      asset.Type,
			Prompt:    asset.Prompt,
			CreatedAt: asset.CreatedAt.UTC().Format("2006-01-02T15:04:05Z07:00"),
		})
	}
	a.json(w, http.StatusOK, map[string]any{"assets": out})
}
