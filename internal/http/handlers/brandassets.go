package handlers

import (
	"net/http"
	"strings"

	"brandforge/internal/domain"
	"brandforge/internal/orchestrator"
)

type brandAssetsRequest struct {
	UserID         string   `json:"userId"`
	Description    string   `json:"description"`
	TargetAudience string   `json:"targetAudience"`
	BrandName      string   `json:"brandName"`
	Platforms      []string `json:"platforms"`
}

func (a *App) BrandAssets(w http.ResponseWriter, r *http.Request) {
	var req brandAssetsRequest
	if err := decode(r, &req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	if strings.TrimSpace(req.UserID) == "" {
		a.error(w, http.StatusUnauthorized, "unauthorized", "userId is required")
		return
	}
	var platforms []domain.Platform
	for _, raw := range req.Platforms {
		p, ok := domain.ParsePlatform(raw)
		if !ok {
			a.error(w, http.StatusBadRequest, "bad_request", "unsupported platform "+raw)
			return
		}
		platforms = append(platforms, p)
	}

	res, err := a.Service.GenerateBrandAssets(r.Context(), orchestrator.BrandAssetsRequest{
		UserID:         req.UserID,
		Description:    req.Description,
		TargetAudience: req.TargetAudience,
		BrandName:      req.BrandName,
		Platforms:      platforms,
	})
	if err != nil {
		a.fail(w, r, err)
		return
	}

	assets := make(map[string]domain.PlatformAssets, len(res.Assets))
	for platform, pa := range res.Assets {
		assets[string(platform)] = pa
	}
	a.json(w, http.StatusOK, map[string]any{
		"brandName":        res.BrandName,
		"assets":           assets,
		"errors":           res.Errors,
		"remainingCredits": res.Balance.Remaining(),
	})
}
