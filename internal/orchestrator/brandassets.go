package orchestrator

import (
	"context"
	"strings"

	"brandforge/internal/domain"
	"brandforge/internal/gateway"
	"brandforge/internal/promptgen"
)

// BrandAssetsRequest describes a full brand kit fan-out. When BrandName is
// empty a name is generated and billed before the per-platform artifacts.
type BrandAssetsRequest struct {
	UserID         string
	Description    string
	TargetAudience string
	BrandName      string
	Platforms      []domain.Platform
}

// ArtifactError records one failed artifact inside an otherwise successful
// fan-out.
type ArtifactError struct {
	Platform  domain.Platform  `json:"platform"`
	AssetType domain.AssetType `json:"asset_type"`
	Message   string           `json:"message"`
}

// BrandAssetsResult carries every artifact that succeeded plus the errors
// for those that did not. Charges apply per successful artifact only.
type BrandAssetsResult struct {
	BrandName string
	Assets    map[domain.Platform]domain.PlatformAssets
	Errors    []ArtifactError
	Balance   *domain.CreditBalance
}

// defaultPlatforms is the fan-out set when the caller does not narrow it.
var defaultPlatforms = []domain.Platform{
	domain.PlatformYouTube,
	domain.PlatformTwitter,
	domain.PlatformInstagram,
}

// GenerateBrandAssets resolves the brand name once, then generates the
// platform artifact set. Artifacts are independent: a failure is recorded
// and the fan-out continues, and only successful artifacts are billed.
func (o *Orchestrator) GenerateBrandAssets(ctx context.Context, req BrandAssetsRequest) (*BrandAssetsResult, error) {
	description := strings.TrimSpace(req.Description)
	if description == "" {
		return nil, domain.ErrEmptyPrompt
	}
	platforms := req.Platforms
	if len(platforms) == 0 {
		platforms = defaultPlatforms
	}

	configs := make([]promptgen.PlatformConfig, len(platforms))
	totalCost := 0
	for i, p := range platforms {
		cfg, ok := promptgen.PlatformTemplates(p)
		if !ok {
			return nil, &domain.ConfigurationError{Reason: "unsupported platform " + string(p)}
		}
		configs[i] = cfg
		totalCost += domain.Cost(domain.AssetTypeLogo)
		if cfg.RequiresBanner() {
			totalCost += domain.Cost(domain.AssetTypeBanner)
		}
	}
	brandName := strings.TrimSpace(req.BrandName)
	if brandName == "" {
		totalCost += domain.Cost(domain.AssetTypeBrandName)
	}
	if _, err := o.checkBalance(ctx, req.UserID, totalCost); err != nil {
		return nil, err
	}

	result := &BrandAssetsResult{Assets: make(map[domain.Platform]domain.PlatformAssets)}

	// The name is resolved exactly once; every platform prompt reuses it.
	if brandName == "" {
		var name string
		_, err := o.withRetry(ctx, domain.AssetTypeBrandName, func() error {
			var genErr error
			name, genErr = o.gen.GenerateBrandName(ctx, description, req.TargetAudience)
			return genErr
		})
		if err != nil {
			return nil, err
		}
		text, err := o.persistText(ctx, req.UserID, domain.AssetTypeBrandName, description, []string{name}, 1, domain.Cost(domain.AssetTypeBrandName))
		if err != nil {
			return nil, err
		}
		brandName = name
		result.Balance = text.Balance
	}
	result.BrandName = brandName

	info := domain.BrandInfo{
		BrandName:      brandName,
		Description:    description,
		TargetAudience: strings.TrimSpace(req.TargetAudience),
	}

	for i, platform := range platforms {
		cfg := configs[i]
		assets := domain.PlatformAssets{}

		logo, err := o.generateImage(ctx, req.UserID, domain.AssetTypeLogo, gateway.ImageRequest{
			AssetType: domain.AssetTypeLogo,
			Prompt:    cfg.LogoPrompt(info),
		})
		if err != nil {
			result.Errors = append(result.Errors, ArtifactError{
				Platform:  platform,
				AssetType: domain.AssetTypeLogo,
				Message:   err.Error(),
			})
			o.logger.Error().Err(err).
				Str("platform", string(platform)).
				Str("user_id", req.UserID).
				Msg("brand asset logo failed")
		} else {
			assets.Logo = logo.Asset.ImageURL
			result.Balance = logo.Balance
		}

		if cfg.RequiresBanner() {
			banner, err := o.generateImage(ctx, req.UserID, domain.AssetTypeBanner, gateway.ImageRequest{
				AssetType: domain.AssetTypeBanner,
				Prompt:    cfg.BannerPrompt(info),
			})
			if err != nil {
				result.Errors = append(result.Errors, ArtifactError{
					Platform:  platform,
					AssetType: domain.AssetTypeBanner,
					Message:   err.Error(),
				})
				o.logger.Error().Err(err).
					Str("platform", string(platform)).
					Str("user_id", req.UserID).
					Msg("brand asset banner failed")
			} else {
				assets.Banner = banner.Asset.ImageURL
				result.Balance = banner.Balance
			}
		}

		result.Assets[platform] = assets
	}

	if result.Balance == nil {
		balance, err := o.ledger.Balance(ctx, req.UserID)
		if err != nil {
			return nil, err
		}
		result.Balance = balance
	}
	return result, nil
}
