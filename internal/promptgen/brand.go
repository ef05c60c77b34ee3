package promptgen

import (
	"fmt"
	"strings"

	"brandforge/internal/domain"
)

// brandPersonality keeps wording consistent across every artifact generated
// for the same brand.
const brandPersonality = "Professional, Modern, Trustworthy"

const baseStyleGuidelines = `Style Guidelines:
- Clean, modern, and professional design
- Consistent brand identity across assets
- Strong visual hierarchy
- Balanced composition
- Suitable for digital use at multiple sizes
- No watermarks, no stock-photo artifacts
- No text overlays other than the brand name where specified`

// PlatformConfig holds the prompt templates for one target platform. An
// empty banner template means the platform gets no banner artifact.
type PlatformConfig struct {
	logoTemplate   string
	bannerTemplate string
}

// RequiresBanner reports whether the platform fan-out produces a banner.
func (p PlatformConfig) RequiresBanner() bool { return p.bannerTemplate != "" }

func (p PlatformConfig) LogoPrompt(info domain.BrandInfo) string {
	return renderBrandTemplate(p.logoTemplate, info)
}

func (p PlatformConfig) BannerPrompt(info domain.BrandInfo) string {
	return renderBrandTemplate(p.bannerTemplate, info)
}

func renderBrandTemplate(tmpl string, info domain.BrandInfo) string {
	out := strings.ReplaceAll(tmpl, "{brandName}", strings.TrimSpace(info.BrandName))
	out = strings.ReplaceAll(out, "{description}", strings.TrimSpace(info.Description))
	audience := strings.TrimSpace(info.TargetAudience)
	if audience == "" {
		audience = "a broad general audience"
	}
	out = strings.ReplaceAll(out, "{targetAudience}", audience)
	return out
}

var platformConfigs = map[domain.Platform]PlatformConfig{
	domain.PlatformYouTube: {
		logoTemplate: fmt.Sprintf(`Create a professional YouTube channel logo for the brand "{brandName}".

Business Description: {description}
Target Audience: {targetAudience}
Brand Personality: %s

The logo must read clearly as a small circular channel avatar, stay recognizable at 98x98 pixels, and avoid fine detail that disappears at thumbnail size.

%s`, brandPersonality, baseStyleGuidelines),
		bannerTemplate: fmt.Sprintf(`Create a YouTube channel banner for the brand "{brandName}".

Business Description: {description}
Target Audience: {targetAudience}
Brand Personality: %s

The banner must work in YouTube's wide 16:9 safe area, keep the focal content centered so it survives cropping on TV and mobile, and leave breathing room for channel UI overlays.

%s`, brandPersonality, baseStyleGuidelines),
	},
	domain.PlatformTwitter: {
		logoTemplate: fmt.Sprintf(`Create a profile logo for the brand "{brandName}" for use on Twitter/X.

Business Description: {description}
Target Audience: {targetAudience}
Brand Personality: %s

The logo must hold up as a small circular profile picture in a fast-scrolling feed, with a bold simple mark and high contrast against both light and dark themes.

%s`, brandPersonality, baseStyleGuidelines),
		bannerTemplate: fmt.Sprintf(`Create a Twitter/X header banner for the brand "{brandName}".

Business Description: {description}
Target Audience: {targetAudience}
Brand Personality: %s

The banner uses a wide 3:1 header layout; keep key elements away from the lower-left corner where the profile picture overlaps.

%s`, brandPersonality, baseStyleGuidelines),
	},
	domain.PlatformInstagram: {
		logoTemplate: fmt.Sprintf(`Create an Instagram profile logo for the brand "{brandName}".

Business Description: {description}
Target Audience: {targetAudience}
Brand Personality: %s

The logo must look striking inside Instagram's circular profile frame, with vibrant but tasteful color and a centered composition that survives the circular crop.

%s`, brandPersonality, baseStyleGuidelines),
		// Instagram has no banner surface.
		bannerTemplate: "",
	},
}

// PlatformTemplates returns the prompt templates for a platform. The second
// return is false for unknown platforms.
func PlatformTemplates(p domain.Platform) (PlatformConfig, bool) {
	cfg, ok := platformConfigs[p]
	return cfg, ok
}
