package domain

import "time"

// AssetType enumerates the kinds of brand artifacts the service produces.
type AssetType string

const (
	AssetTypeLogo      AssetType = "logo"
	AssetTypeBanner    AssetType = "banner"
	AssetTypeTagline   AssetType = "tagline"
	AssetTypeBrandName AssetType = "brand_name"
)

// IsImage reports whether the asset type produces an image artifact.
func (t AssetType) IsImage() bool {
	return t == AssetTypeLogo || t == AssetTypeBanner
}

// Valid reports whether the asset type is one of the known kinds.
func (t AssetType) Valid() bool {
	switch t {
	case AssetTypeLogo, AssetTypeBanner, AssetTypeTagline, AssetTypeBrandName:
		return true
	}
	return false
}

// Platform enumerates the social platforms supported by brand-asset fan-out.
type Platform string

const (
	PlatformYouTube   Platform = "Youtube"
	PlatformTwitter   Platform = "Twitter"
	PlatformInstagram Platform = "Instagram"
)

// ParsePlatform sanitizes free-form user input into a supported platform.
func ParsePlatform(s string) (Platform, bool) {
	switch Platform(s) {
	case PlatformYouTube, PlatformTwitter, PlatformInstagram:
		return Platform(s), true
	}
	return "", false
}

// GeneratedAsset is a durable record of a generated logo or banner image.
// Records are append-only; the service never mutates or deletes them.
type GeneratedAsset struct {
	ID        string
	UserID    string
	ImageURL  string
	Type      AssetType
	Prompt    string
	CreatedAt time.Time
}

// GeneratedText is a durable record of a generated tagline or brand name.
type GeneratedText struct {
	ID        string
	UserID    string
	Text      string
	Type      AssetType
	Prompt    string
	CreatedAt time.Time
}

// BrandInfo carries the resolved inputs shared by every platform during
// brand-asset fan-out.
type BrandInfo struct {
	BrandName      string
	Description    string
	TargetAudience string
}

// PlatformAssets holds the artifacts produced for a single platform.
type PlatformAssets struct {
	Logo   string `json:"logo"`
	Banner string `json:"banner,omitempty"`
}
