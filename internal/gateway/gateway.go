package gateway

import (
	"context"
	"io"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"brandforge/internal/domain"
	"brandforge/internal/infra"
	"brandforge/internal/promptgen"
	"brandforge/internal/providers/together"
)

// ImageBackend is the slice of the Together client used for rendering.
type ImageBackend interface {
	GenerateImage(ctx context.Context, req together.ImageRequest) (string, error)
}

// ChatBackend is the slice of the Together client used for text generation.
type ChatBackend interface {
	Complete(ctx context.Context, req together.ChatRequest) (string, error)
}

// NameBackend generates brand name candidates. The Gemini client satisfies it.
type NameBackend interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
	HasCredentials() bool
}

// ImageRequest describes one image to render. Zero dimensions, steps, and
// seed are filled from the per-asset defaults table.
type ImageRequest struct {
	AssetType      domain.AssetType
	Prompt         string
	NegativePrompt string
	Width          int
	Height         int
	Steps          int
	Seed           int
	CFGScale       float64
}

type imageDefaults struct {
	width          int
	height         int
	steps          int
	negativePrompt string
}

var defaultsByAsset = map[domain.AssetType]imageDefaults{
	domain.AssetTypeLogo:   {width: 512, height: 512, steps: 4, negativePrompt: promptgen.NegativePrompt},
	domain.AssetTypeBanner: {width: 1280, height: 720, steps: 4, negativePrompt: promptgen.BannerNegativePrompt},
}

// Gateway routes generation requests to the configured provider clients and
// applies the per-asset defaults. It performs no retries of its own.
type Gateway struct {
	images  ImageBackend
	chat    ChatBackend
	names   NameBackend
	sampler *promptgen.Sampler
	logger  *infra.Logger
}

// Options wires a gateway. Images and Chat are required; Names may be nil,
// in which case brand names fall back to the chat backend.
type Options struct {
	Images  ImageBackend
	Chat    ChatBackend
	Names   NameBackend
	Sampler *promptgen.Sampler
	Logger  *infra.Logger
}

func New(opts Options) *Gateway {
	sampler := opts.Sampler
	if sampler == nil {
		sampler = promptgen.NewRandomSampler()
	}
	logger := opts.Logger
	if logger == nil {
		discard := infra.Logger(zerolog.New(io.Discard))
		logger = &discard
	}
	return &Gateway{
		images:  opts.Images,
		chat:    opts.Chat,
		names:   opts.Names,
		sampler: sampler,
		logger:  logger,
	}
}

// GenerateImage renders one image and returns the provider-hosted URL.
func (g *Gateway) GenerateImage(ctx context.Context, req ImageRequest) (string, error) {
	if !req.AssetType.IsImage() {
		return "", &domain.ConfigurationError{Reason: "asset type " + string(req.AssetType) + " is not an image"}
	}
	def := defaultsByAsset[req.AssetType]
	if req.Width <= 0 {
		req.Width = def.width
	}
	if req.Height <= 0 {
		req.Height = def.height
	}
	if req.Steps <= 0 {
		req.Steps = def.steps
	}
	if req.NegativePrompt == "" {
		req.NegativePrompt = def.negativePrompt
	}
	if req.Seed <= 0 {
		req.Seed = g.sampler.Seed()
	}
	return g.images.GenerateImage(ctx, together.ImageRequest{
		Prompt:         req.Prompt,
		NegativePrompt: req.NegativePrompt,
		Width:          req.Width,
		Height:         req.Height,
		Steps:          req.Steps,
		Seed:           req.Seed,
		CFGScale:       req.CFGScale,
	})
}

// GenerateTaglines asks the chat model for taglines and returns the cleaned
// list, at most five entries.
func (g *Gateway) GenerateTaglines(ctx context.Context, prompt string) ([]string, error) {
	raw, err := g.chat.Complete(ctx, together.ChatRequest{
		Prompt:            prompt,
		MaxTokens:         250,
		Temperature:       0.7,
		TopP:              0.7,
		TopK:              50,
		RepetitionPenalty: 1,
	})
	if err != nil {
		return nil, err
	}
	lines := splitLines(raw, 5)
	if len(lines) == 0 {
		return nil, &domain.ProviderError{Provider: "together", Kind: domain.ProviderErrEmptyResponse}
	}
	return lines, nil
}

// GenerateBrandNames returns up to five brand name candidates, preferring
// the Gemini naming model when it has credentials.
func (g *Gateway) GenerateBrandNames(ctx context.Context, description, category string) ([]string, error) {
	prompt := promptgen.NameListPrompt(description, category)
	raw, err := g.generateNameText(ctx, prompt)
	if err != nil {
		return nil, err
	}
	names := splitLines(raw, 5)
	if len(names) == 0 {
		return nil, &domain.ProviderError{Provider: "gemini", Kind: domain.ProviderErrEmptyResponse}
	}
	return names, nil
}

// GenerateBrandName returns a single brand name for the asset fan-out.
func (g *Gateway) GenerateBrandName(ctx context.Context, description, targetAudience string) (string, error) {
	prompt := promptgen.SingleNamePrompt(description, targetAudience)
	raw, err := g.generateNameText(ctx, prompt)
	if err != nil {
		return "", err
	}
	names := splitLines(raw, 1)
	if len(names) == 0 {
		return "", &domain.ProviderError{Provider: "together", Kind: domain.ProviderErrEmptyResponse}
	}
	name := names[0]
	// Models occasionally return all-lowercase names; brand names render
	// title-cased unless the model styled its own casing.
	if name == strings.ToLower(name) {
		name = cases.Title(language.English).String(name)
	}
	return name, nil
}

// UpgradeBrief runs the premium design brief through the chat model. The
// original brief is returned when the model is unavailable or fails, so the
// premium pipeline degrades instead of breaking.
func (g *Gateway) UpgradeBrief(ctx context.Context, brief string) string {
	out, err := g.chat.Complete(ctx, together.ChatRequest{
		System:      promptgen.EngineerSystemPrompt,
		Prompt:      brief,
		MaxTokens:   1000,
		Temperature: 0.7,
	})
	if err != nil {
		g.logger.Warn().Err(err).Msg("brief upgrade failed, using constructed brief")
		return brief
	}
	return out
}

func (g *Gateway) generateNameText(ctx context.Context, prompt string) (string, error) {
	if g.names != nil && g.names.HasCredentials() {
		return g.names.GenerateContent(ctx, prompt)
	}
	return g.chat.Complete(ctx, together.ChatRequest{
		Prompt:      prompt,
		MaxTokens:   200,
		Temperature: 0.9,
	})
}

// splitLines trims, strips list numbering, and drops empty lines.
func splitLines(raw string, limit int) []string {
	var out []string
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		line = strings.TrimLeft(line, "0123456789.-)* ")
		line = strings.Trim(line, `"`)
		if line == "" {
			continue
		}
		out = append(out, line)
		if len(out) == limit {
			break
		}
	}
	return out
}
