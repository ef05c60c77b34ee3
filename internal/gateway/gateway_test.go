package gateway

import (
	"context"
	"errors"
	"strings"
	"testing"

	"brandforge/internal/domain"
	"brandforge/internal/promptgen"
	"brandforge/internal/providers/together"
)

type fakeImages struct {
	last together.ImageRequest
	url  string
	err  error
}

func (f *fakeImages) GenerateImage(_ context.Context, req together.ImageRequest) (string, error) {
	f.last = req
	return f.url, f.err
}

type fakeChat struct {
	last  together.ChatRequest
	reply string
	err   error
}

func (f *fakeChat) Complete(_ context.Context, req together.ChatRequest) (string, error) {
	f.last = req
	return f.reply, f.err
}

type fakeNames struct {
	reply string
	err   error
	creds bool
	calls int
}

func (f *fakeNames) GenerateContent(_ context.Context, _ string) (string, error) {
	f.calls++
	return f.reply, f.err
}

func (f *fakeNames) HasCredentials() bool { return f.creds }

func TestGenerateImageAppliesDefaults(t *testing.T) {
	images := &fakeImages{url: "https://cdn.example.com/logo.png"}
	g := New(Options{Images: images, Chat: &fakeChat{}, Sampler: promptgen.NewSampler(1)})

	url, err := g.GenerateImage(context.Background(), ImageRequest{
		AssetType: domain.AssetTypeLogo,
		Prompt:    "a fox logo",
	})
	if err != nil {
		t.Fatalf("generate image: %v", err)
	}
	if url != "https://cdn.example.com/logo.png" {
		t.Fatalf("url = %q", url)
	}
	if images.last.Width != 512 || images.last.Height != 512 {
		t.Fatalf("logo dimensions = %dx%d", images.last.Width, images.last.Height)
	}
	if images.last.Steps != 4 {
		t.Fatalf("steps = %d", images.last.Steps)
	}
	if images.last.Seed <= 0 || images.last.Seed >= 1_000_000 {
		t.Fatalf("seed = %d, want random in [1, 1000000)", images.last.Seed)
	}
	if images.last.NegativePrompt == "" {
		t.Fatal("negative prompt default not applied")
	}
}

func TestGenerateImageBannerDefaults(t *testing.T) {
	images := &fakeImages{url: "https://cdn.example.com/banner.png"}
	g := New(Options{Images: images, Chat: &fakeChat{}, Sampler: promptgen.NewSampler(1)})

	if _, err := g.GenerateImage(context.Background(), ImageRequest{
		AssetType: domain.AssetTypeBanner,
		Prompt:    "a wide banner",
	}); err != nil {
		t.Fatalf("generate image: %v", err)
	}
	if images.last.Width != 1280 || images.last.Height != 720 {
		t.Fatalf("banner dimensions = %dx%d", images.last.Width, images.last.Height)
	}
	if images.last.NegativePrompt != promptgen.BannerNegativePrompt {
		t.Fatal("banner negative prompt not applied")
	}
}

func TestGenerateImageHonorsExplicitValues(t *testing.T) {
	images := &fakeImages{url: "u"}
	g := New(Options{Images: images, Chat: &fakeChat{}, Sampler: promptgen.NewSampler(1)})

	if _, err := g.GenerateImage(context.Background(), ImageRequest{
		AssetType: domain.AssetTypeLogo,
		Prompt:    "a fox logo",
		Width:     1024,
		Height:    1024,
		Seed:      42,
		CFGScale:  12,
	}); err != nil {
		t.Fatalf("generate image: %v", err)
	}
	if images.last.Width != 1024 || images.last.Height != 1024 {
		t.Fatalf("dimensions = %dx%d", images.last.Width, images.last.Height)
	}
	if images.last.Seed != 42 {
		t.Fatalf("seed = %d", images.last.Seed)
	}
	if images.last.CFGScale != 12 {
		t.Fatalf("cfg scale = %v", images.last.CFGScale)
	}
}

func TestGenerateImageRejectsTextAssets(t *testing.T) {
	g := New(Options{Images: &fakeImages{}, Chat: &fakeChat{}})
	_, err := g.GenerateImage(context.Background(), ImageRequest{
		AssetType: domain.AssetTypeTagline,
		Prompt:    "x",
	})
	var cfgErr *domain.ConfigurationError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("expected configuration error, got %v", err)
	}
}

func TestGenerateTaglines(t *testing.T) {
	chat := &fakeChat{reply: "1. Fast and fresh\n2. Made to last\n\n3. Simply better\nFourth line\nFifth line\nSixth line"}
	g := New(Options{Images: &fakeImages{}, Chat: chat})

	taglines, err := g.GenerateTaglines(context.Background(), "taglines please")
	if err != nil {
		t.Fatalf("generate taglines: %v", err)
	}
	if len(taglines) != 5 {
		t.Fatalf("len = %d, want 5", len(taglines))
	}
	if taglines[0] != "Fast and fresh" {
		t.Fatalf("first tagline = %q", taglines[0])
	}
	if chat.last.Temperature != 0.7 {
		t.Fatalf("temperature = %v", chat.last.Temperature)
	}
}

func TestGenerateBrandNamesPrefersGemini(t *testing.T) {
	names := &fakeNames{reply: "Emberly\nKilnwork\nFornia\nVessel\nGlaze", creds: true}
	chat := &fakeChat{reply: "should not be used"}
	g := New(Options{Images: &fakeImages{}, Chat: chat, Names: names})

	got, err := g.GenerateBrandNames(context.Background(), "ceramics studio", "crafts")
	if err != nil {
		t.Fatalf("generate brand names: %v", err)
	}
	if len(got) != 5 || got[0] != "Emberly" {
		t.Fatalf("names = %v", got)
	}
	if names.calls != 1 {
		t.Fatalf("gemini calls = %d", names.calls)
	}
	if chat.last.Prompt != "" {
		t.Fatal("chat backend should not be used when gemini has credentials")
	}
}

func TestGenerateBrandNameFallsBackToChat(t *testing.T) {
	names := &fakeNames{creds: false}
	chat := &fakeChat{reply: `"Kilnwork"`}
	g := New(Options{Images: &fakeImages{}, Chat: chat, Names: names})

	got, err := g.GenerateBrandName(context.Background(), "ceramics studio", "design lovers")
	if err != nil {
		t.Fatalf("generate brand name: %v", err)
	}
	if got != "Kilnwork" {
		t.Fatalf("name = %q", got)
	}
	if names.calls != 0 {
		t.Fatal("gemini should be skipped without credentials")
	}
	if !strings.Contains(chat.last.Prompt, "ceramics studio") {
		t.Fatalf("prompt missing description: %q", chat.last.Prompt)
	}
}

func TestGenerateBrandNameTitleCasesLowercase(t *testing.T) {
	chat := &fakeChat{reply: "kilnwork studio"}
	g := New(Options{Images: &fakeImages{}, Chat: chat})

	got, err := g.GenerateBrandName(context.Background(), "ceramics studio", "")
	if err != nil {
		t.Fatalf("generate brand name: %v", err)
	}
	if got != "Kilnwork Studio" {
		t.Fatalf("name = %q", got)
	}
}

func TestUpgradeBriefFallsBackOnError(t *testing.T) {
	chat := &fakeChat{err: errors.New("boom")}
	g := New(Options{Images: &fakeImages{}, Chat: chat})

	brief := "original brief"
	if got := g.UpgradeBrief(context.Background(), brief); got != brief {
		t.Fatalf("expected fallback to original brief, got %q", got)
	}

	chat.err = nil
	chat.reply = "upgraded brief"
	if got := g.UpgradeBrief(context.Background(), brief); got != "upgraded brief" {
		t.Fatalf("got %q", got)
	}
}
