package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"brandforge/internal/domain"
	"brandforge/internal/infra"
	"brandforge/internal/notify"
	"brandforge/internal/orchestrator"
)

type fakeService struct {
	logoReq     orchestrator.LogoRequest
	logoRes     *orchestrator.AssetResult
	bannerRes   *orchestrator.AssetResult
	textRes     *orchestrator.TextResult
	brandRes    *orchestrator.BrandAssetsResult
	brandReq    orchestrator.BrandAssetsRequest
	balance     *domain.CreditBalance
	assets      []domain.GeneratedAsset
	err         error
}

func (f *fakeService) GenerateLogo(_ context.Context, req orchestrator.LogoRequest) (*orchestrator.AssetResult, error) {
	f.logoReq = req
	return f.logoRes, f.err
}

func (f *fakeService) GenerateBanner(context.Context, orchestrator.BannerRequest) (*orchestrator.AssetResult, error) {
	return f.bannerRes, f.err
}

func (f *fakeService) GenerateTagline(context.Context, string, string) (*orchestrator.TextResult, error) {
	return f.textRes, f.err
}

func (f *fakeService) GenerateBrandNames(context.Context, string, string, string) (*orchestrator.TextResult, error) {
	return f.textRes, f.err
}

func (f *fakeService) GenerateBrandAssets(_ context.Context, req orchestrator.BrandAssetsRequest) (*orchestrator.BrandAssetsResult, error) {
	f.brandReq = req
	return f.brandRes, f.err
}

func (f *fakeService) ListAssets(context.Context, string, int) ([]domain.GeneratedAsset, error) {
	return f.assets, f.err
}

func (f *fakeService) Balance(context.Context, string) (*domain.CreditBalance, error) {
	return f.balance, f.err
}

type fakeBlobs struct {
	keys []string
}

func (f *fakeBlobs) Write(_ context.Context, key string, _ []byte) (string, error) {
	f.keys = append(f.keys, key)
	return key, nil
}

func (f *fakeBlobs) PublicURL(key string) string {
	return "http://localhost:8080/static/" + key
}

func newTestApp(svc *fakeService) *App {
	logger := infra.Logger(zerolog.New(io.Discard))
	return &App{Service: svc, Blobs: &fakeBlobs{}, Logger: &logger}
}

func postJSON(t *testing.T, handler http.HandlerFunc, body any) *httptest.ResponseRecorder {
	t.Helper()
	raw, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal body: %v", err)
	}
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/", bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	handler(rec, req)
	return rec
}

func TestGenerateLogoHandler(t *testing.T) {
	svc := &fakeService{
		logoRes: &orchestrator.AssetResult{
			Asset: domain.GeneratedAsset{
				ImageURL: "http://localhost:8080/static/logos/u1_1_2.png",
				Prompt:   "enriched",
				Type:     domain.AssetTypeLogo,
			},
			Balance:  &domain.CreditBalance{TotalCredits: 500, UsedCredits: 20},
			Attempts: 1,
		},
	}
	app := newTestApp(svc)

	rec := postJSON(t, app.GenerateLogo, map[string]any{
		"userId": "u1", "prompt": "a fox", "style": "minimalist", "premium": true,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d body = %s", rec.Code, rec.Body)
	}
	var resp imageResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.RemainingCredits != 480 {
		t.Fatalf("remaining = %d", resp.RemainingCredits)
	}
	if !svc.logoReq.Premium || svc.logoReq.Style != "minimalist" {
		t.Fatalf("service request = %+v", svc.logoReq)
	}
}

func TestGenerateLogoHandlerRequiresUser(t *testing.T) {
	app := newTestApp(&fakeService{})
	rec := postJSON(t, app.GenerateLogo, map[string]any{"prompt": "a fox"})
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestGenerateLogoHandlerInsufficientCredits(t *testing.T) {
	app := newTestApp(&fakeService{err: domain.ErrInsufficientCredits})
	rec := postJSON(t, app.GenerateLogo, map[string]any{"userId": "u1", "prompt": "a fox"})
	if rec.Code != http.StatusPaymentRequired {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "insufficient_credits") {
		t.Fatalf("body = %s", rec.Body)
	}
}

func TestGenerateLogoHandlerGenerationFailure(t *testing.T) {
	app := newTestApp(&fakeService{err: &domain.GenerationError{AssetType: domain.AssetTypeLogo, Attempts: 3}})
	rec := postJSON(t, app.GenerateLogo, map[string]any{"userId": "u1", "prompt": "a fox"})
	if rec.Code != http.StatusBadGateway {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestBrandAssetsHandler(t *testing.T) {
	svc := &fakeService{
		brandRes: &orchestrator.BrandAssetsResult{
			BrandName: "Kilnwork",
			Assets: map[domain.Platform]domain.PlatformAssets{
				domain.PlatformInstagram: {Logo: "http://localhost:8080/static/logos/x.png"},
			},
			Balance: &domain.CreditBalance{TotalCredits: 500, UsedCredits: 35},
		},
	}
	app := newTestApp(svc)

	rec := postJSON(t, app.BrandAssets, map[string]any{
		"userId":      "u1",
		"description": "ceramics studio",
		"platforms":   []string{"Instagram"},
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d body = %s", rec.Code, rec.Body)
	}
	if len(svc.brandReq.Platforms) != 1 || svc.brandReq.Platforms[0] != domain.PlatformInstagram {
		t.Fatalf("platforms = %v", svc.brandReq.Platforms)
	}
	if !strings.Contains(rec.Body.String(), "Kilnwork") {
		t.Fatalf("body = %s", rec.Body)
	}
}

func TestBrandAssetsHandlerRejectsUnknownPlatform(t *testing.T) {
	app := newTestApp(&fakeService{})
	rec := postJSON(t, app.BrandAssets, map[string]any{
		"userId":      "u1",
		"description": "ceramics studio",
		"platforms":   []string{"myspace"},
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestCreditsHandler(t *testing.T) {
	app := newTestApp(&fakeService{balance: &domain.CreditBalance{TotalCredits: 500, UsedCredits: 120}})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/credits?userId=u1", nil)
	app.Credits(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var resp map[string]int
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp["remainingCredits"] != 380 {
		t.Fatalf("remaining = %d", resp["remainingCredits"])
	}

	rec = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/credits", nil)
	app.Credits(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("missing userId status = %d", rec.Code)
	}
}

func TestVerifyImageHandlerUnconfigured(t *testing.T) {
	app := newTestApp(&fakeService{})
	rec := postJSON(t, app.VerifyImage, map[string]any{
		"imageUrl": "http://x/y.png", "expectedText": "Acme",
	})
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestUploadImageHandler(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "image/png")
		w.Write([]byte{0x89, 'P', 'N', 'G'})
	}))
	defer upstream.Close()

	app := newTestApp(&fakeService{})
	blobs := app.Blobs.(*fakeBlobs)

	rec := postJSON(t, app.UploadImage, map[string]any{
		"imageUrl": upstream.URL + "/img.png",
		"userId":   "u1",
		"type":     "logo",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d body = %s", rec.Code, rec.Body)
	}
	if len(blobs.keys) != 1 || !strings.HasPrefix(blobs.keys[0], "logos/u1_") {
		t.Fatalf("blob keys = %v", blobs.keys)
	}
	if !strings.HasSuffix(blobs.keys[0], ".png") {
		t.Fatalf("key extension: %q", blobs.keys[0])
	}
	var resp map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !strings.HasPrefix(resp["url"], "http://localhost:8080/static/logos/u1_") {
		t.Fatalf("url = %q", resp["url"])
	}
}

func TestUploadImageHandlerRejectsNonImageType(t *testing.T) {
	app := newTestApp(&fakeService{})
	rec := postJSON(t, app.UploadImage, map[string]any{
		"imageUrl": "http://example.com/img.png", "userId": "u1", "type": "tagline",
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestUploadImageHandlerUpstreamFailure(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer upstream.Close()

	app := newTestApp(&fakeService{})
	rec := postJSON(t, app.UploadImage, map[string]any{
		"imageUrl": upstream.URL + "/gone.png", "userId": "u1", "type": "banner",
	})
	if rec.Code != http.StatusBadGateway {
		t.Fatalf("status = %d body = %s", rec.Code, rec.Body)
	}
}

func TestUploadImageHandlerMultipart(t *testing.T) {
	app := newTestApp(&fakeService{})
	blobs := app.Blobs.(*fakeBlobs)

	var body bytes.Buffer
	form := multipart.NewWriter(&body)
	form.WriteField("userId", "u1")
	part, err := form.CreateFormFile("image", "logo.png")
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	part.Write([]byte{0x89, 'P', 'N', 'G'})
	form.Close()

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/upload-image", &body)
	req.Header.Set("Content-Type", form.FormDataContentType())
	app.UploadImage(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d body = %s", rec.Code, rec.Body)
	}
	if len(blobs.keys) != 1 || !strings.HasPrefix(blobs.keys[0], "uploads/u1_") {
		t.Fatalf("blob keys = %v", blobs.keys)
	}
	if !strings.HasSuffix(blobs.keys[0], ".png") {
		t.Fatalf("key extension: %q", blobs.keys[0])
	}
}

type fakeFeed struct {
	events []notify.Event
}

func (f *fakeFeed) Subscribe(_ context.Context, handler func(notify.Event)) error {
	for _, event := range f.events {
		handler(event)
	}
	return nil
}

func TestActivityHandlerStreamsEvents(t *testing.T) {
	app := newTestApp(&fakeService{})
	app.Feed = &fakeFeed{events: []notify.Event{
		{UserID: "u1", AssetType: domain.AssetTypeLogo, AssetID: "asset-1"},
		{UserID: "u2", AssetType: domain.AssetTypeBanner, AssetID: "asset-2"},
	}}

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/activity?userId=u1", nil)
	app.Activity(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d body = %s", rec.Code, rec.Body)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "text/event-stream" {
		t.Fatalf("content type = %q", ct)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "data: ") || !strings.Contains(body, "asset-1") {
		t.Fatalf("body = %q", body)
	}
	if strings.Contains(body, "asset-2") {
		t.Fatalf("other user's event leaked: %q", body)
	}
}

func TestActivityHandlerUnconfigured(t *testing.T) {
	app := newTestApp(&fakeService{})
	rec := httptest.NewRecorder()
	app.Activity(rec, httptest.NewRequest(http.MethodGet, "/activity", nil))
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestProxyImageHandler(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "image/png")
		w.Write([]byte{0x89, 'P', 'N', 'G'})
	}))
	defer upstream.Close()

	app := newTestApp(&fakeService{})
	router := chi.NewRouter()
	router.Get("/proxy-image/*", app.ProxyImage)

	// Path routing collapses "https://" to "https:/".
	target := strings.Replace(upstream.URL, "://", ":/", 1)
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/proxy-image/"+target+"/img.png", nil)
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d body = %s", rec.Code, rec.Body)
	}
	if cc := rec.Header().Get("Cache-Control"); !strings.Contains(cc, "max-age=31536000") {
		t.Fatalf("cache control = %q", cc)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "image/png" {
		t.Fatalf("content type = %q", ct)
	}
}

func TestProxyImageHandlerRejectsBadURL(t *testing.T) {
	app := newTestApp(&fakeService{})
	router := chi.NewRouter()
	router.Get("/proxy-image/*", app.ProxyImage)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/proxy-image/not-a-url", nil)
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", rec.Code)
	}
}
