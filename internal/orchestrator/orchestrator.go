package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"brandforge/internal/domain"
	"brandforge/internal/gateway"
	"brandforge/internal/infra"
	"brandforge/internal/metrics"
	"brandforge/internal/notify"
	"brandforge/internal/promptgen"
	"brandforge/internal/storage"
)

// Generator is the slice of the provider gateway the orchestrator drives.
type Generator interface {
	GenerateImage(ctx context.Context, req gateway.ImageRequest) (string, error)
	GenerateTaglines(ctx context.Context, prompt string) ([]string, error)
	GenerateBrandNames(ctx context.Context, description, category string) ([]string, error)
	GenerateBrandName(ctx context.Context, description, targetAudience string) (string, error)
	UpgradeBrief(ctx context.Context, brief string) string
}

// Orchestrator runs each generation request through balance check, prompt
// enrichment, provider calls with retry, blob persistence, and the atomic
// record-plus-debit transaction.
type Orchestrator struct {
	gen      Generator
	enricher *promptgen.Enricher
	ledger   domain.CreditLedger
	repo     domain.GenerationRepository
	blobs    domain.BlobStore
	notifier notify.Publisher
	logger   *infra.Logger

	httpClient  *http.Client
	maxAttempts int
	backoffBase time.Duration

	mu  sync.Mutex
	rng *rand.Rand

	now   func() time.Time
	sleep func(ctx context.Context, d time.Duration) error
}

// Options wires an orchestrator. Gen, Ledger, Repo, and Blobs are required.
type Options struct {
	Gen         Generator
	Enricher    *promptgen.Enricher
	Ledger      domain.CreditLedger
	Repo        domain.GenerationRepository
	Blobs       domain.BlobStore
	Notifier    notify.Publisher
	Logger      *infra.Logger
	HTTPClient  *http.Client
	MaxAttempts int
	BackoffBase time.Duration
	Seed        int64
}

func New(opts Options) *Orchestrator {
	enricher := opts.Enricher
	if enricher == nil {
		enricher = promptgen.NewEnricher(nil)
	}
	notifier := opts.Notifier
	if notifier == nil {
		notifier = notify.NopPublisher{}
	}
	logger := opts.Logger
	if logger == nil {
		discard := infra.Logger(zerolog.New(io.Discard))
		logger = &discard
	}
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 45 * time.Second}
	}
	maxAttempts := opts.MaxAttempts
	if maxAttempts <= 0 {
		maxAttempts = 3
	}
	backoffBase := opts.BackoffBase
	if backoffBase <= 0 {
		backoffBase = 400 * time.Millisecond
	}
	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Orchestrator{
		gen:         opts.Gen,
		enricher:    enricher,
		ledger:      opts.Ledger,
		repo:        opts.Repo,
		blobs:       opts.Blobs,
		notifier:    notifier,
		logger:      logger,
		httpClient:  httpClient,
		maxAttempts: maxAttempts,
		backoffBase: backoffBase,
		rng:         rand.New(rand.NewSource(seed)),
		now:         time.Now,
		sleep:       sleepCtx,
	}
}

// AssetResult is the outcome of a single image generation.
type AssetResult struct {
	Asset    domain.GeneratedAsset
	Balance  *domain.CreditBalance
	Attempts int
}

// TextResult is the outcome of a single text generation.
type TextResult struct {
	Record   domain.GeneratedText
	Lines    []string
	Balance  *domain.CreditBalance
	Attempts int
}

// LogoRequest describes a standalone logo generation.
type LogoRequest struct {
	UserID      string
	Prompt      string
	Style       string
	ColorScheme string
	Premium     bool
}

// GenerateLogo runs the standalone logo pipeline. The premium path builds a
// design brief, optionally upgrades it through the chat model, and renders
// at a higher resolution.
func (o *Orchestrator) GenerateLogo(ctx context.Context, req LogoRequest) (*AssetResult, error) {
	prompt := strings.TrimSpace(req.Prompt)
	if prompt == "" {
		return nil, domain.ErrEmptyPrompt
	}
	if _, err := o.checkBalance(ctx, req.UserID, domain.Cost(domain.AssetTypeLogo)); err != nil {
		return nil, err
	}

	imgReq := gateway.ImageRequest{AssetType: domain.AssetTypeLogo}
	if req.Premium {
		brief := o.enricher.EngineerBrief(prompt)
		imgReq.Prompt = o.gen.UpgradeBrief(ctx, brief) + "\n\n" + promptgen.TechnicalRequirements
		imgReq.Width, imgReq.Height = 1024, 1024
		imgReq.CFGScale = 12
	} else {
		imgReq.Prompt = o.enricher.Logo(prompt, req.Style, req.ColorScheme)
	}
	return o.generateImage(ctx, req.UserID, domain.AssetTypeLogo, imgReq)
}

// BannerRequest describes a standalone banner generation.
type BannerRequest struct {
	UserID string
	Prompt string
}

// GenerateBanner runs the standalone banner pipeline at the wide header
// resolution.
func (o *Orchestrator) GenerateBanner(ctx context.Context, req BannerRequest) (*AssetResult, error) {
	prompt := strings.TrimSpace(req.Prompt)
	if prompt == "" {
		return nil, domain.ErrEmptyPrompt
	}
	if _, err := o.checkBalance(ctx, req.UserID, domain.Cost(domain.AssetTypeBanner)); err != nil {
		return nil, err
	}
	return o.generateImage(ctx, req.UserID, domain.AssetTypeBanner, gateway.ImageRequest{
		AssetType: domain.AssetTypeBanner,
		Prompt:    o.enricher.Banner(prompt),
		Width:     1440,
		Height:    576,
	})
}

// GenerateTagline produces five tagline candidates and records them as one
// text artifact.
func (o *Orchestrator) GenerateTagline(ctx context.Context, userID, prompt string) (*TextResult, error) {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return nil, domain.ErrEmptyPrompt
	}
	cost := domain.Cost(domain.AssetTypeTagline)
	if _, err := o.checkBalance(ctx, userID, cost); err != nil {
		return nil, err
	}
	enriched := o.enricher.Tagline(prompt)

	var lines []string
	attempts, err := o.withRetry(ctx, domain.AssetTypeTagline, func() error {
		var genErr error
		lines, genErr = o.gen.GenerateTaglines(ctx, enriched)
		return genErr
	})
	if err != nil {
		return nil, err
	}
	return o.persistText(ctx, userID, domain.AssetTypeTagline, enriched, lines, attempts, cost)
}

// GenerateBrandNames produces five brand name candidates and records them as
// one text artifact.
func (o *Orchestrator) GenerateBrandNames(ctx context.Context, userID, description, category string) (*TextResult, error) {
	description = strings.TrimSpace(description)
	if description == "" {
		return nil, domain.ErrEmptyPrompt
	}
	cost := domain.Cost(domain.AssetTypeBrandName)
	if _, err := o.checkBalance(ctx, userID, cost); err != nil {
		return nil, err
	}

	var names []string
	attempts, err := o.withRetry(ctx, domain.AssetTypeBrandName, func() error {
		var genErr error
		names, genErr = o.gen.GenerateBrandNames(ctx, description, category)
		return genErr
	})
	if err != nil {
		return nil, err
	}
	return o.persistText(ctx, userID, domain.AssetTypeBrandName, description, names, attempts, cost)
}

// ListAssets returns the user's stored image artifacts, newest first.
func (o *Orchestrator) ListAssets(ctx context.Context, userID string, limit int) ([]domain.GeneratedAsset, error) {
	return o.repo.ListAssetsByUser(ctx, userID, limit)
}

// Balance returns the user's ledger row, provisioning it on first touch.
func (o *Orchestrator) Balance(ctx context.Context, userID string) (*domain.CreditBalance, error) {
	return o.ledger.Balance(ctx, userID)
}

// generateImage drives one image artifact from provider call through the
// record-plus-debit transaction.
func (o *Orchestrator) generateImage(ctx context.Context, userID string, assetType domain.AssetType, req gateway.ImageRequest) (*AssetResult, error) {
	var providerURL string
	attempts, err := o.withRetry(ctx, assetType, func() error {
		var genErr error
		providerURL, genErr = o.gen.GenerateImage(ctx, req)
		return genErr
	})
	if err != nil {
		return nil, err
	}

	data, err := o.download(ctx, providerURL)
	if err != nil {
		return nil, &domain.PersistenceError{Op: "download image", Err: err}
	}
	key := storage.AssetKey(string(assetType), userID, o.now(), o.randSuffix())
	if _, err := o.blobs.Write(ctx, key, data); err != nil {
		return nil, &domain.PersistenceError{Op: "store blob", Err: err}
	}

	asset := domain.GeneratedAsset{
		UserID:   userID,
		ImageURL: o.blobs.PublicURL(key),
		Type:     assetType,
		Prompt:   req.Prompt,
	}
	cost := domain.Cost(assetType)
	balance, err := o.repo.SaveAssetAndDebit(ctx, &asset, cost)
	if err != nil {
		// The blob stays behind; records and debits remain consistent.
		return nil, err
	}

	metrics.Global().Generations.WithLabelValues(string(assetType)).Inc()
	metrics.Global().CreditsDebited.Add(float64(cost))
	o.publish(ctx, notify.Event{
		UserID:    userID,
		AssetType: assetType,
		AssetID:   asset.ID,
		ImageURL:  asset.ImageURL,
		CreatedAt: asset.CreatedAt,
	})
	o.logger.Info().
		Str("user_id", userID).
		Str("asset_type", string(assetType)).
		Int("attempts", attempts).
		Int("remaining_credits", balance.Remaining()).
		Msg("generated image asset")
	return &AssetResult{Asset: asset, Balance: balance, Attempts: attempts}, nil
}

func (o *Orchestrator) persistText(ctx context.Context, userID string, assetType domain.AssetType, prompt string, lines []string, attempts, cost int) (*TextResult, error) {
	record := domain.GeneratedText{
		UserID: userID,
		Text:   strings.Join(lines, "\n"),
		Type:   assetType,
		Prompt: prompt,
	}
	balance, err := o.repo.SaveTextAndDebit(ctx, &record, cost)
	if err != nil {
		return nil, err
	}
	metrics.Global().Generations.WithLabelValues(string(assetType)).Inc()
	metrics.Global().CreditsDebited.Add(float64(cost))
	o.publish(ctx, notify.Event{
		UserID:    userID,
		AssetType: assetType,
		AssetID:   record.ID,
		CreatedAt: record.CreatedAt,
	})
	return &TextResult{Record: record, Lines: lines, Balance: balance, Attempts: attempts}, nil
}

// checkBalance is an advisory pre-flight check. The authoritative guard is
// the conditional debit inside the save transaction.
func (o *Orchestrator) checkBalance(ctx context.Context, userID string, cost int) (*domain.CreditBalance, error) {
	balance, err := o.ledger.Balance(ctx, userID)
	if err != nil {
		return nil, err
	}
	if balance.Remaining() < cost {
		return nil, domain.ErrInsufficientCredits
	}
	return balance, nil
}

// withRetry runs fn up to maxAttempts times with jittered exponential
// backoff, stopping early on errors that cannot plausibly succeed on retry.
func (o *Orchestrator) withRetry(ctx context.Context, assetType domain.AssetType, fn func() error) (int, error) {
	var last error
	for attempt := 0; attempt < o.maxAttempts; attempt++ {
		if attempt > 0 {
			backoff := o.backoffBase * (1 << (attempt - 1))
			backoff += o.jitter(o.backoffBase)
			if err := o.sleep(ctx, backoff); err != nil {
				return attempt, err
			}
			metrics.Global().RetryAttempts.Inc()
		}
		if err := fn(); err != nil {
			last = err
			var provErr *domain.ProviderError
			if errors.As(err, &provErr) && !provErr.Retryable() {
				metrics.Global().Failures.WithLabelValues(string(assetType)).Inc()
				return attempt + 1, &domain.GenerationError{AssetType: assetType, Attempts: attempt + 1, Last: err}
			}
			if errors.As(err, &provErr) {
				o.logger.Warn().
					Err(err).
					Str("asset_type", string(assetType)).
					Int("attempt", attempt+1).
					Msg("provider call failed, retrying")
				continue
			}
			// Non-provider errors (missing keys, empty prompts) are fatal.
			metrics.Global().Failures.WithLabelValues(string(assetType)).Inc()
			return attempt + 1, err
		}
		return attempt + 1, nil
	}
	metrics.Global().Failures.WithLabelValues(string(assetType)).Inc()
	return o.maxAttempts, &domain.GenerationError{AssetType: assetType, Attempts: o.maxAttempts, Last: last}
}

func (o *Orchestrator) download(ctx context.Context, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build download request: %w", err)
	}
	resp, err := o.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("download image: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return nil, fmt.Errorf("download status %d", resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}

func (o *Orchestrator) publish(ctx context.Context, event notify.Event) {
	if err := o.notifier.Publish(ctx, event); err != nil {
		o.logger.Warn().Err(err).Msg("publish generation event failed")
	}
}

func (o *Orchestrator) randSuffix() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.rng.Intn(1_000_000)
}

func (o *Orchestrator) jitter(max time.Duration) time.Duration {
	if max <= 0 {
		return 0
	}
	o.mu.Lock()
	defer o.mu.Unlock()
	return time.Duration(o.rng.Int63n(int64(max)))
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
