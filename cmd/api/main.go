package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"brandforge/internal/adapter/repo"
	"brandforge/internal/gateway"
	"brandforge/internal/http/handlers"
	httpapi "brandforge/internal/http/httpapi"
	"brandforge/internal/infra"
	"brandforge/internal/notify"
	"brandforge/internal/orchestrator"
	"brandforge/internal/providers/gemini"
	"brandforge/internal/providers/ocr"
	"brandforge/internal/providers/together"
	"brandforge/internal/storage"
	"brandforge/internal/verify"
	"brandforge/migrations"
)

func main() {
	_ = godotenv.Load()

	cfg, err := infra.LoadConfig()
	if err != nil {
		panic(err)
	}
	logger := infra.NewLogger(cfg.AppEnv)

	ctx := context.Background()
	if err := infra.Migrate(ctx, cfg, migrations.FS); err != nil {
		logger.Fatal().Err(err).Msg("failed to run migrations")
	}
	dbpool, err := infra.NewDBPool(ctx, cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect database")
	}
	defer dbpool.Close()

	blobs, err := storage.NewFileStore(cfg.StoragePath, cfg.StorageBaseURL)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize storage")
	}

	togetherClient, err := together.NewClient(together.Options{
		APIKey:         cfg.TogetherAPIKey,
		BaseURL:        cfg.TogetherBaseURL,
		ImageModel:     cfg.ImageModel,
		ChatModel:      cfg.ChatModel,
		Logger:         &logger,
		RequestTimeout: cfg.ProviderTimeout,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize together client")
	}
	geminiClient, err := gemini.NewClient(gemini.Options{
		APIKey:         cfg.GeminiAPIKey,
		Model:          cfg.GeminiModel,
		BaseURL:        cfg.GeminiBaseURL,
		RequestTimeout: cfg.ProviderTimeout,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize gemini client")
	}

	var notifier notify.Publisher = notify.NopPublisher{}
	var feed handlers.ActivityFeed
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		redisNotifier := notify.NewRedisPublisher(rdb, cfg.NotifyChannel)
		notifier = redisNotifier
		feed = redisNotifier
	}
	defer notifier.Close()

	gw := gateway.New(gateway.Options{
		Images: togetherClient,
		Chat:   togetherClient,
		Names:  geminiClient,
		Logger: &logger,
	})
	orch := orchestrator.New(orchestrator.Options{
		Gen:         gw,
		Ledger:      repo.NewCreditLedger(dbpool),
		Repo:        repo.NewGenerationRepository(dbpool),
		Blobs:       blobs,
		Notifier:    notifier,
		Logger:      &logger,
		HTTPClient:  &http.Client{Timeout: cfg.ProviderTimeout},
		MaxAttempts: cfg.MaxAttempts,
		BackoffBase: cfg.RetryBackoffBase,
	})

	app := &handlers.App{
		Service:   orch,
		Blobs:     blobs,
		Feed:      feed,
		Logger:    &logger,
		ProxyHTTP: &http.Client{Timeout: cfg.ProviderTimeout},
	}
	if cfg.OCRAPIKey != "" {
		ocrClient, err := ocr.NewClient(ocr.Options{
			APIKey:         cfg.OCRAPIKey,
			BaseURL:        cfg.OCRBaseURL,
			RequestTimeout: cfg.ProviderTimeout,
		})
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to initialize ocr client")
		}
		app.Verifier = verify.NewVerifier(ocrClient)
		app.Extractor = ocrClient
	}

	router := httpapi.NewRouter(app, httpapi.Options{
		Logger:          logger,
		CORSOrigins:     cfg.CORSOrigins,
		RateLimitPerMin: cfg.RateLimitPerMin,
		StaticDir:       blobs.BasePath(),
	})
	server := infra.NewHTTPServer(cfg, router)

	go func() {
		logger.Info().Msgf("API listening on :%s", cfg.Port)
		if err := server.Start(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("http server failed")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPIdleTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("failed to shutdown server")
	}
	logger.Info().Msg("server stopped")
}
