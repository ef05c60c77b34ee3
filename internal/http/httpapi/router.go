package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"brandforge/internal/http/handlers"
	"brandforge/internal/middleware"
)

// Options carries the router-level wiring that is not part of the App.
type Options struct {
	Logger          zerolog.Logger
	CORSOrigins     []string
	RateLimitPerMin int
	StaticDir       string
}

func NewRouter(app *handlers.App, opts Options) http.Handler {
	r := chi.NewRouter()

	r.Use(
		middleware.RequestID,
		chimiddleware.RealIP,
		chimiddleware.Recoverer,
		middleware.Logger(opts.Logger),
		middleware.CORS(opts.CORSOrigins),
	)

	r.Get("/healthz", app.Health)
	r.Handle("/metrics", promhttp.Handler())

	r.Get("/credits", app.Credits)
	r.Get("/assets", app.ListAssets)
	r.Get("/activity", app.Activity)
	r.Get("/proxy-image/*", app.ProxyImage)

	// Generation endpoints share a tighter rate limit; each one blocks on
	// at least one provider round trip.
	r.Group(func(r chi.Router) {
		limit := opts.RateLimitPerMin
		if limit <= 0 {
			limit = 30
		}
		r.Use(middleware.RateLimit(limit, time.Minute))

		r.Post("/generate-logo", app.GenerateLogo)
		r.Post("/generate-banner", app.GenerateBanner)
		r.Post("/generate-tagline", app.GenerateTagline)
		r.Post("/generate-brand-name", app.GenerateBrandName)
		r.Post("/brand-assets", app.BrandAssets)
		r.Post("/upload-image", app.UploadImage)
		r.Post("/verify-image", app.VerifyImage)
		r.Post("/extract-text", app.ExtractText)
	})

	if opts.StaticDir != "" {
		fs := http.StripPrefix("/static/", http.FileServer(http.Dir(opts.StaticDir)))
		r.Get("/static/*", func(w http.ResponseWriter, req *http.Request) {
			w.Header().Set("Cache-Control", "public, max-age=31536000, immutable")
			fs.ServeHTTP(w, req)
		})
	}

	return r
}
