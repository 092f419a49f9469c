package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/YahyaMd03/ai-prompt-intelligence/internal/http/handlers"
	"github.com/YahyaMd03/ai-prompt-intelligence/internal/middleware"
)

// RouterOptions carries the cross-cutting knobs the router wires in front
// of the handlers.
type RouterOptions struct {
	Logger          zerolog.Logger
	AllowedOrigins  []string
	RateLimitPerMin int
}

// NewRouter assembles the /api/v1 surface.
func NewRouter(app *handlers.App, opts RouterOptions) http.Handler {
	r := chi.NewRouter()

	r.Use(
		middleware.RequestID,
		chimw.RealIP,
		chimw.Recoverer,
		middleware.Logger(opts.Logger),
		middleware.CORS(opts.AllowedOrigins),
	)
	if opts.RateLimitPerMin > 0 {
		r.Use(middleware.RateLimit(opts.RateLimitPerMin, time.Minute))
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", app.Health)

		r.Route("/prompts", func(r chi.Router) {
			r.Post("/extract-options", app.ExtractOptions)
			r.Post("/enhance", app.EnhancePrompt)
			r.Post("/generate-script", app.GenerateScript)
		})

		r.Route("/runs", func(r chi.Router) {
			r.Get("/", app.ListRuns)
			r.Get("/{run_id}", app.GetRun)
		})
	})

	return r
}
