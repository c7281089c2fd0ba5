package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

type RouterConfig struct {
	CORSOrigins    []string
	RequestTimeout time.Duration
}

// NewRouter wires every handler under /api/v1. A nil limiter disables rate
// limiting.
func NewRouter(
	cfg RouterConfig,
	loanHandler *LoanHandler,
	plannerHandler *PlannerHandler,
	limiter *RateLimiter,
) chi.Router {

	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	timeout := cfg.RequestTimeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	r.Use(middleware.Timeout(timeout))

	origins := []string{"*"}
	if len(cfg.CORSOrigins) > 0 {
		origins = cfg.CORSOrigins
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID"},
		MaxAge:         300,
	}))

	r.Get("/health", handleHealth)

	r.Route("/api/v1", func(r chi.Router) {
		if limiter != nil {
			r.Use(RateLimitMiddleware(limiter))
		}

		r.Get("/strategies", plannerHandler.Strategies)

		r.Post("/loan/calculate", loanHandler.CalculateLoan)
		r.Post("/loan/amortize", loanHandler.Amortize)

		r.Post("/plan", plannerHandler.Plan)
		r.Post("/plan/compare", plannerHandler.Compare)

		r.Post("/sip/project", plannerHandler.ProjectSIP)
	})

	return r
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	writeData(w, map[string]string{"status": "ok"})
}
