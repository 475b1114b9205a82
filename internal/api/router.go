package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/baharkarakas/autoblog-backend/internal/api/handlers"
	"github.com/baharkarakas/autoblog-backend/internal/auth"
	"github.com/baharkarakas/autoblog-backend/internal/config"
	"github.com/baharkarakas/autoblog-backend/internal/metrics"
	"github.com/baharkarakas/autoblog-backend/internal/middleware"
)

type RouterDeps struct {
	Cfg      config.Config
	TM       *auth.TokenManager
	Handlers *handlers.Handler
}

func NewRouter(d RouterDeps) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.Recover, middleware.HTTPMetrics, middleware.RateLimit(d.Cfg.RateRPS))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"*"},
		ExposedHeaders: []string{"X-Request-Id"},
		MaxAge:         300,
	}))

	// çıplak OPTIONS istekleri de 200 dönsün
	r.Options("/*", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })

	// health & metrics
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) { _, _ = w.Write([]byte("ok")) })
	r.Handle("/metrics", metrics.Handler())

	am := middleware.NewAuthMiddleware(d.TM, d.Cfg.Env)
	h := d.Handlers

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(am.Auth)

		// ---------- analysis ----------
		r.Post("/competitor-analysis", h.CompetitorAnalysis)
		r.Post("/keywords/generate", h.GenerateKeywords)

		// ---------- credits ----------
		r.Post("/credits/consume", h.ConsumeCredits)
		r.Get("/credits/balance", h.CreditBalance)
		r.With(middleware.RequireRole("admin")).Post("/credits/grant", h.GrantCredits)
		r.Get("/usage", h.ListUsage)

		// ---------- workspaces ----------
		r.Post("/workspaces", h.CreateWorkspace)
		r.Put("/workspaces/{id}/api-keys/{apiType}", h.PutAPIKey)
		r.Delete("/workspaces/{id}/api-keys/{apiType}", h.DeleteAPIKey)

		if d.Cfg.IsDev() {
			r.Post("/auth/dev-token", handlers.NewAuthHandler(d.TM).DevToken)
		}
	})

	return r
}
