package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/baharkarakas/autoblog-backend/internal/api"
	"github.com/baharkarakas/autoblog-backend/internal/api/handlers"
	"github.com/baharkarakas/autoblog-backend/internal/auth"
	"github.com/baharkarakas/autoblog-backend/internal/competitor"
	"github.com/baharkarakas/autoblog-backend/internal/config"
	"github.com/baharkarakas/autoblog-backend/internal/crypto"
	"github.com/baharkarakas/autoblog-backend/internal/db"
	"github.com/baharkarakas/autoblog-backend/internal/llm"
	"github.com/baharkarakas/autoblog-backend/internal/logger"
	"github.com/baharkarakas/autoblog-backend/internal/metrics"
	"github.com/baharkarakas/autoblog-backend/internal/models"
	"github.com/baharkarakas/autoblog-backend/internal/repository/postgres"
	"github.com/baharkarakas/autoblog-backend/internal/services"
	"github.com/baharkarakas/autoblog-backend/internal/worker"
)

func main() {
	cfg := config.Load()
	log := logger.New(cfg.Env)
	slog.SetDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := db.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Error("db connect", "err", err)
		os.Exit(1)
	}
	defer pool.Close()

	if cfg.Migrate {
		if err := db.RunMigrations(ctx, pool); err != nil {
			log.Error("migrations", "err", err)
			os.Exit(1)
		}
	}

	sealer, err := crypto.NewSealer(cfg.CredentialsKey)
	if err != nil {
		log.Error("credentials key", "err", err)
		os.Exit(1)
	}
	if sealer == nil {
		log.Warn("CREDENTIALS_KEY not set, provider keys are stored in plaintext")
	}

	repos := postgres.NewRepositories(pool)
	wp := worker.NewPool(cfg.WorkerCount)
	defer wp.Stop()

	metrics.Init()

	httpClient := &http.Client{Timeout: cfg.HTTPClientTimeout}
	source := competitorSource(cfg, httpClient, log)
	provider := keywordProvider(cfg, httpClient)
	log.Info("keyword provider", "api_type", provider.APIType(), "competitor_source", source.Name())

	creditSvc := services.NewCreditService(repos.UnitOfWork, repos.Credits, repos.Usage, log)
	credentialSvc := services.NewCredentialService(repos.APIKeys, sealer)
	h := &handlers.Handler{
		Credits:     creditSvc,
		Competitors: services.NewCompetitorService(source, repos.Usage, wp, log),
		Keywords:    services.NewKeywordService(creditSvc, credentialSvc, provider, log),
		Workspaces:  services.NewWorkspaceService(repos.UnitOfWork, cfg.InitialCredits, log),
		Credentials: credentialSvc,
		Log:         log,
	}

	tm := auth.NewTokenManager(cfg.JWTSecret, cfg.JWTIssuer, time.Hour)
	r := api.NewRouter(api.RouterDeps{Cfg: cfg, TM: tm, Handlers: h})

	srv := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Info("server starting", "port", cfg.HTTPPort, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server", "err", err)
			stop()
		}
	}()

	<-ctx.Done()
	log.Info("shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)
}

// competitorSource prefers the live SERP lookup when configured and keeps the
// static datasets as fallback.
func competitorSource(cfg config.Config, client *http.Client, log *slog.Logger) competitor.Source {
	fixtures := competitor.NewFixtureSource()
	if cfg.SerpAPIURL == "" {
		return fixtures
	}
	serp, err := competitor.NewSERPSource(competitor.SERPOptions{
		Endpoint:   cfg.SerpAPIURL,
		APIKey:     cfg.SerpAPIKey,
		Results:    cfg.SerpResults,
		HTTPClient: client,
		Logger:     log,
	})
	if err != nil {
		log.Warn("serp source disabled", "err", err)
		return fixtures
	}
	return &competitor.FallbackSource{
		Primary:  serp,
		Fallback: fixtures,
		OnFallback: func(reason string, err error) {
			metrics.CompetitorSourceFallbacks.WithLabelValues(reason).Inc()
			log.Warn("competitor source fallback", "reason", reason, "err", err)
		},
	}
}

func keywordProvider(cfg config.Config, client *http.Client) llm.Completer {
	if cfg.KeywordProvider == models.APITypeGemini {
		return llm.NewGemini(cfg.GeminiModel)
	}
	return llm.NewOpenAI(llm.OpenAIOptions{
		BaseURL:    cfg.OpenAIBaseURL,
		Model:      cfg.OpenAIModel,
		HTTPClient: client,
	})
}
