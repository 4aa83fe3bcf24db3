package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"github.com/rs/cors"

	"github.com/vaultpass/passgen/internal/config"
	"github.com/vaultpass/passgen/internal/handler"
	"github.com/vaultpass/passgen/internal/middleware"
	"github.com/vaultpass/passgen/internal/repository"
	"github.com/vaultpass/passgen/internal/service"
	"github.com/vaultpass/passgen/internal/session"
)

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Warn("no .env file found, using environment variables")
	}

	cfg := config.Load()
	if cfg.IsProduction() {
		slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))
	}

	if cfg.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:         cfg.SentryDSN,
			Environment: cfg.Env,
		}); err != nil {
			slog.Error("sentry init failed", "error", err)
		} else {
			defer sentry.Flush(5 * time.Second)
		}
	}

	// Theme preferences are persisted only when the database is reachable.
	var themes session.ThemeStore
	db, err := repository.NewDB(context.Background(), cfg.DatabaseDSN)
	if err != nil {
		slog.Warn("database connection failed, theme routes disabled", "error", err)
	} else {
		defer db.Close()
		themeRepo := repository.NewThemeRepository(db)
		if err := themeRepo.EnsureSchema(context.Background()); err != nil {
			slog.Warn("creating theme table failed, theme routes disabled", "error", err)
		} else {
			themes = themeRepo
		}
	}

	genService := service.NewGeneratorService(nil)
	genHandler := handler.NewGeneratorHandler(genService)

	sessionService, err := service.NewSessionService(service.SessionConfig{
		Secret:        cfg.SessionSecret,
		Expiry:        cfg.SessionExpiry,
		GenerateDelay: cfg.GenerateDelay,
		ToastDuration: cfg.ToastDuration,
		Themes:        themes,
	})
	if err != nil {
		slog.Error("session service init failed", "error", err)
		os.Exit(1)
	}
	defer sessionService.Shutdown()
	sessionHandler := handler.NewSessionHandler(sessionService)

	limiter := middleware.NewRateLimiter(5, 10)
	defer limiter.Stop()

	r := chi.NewRouter()
	r.Use(cors.New(cors.Options{
		AllowedOrigins: cfg.CORSAllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
		ExposedHeaders: []string{"Content-Disposition"},
	}).Handler)
	r.Use(chimw.Recoverer)
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.Logger)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	r.Get("/api/v1/share", handler.HandleShare)

	r.Group(func(r chi.Router) {
		r.Use(limiter.Handler)
		r.Post("/api/v1/generate", genHandler.HandleGenerate)
		r.Post("/api/v1/assess", genHandler.HandleAssess)
		r.Post("/api/v1/sessions", sessionHandler.HandleCreate)
	})

	r.Group(func(r chi.Router) {
		r.Use(middleware.SessionAuth(cfg.SessionSecret))
		r.Get("/api/v1/session", sessionHandler.HandleState)
		r.Delete("/api/v1/session", sessionHandler.HandleClose)
		r.Post("/api/v1/session/actions", sessionHandler.HandleAction)
		r.Get("/api/v1/session/report", sessionHandler.HandleReport)

		if themes != nil {
			r.Get("/api/v1/session/theme", sessionHandler.HandleGetTheme)
			r.Put("/api/v1/session/theme", sessionHandler.HandlePutTheme)
		}
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		slog.Info("server starting", "port", cfg.Port, "env", cfg.Env, "themes", themes != nil)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped")
}
