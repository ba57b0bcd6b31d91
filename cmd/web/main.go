package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tastycheddar/salt-scoville-ecommerce-sub000/internal/config"
	"github.com/tastycheddar/salt-scoville-ecommerce-sub000/internal/database"
	apphttp "github.com/tastycheddar/salt-scoville-ecommerce-sub000/internal/http"
	"github.com/tastycheddar/salt-scoville-ecommerce-sub000/internal/mailer"
	"github.com/tastycheddar/salt-scoville-ecommerce-sub000/internal/modules/auth"
	"github.com/tastycheddar/salt-scoville-ecommerce-sub000/internal/modules/heat"
	"github.com/tastycheddar/salt-scoville-ecommerce-sub000/internal/storage"
)

const sessionSweepEvery = time.Hour

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	level := slog.LevelInfo
	if !cfg.App.IsProduction() {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	if cfg.App.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.Open(cfg.DB, logger)
	if err != nil {
		log.Fatal(err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	store, err := storage.New(ctx, cfg.Storage)
	if err != nil {
		log.Fatalf("storage: %v", err)
	}
	mail, err := mailer.New(cfg, logger)
	if err != nil {
		log.Fatalf("mailer: %v", err)
	}

	var analyzer heat.Analyzer = heat.RuleAnalyzer{}
	if cfg.AI.GeminiAPIKey != "" {
		g, err := heat.NewGeminiAnalyzer(ctx, cfg.AI.GeminiAPIKey, cfg.AI.GeminiModel)
		if err != nil {
			logger.Warn("gemini_disabled", "err", err)
		} else {
			analyzer = heat.Fallback{Primary: g, Secondary: heat.RuleAnalyzer{}, Log: logger}
		}
	}

	r := apphttp.NewRouter(apphttp.Deps{
		Log:      logger,
		DB:       db,
		Config:   cfg,
		Storage:  store,
		Mailer:   mail,
		Analyzer: analyzer,
	})

	go sweepSessions(ctx, auth.NewSessionStore(db, cfg.Session.TTL), logger)

	srv := &http.Server{
		Addr:              cfg.App.Addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		logger.Info("http_listen", "addr", cfg.App.Addr, "env", cfg.App.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("listen: %v", err)
		}
	}()

	<-ctx.Done()
	logger.Info("http_shutdown")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http_shutdown_failed", "err", err)
	}
}

func sweepSessions(ctx context.Context, s *auth.SessionStore, l *slog.Logger) {
	t := time.NewTicker(sessionSweepEvery)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			n, err := s.DeleteExpired(ctx)
			if err != nil {
				l.Warn("session_sweep_failed", "err", err)
				continue
			}
			if n > 0 {
				l.Info("sessions_expired", "count", n)
			}
		}
	}
}
