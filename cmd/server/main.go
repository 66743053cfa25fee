package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/crewdesk/member-portal/internal/api"
	"github.com/crewdesk/member-portal/internal/core/service"
	"github.com/crewdesk/member-portal/internal/infrastructure/config"
	mongodb "github.com/crewdesk/member-portal/internal/infrastructure/db/mongo"
	redisdb "github.com/crewdesk/member-portal/internal/infrastructure/db/redis"
	"github.com/crewdesk/member-portal/internal/infrastructure/queue"
	"github.com/crewdesk/member-portal/internal/infrastructure/session"
	"github.com/crewdesk/member-portal/pkg/logger"
)

func main() {
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.IsDevelopment(),
	})

	if cfg.SessionSecret == "" {
		log.Fatal().Msg("SESSION_SECRET is required")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// --- Infrastructure ---
	mongoClient, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connect failed")
	}
	defer func() {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()
		_ = mongoClient.Disconnect(shutdownCtx)
	}()

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connect failed")
	}
	defer rdb.Close()

	// --- Repositories ---
	userRepo := mongodb.NewUserRepository(db)
	sessionRepo := mongodb.NewSessionRepository(db)
	onboardingRepo := mongodb.NewOnboardingRepository(db)
	auditRepo := mongodb.NewAuditRepository(db)

	if err := userRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("user indexes failed")
	}
	if err := sessionRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("session indexes failed")
	}

	// --- Services ---
	identity := service.NewIdentityService(userRepo, sessionRepo, service.OAuthOptions{
		ClientID:     cfg.OAuth.ClientID,
		ClientSecret: cfg.OAuth.ClientSecret,
		AuthURL:      cfg.OAuth.AuthURL,
		TokenURL:     cfg.OAuth.TokenURL,
		UserInfoURL:  cfg.OAuth.UserInfoURL,
		RedirectURL:  cfg.OAuth.RedirectURL,
		Scopes:       []string{"openid", "email", "profile"},
	}, cfg.SessionTTL)

	audit := service.NewAuditService(auditRepo, redisdb.NewDedupChecker(rdb), log)
	dispatcher := queue.NewDispatcher(0, audit, log)
	dispatcher.Start(ctx)

	profile := service.NewOnboardingService(onboardingRepo, userRepo, cfg.AdminEmails, dispatcher, log)
	webSessions := session.NewStore(rdb, cfg.SessionTTL)
	pipeline := service.NewGate(cfg.RequireApproval)

	// --- HTTP server ---
	e := api.NewRouter(api.Deps{
		Cfg:        cfg,
		Log:        log,
		DB:         db,
		Redis:      rdb,
		Identity:   identity,
		Onboarding: onboardingRepo,
		Profile:    profile,
		Sessions:   webSessions,
		Events:     dispatcher,
		Pipeline:   pipeline,
	})

	serverErr := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("starting member-portal server")
		if err := e.Start(":" + cfg.Port); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		log.Info().Str("signal", sig.String()).Msg("shutting down server")
	case err := <-serverErr:
		log.Fatal().Err(err).Msg("server error")
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server stopped gracefully")
}
