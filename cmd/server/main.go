package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	httpapi "github.com/coupon-quest/coupon-quest/internal/api/http"
	"github.com/coupon-quest/coupon-quest/internal/application/claim"
	"github.com/coupon-quest/coupon-quest/internal/application/quest"
	"github.com/coupon-quest/coupon-quest/internal/application/stats"
	"github.com/coupon-quest/coupon-quest/internal/config"
	"github.com/coupon-quest/coupon-quest/internal/domain/quiz"
	"github.com/coupon-quest/coupon-quest/internal/infrastructure/discord"
	"github.com/coupon-quest/coupon-quest/internal/infrastructure/postgres"
)

func main() {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}
	if cfg.DiscordToken == "" {
		log.Fatalf("DISCORD_TOKEN is required")
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("db error: %v", err)
	}
	defer pool.Close()

	if err := postgres.RunMigrations(ctx, pool, cfg.MigrationsDir); err != nil {
		log.Fatalf("migration error: %v", err)
	}

	// repositories
	couponRepo := postgres.NewCouponRepository(pool)
	statsRepo := postgres.NewStatsRepository(pool)

	// challenge sequence
	sequence := quiz.DefaultSequence()
	if cfg.QuizFile != "" {
		sequence, err = quiz.LoadSequence(cfg.QuizFile)
		if err != nil {
			log.Fatalf("quiz file error: %v", err)
		}
	}

	// transport
	gateway, err := discord.NewGateway(cfg.DiscordToken, cfg.DiscordAppID, cfg.DiscordGuildID, logger)
	if err != nil {
		log.Fatalf("discord error: %v", err)
	}

	// services
	claimSvc := claim.NewService(couponRepo, statsRepo, logger)
	questSvc := quest.NewService(couponRepo, claimSvc, sequence, gateway, logger)
	statsSvc := stats.NewService(statsRepo, couponRepo, logger)

	if err := gateway.Start(questSvc); err != nil {
		log.Fatalf("discord error: %v", err)
	}
	defer gateway.Close()

	// API server
	apiServer := httpapi.NewServer(statsSvc, cfg.AdminKeyHash)

	httpServer := &http.Server{
		Addr:         cfg.ServerAddr,
		Handler:      apiServer.Router(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// background pool gauge
	go func() {
		ticker := time.NewTicker(cfg.PoolLogInterval)
		defer ticker.Stop()
		for range ticker.C {
			remaining, err := couponRepo.CountUnclaimed(context.Background())
			if err != nil {
				logger.Warn().Err(err).Msg("failed to count remaining coupons")
				continue
			}
			logger.Debug().Int64("remaining", remaining).
				Int("active_sessions", questSvc.ActiveSessions()).
				Msg("pool status")
		}
	}()

	// start server
	go func() {
		logger.Info().Str("addr", cfg.ServerAddr).Msg("http server started")
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("http server failed")
		}
	}()

	// graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = httpServer.Shutdown(ctxShutdown)
}
