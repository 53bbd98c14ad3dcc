package main

import (
	"context"
	"os"
	"time"

	"go.uber.org/zap"

	artworkapp "github.com/catfo435/auctionarena/internal/artwork/application"
	artworkpg "github.com/catfo435/auctionarena/internal/artwork/infra/repository/postgres"
	"github.com/catfo435/auctionarena/internal/auction/application"
	"github.com/catfo435/auctionarena/internal/auction/domain"
	auctionhttp "github.com/catfo435/auctionarena/internal/auction/infra/http"
	auctionpg "github.com/catfo435/auctionarena/internal/auction/infra/repository/postgres"
	"github.com/catfo435/auctionarena/internal/auction/scheduler"
	"github.com/catfo435/auctionarena/internal/shared/db"
	"github.com/catfo435/auctionarena/internal/shared/db/migrations"
	"github.com/catfo435/auctionarena/internal/shared/httpserver"
	"github.com/catfo435/auctionarena/internal/shared/logger"
	userpg "github.com/catfo435/auctionarena/internal/user/infra/repository/postgres"
)

func main() {
	log := logger.GetLogger()
	defer log.Sync()

	log.Info("Starting auction arena server...")

	if err := migrations.RunMigrations(); err != nil {
		log.Fatal("Database migration failed", zap.Error(err))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pool, err := db.GetPostgresDBPool(ctx)
	if err != nil {
		log.Fatal("Database connection failed", zap.Error(err))
	}
	defer pool.Close()

	clock := domain.SystemClock{}

	store := auctionpg.NewStore(pool)
	auctionRepo := auctionpg.NewAuctionRepository(pool)
	bidRepo := auctionpg.NewBidRepository(pool)
	queryRepo := auctionpg.NewQueryRepository(pool)
	userRepo := userpg.NewUserRepository(pool)
	artworkRepo := artworkpg.NewArtworkRepository(pool)

	placeBidUC := application.NewPlaceBidUseCase(store, userRepo, clock)
	queries := application.NewQueryService(queryRepo, bidRepo)
	service := application.NewAuctionService(placeBidUC, queries)
	resolver := application.NewLifecycleResolver(store, auctionRepo)
	submitUC := artworkapp.NewSubmitArtworkUseCase(artworkRepo, auctionRepo, pool, clock)

	go scheduler.New(resolver, clock, tickInterval()).Run(ctx)

	server := httpserver.NewServer()
	auctionhttp.NewHandler(service, userRepo, submitUC).Register(server.App())

	addr := os.Getenv("HTTP_ADDR")
	if addr == "" {
		addr = ":9000"
	}
	if err := server.Start(addr); err != nil {
		log.Fatal("HTTP server failed", zap.Error(err))
	}
}

// tickInterval reads LIFECYCLE_TICK_INTERVAL (a Go duration, e.g. "60s"),
// falling back to the scheduler default.
func tickInterval() time.Duration {
	raw := os.Getenv("LIFECYCLE_TICK_INTERVAL")
	if raw == "" {
		return scheduler.DefaultInterval
	}
	interval, err := time.ParseDuration(raw)
	if err != nil {
		logger.GetLogger().Warn("Invalid LIFECYCLE_TICK_INTERVAL, using default",
			zap.String("value", raw), zap.Error(err))
		return scheduler.DefaultInterval
	}
	return interval
}
