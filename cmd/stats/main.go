package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/influencetie/backend/internal/config"
	"github.com/influencetie/backend/internal/db"
	"github.com/influencetie/backend/internal/instagram"
	"github.com/influencetie/backend/internal/repositories"
)

func main() {
	log, _ := zap.NewProduction()
	defer log.Sync()

	cfg := config.Load()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// The worker touches one row at a time; it does not need the API's budget.
	pool, err := db.NewPostgresPool(ctx, cfg.PostgresDSN, 4, 1, log)
	if err != nil {
		log.Fatal("failed to connect to postgres", zap.Error(err))
	}
	defer pool.Close()

	rdb, err := db.NewRedisClient(ctx, cfg.RedisURL, log)
	if err != nil {
		log.Fatal("failed to connect to redis", zap.Error(err))
	}
	defer rdb.Close()

	userRepo := repositories.NewUserRepo(pool)
	parser := instagram.NewParser(cfg.IGFetchTimeoutMS, cfg.IGFetchMaxRetries, log)

	log.Info("instagram stats refresher started", zap.Duration("interval", cfg.StatsRefreshInterval))

	// Initial run
	runStatsRefresh(ctx, userRepo, parser, rdb, cfg, log)

	ticker := time.NewTicker(cfg.StatsRefreshInterval)
	defer ticker.Stop()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	for {
		select {
		case <-ticker.C:
			runStatsRefresh(ctx, userRepo, parser, rdb, cfg, log)
		case <-sigCh:
			log.Info("shutting down stats refresher")
			cancel()
			return
		case <-ctx.Done():
			return
		}
	}
}

func runStatsRefresh(
	ctx context.Context,
	userRepo *repositories.UserRepo,
	parser *instagram.Parser,
	rdb *redis.Client,
	cfg *config.Config,
	log *zap.Logger,
) {
	activeSince := time.Now().Add(-cfg.StatsActiveWindow)
	users, err := userRepo.GetStaleInstagramProfiles(ctx, activeSince)
	if err != nil {
		log.Error("failed to get profiles for refresh", zap.Error(err))
		return
	}

	log.Info("refreshing follower stats", zap.Int("profiles", len(users)))

	for _, u := range users {
		if ctx.Err() != nil {
			return
		}
		handle := *u.InstagramHandle

		// One fetch per handle per interval
		rlKey := fmt.Sprintf("rl:igstats:%s", handle)
		if rdb.Exists(ctx, rlKey).Val() > 0 {
			continue
		}
		rdb.Set(ctx, rlKey, "1", cfg.StatsRefreshInterval)

		stats, err := parser.FetchProfile(ctx, handle)
		if err != nil {
			log.Warn("profile fetch failed", zap.String("handle", handle), zap.Error(err))
			continue
		}
		if stats.Followers == nil {
			continue
		}

		if err := userRepo.UpdateInstagramStats(ctx, u.ID, *stats.Followers); err != nil {
			log.Error("failed to save follower count", zap.String("handle", handle), zap.Error(err))
			continue
		}

		log.Info("followers updated",
			zap.String("handle", handle),
			zap.Int("followers", *stats.Followers),
		)

		// Small delay between requests to avoid rate limiting
		time.Sleep(2 * time.Second)
	}
}
