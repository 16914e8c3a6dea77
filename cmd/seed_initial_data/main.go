// Command seed_initial_data ensures the initial users, village questions,
// about page quiz questions and blog posts of the NIRD platform exist.
// It takes no flags and can be run any number of times.
package main

import (
	"context"
	"fmt"
	"os"

	"nird-backend/internal/adapter"
	"nird-backend/internal/auth"
	"nird-backend/internal/cache"
	"nird-backend/internal/config"
	"nird-backend/internal/console"
	"nird-backend/internal/database"
	"nird-backend/internal/logger"
	"nird-backend/internal/repository"
	"nird-backend/internal/seed/fixtures"
	"nird-backend/internal/service"

	"go.uber.org/zap"
)

func main() {
	ctx := context.Background()
	cfg, err := config.LoadConfig()
	if err != nil {
		// logger is not initialized yet
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Initialize(cfg.Logger); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()
	log := logger.Get()
	if cfg.File != "" {
		log.Info("Using config file", zap.String("path", cfg.File))
	}

	set, err := loadFixtures(cfg.Seed)
	if err != nil {
		log.Fatal("Failed to load fixtures", zap.Error(err))
	}

	hasher, err := auth.NewHasher(cfg.Seed)
	if err != nil {
		log.Fatal("Failed to create password hasher", zap.Error(err))
	}

	db, err := database.NewSQLXDB(ctx, cfg)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.String("driver", cfg.DB.Driver), zap.Error(err))
	}
	defer db.Close()
	log.Info("Connected to database", zap.String("driver", cfg.DB.Driver))

	seedService := service.NewSeedService(service.SeedRepositories{
		Users:              repository.NewUserDatabaseAdapter(db),
		Questions:          repository.NewQuestionDatabaseAdapter(db),
		HumanQuizQuestions: repository.NewHumanQuizQuestionDatabaseAdapter(db),
		BlogPosts:          repository.NewBlogPostDatabaseAdapter(db),
	}, repository.NewTransactionManagerAdapter(db), hasher, console.New(os.Stdout), log)

	report, err := seedService.Seed(ctx, set)
	if err != nil {
		log.Fatal("Seeding failed", zap.Error(err))
	}

	if cfg.Redis.Address == "" {
		log.Debug("Redis address not configured, skipping cache invalidation")
		return
	}
	redisClient, err := cache.NewRedisClient(ctx, cfg.Redis)
	if err != nil {
		// the data is committed; stale listings expire on their own
		log.Warn("Skipping cache invalidation", zap.Error(err))
		return
	}
	defer redisClient.Close()

	invalidator := service.NewCacheInvalidator(adapter.NewRedisCacheAdapter(redisClient), log)
	if err := invalidator.Invalidate(ctx, report); err != nil {
		log.Warn("Cache invalidation failed", zap.Error(err))
	}
}

func loadFixtures(cfg config.SeedConfig) (*fixtures.Set, error) {
	if cfg.FixturesFile != "" {
		return fixtures.LoadFile(cfg.FixturesFile)
	}
	return fixtures.Load()
}
