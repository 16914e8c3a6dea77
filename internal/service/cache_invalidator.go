package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"nird-backend/internal/cache"
	"nird-backend/internal/domain"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Cache services and object types of the listings the web application caches.
var listingPatterns = map[domain.RecordKind]string{
	domain.KindUser:              cache.ListingPattern("accounts", "users"),
	domain.KindVillageQuestion:   cache.ListingPattern("village", "questions"),
	domain.KindHumanQuizQuestion: cache.ListingPattern("about", "quiz"),
	domain.KindBlogPost:          cache.ListingPattern("community", "posts"),
}

// LastSeedKey holds a JSON summary of the most recent seeding run.
var LastSeedKey = cache.GenerateCacheKey("seed", "run", "last")

// CacheInvalidator drops cached listings that a seeding run made stale.
type CacheInvalidator interface {
	Invalidate(ctx context.Context, report *domain.SeedReport) error
}

type cacheInvalidatorImpl struct {
	cache  domain.Cache
	logger *zap.Logger
}

// NewCacheInvalidator creates a new instance of CacheInvalidator
func NewCacheInvalidator(c domain.Cache, logger *zap.Logger) CacheInvalidator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &cacheInvalidatorImpl{cache: c, logger: logger}
}

type seedRunSummary struct {
	FinishedAt time.Time      `json:"finished_at"`
	Created    map[string]int `json:"created"`
	Existing   map[string]int `json:"existing"`
}

// Invalidate deletes the listing patterns of every kind that received new rows,
// one goroutine per pattern, then records the run summary under LastSeedKey.
func (i *cacheInvalidatorImpl) Invalidate(ctx context.Context, report *domain.SeedReport) error {
	kinds := report.CreatedKinds()
	if len(kinds) > 0 {
		g, gctx := errgroup.WithContext(ctx)
		for _, kind := range kinds {
			pattern := listingPatterns[kind]
			g.Go(func() error {
				deleted, err := i.cache.DeleteByPattern(gctx, pattern)
				if err != nil {
					return fmt.Errorf("failed to invalidate %s: %w", pattern, err)
				}
				i.logger.Debug("Invalidated cached listings", zap.String("pattern", pattern), zap.Int64("deleted", deleted))
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return err
		}
	}

	summary := seedRunSummary{
		FinishedAt: time.Now().UTC(),
		Created:    make(map[string]int, len(report.Counts)),
		Existing:   make(map[string]int, len(report.Counts)),
	}
	for kind, count := range report.Counts {
		summary.Created[string(kind)] = count.Created
		summary.Existing[string(kind)] = count.Existing
	}
	data, err := json.Marshal(summary)
	if err != nil {
		return fmt.Errorf("failed to encode seed summary: %w", err)
	}
	if err := i.cache.Set(ctx, LastSeedKey, string(data), 0); err != nil {
		return fmt.Errorf("failed to store seed summary: %w", err)
	}
	return nil
}
