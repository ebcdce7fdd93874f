// Package bootstrap wires runtime dependencies for the cmd entrypoints.
package bootstrap

import (
	"fmt"

	"skillshare/internal/cache"
	"skillshare/internal/config"
	"skillshare/internal/database"
	"skillshare/internal/seed"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Options control runtime initialization behavior.
type Options struct {
	SeedDemoData bool
}

// InitRuntime connects to the database and Redis and optionally seeds
// demo data. Redis being unreachable yields a nil client, not an
// error; the API degrades to uncached reads.
func InitRuntime(cfg *config.Config, opts Options) (*gorm.DB, *redis.Client, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("database connection failed: %w", err)
	}

	cache.InitRedis(cfg.RedisURL)
	r := cache.GetClient()

	if opts.SeedDemoData {
		if err := seed.Run(db, seed.Options{}); err != nil {
			return nil, nil, fmt.Errorf("failed to seed demo data: %w", err)
		}
	}

	return db, r, nil
}
