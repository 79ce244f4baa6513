package factory

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/double232/autorouter/internal/adapters/cache"
	"github.com/double232/autorouter/internal/config"
	"github.com/double232/autorouter/internal/core"
)

// CacheFactory creates document caches based on configuration
type CacheFactory struct {
	cfg    *config.Config
	logger *zap.Logger
}

// NewCacheFactory creates a new cache factory
func NewCacheFactory(cfg *config.Config, logger *zap.Logger) *CacheFactory {
	return &CacheFactory{
		cfg:    cfg,
		logger: logger,
	}
}

// CreateDocumentCache creates a document cache based on the
// configuration. A disabled cache returns nil; the pipeline treats a
// nil cache as a straight passthrough to the fetcher.
func (f *CacheFactory) CreateDocumentCache() (core.DocumentCache, error) {
	cacheCfg := f.cfg.GetCache()
	if !cacheCfg.Enabled {
		return nil, nil
	}

	switch cacheCfg.Type {
	case "memory":
		return cache.NewMemoryCache(cacheCfg.TTL, f.logger), nil
	case "sqlite":
		if err := os.MkdirAll(filepath.Dir(cacheCfg.SQLitePath), 0755); err != nil {
			return nil, fmt.Errorf("failed to create SQLite directory: %w", err)
		}
		sqliteCache, err := cache.NewSQLiteCache(cacheCfg.SQLitePath, cacheCfg.TTL, f.logger)
		if err != nil {
			return nil, err
		}
		return sqliteCache, nil
	default:
		return nil, fmt.Errorf("unsupported cache type: %s", cacheCfg.Type)
	}
}
