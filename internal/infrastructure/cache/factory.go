package cache

import (
	"fmt"

	appcatalog "github.com/storefront/backend/internal/application/catalog"
	"github.com/storefront/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

// TreeCacheFactory creates tree caches based on configuration
type TreeCacheFactory struct {
	provider              string
	redisConfig           config.RedisConfig
	logger                *zap.Logger
	allowInMemoryFallback bool
}

// TreeCacheFactoryOption is a functional option for configuring the factory
type TreeCacheFactoryOption func(*TreeCacheFactory)

// WithLogger sets the logger for the factory
func WithLogger(logger *zap.Logger) TreeCacheFactoryOption {
	return func(f *TreeCacheFactory) {
		f.logger = logger
	}
}

// WithInMemoryFallback controls whether to fall back to the in-memory cache
// when Redis is unavailable. Default is true.
func WithInMemoryFallback(allow bool) TreeCacheFactoryOption {
	return func(f *TreeCacheFactory) {
		f.allowInMemoryFallback = allow
	}
}

// NewTreeCacheFactory creates a new factory
func NewTreeCacheFactory(provider string, redisCfg config.RedisConfig, opts ...TreeCacheFactoryOption) *TreeCacheFactory {
	f := &TreeCacheFactory{
		provider:              provider,
		redisConfig:           redisCfg,
		logger:                zap.NewNop(),
		allowInMemoryFallback: true,
	}

	for _, opt := range opts {
		opt(f)
	}

	return f
}

// CreateTreeCache creates a tree cache for the configured provider.
// When Redis is requested but unavailable, it falls back to the in-memory
// cache unless fallback is disabled.
func (f *TreeCacheFactory) CreateTreeCache() (appcatalog.TreeCache, error) {
	switch f.provider {
	case "memory":
		f.logger.Info("using in-memory category tree cache")
		return NewInMemoryTreeCache(), nil

	case "redis":
		cache, err := NewRedisTreeCache(f.redisConfig)
		if err == nil {
			f.logger.Info("using Redis category tree cache")
			return cache, nil
		}

		if !f.allowInMemoryFallback {
			return nil, fmt.Errorf("Redis required for tree cache but unavailable: %w", err)
		}

		f.logger.Warn("Redis unavailable, falling back to in-memory tree cache. "+
			"Cached trees will not be shared across instances.",
			zap.Error(err),
		)
		return NewInMemoryTreeCache(), nil

	default:
		return nil, fmt.Errorf("unknown tree cache provider %q", f.provider)
	}
}
