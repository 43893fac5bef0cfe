package userconfig

import (
	"context"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

type cachedStore struct {
	Store
	cache *expirable.LRU[int64, UserConfig]
}

// WithCache fronts store with an expiring LRU. Every update arrives with a
// config lookup, so hot users are served from memory.
func WithCache(store Store, size int, ttl time.Duration) Store {
	if size <= 0 {
		size = 1000
	}
	return &cachedStore{
		Store: store,
		cache: expirable.NewLRU[int64, UserConfig](size, nil, ttl),
	}
}

func (c *cachedStore) Get(ctx context.Context, userID int64) (UserConfig, error) {
	if cfg, ok := c.cache.Get(userID); ok {
		return cfg, nil
	}
	cfg, err := c.Store.Get(ctx, userID)
	if err != nil {
		return UserConfig{}, err
	}
	c.cache.Add(userID, cfg)
	return cfg, nil
}

// Save evicts only after the write lands, so a read racing the write cannot
// put the old row back into the cache.
func (c *cachedStore) Save(ctx context.Context, cfg UserConfig) error {
	if err := c.Store.Save(ctx, cfg); err != nil {
		return err
	}
	c.cache.Remove(cfg.UserID)
	return nil
}
