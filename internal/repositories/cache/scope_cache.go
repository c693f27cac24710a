// Package cache keeps resolved scopes in redis so the join code lookup on
// every request does not hit the database.
package cache

import (
	"context"
	"errors"
	"time"

	"github.com/SscSPs/claims_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/claims_ledger/internal/core/ports/repositories"
	"github.com/go-redis/cache/v9"
	"github.com/redis/go-redis/v9"
)

const keyPrefix = "claims_ledger:scope:"

// RedisScopeCache implements portsrepo.ScopeCache on go-redis/cache.
type RedisScopeCache struct {
	cache *cache.Cache
	ttl   time.Duration
}

var _ portsrepo.ScopeCache = (*RedisScopeCache)(nil)

// NewRedisScopeCache builds the cache. localSize > 0 adds an in-process
// TinyLFU layer in front of redis holding entries for about localTTL.
//
// Delete only clears the local tier of the instance that calls it. Other
// instances keep serving their local copy of a deactivated scope until it
// expires, so localTTL is the staleness window for deactivation and should
// stay short.
func NewRedisScopeCache(client *redis.Client, ttl time.Duration, localSize int, localTTL time.Duration) *RedisScopeCache {
	opts := &cache.Options{Redis: client}
	if localSize > 0 && localTTL > 0 {
		opts.LocalCache = cache.NewTinyLFU(localSize, localTTL)
	}
	return &RedisScopeCache{cache: cache.New(opts), ttl: ttl}
}

func (c *RedisScopeCache) Get(ctx context.Context, joinCode string) (*domain.Scope, bool, error) {
	var scope domain.Scope
	err := c.cache.Get(ctx, keyPrefix+joinCode, &scope)
	if errors.Is(err, cache.ErrCacheMiss) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return &scope, true, nil
}

func (c *RedisScopeCache) Set(ctx context.Context, scope *domain.Scope) error {
	return c.cache.Set(&cache.Item{
		Ctx:   ctx,
		Key:   keyPrefix + scope.JoinCode,
		Value: scope,
		TTL:   c.ttl,
	})
}

func (c *RedisScopeCache) Delete(ctx context.Context, joinCode string) error {
	err := c.cache.Delete(ctx, keyPrefix+joinCode)
	if errors.Is(err, cache.ErrCacheMiss) {
		return nil
	}
	return err
}
