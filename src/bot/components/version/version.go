// Package version resolves which API version an installation's site runs.
package version

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"
	"time"

	"github.com/nameless-community/nameless-suggestions/src/nameless"
	"github.com/redis/go-redis/v9"
)

const cacheTTL = 24 * time.Hour

// ErrNoCredentials means the installation has no API credentials configured.
// Without them the site cannot be probed and nothing can be synchronized.
var ErrNoCredentials = errors.New("version: no api credentials configured")

// Cache is a keyed store with per-entry expiry. Get returns ok=false on a
// miss.
type Cache interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
}

// CredentialSource yields API credentials per guild, nil when unconfigured.
type CredentialSource interface {
	Credentials(guildID string) (*nameless.Credentials, error)
}

type Service struct {
	cache    Cache
	creds    CredentialSource
	registry *nameless.Registry
}

func NewService(cache Cache, creds CredentialSource, registry *nameless.Registry) *Service {
	return &Service{cache: cache, creds: creds, registry: registry}
}

// Resolve returns the installation's site version, probing the site on a
// cache miss. Concurrent misses may probe twice; the writes are idempotent.
func (s *Service) Resolve(ctx context.Context, guildID string) (int, error) {
	key := cacheKey(guildID)

	cached, ok, err := s.cache.Get(ctx, key)
	if err != nil {
		log.Printf("version: cache read for guild %s: %v", guildID, err)
	} else if ok {
		if v, err := strconv.Atoi(cached); err == nil {
			return v, nil
		}
	}

	v, err := s.probe(ctx, guildID)
	if err != nil {
		return 0, err
	}

	if err := s.cache.Set(ctx, key, strconv.Itoa(v), cacheTTL); err != nil {
		log.Printf("version: cache write for guild %s: %v", guildID, err)
	}
	return v, nil
}

// probe asks the site for its version using the newest adapter. The info
// endpoint shape is stable across the versions we support.
func (s *Service) probe(ctx context.Context, guildID string) (int, error) {
	creds, err := s.creds.Credentials(guildID)
	if err != nil {
		return 0, err
	}
	if creds == nil {
		return 0, ErrNoCredentials
	}

	info, err := s.registry.Latest().WebsiteInfo(ctx, *creds)
	if err != nil {
		return 0, fmt.Errorf("probe site info for guild %s: %w", guildID, err)
	}

	v, err := nameless.ParseVersion(info.NamelessVersion)
	if err != nil {
		return 0, fmt.Errorf("parse site version %q: %w", info.NamelessVersion, err)
	}
	return v, nil
}

func cacheKey(guildID string) string {
	return "suggestionapi:" + guildID + ":version"
}

// RedisCache backs the version cache with redis.
type RedisCache struct {
	rdb *redis.Client
}

func NewRedisCache(rdb *redis.Client) *RedisCache {
	return &RedisCache{rdb: rdb}
}

func (c *RedisCache) Get(ctx context.Context, key string) (string, bool, error) {
	v, err := c.rdb.Get(ctx, key).Result()
	if err == redis.Nil {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return v, true, nil
}

func (c *RedisCache) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	return c.rdb.Set(ctx, key, value, ttl).Err()
}
