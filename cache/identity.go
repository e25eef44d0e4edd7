package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"HospitalHub/models"

	"github.com/redis/go-redis/v9"
)

const IdentityKeyPrefix = "IDENTITY:"

// IdentityCache holds resolved identities between requests. Every account
// mutation must call Invalidate so a cached identity never outlives its record.
type IdentityCache interface {
	Get(ctx context.Context, kind models.AccountKind, id string) (models.Identity, bool, error)
	Set(ctx context.Context, identity models.Identity) error
	Invalidate(ctx context.Context, kind models.AccountKind, id string) error
}

type RedisIdentityCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisIdentityCache(client *redis.Client, ttl time.Duration) *RedisIdentityCache {
	return &RedisIdentityCache{client: client, ttl: ttl}
}

func IdentityKey(kind models.AccountKind, id string) string {
	return IdentityKeyPrefix + string(kind) + ":" + id
}

func (c *RedisIdentityCache) Get(ctx context.Context, kind models.AccountKind, id string) (models.Identity, bool, error) {
	raw, err := c.client.Get(ctx, IdentityKey(kind, id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return models.Identity{}, false, nil
	}
	if err != nil {
		return models.Identity{}, false, fmt.Errorf("get identity cache: %w", err)
	}
	var identity models.Identity
	if err := json.Unmarshal(raw, &identity); err != nil {
		return models.Identity{}, false, fmt.Errorf("decode identity cache: %w", err)
	}
	return identity, true, nil
}

func (c *RedisIdentityCache) Set(ctx context.Context, identity models.Identity) error {
	raw, err := json.Marshal(identity)
	if err != nil {
		return fmt.Errorf("encode identity cache: %w", err)
	}
	return c.client.Set(ctx, IdentityKey(identity.Kind, identity.ID), raw, c.ttl).Err()
}

func (c *RedisIdentityCache) Invalidate(ctx context.Context, kind models.AccountKind, id string) error {
	return c.client.Del(ctx, IdentityKey(kind, id)).Err()
}

// NoopIdentityCache is used when redis is not configured.
type NoopIdentityCache struct{}

func (NoopIdentityCache) Get(context.Context, models.AccountKind, string) (models.Identity, bool, error) {
	return models.Identity{}, false, nil
}

func (NoopIdentityCache) Set(context.Context, models.Identity) error { return nil }

func (NoopIdentityCache) Invalidate(context.Context, models.AccountKind, string) error { return nil }
