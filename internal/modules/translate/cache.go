package translate

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// TieredCache stores translation entries in hot, warm and cold Redis
// hash tiers. Each tier key is a hash whose fields are the literal word
// strings; the whole key expires on the tier's TTL.
type TieredCache struct {
	rdb *redis.Client
}

// NewTieredCache creates a cache over an injected Redis client.
func NewTieredCache(rdb *redis.Client) *TieredCache {
	return &TieredCache{rdb: rdb}
}

// Get reads one tier. Returns (nil, nil) when the tier has no entry.
func (c *TieredCache) Get(ctx context.Context, tier Tier, word, srcLang, targetLang string) (*Entry, error) {
	val, err := c.rdb.HGet(ctx, BuildKey(tier, word, srcLang, targetLang), word).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var e Entry
	if err := json.Unmarshal([]byte(val), &e); err != nil {
		return nil, fmt.Errorf("decode %s tier entry: %w", tier, err)
	}
	return &e, nil
}

// Lookup cascades hot → warm → cold and returns the first hit together
// with the tier that served it. A tier error counts as a miss for the
// cascade; the first error is returned alongside a total miss so the
// caller can log it.
func (c *TieredCache) Lookup(ctx context.Context, word, srcLang, targetLang string) (*Entry, Tier, error) {
	var firstErr error
	for _, tier := range tierOrder {
		e, err := c.Get(ctx, tier, word, srcLang, targetLang)
		if err != nil {
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		if e != nil {
			return e, tier, nil
		}
	}
	return nil, "", firstErr
}

// SetAll writes the entry into all three tiers in one pipelined
// transaction, setting each tier's expiration in the same batch so no
// tier is ever populated without a TTL.
func (c *TieredCache) SetAll(ctx context.Context, word, srcLang, targetLang string, e *Entry) error {
	payload, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("encode cache entry: %w", err)
	}

	pipe := c.rdb.TxPipeline()
	for _, tier := range tierOrder {
		key := BuildKey(tier, word, srcLang, targetLang)
		pipe.HSet(ctx, key, word, payload)
		pipe.Expire(ctx, key, tierTTL[tier])
	}
	_, err = pipe.Exec(ctx)
	return err
}
