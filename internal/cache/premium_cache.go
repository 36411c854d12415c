package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/DiasNurdicanov/63990-six-cities-5/internal/models"
)

const (
	versionKey = "offers:premium:version"
	defaultTTL = 5 * time.Minute
)

// PremiumCache keeps premium-offer lists in Redis. Entries are namespaced by a
// version counter, so Invalidate drops them all with a single INCR.
type PremiumCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewPremiumCache(rdb *redis.Client, ttl time.Duration) *PremiumCache {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &PremiumCache{rdb: rdb, ttl: ttl}
}

func premiumKey(version int64, city models.City, count int) string {
	return fmt.Sprintf("offers:premium:v%d:%s:%d", version, strings.ToLower(string(city)), count)
}

func (c *PremiumCache) version(ctx context.Context) (int64, error) {
	v, err := c.rdb.Get(ctx, versionKey).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return v, err
}

// GetPremium also returns the namespace version it read. A miss must be filled
// with SetPremium under that version, so a fill racing an Invalidate lands in
// the retired namespace instead of the live one.
func (c *PremiumCache) GetPremium(ctx context.Context, city models.City, count int) ([]models.Offer, int64, bool, error) {
	v, err := c.version(ctx)
	if err != nil {
		return nil, 0, false, err
	}
	raw, err := c.rdb.Get(ctx, premiumKey(v, city, count)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, v, false, nil
	}
	if err != nil {
		return nil, v, false, err
	}

	var offers []models.Offer
	if err := json.Unmarshal(raw, &offers); err != nil {
		return nil, v, false, fmt.Errorf("decode cached offers: %w", err)
	}
	return offers, v, true, nil
}

func (c *PremiumCache) SetPremium(ctx context.Context, version int64, city models.City, count int, offers []models.Offer) error {
	raw, err := json.Marshal(offers)
	if err != nil {
		return fmt.Errorf("encode offers: %w", err)
	}
	return c.rdb.Set(ctx, premiumKey(version, city, count), raw, c.ttl).Err()
}

// Invalidate bumps the version; stale entries expire on their TTL.
func (c *PremiumCache) Invalidate(ctx context.Context) error {
	return c.rdb.Incr(ctx, versionKey).Err()
}
