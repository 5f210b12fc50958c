package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"staybook/pkg/model"

	"github.com/redis/go-redis/v9"
)

const allListingsKey = "listings:all"

// ListingCache holds the full listing set. A miss is (nil, false, nil).
type ListingCache interface {
	GetAll(ctx context.Context) ([]*model.Listing, bool, error)
	SetAll(ctx context.Context, listings []*model.Listing) error
}

type redisListingCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisListingCache(client *redis.Client, ttl time.Duration) ListingCache {
	return &redisListingCache{client: client, ttl: ttl}
}

func (c *redisListingCache) GetAll(ctx context.Context) ([]*model.Listing, bool, error) {
	data, err := c.client.Get(ctx, allListingsKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to read listing cache: %w", err)
	}

	var listings []*model.Listing
	if err := json.Unmarshal(data, &listings); err != nil {
		return nil, false, fmt.Errorf("failed to decode cached listings: %w", err)
	}
	if listings == nil {
		listings = []*model.Listing{}
	}
	return listings, true, nil
}

func (c *redisListingCache) SetAll(ctx context.Context, listings []*model.Listing) error {
	data, err := json.Marshal(listings)
	if err != nil {
		return fmt.Errorf("failed to encode listings: %w", err)
	}
	if err := c.client.Set(ctx, allListingsKey, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to write listing cache: %w", err)
	}
	return nil
}
