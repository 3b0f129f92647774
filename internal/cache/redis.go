package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Client caches the occasion listing payload. The ledger stays
// authoritative; cached entries are dropped whenever a new occasion is
// listed and expire on their own after the configured TTL.
type Client struct {
	client *redis.Client
	ttl    time.Duration
}

type Config struct {
	Addr     string
	Password string
	TTL      time.Duration
}

const occasionsListKey = "occasions:list"

func NewClient(cfg Config) (*Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           0,
		ReadTimeout:  2 * time.Second,
		WriteTimeout: 2 * time.Second,
		DialTimeout:  5 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	ttl := cfg.TTL
	if ttl == 0 {
		ttl = time.Minute
	}

	return &Client{client: rdb, ttl: ttl}, nil
}

// GetOccasionsListRaw returns the cached listing payload as raw JSON, so the
// handler can serve it without re-marshaling.
func (c *Client) GetOccasionsListRaw(ctx context.Context) ([]byte, error) {
	data, err := c.client.Get(ctx, occasionsListKey).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, fmt.Errorf("occasions list not cached")
		}
		return nil, fmt.Errorf("cache lookup error: %w", err)
	}
	return data, nil
}

// SetOccasionsList stores the listing payload. Errors are returned for the
// caller to log; a failed cache write never fails the request.
func (c *Client) SetOccasionsList(ctx context.Context, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal occasions list: %w", err)
	}
	return c.client.Set(ctx, occasionsListKey, data, c.ttl).Err()
}

// InvalidateOccasionsList drops the cached listing after a new occasion is
// listed.
func (c *Client) InvalidateOccasionsList(ctx context.Context) error {
	return c.client.Del(ctx, occasionsListKey).Err()
}

func (c *Client) Close() error {
	return c.client.Close()
}
