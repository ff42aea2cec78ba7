package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"itsupport/internal/app/config"
	"itsupport/internal/app/form"

	"github.com/go-redis/redis/v8"
)

const (
	jwtPrefix   = "jwt:blacklist:"
	draftPrefix = "request:draft:"
)

var ErrDraftNotFound = errors.New("draft not found or expired")

// Client wraps the Redis connection used for the JWT blacklist and the form
// draft store.
type Client struct {
	client   *redis.Client
	draftTTL time.Duration
}

func New(ctx context.Context, cfg config.RedisConfig, draftTTL time.Duration) (*Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:        fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Username:    cfg.User,
		Password:    cfg.Password,
		DialTimeout: cfg.DialTimeout,
		ReadTimeout: cfg.ReadTimeout,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &Client{client: client, draftTTL: draftTTL}, nil
}

func (c *Client) Close() error {
	return c.client.Close()
}

// WriteJWTToBlacklist invalidates a token until its natural expiry.
func (c *Client) WriteJWTToBlacklist(ctx context.Context, jwtStr string, ttl time.Duration) error {
	return c.client.Set(ctx, jwtPrefix+jwtStr, true, ttl).Err()
}

// CheckJWTInBlacklist returns nil when the token is blacklisted and
// redis.Nil when it is not.
func (c *Client) CheckJWTInBlacklist(ctx context.Context, jwtStr string) error {
	return c.client.Get(ctx, jwtPrefix+jwtStr).Err()
}

// SaveDraft stores the draft as JSON and refreshes its TTL, so a draft
// expires only after a period of inactivity.
func (c *Client) SaveDraft(ctx context.Context, d *form.Draft) error {
	data, err := json.Marshal(d)
	if err != nil {
		return fmt.Errorf("failed to encode draft: %w", err)
	}
	return c.client.Set(ctx, draftPrefix+d.ID, data, c.draftTTL).Err()
}

func (c *Client) GetDraft(ctx context.Context, id string) (*form.Draft, error) {
	data, err := c.client.Get(ctx, draftPrefix+id).Bytes()
	if err == redis.Nil {
		return nil, ErrDraftNotFound
	}
	if err != nil {
		return nil, err
	}

	var d form.Draft
	if err := json.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("failed to decode draft: %w", err)
	}
	return &d, nil
}

func (c *Client) DeleteDraft(ctx context.Context, id string) error {
	return c.client.Del(ctx, draftPrefix+id).Err()
}
