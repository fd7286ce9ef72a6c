package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// IdempotencyRecord is what gets stored under an Idempotency-Key. A pending
// record marks a request that is still being handled.
type IdempotencyRecord struct {
	RequestHash string `json:"request_hash"`
	Pending     bool   `json:"pending,omitempty"`
	Status      int    `json:"status,omitempty"`
	ContentType string `json:"content_type,omitempty"`
	Body        []byte `json:"body,omitempty"`
}

// IdempotencyStore is the storage the idempotency middleware runs on.
type IdempotencyStore interface {
	// Reserve claims key for a new request. When the key is already taken it
	// returns the stored record and false.
	Reserve(ctx context.Context, key, requestHash string, ttl time.Duration) (*IdempotencyRecord, bool, error)
	Complete(ctx context.Context, key string, record IdempotencyRecord, ttl time.Duration) error
	Release(ctx context.Context, key string) error
}

var _ IdempotencyStore = (*Client)(nil)

// IdempotencyKey namespaces a client key by the endpoint it was sent to.
func IdempotencyKey(scope, id string) string {
	return key("idempotency", scope, id)
}

func (c *Client) Reserve(ctx context.Context, key, requestHash string, ttl time.Duration) (*IdempotencyRecord, bool, error) {
	if c == nil || c.cmd == nil {
		return nil, false, errNotInitialized
	}

	pending, err := json.Marshal(IdempotencyRecord{RequestHash: requestHash, Pending: true})
	if err != nil {
		return nil, false, err
	}
	claimed, err := c.cmd.SetNX(ctx, key, pending, ttl).Result()
	if err != nil {
		return nil, false, fmt.Errorf("reserve idempotency key: %w", err)
	}
	if claimed {
		return nil, true, nil
	}

	raw, err := c.cmd.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		// expired between SETNX and GET
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("load idempotency record: %w", err)
	}

	var record IdempotencyRecord
	if err := json.Unmarshal(raw, &record); err != nil {
		return nil, false, fmt.Errorf("decode idempotency record: %w", err)
	}
	return &record, false, nil
}

// Complete replaces the pending marker with the final response.
func (c *Client) Complete(ctx context.Context, key string, record IdempotencyRecord, ttl time.Duration) error {
	if c == nil || c.cmd == nil {
		return errNotInitialized
	}
	record.Pending = false
	payload, err := json.Marshal(record)
	if err != nil {
		return err
	}
	if err := c.cmd.Set(ctx, key, payload, ttl).Err(); err != nil {
		return fmt.Errorf("store idempotency record: %w", err)
	}
	return nil
}

// Release drops a reservation so the client can retry with the same key.
func (c *Client) Release(ctx context.Context, key string) error {
	if c == nil || c.cmd == nil {
		return errNotInitialized
	}
	if err := c.cmd.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("release idempotency key: %w", err)
	}
	return nil
}
