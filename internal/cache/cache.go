// Package cache is a small key/value store used for revoked sessions and
// food detail lookups. Redis backs it in production; Memory serves tests and
// single-instance deployments without REDIS_ADDR.
package cache

import (
	"context"
	"errors"
	"time"
)

// ErrMiss is returned by Get when the key is absent or expired.
var ErrMiss = errors.New("cache miss")

// Client defines the operations the services rely on.
type Client interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Del(ctx context.Context, key string) error
	Ping(ctx context.Context) error
}
