// Copyright (C) 2025 sage-x-project
// SPDX-License-Identifier: LGPL-3.0-or-later

package ratelimit

import (
	"context"
	"fmt"
)

// Call is the minimal shape the Tool Frontier's middleware chain needs
// to rate-limit a dispatch: the caller's auth token and the tool name
// being invoked (spec.md §4.8 "rate-limit (configurable per-token quota)").
type Call struct {
	Token string
	Tool  string
}

// Handler is the tool-dispatch handler function type.
type Handler func(ctx context.Context, call Call) (interface{}, error)

// Middleware is the middleware function type.
type Middleware func(Handler) Handler

// MiddlewareConfig holds middleware configuration.
type MiddlewareConfig struct {
	// Limiter is the rate limiter to use.
	Limiter Limiter

	// KeyFunc generates the rate limit key from the call; defaults to
	// per-token (spec.md §6 "rate_limit_per_minute_per_token").
	KeyFunc func(ctx context.Context, call Call) string

	// OnRateLimitExceeded is called when the rate limit is exceeded.
	OnRateLimitExceeded func(ctx context.Context, call Call, key string) (interface{}, error)
}

// DefaultMiddlewareConfig returns the default per-token middleware configuration.
func DefaultMiddlewareConfig() MiddlewareConfig {
	return MiddlewareConfig{
		KeyFunc: PerTokenKeyFunc,
		OnRateLimitExceeded: func(ctx context.Context, call Call, key string) (interface{}, error) {
			return nil, fmt.Errorf("rate limit exceeded for key: %s", key)
		},
	}
}

// NewMiddleware creates a new rate limiting middleware.
func NewMiddleware(config MiddlewareConfig) Middleware {
	if config.KeyFunc == nil {
		config = DefaultMiddlewareConfig()
	}

	return func(next Handler) Handler {
		return func(ctx context.Context, call Call) (interface{}, error) {
			key := config.KeyFunc(ctx, call)

			if !config.Limiter.Allow(key) {
				if config.OnRateLimitExceeded != nil {
					return config.OnRateLimitExceeded(ctx, call, key)
				}
				return nil, fmt.Errorf("rate limit exceeded")
			}

			return next(ctx, call)
		}
	}
}

// NewTokenBucketMiddleware creates a token bucket rate limiting middleware.
func NewTokenBucketMiddleware(config TokenBucketConfig, keyFunc func(context.Context, Call) string) Middleware {
	limiter := NewTokenBucket(config)

	middlewareConfig := DefaultMiddlewareConfig()
	middlewareConfig.Limiter = limiter
	if keyFunc != nil {
		middlewareConfig.KeyFunc = keyFunc
	}

	return NewMiddleware(middlewareConfig)
}

// NewSlidingWindowMiddleware creates a sliding window rate limiting middleware.
func NewSlidingWindowMiddleware(config SlidingWindowConfig, keyFunc func(context.Context, Call) string) Middleware {
	limiter := NewSlidingWindow(config)

	middlewareConfig := DefaultMiddlewareConfig()
	middlewareConfig.Limiter = limiter
	if keyFunc != nil {
		middlewareConfig.KeyFunc = keyFunc
	}

	return NewMiddleware(middlewareConfig)
}

// NewDistributedMiddleware creates a Redis-backed rate limiting
// middleware for quota shared across processes. The Tool Frontier does
// not use it; it builds its Redis limiter with NewDistributed directly.
func NewDistributedMiddleware(config DistributedConfig, keyFunc func(context.Context, Call) string) (Middleware, error) {
	limiter, err := NewDistributed(config)
	if err != nil {
		return nil, err
	}

	middlewareConfig := DefaultMiddlewareConfig()
	middlewareConfig.Limiter = limiter
	if keyFunc != nil {
		middlewareConfig.KeyFunc = keyFunc
	}

	return NewMiddleware(middlewareConfig), nil
}

// PerTokenKeyFunc generates a key from the caller's auth token
// (spec.md §6: "rate_limit_per_minute_per_token").
func PerTokenKeyFunc(ctx context.Context, call Call) string {
	if call.Token == "" {
		return "anonymous"
	}
	return fmt.Sprintf("token:%s", call.Token)
}

// PerToolKeyFunc generates a key scoped to token+tool, for tools that
// need their own quota independent of a caller's general budget.
func PerToolKeyFunc(ctx context.Context, call Call) string {
	return fmt.Sprintf("token:%s:tool:%s", call.Token, call.Tool)
}

// GlobalKeyFunc generates a global key (single rate limit for all callers).
func GlobalKeyFunc(ctx context.Context, call Call) string {
	return "global"
}
