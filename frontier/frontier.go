// Copyright (C) 2025 sage-x-project
// SPDX-License-Identifier: LGPL-3.0-or-later

// Package frontier implements the Tool Frontier (spec.md §4.8): a
// uniform dispatch surface exposing one named operation per core verb,
// with a pre-dispatch chain (authenticate, resolve agent-of-record,
// rate-limit, validate) and a post-dispatch audit/metrics hook. The
// registry-plus-alias-table shape is grounded on core/protocol/
// selector.go's adapter-selection-by-name pattern in the teacher repo,
// rekeyed here to tool dispatch; the rate-limit stage keys each call
// with ratelimit/middleware.go's PerTokenKeyFunc and chooses between
// ratelimit.TokenBucket and the Redis-backed ratelimit.Distributed
// depending on config.RateLimitConfig.Distributed.
package frontier

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/sage-x-project/agentmail/config"
	"github.com/sage-x-project/agentmail/core"
	"github.com/sage-x-project/agentmail/observability/logging"
	"github.com/sage-x-project/agentmail/observability/metrics"
	adkerrors "github.com/sage-x-project/agentmail/pkg/errors"
	"github.com/sage-x-project/agentmail/pkg/ids"
	"github.com/sage-x-project/agentmail/ratelimit"
	"github.com/sage-x-project/agentmail/store"
)

// Args is the decoded JSON body of one tool call.
type Args map[string]interface{}

// ToolFunc is a canonical tool's typed handler.
type ToolFunc func(ctx context.Context, fr *Frontier, call *Call) (interface{}, error)

// Call carries one in-flight tool invocation through the pre-dispatch
// chain and into its handler.
type Call struct {
	Tool  string
	Token string
	Args  Args

	// AgentID is the agent-of-record the pre-dispatch chain resolved
	// from Token (frontier.go's runChain, between authenticate and
	// rate-limit). Zero when the configured auth mode could not
	// establish one. Handlers must read the caller's own identity
	// through callerAgentID rather than trusting Args directly.
	AgentID ids.AgentID
}

// Frontier wires the Core against the registry, auth, and rate limit
// stages. One Frontier is constructed at process start (design note
// §9: "the only process-wide state...") and shared across every HTTP
// and WebSocket connection.
type Frontier struct {
	Core    *core.Core
	Auth    *Authenticator
	Limiter ratelimit.Limiter
	Logger  logging.Logger
	Metrics *metrics.ToolMetrics

	tools    map[string]tool
	aliases  map[string]string
}

type tool struct {
	name       string
	streamable bool
	required   []string
	fn         ToolFunc
}

// New builds a Frontier with the limiter cfg.RateLimit selects (see
// newLimiter), sized from cfg.RateLimit.PerMinutePerToken.
func New(c *core.Core, cfg *config.Config, logger logging.Logger, m *metrics.ToolMetrics) (*Frontier, error) {
	auth, err := NewAuthenticator(cfg.Auth)
	if err != nil {
		return nil, err
	}

	limiter, err := newLimiter(cfg.RateLimit)
	if err != nil {
		return nil, err
	}

	fr := &Frontier{
		Core: c, Auth: auth, Limiter: limiter, Logger: logger, Metrics: m,
		tools: make(map[string]tool), aliases: make(map[string]string),
	}
	fr.registerAll()
	return fr, nil
}

// newLimiter builds the per-token quota limiter the pre-dispatch chain
// rate-limits against. cfg.RateLimit.Distributed selects a Redis-
// backed ratelimit.Distributed so quota is shared across every
// frontier process pointed at the same Redis instance instead of
// tracked per process; otherwise it falls back to the in-process
// ratelimit.TokenBucket.
func newLimiter(cfg config.RateLimitConfig) (ratelimit.Limiter, error) {
	if !cfg.Distributed {
		return ratelimit.NewTokenBucket(ratelimit.TokenBucketConfig{
			Rate:     float64(cfg.PerMinutePerToken) / 60.0,
			Capacity: cfg.PerMinutePerToken,
			Config:   ratelimit.DefaultConfig(),
		}), nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Redis.Host, cfg.Redis.Port),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	return ratelimit.NewDistributed(ratelimit.DistributedConfig{
		RedisClient: client,
		KeyPrefix:   "agentmail:ratelimit:",
		Limit:       cfg.PerMinutePerToken,
		Window:      time.Minute,
		Algorithm:   ratelimit.AlgorithmSlidingWindow,
		Config:      ratelimit.DefaultConfig(),
	})
}

func (fr *Frontier) register(name string, streamable bool, required []string, fn ToolFunc) {
	fr.tools[name] = tool{name: name, streamable: streamable, required: required, fn: fn}
}

func (fr *Frontier) alias(legacy, canonical string) {
	fr.aliases[legacy] = canonical
}

func (fr *Frontier) resolve(name string) (tool, bool) {
	if canonical, ok := fr.aliases[name]; ok {
		name = canonical
	}
	t, ok := fr.tools[name]
	return t, ok
}

// Dispatch runs the full pre-dispatch chain, invokes the handler, and
// records the post-dispatch audit row and metrics (spec.md §4.8).
func (fr *Frontier) Dispatch(ctx context.Context, token, toolName string, args Args) (interface{}, error) {
	start := time.Now()
	t, ok := fr.resolve(toolName)
	if !ok {
		return nil, adkerrors.New(adkerrors.CategoryValidation, "UNKNOWN_TOOL", "no such tool").WithDetail("tool", toolName)
	}
	// The recipient_names legacy alias expands strictly at this layer,
	// before the canonical handler ever sees the argument shape (design
	// note §9: "the Message Router and controllers never see the
	// legacy shape").
	if t.name == "send_message" {
		expandRecipientNamesAlias(args)
	}

	call := &Call{Tool: t.name, Token: token, Args: args}

	result, err := fr.runChain(ctx, t, call)

	duration := time.Since(start).Seconds()
	success := err == nil
	if fr.Metrics != nil {
		fr.Metrics.RecordCall(t.name, success, duration)
		if !success {
			fr.Metrics.RecordError(t.name, errorCode(err))
		}
	}
	fr.audit(ctx, t.name, token, success, duration, err)
	return result, err
}

func (fr *Frontier) runChain(ctx context.Context, t tool, call *Call) (interface{}, error) {
	if err := fr.Auth.Authenticate(call.Token); err != nil {
		return nil, err
	}
	call.AgentID = fr.Auth.ResolveAgent(call.Token)

	key := ratelimit.PerTokenKeyFunc(ctx, ratelimit.Call{Token: call.Token, Tool: call.Tool})
	if !fr.Limiter.Allow(key) {
		return nil, adkerrors.ErrRateLimited
	}

	if err := validateRequired(call.Args, t.required); err != nil {
		return nil, err
	}

	return t.fn(ctx, fr, call)
}

func (fr *Frontier) audit(ctx context.Context, toolName, token string, success bool, durationSeconds float64, err error) {
	code := ""
	if err != nil {
		code = errorCode(err)
	}
	row := store.AuditRow{
		Tool: toolName, Token: token, Success: success,
		DurationMs: int64(durationSeconds * 1000), ErrorCode: code, CreatedTs: time.Now().Unix(),
	}
	insertErr := fr.Core.Store.WithTx(ctx, func(q *store.Queries) error {
		return q.InsertAudit(ctx, row)
	})
	if insertErr != nil && fr.Logger != nil {
		fr.Logger.Warn(ctx, "failed to write audit row", logging.Error(insertErr))
	}
}

func validateRequired(args Args, required []string) error {
	for _, field := range required {
		if _, ok := args[field]; !ok {
			return adkerrors.ErrMissingField.WithDetail("field", field)
		}
	}
	return nil
}
