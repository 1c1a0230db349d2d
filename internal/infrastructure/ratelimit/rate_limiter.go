package ratelimit

import (
	"context"
	"sync"
	"time"
)

const (
	ActionSendCode   = "send_code"
	ActionStartLogin = "start_login"
	ActionAuth       = "auth"
)

// TokenBucket holds up to maxTokens and regains refillRate tokens every refillTime.
type TokenBucket struct {
	tokens     int
	maxTokens  int
	refillRate int
	refillTime time.Duration
	lastRefill time.Time
	lastUsed   time.Time
	mutex      sync.Mutex
}

type bucketConfig struct {
	maxTokens  int
	refillRate int
	refillTime time.Duration
}

var actionLimits = map[string]bucketConfig{
	// 3 SMS per phone number, then one more every 10 minutes
	ActionSendCode:   {maxTokens: 3, refillRate: 1, refillTime: 10 * time.Minute},
	ActionStartLogin: {maxTokens: 10, refillRate: 1, refillTime: time.Minute},
	ActionAuth:       {maxTokens: 30, refillRate: 1, refillTime: 2 * time.Second},
}

var defaultLimit = bucketConfig{maxTokens: 20, refillRate: 1, refillTime: 3 * time.Second}

// RateLimiter keeps one bucket per key and action.
type RateLimiter struct {
	buckets map[string]*TokenBucket
	mutex   sync.RWMutex
}

func NewRateLimiter() *RateLimiter {
	return &RateLimiter{
		buckets: make(map[string]*TokenBucket),
	}
}

func NewTokenBucket(maxTokens, refillRate int, refillTime time.Duration) *TokenBucket {
	now := time.Now()
	return &TokenBucket{
		tokens:     maxTokens,
		maxTokens:  maxTokens,
		refillRate: refillRate,
		refillTime: refillTime,
		lastRefill: now,
		lastUsed:   now,
	}
}

// Allow consumes a token if one is available; otherwise it returns how long
// until the next refill.
func (tb *TokenBucket) Allow() (bool, time.Duration) {
	tb.mutex.Lock()
	defer tb.mutex.Unlock()

	now := time.Now()
	tb.lastUsed = now

	refills := int(now.Sub(tb.lastRefill) / tb.refillTime)
	if refills > 0 {
		tb.tokens += refills * tb.refillRate
		if tb.tokens > tb.maxTokens {
			tb.tokens = tb.maxTokens
		}
		tb.lastRefill = tb.lastRefill.Add(time.Duration(refills) * tb.refillTime)
	}

	if tb.tokens > 0 {
		tb.tokens--
		return true, 0
	}

	return false, tb.lastRefill.Add(tb.refillTime).Sub(now)
}

func (tb *TokenBucket) idleSince() time.Time {
	tb.mutex.Lock()
	defer tb.mutex.Unlock()
	return tb.lastUsed
}

func (rl *RateLimiter) Allow(key, action string) (bool, time.Duration) {
	bucketKey := key + ":" + action

	rl.mutex.RLock()
	bucket, exists := rl.buckets[bucketKey]
	rl.mutex.RUnlock()

	if !exists {
		rl.mutex.Lock()
		if bucket, exists = rl.buckets[bucketKey]; !exists {
			limit, ok := actionLimits[action]
			if !ok {
				limit = defaultLimit
			}
			bucket = NewTokenBucket(limit.maxTokens, limit.refillRate, limit.refillTime)
			rl.buckets[bucketKey] = bucket
		}
		rl.mutex.Unlock()
	}

	return bucket.Allow()
}

// Cleanup drops buckets idle for longer than maxIdle.
func (rl *RateLimiter) Cleanup(maxIdle time.Duration) {
	rl.mutex.Lock()
	defer rl.mutex.Unlock()

	now := time.Now()
	for key, bucket := range rl.buckets {
		if now.Sub(bucket.idleSince()) > maxIdle {
			delete(rl.buckets, key)
		}
	}
}

func (rl *RateLimiter) Len() int {
	rl.mutex.RLock()
	defer rl.mutex.RUnlock()
	return len(rl.buckets)
}

// StartCleanupRoutine runs Cleanup every 30 minutes until ctx is done.
func (rl *RateLimiter) StartCleanupRoutine(ctx context.Context) {
	go func() {
		ticker := time.NewTicker(30 * time.Minute)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				rl.Cleanup(time.Hour)
			case <-ctx.Done():
				return
			}
		}
	}()
}
