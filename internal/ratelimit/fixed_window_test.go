package ratelimit

import (
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
)

func TestFixedWindowLimiterRedis(t *testing.T) {
	redis := miniredis.RunT(t)
	limiter, err := NewRedisFixedWindowLimiter(redis.Addr(), "", "test:ratelimit", 2, time.Second)
	if err != nil {
		t.Fatalf("new redis limiter: %v", err)
	}
	if !limiter.Allow("chat-1") {
		t.Fatalf("first update should pass")
	}
	if !limiter.Allow("chat-1") {
		t.Fatalf("second update should pass")
	}
	if limiter.Allow("chat-1") {
		t.Fatalf("third update should be blocked")
	}
	if !limiter.Allow("chat-2") {
		t.Fatalf("other chat should have its own window")
	}
}

func TestFixedWindowLimiterRedisFailOpen(t *testing.T) {
	redis := miniredis.RunT(t)
	limiter, err := NewRedisFixedWindowLimiter(redis.Addr(), "", "test:ratelimit", 1, time.Second)
	if err != nil {
		t.Fatalf("new redis limiter: %v", err)
	}
	redis.Close()
	if !limiter.Allow("chat-1") {
		t.Fatalf("limiter should fail open on redis errors")
	}
}

func TestFixedWindowLimiterNilAllowsAll(t *testing.T) {
	var limiter *FixedWindowLimiter
	if !limiter.Allow("chat-1") {
		t.Fatalf("nil limiter should allow everything")
	}
}

func TestFixedWindowLimiterRequiresRedisAddr(t *testing.T) {
	limiter, err := NewRedisFixedWindowLimiter("", "", "test:ratelimit", 1, time.Second)
	if err == nil || limiter != nil {
		t.Fatalf("expected constructor error for empty redis addr")
	}
}
