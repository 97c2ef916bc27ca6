package ratelimit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAllowBurstThenDeny(t *testing.T) {
	rl := NewRateLimiterWithPolicies(map[string]Policy{
		"test": {Every: time.Minute, Burst: 2},
	})
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	rl.now = func() time.Time { return now }

	ok, _ := rl.Allow("u1", "test")
	assert.True(t, ok)
	ok, _ = rl.Allow("u1", "test")
	assert.True(t, ok)

	ok, wait := rl.Allow("u1", "test")
	assert.False(t, ok)
	assert.InDelta(t, time.Minute.Seconds(), wait.Seconds(), 1)

	ok, _ = rl.Allow("u2", "test")
	assert.True(t, ok, "buckets are per user")

	now = now.Add(time.Minute)
	ok, _ = rl.Allow("u1", "test")
	assert.True(t, ok, "token refilled")
}

func TestDeniedRequestDoesNotConsume(t *testing.T) {
	rl := NewRateLimiterWithPolicies(map[string]Policy{
		"test": {Every: time.Minute, Burst: 1},
	})
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	rl.now = func() time.Time { return now }

	ok, _ := rl.Allow("u1", "test")
	assert.True(t, ok)
	for i := 0; i < 5; i++ {
		ok, _ = rl.Allow("u1", "test")
		assert.False(t, ok)
	}

	now = now.Add(time.Minute)
	ok, _ = rl.Allow("u1", "test")
	assert.True(t, ok)
}

func TestCleanupDropsIdleBuckets(t *testing.T) {
	rl := NewRateLimiter()
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	rl.now = func() time.Time { return now }

	rl.Allow("u1", ActionIssueCredential)
	now = now.Add(2 * time.Hour)
	rl.Allow("u2", ActionIssueCredential)
	rl.Cleanup()

	assert.Len(t, rl.buckets, 1)
	_, ok := rl.buckets["u2:"+ActionIssueCredential]
	assert.True(t, ok)
}
