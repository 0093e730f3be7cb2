package auth

import (
	"context"
	"fmt"
	"time"
)

// AttemptStore is an external, shared, TTL-based counter keyed by identity.
// Keeping it behind an interface (instead of a module-level map) means the
// counter survives restarts and works across instances when backed by the
// relational store.
type AttemptStore interface {
	IncrementLoginAttempt(ctx context.Context, key string, window time.Duration) (int, error)
	ResetLoginAttempt(ctx context.Context, key string) error
}

// LoginLimiter throttles login attempts per identity within a rolling
// window.
type LoginLimiter struct {
	store       AttemptStore
	maxAttempts int
	window      time.Duration
}

func NewLoginLimiter(store AttemptStore, maxAttempts int, window time.Duration) *LoginLimiter {
	return &LoginLimiter{
		store:       store,
		maxAttempts: maxAttempts,
		window:      window,
	}
}

// Allow records one attempt for key and reports whether it is still within
// the limit. When the store is unreachable the attempt is allowed; login
// availability wins over throttling.
func (l *LoginLimiter) Allow(ctx context.Context, key string) (bool, error) {
	count, err := l.store.IncrementLoginAttempt(ctx, key, l.window)
	if err != nil {
		return true, fmt.Errorf("attempt store: %w", err)
	}
	return count <= l.maxAttempts, nil
}

// Reset clears the counter for key after a successful login.
func (l *LoginLimiter) Reset(ctx context.Context, key string) error {
	return l.store.ResetLoginAttempt(ctx, key)
}
