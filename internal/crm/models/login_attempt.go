package models

import "time"

// LoginAttempt is a TTL-windowed login counter row, keyed by identity. It
// lives in the relational store so the limiter survives restarts and is
// shared across instances.
type LoginAttempt struct {
	Key       string    `gorm:"primaryKey"`
	Count     int       `gorm:"not null;default:0"`
	ExpiresAt time.Time `gorm:"index;not null"`
}
