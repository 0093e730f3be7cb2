package db

import (
	"context"
	"errors"
	"time"

	"github.com/velora/crm/internal/crm/models"
	"gorm.io/gorm"
)

// IncrementLoginAttempt bumps the TTL-windowed counter for key and returns
// the count inside the current window. An expired window starts over.
func (r *Repository) IncrementLoginAttempt(ctx context.Context, key string, window time.Duration) (int, error) {
	var count int
	err := r.WithTransaction(ctx, func(tx *Repository) error {
		now := time.Now()
		var attempt models.LoginAttempt
		err := tx.db.First(&attempt, "key = ?", key).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			attempt = models.LoginAttempt{Key: key, Count: 1, ExpiresAt: now.Add(window)}
			if err := tx.db.Create(&attempt).Error; err != nil {
				return err
			}
		case err != nil:
			return err
		case now.After(attempt.ExpiresAt):
			attempt.Count = 1
			attempt.ExpiresAt = now.Add(window)
			if err := tx.db.Save(&attempt).Error; err != nil {
				return err
			}
		default:
			attempt.Count++
			if err := tx.db.Save(&attempt).Error; err != nil {
				return err
			}
		}
		count = attempt.Count
		return nil
	})
	return count, err
}

// ResetLoginAttempt clears the counter for key, e.g. after a successful login.
func (r *Repository) ResetLoginAttempt(ctx context.Context, key string) error {
	return r.db.WithContext(ctx).Delete(&models.LoginAttempt{}, "key = ?", key).Error
}
