// Package deliverylogrepo persists the notification dedupe ledger. One row
// per dedupe key; the dispatcher checks the key before sending and records it
// after a successful send.
package deliverylogrepo

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// DeliveryDTO is one recorded notification send.
type DeliveryDTO struct {
	Key    string `gorm:"primaryKey"`
	SentAt time.Time
}

// TableName overrides GORM's default naming to use "notification_deliveries".
func (DeliveryDTO) TableName() string {
	return "notification_deliveries"
}

// GormDeliveryLog implements the DeliveryLog port using GORM. It runs outside
// the command transactions: a recorded send must survive even when a later
// step of the calling operation fails.
type GormDeliveryLog struct {
	db *gorm.DB
}

// NewGormDeliveryLog creates a new GORM delivery log.
func NewGormDeliveryLog(db *gorm.DB) *GormDeliveryLog {
	return &GormDeliveryLog{db: db}
}

// AlreadySent reports whether the key was recorded.
func (r *GormDeliveryLog) AlreadySent(ctx context.Context, key string) (bool, error) {
	var dto DeliveryDTO
	err := r.db.WithContext(ctx).First(&dto, "key = ?", key).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	return true, nil
}

// MarkSent records the key. Re-recording an existing key is a no-op, keeping
// retries idempotent.
func (r *GormDeliveryLog) MarkSent(ctx context.Context, key string, at time.Time) error {
	dto := DeliveryDTO{Key: key, SentAt: at}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&dto).Error
}
