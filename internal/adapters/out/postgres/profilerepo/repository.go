package profilerepo

import (
	"context"
	"errors"

	"restring/internal/core/domain/model/customer"
	"restring/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormProfileRepository implements ProfileRepository using GORM.
type GormProfileRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id string, aggregate any)
}

// NewGormProfileRepository creates a new GORM profile repository.
func NewGormProfileRepository(db *gorm.DB, tracker aggregateTracker) *GormProfileRepository {
	return &GormProfileRepository{
		db:      db,
		tracker: tracker,
	}
}

// Get retrieves a profile by customer email.
func (r *GormProfileRepository) Get(ctx context.Context, email string) (*customer.Profile, error) {
	var dto ProfileDTO
	if err := r.db.WithContext(ctx).First(&dto, "email = ?", email).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("customer profile", email)
		}
		return nil, err
	}

	return toDomain(dto)
}

// Upsert inserts or replaces the profile row. The recompute is idempotent, so
// last write wins is the right conflict policy.
func (r *GormProfileRepository) Upsert(ctx context.Context, profile *customer.Profile) error {
	if err := profile.Validate(); err != nil {
		return err
	}

	dto := fromDomain(profile)
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "email"}},
			UpdateAll: true,
		}).
		Create(&dto).Error
	if err != nil {
		return err
	}

	r.tracker.TrackAggregate(profile.Email(), profile)
	return nil
}
