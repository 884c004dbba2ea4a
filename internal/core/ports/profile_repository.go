package ports

import (
	"context"

	"restring/internal/core/domain/model/customer"
)

// ProfileRepository defines the persistence contract for customer analytics
// profiles. Profiles are derived state owned by the analytics recompute, so
// the write path is an upsert.
type ProfileRepository interface {
	// Get retrieves a profile by customer email.
	Get(ctx context.Context, email string) (*customer.Profile, error)

	// Upsert inserts or replaces a profile.
	Upsert(ctx context.Context, profile *customer.Profile) error
}
