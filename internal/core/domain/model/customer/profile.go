// Package customer holds the per-customer analytics aggregate. Profiles are
// derived state: every statistic on them is recomputed wholesale from order
// history by the analytics module, never hand-edited. The tag set is the one
// exception, adjustable by the surrounding admin tooling.
package customer

import (
	"errors"
	"strings"
	"time"

	"restring/internal/pkg/errs"
	"restring/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

// ErrProfileIsNotConstructed is returned when a Profile was not created
// through NewProfile or RestoreProfile.
var ErrProfileIsNotConstructed = errors.New("Profile must be created via NewProfile or RestoreProfile")

// Tier is the discrete spending classification derived from lifetime value.
type Tier string

const (
	TierBronze   Tier = "bronze"
	TierSilver   Tier = "silver"
	TierGold     Tier = "gold"
	TierPlatinum Tier = "platinum"
)

// MemberTag marks customers with an active membership.
const MemberTag = "member"

// Stats is the full set of derived statistics produced by one analytics
// recompute. Applying the same Stats twice is a no-op, which makes the
// recompute safe to re-run at any time.
type Stats struct {
	TotalOrders      int
	TotalSpend       decimal.Decimal
	LifetimeValue    decimal.Decimal
	AvgIntervalDays  float64
	LastOrderAt      *time.Time
	ChurnRisk        float64
	NextExpectedAt   *time.Time
	Tier             Tier
	MembershipMonths int
}

// Profile is the customer analytics aggregate, identified by email.
type Profile struct {
	email     string
	stats     Stats
	tags      []string
	updatedAt time.Time

	guard guard.ConstructorGuard
}

// NewProfile creates an empty profile for a customer seen for the first time.
func NewProfile(email string, now time.Time) (*Profile, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, errs.NewValueIsInvalidError("customer email")
	}

	return &Profile{
		email:     email,
		stats:     Stats{TotalSpend: decimal.Zero, LifetimeValue: decimal.Zero, Tier: TierBronze},
		updatedAt: now,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// RestoreProfile reconstructs a profile from persistence.
func RestoreProfile(email string, stats Stats, tags []string, updatedAt time.Time) (*Profile, error) {
	p, err := NewProfile(email, updatedAt)
	if err != nil {
		return nil, err
	}

	p.stats = stats
	p.tags = append([]string(nil), tags...)
	return p, nil
}

// Validate ensures the Profile was constructed through a factory function.
func (p *Profile) Validate() error {
	if p == nil {
		return ErrProfileIsNotConstructed
	}
	return p.guard.Validate(ErrProfileIsNotConstructed)
}

// Email returns the customer's natural key.
func (p *Profile) Email() string {
	return p.email
}

// Stats returns the current derived statistics.
func (p *Profile) Stats() Stats {
	return p.stats
}

// Tags returns the admin-managed tag set.
func (p *Profile) Tags() []string {
	return append([]string(nil), p.tags...)
}

// HasTag reports whether the profile carries the given tag.
func (p *Profile) HasTag(tag string) bool {
	for _, t := range p.tags {
		if t == tag {
			return true
		}
	}
	return false
}

// IsMember reports whether the customer has an active membership.
func (p *Profile) IsMember() bool {
	return p.HasTag(MemberTag)
}

// UpdatedAt returns when the profile was last recomputed or retagged.
func (p *Profile) UpdatedAt() time.Time {
	return p.updatedAt
}

// ApplyStats replaces all derived statistics with a fresh recompute result.
// Idempotent: applying equal stats leaves the profile unchanged apart from
// the recompute timestamp.
func (p *Profile) ApplyStats(stats Stats, now time.Time) {
	p.stats = stats
	p.updatedAt = now
}

// SetTags replaces the admin-managed tag set.
func (p *Profile) SetTags(tags []string, now time.Time) {
	p.tags = append([]string(nil), tags...)
	p.updatedAt = now
}
