// Package profilerepo persists customer analytics profiles. Profile rows are
// derived state owned by the recompute function, so the write path is a plain
// upsert keyed by email.
package profilerepo

import (
	"time"

	"restring/internal/core/domain/model/customer"

	"github.com/shopspring/decimal"
)

// ProfileDTO is the database row for a customer's cached analytics profile.
type ProfileDTO struct {
	Email            string          `gorm:"primaryKey"`
	TotalOrders      int
	TotalSpend       decimal.Decimal `gorm:"type:numeric"`
	LifetimeValue    decimal.Decimal `gorm:"type:numeric"`
	AvgIntervalDays  float64
	LastOrderAt      *time.Time
	ChurnRisk        float64 `gorm:"index"`
	NextExpectedAt   *time.Time
	Tier             string
	MembershipMonths int
	Tags             []string `gorm:"serializer:json"`
	UpdatedAt        time.Time
}

// TableName overrides GORM's default naming to use "customer_profiles".
func (ProfileDTO) TableName() string {
	return "customer_profiles"
}

func fromDomain(profile *customer.Profile) ProfileDTO {
	stats := profile.Stats()
	return ProfileDTO{
		Email:            profile.Email(),
		TotalOrders:      stats.TotalOrders,
		TotalSpend:       stats.TotalSpend,
		LifetimeValue:    stats.LifetimeValue,
		AvgIntervalDays:  stats.AvgIntervalDays,
		LastOrderAt:      stats.LastOrderAt,
		ChurnRisk:        stats.ChurnRisk,
		NextExpectedAt:   stats.NextExpectedAt,
		Tier:             string(stats.Tier),
		MembershipMonths: stats.MembershipMonths,
		Tags:             profile.Tags(),
		UpdatedAt:        profile.UpdatedAt(),
	}
}

func toDomain(dto ProfileDTO) (*customer.Profile, error) {
	stats := customer.Stats{
		TotalOrders:      dto.TotalOrders,
		TotalSpend:       dto.TotalSpend,
		LifetimeValue:    dto.LifetimeValue,
		AvgIntervalDays:  dto.AvgIntervalDays,
		LastOrderAt:      dto.LastOrderAt,
		ChurnRisk:        dto.ChurnRisk,
		NextExpectedAt:   dto.NextExpectedAt,
		Tier:             customer.Tier(dto.Tier),
		MembershipMonths: dto.MembershipMonths,
	}

	return customer.RestoreProfile(dto.Email, stats, dto.Tags, dto.UpdatedAt)
}
