package queries

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"restring/internal/core/domain/model/customer"
	"restring/internal/core/domain/model/order"
	"restring/internal/core/domain/services"
	"restring/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// CustomerSummaryQueryHandler reads the cached profile row and augments it
// with a fresh upsell scan over the customer's order history. The cached
// stats are accepted as-is; they are only as stale as the last recompute.
type CustomerSummaryQueryHandler struct {
	db        *gorm.DB
	analytics services.Analytics
}

// NewCustomerSummaryQueryHandler creates a handler for customer summaries.
func NewCustomerSummaryQueryHandler(db *gorm.DB, analytics services.Analytics) CustomerSummaryQueryHandler {
	return CustomerSummaryQueryHandler{db: db, analytics: analytics}
}

// Handle loads the profile and scans the order history for upsells.
func (h CustomerSummaryQueryHandler) Handle(
	ctx context.Context,
	query CustomerSummaryQuery,
) (CustomerSummaryQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return CustomerSummaryQueryResponse{}, err
	}

	profile, err := h.loadProfile(ctx, query.CustomerEmail())
	if err != nil {
		return CustomerSummaryQueryResponse{}, err
	}

	history, err := h.loadHistory(ctx, query.CustomerEmail())
	if err != nil {
		return CustomerSummaryQueryResponse{}, err
	}

	return CustomerSummaryQueryResponse{
		Email:     profile.Email(),
		Tags:      profile.Tags(),
		Stats:     profile.Stats(),
		Upsells:   h.analytics.UpsellOpportunities(profile, history),
		UpdatedAt: profile.UpdatedAt(),
	}, nil
}

func (h CustomerSummaryQueryHandler) loadProfile(
	ctx context.Context, email string,
) (*customer.Profile, error) {
	var (
		stats          customer.Stats
		tier           string
		tags           []byte
		lastOrderAt    sql.NullTime
		nextExpectedAt sql.NullTime
		updatedAt      time.Time
	)

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			total_orders,
			total_spend,
			lifetime_value,
			avg_interval_days,
			last_order_at,
			churn_risk,
			next_expected_at,
			tier,
			membership_months,
			tags,
			updated_at
		FROM customer_profiles
		WHERE email = ?
	`, email).Row()

	err := row.Scan(
		&stats.TotalOrders,
		&stats.TotalSpend,
		&stats.LifetimeValue,
		&stats.AvgIntervalDays,
		&lastOrderAt,
		&stats.ChurnRisk,
		&nextExpectedAt,
		&tier,
		&stats.MembershipMonths,
		&tags,
		&updatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, errs.NewObjectNotFoundError("customer profile", email)
	}
	if err != nil {
		return nil, err
	}

	stats.Tier = customer.Tier(tier)
	if lastOrderAt.Valid {
		t := lastOrderAt.Time
		stats.LastOrderAt = &t
	}
	if nextExpectedAt.Valid {
		t := nextExpectedAt.Time
		stats.NextExpectedAt = &t
	}

	var tagList []string
	if len(tags) > 0 {
		if err = json.Unmarshal(tags, &tagList); err != nil {
			return nil, err
		}
	}

	return customer.RestoreProfile(email, stats, tagList, updatedAt)
}

func (h CustomerSummaryQueryHandler) loadHistory(
	ctx context.Context, email string,
) ([]services.OrderSnapshot, error) {
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			total,
			status,
			sku,
			express,
			created_at
		FROM orders
		WHERE customer_email = ?
		ORDER BY created_at
	`, email).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	history := make([]services.OrderSnapshot, 0)
	for rows.Next() {
		var (
			snapshot services.OrderSnapshot
			total    decimal.Decimal
			status   int
		)
		if err = rows.Scan(&total, &status, &snapshot.SKU, &snapshot.Express, &snapshot.CreatedAt); err != nil {
			return nil, err
		}
		snapshot.Total = total
		snapshot.Status = order.Status(status)
		history = append(history, snapshot)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return history, nil
}
