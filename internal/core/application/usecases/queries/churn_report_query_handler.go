package queries

import (
	"context"
	"database/sql"

	"restring/internal/core/domain/model/customer"

	"gorm.io/gorm"
)

// ChurnReportQueryHandler reads the churn report from cached profile rows.
type ChurnReportQueryHandler struct {
	db *gorm.DB
}

// NewChurnReportQueryHandler creates a handler for churn reports.
func NewChurnReportQueryHandler(db *gorm.DB) ChurnReportQueryHandler {
	return ChurnReportQueryHandler{db: db}
}

// Handle returns at-risk customers, riskiest first.
func (h ChurnReportQueryHandler) Handle(
	ctx context.Context,
	query ChurnReportQuery,
) ([]ChurnReportQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			email,
			churn_risk,
			tier,
			last_order_at,
			next_expected_at
		FROM customer_profiles
		WHERE churn_risk >= ?
		ORDER BY churn_risk DESC, email
	`, query.MinRisk()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	report := make([]ChurnReportQueryResponse, 0)
	for rows.Next() {
		var (
			resp           ChurnReportQueryResponse
			tier           string
			lastOrderAt    sql.NullTime
			nextExpectedAt sql.NullTime
		)

		if err = rows.Scan(&resp.Email, &resp.ChurnRisk, &tier, &lastOrderAt, &nextExpectedAt); err != nil {
			return nil, err
		}

		resp.Tier = customer.Tier(tier)
		if lastOrderAt.Valid {
			t := lastOrderAt.Time
			resp.LastOrderAt = &t
		}
		if nextExpectedAt.Valid {
			t := nextExpectedAt.Time
			resp.NextExpectedAt = &t
		}

		report = append(report, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return report, nil
}
