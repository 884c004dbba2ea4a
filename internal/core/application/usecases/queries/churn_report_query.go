package queries

import (
	"errors"
	"time"

	"restring/internal/core/domain/model/customer"
	"restring/internal/pkg/errs"
	"restring/internal/pkg/guard"
)

var ErrChurnReportQueryIsNotConstructed = errors.New(
	"ChurnReportQuery must be created via NewChurnReportQuery constructor",
)

// ChurnReportQuery retrieves customers ordered by churn risk, highest first.
// The daily reminder sweep consumes this to pick win-back candidates; the
// admin surface exposes it for manual outreach.
type ChurnReportQuery struct {
	minRisk float64

	guard guard.ConstructorGuard
}

// NewChurnReportQuery creates the report query. minRisk filters out customers
// below the threshold; zero returns everyone.
func NewChurnReportQuery(minRisk float64) (ChurnReportQuery, error) {
	if minRisk < 0 || minRisk > 1 {
		return ChurnReportQuery{}, errs.NewValueIsOutOfRangeError("minRisk", minRisk, 0, 1)
	}

	return ChurnReportQuery{minRisk: minRisk, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the query was created through the constructor.
func (q ChurnReportQuery) Validate() error {
	return q.guard.Validate(ErrChurnReportQueryIsNotConstructed)
}

// MinRisk returns the inclusive lower bound of the report.
func (q ChurnReportQuery) MinRisk() float64 {
	return q.minRisk
}

// ChurnReportQueryResponse is one at-risk customer row.
type ChurnReportQueryResponse struct {
	Email          string
	ChurnRisk      float64
	Tier           customer.Tier
	LastOrderAt    *time.Time
	NextExpectedAt *time.Time
}
