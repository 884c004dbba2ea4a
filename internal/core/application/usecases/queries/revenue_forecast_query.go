package queries

import (
	"errors"
	"time"

	"restring/internal/pkg/errs"
	"restring/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrRevenueForecastQueryIsNotConstructed = errors.New(
	"RevenueForecastQuery must be created via NewRevenueForecastQuery constructor",
)

const maxForecastHorizonDays = 30

// RevenueForecastQuery projects revenue over the next horizonDays days from
// realized daily revenue. The nightly advisory job runs it alongside the
// capacity outlook; the admin surface exposes it for planning.
type RevenueForecastQuery struct {
	horizonDays int

	guard guard.ConstructorGuard
}

// NewRevenueForecastQuery creates the forecast query for 1..30 days ahead.
func NewRevenueForecastQuery(horizonDays int) (RevenueForecastQuery, error) {
	if horizonDays < 1 || horizonDays > maxForecastHorizonDays {
		return RevenueForecastQuery{}, errs.NewValueIsOutOfRangeError(
			"horizonDays", horizonDays, 1, maxForecastHorizonDays)
	}

	return RevenueForecastQuery{horizonDays: horizonDays, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the query was created through the constructor.
func (q RevenueForecastQuery) Validate() error {
	return q.guard.Validate(ErrRevenueForecastQueryIsNotConstructed)
}

// HorizonDays returns the number of days the projection covers.
func (q RevenueForecastQuery) HorizonDays() int {
	return q.horizonDays
}

// DailyRevenueResponse is one day's realized revenue feeding the projection.
type DailyRevenueResponse struct {
	Day     time.Time
	Revenue decimal.Decimal
}

// RevenueForecastQueryResponse is the projection together with the daily
// revenue it was derived from, oldest day first.
type RevenueForecastQueryResponse struct {
	HorizonDays int
	History     []DailyRevenueResponse
	Forecast    decimal.Decimal
}
