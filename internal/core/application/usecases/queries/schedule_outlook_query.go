package queries

import (
	"errors"

	"restring/internal/pkg/errs"
	"restring/internal/pkg/guard"
)

var ErrScheduleOutlookQueryIsNotConstructed = errors.New(
	"ScheduleOutlookQuery must be created via NewScheduleOutlookQuery constructor",
)

const maxOutlookHorizonDays = 30

// ScheduleOutlookQuery produces the per-day promote/limit/normal advisory for
// the next horizonDays days. The nightly advisory job runs the same query.
type ScheduleOutlookQuery struct {
	horizonDays int

	guard guard.ConstructorGuard
}

// NewScheduleOutlookQuery creates the outlook query for 1..30 days ahead.
func NewScheduleOutlookQuery(horizonDays int) (ScheduleOutlookQuery, error) {
	if horizonDays < 1 || horizonDays > maxOutlookHorizonDays {
		return ScheduleOutlookQuery{}, errs.NewValueIsOutOfRangeError(
			"horizonDays", horizonDays, 1, maxOutlookHorizonDays)
	}

	return ScheduleOutlookQuery{horizonDays: horizonDays, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the query was created through the constructor.
func (q ScheduleOutlookQuery) Validate() error {
	return q.guard.Validate(ErrScheduleOutlookQueryIsNotConstructed)
}

// HorizonDays returns the number of days covered by the outlook.
func (q ScheduleOutlookQuery) HorizonDays() int {
	return q.horizonDays
}
