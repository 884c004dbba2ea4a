package queries

import (
	"context"
	"math"
	"time"

	"restring/internal/core/domain/model/order"
	"restring/internal/core/domain/services"

	"gorm.io/gorm"
)

// demandWindowDays is the trailing window used to estimate daily demand.
const demandWindowDays = 28

// ScheduleOutlookQueryHandler builds the day-by-day capacity outlook.
//
// Booked load per day counts active orders placed on their expected service
// day: creation date plus the configured turnaround, one day for express.
// Predicted demand is the trailing average of daily order volume.
type ScheduleOutlookQueryHandler struct {
	db      *gorm.DB
	advisor services.SchedulingAdvisor
	cfg     services.SchedulingConfig
}

// NewScheduleOutlookQueryHandler creates a handler for capacity outlooks.
func NewScheduleOutlookQueryHandler(
	db *gorm.DB, advisor services.SchedulingAdvisor, cfg services.SchedulingConfig,
) ScheduleOutlookQueryHandler {
	return ScheduleOutlookQueryHandler{db: db, advisor: advisor, cfg: cfg}
}

// Handle computes one suggestion per day in the horizon, starting tomorrow.
func (h ScheduleOutlookQueryHandler) Handle(
	ctx context.Context,
	query ScheduleOutlookQuery,
) ([]services.DaySuggestion, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	now := time.Now().UTC()

	demand, err := h.predictDailyDemand(ctx, now)
	if err != nil {
		return nil, err
	}

	booked, err := h.bookedPerDay(ctx)
	if err != nil {
		return nil, err
	}

	start := now.Truncate(24 * time.Hour).AddDate(0, 0, 1)
	days := make([]services.DayLoad, 0, query.HorizonDays())
	for i := range query.HorizonDays() {
		day := start.AddDate(0, 0, i)
		days = append(days, services.DayLoad{
			Day:             day,
			Booked:          booked[day],
			PredictedDemand: demand,
		})
	}

	return h.advisor.Suggest(days), nil
}

// predictDailyDemand averages order volume over the trailing window.
func (h ScheduleOutlookQueryHandler) predictDailyDemand(ctx context.Context, now time.Time) (int, error) {
	var count int64
	err := h.db.WithContext(ctx).Raw(`
		SELECT COUNT(*)
		FROM orders
		WHERE created_at >= ? AND status != ?
	`, now.AddDate(0, 0, -demandWindowDays), order.Cancelled).Scan(&count).Error
	if err != nil {
		return 0, err
	}

	return int(math.Ceil(float64(count) / demandWindowDays)), nil
}

// bookedPerDay buckets active orders by expected service day.
func (h ScheduleOutlookQueryHandler) bookedPerDay(ctx context.Context) (map[time.Time]int, error) {
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT created_at, express
		FROM orders
		WHERE status NOT IN (?, ?)
	`, order.Delivered, order.Cancelled).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	booked := make(map[time.Time]int)
	for rows.Next() {
		var (
			createdAt time.Time
			express   bool
		)
		if err = rows.Scan(&createdAt, &express); err != nil {
			return nil, err
		}

		turnaround := h.cfg.StandardTurnaroundDays
		if express {
			turnaround = h.cfg.ExpressTurnaroundDays
		}
		day := createdAt.UTC().Truncate(24 * time.Hour).AddDate(0, 0, turnaround)
		booked[day]++
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return booked, nil
}
