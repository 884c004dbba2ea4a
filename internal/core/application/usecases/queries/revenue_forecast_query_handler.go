package queries

import (
	"context"
	"time"

	"restring/internal/core/domain/model/order"
	"restring/internal/core/domain/services"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// RevenueForecastQueryHandler aggregates realized daily revenue and hands it
// to the analytics service for extrapolation. Cancelled orders never count
// as revenue; days without orders are absent from the history and count as
// zero inside the averaging window.
type RevenueForecastQueryHandler struct {
	db        *gorm.DB
	analytics services.Analytics
}

// NewRevenueForecastQueryHandler creates a handler for revenue forecasts.
func NewRevenueForecastQueryHandler(
	db *gorm.DB, analytics services.Analytics,
) RevenueForecastQueryHandler {
	return RevenueForecastQueryHandler{db: db, analytics: analytics}
}

// Handle sums order totals per day over the trailing 30 days and projects
// them over the query horizon.
func (h RevenueForecastQueryHandler) Handle(
	ctx context.Context,
	query RevenueForecastQuery,
) (RevenueForecastQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return RevenueForecastQueryResponse{}, err
	}

	since := time.Now().UTC().Truncate(24 * time.Hour).AddDate(0, 0, -(maxForecastHorizonDays - 1))
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT DATE_TRUNC('day', created_at) AS day, SUM(total) AS revenue
		FROM orders
		WHERE created_at >= ? AND status != ?
		GROUP BY 1
		ORDER BY 1
	`, since, order.Cancelled).Rows()
	if err != nil {
		return RevenueForecastQueryResponse{}, err
	}
	defer rows.Close()

	history := make([]services.DailyRevenue, 0)
	for rows.Next() {
		var (
			day     time.Time
			revenue decimal.Decimal
		)
		if err = rows.Scan(&day, &revenue); err != nil {
			return RevenueForecastQueryResponse{}, err
		}
		history = append(history, services.DailyRevenue{Day: day.UTC(), Revenue: revenue})
	}
	if err = rows.Err(); err != nil {
		return RevenueForecastQueryResponse{}, err
	}

	response := RevenueForecastQueryResponse{
		HorizonDays: query.HorizonDays(),
		History:     make([]DailyRevenueResponse, 0, len(history)),
		Forecast:    h.analytics.RevenueForecast(history, query.HorizonDays()),
	}
	for _, d := range history {
		response.History = append(response.History, DailyRevenueResponse{Day: d.Day, Revenue: d.Revenue})
	}

	return response, nil
}
