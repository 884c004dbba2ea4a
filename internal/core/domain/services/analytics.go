package services

import (
	"sort"
	"time"

	"restring/internal/core/domain/model/customer"
	"restring/internal/core/domain/model/order"

	"github.com/shopspring/decimal"
)

// AnalyticsConfig gathers the heuristic constants used by the scoring
// functions so they can be tuned and tested without code changes. All
// defaults reflect the operating business rules, not statistical fits.
type AnalyticsConfig struct {
	// FutureSpendMultiplier models expected future spend as a fraction of
	// historical spend in the lifetime value formula.
	FutureSpendMultiplier decimal.Decimal

	// MonthlyMembershipFee is the recurring fee used for member LTV and
	// membership upsell valuation.
	MonthlyMembershipFee decimal.Decimal

	// Tier cutoffs, inclusive on the lower bound of each tier.
	PlatinumLTV decimal.Decimal
	GoldLTV     decimal.Decimal
	SilverLTV   decimal.Decimal

	// ForecastWindowDays is the trailing window averaged for the revenue
	// forecast.
	ForecastWindowDays int

	// FrequentOrderCount is the order count at which a customer counts as
	// frequent for upsell scanning.
	FrequentOrderCount int
}

// DefaultAnalyticsConfig returns the documented heuristic defaults.
func DefaultAnalyticsConfig() AnalyticsConfig {
	return AnalyticsConfig{
		FutureSpendMultiplier: decimal.NewFromFloat(0.5),
		MonthlyMembershipFee:  decimal.NewFromInt(15),
		PlatinumLTV:           decimal.NewFromInt(1000),
		GoldLTV:               decimal.NewFromInt(500),
		SilverLTV:             decimal.NewFromInt(200),
		ForecastWindowDays:    7,
		FrequentOrderCount:    5,
	}
}

// OrderSnapshot is the slice of order history the scoring functions consume.
// Analytics reads a point-in-time copy and tolerates staleness; it never
// holds locks against the order store.
type OrderSnapshot struct {
	Total     decimal.Decimal
	Status    order.Status
	SKU       string
	Express   bool
	CreatedAt time.Time
}

// DailyRevenue is one day's realized revenue, input to the forecast.
type DailyRevenue struct {
	Day     time.Time
	Revenue decimal.Decimal
}

// Upsell is a suggested offer for one customer with a reason and an
// estimated annual dollar value.
type Upsell struct {
	CustomerEmail  string
	Suggestion     string
	Reason         string
	EstimatedValue decimal.Decimal
}

// Analytics is a stateless domain service computing derived customer and
// revenue statistics from order history. Every method is a pure function of
// its inputs and the injected configuration, so each is independently
// unit-testable without a data store.
type Analytics struct {
	cfg AnalyticsConfig
}

// NewAnalytics creates the analytics service with the given configuration.
func NewAnalytics(cfg AnalyticsConfig) Analytics {
	return Analytics{cfg: cfg}
}

// LifetimeValue projects the total dollar value of a customer relationship:
// historical spend, plus membership revenue to date, plus expected future
// spend modeled as FutureSpendMultiplier of historical spend.
func (a Analytics) LifetimeValue(totalSpent decimal.Decimal, membershipMonths int) decimal.Decimal {
	membershipRevenue := a.cfg.MonthlyMembershipFee.Mul(decimal.NewFromInt(int64(membershipMonths)))
	futureSpend := totalSpent.Mul(a.cfg.FutureSpendMultiplier)
	return totalSpent.Add(membershipRevenue).Add(futureSpend)
}

// ChurnRisk estimates disengagement likelihood on a 0-1 scale by bucketing
// the ratio of days since the last order to the customer's average order
// interval. A zero or unknown interval yields zero: without a cadence there
// is no risk signal. Total for all non-negative inputs.
func (a Analytics) ChurnRisk(daysSinceLastOrder, avgIntervalDays float64) float64 {
	if avgIntervalDays <= 0 {
		return 0
	}

	r := daysSinceLastOrder / avgIntervalDays
	switch {
	case r < 1:
		return 0.1
	case r < 1.5:
		return 0.3
	case r < 2:
		return 0.6
	case r < 3:
		return 0.8
	default:
		return 0.95
	}
}

// NextExpectedOrderDate projects the customer's next order as the last order
// date plus the average interval. Returns nil when either input is absent.
func (a Analytics) NextExpectedOrderDate(lastOrderAt *time.Time, avgIntervalDays float64) *time.Time {
	if lastOrderAt == nil || avgIntervalDays <= 0 {
		return nil
	}

	next := lastOrderAt.Add(time.Duration(avgIntervalDays * 24 * float64(time.Hour)))
	return &next
}

// SpendingTier classifies a lifetime value into a discrete tier. Boundaries
// are inclusive on the lower bound: exactly the gold cutoff is gold.
func (a Analytics) SpendingTier(ltv decimal.Decimal) customer.Tier {
	switch {
	case ltv.GreaterThanOrEqual(a.cfg.PlatinumLTV):
		return customer.TierPlatinum
	case ltv.GreaterThanOrEqual(a.cfg.GoldLTV):
		return customer.TierGold
	case ltv.GreaterThanOrEqual(a.cfg.SilverLTV):
		return customer.TierSilver
	default:
		return customer.TierBronze
	}
}

// RevenueForecast projects revenue over horizonDays as the trailing
// ForecastWindowDays moving average of daily revenue, extrapolated linearly.
// Deterministic by construction; days missing from the input count as zero
// revenue within the window.
func (a Analytics) RevenueForecast(history []DailyRevenue, horizonDays int) decimal.Decimal {
	if horizonDays <= 0 || len(history) == 0 {
		return decimal.Zero
	}

	window := a.cfg.ForecastWindowDays
	if window <= 0 {
		window = 1
	}

	sorted := append([]DailyRevenue(nil), history...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Day.Before(sorted[j].Day) })

	cutoff := sorted[len(sorted)-1].Day.AddDate(0, 0, -(window - 1))
	sum := decimal.Zero
	for _, d := range sorted {
		if !d.Day.Before(cutoff) {
			sum = sum.Add(d.Revenue)
		}
	}

	dailyAvg := sum.Div(decimal.NewFromInt(int64(window)))
	return dailyAvg.Mul(decimal.NewFromInt(int64(horizonDays)))
}

// RecomputeStats derives the full profile statistics from a customer's order
// history snapshot. Pure and idempotent: recomputing from the same history
// yields the same stats, so it is safe to re-run after every relevant event.
//
// Cancelled orders are excluded from every statistic; an order counts from
// its creation date.
func (a Analytics) RecomputeStats(
	history []OrderSnapshot, membershipMonths int, isMember bool, now time.Time,
) customer.Stats {
	active := make([]OrderSnapshot, 0, len(history))
	for _, o := range history {
		if o.Status != order.Cancelled {
			active = append(active, o)
		}
	}
	sort.Slice(active, func(i, j int) bool { return active[i].CreatedAt.Before(active[j].CreatedAt) })

	stats := customer.Stats{
		TotalOrders:      len(active),
		TotalSpend:       decimal.Zero,
		MembershipMonths: membershipMonths,
	}
	if !isMember {
		stats.MembershipMonths = 0
	}

	for _, o := range active {
		stats.TotalSpend = stats.TotalSpend.Add(o.Total)
	}

	if len(active) > 0 {
		last := active[len(active)-1].CreatedAt
		stats.LastOrderAt = &last
	}

	if len(active) > 1 {
		span := active[len(active)-1].CreatedAt.Sub(active[0].CreatedAt)
		stats.AvgIntervalDays = span.Hours() / 24 / float64(len(active)-1)
	}

	stats.LifetimeValue = a.LifetimeValue(stats.TotalSpend, stats.MembershipMonths)
	stats.Tier = a.SpendingTier(stats.LifetimeValue)

	if stats.LastOrderAt != nil {
		daysSince := now.Sub(*stats.LastOrderAt).Hours() / 24
		stats.ChurnRisk = a.ChurnRisk(daysSince, stats.AvgIntervalDays)
	}
	stats.NextExpectedAt = a.NextExpectedOrderDate(stats.LastOrderAt, stats.AvgIntervalDays)

	return stats
}

// UpsellOpportunities scans a customer's profile and recent order history for
// offer patterns. Current rules:
//   - frequent customer without a membership: suggest the membership, valued
//     at a year of fees
//   - frequent basic synthetic-gut user: suggest a premium string upgrade,
//     valued at the historical average order total
func (a Analytics) UpsellOpportunities(profile *customer.Profile, history []OrderSnapshot) []Upsell {
	stats := profile.Stats()
	if stats.TotalOrders < a.cfg.FrequentOrderCount {
		return nil
	}

	var upsells []Upsell

	if !profile.IsMember() {
		annual := a.cfg.MonthlyMembershipFee.Mul(decimal.NewFromInt(12))
		upsells = append(upsells, Upsell{
			CustomerEmail:  profile.Email(),
			Suggestion:     "membership",
			Reason:         "frequent customer without a membership",
			EstimatedValue: annual,
		})
	}

	basic := 0
	for _, o := range history {
		if o.Status != order.Cancelled && isBasicStringSKU(o.SKU) {
			basic++
		}
	}
	if basic >= a.cfg.FrequentOrderCount && stats.TotalOrders > 0 {
		avgOrder := stats.TotalSpend.Div(decimal.NewFromInt(int64(stats.TotalOrders)))
		upsells = append(upsells, Upsell{
			CustomerEmail:  profile.Email(),
			Suggestion:     "premium string upgrade",
			Reason:         "frequent basic string use",
			EstimatedValue: avgOrder,
		})
	}

	return upsells
}

// isBasicStringSKU reports whether the SKU is from the entry-level synthetic
// gut line.
func isBasicStringSKU(sku string) bool {
	return len(sku) >= 7 && sku[:7] == "SYN-GUT"
}
