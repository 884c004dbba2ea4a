package services

import (
	"time"
)

// SchedulingAction is the advisory outcome for one day.
type SchedulingAction string

const (
	// ActionPromote recommends pushing demand toward an underused day.
	ActionPromote SchedulingAction = "promote"

	// ActionLimit recommends throttling new bookings on an overloaded day.
	ActionLimit SchedulingAction = "limit"

	// ActionNormal requires no intervention.
	ActionNormal SchedulingAction = "normal"
)

// SchedulingConfig holds the operator-throughput constant and the utilization
// bands driving promote/limit recommendations.
type SchedulingConfig struct {
	// MaxPerDay is the configured operator throughput. It is a business
	// constant, not derived from history.
	MaxPerDay int

	// PromoteBelow and LimitAbove bound the normal utilization band.
	PromoteBelow float64
	LimitAbove   float64

	// StandardTurnaroundDays and ExpressTurnaroundDays place an active
	// order on its expected service day when building the outlook.
	StandardTurnaroundDays int
	ExpressTurnaroundDays  int
}

// DefaultSchedulingConfig returns the documented defaults: promote under 30%
// utilization, limit over 80%.
func DefaultSchedulingConfig() SchedulingConfig {
	return SchedulingConfig{
		MaxPerDay:              8,
		PromoteBelow:           0.3,
		LimitAbove:             0.8,
		StandardTurnaroundDays: 3,
		ExpressTurnaroundDays:  1,
	}
}

// DayLoad is one day's booked pickups plus the analytics demand prediction.
type DayLoad struct {
	Day             time.Time
	Booked          int
	PredictedDemand int
}

// DaySuggestion is the advisory output for one day.
type DaySuggestion struct {
	Day               time.Time
	Booked            int
	PredictedDemand   int
	AvailableCapacity int
	Utilization       float64
	Action            SchedulingAction
}

// SchedulingAdvisor compares booked capacity against the configured daily
// throughput and recommends promote/limit actions. A pure function of its
// inputs, like the analytics scoring it consumes.
type SchedulingAdvisor struct {
	cfg SchedulingConfig
}

// NewSchedulingAdvisor creates the advisor with the given configuration.
func NewSchedulingAdvisor(cfg SchedulingConfig) SchedulingAdvisor {
	return SchedulingAdvisor{cfg: cfg}
}

// Suggest produces one suggestion per input day. Utilization is booked
// pickups divided by MaxPerDay; available capacity never goes below zero.
func (s SchedulingAdvisor) Suggest(days []DayLoad) []DaySuggestion {
	suggestions := make([]DaySuggestion, 0, len(days))
	for _, d := range days {
		suggestions = append(suggestions, s.suggestDay(d))
	}
	return suggestions
}

func (s SchedulingAdvisor) suggestDay(d DayLoad) DaySuggestion {
	maxPerDay := s.cfg.MaxPerDay
	if maxPerDay <= 0 {
		maxPerDay = 1
	}

	utilization := float64(d.Booked) / float64(maxPerDay)
	available := maxPerDay - d.Booked
	if available < 0 {
		available = 0
	}

	action := ActionNormal
	switch {
	case utilization < s.cfg.PromoteBelow:
		action = ActionPromote
	case utilization > s.cfg.LimitAbove:
		action = ActionLimit
	}

	return DaySuggestion{
		Day:               d.Day,
		Booked:            d.Booked,
		PredictedDemand:   d.PredictedDemand,
		AvailableCapacity: available,
		Utilization:       utilization,
		Action:            action,
	}
}
