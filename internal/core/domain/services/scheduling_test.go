package services_test

import (
	"testing"
	"time"

	"restring/internal/core/domain/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSchedulingAdvisor_Suggest(t *testing.T) {
	advisor := services.NewSchedulingAdvisor(services.SchedulingConfig{
		MaxPerDay:    10,
		PromoteBelow: 0.3,
		LimitAbove:   0.8,
	})
	day := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name          string
		booked        int
		wantAction    services.SchedulingAction
		wantAvailable int
	}{
		{"empty day promotes", 0, services.ActionPromote, 10},
		{"under 30 percent promotes", 2, services.ActionPromote, 8},
		{"exactly 30 percent is normal", 3, services.ActionNormal, 7},
		{"mid band is normal", 6, services.ActionNormal, 4},
		{"exactly 80 percent is normal", 8, services.ActionNormal, 2},
		{"over 80 percent limits", 9, services.ActionLimit, 1},
		{"overbooked clamps available to zero", 12, services.ActionLimit, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := advisor.Suggest([]services.DayLoad{{Day: day, Booked: tt.booked, PredictedDemand: 5}})

			require.Len(t, got, 1)
			assert.Equal(t, tt.wantAction, got[0].Action)
			assert.Equal(t, tt.wantAvailable, got[0].AvailableCapacity)
			assert.Equal(t, 5, got[0].PredictedDemand)
		})
	}
}

func TestSchedulingAdvisor_Suggest_OnePerDay(t *testing.T) {
	advisor := services.NewSchedulingAdvisor(services.DefaultSchedulingConfig())
	base := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

	days := []services.DayLoad{
		{Day: base, Booked: 0},
		{Day: base.AddDate(0, 0, 1), Booked: 4},
		{Day: base.AddDate(0, 0, 2), Booked: 8},
	}

	got := advisor.Suggest(days)

	require.Len(t, got, 3)
	for i := range days {
		assert.Equal(t, days[i].Day, got[i].Day)
	}
}
