package customer_test

import (
	"testing"
	"time"

	"restring/internal/core/domain/model/customer"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProfile_NormalizesEmail(t *testing.T) {
	profile, err := customer.NewProfile("  Anna@Example.COM ", time.Now().UTC())

	require.NoError(t, err)
	assert.Equal(t, "anna@example.com", profile.Email())
	assert.NoError(t, profile.Validate())
}

func TestNewProfile_StartsEmptyAtBronze(t *testing.T) {
	profile, err := customer.NewProfile("anna@example.com", time.Now().UTC())

	require.NoError(t, err)
	assert.Equal(t, 0, profile.Stats().TotalOrders)
	assert.True(t, profile.Stats().TotalSpend.IsZero())
	assert.Equal(t, customer.TierBronze, profile.Stats().Tier)
	assert.Empty(t, profile.Tags())
	assert.False(t, profile.IsMember())
}

func TestNewProfile_InvalidEmail(t *testing.T) {
	for _, email := range []string{"", "   ", "not-an-email"} {
		_, err := customer.NewProfile(email, time.Now().UTC())
		assert.Error(t, err, "email %q", email)
	}
}

func TestRestoreProfile_KeepsStatsAndTags(t *testing.T) {
	now := time.Now().UTC()
	lastOrder := now.AddDate(0, 0, -10)

	profile, err := customer.RestoreProfile("anna@example.com", customer.Stats{
		TotalOrders:   5,
		TotalSpend:    decimal.NewFromInt(225),
		LifetimeValue: decimal.NewFromFloat(337.5),
		LastOrderAt:   &lastOrder,
		ChurnRisk:     0.1,
		Tier:          customer.TierSilver,
	}, []string{customer.MemberTag, "vip"}, now)

	require.NoError(t, err)
	assert.Equal(t, 5, profile.Stats().TotalOrders)
	assert.Equal(t, customer.TierSilver, profile.Stats().Tier)
	assert.True(t, profile.IsMember())
	assert.True(t, profile.HasTag("vip"))
	assert.False(t, profile.HasTag("wholesale"))
}

func TestApplyStats_IsIdempotent(t *testing.T) {
	profile, err := customer.NewProfile("anna@example.com", time.Now().UTC())
	require.NoError(t, err)

	stats := customer.Stats{
		TotalOrders: 3,
		TotalSpend:  decimal.NewFromInt(135),
		ChurnRisk:   0.3,
		Tier:        customer.TierBronze,
	}

	profile.ApplyStats(stats, time.Now().UTC())
	first := profile.Stats()
	profile.ApplyStats(stats, time.Now().UTC())

	assert.Equal(t, first, profile.Stats())
}

func TestSetTags_ReplacesSet(t *testing.T) {
	profile, err := customer.NewProfile("anna@example.com", time.Now().UTC())
	require.NoError(t, err)

	profile.SetTags([]string{customer.MemberTag}, time.Now().UTC())
	assert.True(t, profile.IsMember())

	profile.SetTags([]string{"vip"}, time.Now().UTC())
	assert.False(t, profile.IsMember())
	assert.Equal(t, []string{"vip"}, profile.Tags())
}

func TestTags_ReturnsCopy(t *testing.T) {
	profile, err := customer.NewProfile("anna@example.com", time.Now().UTC())
	require.NoError(t, err)
	profile.SetTags([]string{"vip"}, time.Now().UTC())

	tags := profile.Tags()
	tags[0] = "mutated"

	assert.Equal(t, []string{"vip"}, profile.Tags())
}

func TestValidate_ZeroValueProfileFails(t *testing.T) {
	var profile customer.Profile
	assert.Error(t, profile.Validate())

	var nilProfile *customer.Profile
	assert.Error(t, nilProfile.Validate())
}
