package models_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"stockive-backend/internal/models"
)

func TestSubscriptionPlanNormalize(t *testing.T) {
	assert.Equal(t, models.PlanBasic, models.SubscriptionPlan("basic").Normalize())
	assert.Equal(t, models.PlanStandard, models.SubscriptionPlan("standard").Normalize())
	assert.Equal(t, models.PlanPremium, models.SubscriptionPlan("premium").Normalize())

	// Anything unrecognized collapses to basic
	assert.Equal(t, models.PlanBasic, models.SubscriptionPlan("").Normalize())
	assert.Equal(t, models.PlanBasic, models.SubscriptionPlan("enterprise").Normalize())
	assert.Equal(t, models.PlanBasic, models.SubscriptionPlan("PREMIUM").Normalize())
}

func TestSubscriptionPlanAtLeast(t *testing.T) {
	assert.True(t, models.PlanPremium.AtLeast(models.PlanBasic))
	assert.True(t, models.PlanPremium.AtLeast(models.PlanStandard))
	assert.True(t, models.PlanPremium.AtLeast(models.PlanPremium))

	assert.True(t, models.PlanStandard.AtLeast(models.PlanBasic))
	assert.False(t, models.PlanStandard.AtLeast(models.PlanPremium))

	assert.False(t, models.PlanBasic.AtLeast(models.PlanStandard))

	// Unknown plans rank as basic on both sides
	assert.True(t, models.SubscriptionPlan("trial").AtLeast(models.PlanBasic))
	assert.False(t, models.SubscriptionPlan("trial").AtLeast(models.PlanStandard))
	assert.True(t, models.PlanBasic.AtLeast(models.SubscriptionPlan("trial")))
}

func TestUserHelpers(t *testing.T) {
	user := &models.User{
		FirstName:        "Jane",
		LastName:         "Mwangi",
		Status:           models.UserStatusActive,
		SubscriptionPlan: models.SubscriptionPlan("gold"),
	}

	assert.Equal(t, "Jane Mwangi", user.GetFullName())
	assert.True(t, user.IsActive())
	assert.Equal(t, models.PlanBasic, user.Plan())

	user.Status = models.UserStatusSuspended
	assert.False(t, user.IsActive())
}
