package storectx_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stockive-backend/internal/models"
	"stockive-backend/internal/storectx"
)

func userWithPlan(plan models.SubscriptionPlan) *models.User {
	return &models.User{ID: "u1", SubscriptionPlan: plan}
}

func navIDs(items []storectx.NavItem) []string {
	ids := make([]string, len(items))
	for i, item := range items {
		ids[i] = item.ID
	}
	return ids
}

func navIDSet(items []storectx.NavItem) map[string]bool {
	set := make(map[string]bool, len(items))
	for _, item := range items {
		set[item.ID] = true
	}
	return set
}

func TestDeriveNavigationUnauthenticated(t *testing.T) {
	ctx := storectx.Classify([]models.Store{{ID: "s1"}}, &models.User{ID: "u1"})

	items := storectx.DeriveNavigation(ctx, false, userWithPlan(models.PlanPremium))

	require.Len(t, items, 2)
	assert.Equal(t, "login", items[0].ID)
	assert.Equal(t, "signup", items[1].ID)
}

func TestDeriveNavigationBasicPlan(t *testing.T) {
	ctx := storectx.Classify([]models.Store{{ID: "s1"}}, &models.User{ID: "u1"})

	items := storectx.DeriveNavigation(ctx, true, userWithPlan(models.PlanBasic))
	ids := navIDs(items)

	assert.Equal(t, []string{"dashboard", "catalog", "add-product", "orders", "stores", "scanner", "settings", "help"}, ids)
}

func TestDeriveNavigationTiersAreStrictlyAdditive(t *testing.T) {
	ctx := storectx.Classify([]models.Store{{ID: "s1"}, {ID: "s2", IsSubStore: true}}, &models.User{ID: "u1"})

	basic := navIDSet(storectx.DeriveNavigation(ctx, true, userWithPlan(models.PlanBasic)))
	standard := navIDSet(storectx.DeriveNavigation(ctx, true, userWithPlan(models.PlanStandard)))
	premium := navIDSet(storectx.DeriveNavigation(ctx, true, userWithPlan(models.PlanPremium)))

	for id := range basic {
		assert.True(t, standard[id], "standard missing basic entry %s", id)
	}
	for id := range standard {
		assert.True(t, premium[id], "premium missing standard entry %s", id)
	}
	assert.Greater(t, len(standard), len(basic))
	assert.Greater(t, len(premium), len(standard))
}

func TestDeriveNavigationStandardEntries(t *testing.T) {
	ctx := storectx.Classify([]models.Store{{ID: "s1"}}, &models.User{ID: "u1"})

	ids := navIDSet(storectx.DeriveNavigation(ctx, true, userWithPlan(models.PlanStandard)))

	for _, want := range []string{"clearance", "barcode-tools", "analytics", "suppliers", "purchase-orders", "purchasing-reports", "pos-sync"} {
		assert.True(t, ids[want], "missing %s", want)
	}
	for _, excluded := range []string{"multi-channel-orders", "channel-management", "stock-management", "warehouse-management"} {
		assert.False(t, ids[excluded], "unexpected %s", excluded)
	}
}

func TestDeriveNavigationPremiumEntries(t *testing.T) {
	ctx := storectx.Classify([]models.Store{{ID: "s1"}}, &models.User{ID: "u1"})

	items := storectx.DeriveNavigation(ctx, true, userWithPlan(models.PlanPremium))
	ids := navIDs(items)

	// Premium entries come last, in declaration order
	require.GreaterOrEqual(t, len(ids), 4)
	assert.Equal(t, []string{"multi-channel-orders", "channel-management", "stock-management", "warehouse-management"}, ids[len(ids)-4:])
}

func TestDeriveNavigationSupermarketOverviewIsMultiStoreOnly(t *testing.T) {
	single := storectx.Classify([]models.Store{{ID: "s1"}}, &models.User{ID: "u1"})
	multi := storectx.Classify([]models.Store{{ID: "s1"}, {ID: "s2", IsSubStore: true}}, &models.User{ID: "u1"})

	assert.False(t, navIDSet(storectx.DeriveNavigation(single, true, userWithPlan(models.PlanStandard)))["supermarket-overview"])
	assert.True(t, navIDSet(storectx.DeriveNavigation(multi, true, userWithPlan(models.PlanStandard)))["supermarket-overview"])
}

func TestDeriveNavigationMultiStoreLabels(t *testing.T) {
	multi := storectx.Classify([]models.Store{{ID: "s1"}, {ID: "s2", IsSubStore: true}}, &models.User{ID: "u1"})

	items := storectx.DeriveNavigation(multi, true, userWithPlan(models.PlanBasic))

	assert.Equal(t, "Group Dashboard", items[0].Label)
	assert.Equal(t, "My Stores", items[4].Label)
}

func TestDeriveNavigationUnrecognizedPlanFallsThroughToBasic(t *testing.T) {
	ctx := storectx.Classify([]models.Store{{ID: "s1"}}, &models.User{ID: "u1"})

	mystery := storectx.DeriveNavigation(ctx, true, userWithPlan("enterprise-gold"))
	basic := storectx.DeriveNavigation(ctx, true, userWithPlan(models.PlanBasic))

	assert.Equal(t, basic, mystery)
}

func TestDeriveNavigationNilUserTreatedAsBasic(t *testing.T) {
	ctx := storectx.Classify([]models.Store{{ID: "s1"}}, &models.User{ID: "u1"})

	items := storectx.DeriveNavigation(ctx, true, nil)

	assert.Equal(t, navIDs(storectx.DeriveNavigation(ctx, true, userWithPlan(models.PlanBasic))), navIDs(items))
}
