package storectx

import (
	"stockive-backend/internal/models"
)

// NavItem describes one enabled application section. Slice order drives
// menu rendering order.
type NavItem struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Icon  string `json:"icon"`
}

// DeriveNavigation produces the ordered list of sections enabled for the
// current session. Unauthenticated sessions get exactly the login and
// signup entries. Authenticated sessions get the base entries plus the
// strictly additive tier entries their subscription plan unlocks; an
// unrecognized plan falls through to basic.
func DeriveNavigation(ctx StoreContext, isAuthenticated bool, user *models.User) []NavItem {
	if !isAuthenticated {
		return []NavItem{
			{ID: "login", Label: "Log In", Icon: "log-in"},
			{ID: "signup", Label: "Sign Up", Icon: "user-plus"},
		}
	}

	plan := models.PlanBasic
	if user != nil {
		plan = user.Plan()
	}

	items := baseEntries(ctx)
	if plan.AtLeast(models.PlanStandard) {
		items = append(items, standardEntries(ctx)...)
	}
	if plan.AtLeast(models.PlanPremium) {
		items = append(items, premiumEntries()...)
	}
	return items
}

// baseEntries are available on every plan. Dashboard and store labels vary
// with the multi-store flag.
func baseEntries(ctx StoreContext) []NavItem {
	dashboardLabel := "Dashboard"
	catalogLabel := "Products"
	storesLabel := "My Store"
	if ctx.IsMultiStore {
		dashboardLabel = "Group Dashboard"
		catalogLabel = "All Products"
		storesLabel = "My Stores"
	}
	return []NavItem{
		{ID: "dashboard", Label: dashboardLabel, Icon: "layout-dashboard"},
		{ID: "catalog", Label: catalogLabel, Icon: "package"},
		{ID: "add-product", Label: "Add Product", Icon: "plus-circle"},
		{ID: "orders", Label: "Orders", Icon: "shopping-cart"},
		{ID: "stores", Label: storesLabel, Icon: "building-2"},
		{ID: "scanner", Label: "Scanner", Icon: "scan-line"},
		{ID: "settings", Label: "Settings", Icon: "settings"},
		{ID: "help", Label: "Help", Icon: "life-buoy"},
	}
}

// standardEntries unlock on the standard plan and above. The supermarket
// overview only appears for multi-store operators.
func standardEntries(ctx StoreContext) []NavItem {
	items := []NavItem{}
	if ctx.IsMultiStore {
		items = append(items, NavItem{ID: "supermarket-overview", Label: "Supermarket Overview", Icon: "store"})
	}
	return append(items,
		NavItem{ID: "clearance", Label: "Clearance", Icon: "tag"},
		NavItem{ID: "barcode-tools", Label: "Barcodes & Tickets", Icon: "barcode"},
		NavItem{ID: "analytics", Label: "Analytics", Icon: "bar-chart-3"},
		NavItem{ID: "suppliers", Label: "Suppliers", Icon: "truck"},
		NavItem{ID: "purchase-orders", Label: "Purchase Orders", Icon: "clipboard-list"},
		NavItem{ID: "purchasing-reports", Label: "Purchasing Reports", Icon: "file-bar-chart"},
		NavItem{ID: "pos-sync", Label: "POS Sync", Icon: "refresh-cw"},
	)
}

// premiumEntries unlock on the premium plan only
func premiumEntries() []NavItem {
	return []NavItem{
		{ID: "multi-channel-orders", Label: "Multi-Channel Orders", Icon: "layers"},
		{ID: "channel-management", Label: "Channel Management", Icon: "git-branch"},
		{ID: "stock-management", Label: "Stock Management", Icon: "boxes"},
		{ID: "warehouse-management", Label: "Warehouse Management", Icon: "warehouse"},
	}
}
