package model

// Privilege codes checked by the HTTP middleware.
const (
	PrivProductView   = "product:view"
	PrivProductCreate = "product:create"
	PrivProductUpdate = "product:update"
	PrivProductDelete = "product:delete"
	PrivStockUpdate   = "stock:update"
	PrivSaleView      = "sale:view"
	PrivSaleCreate    = "sale:create"
	PrivRevenueView   = "revenue:view"
	PrivDashboardView = "dashboard:view"
)

var allPrivileges = []string{
	PrivProductView, PrivProductCreate, PrivProductUpdate, PrivProductDelete,
	PrivStockUpdate,
	PrivSaleView, PrivSaleCreate,
	PrivRevenueView,
	PrivDashboardView,
}

// rolePrivileges: ADMIN gets everything, operators run the shop floor
// (sales and stock) and viewers only read.
var rolePrivileges = map[Role][]string{
	RoleAdmin: allPrivileges,
	RoleOperator: {
		PrivProductView, PrivStockUpdate,
		PrivSaleView, PrivSaleCreate,
		PrivDashboardView,
	},
	RoleViewer: {
		PrivProductView, PrivSaleView, PrivRevenueView, PrivDashboardView,
	},
}
