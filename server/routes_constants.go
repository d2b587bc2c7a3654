package server

const (
	RouteUsers    = "/api/users"
	RouteUserByID = "/api/users/{id}"

	RouteAuthConnect  = "/api/auth/connect"
	RouteAuthCallback = "/api/auth/callback"

	RouteQboProfile        = "/api/qbo/{userId}/profile"
	RouteQboRevenueExpense = "/api/qbo/{userId}/revenue-expense"
	RouteQboInvoices       = "/api/qbo/{userId}/invoices"
	RouteQboDisconnect     = "/api/qbo/{userId}/disconnect"
)
