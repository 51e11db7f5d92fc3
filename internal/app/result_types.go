package app

import "gst-billing/internal/core"

// UserResult is returned by Register, Authenticate and GetUser.
type UserResult struct {
	User *core.User
}

// CustomerResult is returned by CreateCustomer.
type CustomerResult struct {
	Customer *core.Customer
}

// CustomerListResult is returned by ListCustomers.
type CustomerListResult struct {
	Customers []core.Customer
}

// BillResult is returned by bill operations.
type BillResult struct {
	Bill *core.Bill
}

// BillListResult is returned by ListBills.
type BillListResult struct {
	Bills []core.Bill
}

// GSTSummaryResult is returned by GSTSummary.
type GSTSummaryResult struct {
	Summary core.GSTSummary
}

// StockSummaryResult is returned by StockSummary.
type StockSummaryResult struct {
	Summary core.StockSummary
}

// DashboardResult is returned by Dashboard.
type DashboardResult struct {
	Metrics         core.DashboardMetrics
	TotalCustomers  int
	RecentBills     []core.Bill
	RecentCustomers []core.Customer
}
