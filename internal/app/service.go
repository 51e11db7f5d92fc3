package app

import "context"

// ApplicationService is the single interface the web adapter calls.
// It decouples presentation from business logic. Implementations must contain
// no HTTP types and no display logic of any kind; every operation is scoped
// to the authenticated user passed by the caller.
type ApplicationService interface {
	// Register creates a new user account with a hashed password.
	Register(ctx context.Context, req RegisterRequest) (*UserResult, error)

	// Authenticate verifies credentials and returns the user on success.
	Authenticate(ctx context.Context, username, password string) (*UserResult, error)

	// GetUser returns a user profile by ID.
	GetUser(ctx context.Context, userID int) (*UserResult, error)

	// CreateCustomer creates a customer record owned by userID.
	CreateCustomer(ctx context.Context, userID int, req CustomerRequest) (*CustomerResult, error)

	// ListCustomers returns the user's customers, newest first.
	ListCustomers(ctx context.Context, userID int) (*CustomerListResult, error)

	// CreateBill validates the request, computes subtotal and the CGST/SGST
	// split server-side, and persists the bill with its line items.
	// Client-supplied totals are never trusted.
	CreateBill(ctx context.Context, userID int, req CreateBillRequest) (*BillResult, error)

	// ListBills returns the user's bills with line items, most recent first.
	ListBills(ctx context.Context, userID int) (*BillListResult, error)

	// GetBill returns a single bill owned by userID.
	GetBill(ctx context.Context, userID, billID int) (*BillResult, error)

	// UpdateBillStatus sets a bill's payment status after verifying ownership.
	UpdateBillStatus(ctx context.Context, userID, billID int, status string) (*BillResult, error)

	// GSTSummary returns overall and per-month GST totals across the
	// user's bills.
	GSTSummary(ctx context.Context, userID int) (*GSTSummaryResult, error)

	// StockSummary returns quantities and values of billed items grouped
	// by description.
	StockSummary(ctx context.Context, userID int) (*StockSummaryResult, error)

	// Dashboard returns headline metrics plus the most recent bills and
	// customers for the landing view.
	Dashboard(ctx context.Context, userID int) (*DashboardResult, error)

	// SubmitFeedback stores a feedback note from the user.
	SubmitFeedback(ctx context.Context, userID int, req FeedbackRequest) error
}
