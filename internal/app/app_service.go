package app

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"gst-billing/internal/core"

	"github.com/jackc/pgx/v5/pgxpool"
)

const dateLayout = "2006-01-02"

// Bills fall due 30 days after issue unless the caller says otherwise.
const defaultDueDays = 30

var feedbackKinds = map[string]bool{"bug": true, "idea": true, "other": true}

type appService struct {
	pool      *pgxpool.Pool
	users     core.UserService
	customers core.CustomerService
	bills     core.BillService
	log       *slog.Logger
}

// NewAppService constructs an appService that satisfies ApplicationService.
func NewAppService(
	pool *pgxpool.Pool,
	users core.UserService,
	customers core.CustomerService,
	bills core.BillService,
	log *slog.Logger,
) ApplicationService {
	return &appService{
		pool:      pool,
		users:     users,
		customers: customers,
		bills:     bills,
		log:       log,
	}
}

func (s *appService) Register(ctx context.Context, req RegisterRequest) (*UserResult, error) {
	user, err := s.users.Create(ctx, req.Username, req.Password, req.BusinessName)
	if err != nil {
		return nil, err
	}
	s.log.Info("user registered", "user_id", user.ID, "username", user.Username)
	return &UserResult{User: user}, nil
}

func (s *appService) Authenticate(ctx context.Context, username, password string) (*UserResult, error) {
	user, err := s.users.Authenticate(ctx, username, password)
	if err != nil {
		return nil, err
	}
	return &UserResult{User: user}, nil
}

func (s *appService) GetUser(ctx context.Context, userID int) (*UserResult, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &UserResult{User: user}, nil
}

func (s *appService) CreateCustomer(ctx context.Context, userID int, req CustomerRequest) (*CustomerResult, error) {
	customer, err := s.customers.Create(ctx, userID, core.CustomerInput{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Address: req.Address,
	})
	if err != nil {
		return nil, err
	}
	return &CustomerResult{Customer: customer}, nil
}

func (s *appService) ListCustomers(ctx context.Context, userID int) (*CustomerListResult, error) {
	customers, err := s.customers.ListForUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &CustomerListResult{Customers: customers}, nil
}

// CreateBill recomputes every amount from the submitted line items. The
// request carries no totals at all, so a tampering client has nothing to
// tamper with.
func (s *appService) CreateBill(ctx context.Context, userID int, req CreateBillRequest) (*BillResult, error) {
	date, err := time.Parse(dateLayout, req.Date)
	if err != nil {
		return nil, &core.ValidationError{Field: "date", Message: "must be a YYYY-MM-DD date"}
	}

	dueDate := date.AddDate(0, 0, defaultDueDays)
	if req.DueDate != "" {
		dueDate, err = time.Parse(dateLayout, req.DueDate)
		if err != nil {
			return nil, &core.ValidationError{Field: "dueDate", Message: "must be a YYYY-MM-DD date"}
		}
	}

	items := make([]core.LineItem, len(req.Items))
	for i, it := range req.Items {
		items[i] = core.LineItem{
			Description: it.Description,
			Quantity:    it.Quantity,
			UnitPrice:   it.Price,
			GSTRate:     it.GSTRate,
		}
	}

	draft, err := core.BuildBill(req.CustomerID, req.BillNumber, date, dueDate, items)
	if err != nil {
		return nil, err
	}

	bill, err := s.bills.Create(ctx, userID, draft)
	if err != nil {
		return nil, err
	}
	s.log.Info("bill created",
		"user_id", userID, "bill_id", bill.ID, "bill_number", bill.BillNumber, "total", bill.Total)
	return &BillResult{Bill: bill}, nil
}

func (s *appService) ListBills(ctx context.Context, userID int) (*BillListResult, error) {
	bills, err := s.bills.ListForUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &BillListResult{Bills: bills}, nil
}

func (s *appService) GetBill(ctx context.Context, userID, billID int) (*BillResult, error) {
	bill, err := s.bills.GetForUser(ctx, userID, billID)
	if err != nil {
		return nil, err
	}
	return &BillResult{Bill: bill}, nil
}

func (s *appService) UpdateBillStatus(ctx context.Context, userID, billID int, status string) (*BillResult, error) {
	bill, err := s.bills.UpdateStatus(ctx, userID, billID, core.BillStatus(status))
	if err != nil {
		return nil, err
	}
	s.log.Info("bill status updated", "user_id", userID, "bill_id", billID, "status", status)
	return &BillResult{Bill: bill}, nil
}

func (s *appService) GSTSummary(ctx context.Context, userID int) (*GSTSummaryResult, error) {
	bills, err := s.bills.ListForUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &GSTSummaryResult{Summary: core.SummarizeGST(bills)}, nil
}

func (s *appService) StockSummary(ctx context.Context, userID int) (*StockSummaryResult, error) {
	bills, err := s.bills.ListForUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &StockSummaryResult{Summary: core.SummarizeStock(bills)}, nil
}

func (s *appService) Dashboard(ctx context.Context, userID int) (*DashboardResult, error) {
	bills, err := s.bills.ListForUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	customers, err := s.customers.ListForUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	const recent = 5
	return &DashboardResult{
		Metrics:         core.ComputeDashboard(bills),
		TotalCustomers:  len(customers),
		RecentBills:     head(bills, recent),
		RecentCustomers: head(customers, recent),
	}, nil
}

func (s *appService) SubmitFeedback(ctx context.Context, userID int, req FeedbackRequest) error {
	kind := strings.ToLower(strings.TrimSpace(req.Kind))
	if kind == "" {
		kind = "other"
	}
	if !feedbackKinds[kind] {
		return &core.ValidationError{Field: "kind", Message: "must be one of bug, idea, other"}
	}
	message := strings.TrimSpace(req.Message)
	if message == "" {
		return &core.ValidationError{Field: "message", Message: "is required"}
	}

	_, err := s.pool.Exec(ctx,
		"INSERT INTO feedback (user_id, kind, message, page) VALUES ($1, $2, $3, $4)",
		userID, kind, message, req.Page,
	)
	if err != nil {
		return fmt.Errorf("insert feedback: %w", err)
	}
	s.log.Info("feedback received", "user_id", userID, "kind", kind)
	return nil
}

// head returns the first n elements of s without aliasing the backing array
// beyond what the caller already holds.
func head[T any](s []T, n int) []T {
	if len(s) < n {
		n = len(s)
	}
	return s[:n:n]
}
