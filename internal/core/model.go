package core

import (
	"time"

	"github.com/shopspring/decimal"
)

// BillStatus is the payment state of a bill. Transitions are unconstrained:
// any status may be set from any other by the owning user.
type BillStatus string

const (
	BillStatusUnpaid  BillStatus = "unpaid"
	BillStatusPaid    BillStatus = "paid"
	BillStatusOverdue BillStatus = "overdue"
)

// Valid reports whether s is one of the known bill statuses.
func (s BillStatus) Valid() bool {
	switch s {
	case BillStatusUnpaid, BillStatusPaid, BillStatusOverdue:
		return true
	}
	return false
}

// UnknownCustomerName is substituted when a bill references a customer row
// that no longer exists. Reports must not fail on dangling references.
const UnknownCustomerName = "Unknown customer"

// User is the root of the ownership hierarchy: every customer and bill
// belongs to exactly one user, and all reads and writes are scoped by it.
type User struct {
	ID           int       `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	BusinessName string    `json:"business_name"`
	CreatedAt    time.Time `json:"created_at"`
}

// Customer is a billing counterparty owned by a single user.
type Customer struct {
	ID        int       `json:"id"`
	UserID    int       `json:"user_id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Address   string    `json:"address"`
	CreatedAt time.Time `json:"created_at"`
}

// LineItem is one row on a bill. It exists during bill construction and as
// a typed sub-record of a persisted bill; it is never mutated afterwards.
// JSON field names match the historical wire format (price, gstRate).
type LineItem struct {
	Description string          `json:"description"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"price"`
	GSTRate     decimal.Decimal `json:"gstRate"`
}

// Amount returns quantity × unit price rounded to currency precision.
func (li LineItem) Amount() decimal.Decimal {
	return li.UnitPrice.Mul(decimal.NewFromInt(int64(li.Quantity))).Round(2)
}

// Bill is a persisted GST invoice. Monetary fields hold currency-precision
// decimals and satisfy:
//
//	subtotal = Σ item amounts
//	cgst     = Σ round2(amount × rate / 200)
//	sgst     = cgst (equal split by construction)
//	total    = subtotal + cgst + sgst
type Bill struct {
	ID           int             `json:"id"`
	UserID       int             `json:"user_id"`
	CustomerID   int             `json:"customer_id"`
	CustomerName string          `json:"customer_name"`
	BillNumber   string          `json:"bill_number"`
	Date         time.Time       `json:"date"`
	DueDate      time.Time       `json:"due_date"`
	Subtotal     decimal.Decimal `json:"subtotal"`
	GSTRate      decimal.Decimal `json:"gst_rate"`
	CGST         decimal.Decimal `json:"cgst"`
	SGST         decimal.Decimal `json:"sgst"`
	Total        decimal.Decimal `json:"total"`
	Status       BillStatus      `json:"status"`
	Items        []LineItem      `json:"items"`
	CreatedAt    time.Time       `json:"created_at"`
}

// BillDraft is a fully computed bill that has not been persisted yet.
// Assigning an id, owner, and timestamps is the BillService's job.
type BillDraft struct {
	CustomerID int
	BillNumber string
	Date       time.Time
	DueDate    time.Time
	Subtotal   decimal.Decimal
	GSTRate    decimal.Decimal
	CGST       decimal.Decimal
	SGST       decimal.Decimal
	Total      decimal.Decimal
	Status     BillStatus
	Items      []LineItem
}
