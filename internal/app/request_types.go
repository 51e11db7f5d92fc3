package app

import "github.com/shopspring/decimal"

// RegisterRequest is the input for creating a new user account.
type RegisterRequest struct {
	Username     string
	Password     string
	BusinessName string
}

// CustomerRequest is the input for creating a customer.
type CustomerRequest struct {
	Name    string
	Email   string
	Phone   string
	Address string
}

// LineItemInput is a single line within a CreateBillRequest.
type LineItemInput struct {
	Description string
	Quantity    int
	Price       decimal.Decimal
	GSTRate     decimal.Decimal
}

// CreateBillRequest is the input for creating a bill. Date fields are
// YYYY-MM-DD strings; amounts and GST are computed from Items, never
// accepted from the caller.
type CreateBillRequest struct {
	CustomerID int
	BillNumber string
	Date       string
	DueDate    string // optional; defaults to 30 days after Date
	Items      []LineItemInput
}

// FeedbackRequest is the input for submitting user feedback.
type FeedbackRequest struct {
	Kind    string // "bug", "idea", "other"
	Message string
	Page    string // optional; the screen the feedback was sent from
}
