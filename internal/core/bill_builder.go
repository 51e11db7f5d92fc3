package core

import (
	"fmt"
	"strings"
	"time"
)

// BuildBill validates the line items and computes the bill's monetary fields.
// Totals are always computed here, server-side; derived fields supplied by a
// client are ignored by callers.
//
// Per item: amount = round2(quantity × unitPrice), and each GST half
// contribution = round2(amount × gstRate / 200). Rounding every intermediate
// to currency precision keeps repeated summation drift-free; see DESIGN.md
// for the rounding policy.
//
// The draft's status is always "unpaid". Persistence is BillService's job.
func BuildBill(customerID int, billNumber string, date, dueDate time.Time, items []LineItem) (*BillDraft, error) {
	if customerID <= 0 {
		return nil, validationErrorf("customerId", "must reference a customer")
	}
	if strings.TrimSpace(billNumber) == "" {
		return nil, validationErrorf("billNumber", "is required")
	}
	if len(items) == 0 {
		return nil, validationErrorf("items", "at least one line item is required")
	}

	draft := &BillDraft{
		CustomerID: customerID,
		BillNumber: billNumber,
		Date:       date,
		DueDate:    dueDate,
		GSTRate:    DefaultGSTRate,
		Status:     BillStatusUnpaid,
		Items:      append([]LineItem(nil), items...),
	}

	for i, item := range items {
		field := fmt.Sprintf("items[%d]", i)
		if strings.TrimSpace(item.Description) == "" {
			return nil, validationErrorf(field+".description", "is required")
		}
		if item.Quantity < 1 {
			return nil, validationErrorf(field+".quantity", "must be at least 1")
		}
		if item.UnitPrice.IsNegative() {
			return nil, validationErrorf(field+".price", "cannot be negative")
		}
		if item.GSTRate.IsNegative() {
			return nil, validationErrorf(field+".gstRate", "cannot be negative")
		}

		amount := item.Amount()
		half := amount.Mul(item.GSTRate).Div(twoHundred).Round(2)
		draft.Subtotal = draft.Subtotal.Add(amount)
		draft.CGST = draft.CGST.Add(half)
	}

	// SGST mirrors CGST by construction rather than being summed separately.
	draft.SGST = draft.CGST
	draft.Total = draft.Subtotal.Add(draft.CGST).Add(draft.SGST)
	return draft, nil
}
