package core

import (
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// ── Report types ──────────────────────────────────────────────────────────────

// GSTTotals is the overall tax position across a set of bills.
type GSTTotals struct {
	Taxable decimal.Decimal `json:"taxable"`
	CGST    decimal.Decimal `json:"cgst"`
	SGST    decimal.Decimal `json:"sgst"`
	Total   decimal.Decimal `json:"total"`
}

// MonthlyGST is one calendar-month bucket of the GST summary.
// Label is the viewer-local month name and year, e.g. "January 2026".
type MonthlyGST struct {
	Label   string          `json:"month"`
	Year    int             `json:"-"`
	Month   time.Month      `json:"-"`
	Taxable decimal.Decimal `json:"taxable"`
	CGST    decimal.Decimal `json:"cgst"`
	SGST    decimal.Decimal `json:"sgst"`
}

// GSTSummary is the filing-oriented tax report: overall totals plus a
// per-month breakdown, ordered chronologically.
type GSTSummary struct {
	Overall GSTTotals    `json:"overall"`
	Monthly []MonthlyGST `json:"monthly"`
}

// StockLine is the rollup of a single item description across all bills.
type StockLine struct {
	Description   string          `json:"description"`
	TotalQuantity int             `json:"total_quantity"`
	UnitValue     decimal.Decimal `json:"unit_value"`
	TotalValue    decimal.Decimal `json:"total_value"`
}

// StockSummary aggregates every billed line item by exact description,
// serving as a proxy inventory-movement report.
type StockSummary struct {
	TotalInventoryValue decimal.Decimal `json:"total_inventory_value"`
	Lines               []StockLine     `json:"lines"`
}

// DashboardMetrics are the headline figures shown on the dashboard.
type DashboardMetrics struct {
	// TotalRevenue sums bill totals regardless of status; unpaid and overdue
	// bills count toward it.
	TotalRevenue decimal.Decimal `json:"total_revenue"`
	// UnpaidCount counts bills whose status is exactly "unpaid".
	// Overdue bills are excluded on purpose.
	UnpaidCount int `json:"unpaid_count"`
}

// ── Aggregations ──────────────────────────────────────────────────────────────

// SummarizeGST builds the GST summary over a set of persisted bills.
//
// Tax figures are recomputed from each bill's stored subtotal at the fixed
// default rate, not read from the bill's stored cgst/sgst columns. Bills
// created at a different rate therefore report at 18% here.
// Monthly buckets are keyed by (month, year) of the bill date in the local
// calendar and returned in chronological order.
func SummarizeGST(bills []Bill) GSTSummary {
	var summary GSTSummary

	type bucketKey struct {
		year  int
		month time.Month
	}
	buckets := make(map[bucketKey]*MonthlyGST)

	for _, bill := range bills {
		// Stored subtotals are non-negative by construction, so the fixed-rate
		// recomputation cannot fail.
		gst, _ := ComputeGST(bill.Subtotal, DefaultGSTRate)

		summary.Overall.Taxable = summary.Overall.Taxable.Add(bill.Subtotal)
		summary.Overall.CGST = summary.Overall.CGST.Add(gst.CGST)
		summary.Overall.SGST = summary.Overall.SGST.Add(gst.SGST)
		summary.Overall.Total = summary.Overall.Total.Add(gst.Total)

		key := bucketKey{year: bill.Date.Year(), month: bill.Date.Month()}
		b, ok := buckets[key]
		if !ok {
			b = &MonthlyGST{
				Label: fmt.Sprintf("%s %d", key.month, key.year),
				Year:  key.year,
				Month: key.month,
			}
			buckets[key] = b
		}
		b.Taxable = b.Taxable.Add(bill.Subtotal)
		b.CGST = b.CGST.Add(gst.CGST)
		b.SGST = b.SGST.Add(gst.SGST)
	}

	summary.Monthly = make([]MonthlyGST, 0, len(buckets))
	for _, b := range buckets {
		summary.Monthly = append(summary.Monthly, *b)
	}
	sort.Slice(summary.Monthly, func(i, j int) bool {
		a, b := summary.Monthly[i], summary.Monthly[j]
		if a.Year != b.Year {
			return a.Year < b.Year
		}
		return a.Month < b.Month
	})
	return summary
}

// SummarizeStock rolls up every bill's line items by exact description
// (capitalization matters: "Widget" and "widget" are distinct items).
// UnitValue is the quantity-weighted average value per unit; TotalQuantity
// is always ≥ 1 for any line that appears, so the division is safe.
// Lines are returned sorted by description. The input is never mutated.
func SummarizeStock(bills []Bill) StockSummary {
	acc := make(map[string]*StockLine)

	for _, bill := range bills {
		for _, item := range bill.Items {
			line, ok := acc[item.Description]
			if !ok {
				line = &StockLine{Description: item.Description}
				acc[item.Description] = line
			}
			line.TotalQuantity += item.Quantity
			line.TotalValue = line.TotalValue.Add(item.Amount())
		}
	}

	var summary StockSummary
	summary.Lines = make([]StockLine, 0, len(acc))
	for _, line := range acc {
		line.UnitValue = line.TotalValue.Div(decimal.NewFromInt(int64(line.TotalQuantity))).Round(2)
		summary.TotalInventoryValue = summary.TotalInventoryValue.Add(line.TotalValue)
		summary.Lines = append(summary.Lines, *line)
	}
	sort.Slice(summary.Lines, func(i, j int) bool {
		return summary.Lines[i].Description < summary.Lines[j].Description
	})
	return summary
}

// ComputeDashboard derives the headline metrics from a set of bills.
func ComputeDashboard(bills []Bill) DashboardMetrics {
	var m DashboardMetrics
	for _, bill := range bills {
		m.TotalRevenue = m.TotalRevenue.Add(bill.Total)
		if bill.Status == BillStatusUnpaid {
			m.UnpaidCount++
		}
	}
	return m
}
