package core_test

import (
	"reflect"
	"testing"
	"time"

	"gst-billing/internal/core"
)

func billOn(date time.Time, subtotal string, status core.BillStatus, items ...core.LineItem) core.Bill {
	draft, err := core.BuildBill(1, "B-"+date.Format("20060102"), date, date.AddDate(0, 0, 15), items)
	if err != nil {
		panic(err)
	}
	b := core.Bill{
		ID:         1,
		UserID:     1,
		CustomerID: 1,
		BillNumber: draft.BillNumber,
		Date:       date,
		DueDate:    draft.DueDate,
		Subtotal:   draft.Subtotal,
		GSTRate:    draft.GSTRate,
		CGST:       draft.CGST,
		SGST:       draft.SGST,
		Total:      draft.Total,
		Status:     status,
		Items:      draft.Items,
	}
	if subtotal != "" {
		// Override for tests that pin the stored subtotal directly.
		b.Subtotal = dec(subtotal)
	}
	return b
}

func TestSummarizeGST_MonthlyBuckets(t *testing.T) {
	jan := time.Date(2026, time.January, 5, 0, 0, 0, 0, time.Local)
	bills := []core.Bill{
		billOn(jan, "100", core.BillStatusUnpaid, item("A", 1, "100", "18")),
		billOn(jan.AddDate(0, 0, 10), "200", core.BillStatusPaid, item("B", 1, "200", "18")),
	}

	summary := core.SummarizeGST(bills)

	if len(summary.Monthly) != 1 {
		t.Fatalf("expected 1 monthly bucket, got %d", len(summary.Monthly))
	}
	m := summary.Monthly[0]
	if m.Label != "January 2026" {
		t.Errorf("label: want January 2026, got %s", m.Label)
	}
	if !m.Taxable.Equal(dec("300")) {
		t.Errorf("taxable: want 300, got %s", m.Taxable)
	}
	if !m.CGST.Equal(dec("27")) {
		t.Errorf("cgst: want 27, got %s", m.CGST)
	}
	if !m.SGST.Equal(dec("27")) {
		t.Errorf("sgst: want 27, got %s", m.SGST)
	}

	if !summary.Overall.Taxable.Equal(dec("300")) {
		t.Errorf("overall taxable: want 300, got %s", summary.Overall.Taxable)
	}
	if !summary.Overall.Total.Equal(dec("354")) {
		t.Errorf("overall total: want 354, got %s", summary.Overall.Total)
	}
}

func TestSummarizeGST_RecomputesAtFixedRate(t *testing.T) {
	// The bill was created at 0% GST, but the summary applies the fixed 18%
	// rate to the stored subtotal.
	d := time.Date(2026, time.April, 1, 0, 0, 0, 0, time.Local)
	bills := []core.Bill{billOn(d, "", core.BillStatusUnpaid, item("A", 1, "100", "0"))}

	summary := core.SummarizeGST(bills)
	if !summary.Overall.CGST.Equal(dec("9")) {
		t.Errorf("cgst: want 9 (18%% recomputation), got %s", summary.Overall.CGST)
	}
}

func TestSummarizeGST_MonthsSortedChronologically(t *testing.T) {
	bills := []core.Bill{
		billOn(time.Date(2026, time.March, 1, 0, 0, 0, 0, time.Local), "10", core.BillStatusPaid, item("A", 1, "10", "18")),
		billOn(time.Date(2025, time.December, 1, 0, 0, 0, 0, time.Local), "10", core.BillStatusPaid, item("A", 1, "10", "18")),
		billOn(time.Date(2026, time.January, 1, 0, 0, 0, 0, time.Local), "10", core.BillStatusPaid, item("A", 1, "10", "18")),
	}

	summary := core.SummarizeGST(bills)
	want := []string{"December 2025", "January 2026", "March 2026"}
	if len(summary.Monthly) != len(want) {
		t.Fatalf("expected %d buckets, got %d", len(want), len(summary.Monthly))
	}
	for i, label := range want {
		if summary.Monthly[i].Label != label {
			t.Errorf("bucket %d: want %s, got %s", i, label, summary.Monthly[i].Label)
		}
	}
}

func TestSummarizeStock_AggregatesAcrossBills(t *testing.T) {
	d := time.Date(2026, time.February, 1, 0, 0, 0, 0, time.Local)
	bills := []core.Bill{
		billOn(d, "", core.BillStatusUnpaid, item("Widget", 2, "100", "18")),
		billOn(d.AddDate(0, 0, 3), "", core.BillStatusPaid, item("Widget", 3, "100", "18"), item("Gadget", 1, "40", "12")),
	}

	summary := core.SummarizeStock(bills)

	if len(summary.Lines) != 2 {
		t.Fatalf("expected 2 stock lines, got %d", len(summary.Lines))
	}
	// Sorted by description: Gadget, Widget.
	widget := summary.Lines[1]
	if widget.Description != "Widget" {
		t.Fatalf("expected Widget line, got %s", widget.Description)
	}
	if widget.TotalQuantity != 5 {
		t.Errorf("widget quantity: want 5, got %d", widget.TotalQuantity)
	}
	if !widget.TotalValue.Equal(dec("500")) {
		t.Errorf("widget value: want 500, got %s", widget.TotalValue)
	}
	if !widget.UnitValue.Equal(dec("100")) {
		t.Errorf("widget unit value: want 100, got %s", widget.UnitValue)
	}
	if !summary.TotalInventoryValue.Equal(dec("540")) {
		t.Errorf("inventory value: want 540, got %s", summary.TotalInventoryValue)
	}
}

func TestSummarizeStock_DescriptionsAreCaseSensitive(t *testing.T) {
	d := time.Date(2026, time.February, 1, 0, 0, 0, 0, time.Local)
	bills := []core.Bill{
		billOn(d, "", core.BillStatusUnpaid, item("widget", 1, "10", "18"), item("Widget", 1, "10", "18")),
	}

	summary := core.SummarizeStock(bills)
	if len(summary.Lines) != 2 {
		t.Errorf("differently capitalized descriptions must stay distinct, got %d lines", len(summary.Lines))
	}
}

func TestSummarizeStock_Idempotent(t *testing.T) {
	d := time.Date(2026, time.February, 1, 0, 0, 0, 0, time.Local)
	bills := []core.Bill{
		billOn(d, "", core.BillStatusUnpaid, item("Widget", 2, "100", "18")),
		billOn(d, "", core.BillStatusPaid, item("Widget", 3, "100", "18")),
	}
	snapshot := make([]core.Bill, len(bills))
	copy(snapshot, bills)

	first := core.SummarizeStock(bills)
	second := core.SummarizeStock(bills)

	if !reflect.DeepEqual(first, second) {
		t.Error("stock summary is not deterministic across runs")
	}
	if !reflect.DeepEqual(bills, snapshot) {
		t.Error("stock summary mutated its input")
	}
}

func TestComputeDashboard(t *testing.T) {
	d := time.Date(2026, time.May, 1, 0, 0, 0, 0, time.Local)
	bills := []core.Bill{
		billOn(d, "", core.BillStatusUnpaid, item("A", 1, "100", "18")), // total 118
		billOn(d, "", core.BillStatusPaid, item("B", 1, "200", "18")),   // total 236
		billOn(d, "", core.BillStatusOverdue, item("C", 1, "50", "0")),  // total 50
	}

	m := core.ComputeDashboard(bills)

	// Revenue counts every bill regardless of payment status.
	if !m.TotalRevenue.Equal(dec("404")) {
		t.Errorf("revenue: want 404, got %s", m.TotalRevenue)
	}
	// Overdue is not "unpaid" for this counter.
	if m.UnpaidCount != 1 {
		t.Errorf("unpaid count: want 1, got %d", m.UnpaidCount)
	}
}

func TestComputeDashboard_Empty(t *testing.T) {
	m := core.ComputeDashboard(nil)
	if !m.TotalRevenue.IsZero() || m.UnpaidCount != 0 {
		t.Errorf("empty input: want zero metrics, got %+v", m)
	}
}
