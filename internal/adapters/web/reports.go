package web

import (
	"net/http"

	"gst-billing/internal/core"
)

// gstReport handles GET /api/reports/gst.
func (h *Handler) gstReport(w http.ResponseWriter, r *http.Request) {
	claims := authFromContext(r.Context())

	res, err := h.svc.GSTSummary(r.Context(), claims.UserID)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	summary := res.Summary
	if summary.Monthly == nil {
		summary.Monthly = []core.MonthlyGST{}
	}
	writeJSON(w, summary)
}

// stockReport handles GET /api/reports/stock.
func (h *Handler) stockReport(w http.ResponseWriter, r *http.Request) {
	claims := authFromContext(r.Context())

	res, err := h.svc.StockSummary(r.Context(), claims.UserID)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	summary := res.Summary
	if summary.Lines == nil {
		summary.Lines = []core.StockLine{}
	}
	writeJSON(w, summary)
}

// dashboardReport handles GET /api/reports/dashboard.
func (h *Handler) dashboardReport(w http.ResponseWriter, r *http.Request) {
	claims := authFromContext(r.Context())

	res, err := h.svc.Dashboard(r.Context(), claims.UserID)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	type response struct {
		Metrics         core.DashboardMetrics `json:"metrics"`
		TotalCustomers  int                   `json:"total_customers"`
		RecentBills     []core.Bill           `json:"recent_bills"`
		RecentCustomers []core.Customer       `json:"recent_customers"`
	}
	resp := response{
		Metrics:         res.Metrics,
		TotalCustomers:  res.TotalCustomers,
		RecentBills:     res.RecentBills,
		RecentCustomers: res.RecentCustomers,
	}
	if resp.RecentBills == nil {
		resp.RecentBills = []core.Bill{}
	}
	if resp.RecentCustomers == nil {
		resp.RecentCustomers = []core.Customer{}
	}
	writeJSON(w, resp)
}
