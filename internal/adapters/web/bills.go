package web

import (
	"net/http"
	"strconv"

	"gst-billing/internal/app"
	"gst-billing/internal/core"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
)

// billID extracts and parses the {id} URL parameter.
func billID(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || id < 1 {
		writeError(w, r, "invalid bill id", "BAD_REQUEST", http.StatusBadRequest)
		return 0, false
	}
	return id, true
}

// listBills handles GET /api/bills.
func (h *Handler) listBills(w http.ResponseWriter, r *http.Request) {
	claims := authFromContext(r.Context())

	res, err := h.svc.ListBills(r.Context(), claims.UserID)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	type response struct {
		Bills []core.Bill `json:"bills"`
	}
	bills := res.Bills
	if bills == nil {
		bills = []core.Bill{}
	}
	writeJSON(w, response{Bills: bills})
}

// createBill handles POST /api/bills. The request carries line items only;
// subtotal, CGST, SGST and total are computed server-side.
func (h *Handler) createBill(w http.ResponseWriter, r *http.Request) {
	claims := authFromContext(r.Context())

	type lineItem struct {
		Description string          `json:"description"`
		Quantity    int             `json:"quantity"`
		Price       decimal.Decimal `json:"price"`
		GSTRate     decimal.Decimal `json:"gstRate"`
	}
	var req struct {
		CustomerID int        `json:"customerId" validate:"required,min=1"`
		BillNumber string     `json:"billNumber" validate:"required,max=50"`
		Date       string     `json:"date" validate:"required"`
		DueDate    string     `json:"dueDate"`
		Items      []lineItem `json:"items" validate:"required,min=1,max=100"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	if !h.validateRequest(w, r, &req) {
		return
	}

	items := make([]app.LineItemInput, len(req.Items))
	for i, it := range req.Items {
		items[i] = app.LineItemInput{
			Description: it.Description,
			Quantity:    it.Quantity,
			Price:       it.Price,
			GSTRate:     it.GSTRate,
		}
	}

	res, err := h.svc.CreateBill(r.Context(), claims.UserID, app.CreateBillRequest{
		CustomerID: req.CustomerID,
		BillNumber: req.BillNumber,
		Date:       req.Date,
		DueDate:    req.DueDate,
		Items:      items,
	})
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSONStatus(w, http.StatusCreated, res.Bill)
}

// getBill handles GET /api/bills/{id}.
func (h *Handler) getBill(w http.ResponseWriter, r *http.Request) {
	claims := authFromContext(r.Context())
	id, ok := billID(w, r)
	if !ok {
		return
	}

	res, err := h.svc.GetBill(r.Context(), claims.UserID, id)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, res.Bill)
}

// updateBillStatus handles PATCH /api/bills/{id}/status.
func (h *Handler) updateBillStatus(w http.ResponseWriter, r *http.Request) {
	claims := authFromContext(r.Context())
	id, ok := billID(w, r)
	if !ok {
		return
	}

	var req struct {
		Status string `json:"status" validate:"required"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	if !h.validateRequest(w, r, &req) {
		return
	}

	res, err := h.svc.UpdateBillStatus(r.Context(), claims.UserID, id, req.Status)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, res.Bill)
}
