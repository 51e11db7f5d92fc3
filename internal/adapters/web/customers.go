package web

import (
	"net/http"

	"gst-billing/internal/app"
	"gst-billing/internal/core"
)

// listCustomers handles GET /api/customers.
func (h *Handler) listCustomers(w http.ResponseWriter, r *http.Request) {
	claims := authFromContext(r.Context())

	res, err := h.svc.ListCustomers(r.Context(), claims.UserID)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	type response struct {
		Customers []core.Customer `json:"customers"`
	}
	customers := res.Customers
	if customers == nil {
		customers = []core.Customer{}
	}
	writeJSON(w, response{Customers: customers})
}

// createCustomer handles POST /api/customers.
func (h *Handler) createCustomer(w http.ResponseWriter, r *http.Request) {
	claims := authFromContext(r.Context())

	var req struct {
		Name    string `json:"name" validate:"required,max=200"`
		Email   string `json:"email" validate:"omitempty,email,max=254"`
		Phone   string `json:"phone" validate:"omitempty,max=20"`
		Address string `json:"address" validate:"omitempty,max=500"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	if !h.validateRequest(w, r, &req) {
		return
	}

	res, err := h.svc.CreateCustomer(r.Context(), claims.UserID, app.CustomerRequest{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Address: req.Address,
	})
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSONStatus(w, http.StatusCreated, res.Customer)
}
