package web

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"gst-billing/internal/app"
	"gst-billing/internal/logging"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Handler holds the ApplicationService, the chi router, and the shared
// request plumbing (JWT secret, DTO validator, logger, log recorder).
type Handler struct {
	svc       app.ApplicationService
	router    chi.Router
	jwtSecret string
	validate  *validator.Validate
	log       *slog.Logger
	recorder  *logging.Recorder
}

// NewHandler creates and wires the chi router with all routes.
func NewHandler(
	svc app.ApplicationService,
	allowedOrigins, jwtSecret string,
	log *slog.Logger,
	recorder *logging.Recorder,
) http.Handler {
	h := &Handler{
		svc:       svc,
		jwtSecret: jwtSecret,
		validate:  validator.New(),
		log:       log,
		recorder:  recorder,
	}

	r := chi.NewRouter()
	r.Use(RequestID)
	r.Use(Logger(log))
	r.Use(Recoverer(log))
	r.Use(CORS(allowedOrigins))
	r.Use(Metrics)

	// Public endpoints.
	r.Get("/api/health", h.health)
	r.Handle("/metrics", promhttp.Handler())
	r.Group(func(r chi.Router) {
		r.Use(RequestBodyLimit(1 << 20)) // 1 MB
		r.Post("/api/auth/register", h.register)
		r.Post("/api/auth/login", h.login)
		r.Post("/api/auth/logout", h.logout)
	})

	// Protected API routes: 401 JSON if unauthenticated, 1 MB body limit.
	r.Group(func(r chi.Router) {
		r.Use(h.RequireAuth)
		r.Use(RequestBodyLimit(1 << 20))

		r.Get("/api/auth/me", h.me)

		r.Get("/api/customers", h.listCustomers)
		r.Post("/api/customers", h.createCustomer)

		r.Get("/api/bills", h.listBills)
		r.Post("/api/bills", h.createBill)
		r.Get("/api/bills/{id}", h.getBill)
		r.Patch("/api/bills/{id}/status", h.updateBillStatus)

		r.Get("/api/reports/gst", h.gstReport)
		r.Get("/api/reports/stock", h.stockReport)
		r.Get("/api/reports/dashboard", h.dashboardReport)

		r.Post("/api/feedback", h.submitFeedback)
		r.Get("/api/logs", h.recentLogs)
	})

	h.router = r
	return r
}

// health reports liveness.
func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	type response struct {
		Status string `json:"status"`
	}
	writeJSON(w, response{Status: "ok"})
}

// decodeJSON decodes the request body into v and returns false + writes an appropriate
// error response on failure. Returns HTTP 413 when the body exceeds the size limit set
// by RequestBodyLimit middleware; HTTP 400 for all other decode errors.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			writeError(w, r, "request body too large", "REQUEST_TOO_LARGE", http.StatusRequestEntityTooLarge)
			return false
		}
		writeError(w, r, "invalid JSON body: "+err.Error(), "BAD_REQUEST", http.StatusBadRequest)
		return false
	}
	return true
}

// validateRequest runs struct tag validation on a decoded DTO, writing a 400
// naming the first offending field on failure.
func (h *Handler) validateRequest(w http.ResponseWriter, r *http.Request, v any) bool {
	err := h.validate.Struct(v)
	if err == nil {
		return true
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		writeError(w, r, "invalid field: "+verrs[0].Namespace(), "VALIDATION_ERROR", http.StatusBadRequest)
		return false
	}
	writeError(w, r, "invalid request", "VALIDATION_ERROR", http.StatusBadRequest)
	return false
}
