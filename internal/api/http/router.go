package http

import (
	"net/http"

	"rentalworks-backend/internal/service"

	"github.com/gorilla/mux"
)

// NewRouter wires all handlers under /api/v1.
func NewRouter(
	availability service.AvailabilityService,
	checkout service.CheckoutService,
	orders service.OrderService,
	invoices service.InvoiceService,
	coupons service.CouponService,
) *mux.Router {
	availabilityHandler := NewAvailabilityHandler(availability)
	cartHandler := NewCartHandler(checkout)
	orderHandler := NewOrderHandler(orders)
	invoiceHandler := NewInvoiceHandler(invoices)
	couponHandler := NewCouponHandler(coupons)

	r := mux.NewRouter()
	r.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods(http.MethodGet)

	api := r.PathPrefix("/api/v1").Subrouter()

	api.HandleFunc("/products/{id}/availability", availabilityHandler.HandleCheck).Methods(http.MethodGet)

	api.HandleFunc("/cart", cartHandler.HandleListLines).Methods(http.MethodGet)
	api.HandleFunc("/cart/lines", cartHandler.HandleAddLine).Methods(http.MethodPost)
	api.HandleFunc("/cart/lines/{id}", cartHandler.HandleRemoveLine).Methods(http.MethodDelete)
	api.HandleFunc("/cart/checkout", cartHandler.HandleCheckout).Methods(http.MethodPost)

	api.HandleFunc("/orders", orderHandler.HandleList).Methods(http.MethodGet)
	api.HandleFunc("/orders/{id}", orderHandler.HandleGet).Methods(http.MethodGet)
	api.HandleFunc("/orders/{id}/transition", orderHandler.HandleTransition).Methods(http.MethodPost)
	api.HandleFunc("/orders/{id}/invoice", invoiceHandler.HandleCreate).Methods(http.MethodPost)
	api.HandleFunc("/quotations", orderHandler.HandleCreateQuotation).Methods(http.MethodPost)

	api.HandleFunc("/invoices/{id}", invoiceHandler.HandleGet).Methods(http.MethodGet)
	api.HandleFunc("/invoices/{id}/post", invoiceHandler.HandlePost).Methods(http.MethodPost)
	api.HandleFunc("/invoices/{id}/payments", invoiceHandler.HandleRegisterPayment).Methods(http.MethodPost)

	api.HandleFunc("/coupons/validate", couponHandler.HandleValidate).Methods(http.MethodPost)

	return r
}
