package http

import (
	"encoding/json"
	"net/http"

	"rentalworks-backend/internal/domain"
	"rentalworks-backend/internal/service"
)

// InvoiceHandler serves invoice issuance, posting and the payment ledger
type InvoiceHandler struct {
	invoices service.InvoiceService
}

// NewInvoiceHandler creates a new invoice handler
func NewInvoiceHandler(invoices service.InvoiceService) *InvoiceHandler {
	return &InvoiceHandler{invoices: invoices}
}

// HandleCreate handles POST /orders/{id}/invoice
func (h *InvoiceHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	orderID, err := pathID(r, "id")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	invoice, err := h.invoices.CreateInvoice(r.Context(), orderID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, invoice)
}

// HandleGet handles GET /invoices/{id}
func (h *InvoiceHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	invoiceID, err := pathID(r, "id")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	invoice, err := h.invoices.GetInvoice(r.Context(), invoiceID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, invoice)
}

// HandlePost handles POST /invoices/{id}/post
func (h *InvoiceHandler) HandlePost(w http.ResponseWriter, r *http.Request) {
	invoiceID, err := pathID(r, "id")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	invoice, err := h.invoices.PostInvoice(r.Context(), invoiceID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, invoice)
}

type registerPaymentRequest struct {
	AmountCents int64  `json:"amount_cents"`
	Method      string `json:"method"`
	Partial     bool   `json:"partial"`
}

// HandleRegisterPayment handles POST /invoices/{id}/payments
func (h *InvoiceHandler) HandleRegisterPayment(w http.ResponseWriter, r *http.Request) {
	invoiceID, err := pathID(r, "id")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	var req registerPaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	invoice, err := h.invoices.RegisterPayment(r.Context(), invoiceID, req.AmountCents, domain.PaymentMethod(req.Method), req.Partial)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, invoice)
}
