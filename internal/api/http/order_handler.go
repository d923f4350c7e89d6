package http

import (
	"encoding/json"
	"net/http"
	"time"

	"rentalworks-backend/internal/domain"
	"rentalworks-backend/internal/service"
)

// OrderHandler serves order reads, lifecycle transitions and the
// vendor-side quotation flow
type OrderHandler struct {
	orders service.OrderService
}

// NewOrderHandler creates a new order handler
func NewOrderHandler(orders service.OrderService) *OrderHandler {
	return &OrderHandler{orders: orders}
}

// HandleGet handles GET /orders/{id}
func (h *OrderHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	requester, err := requesterID(r)
	if err != nil {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: err.Error()})
		return
	}
	orderID, err := pathID(r, "id")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	order, err := h.orders.GetOrder(r.Context(), requester, orderID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, order)
}

// HandleList handles GET /orders?status=...&page=...&page_size=...
func (h *OrderHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	customerID, err := headerID(r, headerCustomerID)
	if err != nil {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: err.Error()})
		return
	}

	page := queryInt(r, "page", 1)
	pageSize := queryInt(r, "page_size", 20)
	status := r.URL.Query().Get("status")

	orders, total, err := h.orders.ListOrders(r.Context(), customerID, status, page, pageSize)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"orders":    orders,
		"total":     total,
		"page":      page,
		"page_size": pageSize,
	})
}

type transitionRequest struct {
	Action         string `json:"action"`
	Notes          string `json:"notes,omitempty"`
	DamageFeeCents int64  `json:"damage_fee_cents,omitempty"`
}

// HandleTransition handles POST /orders/{id}/transition
func (h *OrderHandler) HandleTransition(w http.ResponseWriter, r *http.Request) {
	orderID, err := pathID(r, "id")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	var req transitionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	action := domain.OrderAction(req.Action)
	if _, ok := action.TargetStatus(); !ok {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "unknown action: " + req.Action})
		return
	}

	order, err := h.orders.Transition(r.Context(), orderID, action, service.TransitionOptions{
		Notes:          req.Notes,
		DamageFeeCents: req.DamageFeeCents,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, order)
}

type quotationLineRequest struct {
	ProductID int64     `json:"product_id"`
	Start     time.Time `json:"start"`
	End       time.Time `json:"end"`
	Quantity  int64     `json:"quantity"`
}

type quotationRequest struct {
	CustomerID      int64                  `json:"customer_id"`
	Lines           []quotationLineRequest `json:"lines"`
	DeliveryAddress string                 `json:"delivery_address"`
	BillingAddress  string                 `json:"billing_address"`
}

// HandleCreateQuotation handles POST /quotations. Vendor identity comes
// from the header; quotations are always drafted on behalf of a named
// customer.
func (h *OrderHandler) HandleCreateQuotation(w http.ResponseWriter, r *http.Request) {
	vendorID, err := headerID(r, headerVendorID)
	if err != nil {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: err.Error()})
		return
	}

	var req quotationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	svcReq := service.QuotationRequest{
		CustomerID: req.CustomerID,
		VendorID:   vendorID,
		Delivery: service.DeliveryInfo{
			DeliveryAddress: req.DeliveryAddress,
			BillingAddress:  req.BillingAddress,
		},
	}
	for _, l := range req.Lines {
		svcReq.Lines = append(svcReq.Lines, service.QuotationLine{
			ProductID: l.ProductID,
			Interval:  domain.RentalInterval{Start: l.Start, End: l.End},
			Quantity:  l.Quantity,
		})
	}

	order, err := h.orders.CreateQuotation(r.Context(), svcReq)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, order)
}
