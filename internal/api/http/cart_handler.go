package http

import (
	"encoding/json"
	"net/http"
	"time"

	"rentalworks-backend/internal/domain"
	"rentalworks-backend/internal/service"
)

// CartHandler serves the pre-commit cart: add, list, remove, checkout
type CartHandler struct {
	checkout service.CheckoutService
}

// NewCartHandler creates a new cart handler
func NewCartHandler(checkout service.CheckoutService) *CartHandler {
	return &CartHandler{checkout: checkout}
}

type addCartLineRequest struct {
	ProductID int64     `json:"product_id"`
	Start     time.Time `json:"start"`
	End       time.Time `json:"end"`
	Quantity  int64     `json:"quantity"`
}

// HandleAddLine handles POST /cart/lines
func (h *CartHandler) HandleAddLine(w http.ResponseWriter, r *http.Request) {
	customerID, err := headerID(r, headerCustomerID)
	if err != nil {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: err.Error()})
		return
	}

	var req addCartLineRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	line, err := h.checkout.AddCartLine(r.Context(), &domain.CartLine{
		CustomerID: customerID,
		ProductID:  req.ProductID,
		Interval:   domain.RentalInterval{Start: req.Start, End: req.End},
		Quantity:   req.Quantity,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, line)
}

// HandleListLines handles GET /cart
func (h *CartHandler) HandleListLines(w http.ResponseWriter, r *http.Request) {
	customerID, err := headerID(r, headerCustomerID)
	if err != nil {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: err.Error()})
		return
	}

	lines, err := h.checkout.ListCartLines(r.Context(), customerID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"lines": lines})
}

// HandleRemoveLine handles DELETE /cart/lines/{id}
func (h *CartHandler) HandleRemoveLine(w http.ResponseWriter, r *http.Request) {
	customerID, err := headerID(r, headerCustomerID)
	if err != nil {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: err.Error()})
		return
	}
	lineID, err := pathID(r, "id")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	if err := h.checkout.RemoveCartLine(r.Context(), customerID, lineID); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

type checkoutRequest struct {
	DeliveryAddress string `json:"delivery_address"`
	BillingAddress  string `json:"billing_address"`
	CouponCode      string `json:"coupon_code,omitempty"`
}

type checkoutFailureResponse struct {
	VendorID int64  `json:"vendor_id"`
	Error    string `json:"error"`
}

type checkoutResponse struct {
	Orders   []domain.Order            `json:"orders"`
	Failures []checkoutFailureResponse `json:"failures,omitempty"`
}

// HandleCheckout handles POST /cart/checkout. One vendor's shortage
// does not roll back sibling orders, so the response reports both the
// committed orders and the per-vendor failures.
func (h *CartHandler) HandleCheckout(w http.ResponseWriter, r *http.Request) {
	customerID, err := headerID(r, headerCustomerID)
	if err != nil {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: err.Error()})
		return
	}

	var req checkoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	result, err := h.checkout.Checkout(r.Context(), customerID, service.DeliveryInfo{
		DeliveryAddress: req.DeliveryAddress,
		BillingAddress:  req.BillingAddress,
	}, req.CouponCode)
	if err != nil {
		writeError(w, err)
		return
	}

	resp := checkoutResponse{Orders: result.Orders}
	for _, f := range result.Failures {
		resp.Failures = append(resp.Failures, checkoutFailureResponse{
			VendorID: f.VendorID,
			Error:    f.Err.Error(),
		})
	}

	status := http.StatusCreated
	if len(result.Orders) == 0 {
		status = http.StatusConflict
	} else if len(result.Failures) > 0 {
		status = http.StatusMultiStatus
	}
	writeJSON(w, status, resp)
}
