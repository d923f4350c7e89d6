package http

import (
	"encoding/json"
	"net/http"

	"rentalworks-backend/internal/service"
)

// CouponHandler serves advisory coupon validation for the storefront
type CouponHandler struct {
	coupons service.CouponService
}

// NewCouponHandler creates a new coupon handler
func NewCouponHandler(coupons service.CouponService) *CouponHandler {
	return &CouponHandler{coupons: coupons}
}

type validateCouponRequest struct {
	Code        string `json:"code"`
	AmountCents int64  `json:"amount_cents"`
}

type validateCouponResponse struct {
	Code          string `json:"code"`
	DiscountCents int64  `json:"discount_cents"`
}

// HandleValidate handles POST /coupons/validate. The result is advisory:
// checkout re-evaluates the coupon against the final order amount.
func (h *CouponHandler) HandleValidate(w http.ResponseWriter, r *http.Request) {
	var req validateCouponRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	discount, err := h.coupons.ValidateCoupon(r.Context(), req.Code, req.AmountCents)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, validateCouponResponse{
		Code:          req.Code,
		DiscountCents: discount,
	})
}
