package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"rentalworks-backend/internal/domain"
	"rentalworks-backend/internal/logger"
)

type errorResponse struct {
	Error   string                 `json:"error"`
	Details map[string]interface{} `json:"details,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if body != nil {
		if err := json.NewEncoder(w).Encode(body); err != nil {
			logger.Error("failed to encode response", "error", err)
		}
	}
}

// writeError maps domain errors onto HTTP statuses. Failure payloads
// carry enough detail for the caller to act: stock shortages report the
// remaining quantity, transition failures the current and attempted
// status.
func writeError(w http.ResponseWriter, err error) {
	var stockErr *domain.InsufficientStockError
	if errors.As(err, &stockErr) {
		writeJSON(w, http.StatusConflict, errorResponse{
			Error: stockErr.Error(),
			Details: map[string]interface{}{
				"product_id": stockErr.ProductID,
				"requested":  stockErr.Requested,
				"available":  stockErr.Available,
			},
		})
		return
	}

	var transitionErr *domain.InvalidTransitionError
	if errors.As(err, &transitionErr) {
		writeJSON(w, http.StatusConflict, errorResponse{
			Error: transitionErr.Error(),
			Details: map[string]interface{}{
				"from": transitionErr.From,
				"to":   transitionErr.To,
			},
		})
		return
	}

	switch {
	case errors.Is(err, domain.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: err.Error()})
	case errors.Is(err, domain.ErrInvalidInterval),
		errors.Is(err, domain.ErrInvalidQuantity),
		errors.Is(err, domain.ErrInvalidPaymentAmount):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
	case errors.Is(err, domain.ErrConcurrentModification),
		errors.Is(err, domain.ErrInvoiceAlreadyExists):
		writeJSON(w, http.StatusConflict, errorResponse{Error: err.Error()})
	case errors.Is(err, domain.ErrEmptyCart),
		errors.Is(err, domain.ErrInactiveProduct),
		errors.Is(err, domain.ErrOrderNotInvoiceable),
		errors.Is(err, domain.ErrInvoiceNotPayable),
		errors.Is(err, domain.ErrOverpaymentRejected),
		errors.Is(err, domain.ErrPartialPaymentNotAllowed),
		errors.Is(err, domain.ErrPartialPaymentTooSmall),
		errors.Is(err, domain.ErrCouponNotFound),
		errors.Is(err, domain.ErrCouponExpired),
		errors.Is(err, domain.ErrCouponMinimumNotMet):
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: err.Error()})
	default:
		logger.Error("internal error", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
	}
}
