package domain

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound        = errors.New("resource not found")
	ErrInvalidInterval = errors.New("rental interval end must be after start")
	ErrInvalidQuantity = errors.New("quantity must be at least 1")
	ErrInactiveProduct = errors.New("product is not active")
	ErrEmptyCart       = errors.New("cart is empty, nothing to check out")

	ErrInvoiceAlreadyExists = errors.New("an invoice already exists for this order")
	ErrOrderNotInvoiceable  = errors.New("order status does not allow invoicing")
	ErrInvoiceNotPayable    = errors.New("invoice is not open for payments")
	ErrInvalidPaymentAmount = errors.New("payment amount must be positive")
	ErrOverpaymentRejected  = errors.New("payment exceeds the outstanding balance")

	ErrPartialPaymentNotAllowed = errors.New("no further partial payments are allowed on this invoice")
	ErrPartialPaymentTooSmall   = errors.New("partial payment is below the minimum fraction of the outstanding balance")

	ErrCouponNotFound      = errors.New("coupon not found")
	ErrCouponExpired       = errors.New("coupon is expired or not active")
	ErrCouponMinimumNotMet = errors.New("order amount is below the coupon minimum")

	ErrConcurrentModification = errors.New("record was modified concurrently, retry with fresh state")
)

// InsufficientStockError reports the actual remaining quantity so the
// caller can offer a reduced-quantity retry.
type InsufficientStockError struct {
	ProductID int64
	Requested int64
	Available int64
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for product %d: requested %d, available %d",
		e.ProductID, e.Requested, e.Available)
}

// InvalidTransitionError reports both the current and the attempted
// status; the order is left unchanged.
type InvalidTransitionError struct {
	From OrderStatus
	To   OrderStatus
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalid order transition from %s to %s", e.From, e.To)
}
