package service

import (
	"context"

	"rentalworks-backend/internal/domain"
)

type AvailabilityService interface {
	// CheckAvailability returns the remaining quantity for the product
	// over the interval. Advisory only: the commit path re-checks
	// inside its transaction and that result alone can block a commit.
	CheckAvailability(ctx context.Context, productID int64, interval domain.RentalInterval) (int64, error)
}

// DeliveryInfo is the address pair captured on each order at commit.
type DeliveryInfo struct {
	DeliveryAddress string
	BillingAddress  string
}

// CheckoutFailure reports one vendor order that could not be created.
// Sibling orders in a multi-vendor cart proceed independently.
type CheckoutFailure struct {
	VendorID int64
	Err      error
}

type CheckoutResult struct {
	Orders   []domain.Order
	Failures []CheckoutFailure
}

type CheckoutService interface {
	AddCartLine(ctx context.Context, line *domain.CartLine) (*domain.CartLine, error)
	ListCartLines(ctx context.Context, customerID int64) ([]domain.CartLine, error)
	RemoveCartLine(ctx context.Context, customerID, lineID int64) error
	// Checkout converts the customer's cart into one order per vendor.
	Checkout(ctx context.Context, customerID int64, delivery DeliveryInfo, couponCode string) (*CheckoutResult, error)
}

// QuotationLine is one requested line of an ERP-drafted quotation.
type QuotationLine struct {
	ProductID int64
	Interval  domain.RentalInterval
	Quantity  int64
}

type QuotationRequest struct {
	CustomerID int64
	VendorID   int64
	Lines      []QuotationLine
	Delivery   DeliveryInfo
}

// TransitionOptions carries operator input for pickup/return.
type TransitionOptions struct {
	Notes          string
	DamageFeeCents int64
}

type OrderService interface {
	// CreateQuotation drafts a priced order in QUOTATION for the
	// vendor/ERP flow. Cart checkout never produces quotations.
	CreateQuotation(ctx context.Context, req QuotationRequest) (*domain.Order, error)
	GetOrder(ctx context.Context, requesterID, orderID int64) (*domain.Order, error)
	ListOrders(ctx context.Context, customerID int64, status string, page, pageSize int64) ([]domain.Order, int64, error)
	// Transition applies one lifecycle action with its side effects.
	Transition(ctx context.Context, orderID int64, action domain.OrderAction, opts TransitionOptions) (*domain.Order, error)
}

type InvoiceService interface {
	CreateInvoice(ctx context.Context, orderID int64) (*domain.Invoice, error)
	PostInvoice(ctx context.Context, invoiceID int64) (*domain.Invoice, error)
	RegisterPayment(ctx context.Context, invoiceID, amountCents int64, method domain.PaymentMethod, partial bool) (*domain.Invoice, error)
	GetInvoice(ctx context.Context, invoiceID int64) (*domain.Invoice, error)
}

type CouponService interface {
	// ValidateCoupon returns the discount the coupon grants on
	// amountCents, bounded by that amount.
	ValidateCoupon(ctx context.Context, code string, amountCents int64) (int64, error)
}
