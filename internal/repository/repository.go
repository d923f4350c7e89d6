package repository

import (
	"context"
	"time"

	"rentalworks-backend/internal/domain"
)

type ProductRepository interface {
	Create(ctx context.Context, product *domain.Product) error
	GetByID(ctx context.Context, id int64) (*domain.Product, error)
	GetByIDs(ctx context.Context, ids []int64) (map[int64]*domain.Product, error)
}

type CartRepository interface {
	Add(ctx context.Context, line *domain.CartLine) error
	ListByCustomer(ctx context.Context, customerID int64) ([]domain.CartLine, error)
	Delete(ctx context.Context, customerID, lineID int64) error
	DeleteByIDs(ctx context.Context, ids []int64) error
	// DeleteStartedBefore removes stale lines whose rental window has
	// already begun; they can no longer be committed as-is.
	DeleteStartedBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

type OrderRepository interface {
	// CreateChecked persists the order and its items inside a single
	// transaction that re-derives availability under product row locks.
	// It fails the whole order with *domain.InsufficientStockError when
	// any line exceeds the remaining stock; no partial order is created.
	CreateChecked(ctx context.Context, order *domain.Order) error
	GetByID(ctx context.Context, id int64) (*domain.Order, error)
	ListByCustomer(ctx context.Context, customerID int64, status string, page, pageSize int64) ([]domain.Order, int64, error)
	ListByVendor(ctx context.Context, vendorID int64, status string, page, pageSize int64) ([]domain.Order, int64, error)
	// SumReserved returns the total quantity of items of non-cancelled
	// orders overlapping the interval. Advisory outside CreateChecked.
	SumReserved(ctx context.Context, productID int64, interval domain.RentalInterval) (int64, error)
	// TransitionStatus flips status from->to only if the row still holds
	// from; a concurrent winner leaves the loser with
	// domain.ErrConcurrentModification.
	TransitionStatus(ctx context.Context, orderID int64, from, to domain.OrderStatus) error
	// MarkPickedUp applies CONFIRMED->PICKED_UP and inserts the pickup
	// record in one transaction.
	MarkPickedUp(ctx context.Context, orderID int64, pickup *domain.Pickup) error
	// MarkReturned applies PICKED_UP->RETURNED and inserts the return
	// record in one transaction.
	MarkReturned(ctx context.Context, orderID int64, ret *domain.Return) error
	// ListOverdue returns PICKED_UP orders whose latest item end is
	// before asOf.
	ListOverdue(ctx context.Context, asOf time.Time) ([]domain.Order, error)
}

type InvoiceRepository interface {
	Create(ctx context.Context, invoice *domain.Invoice) error
	GetByID(ctx context.Context, id int64) (*domain.Invoice, error)
	GetByOrderID(ctx context.Context, orderID int64) (*domain.Invoice, error)
	// Post flips DRAFT->POSTED, locking the total against recomputation.
	Post(ctx context.Context, id int64, postedAt time.Time) (*domain.Invoice, error)
	// RegisterPayment validates and appends the payment and updates
	// amount_paid and status as one atomic step under a row lock.
	RegisterPayment(ctx context.Context, invoiceID int64, payment *domain.Payment, policy domain.PaymentPolicy) (*domain.Invoice, error)
	ListPayments(ctx context.Context, invoiceID int64) ([]domain.Payment, error)
}

type CouponRepository interface {
	GetByCode(ctx context.Context, code string) (*domain.Coupon, error)
}
