package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"rentalworks-backend/internal/domain"
	"rentalworks-backend/internal/logger"
	"rentalworks-backend/internal/pricing"
	"rentalworks-backend/internal/repository"
)

type checkoutService struct {
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
	orderRepo   repository.OrderRepository
	couponSvc   CouponService
	pricing     pricing.Policy
	now         func() time.Time
}

func NewCheckoutService(
	cartRepo repository.CartRepository,
	productRepo repository.ProductRepository,
	orderRepo repository.OrderRepository,
	couponSvc CouponService,
	pricingPolicy pricing.Policy,
) CheckoutService {
	return &checkoutService{
		cartRepo:    cartRepo,
		productRepo: productRepo,
		orderRepo:   orderRepo,
		couponSvc:   couponSvc,
		pricing:     pricingPolicy,
		now:         time.Now,
	}
}

func (s *checkoutService) AddCartLine(ctx context.Context, line *domain.CartLine) (*domain.CartLine, error) {
	if !line.Interval.Valid() {
		return nil, domain.ErrInvalidInterval
	}
	if line.Quantity < 1 {
		return nil, domain.ErrInvalidQuantity
	}
	product, err := s.productRepo.GetByID(ctx, line.ProductID)
	if err != nil {
		return nil, err
	}
	if !product.IsActive {
		return nil, domain.ErrInactiveProduct
	}
	if err := s.cartRepo.Add(ctx, line); err != nil {
		return nil, err
	}
	return line, nil
}

func (s *checkoutService) ListCartLines(ctx context.Context, customerID int64) ([]domain.CartLine, error) {
	return s.cartRepo.ListByCustomer(ctx, customerID)
}

func (s *checkoutService) RemoveCartLine(ctx context.Context, customerID, lineID int64) error {
	return s.cartRepo.Delete(ctx, customerID, lineID)
}

// Checkout converts the customer's cart into one order per vendor. Each
// order commits in its own transaction: a shortage aborts that whole
// order while sibling vendor orders proceed. Cart lines are only
// cleared after their order is durably persisted.
func (s *checkoutService) Checkout(ctx context.Context, customerID int64, delivery DeliveryInfo, couponCode string) (*CheckoutResult, error) {
	lines, err := s.cartRepo.ListByCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return nil, domain.ErrEmptyCart
	}

	for _, line := range lines {
		if !line.Interval.Valid() {
			return nil, domain.ErrInvalidInterval
		}
		if line.Quantity < 1 {
			return nil, domain.ErrInvalidQuantity
		}
	}

	productIDs := make([]int64, 0, len(lines))
	for _, line := range lines {
		productIDs = append(productIDs, line.ProductID)
	}
	products, err := s.productRepo.GetByIDs(ctx, productIDs)
	if err != nil {
		return nil, err
	}

	byVendor := make(map[int64][]domain.CartLine)
	for _, line := range lines {
		product, ok := products[line.ProductID]
		if !ok {
			return nil, domain.ErrNotFound
		}
		byVendor[product.VendorID] = append(byVendor[product.VendorID], line)
	}

	vendorIDs := make([]int64, 0, len(byVendor))
	for vendorID := range byVendor {
		vendorIDs = append(vendorIDs, vendorID)
	}
	sort.Slice(vendorIDs, func(i, j int) bool { return vendorIDs[i] < vendorIDs[j] })

	result := &CheckoutResult{}
	for _, vendorID := range vendorIDs {
		vendorLines := byVendor[vendorID]

		order, err := s.buildOrder(ctx, customerID, vendorID, vendorLines, products, delivery, couponCode)
		if err != nil {
			result.Failures = append(result.Failures, CheckoutFailure{VendorID: vendorID, Err: err})
			continue
		}

		if err := s.orderRepo.CreateChecked(ctx, order); err != nil {
			result.Failures = append(result.Failures, CheckoutFailure{VendorID: vendorID, Err: err})
			continue
		}

		lineIDs := make([]int64, 0, len(vendorLines))
		for _, line := range vendorLines {
			lineIDs = append(lineIDs, line.ID)
		}
		if err := s.cartRepo.DeleteByIDs(ctx, lineIDs); err != nil {
			// The order is already durable; leftover lines are swept by
			// the stale-cart purge job.
			logger.Warn("failed to clear committed cart lines", "customer_id", customerID, "order_number", order.OrderNumber, "error", err)
		}

		logger.Info("order committed", "order_number", order.OrderNumber, "customer_id", customerID, "vendor_id", vendorID, "total_cents", order.TotalCents)
		result.Orders = append(result.Orders, *order)
	}

	return result, nil
}

// buildOrder prices one vendor's lines into an unpersisted order in
// RENTAL_ORDER. Pricing and coupon evaluation are pure; only the
// availability check runs inside the commit transaction.
func (s *checkoutService) buildOrder(ctx context.Context, customerID, vendorID int64, lines []domain.CartLine, products map[int64]*domain.Product, delivery DeliveryInfo, couponCode string) (*domain.Order, error) {
	now := s.now()
	order := &domain.Order{
		OrderNumber:     newOrderNumber(now),
		CustomerID:      customerID,
		VendorID:        vendorID,
		CouponCode:      couponCode,
		Status:          domain.OrderStatusRentalOrder,
		DeliveryAddress: delivery.DeliveryAddress,
		BillingAddress:  delivery.BillingAddress,
	}

	var subtotal, deposit int64
	for _, line := range lines {
		product := products[line.ProductID]
		if !product.IsActive {
			return nil, domain.ErrInactiveProduct
		}
		quote, err := pricing.QuoteLine(product, line.Interval, line.Quantity, s.pricing)
		if err != nil {
			return nil, err
		}
		order.Items = append(order.Items, domain.OrderItem{
			ProductID:      line.ProductID,
			Interval:       line.Interval,
			Quantity:       line.Quantity,
			UnitPriceCents: quote.UnitPriceCents,
			LineTotalCents: quote.LineTotalCents,
			RatePath:       quote.RatePath,
		})
		subtotal += quote.LineTotalCents
		deposit += product.SecurityDepositCents * line.Quantity
	}

	var discount int64
	if couponCode != "" {
		d, err := s.couponSvc.ValidateCoupon(ctx, couponCode, subtotal)
		if err != nil {
			return nil, err
		}
		discount = d
	}

	order.SubtotalCents = subtotal
	order.DiscountCents = discount
	order.TaxCents = pricing.TaxOn(subtotal-discount, s.pricing)
	order.SecurityDepositCents = deposit
	order.TotalCents = subtotal - discount + order.TaxCents + deposit
	return order, nil
}

func newOrderNumber(now time.Time) string {
	return fmt.Sprintf("ORD-%s-%s", now.Format("20060102"), strings.ToUpper(uuid.NewString()[:8]))
}

func newInvoiceNumber(now time.Time) string {
	return fmt.Sprintf("INV-%s-%s", now.Format("20060102"), strings.ToUpper(uuid.NewString()[:8]))
}
