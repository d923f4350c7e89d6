package service

import (
	"context"
	"math"
	"time"

	"rentalworks-backend/internal/domain"
	"rentalworks-backend/internal/logger"
	"rentalworks-backend/internal/pricing"
	"rentalworks-backend/internal/repository"
)

// LateFeePolicy is the configurable policy for charging late returns.
type LateFeePolicy struct {
	GraceHours  int64
	PerDayCents int64
}

type orderService struct {
	orderRepo   repository.OrderRepository
	productRepo repository.ProductRepository
	pricing     pricing.Policy
	lateFee     LateFeePolicy
	now         func() time.Time
}

func NewOrderService(
	orderRepo repository.OrderRepository,
	productRepo repository.ProductRepository,
	pricingPolicy pricing.Policy,
	lateFee LateFeePolicy,
) OrderService {
	return &orderService{
		orderRepo:   orderRepo,
		productRepo: productRepo,
		pricing:     pricingPolicy,
		lateFee:     lateFee,
		now:         time.Now,
	}
}

// CreateQuotation drafts a priced order in QUOTATION for the vendor/ERP
// flow. The quotation holds stock like any non-cancelled order, so it
// runs through the same checked commit as checkout.
func (s *orderService) CreateQuotation(ctx context.Context, req QuotationRequest) (*domain.Order, error) {
	if len(req.Lines) == 0 {
		return nil, domain.ErrEmptyCart
	}

	productIDs := make([]int64, 0, len(req.Lines))
	for _, line := range req.Lines {
		if !line.Interval.Valid() {
			return nil, domain.ErrInvalidInterval
		}
		if line.Quantity < 1 {
			return nil, domain.ErrInvalidQuantity
		}
		productIDs = append(productIDs, line.ProductID)
	}
	products, err := s.productRepo.GetByIDs(ctx, productIDs)
	if err != nil {
		return nil, err
	}

	now := s.now()
	order := &domain.Order{
		OrderNumber:     newOrderNumber(now),
		CustomerID:      req.CustomerID,
		VendorID:        req.VendorID,
		Status:          domain.OrderStatusQuotation,
		DeliveryAddress: req.Delivery.DeliveryAddress,
		BillingAddress:  req.Delivery.BillingAddress,
	}

	var subtotal, deposit int64
	for _, line := range req.Lines {
		product, ok := products[line.ProductID]
		if !ok {
			return nil, domain.ErrNotFound
		}
		if product.VendorID != req.VendorID {
			return nil, domain.ErrNotFound
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

	order.SubtotalCents = subtotal
	order.TaxCents = pricing.TaxOn(subtotal, s.pricing)
	order.SecurityDepositCents = deposit
	order.TotalCents = subtotal + order.TaxCents + deposit

	if err := s.orderRepo.CreateChecked(ctx, order); err != nil {
		return nil, err
	}
	logger.Info("quotation drafted", "order_number", order.OrderNumber, "vendor_id", req.VendorID)
	return order, nil
}

func (s *orderService) GetOrder(ctx context.Context, requesterID, orderID int64) (*domain.Order, error) {
	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.CustomerID != requesterID && order.VendorID != requesterID {
		return nil, domain.ErrNotFound
	}
	return order, nil
}

func (s *orderService) ListOrders(ctx context.Context, customerID int64, status string, page, pageSize int64) ([]domain.Order, int64, error) {
	return s.orderRepo.ListByCustomer(ctx, customerID, status, page, pageSize)
}

// Transition applies one lifecycle action. The legality check runs
// against the loaded status; the repository then flips the status with
// a compare-and-swap, so of two concurrent conflicting transitions
// exactly one wins and the loser gets ErrConcurrentModification.
func (s *orderService) Transition(ctx context.Context, orderID int64, action domain.OrderAction, opts TransitionOptions) (*domain.Order, error) {
	target, ok := action.TargetStatus()
	if !ok {
		return nil, &domain.InvalidTransitionError{To: domain.OrderStatus(action)}
	}

	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !order.Status.CanTransitionTo(target) {
		return nil, &domain.InvalidTransitionError{From: order.Status, To: target}
	}

	switch target {
	case domain.OrderStatusPickedUp:
		err = s.orderRepo.MarkPickedUp(ctx, orderID, &domain.Pickup{
			OrderID:  orderID,
			PickedAt: s.now(),
			Notes:    opts.Notes,
		})
	case domain.OrderStatusReturned:
		ret := &domain.Return{
			OrderID:        orderID,
			ReturnedAt:     s.now(),
			LateFeeCents:   s.lateFeeFor(order),
			DamageFeeCents: opts.DamageFeeCents,
			Notes:          opts.Notes,
		}
		err = s.orderRepo.MarkReturned(ctx, orderID, ret)
	default:
		err = s.orderRepo.TransitionStatus(ctx, orderID, order.Status, target)
	}
	if err != nil {
		return nil, err
	}

	logger.Info("order transitioned", "order_number", order.OrderNumber, "from", order.Status, "to", target)
	return s.orderRepo.GetByID(ctx, orderID)
}

// lateFeeFor charges each started day past the latest item end plus the
// grace window. Fees land on the invoice, never on the order total.
func (s *orderService) lateFeeFor(order *domain.Order) int64 {
	if s.lateFee.PerDayCents <= 0 {
		return 0
	}
	due := order.LatestItemEnd().Add(time.Duration(s.lateFee.GraceHours) * time.Hour)
	now := s.now()
	if !now.After(due) {
		return 0
	}
	daysLate := int64(math.Ceil(now.Sub(due).Hours() / 24))
	return daysLate * s.lateFee.PerDayCents
}
