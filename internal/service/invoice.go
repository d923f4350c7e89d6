package service

import (
	"context"
	"errors"
	"time"

	"rentalworks-backend/internal/domain"
	"rentalworks-backend/internal/logger"
	"rentalworks-backend/internal/repository"
)

type invoiceService struct {
	invoiceRepo repository.InvoiceRepository
	orderRepo   repository.OrderRepository
	policy      domain.PaymentPolicy
	now         func() time.Time
}

func NewInvoiceService(
	invoiceRepo repository.InvoiceRepository,
	orderRepo repository.OrderRepository,
	policy domain.PaymentPolicy,
) InvoiceService {
	return &invoiceService{
		invoiceRepo: invoiceRepo,
		orderRepo:   orderRepo,
		policy:      policy,
		now:         time.Now,
	}
}

// invoiceableStatuses: invoicing is allowed after pickup/return, and
// immediately for committed orders in the invoice-at-checkout flow.
// Quotations and cancelled orders are never invoiced.
var invoiceableStatuses = map[domain.OrderStatus]bool{
	domain.OrderStatusRentalOrder: true,
	domain.OrderStatusConfirmed:   true,
	domain.OrderStatusPickedUp:    true,
	domain.OrderStatusReturned:    true,
}

// CreateInvoice snapshots the order's amounts, plus any return fees,
// into an immutable DRAFT invoice. At most one invoice per order.
func (s *invoiceService) CreateInvoice(ctx context.Context, orderID int64) (*domain.Invoice, error) {
	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !invoiceableStatuses[order.Status] {
		return nil, domain.ErrOrderNotInvoiceable
	}

	if _, err := s.invoiceRepo.GetByOrderID(ctx, orderID); err == nil {
		return nil, domain.ErrInvoiceAlreadyExists
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	inv := &domain.Invoice{
		InvoiceNumber:        newInvoiceNumber(s.now()),
		OrderID:              order.ID,
		CustomerID:           order.CustomerID,
		VendorID:             order.VendorID,
		SubtotalCents:        order.SubtotalCents,
		DiscountCents:        order.DiscountCents,
		TaxCents:             order.TaxCents,
		SecurityDepositCents: order.SecurityDepositCents,
		Status:               domain.InvoiceStatusDraft,
	}
	if order.Return != nil {
		inv.LateFeeCents = order.Return.LateFeeCents
		inv.DamageFeeCents = order.Return.DamageFeeCents
	}
	inv.TotalCents = inv.SubtotalCents - inv.DiscountCents + inv.TaxCents +
		inv.SecurityDepositCents + inv.LateFeeCents + inv.DamageFeeCents

	if err := s.invoiceRepo.Create(ctx, inv); err != nil {
		return nil, err
	}
	logger.Info("invoice created", "invoice_number", inv.InvoiceNumber, "order_number", order.OrderNumber, "total_cents", inv.TotalCents)
	return inv, nil
}

func (s *invoiceService) PostInvoice(ctx context.Context, invoiceID int64) (*domain.Invoice, error) {
	inv, err := s.invoiceRepo.Post(ctx, invoiceID, s.now())
	if err != nil {
		return nil, err
	}
	logger.Info("invoice posted", "invoice_number", inv.InvoiceNumber, "total_cents", inv.TotalCents)
	return inv, nil
}

func (s *invoiceService) RegisterPayment(ctx context.Context, invoiceID, amountCents int64, method domain.PaymentMethod, partial bool) (*domain.Invoice, error) {
	payment := &domain.Payment{
		InvoiceID:   invoiceID,
		AmountCents: amountCents,
		Method:      method,
		Partial:     partial,
		PaidAt:      s.now(),
	}
	inv, err := s.invoiceRepo.RegisterPayment(ctx, invoiceID, payment, s.policy)
	if err != nil {
		return nil, err
	}
	logger.Info("payment registered",
		"invoice_number", inv.InvoiceNumber,
		"amount_cents", amountCents,
		"partial", partial,
		"status", inv.Status,
		"outstanding_cents", inv.OutstandingCents())
	return inv, nil
}

func (s *invoiceService) GetInvoice(ctx context.Context, invoiceID int64) (*domain.Invoice, error) {
	return s.invoiceRepo.GetByID(ctx, invoiceID)
}
