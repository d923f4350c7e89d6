package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"rentalworks-backend/internal/domain"
)

var invoicePolicy = domain.PaymentPolicy{MinPartialBps: 5000, MaxPartialPayments: 1}

func newInvoiceFixture() (*MockInvoiceRepo, *MockOrderRepo, *invoiceService) {
	invoiceRepo := new(MockInvoiceRepo)
	orderRepo := new(MockOrderRepo)
	svc := NewInvoiceService(invoiceRepo, orderRepo, invoicePolicy).(*invoiceService)
	return invoiceRepo, orderRepo, svc
}

func TestInvoiceService_CreateInvoice(t *testing.T) {
	ctx := context.Background()

	t.Run("snapshots order amounts", func(t *testing.T) {
		invoiceRepo, orderRepo, svc := newInvoiceFixture()

		order := &domain.Order{
			ID: 42, CustomerID: 1, VendorID: 100,
			Status:               domain.OrderStatusConfirmed,
			SubtotalCents:        20000,
			DiscountCents:        2000,
			TaxCents:             3240,
			SecurityDepositCents: 2000,
			TotalCents:           23240,
		}
		orderRepo.On("GetByID", ctx, int64(42)).Return(order, nil)
		invoiceRepo.On("GetByOrderID", ctx, int64(42)).Return(nil, domain.ErrNotFound)
		invoiceRepo.On("Create", ctx, mock.MatchedBy(func(inv *domain.Invoice) bool {
			return inv.OrderID == 42 &&
				inv.Status == domain.InvoiceStatusDraft &&
				inv.TotalCents == 23240 &&
				inv.LateFeeCents == 0
		})).Return(nil)

		inv, err := svc.CreateInvoice(ctx, 42)
		require.NoError(t, err)
		assert.Equal(t, domain.InvoiceStatusDraft, inv.Status)
		invoiceRepo.AssertExpectations(t)
	})

	t.Run("return fees land on the invoice", func(t *testing.T) {
		invoiceRepo, orderRepo, svc := newInvoiceFixture()

		order := &domain.Order{
			ID: 42, Status: domain.OrderStatusReturned,
			SubtotalCents: 20000, TaxCents: 3600,
			Return: &domain.Return{LateFeeCents: 5000, DamageFeeCents: 1500},
		}
		orderRepo.On("GetByID", ctx, int64(42)).Return(order, nil)
		invoiceRepo.On("GetByOrderID", ctx, int64(42)).Return(nil, domain.ErrNotFound)
		invoiceRepo.On("Create", ctx, mock.MatchedBy(func(inv *domain.Invoice) bool {
			return inv.LateFeeCents == 5000 &&
				inv.DamageFeeCents == 1500 &&
				inv.TotalCents == 30100
		})).Return(nil)

		_, err := svc.CreateInvoice(ctx, 42)
		assert.NoError(t, err)
		invoiceRepo.AssertExpectations(t)
	})

	t.Run("quotation is not invoiceable", func(t *testing.T) {
		invoiceRepo, orderRepo, svc := newInvoiceFixture()
		orderRepo.On("GetByID", ctx, int64(42)).Return(&domain.Order{ID: 42, Status: domain.OrderStatusQuotation}, nil)

		_, err := svc.CreateInvoice(ctx, 42)
		assert.ErrorIs(t, err, domain.ErrOrderNotInvoiceable)
		invoiceRepo.AssertNotCalled(t, "Create")
	})

	t.Run("cancelled order is not invoiceable", func(t *testing.T) {
		_, orderRepo, svc := newInvoiceFixture()
		orderRepo.On("GetByID", ctx, int64(42)).Return(&domain.Order{ID: 42, Status: domain.OrderStatusCancelled}, nil)

		_, err := svc.CreateInvoice(ctx, 42)
		assert.ErrorIs(t, err, domain.ErrOrderNotInvoiceable)
	})

	t.Run("second invoice for the same order is refused", func(t *testing.T) {
		invoiceRepo, orderRepo, svc := newInvoiceFixture()
		orderRepo.On("GetByID", ctx, int64(42)).Return(&domain.Order{ID: 42, Status: domain.OrderStatusConfirmed}, nil)
		invoiceRepo.On("GetByOrderID", ctx, int64(42)).Return(&domain.Invoice{ID: 7, OrderID: 42}, nil)

		_, err := svc.CreateInvoice(ctx, 42)
		assert.ErrorIs(t, err, domain.ErrInvoiceAlreadyExists)
		invoiceRepo.AssertNotCalled(t, "Create")
	})
}

func TestInvoiceService_PostInvoice(t *testing.T) {
	ctx := context.Background()
	invoiceRepo, _, svc := newInvoiceFixture()
	svc.now = func() time.Time { return day(10) }

	posted := &domain.Invoice{ID: 7, Status: domain.InvoiceStatusPosted, TotalCents: 10000}
	invoiceRepo.On("Post", ctx, int64(7), day(10)).Return(posted, nil)

	inv, err := svc.PostInvoice(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, domain.InvoiceStatusPosted, inv.Status)
}

func TestInvoiceService_RegisterPayment(t *testing.T) {
	ctx := context.Background()
	invoiceRepo, _, svc := newInvoiceFixture()
	svc.now = func() time.Time { return day(12) }

	settled := &domain.Invoice{ID: 7, TotalCents: 10000, AmountPaidCents: 10000, Status: domain.InvoiceStatusPaid}
	invoiceRepo.On("RegisterPayment", ctx, int64(7), mock.MatchedBy(func(p *domain.Payment) bool {
		return p.AmountCents == 10000 &&
			p.Method == domain.PaymentMethodCard &&
			!p.Partial &&
			p.PaidAt.Equal(day(12))
	}), invoicePolicy).Return(settled, nil)

	inv, err := svc.RegisterPayment(ctx, 7, 10000, domain.PaymentMethodCard, false)
	require.NoError(t, err)
	assert.Equal(t, domain.InvoiceStatusPaid, inv.Status)
	assert.Equal(t, int64(0), inv.OutstandingCents())
	invoiceRepo.AssertExpectations(t)
}
