package service

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"rentalworks-backend/internal/domain"
)

type MockProductRepo struct {
	mock.Mock
}

func (m *MockProductRepo) Create(ctx context.Context, product *domain.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepo) GetByID(ctx context.Context, id int64) (*domain.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Product), args.Error(1)
}

func (m *MockProductRepo) GetByIDs(ctx context.Context, ids []int64) (map[int64]*domain.Product, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[int64]*domain.Product), args.Error(1)
}

type MockCartRepo struct {
	mock.Mock
}

func (m *MockCartRepo) Add(ctx context.Context, line *domain.CartLine) error {
	args := m.Called(ctx, line)
	return args.Error(0)
}

func (m *MockCartRepo) ListByCustomer(ctx context.Context, customerID int64) ([]domain.CartLine, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CartLine), args.Error(1)
}

func (m *MockCartRepo) Delete(ctx context.Context, customerID, lineID int64) error {
	args := m.Called(ctx, customerID, lineID)
	return args.Error(0)
}

func (m *MockCartRepo) DeleteByIDs(ctx context.Context, ids []int64) error {
	args := m.Called(ctx, ids)
	return args.Error(0)
}

func (m *MockCartRepo) DeleteStartedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	args := m.Called(ctx, cutoff)
	return args.Get(0).(int64), args.Error(1)
}

type MockOrderRepo struct {
	mock.Mock
}

func (m *MockOrderRepo) CreateChecked(ctx context.Context, order *domain.Order) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *MockOrderRepo) GetByID(ctx context.Context, id int64) (*domain.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Order), args.Error(1)
}

func (m *MockOrderRepo) ListByCustomer(ctx context.Context, customerID int64, status string, page, pageSize int64) ([]domain.Order, int64, error) {
	args := m.Called(ctx, customerID, status, page, pageSize)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]domain.Order), args.Get(1).(int64), args.Error(2)
}

func (m *MockOrderRepo) ListByVendor(ctx context.Context, vendorID int64, status string, page, pageSize int64) ([]domain.Order, int64, error) {
	args := m.Called(ctx, vendorID, status, page, pageSize)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]domain.Order), args.Get(1).(int64), args.Error(2)
}

func (m *MockOrderRepo) SumReserved(ctx context.Context, productID int64, interval domain.RentalInterval) (int64, error) {
	args := m.Called(ctx, productID, interval)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockOrderRepo) TransitionStatus(ctx context.Context, orderID int64, from, to domain.OrderStatus) error {
	args := m.Called(ctx, orderID, from, to)
	return args.Error(0)
}

func (m *MockOrderRepo) MarkPickedUp(ctx context.Context, orderID int64, pickup *domain.Pickup) error {
	args := m.Called(ctx, orderID, pickup)
	return args.Error(0)
}

func (m *MockOrderRepo) MarkReturned(ctx context.Context, orderID int64, ret *domain.Return) error {
	args := m.Called(ctx, orderID, ret)
	return args.Error(0)
}

func (m *MockOrderRepo) ListOverdue(ctx context.Context, asOf time.Time) ([]domain.Order, error) {
	args := m.Called(ctx, asOf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Order), args.Error(1)
}

type MockInvoiceRepo struct {
	mock.Mock
}

func (m *MockInvoiceRepo) Create(ctx context.Context, invoice *domain.Invoice) error {
	args := m.Called(ctx, invoice)
	return args.Error(0)
}

func (m *MockInvoiceRepo) GetByID(ctx context.Context, id int64) (*domain.Invoice, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Invoice), args.Error(1)
}

func (m *MockInvoiceRepo) GetByOrderID(ctx context.Context, orderID int64) (*domain.Invoice, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Invoice), args.Error(1)
}

func (m *MockInvoiceRepo) Post(ctx context.Context, id int64, postedAt time.Time) (*domain.Invoice, error) {
	args := m.Called(ctx, id, postedAt)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Invoice), args.Error(1)
}

func (m *MockInvoiceRepo) RegisterPayment(ctx context.Context, invoiceID int64, payment *domain.Payment, policy domain.PaymentPolicy) (*domain.Invoice, error) {
	args := m.Called(ctx, invoiceID, payment, policy)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Invoice), args.Error(1)
}

func (m *MockInvoiceRepo) ListPayments(ctx context.Context, invoiceID int64) ([]domain.Payment, error) {
	args := m.Called(ctx, invoiceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Payment), args.Error(1)
}

type MockCouponRepo struct {
	mock.Mock
}

func (m *MockCouponRepo) GetByCode(ctx context.Context, code string) (*domain.Coupon, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Coupon), args.Error(1)
}

type MockCouponService struct {
	mock.Mock
}

func (m *MockCouponService) ValidateCoupon(ctx context.Context, code string, amountCents int64) (int64, error) {
	args := m.Called(ctx, code, amountCents)
	return args.Get(0).(int64), args.Error(1)
}

func day(d int) time.Time {
	return time.Date(2026, 3, d, 0, 0, 0, 0, time.UTC)
}

func window(startDay, endDay int) domain.RentalInterval {
	return domain.RentalInterval{Start: day(startDay), End: day(endDay)}
}
