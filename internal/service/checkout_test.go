package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"rentalworks-backend/internal/domain"
	"rentalworks-backend/internal/pricing"
)

var checkoutPolicy = pricing.Policy{TaxRateBps: 1800, WeekBillableDays: 5}

func newCheckoutFixture() (*MockCartRepo, *MockProductRepo, *MockOrderRepo, *MockCouponService, CheckoutService) {
	cartRepo := new(MockCartRepo)
	productRepo := new(MockProductRepo)
	orderRepo := new(MockOrderRepo)
	couponSvc := new(MockCouponService)
	svc := NewCheckoutService(cartRepo, productRepo, orderRepo, couponSvc, checkoutPolicy)
	return cartRepo, productRepo, orderRepo, couponSvc, svc
}

func TestCheckoutService_AddCartLine(t *testing.T) {
	ctx := context.Background()

	t.Run("valid line", func(t *testing.T) {
		cartRepo, productRepo, _, _, svc := newCheckoutFixture()
		line := &domain.CartLine{CustomerID: 1, ProductID: 5, Interval: window(1, 3), Quantity: 2}
		productRepo.On("GetByID", ctx, int64(5)).Return(&domain.Product{ID: 5, IsActive: true}, nil)
		cartRepo.On("Add", ctx, line).Return(nil)

		got, err := svc.AddCartLine(ctx, line)
		assert.NoError(t, err)
		assert.Equal(t, line, got)
		cartRepo.AssertExpectations(t)
	})

	t.Run("inactive product", func(t *testing.T) {
		cartRepo, productRepo, _, _, svc := newCheckoutFixture()
		line := &domain.CartLine{CustomerID: 1, ProductID: 5, Interval: window(1, 3), Quantity: 1}
		productRepo.On("GetByID", ctx, int64(5)).Return(&domain.Product{ID: 5, IsActive: false}, nil)

		_, err := svc.AddCartLine(ctx, line)
		assert.ErrorIs(t, err, domain.ErrInactiveProduct)
		cartRepo.AssertNotCalled(t, "Add")
	})

	t.Run("invalid interval", func(t *testing.T) {
		_, _, _, _, svc := newCheckoutFixture()
		line := &domain.CartLine{CustomerID: 1, ProductID: 5, Interval: window(3, 1), Quantity: 1}
		_, err := svc.AddCartLine(ctx, line)
		assert.ErrorIs(t, err, domain.ErrInvalidInterval)
	})

	t.Run("invalid quantity", func(t *testing.T) {
		_, _, _, _, svc := newCheckoutFixture()
		line := &domain.CartLine{CustomerID: 1, ProductID: 5, Interval: window(1, 3), Quantity: 0}
		_, err := svc.AddCartLine(ctx, line)
		assert.ErrorIs(t, err, domain.ErrInvalidQuantity)
	})
}

func TestCheckoutService_Checkout_SingleVendor(t *testing.T) {
	ctx := context.Background()
	cartRepo, productRepo, orderRepo, _, svc := newCheckoutFixture()

	lines := []domain.CartLine{
		{ID: 11, CustomerID: 1, ProductID: 5, Interval: window(1, 3), Quantity: 1},
	}
	products := map[int64]*domain.Product{
		5: {ID: 5, VendorID: 100, DailyRateCents: 10000, SecurityDepositCents: 2000, IsActive: true},
	}

	cartRepo.On("ListByCustomer", ctx, int64(1)).Return(lines, nil)
	productRepo.On("GetByIDs", ctx, []int64{5}).Return(products, nil)
	orderRepo.On("CreateChecked", ctx, mock.MatchedBy(func(o *domain.Order) bool {
		return o.VendorID == 100 &&
			o.Status == domain.OrderStatusRentalOrder &&
			o.SubtotalCents == 20000 &&
			o.TaxCents == 3600 &&
			o.SecurityDepositCents == 2000 &&
			o.TotalCents == 25600 &&
			len(o.Items) == 1 &&
			o.Items[0].RatePath == pricing.RatePathDaily
	})).Return(nil)
	cartRepo.On("DeleteByIDs", ctx, []int64{11}).Return(nil)

	result, err := svc.Checkout(ctx, 1, DeliveryInfo{DeliveryAddress: "12 Dock Rd"}, "")
	require.NoError(t, err)
	require.Len(t, result.Orders, 1)
	assert.Empty(t, result.Failures)
	assert.Equal(t, int64(25600), result.Orders[0].TotalCents)
	cartRepo.AssertExpectations(t)
	orderRepo.AssertExpectations(t)
}

func TestCheckoutService_Checkout_EmptyCart(t *testing.T) {
	ctx := context.Background()
	cartRepo, _, _, _, svc := newCheckoutFixture()
	cartRepo.On("ListByCustomer", ctx, int64(1)).Return([]domain.CartLine{}, nil)

	_, err := svc.Checkout(ctx, 1, DeliveryInfo{}, "")
	assert.ErrorIs(t, err, domain.ErrEmptyCart)
}

func TestCheckoutService_Checkout_CouponApplied(t *testing.T) {
	ctx := context.Background()
	cartRepo, productRepo, orderRepo, couponSvc, svc := newCheckoutFixture()

	lines := []domain.CartLine{
		{ID: 11, CustomerID: 1, ProductID: 5, Interval: window(1, 3), Quantity: 1},
	}
	products := map[int64]*domain.Product{
		5: {ID: 5, VendorID: 100, DailyRateCents: 10000, SecurityDepositCents: 2000, IsActive: true},
	}

	cartRepo.On("ListByCustomer", ctx, int64(1)).Return(lines, nil)
	productRepo.On("GetByIDs", ctx, []int64{5}).Return(products, nil)
	couponSvc.On("ValidateCoupon", ctx, "SPRING10", int64(20000)).Return(int64(2000), nil)
	orderRepo.On("CreateChecked", ctx, mock.MatchedBy(func(o *domain.Order) bool {
		// tax applies to the discounted subtotal
		return o.DiscountCents == 2000 && o.TaxCents == 3240 && o.TotalCents == 23240
	})).Return(nil)
	cartRepo.On("DeleteByIDs", ctx, []int64{11}).Return(nil)

	result, err := svc.Checkout(ctx, 1, DeliveryInfo{}, "SPRING10")
	require.NoError(t, err)
	require.Len(t, result.Orders, 1)
	assert.Equal(t, "SPRING10", result.Orders[0].CouponCode)
	couponSvc.AssertExpectations(t)
}

func TestCheckoutService_Checkout_MultiVendorPartialFailure(t *testing.T) {
	ctx := context.Background()
	cartRepo, productRepo, orderRepo, _, svc := newCheckoutFixture()

	lines := []domain.CartLine{
		{ID: 11, CustomerID: 1, ProductID: 5, Interval: window(1, 3), Quantity: 1},
		{ID: 12, CustomerID: 1, ProductID: 6, Interval: window(1, 3), Quantity: 4},
	}
	products := map[int64]*domain.Product{
		5: {ID: 5, VendorID: 100, DailyRateCents: 10000, IsActive: true},
		6: {ID: 6, VendorID: 200, DailyRateCents: 5000, IsActive: true},
	}

	cartRepo.On("ListByCustomer", ctx, int64(1)).Return(lines, nil)
	productRepo.On("GetByIDs", ctx, []int64{5, 6}).Return(products, nil)

	shortage := &domain.InsufficientStockError{ProductID: 6, Requested: 4, Available: 1}
	orderRepo.On("CreateChecked", ctx, mock.MatchedBy(func(o *domain.Order) bool {
		return o.VendorID == 100
	})).Return(nil)
	orderRepo.On("CreateChecked", ctx, mock.MatchedBy(func(o *domain.Order) bool {
		return o.VendorID == 200
	})).Return(shortage)
	// only the committed vendor's line leaves the cart
	cartRepo.On("DeleteByIDs", ctx, []int64{11}).Return(nil)

	result, err := svc.Checkout(ctx, 1, DeliveryInfo{}, "")
	require.NoError(t, err)
	require.Len(t, result.Orders, 1)
	require.Len(t, result.Failures, 1)
	assert.Equal(t, int64(100), result.Orders[0].VendorID)
	assert.Equal(t, int64(200), result.Failures[0].VendorID)

	var stockErr *domain.InsufficientStockError
	assert.ErrorAs(t, result.Failures[0].Err, &stockErr)
	assert.Equal(t, int64(1), stockErr.Available)
	cartRepo.AssertExpectations(t)
}

func TestCheckoutService_Checkout_ExpiredCouponFailsVendorOrders(t *testing.T) {
	ctx := context.Background()
	cartRepo, productRepo, orderRepo, couponSvc, svc := newCheckoutFixture()

	lines := []domain.CartLine{
		{ID: 11, CustomerID: 1, ProductID: 5, Interval: window(1, 3), Quantity: 1},
	}
	products := map[int64]*domain.Product{
		5: {ID: 5, VendorID: 100, DailyRateCents: 10000, IsActive: true},
	}

	cartRepo.On("ListByCustomer", ctx, int64(1)).Return(lines, nil)
	productRepo.On("GetByIDs", ctx, []int64{5}).Return(products, nil)
	couponSvc.On("ValidateCoupon", ctx, "OLD", int64(20000)).Return(int64(0), domain.ErrCouponExpired)

	result, err := svc.Checkout(ctx, 1, DeliveryInfo{}, "OLD")
	require.NoError(t, err)
	assert.Empty(t, result.Orders)
	require.Len(t, result.Failures, 1)
	assert.ErrorIs(t, result.Failures[0].Err, domain.ErrCouponExpired)
	orderRepo.AssertNotCalled(t, "CreateChecked")
	cartRepo.AssertNotCalled(t, "DeleteByIDs")
}
