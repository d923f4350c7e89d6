package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"rentalworks-backend/internal/domain"
)

func TestAvailabilityService_CheckAvailability(t *testing.T) {
	ctx := context.Background()

	t.Run("subtracts reserved from total stock", func(t *testing.T) {
		mockProductRepo := new(MockProductRepo)
		mockOrderRepo := new(MockOrderRepo)
		svc := NewAvailabilityService(mockProductRepo, mockOrderRepo)

		iv := window(1, 5)
		mockProductRepo.On("GetByID", ctx, int64(7)).Return(&domain.Product{ID: 7, TotalStockQty: 10}, nil)
		mockOrderRepo.On("SumReserved", ctx, int64(7), iv).Return(int64(4), nil)

		available, err := svc.CheckAvailability(ctx, 7, iv)
		assert.NoError(t, err)
		assert.Equal(t, int64(6), available)
		mockProductRepo.AssertExpectations(t)
		mockOrderRepo.AssertExpectations(t)
	})

	t.Run("never reports negative availability", func(t *testing.T) {
		mockProductRepo := new(MockProductRepo)
		mockOrderRepo := new(MockOrderRepo)
		svc := NewAvailabilityService(mockProductRepo, mockOrderRepo)

		iv := window(1, 5)
		mockProductRepo.On("GetByID", ctx, int64(7)).Return(&domain.Product{ID: 7, TotalStockQty: 3}, nil)
		mockOrderRepo.On("SumReserved", ctx, int64(7), iv).Return(int64(5), nil)

		available, err := svc.CheckAvailability(ctx, 7, iv)
		assert.NoError(t, err)
		assert.Equal(t, int64(0), available)
	})

	t.Run("rejects invalid interval before touching the store", func(t *testing.T) {
		mockProductRepo := new(MockProductRepo)
		mockOrderRepo := new(MockOrderRepo)
		svc := NewAvailabilityService(mockProductRepo, mockOrderRepo)

		_, err := svc.CheckAvailability(ctx, 7, window(5, 1))
		assert.ErrorIs(t, err, domain.ErrInvalidInterval)
		mockProductRepo.AssertNotCalled(t, "GetByID")
	})

	t.Run("unknown product", func(t *testing.T) {
		mockProductRepo := new(MockProductRepo)
		mockOrderRepo := new(MockOrderRepo)
		svc := NewAvailabilityService(mockProductRepo, mockOrderRepo)

		mockProductRepo.On("GetByID", ctx, int64(99)).Return(nil, domain.ErrNotFound)

		_, err := svc.CheckAvailability(ctx, 99, window(1, 5))
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}
