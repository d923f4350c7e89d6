package service

import (
	"context"

	"rentalworks-backend/internal/domain"
	"rentalworks-backend/internal/repository"
)

type availabilityService struct {
	productRepo repository.ProductRepository
	orderRepo   repository.OrderRepository
}

func NewAvailabilityService(productRepo repository.ProductRepository, orderRepo repository.OrderRepository) AvailabilityService {
	return &availabilityService{productRepo: productRepo, orderRepo: orderRepo}
}

func (s *availabilityService) CheckAvailability(ctx context.Context, productID int64, interval domain.RentalInterval) (int64, error) {
	if !interval.Valid() {
		return 0, domain.ErrInvalidInterval
	}

	product, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		return 0, err
	}

	reserved, err := s.orderRepo.SumReserved(ctx, productID, interval)
	if err != nil {
		return 0, err
	}

	available := product.TotalStockQty - reserved
	if available < 0 {
		available = 0
	}
	return available, nil
}
