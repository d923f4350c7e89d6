package service

import (
	"context"
	"errors"
	"time"

	"rentalworks-backend/internal/domain"
	"rentalworks-backend/internal/repository"
)

type couponService struct {
	couponRepo repository.CouponRepository
	now        func() time.Time
}

func NewCouponService(couponRepo repository.CouponRepository) CouponService {
	return &couponService{couponRepo: couponRepo, now: time.Now}
}

// ValidateCoupon is called exactly once per order, at commit time. A
// coupon expiring after the order was created does not alter the order.
func (s *couponService) ValidateCoupon(ctx context.Context, code string, amountCents int64) (int64, error) {
	coupon, err := s.couponRepo.GetByCode(ctx, code)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return 0, domain.ErrCouponNotFound
		}
		return 0, err
	}
	if !coupon.ValidAt(s.now()) {
		return 0, domain.ErrCouponExpired
	}
	if amountCents < coupon.MinOrderCents {
		return 0, domain.ErrCouponMinimumNotMet
	}
	return coupon.DiscountFor(amountCents), nil
}
