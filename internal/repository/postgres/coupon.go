package postgres

import (
	"context"
	"database/sql"
	"errors"

	"rentalworks-backend/internal/domain"
	"rentalworks-backend/internal/repository"
)

type couponRepository struct {
	db *sql.DB
}

func NewCouponRepository(db *sql.DB) repository.CouponRepository {
	return &couponRepository{db: db}
}

func (r *couponRepository) GetByCode(ctx context.Context, code string) (*domain.Coupon, error) {
	c := &domain.Coupon{}
	query := `SELECT id, code, kind, percent_bps, amount_cents, min_order_cents, valid_from, valid_until, is_active
	          FROM coupons WHERE code = $1`
	err := r.db.QueryRowContext(ctx, query, code).Scan(&c.ID, &c.Code, &c.Kind, &c.PercentBps, &c.AmountCents, &c.MinOrderCents, &c.ValidFrom, &c.ValidUntil, &c.IsActive)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return c, nil
}
