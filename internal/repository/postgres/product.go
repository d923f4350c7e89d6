package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/lib/pq"

	"rentalworks-backend/internal/domain"
	"rentalworks-backend/internal/repository"
)

type productRepository struct {
	db *sql.DB
}

func NewProductRepository(db *sql.DB) repository.ProductRepository {
	return &productRepository{db: db}
}

func (r *productRepository) Create(ctx context.Context, p *domain.Product) error {
	query := `INSERT INTO products (vendor_id, name, daily_rate_cents, hourly_rate_cents, security_deposit_cents, total_stock_qty, is_active, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9) RETURNING id`
	now := time.Now()
	err := r.db.QueryRowContext(ctx, query, p.VendorID, p.Name, p.DailyRateCents, p.HourlyRateCents, p.SecurityDepositCents, p.TotalStockQty, p.IsActive, now, now).Scan(&p.ID)
	if err != nil {
		return err
	}
	for days, mult := range p.DurationMultipliers {
		_, err = r.db.ExecContext(ctx,
			`INSERT INTO product_duration_multipliers (product_id, days, multiplier) VALUES ($1, $2, $3)`,
			p.ID, days, mult)
		if err != nil {
			return err
		}
	}
	return nil
}

func (r *productRepository) GetByID(ctx context.Context, id int64) (*domain.Product, error) {
	p := &domain.Product{}
	query := `SELECT id, vendor_id, name, daily_rate_cents, hourly_rate_cents, security_deposit_cents, total_stock_qty, is_active, created_on, updated_on
	          FROM products WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&p.ID, &p.VendorID, &p.Name, &p.DailyRateCents, &p.HourlyRateCents, &p.SecurityDepositCents, &p.TotalStockQty, &p.IsActive, &p.CreatedOn, &p.UpdatedOn)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	if err := r.loadMultipliers(ctx, map[int64]*domain.Product{p.ID: p}); err != nil {
		return nil, err
	}
	return p, nil
}

func (r *productRepository) GetByIDs(ctx context.Context, ids []int64) (map[int64]*domain.Product, error) {
	query := `SELECT id, vendor_id, name, daily_rate_cents, hourly_rate_cents, security_deposit_cents, total_stock_qty, is_active, created_on, updated_on
	          FROM products WHERE id = ANY($1)`
	rows, err := r.db.QueryContext(ctx, query, pq.Array(ids))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	products := make(map[int64]*domain.Product)
	for rows.Next() {
		p := &domain.Product{}
		if err := rows.Scan(&p.ID, &p.VendorID, &p.Name, &p.DailyRateCents, &p.HourlyRateCents, &p.SecurityDepositCents, &p.TotalStockQty, &p.IsActive, &p.CreatedOn, &p.UpdatedOn); err != nil {
			return nil, err
		}
		products[p.ID] = p
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if err := r.loadMultipliers(ctx, products); err != nil {
		return nil, err
	}
	return products, nil
}

func (r *productRepository) loadMultipliers(ctx context.Context, products map[int64]*domain.Product) error {
	if len(products) == 0 {
		return nil
	}
	ids := make([]int64, 0, len(products))
	for id := range products {
		ids = append(ids, id)
	}
	rows, err := r.db.QueryContext(ctx,
		`SELECT product_id, days, multiplier FROM product_duration_multipliers WHERE product_id = ANY($1)`,
		pq.Array(ids))
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var productID, days int64
		var mult float64
		if err := rows.Scan(&productID, &days, &mult); err != nil {
			return err
		}
		p := products[productID]
		if p.DurationMultipliers == nil {
			p.DurationMultipliers = make(map[int64]float64)
		}
		p.DurationMultipliers[days] = mult
	}
	return rows.Err()
}
