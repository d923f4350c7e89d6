package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/lib/pq"

	"rentalworks-backend/internal/domain"
	"rentalworks-backend/internal/repository"
)

type cartRepository struct {
	db *sql.DB
}

func NewCartRepository(db *sql.DB) repository.CartRepository {
	return &cartRepository{db: db}
}

func (r *cartRepository) Add(ctx context.Context, line *domain.CartLine) error {
	query := `INSERT INTO cart_lines (customer_id, product_id, start_at, end_at, quantity, created_on)
	          VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`
	now := time.Now()
	line.CreatedOn = now
	return r.db.QueryRowContext(ctx, query, line.CustomerID, line.ProductID, line.Interval.Start, line.Interval.End, line.Quantity, now).Scan(&line.ID)
}

func (r *cartRepository) ListByCustomer(ctx context.Context, customerID int64) ([]domain.CartLine, error) {
	query := `SELECT id, customer_id, product_id, start_at, end_at, quantity, created_on
	          FROM cart_lines WHERE customer_id = $1 ORDER BY created_on`
	rows, err := r.db.QueryContext(ctx, query, customerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var lines []domain.CartLine
	for rows.Next() {
		var l domain.CartLine
		if err := rows.Scan(&l.ID, &l.CustomerID, &l.ProductID, &l.Interval.Start, &l.Interval.End, &l.Quantity, &l.CreatedOn); err != nil {
			return nil, err
		}
		lines = append(lines, l)
	}
	return lines, rows.Err()
}

func (r *cartRepository) Delete(ctx context.Context, customerID, lineID int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM cart_lines WHERE id = $1 AND customer_id = $2`, lineID, customerID)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *cartRepository) DeleteByIDs(ctx context.Context, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}
	_, err := r.db.ExecContext(ctx, `DELETE FROM cart_lines WHERE id = ANY($1)`, pq.Array(ids))
	return err
}

func (r *cartRepository) DeleteStartedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM cart_lines WHERE start_at < $1`, cutoff)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
