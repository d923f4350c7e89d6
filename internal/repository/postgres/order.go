package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"time"

	"rentalworks-backend/internal/domain"
	"rentalworks-backend/internal/repository"
)

type orderRepository struct {
	db *sql.DB
}

func NewOrderRepository(db *sql.DB) repository.OrderRepository {
	return &orderRepository{db: db}
}

// reservedQuery sums item quantities of non-cancelled orders whose
// half-open window overlaps [$2, $3). Reserved capacity is always
// derived by this scan, never kept as a counter.
const reservedQuery = `
	SELECT COALESCE(SUM(oi.quantity), 0)
	FROM order_items oi
	JOIN orders o ON o.id = oi.order_id
	WHERE oi.product_id = $1
	  AND o.status <> 'CANCELLED'
	  AND oi.start_at < $3
	  AND oi.end_at > $2`

func (r *orderRepository) CreateChecked(ctx context.Context, o *domain.Order) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin order transaction: %w", err)
	}
	defer tx.Rollback()

	// Lock the product rows in a stable order so two concurrent commits
	// against the same products serialize instead of deadlocking.
	stock := make(map[int64]int64)
	for _, productID := range sortedProductIDs(o.Items) {
		var qty int64
		var active bool
		err := tx.QueryRowContext(ctx,
			`SELECT total_stock_qty, is_active FROM products WHERE id = $1 FOR UPDATE`,
			productID).Scan(&qty, &active)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return domain.ErrNotFound
			}
			return fmt.Errorf("lock product %d: %w", productID, err)
		}
		if !active {
			return domain.ErrInactiveProduct
		}
		stock[productID] = qty
	}

	// Authoritative availability re-check. The advisory check the
	// caller ran earlier may be stale; only this one can block a commit.
	for _, item := range o.Items {
		var reserved int64
		err := tx.QueryRowContext(ctx, reservedQuery,
			item.ProductID, item.Interval.Start, item.Interval.End).Scan(&reserved)
		if err != nil {
			return fmt.Errorf("sum reserved for product %d: %w", item.ProductID, err)
		}
		available := stock[item.ProductID] - reserved
		if available < 0 {
			available = 0
		}
		if item.Quantity > available {
			return &domain.InsufficientStockError{
				ProductID: item.ProductID,
				Requested: item.Quantity,
				Available: available,
			}
		}
	}

	now := time.Now()
	o.CreatedOn = now
	o.UpdatedOn = now
	err = tx.QueryRowContext(ctx,
		`INSERT INTO orders (order_number, customer_id, vendor_id, subtotal_cents, discount_cents, tax_cents, security_deposit_cents, total_cents, coupon_code, status, delivery_address, billing_address, created_on, updated_on)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14) RETURNING id`,
		o.OrderNumber, o.CustomerID, o.VendorID, o.SubtotalCents, o.DiscountCents, o.TaxCents, o.SecurityDepositCents, o.TotalCents, o.CouponCode, o.Status, o.DeliveryAddress, o.BillingAddress, now, now).Scan(&o.ID)
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}

	for i := range o.Items {
		item := &o.Items[i]
		item.OrderID = o.ID
		err = tx.QueryRowContext(ctx,
			`INSERT INTO order_items (order_id, product_id, start_at, end_at, quantity, unit_price_cents, line_total_cents, rate_path)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING id`,
			o.ID, item.ProductID, item.Interval.Start, item.Interval.End, item.Quantity, item.UnitPriceCents, item.LineTotalCents, item.RatePath).Scan(&item.ID)
		if err != nil {
			return fmt.Errorf("insert order item: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit order: %w", err)
	}
	return nil
}

func (r *orderRepository) GetByID(ctx context.Context, id int64) (*domain.Order, error) {
	o := &domain.Order{}
	query := `SELECT id, order_number, customer_id, vendor_id, subtotal_cents, discount_cents, tax_cents, security_deposit_cents, total_cents, COALESCE(coupon_code, ''), status, delivery_address, billing_address, created_on, updated_on
	          FROM orders WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&o.ID, &o.OrderNumber, &o.CustomerID, &o.VendorID, &o.SubtotalCents, &o.DiscountCents, &o.TaxCents, &o.SecurityDepositCents, &o.TotalCents, &o.CouponCode, &o.Status, &o.DeliveryAddress, &o.BillingAddress, &o.CreatedOn, &o.UpdatedOn)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT id, order_id, product_id, start_at, end_at, quantity, unit_price_cents, line_total_cents, rate_path
		 FROM order_items WHERE order_id = $1 ORDER BY id`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var it domain.OrderItem
		if err := rows.Scan(&it.ID, &it.OrderID, &it.ProductID, &it.Interval.Start, &it.Interval.End, &it.Quantity, &it.UnitPriceCents, &it.LineTotalCents, &it.RatePath); err != nil {
			return nil, err
		}
		o.Items = append(o.Items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	pickup := &domain.Pickup{}
	err = r.db.QueryRowContext(ctx,
		`SELECT order_id, picked_at, notes FROM order_pickups WHERE order_id = $1`, id).
		Scan(&pickup.OrderID, &pickup.PickedAt, &pickup.Notes)
	if err == nil {
		o.Pickup = pickup
	} else if !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}

	ret := &domain.Return{}
	err = r.db.QueryRowContext(ctx,
		`SELECT order_id, returned_at, late_fee_cents, damage_fee_cents, notes FROM order_returns WHERE order_id = $1`, id).
		Scan(&ret.OrderID, &ret.ReturnedAt, &ret.LateFeeCents, &ret.DamageFeeCents, &ret.Notes)
	if err == nil {
		o.Return = ret
	} else if !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}

	return o, nil
}

func (r *orderRepository) ListByCustomer(ctx context.Context, customerID int64, status string, page, pageSize int64) ([]domain.Order, int64, error) {
	return r.list(ctx, "customer_id", customerID, status, page, pageSize)
}

func (r *orderRepository) ListByVendor(ctx context.Context, vendorID int64, status string, page, pageSize int64) ([]domain.Order, int64, error) {
	return r.list(ctx, "vendor_id", vendorID, status, page, pageSize)
}

func (r *orderRepository) list(ctx context.Context, ownerCol string, ownerID int64, status string, page, pageSize int64) ([]domain.Order, int64, error) {
	offset := (page - 1) * pageSize
	query := `SELECT id, order_number, customer_id, vendor_id, subtotal_cents, discount_cents, tax_cents, security_deposit_cents, total_cents, COALESCE(coupon_code, ''), status, delivery_address, billing_address, created_on, updated_on
	          FROM orders WHERE ` + ownerCol + ` = $1`

	args := []interface{}{ownerID}
	argIdx := 2
	if status != "" {
		query += fmt.Sprintf(" AND status = $%d", argIdx)
		args = append(args, status)
		argIdx++
	}

	var count int64
	countQuery := "SELECT count(*) FROM (" + query + ") AS sub"
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&count); err != nil {
		return nil, 0, err
	}

	query += fmt.Sprintf(" ORDER BY created_on DESC LIMIT $%d OFFSET $%d", argIdx, argIdx+1)
	args = append(args, pageSize, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var orders []domain.Order
	for rows.Next() {
		var o domain.Order
		if err := rows.Scan(&o.ID, &o.OrderNumber, &o.CustomerID, &o.VendorID, &o.SubtotalCents, &o.DiscountCents, &o.TaxCents, &o.SecurityDepositCents, &o.TotalCents, &o.CouponCode, &o.Status, &o.DeliveryAddress, &o.BillingAddress, &o.CreatedOn, &o.UpdatedOn); err != nil {
			return nil, 0, err
		}
		orders = append(orders, o)
	}
	return orders, count, rows.Err()
}

func (r *orderRepository) SumReserved(ctx context.Context, productID int64, interval domain.RentalInterval) (int64, error) {
	var reserved int64
	err := r.db.QueryRowContext(ctx, reservedQuery, productID, interval.Start, interval.End).Scan(&reserved)
	return reserved, err
}

func (r *orderRepository) TransitionStatus(ctx context.Context, orderID int64, from, to domain.OrderStatus) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE orders SET status = $1, updated_on = $2 WHERE id = $3 AND status = $4`,
		to, time.Now(), orderID, from)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		// Another caller moved the order first.
		return domain.ErrConcurrentModification
	}
	return nil
}

func (r *orderRepository) MarkPickedUp(ctx context.Context, orderID int64, pickup *domain.Pickup) error {
	return r.transitionWithRecord(ctx, orderID, domain.OrderStatusConfirmed, domain.OrderStatusPickedUp,
		`INSERT INTO order_pickups (order_id, picked_at, notes) VALUES ($1, $2, $3)`,
		orderID, pickup.PickedAt, pickup.Notes)
}

func (r *orderRepository) MarkReturned(ctx context.Context, orderID int64, ret *domain.Return) error {
	return r.transitionWithRecord(ctx, orderID, domain.OrderStatusPickedUp, domain.OrderStatusReturned,
		`INSERT INTO order_returns (order_id, returned_at, late_fee_cents, damage_fee_cents, notes) VALUES ($1, $2, $3, $4, $5)`,
		orderID, ret.ReturnedAt, ret.LateFeeCents, ret.DamageFeeCents, ret.Notes)
}

func (r *orderRepository) transitionWithRecord(ctx context.Context, orderID int64, from, to domain.OrderStatus, recordQuery string, recordArgs ...interface{}) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`UPDATE orders SET status = $1, updated_on = $2 WHERE id = $3 AND status = $4`,
		to, time.Now(), orderID, from)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrConcurrentModification
	}

	if _, err := tx.ExecContext(ctx, recordQuery, recordArgs...); err != nil {
		return err
	}
	return tx.Commit()
}

func (r *orderRepository) ListOverdue(ctx context.Context, asOf time.Time) ([]domain.Order, error) {
	query := `SELECT o.id, o.order_number, o.customer_id, o.vendor_id, o.status,
	                 (SELECT MAX(oi.end_at) FROM order_items oi WHERE oi.order_id = o.id) AS due_at
	          FROM orders o
	          WHERE o.status = 'PICKED_UP'
	            AND (SELECT MAX(oi.end_at) FROM order_items oi WHERE oi.order_id = o.id) < $1
	          ORDER BY due_at`
	rows, err := r.db.QueryContext(ctx, query, asOf)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []domain.Order
	for rows.Next() {
		var o domain.Order
		var dueAt time.Time
		if err := rows.Scan(&o.ID, &o.OrderNumber, &o.CustomerID, &o.VendorID, &o.Status, &dueAt); err != nil {
			return nil, err
		}
		o.Items = []domain.OrderItem{{OrderID: o.ID, Interval: domain.RentalInterval{End: dueAt}}}
		orders = append(orders, o)
	}
	return orders, rows.Err()
}

func sortedProductIDs(items []domain.OrderItem) []int64 {
	seen := make(map[int64]struct{}, len(items))
	ids := make([]int64, 0, len(items))
	for _, it := range items {
		if _, ok := seen[it.ProductID]; ok {
			continue
		}
		seen[it.ProductID] = struct{}{}
		ids = append(ids, it.ProductID)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
