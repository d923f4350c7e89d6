package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"

	"rentalworks-backend/internal/domain"
	"rentalworks-backend/internal/repository"
)

type invoiceRepository struct {
	db *sql.DB
}

func NewInvoiceRepository(db *sql.DB) repository.InvoiceRepository {
	return &invoiceRepository{db: db}
}

const invoiceColumns = `id, invoice_number, order_id, customer_id, vendor_id, subtotal_cents, discount_cents, tax_cents, security_deposit_cents, late_fee_cents, damage_fee_cents, total_cents, amount_paid_cents, status, posted_at, created_on, updated_on`

func (r *invoiceRepository) Create(ctx context.Context, inv *domain.Invoice) error {
	now := time.Now()
	inv.CreatedOn = now
	inv.UpdatedOn = now
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO invoices (invoice_number, order_id, customer_id, vendor_id, subtotal_cents, discount_cents, tax_cents, security_deposit_cents, late_fee_cents, damage_fee_cents, total_cents, amount_paid_cents, status, created_on, updated_on)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15) RETURNING id`,
		inv.InvoiceNumber, inv.OrderID, inv.CustomerID, inv.VendorID, inv.SubtotalCents, inv.DiscountCents, inv.TaxCents, inv.SecurityDepositCents, inv.LateFeeCents, inv.DamageFeeCents, inv.TotalCents, inv.AmountPaidCents, inv.Status, now, now).Scan(&inv.ID)
	if err != nil {
		// The unique constraint on order_id backs the one-invoice-per-
		// order rule even when two creates race.
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return domain.ErrInvoiceAlreadyExists
		}
		return err
	}
	return nil
}

func (r *invoiceRepository) GetByID(ctx context.Context, id int64) (*domain.Invoice, error) {
	inv, err := scanInvoice(r.db.QueryRowContext(ctx,
		`SELECT `+invoiceColumns+` FROM invoices WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return inv, nil
}

func (r *invoiceRepository) GetByOrderID(ctx context.Context, orderID int64) (*domain.Invoice, error) {
	inv, err := scanInvoice(r.db.QueryRowContext(ctx,
		`SELECT `+invoiceColumns+` FROM invoices WHERE order_id = $1`, orderID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return inv, nil
}

func (r *invoiceRepository) Post(ctx context.Context, id int64, postedAt time.Time) (*domain.Invoice, error) {
	res, err := r.db.ExecContext(ctx,
		`UPDATE invoices SET status = $1, posted_at = $2, updated_on = $3 WHERE id = $4 AND status = $5`,
		domain.InvoiceStatusPosted, postedAt, time.Now(), id, domain.InvoiceStatusDraft)
	if err != nil {
		return nil, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		inv, err := r.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		return nil, fmt.Errorf("invoice %s is %s, not DRAFT: %w", inv.InvoiceNumber, inv.Status, domain.ErrConcurrentModification)
	}
	return r.GetByID(ctx, id)
}

// RegisterPayment appends the payment and updates amount_paid and
// status as one serialized step: the invoice row is locked for the
// whole read-validate-write sequence.
func (r *invoiceRepository) RegisterPayment(ctx context.Context, invoiceID int64, payment *domain.Payment, policy domain.PaymentPolicy) (*domain.Invoice, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin payment transaction: %w", err)
	}
	defer tx.Rollback()

	inv, err := scanInvoice(tx.QueryRowContext(ctx,
		`SELECT `+invoiceColumns+` FROM invoices WHERE id = $1 FOR UPDATE`, invoiceID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	var existingPartials int
	err = tx.QueryRowContext(ctx,
		`SELECT count(*) FROM payments WHERE invoice_id = $1 AND partial`, invoiceID).Scan(&existingPartials)
	if err != nil {
		return nil, err
	}

	if err := inv.ValidatePayment(payment.AmountCents, payment.Partial, existingPartials, policy); err != nil {
		return nil, err
	}

	err = tx.QueryRowContext(ctx,
		`INSERT INTO payments (invoice_id, amount_cents, method, partial, paid_at) VALUES ($1, $2, $3, $4, $5) RETURNING id`,
		invoiceID, payment.AmountCents, payment.Method, payment.Partial, payment.PaidAt).Scan(&payment.ID)
	if err != nil {
		return nil, fmt.Errorf("insert payment: %w", err)
	}

	inv.AmountPaidCents += payment.AmountCents
	inv.Status = inv.StatusForAmountPaid(inv.AmountPaidCents)
	inv.UpdatedOn = time.Now()
	_, err = tx.ExecContext(ctx,
		`UPDATE invoices SET amount_paid_cents = $1, status = $2, updated_on = $3 WHERE id = $4`,
		inv.AmountPaidCents, inv.Status, inv.UpdatedOn, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("update invoice balance: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit payment: %w", err)
	}
	return inv, nil
}

func (r *invoiceRepository) ListPayments(ctx context.Context, invoiceID int64) ([]domain.Payment, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, invoice_id, amount_cents, method, partial, paid_at FROM payments WHERE invoice_id = $1 ORDER BY paid_at`, invoiceID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var payments []domain.Payment
	for rows.Next() {
		var p domain.Payment
		if err := rows.Scan(&p.ID, &p.InvoiceID, &p.AmountCents, &p.Method, &p.Partial, &p.PaidAt); err != nil {
			return nil, err
		}
		payments = append(payments, p)
	}
	return payments, rows.Err()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanInvoice(row rowScanner) (*domain.Invoice, error) {
	inv := &domain.Invoice{}
	var postedAt sql.NullTime
	err := row.Scan(&inv.ID, &inv.InvoiceNumber, &inv.OrderID, &inv.CustomerID, &inv.VendorID, &inv.SubtotalCents, &inv.DiscountCents, &inv.TaxCents, &inv.SecurityDepositCents, &inv.LateFeeCents, &inv.DamageFeeCents, &inv.TotalCents, &inv.AmountPaidCents, &inv.Status, &postedAt, &inv.CreatedOn, &inv.UpdatedOn)
	if err != nil {
		return nil, err
	}
	if postedAt.Valid {
		inv.PostedAt = &postedAt.Time
	}
	return inv, nil
}
