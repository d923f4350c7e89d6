package domain

import "time"

type InvoiceStatus string

const (
	InvoiceStatusDraft         InvoiceStatus = "DRAFT"
	InvoiceStatusPosted        InvoiceStatus = "POSTED"
	InvoiceStatusPartiallyPaid InvoiceStatus = "PARTIALLY_PAID"
	InvoiceStatusPaid          InvoiceStatus = "PAID"
)

// PaymentPolicy is the configurable business policy around partial
// payments. The limits are policy, not domain law.
type PaymentPolicy struct {
	// MinPartialBps is the minimum partial payment, in basis points of
	// the outstanding balance at registration time.
	MinPartialBps int64
	// MaxPartialPayments caps how many partial payments an invoice may
	// ever receive. Once the cap is reached, the next payment must
	// settle the invoice in full.
	MaxPartialPayments int
}

// Invoice is the settlement record for one order. TotalCents is fixed
// at creation; only AmountPaidCents and Status move afterwards.
type Invoice struct {
	ID                   int64         `json:"id"`
	InvoiceNumber        string        `json:"invoice_number"`
	OrderID              int64         `json:"order_id"`
	CustomerID           int64         `json:"customer_id"`
	VendorID             int64         `json:"vendor_id"`
	SubtotalCents        int64         `json:"subtotal_cents"`
	DiscountCents        int64         `json:"discount_cents"`
	TaxCents             int64         `json:"tax_cents"`
	SecurityDepositCents int64         `json:"security_deposit_cents"`
	LateFeeCents         int64         `json:"late_fee_cents"`
	DamageFeeCents       int64         `json:"damage_fee_cents"`
	TotalCents           int64         `json:"total_cents"`
	AmountPaidCents      int64         `json:"amount_paid_cents"`
	Status               InvoiceStatus `json:"status"`
	PostedAt             *time.Time    `json:"posted_at,omitempty"`
	CreatedOn            time.Time     `json:"created_on"`
	UpdatedOn            time.Time     `json:"updated_on"`
}

// OutstandingCents is the balance still owed.
func (i *Invoice) OutstandingCents() int64 {
	return i.TotalCents - i.AmountPaidCents
}

// ValidatePayment checks whether a payment of amountCents may be
// registered right now. existingPartials is the count of partial
// payments already on the ledger for this invoice. The minimum-partial
// fraction is computed against the outstanding balance at this moment,
// not the original total, so fees added between invoicing and payment
// raise the floor.
func (i *Invoice) ValidatePayment(amountCents int64, partial bool, existingPartials int, policy PaymentPolicy) error {
	if i.Status != InvoiceStatusPosted && i.Status != InvoiceStatusPartiallyPaid {
		return ErrInvoiceNotPayable
	}
	if amountCents <= 0 {
		return ErrInvalidPaymentAmount
	}
	outstanding := i.OutstandingCents()
	if amountCents > outstanding {
		return ErrOverpaymentRejected
	}
	if partial {
		if existingPartials >= policy.MaxPartialPayments {
			return ErrPartialPaymentNotAllowed
		}
		if amountCents < outstanding*policy.MinPartialBps/10000 {
			return ErrPartialPaymentTooSmall
		}
		return nil
	}
	// Once any partial payment exists, a full payment must clear the
	// remaining balance in one step.
	if existingPartials > 0 && amountCents != outstanding {
		return ErrPartialPaymentNotAllowed
	}
	return nil
}

// StatusForAmountPaid derives the invoice status after amount_paid
// reaches paidCents.
func (i *Invoice) StatusForAmountPaid(paidCents int64) InvoiceStatus {
	switch {
	case paidCents >= i.TotalCents:
		return InvoiceStatusPaid
	case paidCents > 0:
		return InvoiceStatusPartiallyPaid
	default:
		return InvoiceStatusPosted
	}
}

type PaymentMethod string

const (
	PaymentMethodCash         PaymentMethod = "CASH"
	PaymentMethodCard         PaymentMethod = "CARD"
	PaymentMethodBankTransfer PaymentMethod = "BANK_TRANSFER"
)

// Payment is an append-only ledger entry. The invoice's amount_paid is
// updated atomically with each insert, never maintained independently.
type Payment struct {
	ID          int64         `json:"id"`
	InvoiceID   int64         `json:"invoice_id"`
	AmountCents int64         `json:"amount_cents"`
	Method      PaymentMethod `json:"method"`
	Partial     bool          `json:"partial"`
	PaidAt      time.Time     `json:"paid_at"`
}
