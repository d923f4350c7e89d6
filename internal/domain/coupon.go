package domain

import "time"

type CouponKind string

const (
	CouponKindPercent CouponKind = "PERCENT"
	CouponKindFixed   CouponKind = "FIXED"
)

type Coupon struct {
	ID            int64      `json:"id"`
	Code          string     `json:"code"`
	Kind          CouponKind `json:"kind"`
	PercentBps    int64      `json:"percent_bps"`  // PERCENT: discount in basis points
	AmountCents   int64      `json:"amount_cents"` // FIXED: flat discount
	MinOrderCents int64      `json:"min_order_cents"`
	ValidFrom     time.Time  `json:"valid_from"`
	ValidUntil    time.Time  `json:"valid_until"`
	IsActive      bool       `json:"is_active"`
}

// ValidAt reports whether the coupon may be applied at instant t.
func (c *Coupon) ValidAt(t time.Time) bool {
	return c.IsActive && !t.Before(c.ValidFrom) && t.Before(c.ValidUntil)
}

// DiscountFor returns the discount granted on amountCents. The result
// never exceeds the amount it applies to.
func (c *Coupon) DiscountFor(amountCents int64) int64 {
	var d int64
	switch c.Kind {
	case CouponKindPercent:
		d = amountCents * c.PercentBps / 10000
	case CouponKindFixed:
		d = c.AmountCents
	}
	if d > amountCents {
		d = amountCents
	}
	if d < 0 {
		d = 0
	}
	return d
}
