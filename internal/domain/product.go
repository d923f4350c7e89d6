package domain

import "time"

// Product carries the rate and stock metadata the engine reads from the
// catalog. TotalStockQty is never decremented on booking; remaining
// availability is always derived from active reservations.
type Product struct {
	ID                   int64             `json:"id"`
	VendorID             int64             `json:"vendor_id"`
	Name                 string            `json:"name"`
	DailyRateCents       int64             `json:"daily_rate_cents"`
	HourlyRateCents      int64             `json:"hourly_rate_cents"` // 0 means no hourly rate
	SecurityDepositCents int64             `json:"security_deposit_cents"`
	TotalStockQty        int64             `json:"total_stock_qty"`
	DurationMultipliers  map[int64]float64 `json:"duration_multipliers,omitempty"` // exact day count -> multiplier on the daily rate
	IsActive             bool              `json:"is_active"`
	CreatedOn            time.Time         `json:"created_on"`
	UpdatedOn            time.Time         `json:"updated_on"`
}
