package pricing

import (
	"math"

	"rentalworks-backend/internal/domain"
)

// Policy holds the pricing constants. These are business policy values,
// passed in explicitly so a quote is a pure function of
// (product, interval, quantity, policy).
type Policy struct {
	// TaxRateBps is the tax rate in basis points, applied to the order
	// subtotal after discount, never per line.
	TaxRateBps int64
	// WeekBillableDays is how many daily-rate units a started week of
	// rental is billed as. Billing 7 calendar days as 5 daily units
	// encodes the standing volume discount.
	WeekBillableDays int64
}

// Rate paths recorded on each priced line.
const (
	RatePathHourly          = "HOURLY"
	RatePathFixedMultiplier = "FIXED_MULTIPLIER"
	RatePathWeeklyBlock     = "WEEKLY_BLOCK"
	RatePathDaily           = "DAILY"
)

// Quote is a priced line plus the decision trace of how it was priced.
type Quote struct {
	UnitPriceCents int64  `json:"unit_price_cents"`
	LineTotalCents int64  `json:"line_total_cents"`
	RatePath       string `json:"rate_path"`
	BillableUnits  int64  `json:"billable_units"`
}

// QuoteLine prices one (product, interval, quantity) triple.
//
// Rate selection, in order:
//  1. hourly rate, when the product has one and the rental is under 24h
//  2. fixed-duration multiplier matching the exact day count
//  3. weekly block for rentals of 7+ days
//  4. plain daily rate
func QuoteLine(product *domain.Product, interval domain.RentalInterval, quantity int64, policy Policy) (Quote, error) {
	if !interval.Valid() {
		return Quote{}, domain.ErrInvalidInterval
	}
	if quantity < 1 {
		return Quote{}, domain.ErrInvalidQuantity
	}

	if hours := interval.DurationHours(); product.HourlyRateCents > 0 && hours < 24 {
		units := int64(math.Ceil(hours))
		if units < 1 {
			units = 1
		}
		unit := product.HourlyRateCents * units
		return Quote{
			UnitPriceCents: unit,
			LineTotalCents: unit * quantity,
			RatePath:       RatePathHourly,
			BillableUnits:  units,
		}, nil
	}

	days := interval.DurationDays()

	if mult, ok := product.DurationMultipliers[days]; ok {
		unit := int64(math.Round(float64(product.DailyRateCents) * mult))
		return Quote{
			UnitPriceCents: unit,
			LineTotalCents: unit * quantity,
			RatePath:       RatePathFixedMultiplier,
			BillableUnits:  days,
		}, nil
	}

	if days >= 7 {
		weeks := (days + 6) / 7
		unit := product.DailyRateCents * policy.WeekBillableDays * weeks
		return Quote{
			UnitPriceCents: unit,
			LineTotalCents: unit * quantity,
			RatePath:       RatePathWeeklyBlock,
			BillableUnits:  weeks,
		}, nil
	}

	unit := product.DailyRateCents * days
	return Quote{
		UnitPriceCents: unit,
		LineTotalCents: unit * quantity,
		RatePath:       RatePathDaily,
		BillableUnits:  days,
	}, nil
}

// TaxOn computes the tax on a discounted subtotal, rounded down to
// whole cents.
func TaxOn(subtotalCents int64, policy Policy) int64 {
	if subtotalCents <= 0 {
		return 0
	}
	return subtotalCents * policy.TaxRateBps / 10000
}
