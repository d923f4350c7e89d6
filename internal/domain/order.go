package domain

import "time"

type OrderStatus string

const (
	OrderStatusQuotation   OrderStatus = "QUOTATION"
	OrderStatusRentalOrder OrderStatus = "RENTAL_ORDER"
	OrderStatusConfirmed   OrderStatus = "CONFIRMED"
	OrderStatusPickedUp    OrderStatus = "PICKED_UP"
	OrderStatusReturned    OrderStatus = "RETURNED"
	OrderStatusCancelled   OrderStatus = "CANCELLED"
)

// orderTransitions is the closed set of legal status moves. RETURNED and
// CANCELLED are terminal; cancellation is only possible before pickup.
var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusQuotation:   {OrderStatusRentalOrder, OrderStatusCancelled},
	OrderStatusRentalOrder: {OrderStatusConfirmed, OrderStatusCancelled},
	OrderStatusConfirmed:   {OrderStatusPickedUp, OrderStatusCancelled},
	OrderStatusPickedUp:    {OrderStatusReturned},
}

// CanTransitionTo reports whether moving from s to target is legal.
func (s OrderStatus) CanTransitionTo(target OrderStatus) bool {
	for _, t := range orderTransitions[s] {
		if t == target {
			return true
		}
	}
	return false
}

// Terminal reports whether no further transitions are possible.
func (s OrderStatus) Terminal() bool {
	return len(orderTransitions[s]) == 0
}

// CountsAsReserved reports whether the order's items still occupy stock.
// Only cancellation releases capacity.
func (s OrderStatus) CountsAsReserved() bool {
	return s != OrderStatusCancelled
}

// OrderAction is a caller-requested lifecycle step.
type OrderAction string

const (
	OrderActionSubmit  OrderAction = "submit"  // QUOTATION -> RENTAL_ORDER (vendor/ERP)
	OrderActionConfirm OrderAction = "confirm" // RENTAL_ORDER -> CONFIRMED
	OrderActionPickup  OrderAction = "pickup"  // CONFIRMED -> PICKED_UP
	OrderActionReturn  OrderAction = "return"  // PICKED_UP -> RETURNED
	OrderActionCancel  OrderAction = "cancel"  // any pre-pickup status -> CANCELLED
)

// TargetStatus maps an action to the status it aims for.
func (a OrderAction) TargetStatus() (OrderStatus, bool) {
	switch a {
	case OrderActionSubmit:
		return OrderStatusRentalOrder, true
	case OrderActionConfirm:
		return OrderStatusConfirmed, true
	case OrderActionPickup:
		return OrderStatusPickedUp, true
	case OrderActionReturn:
		return OrderStatusReturned, true
	case OrderActionCancel:
		return OrderStatusCancelled, true
	}
	return "", false
}

type Order struct {
	ID          int64       `json:"id"`
	OrderNumber string      `json:"order_number"`
	CustomerID  int64       `json:"customer_id"`
	VendorID    int64       `json:"vendor_id"`
	Items       []OrderItem `json:"items"`
	// Amount snapshot fields, fixed once the order leaves QUOTATION.
	// Fees assessed at return go on the invoice, never back onto these.
	SubtotalCents        int64       `json:"subtotal_cents"`
	DiscountCents        int64       `json:"discount_cents"`
	TaxCents             int64       `json:"tax_cents"`
	SecurityDepositCents int64       `json:"security_deposit_cents"`
	TotalCents           int64       `json:"total_cents"`
	CouponCode           string      `json:"coupon_code,omitempty"`
	Status               OrderStatus `json:"status"`
	DeliveryAddress      string      `json:"delivery_address"`
	BillingAddress       string      `json:"billing_address"`
	Pickup               *Pickup     `json:"pickup,omitempty"`
	Return               *Return     `json:"return,omitempty"`
	CreatedOn            time.Time   `json:"created_on"`
	UpdatedOn            time.Time   `json:"updated_on"`
}

// LatestItemEnd returns the latest rental end across the order's items.
// The late-fee clock starts there.
func (o *Order) LatestItemEnd() time.Time {
	var latest time.Time
	for _, it := range o.Items {
		if it.Interval.End.After(latest) {
			latest = it.Interval.End
		}
	}
	return latest
}

// OrderItem is immutable once the order leaves QUOTATION; re-pricing
// requires a new order.
type OrderItem struct {
	ID             int64          `json:"id"`
	OrderID        int64          `json:"order_id"`
	ProductID      int64          `json:"product_id"`
	Interval       RentalInterval `json:"interval"`
	Quantity       int64          `json:"quantity"`
	UnitPriceCents int64          `json:"unit_price_cents"`
	LineTotalCents int64          `json:"line_total_cents"`
	RatePath       string         `json:"rate_path"` // which pricing path produced the unit price
}

// Pickup is created exactly once, on the transition into PICKED_UP.
type Pickup struct {
	OrderID  int64     `json:"order_id"`
	PickedAt time.Time `json:"picked_at"`
	Notes    string    `json:"notes,omitempty"`
}

// Return is created exactly once, on the transition into RETURNED.
type Return struct {
	OrderID        int64     `json:"order_id"`
	ReturnedAt     time.Time `json:"returned_at"`
	LateFeeCents   int64     `json:"late_fee_cents"`
	DamageFeeCents int64     `json:"damage_fee_cents"`
	Notes          string    `json:"notes,omitempty"`
}
