package domain

import "time"

// CartLine is an ephemeral reservation wish. It holds no stock: lines
// only turn into reserved capacity when checkout commits them into an
// order, and they are deleted as soon as that happens.
type CartLine struct {
	ID         int64          `json:"id"`
	CustomerID int64          `json:"customer_id"`
	ProductID  int64          `json:"product_id"`
	Interval   RentalInterval `json:"interval"`
	Quantity   int64          `json:"quantity"`
	CreatedOn  time.Time      `json:"created_on"`
}
