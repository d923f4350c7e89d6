package postgres

import (
	"database/sql"

	"rentalworks-backend/internal/repository"

	_ "github.com/lib/pq"
)

type Store struct {
	db *sql.DB
	repository.ProductRepository
	repository.CartRepository
	repository.OrderRepository
	repository.InvoiceRepository
	repository.CouponRepository
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:                db,
		ProductRepository: NewProductRepository(db),
		CartRepository:    NewCartRepository(db),
		OrderRepository:   NewOrderRepository(db),
		InvoiceRepository: NewInvoiceRepository(db),
		CouponRepository:  NewCouponRepository(db),
	}
}
