package repository

import (
	"spice-store/pkg/database"

	"go.uber.org/zap"
)

type Repository struct {
	User       UserRepository
	Order      OrderRepository
	Subscriber SubscriberRepository
	Product    ProductRepository
	Address    AddressRepository
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	return &Repository{
		User:       NewUserRepository(db, log),
		Order:      NewOrderRepository(db, log),
		Subscriber: NewSubscriberRepository(db, log),
		Product:    NewProductRepository(db, log),
		Address:    NewAddressRepository(db, log),
	}
}
