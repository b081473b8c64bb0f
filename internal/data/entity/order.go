package entity

import (
	"github.com/google/uuid"
)

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusPaid      OrderStatus = "paid"
	OrderStatusCompleted OrderStatus = "completed"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// AllowedSources returns the set of states an order may be in for a
// transition into the target status. Transitions are monotonic:
// pending -> paid -> completed, with cancelled reachable from pending
// and paid. Completed and cancelled are terminal.
func (s OrderStatus) AllowedSources() []OrderStatus {
	switch s {
	case OrderStatusPaid:
		return []OrderStatus{OrderStatusPending}
	case OrderStatusCompleted:
		return []OrderStatus{OrderStatusPending, OrderStatusPaid}
	case OrderStatusCancelled:
		return []OrderStatus{OrderStatusPending, OrderStatusPaid}
	default:
		return nil
	}
}

func ValidOrderStatus(s string) bool {
	switch OrderStatus(s) {
	case OrderStatusPending, OrderStatusPaid, OrderStatusCompleted, OrderStatusCancelled:
		return true
	}
	return false
}

type Order struct {
	Base
	OrderNumber     string      `db:"order_number"`
	UserID          *uuid.UUID  `db:"user_id"`
	CustomerEmail   string      `db:"customer_email"`
	CustomerName    string      `db:"customer_name"`
	CustomerPhone   *string     `db:"customer_phone"`
	ShippingAddress string      `db:"shipping_address"`
	Subtotal        float64     `db:"subtotal"`
	Status          OrderStatus `db:"status"`

	// Payment references, filled in by whichever confirmation path wins.
	TransactionID *string `db:"transaction_id"`
	UTR           *string `db:"utr"`
	VerifiedBy    *string `db:"verified_by"`
}
