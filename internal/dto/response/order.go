package response

import (
	"time"

	"spice-store/internal/data/entity"
)

type OrderResponse struct {
	ID              string             `json:"id"`
	OrderNumber     string             `json:"order_number"`
	CustomerEmail   string             `json:"customer_email"`
	CustomerName    string             `json:"customer_name"`
	CustomerPhone   *string            `json:"customer_phone,omitempty"`
	ShippingAddress string             `json:"shipping_address"`
	Subtotal        float64            `json:"subtotal"`
	Status          entity.OrderStatus `json:"status"`
	TransactionID   *string            `json:"transaction_id,omitempty"`
	UTR             *string            `json:"utr,omitempty"`
	VerifiedBy      *string            `json:"verified_by,omitempty"`
	CreatedAt       time.Time          `json:"created_at"`
	UpdatedAt       time.Time          `json:"updated_at"`
}

// Helper converter
func OrderToResponse(order *entity.Order) OrderResponse {
	return OrderResponse{
		ID:              order.ID.String(),
		OrderNumber:     order.OrderNumber,
		CustomerEmail:   order.CustomerEmail,
		CustomerName:    order.CustomerName,
		CustomerPhone:   order.CustomerPhone,
		ShippingAddress: order.ShippingAddress,
		Subtotal:        order.Subtotal,
		Status:          order.Status,
		TransactionID:   order.TransactionID,
		UTR:             order.UTR,
		VerifiedBy:      order.VerifiedBy,
		CreatedAt:       order.CreatedAt,
		UpdatedAt:       order.UpdatedAt,
	}
}
