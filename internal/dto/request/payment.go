package request

type OrderItem struct {
	ProductID string `json:"product_id" validate:"required,uuid4"`
	Quantity  int    `json:"quantity" validate:"required,min=1"`
}

type CreatePendingOrderRequest struct {
	CustomerName    string      `json:"customer_name" validate:"required,max=100"`
	CustomerEmail   string      `json:"customer_email" validate:"required,email"`
	CustomerPhone   *string     `json:"customer_phone,omitempty" validate:"omitempty,min=10,max=15"`
	ShippingAddress string      `json:"shipping_address" validate:"required"`
	Items           []OrderItem `json:"items" validate:"required,min=1,dive"`
}

type ConfirmPaymentRequest struct {
	OrderID string `json:"order_id" validate:"required,uuid4"`
	UTR     string `json:"utr" validate:"required,min=6,max=30"`
}

type AdminVerifyRequest struct {
	OrderID  string `json:"order_id" validate:"required,uuid4"`
	Approved bool   `json:"approved"`
	Note     string `json:"note,omitempty" validate:"omitempty,max=255"`
}

type VerifyUTRRequest struct {
	UTR string `json:"utr" validate:"required,min=6,max=30"`
}

// UPIWebhookRequest is the payload posted by the payment gateway.
type UPIWebhookRequest struct {
	Event         string  `json:"event" validate:"required"`
	OrderNumber   string  `json:"order_number" validate:"required"`
	TransactionID string  `json:"transaction_id" validate:"required"`
	Amount        float64 `json:"amount"`
}
