package request

type UpdateOrderStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending paid completed cancelled"`
}
