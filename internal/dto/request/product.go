package request

type CreateProductRequest struct {
	Name        string  `json:"name" validate:"required,max=150"`
	Description *string `json:"description,omitempty"`
	Category    string  `json:"category" validate:"required,oneof=sambar rasam curry speciality"`
	Price       float64 `json:"price" validate:"required,gt=0"`
	Stock       int     `json:"stock" validate:"gte=0"`
	ImageURL    *string `json:"image_url,omitempty" validate:"omitempty,url"`
}

type UpdateProductRequest struct {
	Name        *string  `json:"name,omitempty" validate:"omitempty,max=150"`
	Description *string  `json:"description,omitempty"`
	Category    *string  `json:"category,omitempty" validate:"omitempty,oneof=sambar rasam curry speciality"`
	Price       *float64 `json:"price,omitempty" validate:"omitempty,gt=0"`
	ImageURL    *string  `json:"image_url,omitempty" validate:"omitempty,url"`
}

type SetStockRequest struct {
	Stock int `json:"stock" validate:"gte=0"`
}

type AdjustStockRequest struct {
	Quantity int `json:"quantity" validate:"required,min=1"`
}
