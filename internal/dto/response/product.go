package response

import (
	"time"

	"spice-store/internal/data/entity"
)

type ProductResponse struct {
	ID          string                 `json:"id"`
	Name        string                 `json:"name"`
	Description *string                `json:"description,omitempty"`
	Category    entity.ProductCategory `json:"category"`
	Price       float64                `json:"price"`
	Stock       int                    `json:"stock"`
	ImageURL    *string                `json:"image_url,omitempty"`
	CreatedAt   time.Time              `json:"created_at"`
}

func ProductToResponse(product *entity.Product) ProductResponse {
	return ProductResponse{
		ID:          product.ID.String(),
		Name:        product.Name,
		Description: product.Description,
		Category:    product.Category,
		Price:       product.Price,
		Stock:       product.Stock,
		ImageURL:    product.ImageURL,
		CreatedAt:   product.CreatedAt,
	}
}
