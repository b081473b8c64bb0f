package wire

import (
	"spice-store/internal/adaptor"
	"spice-store/internal/data/repository"
	"spice-store/pkg/middleware"
	"spice-store/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireProduct(
	r chi.Router,
	productHandler *adaptor.ProductHandler,
	repo *repository.Repository,
	config *utils.Config,
	log *zap.Logger,
) {
	// ==================== PUBLIC ROUTES ====================
	// GET /api/products - Full catalog
	r.Get("/api/products", productHandler.GetProducts)

	// GET /api/products/category/{category} - Catalog filtered by category
	r.Get("/api/products/category/{category}", productHandler.GetProductsByCategory)

	// GET /api/products/{id} - Product details
	r.Get("/api/products/{id}", productHandler.GetProduct)

	// ==================== ADMIN ROUTES ====================
	r.Group(func(r chi.Router) {
		r.Use(middleware.Auth(config.JWT, log))
		r.Use(middleware.Admin(repo.User, log))

		r.Post("/api/products", productHandler.CreateProduct)
		r.Put("/api/products/{id}", productHandler.UpdateProduct)
		r.Delete("/api/products/{id}", productHandler.DeleteProduct)

		// Stock management
		r.Put("/api/products/{id}/stock", productHandler.SetStock)
		r.Post("/api/products/{id}/stock/increment", productHandler.IncrementStock)
		r.Post("/api/products/{id}/stock/decrement", productHandler.DecrementStock)
	})
}
