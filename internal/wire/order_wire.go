package wire

import (
	"spice-store/internal/adaptor"
	"spice-store/internal/data/repository"
	"spice-store/pkg/middleware"
	"spice-store/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireOrder(
	r chi.Router,
	orderHandler *adaptor.OrderHandler,
	repo *repository.Repository,
	config *utils.Config,
	log *zap.Logger,
) {
	// ==================== PROTECTED ROUTES (require auth) ====================
	// GET /api/my-orders - The caller's own order history
	r.With(middleware.Auth(config.JWT, log)).Get("/api/my-orders", orderHandler.GetMyOrders)

	// ==================== ADMIN ROUTES ====================
	r.Route("/api/orders", func(r chi.Router) {
		r.Use(middleware.Auth(config.JWT, log))
		r.Use(middleware.Admin(repo.User, log))

		// GET /api/orders - List all orders, optional ?status= filter
		r.Get("/", orderHandler.GetOrders)

		// GET /api/orders/{id} - Order details
		r.Get("/{id}", orderHandler.GetOrder)

		// PUT /api/orders/{id}/status - Direct status override
		r.Put("/{id}/status", orderHandler.UpdateOrderStatus)
	})
}
