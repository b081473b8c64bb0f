package wire

import (
	"spice-store/internal/adaptor"
	"spice-store/internal/data/repository"
	"spice-store/pkg/middleware"
	"spice-store/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wirePayment(
	r chi.Router,
	paymentHandler *adaptor.PaymentHandler,
	repo *repository.Repository,
	config *utils.Config,
	log *zap.Logger,
) {
	// ==================== PUBLIC ROUTES ====================
	// Gateway callback; authenticated by HMAC signature, not by JWT
	r.Post("/api/payment/webhook/upi", paymentHandler.UPIWebhook)

	// ==================== PROTECTED ROUTES (require auth) ====================
	r.Group(func(r chi.Router) {
		r.Use(middleware.Auth(config.JWT, log))

		// POST /api/payment/create-pending - Create a pending order
		r.Post("/api/payment/create-pending", paymentHandler.CreatePendingOrder)

		// POST /api/payment/confirm - Customer reports a completed UPI payment
		r.Post("/api/payment/confirm", paymentHandler.ConfirmPayment)
	})

	// ==================== ADMIN ROUTES ====================
	r.Group(func(r chi.Router) {
		// Require both authentication AND admin role
		r.Use(middleware.Auth(config.JWT, log))
		r.Use(middleware.Admin(repo.User, log))

		// POST /api/payment/admin/verify - Approve or reject a payment
		r.Post("/api/payment/admin/verify", paymentHandler.AdminVerify)

		// POST /api/payment/verify-utr - Complete an order by bank reference
		r.Post("/api/payment/verify-utr", paymentHandler.VerifyUTR)
	})
}
