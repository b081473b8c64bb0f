package wire

import (
	"spice-store/internal/adaptor"
	"spice-store/pkg/middleware"
	"spice-store/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireAddress(
	r chi.Router,
	addressHandler *adaptor.AddressHandler,
	config *utils.Config,
	log *zap.Logger,
) {
	// ==================== PROTECTED ROUTES (require auth) ====================
	r.Group(func(r chi.Router) {
		r.Use(middleware.Auth(config.JWT, log))

		r.Post("/api/addresses", addressHandler.CreateAddress)
		r.Get("/api/addresses", addressHandler.GetAddresses)
		r.Get("/api/addresses/{id}", addressHandler.GetAddress)
		r.Put("/api/addresses/{id}", addressHandler.UpdateAddress)
		r.Delete("/api/addresses/{id}", addressHandler.DeleteAddress)
		r.Put("/api/addresses/{id}/default", addressHandler.SetDefaultAddress)
	})
}
