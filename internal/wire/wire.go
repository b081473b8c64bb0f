// internal/wire/wire.go
package wire

import (
	"spice-store/internal/adaptor"
	"spice-store/internal/data/repository"
	"spice-store/internal/usecase"
	"spice-store/pkg/mailer"
	"spice-store/pkg/middleware"
	"spice-store/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type App struct {
	Router *chi.Mux
}

// Wiring initializes all dependencies
func Wiring(repo *repository.Repository, config *utils.Config, logger *zap.Logger) *App {
	mail := mailer.NewMailer(config.Email, logger)
	service := usecase.NewService(repo, config, mail, logger)
	handler := adaptor.NewHandler(service, config, logger)

	router := setupRouter(handler, repo, config, logger)

	return &App{
		Router: router,
	}
}

// setupRouter configures the Chi router
func setupRouter(
	handler *adaptor.Handler,
	repo *repository.Repository,
	config *utils.Config,
	logger *zap.Logger,
) *chi.Mux {
	r := chi.NewRouter()

	// Apply global middleware
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))
	r.Use(middleware.CORS())

	// Apply routes
	wireAuth(r, handler.Auth, config, logger)
	wirePayment(r, handler.Payment, repo, config, logger)
	wireOrder(r, handler.Order, repo, config, logger)
	wireSubscriber(r, handler.Subscriber, handler.Newsletter, repo, config, logger)
	wireProduct(r, handler.Product, repo, config, logger)
	wireAddress(r, handler.Address, config, logger)

	// Public endpoints
	r.Get("/health", handler.Misc.Health)
	r.Get("/api/merchant-upi", handler.Misc.MerchantUPI)

	return r
}
