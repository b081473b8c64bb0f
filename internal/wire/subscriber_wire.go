package wire

import (
	"spice-store/internal/adaptor"
	"spice-store/internal/data/repository"
	"spice-store/pkg/middleware"
	"spice-store/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireSubscriber(
	r chi.Router,
	subscriberHandler *adaptor.SubscriberHandler,
	newsletterHandler *adaptor.NewsletterHandler,
	repo *repository.Repository,
	config *utils.Config,
	log *zap.Logger,
) {
	// ==================== PUBLIC ROUTES ====================
	r.Post("/api/subscribe", subscriberHandler.Subscribe)
	r.Post("/api/unsubscribe", subscriberHandler.Unsubscribe)

	// ==================== ADMIN ROUTES ====================
	r.Group(func(r chi.Router) {
		r.Use(middleware.Auth(config.JWT, log))
		r.Use(middleware.Admin(repo.User, log))

		// GET /api/subscribers - List subscribers, optional ?active_only=true
		r.Get("/api/subscribers", subscriberHandler.GetSubscribers)

		// POST /api/newsletter/send - Send to all active subscribers
		r.Post("/api/newsletter/send", newsletterHandler.SendNewsletter)

		// GET /api/newsletter/stats - Subscriber counts
		r.Get("/api/newsletter/stats", newsletterHandler.GetStats)
	})
}
