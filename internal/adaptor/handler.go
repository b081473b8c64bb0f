package adaptor

import (
	"spice-store/internal/usecase"
	"spice-store/pkg/utils"

	"go.uber.org/zap"
)

type Handler struct {
	Auth       *AuthHandler
	Payment    *PaymentHandler
	Order      *OrderHandler
	Subscriber *SubscriberHandler
	Newsletter *NewsletterHandler
	Product    *ProductHandler
	Address    *AddressHandler
	Misc       *MiscHandler
}

func NewHandler(service *usecase.Service, config *utils.Config, log *zap.Logger) *Handler {
	return &Handler{
		Auth:       NewAuthHandler(service.Auth, log),
		Payment:    NewPaymentHandler(service.Payment, config.Webhook.Secret, log),
		Order:      NewOrderHandler(service.Order, log),
		Subscriber: NewSubscriberHandler(service.Subscriber, log),
		Newsletter: NewNewsletterHandler(service.Newsletter, log),
		Product:    NewProductHandler(service.Product, log),
		Address:    NewAddressHandler(service.Address, log),
		Misc:       NewMiscHandler(config, log),
	}
}
