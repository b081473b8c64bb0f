package usecase

import (
	"spice-store/internal/data/repository"
	"spice-store/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	Auth       AuthService
	Payment    PaymentService
	Order      OrderService
	Subscriber SubscriberService
	Newsletter NewsletterService
	Product    ProductService
	Address    AddressService
}

func NewService(repo *repository.Repository, config *utils.Config, mail MailSender, log *zap.Logger) *Service {
	return &Service{
		Auth:       NewAuthService(repo, config, mail, log),
		Payment:    NewPaymentService(repo, log),
		Order:      NewOrderService(repo, log),
		Subscriber: NewSubscriberService(repo, mail, log),
		Newsletter: NewNewsletterService(repo, mail, log),
		Product:    NewProductService(repo, log),
		Address:    NewAddressService(repo, log),
	}
}
