package usecase

import (
	"context"
	"fmt"
	"time"

	"spice-store/internal/data/entity"
	"spice-store/internal/data/repository"
	"spice-store/internal/dto/request"
	"spice-store/internal/dto/response"
	"spice-store/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type SubscriberService interface {
	// Subscribe reports whether an inactive record was reactivated
	// rather than created.
	Subscribe(ctx context.Context, req *request.SubscribeRequest) (*response.SubscriberResponse, bool, error)
	Unsubscribe(ctx context.Context, req *request.UnsubscribeRequest) error
	GetSubscribers(ctx context.Context, activeOnly bool) ([]response.SubscriberResponse, error)
}

type subscriberService struct {
	repo *repository.Repository
	mail MailSender
	log  *zap.Logger
}

func NewSubscriberService(repo *repository.Repository, mail MailSender, log *zap.Logger) SubscriberService {
	return &subscriberService{
		repo: repo,
		mail: mail,
		log:  log.With(zap.String("service", "subscriber")),
	}
}

// Subscribe creates a new subscriber, or reactivates one that
// previously unsubscribed. Subscribing an already active address is
// rejected so the client can tell the user.
func (s *subscriberService) Subscribe(ctx context.Context, req *request.SubscribeRequest) (*response.SubscriberResponse, bool, error) {
	// 1. Validate input
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Subscribe validation failed", zap.Any("errors", errs))
		return nil, false, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	email := utils.NormalizeEmail(req.Email)

	// 2. Look for an existing record
	existing, err := s.repo.Subscriber.FindByEmail(ctx, email)
	if err != nil {
		s.log.Error("Failed to look up subscriber", zap.Error(err), zap.String("email", email))
		return nil, false, fmt.Errorf("find subscriber: %w", err)
	}

	if existing != nil {
		if existing.IsActive {
			return nil, false, fmt.Errorf("email %s is already subscribed", email)
		}

		// 3a. Reactivate
		if err := s.repo.Subscriber.SetActive(ctx, email, true, nil); err != nil {
			s.log.Error("Failed to reactivate subscriber", zap.Error(err), zap.String("email", email))
			return nil, false, fmt.Errorf("reactivate subscriber: %w", err)
		}

		existing.IsActive = true
		existing.UnsubscribedAt = nil

		s.log.Info("Subscriber reactivated", zap.String("email", email))
		go s.sendSubscribeEmails(email, true)

		resp := response.SubscriberToResponse(existing)
		return &resp, true, nil
	}

	// 3b. Brand new subscriber
	now := time.Now()
	sub := &entity.Subscriber{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Email:        email,
		IsActive:     true,
		SubscribedAt: now,
	}

	if err := s.repo.Subscriber.Create(ctx, sub); err != nil {
		s.log.Error("Failed to create subscriber", zap.Error(err), zap.String("email", email))
		return nil, false, fmt.Errorf("create subscriber: %w", err)
	}

	s.log.Info("Subscriber created", zap.String("email", email))
	go s.sendSubscribeEmails(email, false)

	resp := response.SubscriberToResponse(sub)
	return &resp, false, nil
}

// Unsubscribe deactivates an active subscriber. Unknown and already
// inactive addresses are rejected with distinct errors so the handler
// can answer 404 and 400 respectively.
func (s *subscriberService) Unsubscribe(ctx context.Context, req *request.UnsubscribeRequest) error {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Unsubscribe validation failed", zap.Any("errors", errs))
		return fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	email := utils.NormalizeEmail(req.Email)

	existing, err := s.repo.Subscriber.FindByEmail(ctx, email)
	if err != nil {
		s.log.Error("Failed to look up subscriber", zap.Error(err), zap.String("email", email))
		return fmt.Errorf("find subscriber: %w", err)
	}
	if existing == nil {
		return fmt.Errorf("subscriber %s not found", email)
	}
	if !existing.IsActive {
		return fmt.Errorf("email %s is already unsubscribed", email)
	}

	now := time.Now()
	if err := s.repo.Subscriber.SetActive(ctx, email, false, &now); err != nil {
		s.log.Error("Failed to deactivate subscriber", zap.Error(err), zap.String("email", email))
		return fmt.Errorf("unsubscribe: %w", err)
	}

	s.log.Info("Subscriber unsubscribed", zap.String("email", email))
	return nil
}

func (s *subscriberService) GetSubscribers(ctx context.Context, activeOnly bool) ([]response.SubscriberResponse, error) {
	subs, err := s.repo.Subscriber.FindAll(ctx, activeOnly)
	if err != nil {
		s.log.Error("Failed to list subscribers", zap.Error(err))
		return nil, fmt.Errorf("list subscribers: %w", err)
	}

	items := make([]response.SubscriberResponse, 0, len(subs))
	for _, sub := range subs {
		items = append(items, response.SubscriberToResponse(sub))
	}
	return items, nil
}

// sendSubscribeEmails runs in a goroutine; mail failures never affect
// the subscription itself. The admin is notified for brand-new signups
// only, not reactivations.
func (s *subscriberService) sendSubscribeEmails(email string, reactivation bool) {
	if !s.mail.Configured() {
		return
	}
	if err := s.mail.SendSubscriberWelcome(email, reactivation); err != nil {
		s.log.Warn("Failed to send subscriber welcome email", zap.Error(err), zap.String("email", email))
	}
	if reactivation {
		return
	}
	if err := s.mail.SendAdminNewSubscriber(email); err != nil {
		s.log.Warn("Failed to send admin subscriber notification", zap.Error(err), zap.String("email", email))
	}
}
