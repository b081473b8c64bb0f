package usecase

import (
	"context"
	"fmt"
	"time"

	"spice-store/internal/data/repository"
	"spice-store/internal/dto/request"
	"spice-store/internal/dto/response"
	"spice-store/pkg/utils"

	"go.uber.org/zap"
)

// recentSignupWindow bounds the "recent" bucket in subscriber stats.
const recentSignupWindow = 7 * 24 * time.Hour

type NewsletterService interface {
	SendNewsletter(ctx context.Context, req *request.SendNewsletterRequest) (*response.NewsletterSendResponse, error)
	GetStats(ctx context.Context) (*repository.SubscriberStats, error)
}

type newsletterService struct {
	repo *repository.Repository
	mail MailSender
	log  *zap.Logger
}

func NewNewsletterService(repo *repository.Repository, mail MailSender, log *zap.Logger) NewsletterService {
	return &newsletterService{
		repo: repo,
		mail: mail,
		log:  log.With(zap.String("service", "newsletter")),
	}
}

// SendNewsletter delivers one message to every active subscriber in a
// single BCC send. Recipients never see each other's addresses.
func (s *newsletterService) SendNewsletter(ctx context.Context, req *request.SendNewsletterRequest) (*response.NewsletterSendResponse, error) {
	// 1. Validate input
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Send newsletter validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	if !s.mail.Configured() {
		return nil, fmt.Errorf("email delivery is not configured")
	}

	// 2. Collect active recipients
	recipients, err := s.repo.Subscriber.ActiveEmails(ctx)
	if err != nil {
		s.log.Error("Failed to load active subscribers", zap.Error(err))
		return nil, fmt.Errorf("load subscribers: %w", err)
	}
	if len(recipients) == 0 {
		return nil, fmt.Errorf("no active subscribers to send to")
	}

	// 3. Send
	if err := s.mail.SendNewsletter(recipients, req.Subject, req.Content, req.HTMLContent); err != nil {
		s.log.Error("Failed to send newsletter", zap.Error(err), zap.Int("recipients", len(recipients)))
		return nil, fmt.Errorf("send newsletter: %w", err)
	}

	s.log.Info("Newsletter sent",
		zap.String("subject", req.Subject),
		zap.Int("recipients", len(recipients)),
	)

	return &response.NewsletterSendResponse{RecipientCount: len(recipients)}, nil
}

func (s *newsletterService) GetStats(ctx context.Context) (*repository.SubscriberStats, error) {
	stats, err := s.repo.Subscriber.Stats(ctx, time.Now().Add(-recentSignupWindow))
	if err != nil {
		s.log.Error("Failed to load subscriber stats", zap.Error(err))
		return nil, fmt.Errorf("load stats: %w", err)
	}
	return stats, nil
}
