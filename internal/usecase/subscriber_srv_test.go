package usecase

import (
	"context"
	"testing"
	"time"

	"spice-store/internal/dto/request"
	"spice-store/pkg/mailer"
	"spice-store/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestSubscriberService() SubscriberService {
	repo := newFakeRepository()
	mail := mailer.NewMailer(utils.EmailConfig{}, zap.NewNop())
	return NewSubscriberService(repo, mail, zap.NewNop())
}

func TestSubscribeLifecycle(t *testing.T) {
	svc := newTestSubscriberService()
	ctx := context.Background()

	// 1. New subscription
	resp, reactivated, err := svc.Subscribe(ctx, &request.SubscribeRequest{Email: "Fan@Example.com"})
	require.NoError(t, err)
	assert.False(t, reactivated)
	assert.Equal(t, "fan@example.com", resp.Email)
	assert.True(t, resp.IsActive)
	assert.Nil(t, resp.UnsubscribedAt)

	// 2. Subscribing again while active is rejected
	_, _, err = svc.Subscribe(ctx, &request.SubscribeRequest{Email: "fan@example.com"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already subscribed")

	// 3. Unsubscribe
	require.NoError(t, svc.Unsubscribe(ctx, &request.UnsubscribeRequest{Email: "fan@example.com"}))

	// 4. Unsubscribing again is rejected
	err = svc.Unsubscribe(ctx, &request.UnsubscribeRequest{Email: "fan@example.com"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already unsubscribed")

	// 5. Re-subscribe reactivates the same record
	resp, reactivated, err = svc.Subscribe(ctx, &request.SubscribeRequest{Email: "fan@example.com"})
	require.NoError(t, err)
	assert.True(t, reactivated)
	assert.True(t, resp.IsActive)
	assert.Nil(t, resp.UnsubscribedAt)
}

func TestSubscribeAdminNotificationNewSignupsOnly(t *testing.T) {
	repo := newFakeRepository()
	mail := newFakeMailer()
	svc := NewSubscriberService(repo, mail, zap.NewNop())
	ctx := context.Background()

	// New signup notifies the admin
	_, _, err := svc.Subscribe(ctx, &request.SubscribeRequest{Email: "fan@example.com"})
	require.NoError(t, err)
	require.Eventually(t, func() bool {
		return mail.adminNoticeCount() == 1
	}, time.Second, 10*time.Millisecond)

	// Reactivation sends the welcome back but no admin notification
	require.NoError(t, svc.Unsubscribe(ctx, &request.UnsubscribeRequest{Email: "fan@example.com"}))
	_, reactivated, err := svc.Subscribe(ctx, &request.SubscribeRequest{Email: "fan@example.com"})
	require.NoError(t, err)
	require.True(t, reactivated)
	require.Eventually(t, func() bool {
		return mail.reactivationCount() == 1
	}, time.Second, 10*time.Millisecond)
	assert.Equal(t, 1, mail.adminNoticeCount())
}

func TestUnsubscribeUnknownEmail(t *testing.T) {
	svc := newTestSubscriberService()

	err := svc.Unsubscribe(context.Background(), &request.UnsubscribeRequest{Email: "ghost@example.com"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestGetSubscribersActiveFilter(t *testing.T) {
	repo := newFakeRepository()
	mail := mailer.NewMailer(utils.EmailConfig{}, zap.NewNop())
	svc := NewSubscriberService(repo, mail, zap.NewNop())
	ctx := context.Background()

	_, _, err := svc.Subscribe(ctx, &request.SubscribeRequest{Email: "a@example.com"})
	require.NoError(t, err)
	_, _, err = svc.Subscribe(ctx, &request.SubscribeRequest{Email: "b@example.com"})
	require.NoError(t, err)
	require.NoError(t, svc.Unsubscribe(ctx, &request.UnsubscribeRequest{Email: "b@example.com"}))

	all, err := svc.GetSubscribers(ctx, false)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	active, err := svc.GetSubscribers(ctx, true)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, "a@example.com", active[0].Email)
}

func TestSendNewsletterRequiresRecipients(t *testing.T) {
	repo := newFakeRepository()
	mail := mailer.NewMailer(utils.EmailConfig{
		Host:     "smtp.example.com",
		Port:     587,
		User:     "sender",
		Password: "pass",
		From:     "hello@example.com",
	}, zap.NewNop())
	svc := NewNewsletterService(repo, mail, zap.NewNop())

	_, err := svc.SendNewsletter(context.Background(), &request.SendNewsletterRequest{
		Subject: "New arrivals",
		Content: "Fresh podi in stock",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no active subscribers")
}

func TestSendNewsletterUnconfiguredMail(t *testing.T) {
	repo := newFakeRepository()
	mail := mailer.NewMailer(utils.EmailConfig{}, zap.NewNop())
	svc := NewNewsletterService(repo, mail, zap.NewNop())

	_, err := svc.SendNewsletter(context.Background(), &request.SendNewsletterRequest{
		Subject: "New arrivals",
		Content: "Fresh podi in stock",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not configured")
}

func TestSubscriberStats(t *testing.T) {
	repo := newFakeRepository()
	mail := mailer.NewMailer(utils.EmailConfig{}, zap.NewNop())
	subSvc := NewSubscriberService(repo, mail, zap.NewNop())
	nlSvc := NewNewsletterService(repo, mail, zap.NewNop())
	ctx := context.Background()

	_, _, err := subSvc.Subscribe(ctx, &request.SubscribeRequest{Email: "a@example.com"})
	require.NoError(t, err)
	_, _, err = subSvc.Subscribe(ctx, &request.SubscribeRequest{Email: "b@example.com"})
	require.NoError(t, err)
	require.NoError(t, subSvc.Unsubscribe(ctx, &request.UnsubscribeRequest{Email: "b@example.com"}))

	stats, err := nlSvc.GetStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), stats.Total)
	assert.Equal(t, int64(1), stats.Active)
	assert.Equal(t, int64(1), stats.Unsubscribed)
	assert.Equal(t, int64(2), stats.RecentSignups)
}
