package response

import (
	"time"

	"spice-store/internal/data/entity"
)

type SubscriberResponse struct {
	ID             string     `json:"id"`
	Email          string     `json:"email"`
	IsActive       bool       `json:"is_active"`
	SubscribedAt   time.Time  `json:"subscribed_at"`
	UnsubscribedAt *time.Time `json:"unsubscribed_at,omitempty"`
}

type NewsletterSendResponse struct {
	RecipientCount int `json:"recipient_count"`
}

func SubscriberToResponse(sub *entity.Subscriber) SubscriberResponse {
	return SubscriberResponse{
		ID:             sub.ID.String(),
		Email:          sub.Email,
		IsActive:       sub.IsActive,
		SubscribedAt:   sub.SubscribedAt,
		UnsubscribedAt: sub.UnsubscribedAt,
	}
}
